package services

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/fieldforcehq/fieldforce-backend/internal/dto"
	"github.com/fieldforcehq/fieldforce-backend/internal/models"
	"github.com/fieldforcehq/fieldforce-backend/internal/repository"
	"gorm.io/datatypes"
)

var (
	ErrActorCodeNotFound = errors.New("actor code not found")
	ErrActorCodeExists   = errors.New("actor code already exists")
	ErrCodeRequired      = errors.New("code is required")
)

// ActorCodeService owns the badge roster CRUD and drives the binding
// lifecycle: the ActorCode write always lands first, then the binding
// call brings the User side back in line.
type ActorCodeService struct {
	actorCodes repository.ActorCodeRepository
	binding    *BindingService
}

func NewActorCodeService(actorCodes repository.ActorCodeRepository, binding *BindingService) *ActorCodeService {
	return &ActorCodeService{actorCodes: actorCodes, binding: binding}
}

// Create registers a new badge and, when it arrives active, promotes it
// to a login account. A binding failure does not roll the badge back; the
// result is surfaced next to the created record.
func (s *ActorCodeService) Create(firmID string, req *dto.CreateActorCodeRequest) (*models.ActorCode, BindingResult, error) {
	code := NormalizeCode(req.Code)
	if code == "" {
		return nil, BindingResult{}, ErrCodeRequired
	}

	existing, err := s.actorCodes.FindByCode(firmID, code)
	if err != nil {
		return nil, BindingResult{}, err
	}
	if existing != nil {
		return nil, BindingResult{}, ErrActorCodeExists
	}

	status := NormalizeStatus(req.Status)
	if status == "" {
		status = models.StatusActive
	}
	role := req.Role
	if role == "" {
		role = "employee"
	}

	ac := &models.ActorCode{
		FirmID:   firmID,
		Code:     code,
		Name:     NormalizeName(req.Name),
		Position: strings.ToLower(strings.TrimSpace(req.Position)),
		Role:     role,
		Status:   status,
		Extra:    datatypes.JSONMap(req.Extra),
	}
	if err := s.actorCodes.Insert(ac); err != nil {
		return nil, BindingResult{}, err
	}

	result := BindingResult{Success: true, Message: "no provisioning required"}
	if status == models.StatusActive {
		_, result, err = s.binding.Promote(firmID, code)
		if err != nil {
			return ac, BindingResult{}, err
		}
	}
	return ac, result, nil
}

// Edit updates a badge and propagates the new values to the bound user.
// A transition into active re-provisions when no account survived the
// inactive spell; otherwise the surviving account is updated in place.
func (s *ActorCodeService) Edit(firmID, code string, req *dto.UpdateActorCodeRequest) (*models.ActorCode, BindingResult, error) {
	ac, err := s.actorCodes.FindByCode(firmID, NormalizeCode(code))
	if err != nil {
		return nil, BindingResult{}, err
	}
	if ac == nil {
		return nil, BindingResult{}, ErrActorCodeNotFound
	}

	oldCode := ac.Code
	oldStatus := ac.Status

	if req.Code != "" {
		newCode := NormalizeCode(req.Code)
		if newCode != ac.Code {
			dup, err := s.actorCodes.FindByCode(firmID, newCode)
			if err != nil {
				return nil, BindingResult{}, err
			}
			if dup != nil {
				return nil, BindingResult{}, ErrActorCodeExists
			}
		}
		ac.Code = newCode
	}
	if req.Name != "" {
		ac.Name = NormalizeName(req.Name)
	}
	if req.Position != "" {
		ac.Position = strings.ToLower(strings.TrimSpace(req.Position))
	}
	if req.Role != "" {
		ac.Role = req.Role
	}
	if req.Status != "" {
		ac.Status = NormalizeStatus(req.Status)
	}
	if req.Extra != nil {
		ac.Extra = datatypes.JSONMap(req.Extra)
	}

	// ActorCode first, then the user side. Never atomic across the two.
	if err := s.actorCodes.Update(ac); err != nil {
		return nil, BindingResult{}, err
	}

	if ac.Status == models.StatusActive && oldStatus != models.StatusActive {
		// The surviving account is still keyed by the old code, so a
		// lookup under the new code would miss it and provision a
		// duplicate. Promote only when neither key has an account.
		survivor, err := s.binding.BoundUser(firmID, oldCode)
		if err != nil {
			return ac, BindingResult{}, err
		}
		if survivor == nil {
			_, result, err := s.binding.Promote(firmID, ac.Code)
			if err != nil {
				return ac, BindingResult{}, err
			}
			return ac, result, nil
		}
		// Propagation below renames the join key and mirrors the status.
	}

	result, err := s.binding.PropagateToUser(firmID, oldCode, BindingFields{
		Code:     ac.Code,
		Name:     ac.Name,
		Position: ac.Position,
		Role:     ac.Role,
		Status:   ac.Status,
	})
	if err != nil {
		return ac, BindingResult{}, err
	}
	return ac, result, nil
}

// Delete removes a badge and cascades to its bound account. The badge is
// gone afterwards; re-creating the same code later is a fresh entity.
func (s *ActorCodeService) Delete(firmID, code string) (BindingResult, error) {
	code = NormalizeCode(code)

	ac, err := s.actorCodes.FindByCode(firmID, code)
	if err != nil {
		return BindingResult{}, err
	}
	if ac == nil {
		return BindingResult{}, ErrActorCodeNotFound
	}

	result, err := s.binding.RemoveBoundUser(firmID, code)
	if err != nil {
		return BindingResult{}, err
	}

	if err := s.actorCodes.DeleteByCode(firmID, code); err != nil {
		return BindingResult{}, err
	}

	slog.Info("actor code deleted", "firm_id", firmID, "code", code)
	return result, nil
}

func (s *ActorCodeService) Get(firmID, code string) (*models.ActorCode, error) {
	ac, err := s.actorCodes.FindByCode(firmID, NormalizeCode(code))
	if err != nil {
		return nil, err
	}
	if ac == nil {
		return nil, ErrActorCodeNotFound
	}
	return ac, nil
}

func (s *ActorCodeService) List(firmID string, limit, offset int) ([]models.ActorCode, int64, error) {
	return s.actorCodes.List(firmID, limit, offset)
}
