package services

import (
	"fmt"
	"log/slog"

	"github.com/fieldforcehq/fieldforce-backend/internal/config"
	"github.com/fieldforcehq/fieldforce-backend/internal/models"
	"github.com/fieldforcehq/fieldforce-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// Binding outcome messages. Expected conditions (missing counterpart,
// already provisioned) come back as a BindingResult, not an error; errors
// are reserved for store failures.
const (
	MsgActorCodeNotFound  = "actor code not found"
	MsgUserNotFound       = "user not found"
	MsgAlreadyProvisioned = "user already exists for this code"
)

// BindingResult is the structured outcome callers fold into their own
// responses. A failed result never aborts a bulk import; single-record
// endpoints surface the message alongside their own outcome.
type BindingResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// BindingFields carries the full set of post-edit values during a
// propagation. Code is the new join key; the record is located by the old
// one.
type BindingFields struct {
	Code     string
	Name     string
	Position string
	Role     string
	Status   string
}

// BindingService keeps the ActorCode and User collections loosely in
// sync. The two sides are never written in one transaction: callers
// persist the ActorCode first, then invoke the relevant binding
// operation, so a crash between the two writes leaves the pair drifted
// until the next edit. Reconcile reports such drift.
type BindingService struct {
	actorCodes repository.ActorCodeRepository
	users      repository.UserRepository
	cfg        *config.Config
}

func NewBindingService(actorCodes repository.ActorCodeRepository, users repository.UserRepository, cfg *config.Config) *BindingService {
	return &BindingService{actorCodes: actorCodes, users: users, cfg: cfg}
}

// Promote provisions a login account from an ActorCode: mirrored fields,
// a synthesized placeholder email, and a bcrypt hash of the configured
// default password. It does not check the ActorCode status; callers only
// invoke it for active codes.
func (s *BindingService) Promote(firmID, code string) (*models.User, BindingResult, error) {
	code = NormalizeCode(code)

	ac, err := s.actorCodes.FindByCode(firmID, code)
	if err != nil {
		return nil, BindingResult{}, err
	}
	if ac == nil {
		return nil, BindingResult{Success: false, Message: MsgActorCodeNotFound}, nil
	}

	existing, err := s.users.FindByCode(firmID, code)
	if err != nil {
		return nil, BindingResult{}, err
	}
	if existing != nil {
		return nil, BindingResult{Success: false, Message: MsgAlreadyProvisioned}, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.IdentityDefaultPassword), s.cfg.BcryptCost)
	if err != nil {
		return nil, BindingResult{}, fmt.Errorf("failed to hash default password: %w", err)
	}

	user := &models.User{
		FirmID:      firmID,
		Code:        ac.Code,
		Name:        ac.Name,
		Position:    ac.Position,
		Role:        ac.Role,
		Status:      models.StatusActive,
		Email:       SynthesizeEmail(ac.Name, ac.Position, s.cfg.IdentityEmailDomain),
		Password:    string(hash),
		IsVerified:  true,
		ActorCodeID: &ac.ID,
	}

	if err := s.users.Insert(user); err != nil {
		return nil, BindingResult{}, err
	}

	slog.Info("actor code promoted to user", "firm_id", firmID, "code", code)
	return user, BindingResult{Success: true, Message: "user provisioned"}, nil
}

// BoundUser returns the account keyed by the given code, nil when none
// exists.
func (s *BindingService) BoundUser(firmID, code string) (*models.User, error) {
	return s.users.FindByCode(firmID, NormalizeCode(code))
}

// DeactivateBinding flips the ActorCode behind a user to inactive. It is
// the User-initiated half of the lifecycle: deleting or deactivating an
// account keeps the badge on the roster but marks it inactive.
func (s *BindingService) DeactivateBinding(firmID, code string) (BindingResult, error) {
	code = NormalizeCode(code)

	ac, err := s.actorCodes.FindByCode(firmID, code)
	if err != nil {
		return BindingResult{}, err
	}
	if ac == nil {
		return BindingResult{Success: false, Message: MsgActorCodeNotFound}, nil
	}

	ac.Status = models.StatusInactive
	if err := s.actorCodes.Update(ac); err != nil {
		return BindingResult{}, err
	}

	slog.Info("actor code deactivated", "firm_id", firmID, "code", code)
	return BindingResult{Success: true, Message: "actor code deactivated"}, nil
}

// RemoveBoundUser hard-deletes the user bound to a code. A missing user
// is a successful no-op so ActorCode deletion never fails on an unbound
// badge.
func (s *BindingService) RemoveBoundUser(firmID, code string) (BindingResult, error) {
	code = NormalizeCode(code)

	user, err := s.users.FindByCode(firmID, code)
	if err != nil {
		return BindingResult{}, err
	}
	if user == nil {
		return BindingResult{Success: true, Message: "no bound user"}, nil
	}

	if err := s.users.DeleteByCode(firmID, code); err != nil {
		return BindingResult{}, err
	}

	slog.Info("bound user removed", "firm_id", firmID, "code", code)
	return BindingResult{Success: true, Message: "bound user removed"}, nil
}

// PropagateToUser overwrites the bound user's mirrored fields, including
// the join key itself when the code was edited. The user is located by
// oldCode, so callers must persist the ActorCode edit first and pass the
// pre-edit code here.
func (s *BindingService) PropagateToUser(firmID, oldCode string, f BindingFields) (BindingResult, error) {
	user, err := s.users.FindByCode(firmID, NormalizeCode(oldCode))
	if err != nil {
		return BindingResult{}, err
	}
	if user == nil {
		return BindingResult{Success: false, Message: MsgUserNotFound}, nil
	}

	user.Code = NormalizeCode(f.Code)
	user.Name = NormalizeName(f.Name)
	user.Position = f.Position
	user.Role = f.Role
	user.Status = NormalizeStatus(f.Status)

	if err := s.users.Update(user); err != nil {
		return BindingResult{}, err
	}
	return BindingResult{Success: true, Message: "user updated"}, nil
}

// PropagateToActorCode is the mirror of PropagateToUser for edits made on
// the User side.
func (s *BindingService) PropagateToActorCode(firmID, oldCode string, f BindingFields) (BindingResult, error) {
	ac, err := s.actorCodes.FindByCode(firmID, NormalizeCode(oldCode))
	if err != nil {
		return BindingResult{}, err
	}
	if ac == nil {
		return BindingResult{Success: false, Message: MsgActorCodeNotFound}, nil
	}

	ac.Code = NormalizeCode(f.Code)
	ac.Name = NormalizeName(f.Name)
	ac.Position = f.Position
	ac.Role = f.Role
	ac.Status = NormalizeStatus(f.Status)

	if err := s.actorCodes.Update(ac); err != nil {
		return BindingResult{}, err
	}
	return BindingResult{Success: true, Message: "actor code updated"}, nil
}

// ReconcileReport is the read-only drift audit for one firm.
type ReconcileReport struct {
	MissingUsers []string `json:"missing_users"` // active codes with no account
	OrphanUsers  []string `json:"orphan_users"`  // accounts whose badge is gone
	DriftedPairs []string `json:"drifted_pairs"` // bound pairs with mismatched mirrored fields
}

// Clean reports whether the firm's two collections are consistent.
func (r *ReconcileReport) Clean() bool {
	return len(r.MissingUsers) == 0 && len(r.OrphanUsers) == 0 && len(r.DriftedPairs) == 0
}

// Reconcile scans one firm for binding drift. It never mutates; the
// two-step writes stay last-write-wins and this is the out-of-band check
// that makes the gaps visible.
func (s *BindingService) Reconcile(firmID string) (*ReconcileReport, error) {
	report := &ReconcileReport{
		MissingUsers: []string{},
		OrphanUsers:  []string{},
		DriftedPairs: []string{},
	}

	active, err := s.actorCodes.ListByStatus(firmID, models.StatusActive)
	if err != nil {
		return nil, err
	}
	bound, err := s.users.ListBound(firmID)
	if err != nil {
		return nil, err
	}

	usersByCode := make(map[string]*models.User, len(bound))
	for i := range bound {
		usersByCode[bound[i].Code] = &bound[i]
	}

	codesSeen := make(map[string]*models.ActorCode, len(active))
	for i := range active {
		ac := &active[i]
		codesSeen[ac.Code] = ac
		user, ok := usersByCode[ac.Code]
		if !ok {
			report.MissingUsers = append(report.MissingUsers, ac.Code)
			continue
		}
		if user.Name != ac.Name || user.Position != ac.Position ||
			user.Role != ac.Role || user.Status != ac.Status {
			report.DriftedPairs = append(report.DriftedPairs, ac.Code)
		}
	}

	for code := range usersByCode {
		if _, ok := codesSeen[code]; ok {
			continue
		}
		ac, err := s.actorCodes.FindByCode(firmID, code)
		if err != nil {
			return nil, err
		}
		if ac == nil {
			report.OrphanUsers = append(report.OrphanUsers, code)
		}
	}

	return report, nil
}
