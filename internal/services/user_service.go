package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fieldforcehq/fieldforce-backend/internal/config"
	"github.com/fieldforcehq/fieldforce-backend/internal/dto"
	"github.com/fieldforcehq/fieldforce-backend/internal/models"
	"github.com/fieldforcehq/fieldforce-backend/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
	ErrNameRequired = errors.New("name is required")
)

// UserService owns account-side flows. Accounts normally come from
// promotion; Create here is the admin-provisioned path with no badge
// behind it. Deactivate and delete both flip the backing ActorCode to
// inactive rather than removing it — the roster stays honest.
type UserService struct {
	users   repository.UserRepository
	binding *BindingService
	cfg     *config.Config
}

func NewUserService(users repository.UserRepository, binding *BindingService, cfg *config.Config) *UserService {
	return &UserService{users: users, binding: binding, cfg: cfg}
}

// Create provisions an account directly, without an ActorCode. Email and
// password fall back to the same synthesized defaults promotion uses.
func (s *UserService) Create(firmID string, req *dto.CreateUserRequest) (*models.User, error) {
	name := NormalizeName(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	position := strings.ToLower(strings.TrimSpace(req.Position))

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		email = SynthesizeEmail(name, position, s.cfg.IdentityEmailDomain)
	}

	existing, err := s.users.FindByEmail(firmID, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	password := req.Password
	if password == "" {
		password = s.cfg.IdentityDefaultPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = "employee"
	}

	user := &models.User{
		FirmID:     firmID,
		Name:       name,
		Position:   position,
		Role:       role,
		Status:     models.StatusActive,
		Email:      email,
		Password:   string(hash),
		IsVerified: true,
		Extra:      datatypes.JSONMap(req.Extra),
	}
	if err := s.users.Insert(user); err != nil {
		return nil, err
	}

	slog.Info("user provisioned by admin", "firm_id", firmID, "email", email)
	return user, nil
}

// Deactivate flips an account to inactive and pushes the deactivation
// back onto its ActorCode, if one is bound.
func (s *UserService) Deactivate(firmID string, id uuid.UUID) (*models.User, BindingResult, error) {
	user, err := s.users.FindByID(firmID, id)
	if err != nil {
		return nil, BindingResult{}, err
	}
	if user == nil {
		return nil, BindingResult{}, ErrUserNotFound
	}

	user.Status = models.StatusInactive
	if err := s.users.Update(user); err != nil {
		return nil, BindingResult{}, err
	}

	result := BindingResult{Success: true, Message: "no actor code bound"}
	if user.Code != "" {
		result, err = s.binding.DeactivateBinding(firmID, user.Code)
		if err != nil {
			return user, BindingResult{}, err
		}
	}
	return user, result, nil
}

// Delete removes an account. The bound ActorCode is deactivated, never
// deleted: only an ActorCode delete removes records on both sides.
func (s *UserService) Delete(firmID string, id uuid.UUID) (BindingResult, error) {
	user, err := s.users.FindByID(firmID, id)
	if err != nil {
		return BindingResult{}, err
	}
	if user == nil {
		return BindingResult{}, ErrUserNotFound
	}

	result := BindingResult{Success: true, Message: "no actor code bound"}
	if user.Code != "" {
		result, err = s.binding.DeactivateBinding(firmID, user.Code)
		if err != nil {
			return BindingResult{}, err
		}
	}

	if err := s.users.DeleteByID(firmID, id); err != nil {
		return BindingResult{}, err
	}

	slog.Info("user deleted", "firm_id", firmID, "user_id", id.String())
	return result, nil
}

func (s *UserService) Get(firmID string, id uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(firmID, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) List(firmID string, limit, offset int) ([]models.User, int64, error) {
	return s.users.List(firmID, limit, offset)
}
