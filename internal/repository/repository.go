// Package repository defines the persistence ports for the identity
// domain. The two collections are independent: ActorCodes and Users are
// joined only by the string code field, never by a database-level foreign
// key. All cascade behavior lives in the binding service on top of these
// ports.
package repository

import (
	"github.com/fieldforcehq/fieldforce-backend/internal/models"
	"github.com/google/uuid"
)

// ActorCodeRepository is the port for the badge roster. FindByCode returns
// (nil, nil) when no record exists; errors are store failures only.
type ActorCodeRepository interface {
	FindByCode(firmID, code string) (*models.ActorCode, error)
	Insert(ac *models.ActorCode) error
	Update(ac *models.ActorCode) error
	DeleteByCode(firmID, code string) error
	List(firmID string, limit, offset int) ([]models.ActorCode, int64, error)
	ListByStatus(firmID, status string) ([]models.ActorCode, error)
}

// UserRepository is the port for login accounts. Same not-found
// convention as ActorCodeRepository. Deletes are hard deletes; the
// original system never resurrects a removed account.
type UserRepository interface {
	FindByCode(firmID, code string) (*models.User, error)
	FindByEmail(firmID, email string) (*models.User, error)
	FindByID(firmID string, id uuid.UUID) (*models.User, error)
	Insert(u *models.User) error
	Update(u *models.User) error
	DeleteByCode(firmID, code string) error
	DeleteByID(firmID string, id uuid.UUID) error
	List(firmID string, limit, offset int) ([]models.User, int64, error)
	ListBound(firmID string) ([]models.User, error)
}
