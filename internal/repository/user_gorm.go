package repository

import (
	"errors"
	"fmt"

	"github.com/fieldforcehq/fieldforce-backend/internal/firm"
	"github.com/fieldforcehq/fieldforce-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) FindByCode(firmID, code string) (*models.User, error) {
	var u models.User
	err := r.db.Scopes(firm.ForFirm(firmID)).Where("code = ?", code).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by code: %w", err)
	}
	return &u, nil
}

func (r *GormUserRepository) FindByEmail(firmID, email string) (*models.User, error) {
	var u models.User
	err := r.db.Scopes(firm.ForFirm(firmID)).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return &u, nil
}

func (r *GormUserRepository) FindByID(firmID string, id uuid.UUID) (*models.User, error) {
	var u models.User
	err := r.db.Scopes(firm.ForFirm(firmID)).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by id: %w", err)
	}
	return &u, nil
}

func (r *GormUserRepository) Insert(u *models.User) error {
	if err := r.db.Create(u).Error; err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *GormUserRepository) Update(u *models.User) error {
	if err := r.db.Save(u).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func (r *GormUserRepository) DeleteByCode(firmID, code string) error {
	err := r.db.Scopes(firm.ForFirm(firmID)).Where("code = ?", code).Delete(&models.User{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete user by code: %w", err)
	}
	return nil
}

func (r *GormUserRepository) DeleteByID(firmID string, id uuid.UUID) error {
	err := r.db.Scopes(firm.ForFirm(firmID)).Where("id = ?", id).Delete(&models.User{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete user by id: %w", err)
	}
	return nil
}

func (r *GormUserRepository) List(firmID string, limit, offset int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	if err := r.db.Model(&models.User{}).Scopes(firm.ForFirm(firmID)).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	err := r.db.Scopes(firm.ForFirm(firmID)).
		Order("created_at desc").
		Limit(limit).Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

func (r *GormUserRepository) ListBound(firmID string) ([]models.User, error) {
	var users []models.User
	err := r.db.Scopes(firm.ForFirm(firmID)).Where("code <> ''").Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bound users: %w", err)
	}
	return users, nil
}
