package repository

import (
	"errors"
	"fmt"

	"github.com/fieldforcehq/fieldforce-backend/internal/firm"
	"github.com/fieldforcehq/fieldforce-backend/internal/models"
	"gorm.io/gorm"
)

type GormActorCodeRepository struct {
	db *gorm.DB
}

func NewGormActorCodeRepository(db *gorm.DB) *GormActorCodeRepository {
	return &GormActorCodeRepository{db: db}
}

func (r *GormActorCodeRepository) FindByCode(firmID, code string) (*models.ActorCode, error) {
	var ac models.ActorCode
	err := r.db.Scopes(firm.ForFirm(firmID)).Where("code = ?", code).First(&ac).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find actor code: %w", err)
	}
	return &ac, nil
}

func (r *GormActorCodeRepository) Insert(ac *models.ActorCode) error {
	if err := r.db.Create(ac).Error; err != nil {
		return fmt.Errorf("failed to insert actor code: %w", err)
	}
	return nil
}

func (r *GormActorCodeRepository) Update(ac *models.ActorCode) error {
	if err := r.db.Save(ac).Error; err != nil {
		return fmt.Errorf("failed to update actor code: %w", err)
	}
	return nil
}

func (r *GormActorCodeRepository) DeleteByCode(firmID, code string) error {
	err := r.db.Scopes(firm.ForFirm(firmID)).Where("code = ?", code).Delete(&models.ActorCode{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete actor code: %w", err)
	}
	return nil
}

func (r *GormActorCodeRepository) List(firmID string, limit, offset int) ([]models.ActorCode, int64, error) {
	var codes []models.ActorCode
	var total int64

	if err := r.db.Model(&models.ActorCode{}).Scopes(firm.ForFirm(firmID)).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count actor codes: %w", err)
	}

	err := r.db.Scopes(firm.ForFirm(firmID)).
		Order("code asc").
		Limit(limit).Offset(offset).
		Find(&codes).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list actor codes: %w", err)
	}
	return codes, total, nil
}

func (r *GormActorCodeRepository) ListByStatus(firmID, status string) ([]models.ActorCode, error) {
	var codes []models.ActorCode
	err := r.db.Scopes(firm.ForFirm(firmID)).Where("status = ?", status).Find(&codes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list actor codes by status: %w", err)
	}
	return codes, nil
}
