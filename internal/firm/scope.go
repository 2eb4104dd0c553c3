package firm

import "gorm.io/gorm"

// ForFirm returns a GORM scope that filters by firm_id.
func ForFirm(firmID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("firm_id = ?", firmID)
	}
}
