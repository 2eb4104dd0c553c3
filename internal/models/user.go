package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// User is a login-capable account, usually provisioned from an active
// ActorCode. Code mirrors the badge join key; it is empty for
// admin-provisioned accounts with no badge behind them. The mirrored
// fields (name/position/role/status) are snapshots from the last
// propagation and may drift until the next edit propagates.
type User struct {
	ID          uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FirmID      string            `gorm:"size:50;not null;uniqueIndex:idx_users_firm_email" json:"-"`
	Code        string            `gorm:"size:50;index" json:"code"`
	Name        string            `gorm:"size:255;not null" json:"name"`
	Position    string            `gorm:"size:50" json:"position"`
	Role        string            `gorm:"size:50;default:'employee'" json:"role"`
	Status      string            `gorm:"size:20;not null;default:'active';index" json:"status"`
	Email       string            `gorm:"not null;size:255;uniqueIndex:idx_users_firm_email" json:"email"`
	Password    string            `gorm:"not null" json:"-"`
	IsVerified  bool              `gorm:"default:false" json:"is_verified"`
	ActorCodeID *uuid.UUID        `gorm:"type:uuid;index" json:"actor_code_id,omitempty"`
	Extra       datatypes.JSONMap `gorm:"type:jsonb;default:'{}'" json:"extra,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}
