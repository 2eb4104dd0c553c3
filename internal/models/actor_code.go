package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Position labels used across the sales hierarchy. Not behaviorally
// distinct to the binding logic, kept for roster readability.
const (
	PositionZSM    = "zsm"
	PositionASM    = "asm"
	PositionTSE    = "tse"
	PositionMDD    = "mdd"
	PositionDealer = "dealer"
)

// ActorCode is a roster badge: an authorized identity slot independent of
// login capability. Code is the join key to User (convention, no FK).
type ActorCode struct {
	ID        uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FirmID    string            `gorm:"size:50;not null;uniqueIndex:idx_actor_codes_firm_code" json:"-"`
	Code      string            `gorm:"size:50;not null;uniqueIndex:idx_actor_codes_firm_code" json:"code"`
	Name      string            `gorm:"size:255;not null" json:"name"`
	Position  string            `gorm:"size:50" json:"position"`
	Role      string            `gorm:"size:50;default:'employee'" json:"role"`
	Status    string            `gorm:"size:20;not null;default:'active';index" json:"status"`
	Extra     datatypes.JSONMap `gorm:"type:jsonb;default:'{}'" json:"extra,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}
