package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopdesk/shopdesk-backend/pkg/types"
)

// Shop represents the canonical tenant model. The status column carries the
// comma-joined access flags independently of the subscription billing state.
type Shop struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string          `gorm:"column:name;not null"`
	OwnerName    *string         `gorm:"column:owner_name"`
	Email        *string         `gorm:"column:email"`
	Phone        *string         `gorm:"column:phone"`
	Address      *string         `gorm:"column:address"`
	Status       types.ShopFlags `gorm:"column:status;type:text;not null;default:'active'"`
	LastActiveAt *time.Time      `gorm:"column:last_active_at"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the legacy table name.
func (Shop) TableName() string {
	return "shops"
}
