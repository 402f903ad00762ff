package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopdesk/shopdesk-backend/pkg/enums"
)

// Notification stores in-app notification payloads scoped to shops.
type Notification struct {
	ID        uuid.UUID              `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ShopID    uuid.UUID              `gorm:"column:shop_id;type:uuid;not null;index"`
	Title     string                 `gorm:"column:title;type:text;not null"`
	Message   string                 `gorm:"column:message;type:text;not null"`
	Type      enums.NotificationType `gorm:"column:notification_type;not null;default:'general'"`
	IsRead    bool                   `gorm:"column:is_read;not null;default:false"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the legacy table name.
func (Notification) TableName() string {
	return "payment_notifications"
}
