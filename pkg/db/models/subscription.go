package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopdesk/shopdesk-backend/pkg/enums"
)

// Subscription persists the billing agreement for a shop. A shop may have
// multiple rows over time; the newest row is the current one.
type Subscription struct {
	ID               uuid.UUID                 `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ShopID           uuid.UUID                 `gorm:"column:shop_id;type:uuid;not null;index"`
	Cadence          enums.SubscriptionCadence `gorm:"column:subscription_type;not null"`
	Amount           decimal.Decimal           `gorm:"column:amount;type:numeric(12,2);not null"`
	StartDate        time.Time                 `gorm:"column:start_date;not null"`
	EndDate          *time.Time                `gorm:"column:end_date"`
	Status           enums.SubscriptionStatus  `gorm:"column:status;not null;default:'active'"`
	NextPaymentDate  *time.Time                `gorm:"column:next_payment_date"`
	LastPaymentDate  *time.Time                `gorm:"column:last_payment_date"`
	CreatedAt        time.Time                 `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time                 `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the legacy table name.
func (Subscription) TableName() string {
	return "shop_subscriptions"
}
