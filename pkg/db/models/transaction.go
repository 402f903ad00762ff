package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopdesk/shopdesk-backend/pkg/enums"
)

// Transaction records a single payment made by a shop. Pending rows come from
// shop self-service submissions and only affect the subscription once an
// admin approves them.
type Transaction struct {
	ID             uuid.UUID               `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ShopID         uuid.UUID               `gorm:"column:shop_id;type:uuid;not null;index"`
	SubscriptionID *uuid.UUID              `gorm:"column:subscription_id;type:uuid"`
	Amount         decimal.Decimal         `gorm:"column:amount;type:numeric(12,2);not null"`
	PaymentDate    time.Time               `gorm:"column:payment_date;not null"`
	Method         enums.PaymentMethod     `gorm:"column:payment_method;not null;default:'cash'"`
	Reference      *string                 `gorm:"column:transaction_reference"`
	Notes          *string                 `gorm:"column:notes"`
	Status         enums.TransactionStatus `gorm:"column:status;not null;default:'completed'"`
	CreatedBy      *string                 `gorm:"column:created_by"`
	CreatedAt      time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the legacy table name.
func (Transaction) TableName() string {
	return "payment_transactions"
}
