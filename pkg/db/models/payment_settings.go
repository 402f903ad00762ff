package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// PaymentSettings holds the payout details shown to shops on the payment
// page. A single row is expected; the newest row wins when several exist.
type PaymentSettings struct {
	ID                uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UPIID             *string         `gorm:"column:upi_id"`
	PayeeName         *string         `gorm:"column:payee_name"`
	BankName          *string         `gorm:"column:bank_name"`
	AccountNumber     *string         `gorm:"column:account_number"`
	IFSCCode          *string         `gorm:"column:ifsc_code"`
	CryptoWallet      *string         `gorm:"column:crypto_wallet"`
	Instructions      *string         `gorm:"column:instructions"`
	AdditionalDetails json.RawMessage `gorm:"column:additional_details;type:jsonb"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the legacy table name.
func (PaymentSettings) TableName() string {
	return "payment_settings"
}
