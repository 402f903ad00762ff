package settings

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/shopdesk/shopdesk-backend/pkg/db/models"
)

// Repository handles payment settings persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Latest(ctx context.Context) (*models.PaymentSettings, error)
	Create(ctx context.Context, settings *models.PaymentSettings) error
	Update(ctx context.Context, settings *models.PaymentSettings) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to payment settings operations.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// Latest returns the newest settings row, or nil when none exists yet.
func (r *repository) Latest(ctx context.Context) (*models.PaymentSettings, error) {
	var settings models.PaymentSettings
	err := r.db.WithContext(ctx).Order("created_at DESC").First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &settings, nil
}

func (r *repository) Create(ctx context.Context, settings *models.PaymentSettings) error {
	return r.db.WithContext(ctx).Create(settings).Error
}

func (r *repository) Update(ctx context.Context, settings *models.PaymentSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}
