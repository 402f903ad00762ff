package subscriptions

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopdesk/shopdesk-backend/pkg/db/models"
	"github.com/shopdesk/shopdesk-backend/pkg/enums"
)

// Repository manages persistence for shop subscriptions.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, subscription *models.Subscription) error
	Update(ctx context.Context, subscription *models.Subscription) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Subscription, error)
	CurrentForShop(ctx context.Context, shopID uuid.UUID) (*models.Subscription, error)
	ListForShop(ctx context.Context, shopID uuid.UUID) ([]models.Subscription, error)
	List(ctx context.Context, status *enums.SubscriptionStatus) ([]models.Subscription, error)
	UpdateStatusForShop(ctx context.Context, shopID uuid.UUID, status enums.SubscriptionStatus) (int64, error)
	ListDue(ctx context.Context, asOf time.Time) ([]models.Subscription, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a subscriptions repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, subscription *models.Subscription) error {
	return r.db.WithContext(ctx).Create(subscription).Error
}

func (r *repository) Update(ctx context.Context, subscription *models.Subscription) error {
	return r.db.WithContext(ctx).Save(subscription).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Subscription{}, "id = ?", id).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Subscription, error) {
	var subscription models.Subscription
	if err := r.db.WithContext(ctx).First(&subscription, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &subscription, nil
}

// CurrentForShop returns the newest subscription row for the shop regardless
// of status, or nil when the shop has none.
func (r *repository) CurrentForShop(ctx context.Context, shopID uuid.UUID) (*models.Subscription, error) {
	var subscription models.Subscription
	err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("created_at DESC").
		First(&subscription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &subscription, nil
}

func (r *repository) ListForShop(ctx context.Context, shopID uuid.UUID) ([]models.Subscription, error) {
	var subscriptions []models.Subscription
	if err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("created_at DESC").
		Find(&subscriptions).Error; err != nil {
		return nil, err
	}
	return subscriptions, nil
}

func (r *repository) List(ctx context.Context, status *enums.SubscriptionStatus) ([]models.Subscription, error) {
	query := r.db.WithContext(ctx).Model(&models.Subscription{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	var subscriptions []models.Subscription
	if err := query.Order("created_at DESC").Find(&subscriptions).Error; err != nil {
		return nil, err
	}
	return subscriptions, nil
}

// UpdateStatusForShop overwrites the status on every subscription row the
// shop has, current and historical alike.
func (r *repository) UpdateStatusForShop(ctx context.Context, shopID uuid.UUID, status enums.SubscriptionStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("shop_id = ?", shopID).
		Update("status", status)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ListDue returns subscriptions whose next payment date is strictly in the
// past, excluding stopped ones.
func (r *repository) ListDue(ctx context.Context, asOf time.Time) ([]models.Subscription, error) {
	var subscriptions []models.Subscription
	if err := r.db.WithContext(ctx).
		Where("next_payment_date IS NOT NULL AND next_payment_date < ?", asOf).
		Where("status <> ?", enums.SubscriptionStatusStopped).
		Order("next_payment_date ASC").
		Find(&subscriptions).Error; err != nil {
		return nil, err
	}
	return subscriptions, nil
}
