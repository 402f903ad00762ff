package subscriptions

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopdesk/shopdesk-backend/internal/billing"
	"github.com/shopdesk/shopdesk-backend/pkg/db/models"
	"github.com/shopdesk/shopdesk-backend/pkg/enums"
	pkgerrors "github.com/shopdesk/shopdesk-backend/pkg/errors"
	"github.com/shopdesk/shopdesk-backend/pkg/logger"
)

// Service defines subscription lifecycle operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Subscription, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Subscription, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Subscription, error)
	CurrentForShop(ctx context.Context, shopID uuid.UUID) (*models.Subscription, error)
	ListForShop(ctx context.Context, shopID uuid.UUID) ([]models.Subscription, error)
	List(ctx context.Context, status *enums.SubscriptionStatus) ([]models.Subscription, error)
	ApplyPayment(ctx context.Context, shopID uuid.UUID, paymentDate time.Time) error
	SetStatusForShop(ctx context.Context, shopID uuid.UUID, status enums.SubscriptionStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Notifier delivers system notifications triggered by status transitions.
type Notifier interface {
	NotifyShop(ctx context.Context, shopID uuid.UUID, notificationType enums.NotificationType, title, message string) error
}

// ServiceParams groups dependencies for the subscriptions service.
type ServiceParams struct {
	Repo     Repository
	Notifier Notifier
	Logger   *logger.Logger
}

type service struct {
	repo     Repository
	notifier Notifier
	logg     *logger.Logger
}

// NewService wires a subscriptions service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("subscriptions repository required")
	}
	if params.Notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	return &service{repo: params.Repo, notifier: params.Notifier, logg: params.Logger}, nil
}

// CreateInput captures the fields needed to start a subscription.
type CreateInput struct {
	ShopID    uuid.UUID
	Cadence   enums.SubscriptionCadence
	Amount    decimal.Decimal
	StartDate time.Time
	EndDate   *time.Time
	Status    enums.SubscriptionStatus
}

// UpdateInput holds the admin-editable subscription fields. Nil pointers
// leave the stored value untouched. NextPaymentDate is stored exactly as
// supplied and never recomputed from the cadence.
type UpdateInput struct {
	Cadence         *enums.SubscriptionCadence
	Amount          *decimal.Decimal
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *enums.SubscriptionStatus
	NextPaymentDate *time.Time
	LastPaymentDate *time.Time
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Subscription, error) {
	if input.ShopID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop id is required")
	}
	if !input.Cadence.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid subscription cadence %q", input.Cadence))
	}
	if !input.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	if input.StartDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "start date is required")
	}
	if input.EndDate != nil && input.EndDate.Before(input.StartDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "end date precedes start date")
	}

	status := input.Status
	if status == "" {
		status = enums.SubscriptionStatusActive
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid subscription status %q", status))
	}

	subscription := &models.Subscription{
		ShopID:          input.ShopID,
		Cadence:         input.Cadence,
		Amount:          input.Amount,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		Status:          status,
		NextPaymentDate: billing.NextDueDate(input.Cadence, input.StartDate),
	}
	if err := s.repo.Create(ctx, subscription); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating subscription")
	}
	return subscription, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Subscription, error) {
	subscription, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Cadence != nil {
		if !input.Cadence.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid subscription cadence %q", *input.Cadence))
		}
		subscription.Cadence = *input.Cadence
	}
	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
		}
		subscription.Amount = *input.Amount
	}
	if input.StartDate != nil {
		subscription.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		subscription.EndDate = input.EndDate
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid subscription status %q", *input.Status))
		}
		subscription.Status = *input.Status
	}
	if input.NextPaymentDate != nil {
		subscription.NextPaymentDate = input.NextPaymentDate
	}
	if input.LastPaymentDate != nil {
		subscription.LastPaymentDate = input.LastPaymentDate
	}

	if err := s.repo.Update(ctx, subscription); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating subscription")
	}
	return subscription, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Subscription, error) {
	return s.mustGet(ctx, id)
}

// CurrentForShop returns the shop's newest subscription row, or nil when the
// shop has never been subscribed.
func (s *service) CurrentForShop(ctx context.Context, shopID uuid.UUID) (*models.Subscription, error) {
	if shopID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop id is required")
	}
	subscription, err := s.repo.CurrentForShop(ctx, shopID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading current subscription")
	}
	return subscription, nil
}

func (s *service) ListForShop(ctx context.Context, shopID uuid.UUID) ([]models.Subscription, error) {
	if shopID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop id is required")
	}
	return s.repo.ListForShop(ctx, shopID)
}

func (s *service) List(ctx context.Context, status *enums.SubscriptionStatus) ([]models.Subscription, error) {
	if status != nil && !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid subscription status %q", *status))
	}
	return s.repo.List(ctx, status)
}

// ApplyPayment advances the shop's current subscription after a confirmed
// payment. Payments dated before the recorded last payment are ignored so a
// late-arriving older receipt cannot rewind the cycle. A successful apply
// always reactivates the subscription.
func (s *service) ApplyPayment(ctx context.Context, shopID uuid.UUID, paymentDate time.Time) error {
	if shopID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "shop id is required")
	}
	subscription, err := s.repo.CurrentForShop(ctx, shopID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading current subscription")
	}
	if subscription == nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithShopID(ctx, shopID.String()), "payment recorded without a subscription")
		}
		return nil
	}

	if subscription.LastPaymentDate != nil && dateOnly(paymentDate).Before(dateOnly(*subscription.LastPaymentDate)) {
		return nil
	}

	paid := paymentDate
	subscription.LastPaymentDate = &paid
	subscription.NextPaymentDate = billing.NextDueDate(subscription.Cadence, paymentDate)
	subscription.Status = enums.SubscriptionStatusActive

	if err := s.repo.Update(ctx, subscription); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "applying payment to subscription")
	}
	return nil
}

// SetStatusForShop overwrites the status on every subscription row the shop
// has. Freezing and reactivating also notify the shop; a notification
// failure is logged but does not undo the status change.
func (s *service) SetStatusForShop(ctx context.Context, shopID uuid.UUID, status enums.SubscriptionStatus) error {
	if shopID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "shop id is required")
	}
	if !status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid subscription status %q", status))
	}

	updated, err := s.repo.UpdateStatusForShop(ctx, shopID, status)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating subscription status")
	}
	if updated == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "no subscriptions for shop")
	}

	var notifyErr error
	switch status {
	case enums.SubscriptionStatusFrozen:
		notifyErr = s.notifier.NotifyShop(ctx, shopID, enums.NotificationTypeFreeze,
			"Shop Frozen", "Your shop has been frozen. Please clear any outstanding payments to restore access.")
	case enums.SubscriptionStatusActive:
		notifyErr = s.notifier.NotifyShop(ctx, shopID, enums.NotificationTypeGeneral,
			"Shop Activated", "Your shop is active again. Thank you for your payment.")
	}
	if notifyErr != nil && s.logg != nil {
		s.logg.Error(s.logg.WithShopID(ctx, shopID.String()), "status notification failed", notifyErr)
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.mustGet(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting subscription")
	}
	return nil
}

func (s *service) mustGet(ctx context.Context, id uuid.UUID) (*models.Subscription, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "subscription id is required")
	}
	subscription, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading subscription")
	}
	if subscription == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "subscription not found")
	}
	return subscription, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
