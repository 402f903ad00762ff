package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/shopdesk/shopdesk-backend/internal/billing"
	"github.com/shopdesk/shopdesk-backend/pkg/db/models"
	"github.com/shopdesk/shopdesk-backend/pkg/enums"
	"github.com/shopdesk/shopdesk-backend/pkg/logger"
)

type dueSubscriptionLister interface {
	ListDue(ctx context.Context, asOf time.Time) ([]models.Subscription, error)
}

type dunningNotifier interface {
	NotifyShop(ctx context.Context, shopID uuid.UUID, notificationType enums.NotificationType, title, message string) error
}

type notificationChecker interface {
	ExistsSince(ctx context.Context, shopID uuid.UUID, notificationType string, since time.Time) (bool, error)
}

// PaymentDueJobParams configure the dunning sweep.
type PaymentDueJobParams struct {
	Logger        *logger.Logger
	Subscriptions dueSubscriptionLister
	Notifications notificationChecker
	Notifier      dunningNotifier
	Now           func() time.Time
}

// NewPaymentDueJob builds the sweep that notifies shops with an overdue
// subscription. Each shop receives at most one payment-due notification per
// calendar day.
func NewPaymentDueJob(params PaymentDueJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Subscriptions == nil {
		return nil, fmt.Errorf("subscription lister required")
	}
	if params.Notifications == nil {
		return nil, fmt.Errorf("notification checker required")
	}
	if params.Notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &paymentDueJob{
		logg:          params.Logger,
		subscriptions: params.Subscriptions,
		notifications: params.Notifications,
		notifier:      params.Notifier,
		now:           now,
	}, nil
}

type paymentDueJob struct {
	logg          *logger.Logger
	subscriptions dueSubscriptionLister
	notifications notificationChecker
	notifier      dunningNotifier
	now           func() time.Time
}

func (j *paymentDueJob) Name() string { return "payment-due" }

func (j *paymentDueJob) Run(ctx context.Context) error {
	now := j.now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	due, err := j.subscriptions.ListDue(ctx, now)
	if err != nil {
		return fmt.Errorf("list due subscriptions: %w", err)
	}

	var errs error
	notified := 0
	skipped := 0
	for i := range due {
		sent, err := j.notifyShop(ctx, &due[i], now, dayStart)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if sent {
			notified++
		} else {
			skipped++
		}
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"due":      len(due),
		"notified": notified,
		"skipped":  skipped,
	})
	j.logg.Info(logCtx, "payment due sweep complete")
	return errs
}

func (j *paymentDueJob) notifyShop(ctx context.Context, subscription *models.Subscription, now, dayStart time.Time) (bool, error) {
	already, err := j.notifications.ExistsSince(ctx, subscription.ShopID, enums.NotificationTypePaymentDue.String(), dayStart)
	if err != nil {
		return false, fmt.Errorf("check notification for shop %s: %w", subscription.ShopID, err)
	}
	if already {
		return false, nil
	}

	amount := billing.AmountDue(subscription.Cadence, subscription.Amount, subscription.NextPaymentDate, now)
	if amount.IsZero() {
		return false, nil
	}

	message := fmt.Sprintf("Your %s subscription payment of %s is due. Please pay to avoid service interruption.",
		subscription.Cadence, amount.StringFixed(2))
	if err := j.notifier.NotifyShop(ctx, subscription.ShopID, enums.NotificationTypePaymentDue, "Payment Due", message); err != nil {
		return false, fmt.Errorf("notify shop %s: %w", subscription.ShopID, err)
	}
	return true, nil
}
