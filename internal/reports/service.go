// Package reports computes the read-side aggregates for the admin
// dashboard: revenue, outstanding dues, and per-shop summaries.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopdesk/shopdesk-backend/internal/billing"
	"github.com/shopdesk/shopdesk-backend/internal/daterange"
	"github.com/shopdesk/shopdesk-backend/pkg/db/models"
	"github.com/shopdesk/shopdesk-backend/pkg/enums"
	pkgerrors "github.com/shopdesk/shopdesk-backend/pkg/errors"
)

type transactionSource interface {
	SumCompleted(ctx context.Context, shopID *uuid.UUID, bounds daterange.Range) (decimal.Decimal, error)
	LastCompletedForShop(ctx context.Context, shopID uuid.UUID) (*models.Transaction, error)
}

type subscriptionSource interface {
	List(ctx context.Context, status *enums.SubscriptionStatus) ([]models.Subscription, error)
	CurrentForShop(ctx context.Context, shopID uuid.UUID) (*models.Subscription, error)
}

// Service exposes dashboard aggregation queries.
type Service interface {
	Overview(ctx context.Context, now time.Time) (*Overview, error)
	Revenue(ctx context.Context, query RevenueQuery) (*RevenueResult, error)
	ShopSummary(ctx context.Context, shopID uuid.UUID, now time.Time) (*ShopSummary, error)
}

// ServiceParams groups dependencies for the reports service.
type ServiceParams struct {
	Transactions  transactionSource
	Subscriptions subscriptionSource
}

type service struct {
	transactions  transactionSource
	subscriptions subscriptionSource
}

// NewService wires a reports service over the ledger and subscription stores.
func NewService(params ServiceParams) (Service, error) {
	if params.Transactions == nil {
		return nil, fmt.Errorf("transaction source required")
	}
	if params.Subscriptions == nil {
		return nil, fmt.Errorf("subscription source required")
	}
	return &service{transactions: params.Transactions, subscriptions: params.Subscriptions}, nil
}

// Overview is the headline dashboard block. DueTotal and DueCount fold the
// outstanding amount over every subscription row regardless of status.
// OverdueCount is a separate metric: it counts every recurring subscription
// whose next payment date has passed, even when no amount is due yet.
type Overview struct {
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	DueTotal          decimal.Decimal `json:"due_total"`
	DueCount          int             `json:"due_count"`
	OverdueCount      int             `json:"overdue_count"`
	ActiveCount       int             `json:"active_count"`
	SubscriptionCount int             `json:"subscription_count"`
}

// RevenueQuery scopes a revenue report to a symbolic date range and
// optionally to a single shop.
type RevenueQuery struct {
	ShopID      *uuid.UUID
	RangeKind   string
	CustomStart string
	CustomEnd   string
	Now         time.Time
}

// RevenueResult reports completed-transaction revenue with the bounds the
// query resolved to.
type RevenueResult struct {
	Revenue decimal.Decimal `json:"revenue"`
	Start   *time.Time      `json:"start,omitempty"`
	End     *time.Time      `json:"end,omitempty"`
}

// ShopSummary is the per-shop billing card.
type ShopSummary struct {
	Revenue      decimal.Decimal      `json:"revenue"`
	Subscription *models.Subscription `json:"subscription,omitempty"`
	DueAmount    decimal.Decimal      `json:"due_amount"`
	LastPayment  *models.Transaction  `json:"last_payment,omitempty"`
}

func (s *service) Overview(ctx context.Context, now time.Time) (*Overview, error) {
	if now.IsZero() {
		now = time.Now()
	}

	total, err := s.transactions.SumCompleted(ctx, nil, daterange.Range{})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "summing revenue")
	}

	subscriptions, err := s.subscriptions.List(ctx, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing subscriptions")
	}

	overview := &Overview{
		TotalRevenue:      total,
		DueTotal:          decimal.Zero,
		SubscriptionCount: len(subscriptions),
	}
	for _, subscription := range subscriptions {
		if subscription.Status == enums.SubscriptionStatusActive {
			overview.ActiveCount++
		}
		if isOverdue(&subscription, now) {
			overview.OverdueCount++
		}
		due := billing.AmountDue(subscription.Cadence, subscription.Amount, subscription.NextPaymentDate, now)
		if due.IsPositive() {
			overview.DueTotal = overview.DueTotal.Add(due)
			overview.DueCount++
		}
	}
	return overview, nil
}

// isOverdue is deliberately independent of the due-amount fold: it ignores
// status and the amount, looking only at the next payment date.
func isOverdue(subscription *models.Subscription, now time.Time) bool {
	if subscription.Cadence == enums.SubscriptionCadenceOnce {
		return false
	}
	return subscription.NextPaymentDate != nil && subscription.NextPaymentDate.Before(now)
}

func (s *service) Revenue(ctx context.Context, query RevenueQuery) (*RevenueResult, error) {
	now := query.Now
	if now.IsZero() {
		now = time.Now()
	}
	bounds := daterange.Resolve(query.RangeKind, query.CustomStart, query.CustomEnd, now)

	revenue, err := s.transactions.SumCompleted(ctx, query.ShopID, bounds)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "summing revenue")
	}
	return &RevenueResult{Revenue: revenue, Start: bounds.Start, End: bounds.End}, nil
}

func (s *service) ShopSummary(ctx context.Context, shopID uuid.UUID, now time.Time) (*ShopSummary, error) {
	if shopID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop id is required")
	}
	if now.IsZero() {
		now = time.Now()
	}

	revenue, err := s.transactions.SumCompleted(ctx, &shopID, daterange.Range{})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "summing shop revenue")
	}

	subscription, err := s.subscriptions.CurrentForShop(ctx, shopID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading current subscription")
	}

	lastPayment, err := s.transactions.LastCompletedForShop(ctx, shopID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading last payment")
	}

	summary := &ShopSummary{
		Revenue:     revenue,
		DueAmount:   decimal.Zero,
		LastPayment: lastPayment,
	}
	if subscription != nil {
		summary.Subscription = subscription
		summary.DueAmount = billing.AmountDue(subscription.Cadence, subscription.Amount, subscription.NextPaymentDate, now)
	}
	return summary, nil
}
