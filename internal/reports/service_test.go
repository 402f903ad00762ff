package reports

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopdesk/shopdesk-backend/internal/daterange"
	"github.com/shopdesk/shopdesk-backend/pkg/db/models"
	"github.com/shopdesk/shopdesk-backend/pkg/enums"
	pkgerrors "github.com/shopdesk/shopdesk-backend/pkg/errors"
)

type fakeTransactionSource struct {
	totalSum    decimal.Decimal
	shopSums    map[uuid.UUID]decimal.Decimal
	lastPayment map[uuid.UUID]*models.Transaction
	lastBounds  daterange.Range
}

func (f *fakeTransactionSource) SumCompleted(ctx context.Context, shopID *uuid.UUID, bounds daterange.Range) (decimal.Decimal, error) {
	f.lastBounds = bounds
	if shopID == nil {
		return f.totalSum, nil
	}
	return f.shopSums[*shopID], nil
}

func (f *fakeTransactionSource) LastCompletedForShop(ctx context.Context, shopID uuid.UUID) (*models.Transaction, error) {
	return f.lastPayment[shopID], nil
}

type fakeSubscriptionSource struct {
	all     []models.Subscription
	current map[uuid.UUID]*models.Subscription
}

func (f *fakeSubscriptionSource) List(ctx context.Context, status *enums.SubscriptionStatus) ([]models.Subscription, error) {
	return f.all, nil
}

func (f *fakeSubscriptionSource) CurrentForShop(ctx context.Context, shopID uuid.UUID) (*models.Subscription, error) {
	return f.current[shopID], nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}

func TestService_OverviewFoldsDues(t *testing.T) {
	now := date(2024, time.March, 15)
	subs := &fakeSubscriptionSource{all: []models.Subscription{
		{
			// Three 30-day periods behind.
			Cadence:         enums.SubscriptionCadenceMonthly,
			Amount:          decimal.NewFromInt(500),
			Status:          enums.SubscriptionStatusFrozen,
			NextPaymentDate: datePtr(2024, time.January, 1),
		},
		{
			// Paid up.
			Cadence:         enums.SubscriptionCadenceMonthly,
			Amount:          decimal.NewFromInt(300),
			Status:          enums.SubscriptionStatusActive,
			NextPaymentDate: datePtr(2024, time.April, 1),
		},
		{
			// Stopped rows still owe and still count as overdue.
			Cadence:         enums.SubscriptionCadenceWeekly,
			Amount:          decimal.NewFromInt(900),
			Status:          enums.SubscriptionStatusStopped,
			NextPaymentDate: datePtr(2024, time.March, 14),
		},
		{
			// One-time subscriptions never owe and never count as overdue.
			Cadence:         enums.SubscriptionCadenceOnce,
			Amount:          decimal.NewFromInt(5000),
			Status:          enums.SubscriptionStatusActive,
			NextPaymentDate: datePtr(2023, time.June, 1),
		},
	}}
	txns := &fakeTransactionSource{totalSum: decimal.NewFromInt(12000)}

	svc, err := NewService(ServiceParams{Transactions: txns, Subscriptions: subs})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	overview, err := svc.Overview(context.Background(), now)
	if err != nil {
		t.Fatalf("Overview error: %v", err)
	}
	if !overview.TotalRevenue.Equal(decimal.NewFromInt(12000)) {
		t.Fatalf("unexpected total revenue %s", overview.TotalRevenue)
	}
	if !overview.DueTotal.Equal(decimal.NewFromInt(2400)) {
		t.Fatalf("expected due total 2400, got %s", overview.DueTotal)
	}
	if overview.DueCount != 2 || overview.OverdueCount != 2 {
		t.Fatalf("expected two overdue subscriptions, got due=%d overdue=%d", overview.DueCount, overview.OverdueCount)
	}
	if overview.ActiveCount != 2 {
		t.Fatalf("expected two active subscriptions, got %d", overview.ActiveCount)
	}
	if overview.SubscriptionCount != 4 {
		t.Fatalf("expected four subscriptions, got %d", overview.SubscriptionCount)
	}
}

func TestService_OverviewCountsOverdueIndependently(t *testing.T) {
	now := date(2024, time.March, 15)
	subs := &fakeSubscriptionSource{all: []models.Subscription{
		{
			// Overdue but nothing due: zero amount still counts as overdue.
			Cadence:         enums.SubscriptionCadenceMonthly,
			Amount:          decimal.Zero,
			Status:          enums.SubscriptionStatusSuspended,
			NextPaymentDate: datePtr(2024, time.January, 1),
		},
		{
			// No next payment date on record.
			Cadence: enums.SubscriptionCadenceMonthly,
			Amount:  decimal.NewFromInt(300),
			Status:  enums.SubscriptionStatusActive,
		},
	}}
	svc, err := NewService(ServiceParams{Transactions: &fakeTransactionSource{}, Subscriptions: subs})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	overview, err := svc.Overview(context.Background(), now)
	if err != nil {
		t.Fatalf("Overview error: %v", err)
	}
	if overview.OverdueCount != 1 {
		t.Fatalf("expected one overdue subscription, got %d", overview.OverdueCount)
	}
	if overview.DueCount != 0 || !overview.DueTotal.IsZero() {
		t.Fatalf("expected nothing due, got count=%d total=%s", overview.DueCount, overview.DueTotal)
	}
}

func TestService_RevenueResolvesBounds(t *testing.T) {
	txns := &fakeTransactionSource{totalSum: decimal.NewFromInt(700)}
	svc, err := NewService(ServiceParams{Transactions: txns, Subscriptions: &fakeSubscriptionSource{}})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	now := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
	result, err := svc.Revenue(context.Background(), RevenueQuery{RangeKind: daterange.KindToday, Now: now})
	if err != nil {
		t.Fatalf("Revenue error: %v", err)
	}
	if !result.Revenue.Equal(decimal.NewFromInt(700)) {
		t.Fatalf("unexpected revenue %s", result.Revenue)
	}
	if result.Start == nil || !result.Start.Equal(date(2024, time.March, 15)) {
		t.Fatalf("unexpected range start %v", result.Start)
	}
	if txns.lastBounds.Start == nil || txns.lastBounds.End == nil {
		t.Fatal("expected bounds to reach the ledger query")
	}

	all, err := svc.Revenue(context.Background(), RevenueQuery{RangeKind: daterange.KindAll, Now: now})
	if err != nil {
		t.Fatalf("Revenue error: %v", err)
	}
	if all.Start != nil || all.End != nil {
		t.Fatalf("all-time revenue must carry no bounds, got %v..%v", all.Start, all.End)
	}
}

func TestService_ShopSummary(t *testing.T) {
	shopID := uuid.New()
	now := date(2024, time.March, 15)

	last := &models.Transaction{ID: uuid.New(), ShopID: shopID, Amount: decimal.NewFromInt(500)}
	txns := &fakeTransactionSource{
		shopSums:    map[uuid.UUID]decimal.Decimal{shopID: decimal.NewFromInt(2500)},
		lastPayment: map[uuid.UUID]*models.Transaction{shopID: last},
	}
	subs := &fakeSubscriptionSource{current: map[uuid.UUID]*models.Subscription{
		shopID: {
			ShopID:          shopID,
			Cadence:         enums.SubscriptionCadenceWeekly,
			Amount:          decimal.NewFromInt(100),
			Status:          enums.SubscriptionStatusActive,
			NextPaymentDate: datePtr(2024, time.March, 14),
		},
	}}

	svc, err := NewService(ServiceParams{Transactions: txns, Subscriptions: subs})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	summary, err := svc.ShopSummary(context.Background(), shopID, now)
	if err != nil {
		t.Fatalf("ShopSummary error: %v", err)
	}
	if !summary.Revenue.Equal(decimal.NewFromInt(2500)) {
		t.Fatalf("unexpected revenue %s", summary.Revenue)
	}
	if summary.Subscription == nil {
		t.Fatal("expected the current subscription on the summary")
	}
	if !summary.DueAmount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("one day overdue should owe a full period, got %s", summary.DueAmount)
	}
	if summary.LastPayment == nil || summary.LastPayment.ID != last.ID {
		t.Fatal("expected the last completed payment on the summary")
	}
}

func TestService_ShopSummaryStoppedStillOwes(t *testing.T) {
	shopID := uuid.New()
	txns := &fakeTransactionSource{shopSums: map[uuid.UUID]decimal.Decimal{}}
	subs := &fakeSubscriptionSource{current: map[uuid.UUID]*models.Subscription{
		shopID: {
			ShopID:          shopID,
			Cadence:         enums.SubscriptionCadenceWeekly,
			Amount:          decimal.NewFromInt(100),
			Status:          enums.SubscriptionStatusStopped,
			NextPaymentDate: datePtr(2024, time.March, 14),
		},
	}}
	svc, err := NewService(ServiceParams{Transactions: txns, Subscriptions: subs})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	summary, err := svc.ShopSummary(context.Background(), shopID, date(2024, time.March, 15))
	if err != nil {
		t.Fatalf("ShopSummary error: %v", err)
	}
	if !summary.DueAmount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("status must not gate the due amount, got %s", summary.DueAmount)
	}
}

func TestService_ShopSummaryWithoutSubscription(t *testing.T) {
	shopID := uuid.New()
	txns := &fakeTransactionSource{shopSums: map[uuid.UUID]decimal.Decimal{}}
	svc, err := NewService(ServiceParams{Transactions: txns, Subscriptions: &fakeSubscriptionSource{}})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	summary, err := svc.ShopSummary(context.Background(), shopID, date(2024, time.March, 15))
	if err != nil {
		t.Fatalf("ShopSummary error: %v", err)
	}
	if summary.Subscription != nil {
		t.Fatal("expected no subscription")
	}
	if !summary.DueAmount.IsZero() {
		t.Fatalf("no subscription means nothing due, got %s", summary.DueAmount)
	}

	_, err = svc.ShopSummary(context.Background(), uuid.Nil, time.Time{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for nil shop id, got %v", err)
	}
}
