package transactions

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shopdesk/shopdesk-backend/internal/daterange"
	"github.com/shopdesk/shopdesk-backend/pkg/db/models"
	"github.com/shopdesk/shopdesk-backend/pkg/enums"
	pkgerrors "github.com/shopdesk/shopdesk-backend/pkg/errors"
	"github.com/shopdesk/shopdesk-backend/pkg/pagination"
)

type fakeRepository struct {
	rows map[uuid.UUID]*models.Transaction

	created []*models.Transaction
	updated []*models.Transaction
	deleted []uuid.UUID
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{rows: map[uuid.UUID]*models.Transaction{}}
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	if transaction.ID == uuid.Nil {
		transaction.ID = uuid.New()
	}
	f.rows[transaction.ID] = transaction
	f.created = append(f.created, transaction)
	return nil
}

func (f *fakeRepository) Update(ctx context.Context, transaction *models.Transaction) error {
	f.rows[transaction.ID] = transaction
	f.updated = append(f.updated, transaction)
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.rows, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	return f.rows[id], nil
}

func (f *fakeRepository) List(ctx context.Context, params listTransactionsParams) ([]models.Transaction, *pagination.Cursor, error) {
	return nil, nil, nil
}

func (f *fakeRepository) SumCompleted(ctx context.Context, shopID *uuid.UUID, bounds daterange.Range) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (f *fakeRepository) LastCompletedForShop(ctx context.Context, shopID uuid.UUID) (*models.Transaction, error) {
	return nil, nil
}

type fakeSubscriptions struct {
	current *models.Subscription
	applied []time.Time
}

func (f *fakeSubscriptions) CurrentForShop(ctx context.Context, shopID uuid.UUID) (*models.Subscription, error) {
	return f.current, nil
}

func (f *fakeSubscriptions) ApplyPayment(ctx context.Context, shopID uuid.UUID, paymentDate time.Time) error {
	f.applied = append(f.applied, paymentDate)
	return nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestService(t *testing.T, repo Repository, subs SubscriptionAccess) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: repo, Subscriptions: subs})
	require.NoError(t, err)
	return svc
}

func TestService_RecordCompletesAndAppliesPayment(t *testing.T) {
	repo := newFakeRepository()
	subID := uuid.New()
	subs := &fakeSubscriptions{current: &models.Subscription{ID: subID}}
	svc := newTestService(t, repo, subs)

	got, err := svc.Record(context.Background(), RecordInput{
		ShopID:      uuid.New(),
		Amount:      decimal.NewFromInt(500),
		PaymentDate: date(2024, 2, 10),
		Method:      enums.PaymentMethodUPI,
	})
	require.NoError(t, err)

	assert.Equal(t, enums.TransactionStatusCompleted, got.Status)
	require.NotNil(t, got.SubscriptionID)
	assert.Equal(t, subID, *got.SubscriptionID)
	require.Len(t, subs.applied, 1)
	assert.True(t, subs.applied[0].Equal(date(2024, 2, 10)))
}

func TestService_RecordWithoutSubscriptionKeepsRow(t *testing.T) {
	repo := newFakeRepository()
	subs := &fakeSubscriptions{}
	svc := newTestService(t, repo, subs)

	got, err := svc.Record(context.Background(), RecordInput{
		ShopID:      uuid.New(),
		Amount:      decimal.NewFromInt(500),
		PaymentDate: date(2024, 2, 10),
	})
	require.NoError(t, err)

	assert.Nil(t, got.SubscriptionID)
	assert.Equal(t, enums.PaymentMethodCash, got.Method)
	assert.Len(t, repo.created, 1)
}

func TestService_SubmitStaysPending(t *testing.T) {
	repo := newFakeRepository()
	subs := &fakeSubscriptions{current: &models.Subscription{ID: uuid.New()}}
	svc := newTestService(t, repo, subs)

	actor := "shop-owner"
	got, err := svc.Submit(context.Background(), RecordInput{
		ShopID:      uuid.New(),
		Amount:      decimal.NewFromInt(300),
		PaymentDate: date(2024, 2, 10),
		Method:      enums.PaymentMethodBankTransfer,
		CreatedBy:   &actor,
	})
	require.NoError(t, err)

	assert.Equal(t, enums.TransactionStatusPending, got.Status)
	assert.Empty(t, subs.applied, "submission must not touch the subscription")
}

func TestService_SubmitAcceptsCrypto(t *testing.T) {
	repo := newFakeRepository()
	subs := &fakeSubscriptions{}
	svc := newTestService(t, repo, subs)

	got, err := svc.Submit(context.Background(), RecordInput{
		ShopID:      uuid.New(),
		Amount:      decimal.NewFromInt(300),
		PaymentDate: date(2024, 2, 10),
		Method:      enums.PaymentMethodCrypto,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.PaymentMethodCrypto, got.Method)
}

func TestService_ApproveAppliesOnce(t *testing.T) {
	repo := newFakeRepository()
	subs := &fakeSubscriptions{current: &models.Subscription{ID: uuid.New()}}
	svc := newTestService(t, repo, subs)

	pending, err := svc.Submit(context.Background(), RecordInput{
		ShopID:      uuid.New(),
		Amount:      decimal.NewFromInt(300),
		PaymentDate: date(2024, 2, 10),
	})
	require.NoError(t, err)

	approved, err := svc.Approve(context.Background(), pending.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.TransactionStatusCompleted, approved.Status)
	require.Len(t, subs.applied, 1)

	// A second approve is a no-op for both the row and the subscription.
	again, err := svc.Approve(context.Background(), pending.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.TransactionStatusCompleted, again.Status)
	assert.Len(t, subs.applied, 1)
}

func TestService_EditCompletedReappliesPayment(t *testing.T) {
	repo := newFakeRepository()
	subs := &fakeSubscriptions{current: &models.Subscription{ID: uuid.New()}}
	svc := newTestService(t, repo, subs)

	recorded, err := svc.Record(context.Background(), RecordInput{
		ShopID:      uuid.New(),
		Amount:      decimal.NewFromInt(300),
		PaymentDate: date(2024, 2, 10),
	})
	require.NoError(t, err)
	require.Len(t, subs.applied, 1)

	newDate := date(2024, 2, 12)
	edited, err := svc.Edit(context.Background(), recorded.ID, EditInput{PaymentDate: &newDate})
	require.NoError(t, err)

	assert.True(t, edited.PaymentDate.Equal(newDate))
	require.Len(t, subs.applied, 2, "editing a completed transaction re-applies the payment")
	assert.True(t, subs.applied[1].Equal(newDate))
}

func TestService_EditPendingDoesNotApply(t *testing.T) {
	repo := newFakeRepository()
	subs := &fakeSubscriptions{current: &models.Subscription{ID: uuid.New()}}
	svc := newTestService(t, repo, subs)

	pending, err := svc.Submit(context.Background(), RecordInput{
		ShopID:      uuid.New(),
		Amount:      decimal.NewFromInt(300),
		PaymentDate: date(2024, 2, 10),
	})
	require.NoError(t, err)

	amount := decimal.NewFromInt(350)
	_, err = svc.Edit(context.Background(), pending.ID, EditInput{Amount: &amount})
	require.NoError(t, err)
	assert.Empty(t, subs.applied)
}

func TestService_DeleteLeavesSubscriptionAlone(t *testing.T) {
	repo := newFakeRepository()
	subs := &fakeSubscriptions{current: &models.Subscription{ID: uuid.New()}}
	svc := newTestService(t, repo, subs)

	recorded, err := svc.Record(context.Background(), RecordInput{
		ShopID:      uuid.New(),
		Amount:      decimal.NewFromInt(300),
		PaymentDate: date(2024, 2, 10),
	})
	require.NoError(t, err)
	applied := len(subs.applied)

	require.NoError(t, svc.Delete(context.Background(), recorded.ID))
	assert.Len(t, repo.deleted, 1)
	assert.Len(t, subs.applied, applied, "deletion must not reverse or re-apply payments")
}

func TestService_RecordValidation(t *testing.T) {
	svc := newTestService(t, newFakeRepository(), &fakeSubscriptions{})

	tests := []struct {
		name  string
		input RecordInput
	}{
		{name: "missing shop", input: RecordInput{Amount: decimal.NewFromInt(10), PaymentDate: date(2024, 1, 1)}},
		{name: "zero amount", input: RecordInput{ShopID: uuid.New(), PaymentDate: date(2024, 1, 1)}},
		{name: "negative amount", input: RecordInput{ShopID: uuid.New(), Amount: decimal.NewFromInt(-5), PaymentDate: date(2024, 1, 1)}},
		{name: "missing payment date", input: RecordInput{ShopID: uuid.New(), Amount: decimal.NewFromInt(10)}},
		{name: "bad method", input: RecordInput{ShopID: uuid.New(), Amount: decimal.NewFromInt(10), PaymentDate: date(2024, 1, 1), Method: "barter"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Record(context.Background(), tc.input)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
		})
	}
}

func TestService_GetUnknownTransaction(t *testing.T) {
	svc := newTestService(t, newFakeRepository(), &fakeSubscriptions{})

	_, err := svc.Get(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
