package transactions

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopdesk/shopdesk-backend/internal/daterange"
	"github.com/shopdesk/shopdesk-backend/pkg/db/models"
	"github.com/shopdesk/shopdesk-backend/pkg/enums"
	pkgerrors "github.com/shopdesk/shopdesk-backend/pkg/errors"
	"github.com/shopdesk/shopdesk-backend/pkg/logger"
	"github.com/shopdesk/shopdesk-backend/pkg/pagination"
)

// Service defines operations on the payment ledger.
type Service interface {
	Record(ctx context.Context, input RecordInput) (*models.Transaction, error)
	Submit(ctx context.Context, input RecordInput) (*models.Transaction, error)
	Approve(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	Edit(ctx context.Context, id uuid.UUID, input EditInput) (*models.Transaction, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	List(ctx context.Context, input ListInput) (*ListResult, error)
}

// SubscriptionAccess is the slice of the subscriptions service the ledger
// needs: resolving the current subscription row and applying payments.
type SubscriptionAccess interface {
	CurrentForShop(ctx context.Context, shopID uuid.UUID) (*models.Subscription, error)
	ApplyPayment(ctx context.Context, shopID uuid.UUID, paymentDate time.Time) error
}

// ServiceParams groups dependencies for the transactions service.
type ServiceParams struct {
	Repo          Repository
	Subscriptions SubscriptionAccess
	Logger        *logger.Logger
}

type service struct {
	repo          Repository
	subscriptions SubscriptionAccess
	logg          *logger.Logger
}

// NewService wires a transactions service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("transactions repository required")
	}
	if params.Subscriptions == nil {
		return nil, fmt.Errorf("subscription access required")
	}
	return &service{repo: params.Repo, subscriptions: params.Subscriptions, logg: params.Logger}, nil
}

// RecordInput captures a payment being entered into the ledger.
type RecordInput struct {
	ShopID      uuid.UUID
	Amount      decimal.Decimal
	PaymentDate time.Time
	Method      enums.PaymentMethod
	Reference   *string
	Notes       *string
	CreatedBy   *string
}

// EditInput holds the editable transaction fields. Nil pointers leave the
// stored value untouched.
type EditInput struct {
	Amount      *decimal.Decimal
	PaymentDate *time.Time
	Method      *enums.PaymentMethod
	Reference   *string
	Notes       *string
	Status      *enums.TransactionStatus
}

// ListInput filters and paginates the ledger.
type ListInput struct {
	ShopID      *uuid.UUID
	Status      *enums.TransactionStatus
	RangeKind   string
	CustomStart string
	CustomEnd   string
	Now         time.Time
	Limit       int
	Cursor      string
}

// ListResult is a single page of transactions.
type ListResult struct {
	Transactions []models.Transaction
	NextCursor   string
}

// Record enters an admin-confirmed payment: the row lands completed and the
// shop's subscription cycle advances immediately.
func (s *service) Record(ctx context.Context, input RecordInput) (*models.Transaction, error) {
	transaction, err := s.insert(ctx, input, enums.TransactionStatusCompleted)
	if err != nil {
		return nil, err
	}
	if err := s.subscriptions.ApplyPayment(ctx, transaction.ShopID, transaction.PaymentDate); err != nil {
		return nil, err
	}
	return transaction, nil
}

// Submit enters a shop-reported payment. It stays pending and does not touch
// the subscription until an admin approves it.
func (s *service) Submit(ctx context.Context, input RecordInput) (*models.Transaction, error) {
	return s.insert(ctx, input, enums.TransactionStatusPending)
}

func (s *service) insert(ctx context.Context, input RecordInput, status enums.TransactionStatus) (*models.Transaction, error) {
	if input.ShopID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop id is required")
	}
	if !input.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	if input.PaymentDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment date is required")
	}
	method := input.Method
	if method == "" {
		method = enums.PaymentMethodCash
	}
	if !method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid payment method %q", input.Method))
	}

	transaction := &models.Transaction{
		ShopID:      input.ShopID,
		Amount:      input.Amount,
		PaymentDate: input.PaymentDate,
		Method:      method,
		Reference:   input.Reference,
		Notes:       input.Notes,
		Status:      status,
		CreatedBy:   input.CreatedBy,
	}

	// The current subscription row is linked whatever its status; a shop
	// without one still gets its payment on file.
	subscription, err := s.subscriptions.CurrentForShop(ctx, input.ShopID)
	if err != nil {
		return nil, err
	}
	if subscription != nil {
		transaction.SubscriptionID = &subscription.ID
	}

	if err := s.repo.Create(ctx, transaction); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating transaction")
	}
	return transaction, nil
}

// Approve promotes a pending transaction to completed and applies the
// payment once. Approving an already-completed transaction is a no-op.
func (s *service) Approve(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	transaction, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	if transaction.Status == enums.TransactionStatusCompleted {
		return transaction, nil
	}

	transaction.Status = enums.TransactionStatusCompleted
	if err := s.repo.Update(ctx, transaction); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "approving transaction")
	}
	if err := s.subscriptions.ApplyPayment(ctx, transaction.ShopID, transaction.PaymentDate); err != nil {
		return nil, err
	}
	return transaction, nil
}

// Edit updates ledger fields in place. When the edited transaction is
// completed, the payment is applied again with the edited values; combined
// with the ordering guard this can advance the cycle a second time.
func (s *service) Edit(ctx context.Context, id uuid.UUID, input EditInput) (*models.Transaction, error) {
	transaction, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
		}
		transaction.Amount = *input.Amount
	}
	if input.PaymentDate != nil {
		transaction.PaymentDate = *input.PaymentDate
	}
	if input.Method != nil {
		if !input.Method.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid payment method %q", *input.Method))
		}
		transaction.Method = *input.Method
	}
	if input.Reference != nil {
		transaction.Reference = input.Reference
	}
	if input.Notes != nil {
		transaction.Notes = input.Notes
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid transaction status %q", *input.Status))
		}
		transaction.Status = *input.Status
	}

	if err := s.repo.Update(ctx, transaction); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "editing transaction")
	}

	if transaction.Status == enums.TransactionStatusCompleted {
		if err := s.subscriptions.ApplyPayment(ctx, transaction.ShopID, transaction.PaymentDate); err != nil {
			return nil, err
		}
	}
	return transaction, nil
}

// Delete removes a ledger row. Subscription state the payment already
// produced is left as is.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.mustGet(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting transaction")
	}
	return nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	return s.mustGet(ctx, id)
}

func (s *service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	if input.Status != nil && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid transaction status %q", *input.Status))
	}
	cursor, err := pagination.ParseCursor(input.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	now := input.Now
	if now.IsZero() {
		now = time.Now()
	}
	bounds := daterange.Resolve(input.RangeKind, input.CustomStart, input.CustomEnd, now)

	transactions, next, err := s.repo.List(ctx, listTransactionsParams{
		ShopID: input.ShopID,
		Status: input.Status,
		Bounds: bounds,
		Limit:  input.Limit,
		Cursor: cursor,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing transactions")
	}

	result := &ListResult{Transactions: transactions}
	if next != nil {
		result.NextCursor = pagination.EncodeCursor(*next)
	}
	return result, nil
}

func (s *service) mustGet(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction id is required")
	}
	transaction, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading transaction")
	}
	if transaction == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
	}
	return transaction, nil
}
