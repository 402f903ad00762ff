package transactions

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopdesk/shopdesk-backend/internal/daterange"
	"github.com/shopdesk/shopdesk-backend/pkg/db/models"
	"github.com/shopdesk/shopdesk-backend/pkg/enums"
	"github.com/shopdesk/shopdesk-backend/pkg/pagination"
)

// Repository manages persistence for payment transactions.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, transaction *models.Transaction) error
	Update(ctx context.Context, transaction *models.Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	List(ctx context.Context, params listTransactionsParams) ([]models.Transaction, *pagination.Cursor, error)
	SumCompleted(ctx context.Context, shopID *uuid.UUID, bounds daterange.Range) (decimal.Decimal, error)
	LastCompletedForShop(ctx context.Context, shopID uuid.UUID) (*models.Transaction, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a transactions repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

type listTransactionsParams struct {
	ShopID *uuid.UUID
	Status *enums.TransactionStatus
	Bounds daterange.Range
	Limit  int
	Cursor *pagination.Cursor
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, transaction *models.Transaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

func (r *repository) Update(ctx context.Context, transaction *models.Transaction) error {
	return r.db.WithContext(ctx).Save(transaction).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Transaction{}, "id = ?", id).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.WithContext(ctx).First(&transaction, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &transaction, nil
}

func (r *repository) List(ctx context.Context, params listTransactionsParams) ([]models.Transaction, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)
	query := r.db.WithContext(ctx).Model(&models.Transaction{})
	if params.ShopID != nil {
		query = query.Where("shop_id = ?", *params.ShopID)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.Bounds.Start != nil {
		query = query.Where("payment_date >= ?", *params.Bounds.Start)
	}
	if params.Bounds.End != nil {
		query = query.Where("payment_date <= ?", *params.Bounds.End)
	}
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var transactions []models.Transaction
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&transactions).Error; err != nil {
		return nil, nil, err
	}

	if len(transactions) > normalized {
		next := transactions[normalized]
		transactions = transactions[:normalized]
		return transactions, &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}, nil
	}
	return transactions, nil, nil
}

func (r *repository) SumCompleted(ctx context.Context, shopID *uuid.UUID, bounds daterange.Range) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("status = ?", enums.TransactionStatusCompleted)
	if shopID != nil {
		query = query.Where("shop_id = ?", *shopID)
	}
	if bounds.Start != nil {
		query = query.Where("payment_date >= ?", *bounds.Start)
	}
	if bounds.End != nil {
		query = query.Where("payment_date <= ?", *bounds.End)
	}

	var total decimal.NullDecimal
	if err := query.Select("SUM(amount)").Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *repository) LastCompletedForShop(ctx context.Context, shopID uuid.UUID) (*models.Transaction, error) {
	var transaction models.Transaction
	err := r.db.WithContext(ctx).
		Where("shop_id = ? AND status = ?", shopID, enums.TransactionStatusCompleted).
		Order("payment_date DESC, created_at DESC").
		First(&transaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &transaction, nil
}
