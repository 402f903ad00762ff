package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopdesk/shopdesk-backend/api/middleware"
	"github.com/shopdesk/shopdesk-backend/api/responses"
	"github.com/shopdesk/shopdesk-backend/api/validators"
	"github.com/shopdesk/shopdesk-backend/internal/transactions"
	"github.com/shopdesk/shopdesk-backend/pkg/enums"
	pkgerrors "github.com/shopdesk/shopdesk-backend/pkg/errors"
	"github.com/shopdesk/shopdesk-backend/pkg/logger"
	"github.com/shopdesk/shopdesk-backend/pkg/pagination"
)

type recordTransactionRequest struct {
	ShopID      uuid.UUID       `json:"shop_id" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	PaymentDate time.Time       `json:"payment_date" validate:"required"`
	Method      string          `json:"payment_method"`
	Reference   *string         `json:"transaction_reference" validate:"omitempty,max=200"`
	Notes       *string         `json:"notes" validate:"omitempty,max=1000"`
}

type editTransactionRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	PaymentDate *time.Time       `json:"payment_date"`
	Method      *string          `json:"payment_method"`
	Reference   *string          `json:"transaction_reference" validate:"omitempty,max=200"`
	Notes       *string          `json:"notes" validate:"omitempty,max=1000"`
	Status      *string          `json:"status"`
}

// TransactionRecord enters an admin-confirmed payment. The row lands
// completed and immediately advances the shop's billing cycle.
func TransactionRecord(svc transactions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := decodeRecordInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		transaction, err := svc.Record(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, transaction)
	}
}

func decodeRecordInput(r *http.Request) (transactions.RecordInput, error) {
	var req recordTransactionRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		return transactions.RecordInput{}, err
	}
	input := transactions.RecordInput{
		ShopID:      req.ShopID,
		Amount:      req.Amount,
		PaymentDate: req.PaymentDate,
		Reference:   req.Reference,
		Notes:       req.Notes,
	}
	if req.Method != "" {
		method, err := enums.ParsePaymentMethod(req.Method)
		if err != nil {
			return transactions.RecordInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method")
		}
		input.Method = method
	}
	if actor := middleware.ActorIDFromContext(r.Context()); actor != "" {
		input.CreatedBy = &actor
	}
	return input, nil
}

// TransactionList pages through the ledger with optional shop, status and
// date range filters.
func TransactionList(svc transactions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		input := transactions.ListInput{
			RangeKind:   strings.TrimSpace(query.Get("range")),
			CustomStart: strings.TrimSpace(query.Get("start")),
			CustomEnd:   strings.TrimSpace(query.Get("end")),
			Cursor:      strings.TrimSpace(query.Get("cursor")),
		}

		if raw := strings.TrimSpace(query.Get("shop_id")); raw != "" {
			shopID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid shop id"))
				return
			}
			input.ShopID = &shopID
		}
		if raw := strings.TrimSpace(query.Get("status")); raw != "" {
			status, err := enums.ParseTransactionStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			input.Status = &status
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input.Limit = limit

		result, err := svc.List(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"items":  result.Transactions,
			"cursor": result.NextCursor,
		})
	}
}

func TransactionDetail(svc transactions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := transactionIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		transaction, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, transaction)
	}
}

// TransactionApprove confirms a pending shop-submitted payment. Approving an
// already completed transaction is a no-op.
func TransactionApprove(svc transactions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := transactionIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		transaction, err := svc.Approve(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, transaction)
	}
}

func TransactionUpdate(svc transactions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := transactionIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req editTransactionRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input := transactions.EditInput{
			Amount:      req.Amount,
			PaymentDate: req.PaymentDate,
			Reference:   req.Reference,
			Notes:       req.Notes,
		}
		if req.Method != nil {
			method, err := enums.ParsePaymentMethod(*req.Method)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
				return
			}
			input.Method = &method
		}
		if req.Status != nil {
			status, err := enums.ParseTransactionStatus(*req.Status)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			input.Status = &status
		}
		transaction, err := svc.Edit(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, transaction)
	}
}

func TransactionDelete(svc transactions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := transactionIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func transactionIDParam(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "transactionId")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid transaction id")
	}
	return id, nil
}
