package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopdesk/shopdesk-backend/api/responses"
	"github.com/shopdesk/shopdesk-backend/api/validators"
	"github.com/shopdesk/shopdesk-backend/internal/reports"
	"github.com/shopdesk/shopdesk-backend/internal/settings"
	"github.com/shopdesk/shopdesk-backend/internal/shops"
	"github.com/shopdesk/shopdesk-backend/internal/transactions"
	"github.com/shopdesk/shopdesk-backend/pkg/enums"
	pkgerrors "github.com/shopdesk/shopdesk-backend/pkg/errors"
	"github.com/shopdesk/shopdesk-backend/pkg/logger"
	"github.com/shopdesk/shopdesk-backend/pkg/pagination"
)

type submitPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	PaymentDate time.Time       `json:"payment_date" validate:"required"`
	Method      string          `json:"payment_method"`
	Reference   *string         `json:"transaction_reference" validate:"omitempty,max=200"`
	Notes       *string         `json:"notes" validate:"omitempty,max=1000"`
}

// PortalProfile returns the calling shop's own record.
func PortalProfile(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopID, err := shopFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		shop, err := svc.Get(r.Context(), shopID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, shop)
	}
}

// PortalBilling returns the shop's subscription, dues and last payment.
func PortalBilling(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopID, err := shopFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		summary, err := svc.ShopSummary(r.Context(), shopID, time.Now())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// PortalPaymentPage bundles the payout details with the shop's outstanding
// amount so the payment screen renders from a single call.
func PortalPaymentPage(settingsSvc settings.Service, reportsSvc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopID, err := shopFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		record, err := settingsSvc.Get(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		summary, err := reportsSvc.ShopSummary(r.Context(), shopID, time.Now())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"settings":   record,
			"due_amount": summary.DueAmount,
		})
	}
}

// PortalSubmitPayment records a shop-reported payment. It stays pending
// until an admin approves it.
func PortalSubmitPayment(svc transactions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopID, err := shopFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req submitPaymentRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input := transactions.RecordInput{
			ShopID:      shopID,
			Amount:      req.Amount,
			PaymentDate: req.PaymentDate,
			Reference:   req.Reference,
			Notes:       req.Notes,
		}
		if req.Method != "" {
			method, err := enums.ParsePaymentMethod(req.Method)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
				return
			}
			input.Method = method
		}
		transaction, err := svc.Submit(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, transaction)
	}
}

// PortalTransactions pages through the shop's own ledger entries.
func PortalTransactions(svc transactions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopID, err := shopFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		query := r.URL.Query()
		input := transactions.ListInput{
			ShopID:      &shopID,
			RangeKind:   strings.TrimSpace(query.Get("range")),
			CustomStart: strings.TrimSpace(query.Get("start")),
			CustomEnd:   strings.TrimSpace(query.Get("end")),
			Cursor:      strings.TrimSpace(query.Get("cursor")),
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
