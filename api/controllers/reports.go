package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shopdesk/shopdesk-backend/api/responses"
	"github.com/shopdesk/shopdesk-backend/internal/reports"
	pkgerrors "github.com/shopdesk/shopdesk-backend/pkg/errors"
	"github.com/shopdesk/shopdesk-backend/pkg/logger"
)

// ReportOverview returns the headline dashboard aggregates.
func ReportOverview(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		overview, err := svc.Overview(r.Context(), time.Now())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, overview)
	}
}

// ReportRevenue sums completed transactions over a symbolic date range,
// optionally scoped to one shop.
func ReportRevenue(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		input := reports.RevenueQuery{
			RangeKind:   strings.TrimSpace(query.Get("range")),
			CustomStart: strings.TrimSpace(query.Get("start")),
			CustomEnd:   strings.TrimSpace(query.Get("end")),
		}
		if raw := strings.TrimSpace(query.Get("shop_id")); raw != "" {
			shopID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid shop id"))
				return
			}
			input.ShopID = &shopID
		}
		result, err := svc.Revenue(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ReportShopSummary returns the billing card for a single shop.
func ReportShopSummary(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopID, err := shopIDParam(r)
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
