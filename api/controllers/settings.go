package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/shopdesk/shopdesk-backend/api/responses"
	"github.com/shopdesk/shopdesk-backend/api/validators"
	"github.com/shopdesk/shopdesk-backend/internal/settings"
	"github.com/shopdesk/shopdesk-backend/pkg/logger"
)

type updateSettingsRequest struct {
	UPIID             *string         `json:"upi_id" validate:"omitempty,max=200"`
	PayeeName         *string         `json:"payee_name" validate:"omitempty,max=200"`
	BankName          *string         `json:"bank_name" validate:"omitempty,max=200"`
	AccountNumber     *string         `json:"account_number" validate:"omitempty,max=50"`
	IFSCCode          *string         `json:"ifsc_code" validate:"omitempty,max=20"`
	CryptoWallet      *string         `json:"crypto_wallet" validate:"omitempty,max=200"`
	Instructions      *string         `json:"instructions" validate:"omitempty,max=2000"`
	AdditionalDetails json.RawMessage `json:"additional_details"`
}

// PaymentSettingsGet returns the payout details shown on the payment page.
func PaymentSettingsGet(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, err := svc.Get(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

// PaymentSettingsUpdate patches the payout details, creating the record on
// first use.
func PaymentSettingsUpdate(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateSettingsRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		record, err := svc.Update(r.Context(), settings.UpdateInput{
			UPIID:             req.UPIID,
			PayeeName:         req.PayeeName,
			BankName:          req.BankName,
			AccountNumber:     req.AccountNumber,
			IFSCCode:          req.IFSCCode,
			CryptoWallet:      req.CryptoWallet,
			Instructions:      req.Instructions,
			AdditionalDetails: req.AdditionalDetails,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}
