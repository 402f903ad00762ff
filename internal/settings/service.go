package settings

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopdesk/shopdesk-backend/pkg/db/models"
	pkgerrors "github.com/shopdesk/shopdesk-backend/pkg/errors"
)

// Service exposes the payout details shops see on the payment page.
type Service interface {
	Get(ctx context.Context) (*models.PaymentSettings, error)
	Update(ctx context.Context, input UpdateInput) (*models.PaymentSettings, error)
}

type service struct {
	repo Repository
}

// NewService builds a payment settings service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	return &service{repo: repo}, nil
}

// UpdateInput carries the editable payout fields. Nil pointers leave the
// stored value untouched.
type UpdateInput struct {
	UPIID             *string
	PayeeName         *string
	BankName          *string
	AccountNumber     *string
	IFSCCode          *string
	CryptoWallet      *string
	Instructions      *string
	AdditionalDetails json.RawMessage
}

// Get returns the current settings, or an empty record when none have been
// configured yet so the payment page always renders.
func (s *service) Get(ctx context.Context) (*models.PaymentSettings, error) {
	settings, err := s.repo.Latest(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading payment settings")
	}
	if settings == nil {
		return &models.PaymentSettings{}, nil
	}
	return settings, nil
}

// Update patches the singleton settings row, creating it on first use.
func (s *service) Update(ctx context.Context, input UpdateInput) (*models.PaymentSettings, error) {
	settings, err := s.repo.Latest(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading payment settings")
	}

	fresh := settings == nil
	if fresh {
		settings = &models.PaymentSettings{}
	}

	if input.UPIID != nil {
		settings.UPIID = input.UPIID
	}
	if input.PayeeName != nil {
		settings.PayeeName = input.PayeeName
	}
	if input.BankName != nil {
		settings.BankName = input.BankName
	}
	if input.AccountNumber != nil {
		settings.AccountNumber = input.AccountNumber
	}
	if input.IFSCCode != nil {
		settings.IFSCCode = input.IFSCCode
	}
	if input.CryptoWallet != nil {
		settings.CryptoWallet = input.CryptoWallet
	}
	if input.Instructions != nil {
		settings.Instructions = input.Instructions
	}
	if input.AdditionalDetails != nil {
		settings.AdditionalDetails = input.AdditionalDetails
	}

	if fresh {
		err = s.repo.Create(ctx, settings)
	} else {
		err = s.repo.Update(ctx, settings)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving payment settings")
	}
	return settings, nil
}
