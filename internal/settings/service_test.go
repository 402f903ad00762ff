package settings

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/shopdesk/shopdesk-backend/pkg/db/models"
)

type fakeRepository struct {
	stored  *models.PaymentSettings
	created int
	updated int
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepository) Latest(ctx context.Context) (*models.PaymentSettings, error) {
	return f.stored, nil
}

func (f *fakeRepository) Create(ctx context.Context, settings *models.PaymentSettings) error {
	f.stored = settings
	f.created++
	return nil
}

func (f *fakeRepository) Update(ctx context.Context, settings *models.PaymentSettings) error {
	f.stored = settings
	f.updated++
	return nil
}

func TestService_GetWithoutSettingsReturnsEmptyRecord(t *testing.T) {
	svc, err := NewService(&fakeRepository{})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	settings, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if settings == nil {
		t.Fatal("expected an empty record, not nil")
	}
	if settings.UPIID != nil {
		t.Fatalf("expected empty settings, got %+v", settings)
	}
}

func TestService_UpdateCreatesThenPatches(t *testing.T) {
	repo := &fakeRepository{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	upi := "shopdesk@upi"
	if _, err := svc.Update(context.Background(), UpdateInput{UPIID: &upi}); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if repo.created != 1 {
		t.Fatalf("expected first update to create, created=%d", repo.created)
	}

	payee := "Shopdesk Billing"
	settings, err := svc.Update(context.Background(), UpdateInput{PayeeName: &payee})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if repo.updated != 1 {
		t.Fatalf("expected second update to patch in place, updated=%d", repo.updated)
	}
	if settings.UPIID == nil || *settings.UPIID != upi {
		t.Fatal("earlier fields must survive later patches")
	}
	if settings.PayeeName == nil || *settings.PayeeName != payee {
		t.Fatalf("expected payee name to be stored, got %v", settings.PayeeName)
	}
}
