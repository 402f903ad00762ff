package shops

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopdesk/shopdesk-backend/pkg/db/models"
	pkgerrors "github.com/shopdesk/shopdesk-backend/pkg/errors"
	"github.com/shopdesk/shopdesk-backend/pkg/types"
)

type fakeRepository struct {
	rows    map[uuid.UUID]*models.Shop
	updated []*models.Shop
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{rows: map[uuid.UUID]*models.Shop{}}
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepository) Create(ctx context.Context, shop *models.Shop) error {
	if shop.ID == uuid.Nil {
		shop.ID = uuid.New()
	}
	f.rows[shop.ID] = shop
	return nil
}

func (f *fakeRepository) Update(ctx context.Context, shop *models.Shop) error {
	f.rows[shop.ID] = shop
	f.updated = append(f.updated, shop)
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	return f.rows[id], nil
}

func (f *fakeRepository) List(ctx context.Context) ([]models.Shop, error) {
	var shops []models.Shop
	for _, shop := range f.rows {
		shops = append(shops, *shop)
	}
	return shops, nil
}

func (f *fakeRepository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for id := range f.rows {
		ids = append(ids, id)
	}
	return ids, nil
}

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}
	return svc
}

func TestService_CreateRequiresName(t *testing.T) {
	svc := newTestService(t, newFakeRepository())

	_, err := svc.Create(context.Background(), CreateInput{Name: "   "})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	shop, err := svc.Create(context.Background(), CreateInput{Name: "Corner Store"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if shop.Status.Restricted() {
		t.Fatalf("new shops must start unrestricted, got %q", shop.Status)
	}
}

func TestService_SetFlagsRoundTrips(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(t, repo)

	shop, err := svc.Create(context.Background(), CreateInput{Name: "Corner Store"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	flags := types.ShopFlags{Frozen: true, Warning: true}
	updated, err := svc.SetFlags(context.Background(), shop.ID, flags)
	if err != nil {
		t.Fatalf("SetFlags error: %v", err)
	}
	if got := updated.Status.String(); got != "frozen,warning" {
		t.Fatalf("unexpected stored flags %q", got)
	}

	cleared, err := svc.SetFlags(context.Background(), shop.ID, types.ShopFlags{})
	if err != nil {
		t.Fatalf("SetFlags error: %v", err)
	}
	if got := cleared.Status.String(); got != "active" {
		t.Fatalf("clearing all flags should store active, got %q", got)
	}
}

func TestService_GetUnknownShop(t *testing.T) {
	svc := newTestService(t, newFakeRepository())

	_, err := svc.Get(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestService_UpdatePartialFields(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(t, repo)

	owner := "Asha"
	shop, err := svc.Create(context.Background(), CreateInput{Name: "Corner Store", OwnerName: &owner})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	phone := "+91 98765 43210"
	updated, err := svc.Update(context.Background(), shop.ID, UpdateInput{Phone: &phone})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Phone == nil || *updated.Phone != phone {
		t.Fatalf("expected phone to update, got %v", updated.Phone)
	}
	if updated.OwnerName == nil || *updated.OwnerName != owner {
		t.Fatal("untouched fields must be preserved")
	}
	if updated.Name != "Corner Store" {
		t.Fatalf("name should be unchanged, got %q", updated.Name)
	}
}
