package shops

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/shopdesk/shopdesk-backend/pkg/db/models"
	pkgerrors "github.com/shopdesk/shopdesk-backend/pkg/errors"
	"github.com/shopdesk/shopdesk-backend/pkg/types"
)

// Service exposes shop directory operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Shop, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Shop, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Shop, error)
	List(ctx context.Context) ([]models.Shop, error)
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
	SetFlags(ctx context.Context, id uuid.UUID, flags types.ShopFlags) (*models.Shop, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService builds a shop service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("shop repository required")
	}
	return &service{repo: repo}, nil
}

// CreateInput captures the fields for registering a shop.
type CreateInput struct {
	Name      string
	OwnerName *string
	Email     *string
	Phone     *string
	Address   *string
}

// UpdateInput captures the editable shop fields. Nil pointers leave the
// stored value untouched.
type UpdateInput struct {
	Name      *string
	OwnerName *string
	Email     *string
	Phone     *string
	Address   *string
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Shop, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop name is required")
	}

	shop := &models.Shop{
		Name:      name,
		OwnerName: input.OwnerName,
		Email:     input.Email,
		Phone:     input.Phone,
		Address:   input.Address,
	}
	if err := s.repo.Create(ctx, shop); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating shop")
	}
	return shop, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Shop, error) {
	shop, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop name is required")
		}
		shop.Name = name
	}
	if input.OwnerName != nil {
		shop.OwnerName = input.OwnerName
	}
	if input.Email != nil {
		shop.Email = input.Email
	}
	if input.Phone != nil {
		shop.Phone = input.Phone
	}
	if input.Address != nil {
		shop.Address = input.Address
	}

	if err := s.repo.Update(ctx, shop); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating shop")
	}
	return shop, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	return s.mustGet(ctx, id)
}

func (s *service) List(ctx context.Context) ([]models.Shop, error) {
	return s.repo.List(ctx)
}

func (s *service) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	return s.repo.ListIDs(ctx)
}

// SetFlags replaces the shop's access flags wholesale. Clearing every flag
// stores the plain active marker.
func (s *service) SetFlags(ctx context.Context, id uuid.UUID, flags types.ShopFlags) (*models.Shop, error) {
	shop, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}

	shop.Status = flags
	if err := s.repo.Update(ctx, shop); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating shop flags")
	}
	return shop, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.mustGet(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting shop")
	}
	return nil
}

func (s *service) mustGet(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop id is required")
	}
	shop, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading shop")
	}
	if shop == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
	}
	return shop, nil
}
