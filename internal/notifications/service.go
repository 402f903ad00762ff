package notifications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/shopdesk/shopdesk-backend/pkg/db/models"
	"github.com/shopdesk/shopdesk-backend/pkg/enums"
	pkgerrors "github.com/shopdesk/shopdesk-backend/pkg/errors"
	"github.com/shopdesk/shopdesk-backend/pkg/pagination"
)

// Service defines notification delivery and read operations.
type Service interface {
	Send(ctx context.Context, input SendInput) (int, error)
	NotifyShop(ctx context.Context, shopID uuid.UUID, notificationType enums.NotificationType, title, message string) error
	List(ctx context.Context, params ListParams) (*ListResult, error)
	UnreadCount(ctx context.Context, shopID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, shopID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, shopID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	PruneRead(ctx context.Context, cutoff time.Time) (int64, error)
}

// ShopDirectory resolves the recipients of a broadcast.
type ShopDirectory interface {
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
}

// ServiceParams groups dependencies for the notifications service.
type ServiceParams struct {
	Repo  Repository
	Shops ShopDirectory
}

type service struct {
	repo  Repository
	shops ShopDirectory
}

// NewService wires notifications dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("notifications repository required")
	}
	if params.Shops == nil {
		return nil, fmt.Errorf("shop directory required")
	}
	return &service{repo: params.Repo, shops: params.Shops}, nil
}

// SendInput addresses a notification. A nil ShopID broadcasts to every shop.
type SendInput struct {
	ShopID  *uuid.UUID
	Type    enums.NotificationType
	Title   string
	Message string
}

// ListParams configures pagination for notifications.
type ListParams struct {
	ShopID     uuid.UUID
	Limit      int
	Cursor     string
	UnreadOnly bool
}

// ListResult wraps returned notifications and the cursor for the next page.
type ListResult struct {
	Items  []models.Notification `json:"items"`
	Cursor string                `json:"cursor"`
}

// Send delivers a notification to one shop or, when no shop is addressed, to
// every shop. The broadcast keeps going past per-shop failures and reports
// them together with the delivered count.
func (s *service) Send(ctx context.Context, input SendInput) (int, error) {
	if !input.Type.IsValid() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid notification type %q", input.Type))
	}
	if strings.TrimSpace(input.Title) == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if strings.TrimSpace(input.Message) == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "message is required")
	}

	if input.ShopID != nil {
		if *input.ShopID == uuid.Nil {
			return 0, pkgerrors.New(pkgerrors.CodeValidation, "shop id is required")
		}
		if err := s.create(ctx, *input.ShopID, input.Type, input.Title, input.Message); err != nil {
			return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sending notification")
		}
		return 1, nil
	}

	shopIDs, err := s.shops.ListIDs(ctx)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolving broadcast recipients")
	}

	sent := 0
	var errs error
	for _, shopID := range shopIDs {
		if err := s.create(ctx, shopID, input.Type, input.Title, input.Message); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("shop %s: %w", shopID, err))
			continue
		}
		sent++
	}
	if errs != nil {
		return sent, pkgerrors.Wrap(pkgerrors.CodeInternal, errs, "broadcast partially failed")
	}
	return sent, nil
}

// NotifyShop delivers a single system notification.
func (s *service) NotifyShop(ctx context.Context, shopID uuid.UUID, notificationType enums.NotificationType, title, message string) error {
	if shopID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "shop id is required")
	}
	if !notificationType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid notification type %q", notificationType))
	}
	if err := s.create(ctx, shopID, notificationType, title, message); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sending notification")
	}
	return nil
}

func (s *service) create(ctx context.Context, shopID uuid.UUID, notificationType enums.NotificationType, title, message string) error {
	return s.repo.Create(ctx, &models.Notification{
		ShopID:  shopID,
		Type:    notificationType,
		Title:   title,
		Message: message,
	})
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.ShopID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop id required")
	}

	query := listNotificationsParams{
		ShopID:     params.ShopID,
		Limit:      params.Limit,
		UnreadOnly: params.UnreadOnly,
	}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = cursor
	}

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list notifications")
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}

	return &ListResult{
		Items:  rows,
		Cursor: cursor,
	}, nil
}

func (s *service) UnreadCount(ctx context.Context, shopID uuid.UUID) (int64, error) {
	if shopID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "shop id required")
	}
	count, err := s.repo.UnreadCount(ctx, shopID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting unread notifications")
	}
	return count, nil
}

func (s *service) MarkRead(ctx context.Context, shopID, notificationID uuid.UUID) error {
	if shopID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "shop id required")
	}
	if notificationID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "notification id required")
	}

	result, err := s.repo.MarkRead(ctx, shopID, notificationID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark notification read")
	}
	if !result.Found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, shopID uuid.UUID) (int64, error) {
	if shopID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "shop id required")
	}

	count, err := s.repo.MarkAllRead(ctx, shopID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark notifications read")
	}
	return count, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "notification id required")
	}
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting notification")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
	}
	return nil
}

func (s *service) PruneRead(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.repo.DeleteReadBefore(ctx, cutoff)
}
