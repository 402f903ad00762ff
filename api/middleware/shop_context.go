package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/shopdesk/shopdesk-backend/api/responses"
	pkgerrors "github.com/shopdesk/shopdesk-backend/pkg/errors"
	"github.com/shopdesk/shopdesk-backend/pkg/logger"
)

const (
	shopIDHeader  = "X-Shop-Id"
	actorIDHeader = "X-Actor-Id"
)

// ShopContext requires a valid X-Shop-Id header and puts the shop into the
// request context. Identity verification happens upstream at the gateway;
// this layer only scopes requests to the tenant.
func ShopContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			shopID := strings.TrimSpace(r.Header.Get(shopIDHeader))
			if shopID == "" {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "shop header missing"))
				return
			}
			if _, err := uuid.Parse(shopID); err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid shop id"))
				return
			}

			ctx = WithShopID(ctx, shopID)
			if logg != nil {
				ctx = logg.WithShopID(ctx, shopID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorContext records the acting admin user when the header is present.
func ActorContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if actorID := strings.TrimSpace(r.Header.Get(actorIDHeader)); actorID != "" {
				ctx = WithActorID(ctx, actorID)
				if logg != nil {
					ctx = logg.WithActorID(ctx, actorID)
				}
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
