package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopdesk/shopdesk-backend/api/controllers"
	"github.com/shopdesk/shopdesk-backend/api/middleware"
	"github.com/shopdesk/shopdesk-backend/internal/notifications"
	"github.com/shopdesk/shopdesk-backend/internal/reports"
	"github.com/shopdesk/shopdesk-backend/internal/settings"
	"github.com/shopdesk/shopdesk-backend/internal/shops"
	"github.com/shopdesk/shopdesk-backend/internal/subscriptions"
	"github.com/shopdesk/shopdesk-backend/internal/transactions"
	"github.com/shopdesk/shopdesk-backend/pkg/config"
	"github.com/shopdesk/shopdesk-backend/pkg/logger"
)

// Deps collects everything the router wires into handlers.
type Deps struct {
	Config        *config.Config
	Logger        *logger.Logger
	DB            controllers.Pinger
	Redis         controllers.Pinger
	Shops         shops.Service
	Subscriptions subscriptions.Service
	Transactions  transactions.Service
	Notifications notifications.Service
	Reports       reports.Service
	Settings      settings.Service
}

// NewRouter assembles the full HTTP surface: the admin back office under
// /api/admin/v1 and the shop portal under /api/v1.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.ActorContext(logg))

		r.Route("/shops", func(r chi.Router) {
			r.Get("/", controllers.ShopList(deps.Shops, logg))
			r.Post("/", controllers.ShopCreate(deps.Shops, logg))
			r.Route("/{shopId}", func(r chi.Router) {
				r.Get("/", controllers.ShopDetail(deps.Shops, logg))
				r.Put("/", controllers.ShopUpdate(deps.Shops, logg))
				r.Delete("/", controllers.ShopDelete(deps.Shops, logg))
				r.Put("/flags", controllers.ShopSetFlags(deps.Shops, logg))

				r.Route("/subscription", func(r chi.Router) {
					r.Get("/", controllers.SubscriptionCurrent(deps.Subscriptions, logg))
					r.Post("/", controllers.SubscriptionCreate(deps.Subscriptions, logg))
					r.Get("/history", controllers.SubscriptionHistory(deps.Subscriptions, logg))
					r.Put("/status", controllers.SubscriptionSetStatus(deps.Subscriptions, logg))
				})

				r.Get("/summary", controllers.ReportShopSummary(deps.Reports, logg))
			})
		})

		r.Route("/subscriptions/{subscriptionId}", func(r chi.Router) {
			r.Patch("/", controllers.SubscriptionUpdate(deps.Subscriptions, logg))
			r.Delete("/", controllers.SubscriptionDelete(deps.Subscriptions, logg))
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", controllers.TransactionList(deps.Transactions, logg))
			r.Post("/", controllers.TransactionRecord(deps.Transactions, logg))
			r.Route("/{transactionId}", func(r chi.Router) {
				r.Get("/", controllers.TransactionDetail(deps.Transactions, logg))
				r.Patch("/", controllers.TransactionUpdate(deps.Transactions, logg))
				r.Delete("/", controllers.TransactionDelete(deps.Transactions, logg))
				r.Post("/approve", controllers.TransactionApprove(deps.Transactions, logg))
			})
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Post("/", controllers.NotificationSend(deps.Notifications, logg))
			r.Delete("/{notificationId}", controllers.NotificationDelete(deps.Notifications, logg))
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/overview", controllers.ReportOverview(deps.Reports, logg))
			r.Get("/revenue", controllers.ReportRevenue(deps.Reports, logg))
		})

		r.Route("/settings/payment", func(r chi.Router) {
			r.Get("/", controllers.PaymentSettingsGet(deps.Settings, logg))
			r.Put("/", controllers.PaymentSettingsUpdate(deps.Settings, logg))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.ShopContext(logg))

		r.Get("/me", controllers.PortalProfile(deps.Shops, logg))
		r.Get("/billing", controllers.PortalBilling(deps.Reports, logg))
		r.Get("/payment-page", controllers.PortalPaymentPage(deps.Settings, deps.Reports, logg))

		r.Route("/payments", func(r chi.Router) {
			r.Get("/", controllers.PortalTransactions(deps.Transactions, logg))
			r.Post("/", controllers.PortalSubmitPayment(deps.Transactions, logg))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(deps.Notifications, logg))
			r.Get("/unread-count", controllers.NotificationUnreadCount(deps.Notifications, logg))
			r.Post("/{notificationId}/read", controllers.MarkNotificationRead(deps.Notifications, logg))
			r.Post("/read-all", controllers.MarkAllNotificationsRead(deps.Notifications, logg))
		})
	})

	return r
}
