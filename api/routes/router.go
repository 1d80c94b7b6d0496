package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/mandilink-backend/api/controllers"
	"github.com/angelmondragon/mandilink-backend/api/middleware"
	"github.com/angelmondragon/mandilink-backend/internal/catalog"
	"github.com/angelmondragon/mandilink-backend/internal/identity"
	"github.com/angelmondragon/mandilink-backend/internal/orders"
	"github.com/angelmondragon/mandilink-backend/pkg/config"
	"github.com/angelmondragon/mandilink-backend/pkg/db"
	"github.com/angelmondragon/mandilink-backend/pkg/enums"
	"github.com/angelmondragon/mandilink-backend/pkg/logger"
	"github.com/angelmondragon/mandilink-backend/pkg/metrics"
	pkgredis "github.com/angelmondragon/mandilink-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       *pkgredis.Client
	HTTPMetrics *metrics.HTTPMetrics

	Orders   orders.Service
	Catalog  catalog.Service
	Identity identity.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	apiPolicy := middleware.RateLimitPolicy{
		Name:   "api",
		Window: time.Minute,
		Limit:  300,
	}

	var idemStore pkgredis.IdempotencyStore
	if deps.Redis != nil {
		idemStore = deps.Redis
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RateLimit(apiPolicy, deps.Redis, logg))
		r.Use(middleware.Idempotency(idemStore, logg))

		// both roles
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(deps.Orders, logg))
			r.Get("/{orderId}", controllers.OrderDetail(deps.Orders, logg))
			r.Post("/{orderId}/cancel", controllers.CancelOrder(deps.Orders, logg))
		})
		r.Get("/analytics/orders", controllers.OrderAnalytics(deps.Orders, logg))
		r.Get("/products/{productId}/compare", controllers.CompareProduct(deps.Catalog, logg))
		r.Get("/suppliers/{supplierId}", controllers.SupplierProfile(deps.Identity, logg))

		r.Route("/vendor", func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.RoleVendor, logg))
			r.Post("/orders", controllers.VendorPlaceOrder(deps.Orders, logg))
		})
		r.With(middleware.RequireRole(enums.RoleVendor, logg)).
			Post("/orders/{orderId}/rating", controllers.VendorRateOrder(deps.Orders, logg))

		r.Route("/supplier", func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.RoleSupplier, logg))
			r.Get("/offers", controllers.SupplierCatalog(deps.Catalog, logg))
			r.Post("/offers", controllers.SupplierListOffer(deps.Catalog, logg))
			r.Patch("/offers/{productId}", controllers.SupplierUpdateOffer(deps.Catalog, logg))
			r.Delete("/offers/{productId}", controllers.SupplierDeleteOffer(deps.Catalog, logg))
		})
		r.With(middleware.RequireRole(enums.RoleSupplier, logg)).
			Post("/orders/{orderId}/status", controllers.UpdateOrderStatus(deps.Orders, logg))
	})

	return r
}
