package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ogdeig/diamond-ave-storefront/api/controllers"
	cartcontrollers "github.com/ogdeig/diamond-ave-storefront/api/controllers/cart"
	"github.com/ogdeig/diamond-ave-storefront/api/middleware"
	"github.com/ogdeig/diamond-ave-storefront/internal/cart"
	"github.com/ogdeig/diamond-ave-storefront/internal/catalog"
	"github.com/ogdeig/diamond-ave-storefront/internal/orders"
	"github.com/ogdeig/diamond-ave-storefront/internal/quickorder"
	"github.com/ogdeig/diamond-ave-storefront/pkg/config"
	"github.com/ogdeig/diamond-ave-storefront/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	store *catalog.Store,
	ledger *cart.Ledger,
	widget *quickorder.Widget,
	submitter *orders.Submitter,
	shopPinger controllers.Pinger,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, shopPinger))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/products", controllers.CatalogProducts(store, logg))
			r.Get("/categories", controllers.CatalogCategories(store))
			r.Post("/reload", controllers.CatalogReload(store, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartcontrollers.CartFetch(ledger, logg))
			r.Post("/items", cartcontrollers.CartAdd(ledger, logg))
			r.Put("/items/{productId}", cartcontrollers.CartSetQty(ledger, logg))
			r.Post("/items/{productId}/increment", cartcontrollers.CartIncrement(ledger, logg))
			r.Post("/items/{productId}/decrement", cartcontrollers.CartDecrement(ledger, logg))
			r.Delete("/items/{productId}", cartcontrollers.CartRemove(ledger, logg))
		})

		r.Route("/quick-order", func(r chi.Router) {
			r.Get("/", controllers.QuickOrderFetch(widget))
			r.Post("/select", controllers.QuickOrderSelect(widget, logg))
			r.Post("/quantity", controllers.QuickOrderQuantity(widget, logg))
			r.Post("/add", controllers.QuickOrderAdd(widget, logg))
		})

		r.Post("/orders", controllers.OrderSubmit(submitter, logg))
	})

	return r
}
