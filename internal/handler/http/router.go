package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SVO0808/SVO-STUDIO/pkg/health"
	"github.com/SVO0808/SVO-STUDIO/pkg/middleware"

	"github.com/SVO0808/SVO-STUDIO/internal/catalog"
	"github.com/SVO0808/SVO-STUDIO/internal/service"
)

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	cartService *service.CartService,
	checkoutService *service.CheckoutService,
	catalogClient *catalog.Client,
	healthHandler *health.Handler,
	corsCfg middleware.CORSConfig,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.CORS(corsCfg))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	cartHandler := NewCartHandler(cartService, logger)
	checkoutHandler := NewCheckoutHandler(checkoutService, logger)
	catalogHandler := NewCatalogHandler(catalogClient, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		// The catalog is browsable without a session.
		r.Get("/products", catalogHandler.ListProducts)
		r.Get("/products/{id}", catalogHandler.GetProduct)

		r.Group(func(r chi.Router) {
			r.Use(SessionIDFromHeader)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.GetCart)
				r.Delete("/", cartHandler.ClearCart)
				r.Get("/quote", cartHandler.Quote)
				r.Post("/coupon", cartHandler.ApplyCoupon)

				r.Post("/items", cartHandler.AddItem)
				r.Put("/items/{index}", cartHandler.ChangeQuantity)
				r.Delete("/items/{index}", cartHandler.RemoveItem)
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Post("/payment/validate", checkoutHandler.ValidatePayment)
				r.Post("/confirm", checkoutHandler.ConfirmOrder)
			})
		})
	})

	return r
}
