package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/derob357/sisters-promise/internal/config"
	"github.com/derob357/sisters-promise/internal/pkg/httputil"
	"github.com/derob357/sisters-promise/internal/ratelimit"
)

// SetupRoutes configures the router: defensive middleware first, then
// CORS, then the API routes grouped by rate-limit policy.
func SetupRoutes(h *Handlers, cfg *config.Config, limiters Limiters) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(recoverer(cfg.Server.Development))
	r.Use(securityHeaders)
	r.Use(limitBody)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         3600,
	}))

	r.Route("/api", func(r chi.Router) {
		// Catalog reads and health share the general policy.
		r.Group(func(r chi.Router) {
			r.Use(ratelimit.Middleware(limiters.General))
			r.Get("/health", h.HealthCheck)
			r.Get("/products", h.ListProducts)
			r.Get("/products/{id}", h.GetProduct)
		})

		r.Group(func(r chi.Router) {
			r.Use(ratelimit.Middleware(limiters.Checkout))
			r.Post("/checkout", h.Checkout)
		})

		r.Group(func(r chi.Router) {
			r.Use(ratelimit.Middleware(limiters.Contact))
			r.Post("/contact", h.Contact)
		})
	})

	// Unknown paths and methods answer in the standard envelope too.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.NotFound(w, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httputil.Error(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}
