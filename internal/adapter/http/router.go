package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/finlane/payledger/internal/adapter/http/handler"
	"github.com/finlane/payledger/internal/adapter/http/middleware"
	"github.com/finlane/payledger/internal/domain"
	"github.com/finlane/payledger/internal/infrastructure/auth"
	"github.com/finlane/payledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AuthHandler      *handler.AuthHandler
	PaymentHandler   *handler.PaymentHandler
	UserHandler      *handler.UserHandler
	EventsHandler    *handler.EventsHandler
	HealthHandler    *handler.HealthHandler
	JWTManager       *auth.JWTManager
	IdempotencyStore usecase.IdempotencyStore
	Logger           zerolog.Logger
	LoginRateLimit   float64
	LoginRateBurst   int
}

// NewRouter creates the HTTP router. The route paths are a compatibility
// contract with existing clients and are mounted at the root.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.NewRecoveryMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)

	// Operational endpoints, unauthenticated
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// Login, rate limited
	loginLimiter := middleware.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateBurst)
	r.With(loginLimiter.Limit).Post("/auth/login", cfg.AuthHandler.Login)

	// Everything else requires a valid token
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.JWTManager))

		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.Logger).Wrap)
		}

		r.Route("/payments", func(r chi.Router) {
			r.Get("/", cfg.PaymentHandler.List)
			r.Post("/", cfg.PaymentHandler.Create)
			r.Get("/stats", cfg.PaymentHandler.Stats)
			r.Get("/export", cfg.PaymentHandler.Export)
			r.Get("/{id}", cfg.PaymentHandler.Get)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", cfg.UserHandler.List)
			r.With(middleware.RequireRole(domain.RoleAdmin)).Post("/", cfg.UserHandler.Create)
		})

		r.Get("/events", cfg.EventsHandler.Stream)
	})

	return r
}
