package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/redmonkez12/ledger-api/internal/auth"
	"github.com/redmonkez12/ledger-api/internal/config"
	"github.com/redmonkez12/ledger-api/internal/httputil"
	"github.com/redmonkez12/ledger-api/internal/logging"
	"github.com/redmonkez12/ledger-api/internal/metrics"
	"github.com/redmonkez12/ledger-api/internal/transaction"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth           *auth.Handler
	AuthMiddleware *auth.Middleware
	Transactions   *transaction.Handler
	Metrics        *metrics.Metrics
	// Static serves everything outside /api. Nil disables it.
	Static http.Handler
}

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, h Handlers, logger *logging.Logger) *chi.Mux {
	r := chi.NewRouter()

	// CORS - must be first
	if len(cfg.Server.TrustedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Server.TrustedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"Content-Length", "X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300, // 5 minutes
		}))
	}

	// Global middleware
	r.Use(SecurityHeaders)               // Security headers on all responses
	r.Use(middleware.Recoverer)          // Recover from panics
	r.Use(middleware.RequestID)          // Add request ID
	r.Use(middleware.RealIP)             // Set RemoteAddr to real IP
	r.Use(logging.RequestLogger(logger)) // Structured logging with request context
	if h.Metrics != nil {
		r.Use(h.Metrics.Middleware)
	}
	r.Use(middleware.Compress(5)) // Compress responses

	// Public routes
	r.Get("/health", handleHealth)
	if h.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.Metrics.Handler())
	}

	// Swagger UI - only in development
	// Production builds will not have this route at all
	if cfg.Server.IsDevelopment() {
		logger.Info("swagger UI enabled", "path", "/swagger/")
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	} else {
		logger.Info("swagger UI disabled (production mode)")
	}

	r.Route("/api", func(r chi.Router) {
		r.NotFound(handleAPINotFound)

		// Auth routes (public)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)

			r.With(h.AuthMiddleware.RequireAuth).Get("/me", h.Auth.Me)
		})

		// Protected routes (require authentication)
		r.Group(func(r chi.Router) {
			r.Use(h.AuthMiddleware.RequireAuth)
			r.Get("/transactions", h.Transactions.List)
			r.Post("/transactions", h.Transactions.Create)
		})
	})

	if h.Static != nil {
		r.Handle("/*", h.Static)
	}

	return r
}

// handleHealth is a simple health check endpoint
// @Summary      Health check
// @Description  Check if the API is running
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /health [get]
func handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, map[string]string{"status": "api is running"}, http.StatusOK)
}

func handleAPINotFound(w http.ResponseWriter, r *http.Request) {
	httputil.RespondErrorWithCode(w, "not found", httputil.CodeNotFound, http.StatusNotFound)
}
