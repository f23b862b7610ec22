package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/turtacn/ScholarAI/internal/domain/user"
	"github.com/turtacn/ScholarAI/internal/infrastructure/auth/token"
	"github.com/turtacn/ScholarAI/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ScholarAI/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/ScholarAI/internal/interfaces/http/handlers"
	"github.com/turtacn/ScholarAI/internal/interfaces/http/middleware"
	"github.com/turtacn/ScholarAI/pkg/errors"
)

// RouterConfig aggregates the handlers and middleware the route tree is
// built from.  Nil handlers leave their routes unmounted.
type RouterConfig struct {
	// Handlers
	SchemeHandler       *handlers.SchemeHandler
	NotificationHandler *handlers.NotificationHandler
	AssistantHandler    *handlers.AssistantHandler
	AccountHandler      *handlers.AccountHandler
	HealthHandler       *handlers.HealthHandler

	// Middleware
	Auth            *token.Middleware
	CORS            *middleware.CORSConfig
	RateLimiter     *middleware.RateLimiter
	RateLimitConfig middleware.RateLimitConfig
	LoggingConfig   middleware.LoggingConfig

	// Infrastructure
	Logger           logging.Logger
	Metrics          *prometheus.AppMetrics
	MetricsCollector prometheus.MetricsCollector
	MetricsPath      string
}

// NewRouter builds the route tree:
//
//	/healthz, /readyz, /metrics             public
//	/api/v1/auth/*, GET /api/v1/schemes*   public
//	/api/v1/notifications*, /assistant/*,
//	/api/v1/profile                         bearer token
//	/api/v1/admin/*                         bearer token with the admin role
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	r := chi.NewRouter()

	// --- Global middleware ---
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogging(logger.Named("http"), cfg.Metrics, cfg.LoggingConfig))
	r.Use(chimw.Recoverer)
	if cfg.CORS != nil {
		r.Use(middleware.CORS(*cfg.CORS))
	}
	if cfg.RateLimiter != nil {
		r.Use(middleware.RateLimit(cfg.RateLimiter, cfg.RateLimitConfig, cfg.Metrics, handlers.WriteError))
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		handlers.WriteError(w, errors.NotFound("route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		handlers.WriteError(w, errors.New(errors.ErrCodeBadRequest, "method not allowed"))
	})

	// --- Probes and metrics ---
	if cfg.HealthHandler != nil {
		r.Get("/healthz", cfg.HealthHandler.Liveness)
		r.Get("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.MetricsCollector != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Handle(path, cfg.MetricsCollector.Handler())
	}

	// --- API v1 ---
	r.Route("/api/v1", func(api chi.Router) {
		registerPublicRoutes(api, cfg)
		if cfg.Auth == nil {
			return
		}
		api.Group(func(authed chi.Router) {
			authed.Use(cfg.Auth.Authenticate)
			registerUserRoutes(authed, cfg)

			authed.Route("/admin", func(admin chi.Router) {
				admin.Use(cfg.Auth.RequireRole(string(user.RoleAdmin)))
				registerAdminRoutes(admin, cfg)
			})
		})
	})

	return r
}

func registerPublicRoutes(r chi.Router, cfg RouterConfig) {
	if h := cfg.AccountHandler; h != nil {
		r.Post("/auth/login", h.Login)
		r.Post("/auth/register", h.Register)
	}
	if h := cfg.SchemeHandler; h != nil {
		r.Get("/schemes", h.List)
		r.Get("/schemes/{id}", h.Get)
	}
}

func registerUserRoutes(r chi.Router, cfg RouterConfig) {
	if h := cfg.NotificationHandler; h != nil {
		r.Route("/notifications", func(nr chi.Router) {
			nr.Get("/", h.List)
			nr.Get("/unread-count", h.UnreadCount)
			nr.Post("/{id}/read", h.MarkRead)
		})
	}
	if h := cfg.AssistantHandler; h != nil {
		r.Route("/assistant", func(ar chi.Router) {
			ar.Post("/messages", h.Ask)
			ar.Get("/history", h.History)
			ar.Delete("/history", h.ClearHistory)
		})
	}
	if h := cfg.AccountHandler; h != nil {
		r.Get("/profile", h.Profile)
		r.Put("/profile", h.UpdateProfile)
	}
}

func registerAdminRoutes(r chi.Router, cfg RouterConfig) {
	if h := cfg.SchemeHandler; h != nil {
		r.Route("/schemes", func(sr chi.Router) {
			sr.Post("/", h.Create)
			sr.Patch("/{id}", h.Update)
			sr.Delete("/{id}", h.Delete)
		})
	}
	if h := cfg.NotificationHandler; h != nil {
		r.Post("/notifications/scan", h.Scan)
	}
}

//Personal.AI order the ending
