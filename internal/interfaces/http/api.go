package http

import (
	"context"
	"net/http"
	"time"

	"github.com/turtacn/ScholarAI/internal/app"
	"github.com/turtacn/ScholarAI/internal/config"
	"github.com/turtacn/ScholarAI/internal/infrastructure/auth/token"
	"github.com/turtacn/ScholarAI/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ScholarAI/internal/interfaces/http/handlers"
	"github.com/turtacn/ScholarAI/internal/interfaces/http/middleware"
)

// API is the HTTP surface of an application State.
type API struct {
	Handler http.Handler
	limiter *middleware.RateLimiter
	logger  logging.Logger
}

// NewAPI wires handlers and middleware over st.  clock dates manual scans;
// nil means time.Now.
func NewAPI(st *app.State, version string, clock func() time.Time) *API {
	cfg := st.Config
	log := st.Logger

	rc := RouterConfig{
		SchemeHandler:       handlers.NewSchemeHandler(st.Catalog, log.Named("schemes"), cfg.Server.MaxBodySize),
		NotificationHandler: handlers.NewNotificationHandler(st.Notifier, log.Named("notifications"), clock),
		AssistantHandler:    handlers.NewAssistantHandler(st.Assistant, log.Named("assistant"), cfg.Server.MaxBodySize),
		AccountHandler:      handlers.NewAccountHandler(st.Accounts, log.Named("accounts"), cfg.Server.MaxBodySize),
		HealthHandler: handlers.NewHealthHandler(version, handlers.CheckFunc{
			Label: "dependencies",
			Fn:    func(ctx context.Context) error { return st.Ready(ctx) },
		}),
		Auth: token.NewMiddleware(st.Tokens, log.Named("auth"), func(w http.ResponseWriter, _ *http.Request, err error) {
			handlers.WriteError(w, err)
		}),
		LoggingConfig: middleware.DefaultLoggingConfig(),
		Logger:        log,
		Metrics:       st.Metrics,
	}

	if len(cfg.Server.CORSAllowedOrigins) > 0 {
		cors := middleware.DefaultCORSConfig()
		cors.AllowedOrigins = cfg.Server.CORSAllowedOrigins
		rc.CORS = &cors
	}

	a := &API{logger: log}
	if cfg.RateLimit.Enabled {
		a.limiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, 0)
		rc.RateLimiter = a.limiter
		rc.RateLimitConfig = middleware.DefaultRateLimitConfig()
	}
	if st.Collector != nil {
		rc.MetricsCollector = st.Collector
		rc.MetricsPath = cfg.Metrics.Path
	}

	a.Handler = NewRouter(rc)
	return a
}

// ApplyConfig applies the settings that can change without a restart.
// Currently that is the rate limit.
func (a *API) ApplyConfig(cfg *config.Config) {
	if a.limiter == nil || !cfg.RateLimit.Enabled {
		return
	}
	a.limiter.Update(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	a.logger.Info("rate limit updated",
		logging.Int("requests_per_minute", cfg.RateLimit.RequestsPerMinute),
		logging.Int("burst", cfg.RateLimit.Burst))
}

// Close stops background work owned by the API.
func (a *API) Close() {
	if a.limiter != nil {
		a.limiter.Stop()
	}
}

//Personal.AI order the ending
