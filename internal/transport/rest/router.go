package rest

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/skillhub-backend/internal/config"
	"github.com/heartmarshall/skillhub-backend/internal/transport/middleware"
)

// NewRouter mounts the health endpoints and, when enabled, the trigger API.
// Trigger routes get the sync-token check and the per-IP limit on top of
// the request id, logging and recovery applied to every route.
func NewRouter(
	cfg config.SyncAPIConfig,
	health *HealthHandler,
	trigger *TriggerHandler,
	limiter *middleware.RateLimiter,
	logger *slog.Logger,
) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	if cfg.Enabled {
		guard := middleware.Chain(
			limiter.Limit(cfg.RequestsPerMinute),
			middleware.SyncToken(cfg.Token),
		)
		mux.Handle("POST /api/sync", guard(http.HandlerFunc(trigger.Sync)))
		mux.Handle("POST /api/enrich", guard(http.HandlerFunc(trigger.Enrich)))
	}

	return middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
	)(mux)
}
