// Package app wires configuration, adapters and services together.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/heartmarshall/skillhub-backend/internal/adapter/postgres"
	"github.com/heartmarshall/skillhub-backend/internal/adapter/postgres/skill"
	"github.com/heartmarshall/skillhub-backend/internal/adapter/provider/github"
	"github.com/heartmarshall/skillhub-backend/internal/adapter/provider/llm"
	"github.com/heartmarshall/skillhub-backend/internal/adapter/provider/translate"
	redisadapter "github.com/heartmarshall/skillhub-backend/internal/adapter/redis"
	"github.com/heartmarshall/skillhub-backend/internal/adapter/redis/lock"
	"github.com/heartmarshall/skillhub-backend/internal/config"
	"github.com/heartmarshall/skillhub-backend/internal/enricher"
	"github.com/heartmarshall/skillhub-backend/internal/service/enrichment"
	"github.com/heartmarshall/skillhub-backend/internal/service/skillsync"
	"github.com/heartmarshall/skillhub-backend/internal/transport/middleware"
	"github.com/heartmarshall/skillhub-backend/internal/transport/rest"
)

const limiterCleanupInterval = time.Minute

// App holds the long-lived dependencies of one process.
type App struct {
	cfg   *config.Config
	log   *slog.Logger
	pool  *pgxpool.Pool
	redis *goredis.Client

	Sync   *skillsync.Service
	Enrich *enrichment.Service
}

// New connects to PostgreSQL and builds every service. Redis is dialed
// lazily so a sync run does not depend on it.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	rc, err := redisadapter.Open(cfg.Redis)
	if err != nil {
		pool.Close()
		return nil, err
	}

	gh, err := github.NewClient(ctx, cfg.GitHub, logger)
	if err != nil {
		_ = rc.Close()
		pool.Close()
		return nil, fmt.Errorf("create github client: %w", err)
	}

	skills := skill.New(pool)
	tx := postgres.NewTxManager(pool)

	translator := translate.NewTranslator(
		cfg.Translation,
		cfg.LLM,
		llm.NewClient(cfg.LLM, cfg.LLM.TranslateTimeout, logger),
		logger,
	)
	syncSvc := skillsync.NewService(logger, gh, skills, tx, translator,
		skillsync.DefaultStrategies(cfg.GitHub, cfg.Newest),
	)

	generator := enricher.NewGenerator(llm.NewClient(cfg.LLM, cfg.LLM.GenerateTimeout, logger), logger)
	enrichSvc := enrichment.NewService(logger, cfg.Enrichment, cfg.LLM,
		lock.New(rc, lock.EnrichmentKey, logger),
		skills, tx, generator,
	)

	return &App{
		cfg:    cfg,
		log:    logger,
		pool:   pool,
		redis:  rc,
		Sync:   syncSvc,
		Enrich: enrichSvc,
	}, nil
}

// Close releases the connections.
func (a *App) Close() {
	if err := a.redis.Close(); err != nil {
		a.log.Warn("close redis", slog.String("error", err.Error()))
	}
	a.pool.Close()
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully within the configured timeout.
func (a *App) Serve(ctx context.Context) error {
	limiter := middleware.NewRateLimiter(limiterCleanupInterval)
	defer limiter.Stop()

	health := rest.NewHealthHandler(BuildVersion(),
		rest.Check{Name: "database", Ping: a.pool.Ping},
		rest.Check{Name: "redis", Ping: func(ctx context.Context) error { return a.redis.Ping(ctx).Err() }},
	)
	trigger := rest.NewTriggerHandler(a.Sync, a.Enrich, a.log)

	srv := &http.Server{
		Addr:         net.JoinHostPort(a.cfg.Server.Host, strconv.Itoa(a.cfg.Server.Port)),
		Handler:      rest.NewRouter(a.cfg.SyncAPI, health, trigger, limiter, a.log),
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("http server listening",
			slog.String("addr", srv.Addr),
			slog.Bool("trigger_api", a.cfg.SyncAPI.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
