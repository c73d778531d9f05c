package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/heartmarshall/skillhub-backend/migrations"
)

// Migration commands accepted by Migrate.
const (
	MigrateUp     = "up"
	MigrateDown   = "down"
	MigrateStatus = "status"
)

// ErrUnknownMigrateCommand is returned for commands other than up, down
// and status.
var ErrUnknownMigrateCommand = errors.New("unknown migrate command")

// Migrate runs a goose command against the embedded migrations.
func Migrate(ctx context.Context, dsn, command string, logger *slog.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("postgres.Migrate: open: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("postgres.Migrate: %w", err)
	}

	log := logger.With("adapter", "migrate")

	switch command {
	case MigrateUp:
		results, err := provider.Up(ctx)
		if err != nil {
			return fmt.Errorf("postgres.Migrate: up: %w", err)
		}
		for _, r := range results {
			log.InfoContext(ctx, "migration applied",
				slog.Int64("version", r.Source.Version),
				slog.Duration("duration", r.Duration),
			)
		}
		log.InfoContext(ctx, "migrations up to date", slog.Int("applied", len(results)))

	case MigrateDown:
		r, err := provider.Down(ctx)
		if err != nil {
			return fmt.Errorf("postgres.Migrate: down: %w", err)
		}
		log.InfoContext(ctx, "migration rolled back", slog.Int64("version", r.Source.Version))

	case MigrateStatus:
		statuses, err := provider.Status(ctx)
		if err != nil {
			return fmt.Errorf("postgres.Migrate: status: %w", err)
		}
		for _, s := range statuses {
			log.InfoContext(ctx, "migration",
				slog.Int64("version", s.Source.Version),
				slog.String("state", string(s.State)),
				slog.Time("applied_at", s.AppliedAt),
			)
		}

	default:
		return fmt.Errorf("postgres.Migrate: %w: %q", ErrUnknownMigrateCommand, command)
	}

	return nil
}
