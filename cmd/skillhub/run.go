package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/skillhub-backend/internal/app"
)

func newSyncCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Fetch repositories from GitHub and upsert them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(cmd.Context(), func(ctx context.Context, a *app.App, _ *slog.Logger) error {
				n, err := a.Sync.Run(ctx)
				if err != nil {
					return err
				}
				return printCount(cmd, "synced", n)
			})
		},
	}
}

func newEnrichCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "enrich",
		Short: "Generate page content for one batch of skills",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(cmd.Context(), func(ctx context.Context, a *app.App, _ *slog.Logger) error {
				n, err := a.Enrich.Run(ctx)
				if err != nil {
					return err
				}
				return printCount(cmd, "enriched", n)
			})
		},
	}
}

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve health endpoints and the manual trigger API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(cmd.Context(), func(ctx context.Context, a *app.App, logger *slog.Logger) error {
				if err := a.Serve(ctx); err != nil {
					return err
				}
				logger.Info("server stopped")
				return nil
			})
		},
	}
}
