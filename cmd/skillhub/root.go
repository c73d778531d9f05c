package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/skillhub-backend/internal/app"
	"github.com/heartmarshall/skillhub-backend/internal/config"
)

// rootOptions holds global flags.
type rootOptions struct {
	configPath string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "skillhub",
		Short:         "Skill catalog sync and enrichment",
		Version:       app.BuildVersion(),
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default $CONFIG_PATH or ./config.yaml)")

	cmd.AddCommand(newSyncCommand(opts))
	cmd.AddCommand(newEnrichCommand(opts))
	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newMigrateCommand(opts))

	return cmd
}

// load reads the configuration and installs the logger.
func (o *rootOptions) load() (*config.Config, *slog.Logger, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFrom(o.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		slog.Error("load config", slog.String("error", err.Error()))
		return nil, nil, err
	}
	return cfg, app.NewLogger(cfg.Log), nil
}

// withApp runs fn with a fully wired App and closes it afterwards.
func (o *rootOptions) withApp(ctx context.Context, fn func(ctx context.Context, a *app.App, logger *slog.Logger) error) error {
	cfg, logger, err := o.load()
	if err != nil {
		return err
	}

	logger.Info("starting",
		slog.String("version", app.BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("init app", slog.String("error", err.Error()))
		return err
	}
	defer a.Close()

	if err := fn(ctx, a, logger); err != nil {
		logger.Error("command failed", slog.String("error", err.Error()))
		return err
	}
	return nil
}

func printCount(cmd *cobra.Command, field string, n int) error {
	b, err := json.Marshal(map[string]int{field: n})
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return err
}
