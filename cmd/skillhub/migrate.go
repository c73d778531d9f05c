package main

import (
	"github.com/spf13/cobra"

	"github.com/heartmarshall/skillhub-backend/internal/adapter/postgres"
)

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply or inspect database migrations",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{postgres.MigrateUp, postgres.MigrateDown, postgres.MigrateStatus},
		RunE: func(cmd *cobra.Command, args []string) error {
			command := postgres.MigrateUp
			if len(args) == 1 {
				command = args[0]
			}

			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}
			return postgres.Migrate(cmd.Context(), cfg.Database.DSN, command, logger)
		},
	}
}
