package main

import (
	"github.com/spf13/cobra"

	"netbelge/internal/config"
	"netbelge/internal/database"
	"netbelge/internal/database/migration"
	"netbelge/internal/logging"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger, err := logging.New(cfg.Logger)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			db, err := database.NewPostgres(cfg.Database, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			return migration.EnsureMigrated(cmd.Context(), db, logger)
		},
	}
}
