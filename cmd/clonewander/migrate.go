package main

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/clonewander/internal/platform/config"
	"github.com/SscSPs/clonewander/pkg/database"
	"github.com/spf13/cobra"
)

func newMigrateCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending Postgres migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if cfg.StoreBackend != config.StorePostgres {
				return fmt.Errorf("migrate needs STORE_BACKEND=%s", config.StorePostgres)
			}
			applied, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "migrations applied: %t\n", applied)
			return err
		},
	}
}
