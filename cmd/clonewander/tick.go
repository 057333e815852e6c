package main

import (
	"encoding/json"
	"log/slog"

	"github.com/SscSPs/clonewander/internal/core/poller"
	"github.com/SscSPs/clonewander/internal/platform/config"
	"github.com/spf13/cobra"
)

func newTickCmd(logger *slog.Logger) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "tick",
		Short: "Run poller ticks once against the configured store and print their reports",
		Long:  "tick runs the poller synchronously, which is useful against the Postgres store from cron or while debugging a stuck clone.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if cfg.StoreBackend == config.StoreMemory {
				logger.Warn("tick against the in-memory store only sees clones created in this process")
			}

			a, err := wireApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer a.close()

			p, err := a.newPoller(cmd.Context())
			if err != nil {
				return err
			}

			reports := make([]poller.TickReport, 0, count)
			for i := 0; i < count; i++ {
				reports = append(reports, p.Tick(cmd.Context()))
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(reports)
		},
	}
	cmd.Flags().IntVar(&count, "count", 1, "number of ticks to run")
	return cmd
}
