package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

func newRootCmd(logger *slog.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "clonewander",
		Short:        "CloneWander: simulated travelers keeping a journal in accelerated time",
		Long:         "clonewander serves the clone API and runs the poller that writes journal entries as each clone's simulated trip unfolds.",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newServeCmd(logger),
		newMigrateCmd(logger),
		newTickCmd(logger),
	)
	return rootCmd
}
