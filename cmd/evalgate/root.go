package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evalgate",
		Short: "Evalgate - quality gate for AI code-generation test results",
		Long: `Evalgate aggregates AI code-generation test results and reports on them.

It reads per-model result JSON documents produced by test runs, computes
per-model and per-test statistics, renders markdown reports, and enforces
minimum quality thresholds in CI.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newSummaryCommand())
	cmd.AddCommand(newCheckCommand())
	cmd.AddCommand(newCompareCommand())
	cmd.AddCommand(newInitCommand())
	cmd.AddCommand(newVersionCommand())

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the evalgate version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version) //nolint:errcheck
		},
	}
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
