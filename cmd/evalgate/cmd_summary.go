package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/evalgate/evalgate/internal/aggregate"
	"github.com/evalgate/evalgate/internal/loader"
	"github.com/evalgate/evalgate/internal/reporting"
)

func newSummaryCommand() *cobra.Command {
	var resultsDir string
	var output string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Generate the aggregated markdown summary report",
		Long: `Generate the aggregated markdown summary report.

Loads every result JSON document under the results directory, computes
per-model and per-test statistics, and writes a markdown summary with a
status banner, result tables, and recommendations.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return summaryCommandE(cmd, resultsDir, output)
		},
	}

	cmd.Flags().StringVar(&resultsDir, "results-dir", "", "Directory containing result JSON files")
	cmd.Flags().StringVar(&output, "output", "", "Path of the markdown summary to write")

	return cmd
}

func summaryCommandE(cmd *cobra.Command, resultsDir, output string) error {
	cfg, err := loadProjectConfig()
	if err != nil {
		return err
	}
	dir, err := resolveSetting(resultsDir, cfg.Results.Dir, "results-dir", "results.dir")
	if err != nil {
		return err
	}
	out, err := resolveSetting(output, cfg.Reports.Summary, "output", "reports.summary")
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Loading results from %s...\n", dir) //nolint:errcheck
	docs, err := loader.LoadResults(dir, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Loaded %d result files\n", len(docs)) //nolint:errcheck

	if len(docs) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "ERROR: No results found") //nolint:errcheck
		return &NoResultsError{Dir: dir}
	}

	fmt.Fprintln(w, "Calculating statistics...") //nolint:errcheck
	stats := aggregate.Compute(docs)

	fmt.Fprintln(w, "Generating summary...") //nolint:errcheck
	if err := reporting.WriteSummary(stats, time.Now().UTC(), out); err != nil {
		return err
	}
	fmt.Fprintf(w, "Summary written to %s\n", out) //nolint:errcheck
	fmt.Fprintln(w, "Done!")                      //nolint:errcheck

	return nil
}
