package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evalgate/evalgate/internal/loader"
	"github.com/evalgate/evalgate/internal/reporting"
)

func newCompareCommand() *cobra.Command {
	var resultsDir string
	var output string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Generate a side-by-side model comparison report",
		Long: `Generate a detailed markdown report comparing every model's results
test by test, including per-test winners and the patterns each model missed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return compareCommandE(cmd, resultsDir, output)
		},
	}

	cmd.Flags().StringVar(&resultsDir, "results-dir", "", "Directory containing result JSON files")
	cmd.Flags().StringVar(&output, "output", "", "Path to write the comparison report to")

	return cmd
}

func compareCommandE(cmd *cobra.Command, resultsDir, output string) error {
	cfg, err := loadProjectConfig()
	if err != nil {
		return err
	}
	dir, err := resolveSetting(resultsDir, cfg.Results.Dir, "results-dir", "results.dir")
	if err != nil {
		return err
	}
	out, err := resolveSetting(output, cfg.Reports.Comparison, "output", "reports.comparison")
	if err != nil {
		return err
	}

	docs, err := loader.LoadResults(dir, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "ERROR: No results found") //nolint:errcheck
		return &NoResultsError{Dir: dir}
	}

	if err := reporting.WriteComparison(docs, out); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Comparison report written to %s\n", out) //nolint:errcheck
	return nil
}
