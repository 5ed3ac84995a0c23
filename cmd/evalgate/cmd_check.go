package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/evalgate/evalgate/internal/loader"
	"github.com/evalgate/evalgate/internal/models"
	"github.com/evalgate/evalgate/internal/thresholds"
)

func newCheckCommand() *cobra.Command {
	var resultsDir string
	var minScore int
	var format string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check results against quality thresholds",
		Long: `Check every result document against the minimum quality thresholds.

Each document is gated on its own average score and pass rate; per-model
overrides from .evalgate.yaml replace the global minimum for that model.
The command exits 1 when any document falls below its minimums, so it can
gate CI pipelines directly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkCommandE(cmd, resultsDir, minScore, format)
		},
	}

	cmd.Flags().StringVar(&resultsDir, "results-dir", "", "Directory containing result JSON files")
	cmd.Flags().IntVar(&minScore, "min-score", thresholds.DefaultMinScore, "Minimum score and pass rate required")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text | json")

	return cmd
}

// --- JSON output structs ---

type checkJSONReport struct {
	Timestamp    string             `json:"timestamp"`
	MinScore     int                `json:"min_score"`
	TotalResults int                `json:"total_results"`
	Passed       bool               `json:"passed"`
	Violations   []models.Violation `json:"violations"`
}

func checkCommandE(cmd *cobra.Command, resultsDir string, minScore int, format string) error {
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid format %q: expected text or json", format)
	}

	cfg, err := loadProjectConfig()
	if err != nil {
		return err
	}
	dir, err := resolveSetting(resultsDir, cfg.Results.Dir, "results-dir", "results.dir")
	if err != nil {
		return err
	}
	policy, err := cfg.ThresholdPolicy()
	if err != nil {
		return err
	}
	// The flag wins over config only when set explicitly; its default must
	// not clobber a configured minimum.
	if cmd.Flags().Changed("min-score") {
		policy.MinScore = minScore
	}

	w := cmd.OutOrStdout()
	if format == "text" {
		fmt.Fprintf(w, "Checking thresholds (minimum: %d)...\n", policy.MinScore) //nolint:errcheck
	}

	docs, err := loader.LoadResults(dir, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		yellow := color.New(color.FgYellow)
		yellow.Fprintln(cmd.ErrOrStderr(), "WARNING: No results found to check") //nolint:errcheck
		return nil
	}

	violations := thresholds.Check(docs, policy)

	if format == "json" {
		if err := outputCheckJSON(cmd, policy.MinScore, len(docs), violations); err != nil {
			return err
		}
		if len(violations) > 0 {
			return &ThresholdViolationError{Count: len(violations)}
		}
		return nil
	}

	printDocumentTable(w, docs, policy)

	if len(violations) > 0 {
		printCheckFailure(w, violations)
		return &ThresholdViolationError{Count: len(violations)}
	}
	printCheckSuccess(w, policy.MinScore)
	return nil
}

type writer = interface{ Write([]byte) (int, error) }

// printDocumentTable shows every document's numbers against its effective
// minimums, not just the failing ones.
//
//nolint:errcheck
func printDocumentTable(w writer, docs []models.ResultDocument, policy thresholds.Policy) {
	const maxNameWidth = 25
	const minNameWidth = 10

	// Compute dynamic column width from the longest model name.
	nameWidth := len("Model")
	for _, doc := range docs {
		if runeLen := utf8.RuneCountInString(doc.Model); runeLen > nameWidth {
			nameWidth = runeLen
		}
	}
	if nameWidth > maxNameWidth {
		nameWidth = maxNameWidth
	}
	if nameWidth < minNameWidth {
		nameWidth = minNameWidth
	}

	// Fixed column widths (display columns) for emoji-safe alignment.
	const colScore = 10
	const colRate = 10
	totalWidth := nameWidth + colScore + colRate + len("Status") + 6 // 6 = 3 gaps × 2 spaces

	fmt.Fprintf(w, "\n%s  %s  %s  %s\n",
		padRight("Model", nameWidth),
		padRight("Avg Score", colScore),
		padRight("Pass Rate", colRate),
		"Status")
	fmt.Fprintf(w, "%s\n", strings.Repeat("─", totalWidth))

	for _, doc := range docs {
		minScore, minRate := policy.MinimumsFor(doc.Model)
		status := "✅"
		if doc.AverageScore < float64(minScore) || doc.PassRate < float64(minRate) {
			status = "❌"
		}
		fmt.Fprintf(w, "%s  %s  %s  %s\n",
			padRight(truncateName(doc.Model, nameWidth), nameWidth),
			padRight(thresholds.FormatValue(doc.AverageScore)+"/100", colScore),
			padRight(thresholds.FormatValue(doc.PassRate)+"%", colRate),
			status)
	}
}

// truncateName shortens a name to maxLen runes, replacing the last rune with "…" if needed.
func truncateName(name string, maxLen int) string {
	runes := []rune(name)
	if len(runes) <= maxLen {
		return name
	}
	return string(runes[:maxLen-1]) + "…"
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

//nolint:errcheck
func printCheckFailure(w writer, violations []models.Violation) {
	red := color.New(color.FgRed)
	red.Fprintf(w, "\n❌ THRESHOLD CHECK FAILED (%d issues found):\n", len(violations))
	fmt.Fprintln(w)
	for _, v := range violations {
		fmt.Fprintf(w, "  • %s\n", v.Message)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Action required:")
	fmt.Fprintln(w, "  1. Review PRIORITY_ACTIONS.md for improvement strategies")
	fmt.Fprintln(w, "  2. Update affected rule files with more explicit directives")
	fmt.Fprintln(w, "  3. Re-run tests to verify improvements")
	fmt.Fprintln(w)
}

//nolint:errcheck
func printCheckSuccess(w writer, minScore int) {
	green := color.New(color.FgGreen)
	green.Fprintln(w, "\n✅ ALL THRESHOLDS MET")
	fmt.Fprintf(w, "   All AI models scored above %d\n", minScore)
}

// outputCheckJSON marshals the check result as JSON to the command's stdout.
func outputCheckJSON(cmd *cobra.Command, minScore, totalResults int, violations []models.Violation) error {
	report := checkJSONReport{
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		MinScore:     minScore,
		TotalResults: totalResults,
		Passed:       len(violations) == 0,
		Violations:   violations,
	}
	if report.Violations == nil {
		report.Violations = []models.Violation{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	_, err := fmt.Fprint(cmd.OutOrStdout(), buf.String())
	return err
}
