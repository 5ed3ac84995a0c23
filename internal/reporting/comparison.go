package reporting

import (
	"fmt"
	"sort"
	"strings"

	"github.com/evalgate/evalgate/internal/metrics"
	"github.com/evalgate/evalgate/internal/models"
)

// testRow is one model's outcome for one test, kept in document order.
type testRow struct {
	model   string
	outcome models.TestOutcome
}

// RenderComparison renders the detailed per-test comparison from the raw
// documents, not from aggregated statistics. Grouping keeps one row per
// (model, test) occurrence; the tables re-sort rows by score descending
// while the issue blocks below keep document order.
func RenderComparison(docs []models.ResultDocument) string {
	byTest := make(map[string][]testRow)
	for _, doc := range docs {
		for _, test := range doc.Tests {
			byTest[test.TestID] = append(byTest[test.TestID], testRow{model: doc.Model, outcome: test})
		}
	}

	ids := make([]string, 0, len(byTest))
	for id := range byTest {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	md := []string{
		"# Detailed AI Comparison Report",
		"",
	}
	for _, id := range ids {
		md = append(md, comparisonSection(id, byTest[id])...)
	}
	return strings.Join(md, "\n")
}

// WriteComparison renders and writes the comparison report to path,
// creating the parent directory if needed.
func WriteComparison(docs []models.ResultDocument, path string) error {
	return writeReport(path, RenderComparison(docs))
}

func comparisonSection(id string, rows []testRow) []string {
	md := []string{
		fmt.Sprintf("## %s", id),
		"",
		"| Model | Score | Status | Expected Patterns | Forbidden Patterns |",
		"|-------|-------|--------|-------------------|-------------------|",
	}

	ranked := make([]testRow, len(rows))
	copy(ranked, rows)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].outcome.Score > ranked[j].outcome.Score
	})

	for _, row := range ranked {
		status := "✅ PASS"
		if !row.outcome.Passed {
			status = "❌ FAIL"
		}
		v := row.outcome.Validation
		md = append(md, fmt.Sprintf("| %s | %d/100 | %s | %d ✓, %d ✗ | %d ✓, %d ✗ |",
			row.model, metrics.Round(row.outcome.Score), status,
			len(v.ExpectedMatches), len(v.ExpectedMissing),
			len(v.ForbiddenMissing), len(v.ForbiddenFound)))
	}
	md = append(md, "")

	md = append(md, issueBlocks(rows)...)

	return append(md, "---", "")
}

// issueBlocks lists each outcome that missed expected patterns or produced
// forbidden ones, in document order. A clean test gets the affirmative
// line instead.
func issueBlocks(rows []testRow) []string {
	var md []string
	for _, row := range rows {
		if !row.outcome.HasIssues() {
			continue
		}
		if len(md) == 0 {
			md = append(md, "### Issues Found", "")
		}
		md = append(md, fmt.Sprintf("**%s:**", row.model))
		v := row.outcome.Validation
		if len(v.ExpectedMissing) > 0 {
			md = append(md, fmt.Sprintf("- Missing expected patterns: `%s`", strings.Join(v.ExpectedMissing, ", ")))
		}
		if len(v.ForbiddenFound) > 0 {
			md = append(md, fmt.Sprintf("- Found forbidden patterns: `%s`", strings.Join(v.ForbiddenFound, ", ")))
		}
		md = append(md, "")
	}
	if len(md) == 0 {
		return []string{"✅ All models passed this test successfully!", ""}
	}
	return md
}
