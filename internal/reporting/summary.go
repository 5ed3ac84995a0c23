// Package reporting renders the markdown artifacts published by the
// pipeline. Wording and layout are pinned: downstream dashboards and the
// CI job summaries parse these files.
package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/evalgate/evalgate/internal/metrics"
	"github.com/evalgate/evalgate/internal/models"
)

// RenderSummary renders the summary report from aggregated statistics.
// generatedAt is stamped into the header; callers pass time.Now().UTC() so
// tests can pin it. The document is joined with \n and carries no trailing
// newline.
func RenderSummary(stats *models.AggregatedStats, generatedAt time.Time) string {
	var md []string
	md = append(md,
		"# AI Compatibility Test Results",
		"",
		fmt.Sprintf("**Generated**: %s UTC", generatedAt.Format("2006-01-02 15:04:05")),
		"",
		"## Overall Summary",
		"",
		fmt.Sprintf("- **Models Tested**: %s", strings.Join(stats.Overall.ModelsTested, ", ")),
		fmt.Sprintf("- **Total Test Runs**: %d", stats.Overall.TotalResults),
		fmt.Sprintf("- **Average Score**: %d/100", stats.Overall.AverageScore),
		fmt.Sprintf("- **Average Pass Rate**: %d%%", stats.Overall.AveragePassRate),
		"",
		statusBanner(stats.Overall.AveragePassRate),
		"",
	)

	md = append(md, modelTable(stats.ByModel)...)
	md = append(md, testTable(stats.ByTest)...)
	md = append(md, recommendations(stats)...)

	md = append(md,
		"",
		"---",
		"*For detailed results, check individual test artifacts.*",
	)
	return strings.Join(md, "\n")
}

// WriteSummary renders and writes the summary report to path, creating the
// parent directory if needed.
func WriteSummary(stats *models.AggregatedStats, generatedAt time.Time, path string) error {
	return writeReport(path, RenderSummary(stats, generatedAt))
}

func writeReport(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// statusBanner bands the rounded overall pass rate, first match wins.
func statusBanner(avgPassRate int) string {
	switch {
	case avgPassRate >= 95:
		return "✅ **Status**: EXCELLENT - All AI models producing consistent high-quality code"
	case avgPassRate >= 85:
		return "⚠️  **Status**: GOOD - Most AI models producing quality code, minor improvements needed"
	case avgPassRate >= 75:
		return "⚠️  **Status**: FAIR - Significant quality gaps between AI models"
	default:
		return "❌ **Status**: POOR - Major quality inconsistencies across AI models"
	}
}

func modelTable(byModel map[string]*models.ModelStats) []string {
	md := []string{
		"## Results by AI Model",
		"",
		"| Model | Tests | Passed | Failed | Avg Score | Pass Rate | Status |",
		"|-------|-------|--------|--------|-----------|-----------|--------|",
	}

	names := make([]string, 0, len(byModel))
	for name := range byModel {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ms := byModel[name]
		avgScore := metrics.RoundedMean(ms.Scores)
		avgPassRate := metrics.RoundedMean(ms.PassRates)
		md = append(md, fmt.Sprintf("| %s | %d | %d | %d | %d/100 | %d%% | %s |",
			name, ms.TotalTests, ms.Passed, ms.Failed, avgScore, avgPassRate,
			modelStatusIcon(avgPassRate)))
	}

	return append(md, "")
}

func modelStatusIcon(avgPassRate int) string {
	switch {
	case avgPassRate >= 95:
		return "✅"
	case avgPassRate >= 85:
		return "⚠️"
	default:
		return "❌"
	}
}

func testTable(byTest map[string]*models.TestStats) []string {
	md := []string{
		"## Results by Test",
		"",
		"| Test | Models Tested | Passed | Failed | Avg Score | Consistency |",
		"|------|---------------|--------|--------|-----------|-------------|",
	}

	ids := make([]string, 0, len(byTest))
	for id := range byTest {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		ts := byTest[id]
		md = append(md, fmt.Sprintf("| %s | %d | %d | %d | %d/100 | %s |",
			id, ts.DistinctModelCount(), ts.PassedCount, ts.FailedCount,
			metrics.RoundedMean(ts.Scores), consistencyLabel(ts.Scores)))
	}

	return append(md, "")
}

// consistencyLabel bands the population standard deviation of a test's
// scores across models. Under two samples there is no spread to judge.
func consistencyLabel(scores []float64) string {
	if len(scores) < 2 {
		return "N/A"
	}
	sd := metrics.StdDev(scores)
	switch {
	case sd < 10:
		return "✅ High"
	case sd < 20:
		return "⚠️ Medium"
	default:
		return "❌ Low"
	}
}

func recommendations(stats *models.AggregatedStats) []string {
	md := []string{
		"## Recommendations",
		"",
	}

	if stats.Overall.AveragePassRate >= 95 {
		return append(md,
			"✅ All AI models performing excellently! No immediate actions required.",
			"",
			"**Maintenance:**",
			"- Continue monitoring daily test runs",
			"- Review any new failures promptly",
			"- Keep rule files updated with new patterns",
		)
	}

	md = append(md, "### Immediate Actions Required", "")
	md = append(md, lowPerformingModels(stats.ByModel)...)
	md = append(md, highFailureTests(stats.ByTest)...)
	return md
}

// lowPerformingModels lists models under a 90% rounded pass rate, ascending
// by rate with name as tiebreak, plus the fixed remediation checklist. An
// empty list omits the whole block.
func lowPerformingModels(byModel map[string]*models.ModelStats) []string {
	type modelRate struct {
		name string
		rate int
	}

	names := make([]string, 0, len(byModel))
	for name := range byModel {
		names = append(names, name)
	}
	sort.Strings(names)

	var low []modelRate
	for _, name := range names {
		rate := metrics.RoundedMean(byModel[name].PassRates)
		if rate < 90 {
			low = append(low, modelRate{name, rate})
		}
	}
	if len(low) == 0 {
		return nil
	}
	sort.SliceStable(low, func(i, j int) bool { return low[i].rate < low[j].rate })

	md := []string{"**Models needing improvement:**"}
	for _, m := range low {
		md = append(md, fmt.Sprintf("- **%s**: %d%% pass rate (target: 95%%)", m.name, m.rate))
	}
	return append(md,
		"",
		"**Recommended fixes:**",
		"1. Review `PRIORITY_ACTIONS.md` for improvement strategies",
		"2. Add more explicit ALWAYS/NEVER directives to affected framework files",
		"3. Include more 'Common AI Mistakes' examples",
		"4. Re-run tests after applying fixes",
	)
}

// highFailureTests lists tests whose failure ratio exceeds 20%, descending
// by ratio with test id as tiebreak. The ratio is compared before rounding;
// only the displayed percentage rounds.
func highFailureTests(byTest map[string]*models.TestStats) []string {
	type testRate struct {
		id    string
		ratio float64
	}

	ids := make([]string, 0, len(byTest))
	for id := range byTest {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var problem []testRate
	for _, id := range ids {
		ratio := byTest[id].FailureRatio() * 100
		if ratio > 20 {
			problem = append(problem, testRate{id, ratio})
		}
	}
	if len(problem) == 0 {
		return nil
	}
	sort.SliceStable(problem, func(i, j int) bool { return problem[i].ratio > problem[j].ratio })

	md := []string{"", "**Tests with high failure rates:**"}
	for _, p := range problem {
		md = append(md, fmt.Sprintf("- **%s**: %d%% failure rate", p.id, metrics.Round(p.ratio)))
	}
	return append(md, "", "Review these test scenarios and strengthen related rule files.")
}
