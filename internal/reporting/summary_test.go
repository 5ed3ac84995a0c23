package reporting

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/evalgate/evalgate/internal/models"
)

var testGeneratedAt = time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)

// mixedStats has one strong model and one weak model sharing a flaky test.
func mixedStats() *models.AggregatedStats {
	return &models.AggregatedStats{
		ByModel: map[string]*models.ModelStats{
			"gpt-4o": {TotalTests: 10, Passed: 10, Failed: 0, Scores: []float64{92}, PassRates: []float64{100}},
			"claude": {TotalTests: 8, Passed: 6, Failed: 2, Scores: []float64{84}, PassRates: []float64{75}},
		},
		ByTest: map[string]*models.TestStats{
			"api-call": {Models: []string{"gpt-4o", "claude"}, Scores: []float64{95, 70}, PassedCount: 1, FailedCount: 1},
		},
		Overall: models.OverallStats{
			TotalResults:    2,
			ModelsTested:    []string{"claude", "gpt-4o"},
			AverageScore:    88,
			AveragePassRate: 88,
		},
	}
}

func TestRenderSummaryFullDocument(t *testing.T) {
	got := RenderSummary(mixedStats(), testGeneratedAt)

	want := strings.Join([]string{
		"# AI Compatibility Test Results",
		"",
		"**Generated**: 2026-01-15 10:30:00 UTC",
		"",
		"## Overall Summary",
		"",
		"- **Models Tested**: claude, gpt-4o",
		"- **Total Test Runs**: 2",
		"- **Average Score**: 88/100",
		"- **Average Pass Rate**: 88%",
		"",
		"⚠️  **Status**: GOOD - Most AI models producing quality code, minor improvements needed",
		"",
		"## Results by AI Model",
		"",
		"| Model | Tests | Passed | Failed | Avg Score | Pass Rate | Status |",
		"|-------|-------|--------|--------|-----------|-----------|--------|",
		"| claude | 8 | 6 | 2 | 84/100 | 75% | ❌ |",
		"| gpt-4o | 10 | 10 | 0 | 92/100 | 100% | ✅ |",
		"",
		"## Results by Test",
		"",
		"| Test | Models Tested | Passed | Failed | Avg Score | Consistency |",
		"|------|---------------|--------|--------|-----------|-------------|",
		"| api-call | 2 | 1 | 1 | 83/100 | ⚠️ Medium |",
		"",
		"## Recommendations",
		"",
		"### Immediate Actions Required",
		"",
		"**Models needing improvement:**",
		"- **claude**: 75% pass rate (target: 95%)",
		"",
		"**Recommended fixes:**",
		"1. Review `PRIORITY_ACTIONS.md` for improvement strategies",
		"2. Add more explicit ALWAYS/NEVER directives to affected framework files",
		"3. Include more 'Common AI Mistakes' examples",
		"4. Re-run tests after applying fixes",
		"",
		"**Tests with high failure rates:**",
		"- **api-call**: 50% failure rate",
		"",
		"Review these test scenarios and strengthen related rule files.",
		"",
		"---",
		"*For detailed results, check individual test artifacts.*",
	}, "\n")

	assert.Equal(t, want, got)
	assert.False(t, strings.HasSuffix(got, "\n"), "summary must not end with a trailing newline")
}

func TestRenderSummaryExcellent(t *testing.T) {
	stats := &models.AggregatedStats{
		ByModel: map[string]*models.ModelStats{
			"gpt-4o": {TotalTests: 10, Passed: 10, Scores: []float64{98}, PassRates: []float64{100}},
		},
		ByTest: map[string]*models.TestStats{},
		Overall: models.OverallStats{
			TotalResults:    1,
			ModelsTested:    []string{"gpt-4o"},
			AverageScore:    98,
			AveragePassRate: 100,
		},
	}

	got := RenderSummary(stats, testGeneratedAt)

	assert.Contains(t, got, "✅ **Status**: EXCELLENT - All AI models producing consistent high-quality code")
	assert.Contains(t, got, "✅ All AI models performing excellently! No immediate actions required.")
	assert.Contains(t, got, "**Maintenance:**")
	assert.Contains(t, got, "- Continue monitoring daily test runs")
	assert.NotContains(t, got, "### Immediate Actions Required")
	assert.NotContains(t, got, "**Recommended fixes:**")
}

func TestStatusBannerBands(t *testing.T) {
	tests := []struct {
		rate int
		want string
	}{
		{100, "EXCELLENT"},
		{95, "EXCELLENT"},
		{94, "GOOD"},
		{85, "GOOD"},
		{84, "FAIR"},
		{75, "FAIR"},
		{74, "POOR"},
		{0, "POOR"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("rate_%d", tt.rate), func(t *testing.T) {
			assert.Contains(t, statusBanner(tt.rate), tt.want)
		})
	}
}

func TestModelStatusIcon(t *testing.T) {
	tests := []struct {
		rate int
		want string
	}{
		{100, "✅"},
		{95, "✅"},
		{94, "⚠️"},
		{85, "⚠️"},
		{84, "❌"},
	}
	for _, tt := range tests {
		if got := modelStatusIcon(tt.rate); got != tt.want {
			t.Errorf("modelStatusIcon(%d) = %q, want %q", tt.rate, got, tt.want)
		}
	}
}

func TestConsistencyLabel(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		want   string
	}{
		{"identical", []float64{90, 90, 90}, "✅ High"},
		{"moderate_spread", []float64{80, 100}, "⚠️ Medium"}, // sd=10 is already Medium
		{"wide_spread", []float64{50, 100}, "❌ Low"},
		{"single_sample", []float64{95}, "N/A"},
		{"empty", nil, "N/A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := consistencyLabel(tt.scores); got != tt.want {
				t.Errorf("consistencyLabel(%v) = %q, want %q", tt.scores, got, tt.want)
			}
		})
	}
}

func TestRecommendationOrdering(t *testing.T) {
	stats := &models.AggregatedStats{
		ByModel: map[string]*models.ModelStats{
			"alpha":   {PassRates: []float64{80}},
			"bravo":   {PassRates: []float64{60}},
			"charlie": {PassRates: []float64{80}},
			"delta":   {PassRates: []float64{96}},
		},
		ByTest: map[string]*models.TestStats{
			"t-often": {PassedCount: 1, FailedCount: 9},
			"t-some":  {PassedCount: 7, FailedCount: 3},
			"t-rare":  {PassedCount: 9, FailedCount: 1},
		},
		Overall: models.OverallStats{AveragePassRate: 70},
	}

	got := RenderSummary(stats, testGeneratedAt)

	// Models ascending by pass rate, name breaking the 80% tie.
	bravo := strings.Index(got, "- **bravo**: 60% pass rate")
	alpha := strings.Index(got, "- **alpha**: 80% pass rate")
	charlie := strings.Index(got, "- **charlie**: 80% pass rate")
	require.True(t, bravo >= 0 && alpha >= 0 && charlie >= 0, got)
	assert.Less(t, bravo, alpha)
	assert.Less(t, alpha, charlie)
	assert.NotContains(t, got, "- **delta**:")

	// Tests descending by failure ratio; 10% stays out.
	often := strings.Index(got, "- **t-often**: 90% failure rate")
	some := strings.Index(got, "- **t-some**: 30% failure rate")
	require.True(t, often >= 0 && some >= 0, got)
	assert.Less(t, often, some)
	assert.NotContains(t, got, "- **t-rare**:")
}

// collectHeadings parses markdown and returns "h<level>:<text>" entries in
// document order.
func collectHeadings(t *testing.T, source []byte) []string {
	t.Helper()
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	var headings []string
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok {
			var sb strings.Builder
			for c := h.FirstChild(); c != nil; c = c.NextSibling() {
				if tn, ok := c.(*ast.Text); ok {
					sb.Write(tn.Segment.Value(source))
				}
			}
			headings = append(headings, fmt.Sprintf("h%d:%s", h.Level, sb.String()))
		}
		return ast.WalkContinue, nil
	})
	require.NoError(t, err)
	return headings
}

func TestRenderSummaryStructure(t *testing.T) {
	got := RenderSummary(mixedStats(), testGeneratedAt)

	headings := collectHeadings(t, []byte(got))
	assert.Equal(t, []string{
		"h1:AI Compatibility Test Results",
		"h2:Overall Summary",
		"h2:Results by AI Model",
		"h2:Results by Test",
		"h2:Recommendations",
		"h3:Immediate Actions Required",
	}, headings)
}
