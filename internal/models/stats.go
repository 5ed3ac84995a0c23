package models

// ModelStats accumulates totals for one AI model across every document that
// names it. Scores and PassRates carry one element per document so the
// reporters can average and band them.
type ModelStats struct {
	TotalTests int
	Passed     int
	Failed     int
	Scores     []float64
	PassRates  []float64
}

// TestStats accumulates results for one test across documents. Models keeps
// one element per occurrence; a model that reported the test twice appears
// twice.
type TestStats struct {
	Models      []string
	Scores      []float64
	PassedCount int
	FailedCount int
}

// DistinctModelCount counts the unique models that reported this test.
func (t *TestStats) DistinctModelCount() int {
	seen := make(map[string]struct{}, len(t.Models))
	for _, m := range t.Models {
		seen[m] = struct{}{}
	}
	return len(seen)
}

// FailureRatio is FailedCount over the bucket's outcome total, 0 for an
// empty bucket.
func (t *TestStats) FailureRatio() float64 {
	total := t.PassedCount + t.FailedCount
	if total == 0 {
		return 0
	}
	return float64(t.FailedCount) / float64(total)
}

// OverallStats summarizes the whole result set. AverageScore and
// AveragePassRate are rounded means over documents, not over tests.
type OverallStats struct {
	TotalResults    int
	ModelsTested    []string
	AverageScore    int
	AveragePassRate int
}

// AggregatedStats is the digest the reporters render from.
type AggregatedStats struct {
	ByModel map[string]*ModelStats
	ByTest  map[string]*TestStats
	Overall OverallStats
}
