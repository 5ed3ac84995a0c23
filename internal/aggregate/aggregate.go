// Package aggregate folds loaded result documents into the statistics
// digest the reporters work from.
package aggregate

import (
	"sort"

	"github.com/evalgate/evalgate/internal/metrics"
	"github.com/evalgate/evalgate/internal/models"
)

// Compute builds per-model, per-test, and overall statistics from the
// documents. Documents sharing a model merge into one per-model entry, so
// three gpt-4o runs become one bucket with three scores. Overall averages
// are means over documents, not over individual tests.
func Compute(docs []models.ResultDocument) *models.AggregatedStats {
	stats := &models.AggregatedStats{
		ByModel: make(map[string]*models.ModelStats),
		ByTest:  make(map[string]*models.TestStats),
	}

	var docScores, docRates []float64
	for _, doc := range docs {
		ms := stats.ByModel[doc.Model]
		if ms == nil {
			ms = &models.ModelStats{}
			stats.ByModel[doc.Model] = ms
		}
		ms.TotalTests += doc.TotalTests
		ms.Passed += doc.Passed
		ms.Failed += doc.Failed
		ms.Scores = append(ms.Scores, doc.AverageScore)
		ms.PassRates = append(ms.PassRates, doc.PassRate)

		docScores = append(docScores, doc.AverageScore)
		docRates = append(docRates, doc.PassRate)

		for _, test := range doc.Tests {
			ts := stats.ByTest[test.TestID]
			if ts == nil {
				ts = &models.TestStats{}
				stats.ByTest[test.TestID] = ts
			}
			ts.Models = append(ts.Models, doc.Model)
			ts.Scores = append(ts.Scores, test.Score)
			if test.Passed {
				ts.PassedCount++
			} else {
				ts.FailedCount++
			}
		}
	}

	stats.Overall = models.OverallStats{
		TotalResults:    len(docs),
		ModelsTested:    sortedModelNames(stats.ByModel),
		AverageScore:    metrics.RoundedMean(docScores),
		AveragePassRate: metrics.RoundedMean(docRates),
	}
	return stats
}

func sortedModelNames(byModel map[string]*models.ModelStats) []string {
	names := make([]string, 0, len(byModel))
	for name := range byModel {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
