// Package thresholds evaluates result documents against minimum quality
// requirements.
package thresholds

import (
	"fmt"
	"strconv"

	"github.com/evalgate/evalgate/internal/models"
)

// DefaultMinScore matches the CI pipeline default.
const DefaultMinScore = 90

// ModelPolicy overrides the global minimums for one model. Nil fields keep
// the global value.
type ModelPolicy struct {
	MinScore    *int `mapstructure:"min_score"`
	MinPassRate *int `mapstructure:"min_pass_rate"`
}

// Policy is the quality-gate configuration. MinScore applies to both the
// average score and the pass rate unless a per-model override says
// otherwise.
type Policy struct {
	MinScore int
	Models   map[string]ModelPolicy
}

// Check evaluates each document against the policy. Values are compared per
// document, never aggregated, so two runs of one model are gated
// separately. Within a document the score check runs before the pass-rate
// check; across documents violations keep document order. Meeting the
// threshold exactly passes.
func Check(docs []models.ResultDocument, policy Policy) []models.Violation {
	var violations []models.Violation
	for _, doc := range docs {
		minScore, minRate := policy.MinimumsFor(doc.Model)
		if doc.AverageScore < float64(minScore) {
			violations = append(violations, scoreViolation(doc, minScore))
		}
		if doc.PassRate < float64(minRate) {
			violations = append(violations, passRateViolation(doc, minRate))
		}
	}
	return violations
}

// MinimumsFor resolves the effective score and pass-rate minimums for a
// model, applying any per-model override.
func (p Policy) MinimumsFor(model string) (minScore, minPassRate int) {
	minScore, minPassRate = p.MinScore, p.MinScore
	mp, ok := p.Models[model]
	if !ok {
		return minScore, minPassRate
	}
	if mp.MinScore != nil {
		minScore = *mp.MinScore
	}
	if mp.MinPassRate != nil {
		minPassRate = *mp.MinPassRate
	}
	return minScore, minPassRate
}

func scoreViolation(doc models.ResultDocument, min int) models.Violation {
	return models.Violation{
		Model:     doc.Model,
		Type:      models.ViolationScore,
		Value:     doc.AverageScore,
		Threshold: min,
		Message: fmt.Sprintf("%s average score %s/100 is below threshold %d/100",
			doc.Model, FormatValue(doc.AverageScore), min),
	}
}

func passRateViolation(doc models.ResultDocument, min int) models.Violation {
	return models.Violation{
		Model:     doc.Model,
		Type:      models.ViolationPassRate,
		Value:     doc.PassRate,
		Threshold: min,
		Message: fmt.Sprintf("%s pass rate %s%% is below threshold %d%%",
			doc.Model, FormatValue(doc.PassRate), min),
	}
}

// FormatValue renders a score or rate without trailing zeros: 85 not 85.0,
// 85.5 unchanged.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
