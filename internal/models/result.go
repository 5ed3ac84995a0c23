// Package models defines the result-document types produced by the AI test
// harness and the aggregate types the reporters render from.
package models

import (
	"encoding/json"
	"fmt"
)

// UnknownLabel is the bucket name used when a document or test outcome
// omits its identifier.
const UnknownLabel = "unknown"

// ResultDocument is one AI model's test-run results as emitted by the
// harness. Every field is optional in the source JSON; ParseResultDocument
// resolves defaults once so downstream code never re-checks for missing
// values.
type ResultDocument struct {
	Model        string        `json:"model"`
	TotalTests   int           `json:"totalTests"`
	Passed       int           `json:"passed"`
	Failed       int           `json:"failed"`
	AverageScore float64       `json:"averageScore"`
	PassRate     float64       `json:"passRate"`
	Tests        []TestOutcome `json:"tests"`
}

// TestOutcome is a single test execution within a result document.
type TestOutcome struct {
	TestID     string           `json:"testId"`
	Score      float64          `json:"score"`
	Passed     bool             `json:"passed"`
	Output     string           `json:"output,omitempty"`
	Validation ValidationDetail `json:"validation"`
}

// ValidationDetail records pattern checks for one test outcome. A forbidden
// pattern that stayed absent is a success, so ForbiddenMissing is the good
// list on that side.
type ValidationDetail struct {
	ExpectedMatches  []string `json:"expectedMatches"`
	ExpectedMissing  []string `json:"expectedMissing"`
	ForbiddenFound   []string `json:"forbiddenFound"`
	ForbiddenMissing []string `json:"forbiddenMissing"`
}

// HasIssues reports whether the outcome missed an expected pattern or
// produced a forbidden one.
func (t TestOutcome) HasIssues() bool {
	return len(t.Validation.ExpectedMissing) > 0 || len(t.Validation.ForbiddenFound) > 0
}

// ParseResultDocument decodes a result document and resolves defaults:
// empty model and test identifiers become "unknown", numeric fields keep
// their zero values, a missing tests array stays empty. This is the only
// place defaults are resolved.
func ParseResultDocument(data []byte) (ResultDocument, error) {
	var doc ResultDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return ResultDocument{}, fmt.Errorf("failed to parse result document: %w", err)
	}
	doc.normalize()
	return doc, nil
}

func (d *ResultDocument) normalize() {
	if d.Model == "" {
		d.Model = UnknownLabel
	}
	for i := range d.Tests {
		if d.Tests[i].TestID == "" {
			d.Tests[i].TestID = UnknownLabel
		}
	}
}
