package models

// ViolationType distinguishes the two threshold checks.
type ViolationType string

const (
	ViolationScore    ViolationType = "score"
	ViolationPassRate ViolationType = "pass_rate"
)

// Violation is one failed threshold check for one result document. Message
// is the human-readable form printed by the check command and embedded in
// its JSON output.
type Violation struct {
	Model     string        `json:"model"`
	Type      ViolationType `json:"type"`
	Value     float64       `json:"value"`
	Threshold int           `json:"threshold"`
	Message   string        `json:"message"`
}
