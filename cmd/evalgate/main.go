package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Exit codes. Check-style failures (missing results, threshold violations)
// are distinguished from runtime errors so CI pipelines can react to them.
const (
	ExitSuccess     = 0 // Reports generated, thresholds met
	ExitCheckFailed = 1 // Missing results or threshold violations
	ExitError       = 2 // Configuration or runtime error
)

// NoResultsError signals that the results directory contained no usable
// result documents. The command prints its own console message before
// returning this.
type NoResultsError struct {
	Dir string
}

func (e *NoResultsError) Error() string {
	return fmt.Sprintf("no results found in %s", e.Dir)
}

// ThresholdViolationError signals that one or more documents fell below
// their minimums. The command prints the violation report before returning
// this.
type ThresholdViolationError struct {
	Count int
}

func (e *ThresholdViolationError) Error() string {
	return fmt.Sprintf("threshold check failed with %d violation(s)", e.Count)
}

func main() {
	if err := execute(); err != nil {
		os.Exit(handleError(os.Stderr, err))
	}
}

// handleError maps an execution error to its exit code. Check-failure errors
// already printed their own console output, so only runtime errors get the
// generic error line here.
func handleError(w io.Writer, err error) int {
	var noResults *NoResultsError
	var violations *ThresholdViolationError
	if errors.As(err, &noResults) || errors.As(err, &violations) {
		return ExitCheckFailed
	}
	fmt.Fprintf(w, "Error: %v\n", err) //nolint:errcheck
	return ExitError
}
