// Package metrics provides the statistics shared by the aggregator, the
// threshold checker, and the reporters.
package metrics

import "math"

// Mean computes the arithmetic mean of a float64 slice.
// Returns 0 for empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Variance computes the population variance of a float64 slice.
// Returns 0 for empty input.
func Variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := Mean(values)
	sumSq := 0.0
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return sumSq / float64(len(values))
}

// StdDev computes the population standard deviation.
func StdDev(values []float64) float64 {
	return math.Sqrt(Variance(values))
}

// Round rounds half away from zero to the nearest integer. Every displayed
// score and percentage goes through this so reports and threshold messages
// agree.
func Round(v float64) int {
	return int(math.Round(v))
}

// RoundedMean is Round(Mean(values)), the form every table cell uses.
func RoundedMean(values []float64) int {
	return Round(Mean(values))
}
