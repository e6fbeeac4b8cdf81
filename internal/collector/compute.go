// Package collector provides sample reduction, classification and summary
// computation for benchmark runs.
package collector

import (
	"math"
	"sort"
)

// Stats contains the reduced statistics of one scenario's sample list.
type Stats struct {
	Mean float64 `json:"mean"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	P5   float64 `json:"p5"`
	P95  float64 `json:"p95"`
}

// ComputePercentile calculates the percentile value from a sorted slice.
// The percentile p should be between 0 and 1 (e.g., 0.95 for p95).
// The slice must be sorted in ascending order.
//
// The index is floor(count*p), clamped to the last element, matching the
// harness this tool replaces: for ten ascending samples p=0.95 selects the
// maximum, not the ninth value.
func ComputePercentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	index := int(float64(len(sorted)) * p)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}
	return sorted[index]
}

// ComputeStats reduces a sample list to summary statistics. Pure function,
// no side effects; an empty list yields the zero Stats.
func ComputeStats(samples []float64) Stats {
	if len(samples) == 0 {
		return Stats{}
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	var total float64
	for _, s := range sorted {
		total += s
	}

	return Stats{
		Mean: total / float64(len(sorted)),
		Min:  sorted[0],
		Max:  sorted[len(sorted)-1],
		P5:   ComputePercentile(sorted, 0.05),
		P95:  ComputePercentile(sorted, 0.95),
	}
}

func populationStdDev(samples []float64, mean float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sumSq float64
	for _, s := range samples {
		d := s - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(samples)))
}
