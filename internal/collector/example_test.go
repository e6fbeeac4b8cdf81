package collector_test

import (
	"fmt"

	"soulbench/internal/collector"
)

func ExampleComputeStats() {
	samples := []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}

	stats := collector.ComputeStats(samples)

	fmt.Printf("mean=%.1f p95=%.1f\n", stats.Mean, stats.P95)
	// Output: mean=55.0 p95=100.0
}

func ExampleClassify() {
	grade := collector.Classify(58.5, true, false)

	fmt.Println(grade)
	// Output: ACCEPTABLE
}
