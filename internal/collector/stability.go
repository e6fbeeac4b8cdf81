package collector

// StabilityVariant selects the stability formula. The two formulas are not
// numerically equivalent; a run uses exactly one, recorded in the report.
type StabilityVariant string

const (
	// StabilityThreshold scores the fraction of samples above the minimum
	// acceptable rate.
	StabilityThreshold StabilityVariant = "threshold"
	// StabilityDispersion scores 1 - coefficient of variation, clamped to
	// [0, 1].
	StabilityDispersion StabilityVariant = "dispersion"
)

// Stability computes the [0, 1] stability score of a sample list under the
// selected variant. minStableFPS is only consulted by the threshold variant.
// An empty list scores 0.
func Stability(samples []float64, variant StabilityVariant, minStableFPS float64) float64 {
	if len(samples) == 0 {
		return 0
	}

	switch variant {
	case StabilityDispersion:
		var total float64
		for _, s := range samples {
			total += s
		}
		mean := total / float64(len(samples))
		if mean <= 0 {
			return 0
		}
		cv := populationStdDev(samples, mean) / mean
		score := 1 - cv
		if score < 0 {
			return 0
		}
		if score > 1 {
			return 1
		}
		return score
	default:
		stable := 0
		for _, s := range samples {
			if s > minStableFPS {
				stable++
			}
		}
		return float64(stable) / float64(len(samples))
	}
}
