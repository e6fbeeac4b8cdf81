package collector

// Verdict is the qualitative cross-scenario outcome.
type Verdict string

const (
	VerdictOutstanding Verdict = "OUTSTANDING"
	VerdictExcellent   Verdict = "EXCELLENT"
	VerdictGood        Verdict = "GOOD"
	VerdictPoor        Verdict = "POOR"
)

// Summary aggregates an ordered result sequence into run-level figures.
type Summary struct {
	Scenarios      int     `json:"scenarios"`
	Failures       int     `json:"failures"`
	AvgFPS         float64 `json:"avgFPS"`
	AvgStability   float64 `json:"avgStability"`
	MaxStableSouls int     `json:"maxStableSouls"`
	Verdict        Verdict `json:"verdict"`
}

// Summarize computes the cross-scenario summary. Failed scenarios count
// against the verdict the same way CRITICAL grades do, and contribute
// nothing to the averages.
//
// Verdict cutoffs, first match wins:
//   - OUTSTANDING: >80% of scenarios EXCELLENT and none unstable or failed
//   - EXCELLENT:   >=50% EXCELLENT and none unstable or failed
//   - GOOD:        none unstable or failed, >=50% ACCEPTABLE or better
//   - POOR:        everything else
func Summarize(results []RunResult) Summary {
	s := Summary{Scenarios: len(results)}
	if len(results) == 0 {
		s.Verdict = VerdictPoor
		return s
	}

	var (
		measured  int
		excellent int
		ok        int
		unstable  int
	)

	for _, r := range results {
		if r.Failed() {
			s.Failures++
			unstable++
			continue
		}
		measured++
		s.AvgFPS += r.Stats.Mean
		s.AvgStability += r.Stability

		switch r.Grade {
		case GradeExcellent:
			excellent++
			ok++
		case GradeAcceptable:
			ok++
		case GradeCritical:
			unstable++
		}

		if (r.Grade == GradeExcellent || r.Grade == GradeAcceptable) && r.Souls > s.MaxStableSouls {
			s.MaxStableSouls = r.Souls
		}
	}

	if measured > 0 {
		s.AvgFPS /= float64(measured)
		s.AvgStability /= float64(measured)
	}

	total := float64(len(results))
	excellentFrac := float64(excellent) / total
	okFrac := float64(ok) / total

	switch {
	case unstable == 0 && excellentFrac > 0.8:
		s.Verdict = VerdictOutstanding
	case unstable == 0 && excellentFrac >= 0.5:
		s.Verdict = VerdictExcellent
	case unstable == 0 && okFrac >= 0.5:
		s.Verdict = VerdictGood
	default:
		s.Verdict = VerdictPoor
	}

	return s
}

// recommendations maps each verdict to a fixed report recommendation.
var recommendations = map[Verdict]string{
	VerdictOutstanding: "Performance is outstanding across the full soul ladder. Safe to raise default soul counts.",
	VerdictExcellent:   "Performance is excellent at current loads. Consider testing higher soul counts before raising defaults.",
	VerdictGood:        "Performance is acceptable but not excellent. Profile the renderer before increasing load.",
	VerdictPoor:        "Performance is degraded or unstable. Reduce soul counts or investigate regressions before release.",
}

// Recommendation returns the fixed recommendation text for a verdict.
func Recommendation(v Verdict) string {
	if r, ok := recommendations[v]; ok {
		return r
	}
	return recommendations[VerdictPoor]
}
