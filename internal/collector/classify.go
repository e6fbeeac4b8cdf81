package collector

// Grade classifies one scenario's measured performance.
type Grade string

const (
	GradeCritical   Grade = "CRITICAL"
	GradePoor       Grade = "POOR"
	GradeDegraded   Grade = "DEGRADED"
	GradeAcceptable Grade = "ACCEPTABLE"
	GradeExcellent  Grade = "EXCELLENT"
)

// Classify maps a mean frame rate plus the stability and critical flags to
// exactly one Grade. Thresholds are ordered; first match wins.
func Classify(mean float64, stable bool, critical bool) Grade {
	switch {
	case critical || !stable:
		return GradeCritical
	case mean < 15:
		return GradePoor
	case mean < 30:
		return GradeDegraded
	case mean < 60:
		return GradeAcceptable
	default:
		return GradeExcellent
	}
}
