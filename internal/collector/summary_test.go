package collector

import "testing"

func result(label string, souls int, mean, stability float64, grade Grade) RunResult {
	return RunResult{
		Label:     label,
		Souls:     souls,
		Stats:     Stats{Mean: mean},
		Stability: stability,
		Grade:     grade,
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)

	if s.Scenarios != 0 {
		t.Errorf("expected 0 scenarios, got %d", s.Scenarios)
	}
	if s.Verdict != VerdictPoor {
		t.Errorf("expected POOR verdict for empty run, got %s", s.Verdict)
	}
}

func TestSummarize_TwoThirdsExcellent(t *testing.T) {
	// 2/3 excellent, zero unstable: below the >80% OUTSTANDING cutoff but
	// at the >=50% EXCELLENT tier.
	results := []RunResult{
		result("a", 500, 60, 1.0, GradeExcellent),
		result("b", 1000, 62, 1.0, GradeExcellent),
		result("c", 2000, 25, 0.9, GradeDegraded),
	}

	s := Summarize(results)

	if s.Verdict == VerdictOutstanding {
		t.Errorf("2/3 excellent must not be OUTSTANDING")
	}
	if s.Verdict != VerdictExcellent {
		t.Errorf("expected EXCELLENT, got %s", s.Verdict)
	}
}

func TestSummarize_Outstanding(t *testing.T) {
	results := []RunResult{
		result("a", 500, 60, 1.0, GradeExcellent),
		result("b", 1000, 61, 1.0, GradeExcellent),
		result("c", 2000, 62, 1.0, GradeExcellent),
		result("d", 3000, 63, 1.0, GradeExcellent),
		result("e", 5000, 64, 1.0, GradeExcellent),
	}

	s := Summarize(results)

	if s.Verdict != VerdictOutstanding {
		t.Errorf("expected OUTSTANDING, got %s", s.Verdict)
	}
}

func TestSummarize_CriticalForcesPoor(t *testing.T) {
	results := []RunResult{
		result("a", 500, 60, 1.0, GradeExcellent),
		result("b", 1000, 61, 1.0, GradeExcellent),
		result("c", 2000, 62, 1.0, GradeExcellent),
		result("d", 3000, 63, 1.0, GradeExcellent),
		result("e", 5000, 2, 0.1, GradeCritical),
	}

	s := Summarize(results)

	if s.Verdict != VerdictPoor {
		t.Errorf("expected POOR with an unstable scenario, got %s", s.Verdict)
	}
}

func TestSummarize_FailedCountsAsUnstable(t *testing.T) {
	results := []RunResult{
		result("a", 500, 60, 1.0, GradeExcellent),
		{Label: "b", Souls: 1000, Err: "navigation timed out"},
	}

	s := Summarize(results)

	if s.Failures != 1 {
		t.Errorf("expected 1 failure, got %d", s.Failures)
	}
	if s.Verdict != VerdictPoor {
		t.Errorf("expected POOR with a failed scenario, got %s", s.Verdict)
	}
	// the failed scenario contributes nothing to the averages
	if s.AvgFPS != 60 {
		t.Errorf("expected avg fps 60, got %v", s.AvgFPS)
	}
	if s.AvgStability != 1.0 {
		t.Errorf("expected avg stability 1.0, got %v", s.AvgStability)
	}
}

func TestSummarize_MaxStableSouls(t *testing.T) {
	results := []RunResult{
		result("a", 500, 60, 1.0, GradeExcellent),
		result("b", 2000, 45, 0.95, GradeAcceptable),
		result("c", 5000, 12, 0.4, GradeCritical),
	}

	s := Summarize(results)

	if s.MaxStableSouls != 2000 {
		t.Errorf("expected max stable souls 2000, got %d", s.MaxStableSouls)
	}
}

func TestRecommendation_CoversAllVerdicts(t *testing.T) {
	for _, v := range []Verdict{VerdictOutstanding, VerdictExcellent, VerdictGood, VerdictPoor} {
		if Recommendation(v) == "" {
			t.Errorf("no recommendation for verdict %s", v)
		}
	}
	if Recommendation("BOGUS") == "" {
		t.Error("unknown verdict must still yield a recommendation")
	}
}
