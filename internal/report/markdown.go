package report

import (
	"fmt"
	"strings"

	"soulbench/internal/collector"
)

// FormatMarkdown renders the human-readable report. Pure formatting; every
// figure comes from the Report as-is.
func FormatMarkdown(rep *Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Soul Recycling Benchmark Results\n\n")
	fmt.Fprintf(&b, "Generated: %s  \n", rep.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "Run ID: `%s`  \n", rep.RunID)
	fmt.Fprintf(&b, "Target: %s  \n", rep.BaseURL)
	fmt.Fprintf(&b, "Stability formula: %s\n\n", rep.StabilityVariant)

	env := rep.Environment
	fmt.Fprintf(&b, "Host: %s/%s, %d CPUs", env.OS, env.Arch, env.CPUs)
	if env.GPU != "" {
		fmt.Fprintf(&b, ", GPU: %s", env.GPU)
	}
	if env.DeviceMemoryGB > 0 {
		fmt.Fprintf(&b, ", device memory: %.0f GB", env.DeviceMemoryGB)
	}
	b.WriteString("\n\n")

	b.WriteString("| Scenario | Souls | Mode | Avg FPS | P95 FPS | Stability | Peak Heap | Status |\n")
	b.WriteString("|----------|-------|------|---------|---------|-----------|-----------|--------|\n")
	for _, r := range rep.Results {
		fmt.Fprintf(&b, "| %s | %d | %s | %s |\n",
			r.Label, r.Souls, r.Mode, resultCells(r))
	}

	s := rep.Summary
	fmt.Fprintf(&b, "\n## Summary\n\n")
	fmt.Fprintf(&b, "- Scenarios: %d (%d failed)\n", s.Scenarios, s.Failures)
	fmt.Fprintf(&b, "- Average FPS: %.1f\n", s.AvgFPS)
	fmt.Fprintf(&b, "- Average stability: %.0f%%\n", s.AvgStability*100)
	fmt.Fprintf(&b, "- Max stable souls: %d\n", s.MaxStableSouls)
	fmt.Fprintf(&b, "- Verdict: **%s**\n\n", s.Verdict)

	fmt.Fprintf(&b, "> %s\n", collector.Recommendation(s.Verdict))

	return b.String()
}

func resultCells(r collector.RunResult) string {
	if r.Failed() {
		return fmt.Sprintf("- | - | - | - | ERROR: %s", r.Err)
	}

	status := string(r.Grade)
	if r.Pass {
		status += " ✓"
	} else {
		status += " ✗"
	}
	if r.Degraded {
		status += " (degraded)"
	}

	return fmt.Sprintf("%.1f | %.1f | %.0f%% | %s | %s",
		r.Stats.Mean, r.Stats.P95, r.Stability*100, formatBytes(r.PeakHeap), status)
}

func formatBytes(n int64) string {
	switch {
	case n <= 0:
		return "-"
	case n < 1<<20:
		return fmt.Sprintf("%dKB", n/(1<<10))
	case n < 1<<30:
		return fmt.Sprintf("%.1fMB", float64(n)/(1<<20))
	default:
		return fmt.Sprintf("%.2fGB", float64(n)/(1<<30))
	}
}
