package collector

import "time"

// RunResult is the persisted outcome of measuring one scenario. A result is
// either successful (statistics populated, Err empty) or failed (Err
// populated, statistics zero); never both. Results are append-only and never
// mutated after creation.
type RunResult struct {
	Label             string  `json:"label"`
	Souls             int     `json:"souls"`
	Mode              string  `json:"mode"`
	ExpectedFPS       float64 `json:"expectedFPS"`
	ExpectedDrawCalls int     `json:"expectedDrawCalls,omitempty"`

	Stats      Stats         `json:"stats"`
	Stability  float64       `json:"stability"`
	FrameCount int           `json:"frameCount"`
	Elapsed    time.Duration `json:"elapsed"`
	PeakHeap   int64         `json:"peakHeap"`
	Grade      Grade         `json:"grade"`
	Pass       bool          `json:"pass"`
	Degraded   bool          `json:"degraded,omitempty"`
	Err        string        `json:"error,omitempty"`
}

// Failed reports whether the scenario never produced statistics.
func (r RunResult) Failed() bool {
	return r.Err != ""
}
