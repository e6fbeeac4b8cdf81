// Package progress prints per-scenario status lines during a run.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"soulbench/internal/collector"
)

type Progress struct {
	startTime time.Time
	quiet     bool
	output    io.Writer
	mu        sync.Mutex
}

func New(quiet bool) *Progress {
	return &Progress{
		startTime: time.Now(),
		quiet:     quiet,
		output:    os.Stderr,
	}
}

func (p *Progress) SetOutput(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.output = w
}

// Printf writes a message regardless of phase state. Respects quiet mode.
func (p *Progress) Printf(format string, args ...any) {
	if p.quiet {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.output, format+"\n", args...)
}

// Phase logs a scenario state transition.
func (p *Progress) Phase(label, phase string) {
	p.Printf("[%s] %-12s %s", p.elapsed(), label, phase)
}

// Result logs the outcome of one scenario.
func (p *Progress) Result(res collector.RunResult) {
	if res.Failed() {
		p.Printf("[%s] %-12s FAILED: %s", p.elapsed(), res.Label, res.Err)
		return
	}
	p.Printf("[%s] %-12s %s  avg=%.1ffps  stability=%.0f%%  frames=%d",
		p.elapsed(), res.Label, res.Grade, res.Stats.Mean, res.Stability*100, res.FrameCount)
}

func (p *Progress) elapsed() string {
	return time.Since(p.startTime).Round(time.Second).String()
}
