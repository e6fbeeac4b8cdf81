// Package runner orchestrates benchmark scenarios against a live page.
//
// Each scenario moves through Loading, Stabilizing, Measuring and Collected
// before ending in Success or Failed. Scenarios run strictly sequentially,
// each in a fresh page closed on every exit path; a failure in one scenario
// is recorded and never stops the ones after it.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"soulbench/internal/browser"
	"soulbench/internal/collector"
	"soulbench/internal/probe"
	"soulbench/internal/progress"
	"soulbench/internal/scenario"
)

// PageFactory opens one isolated page. The runner calls it once per
// scenario; a per-scenario factory failure is recorded, not fatal.
type PageFactory func(ctx context.Context) (browser.Page, error)

type Runner struct {
	cfg     *scenario.Config
	newPage PageFactory
	prog    *progress.Progress
	clock   Clock
	sleep   func(ctx context.Context, d time.Duration) error
}

func New(cfg *scenario.Config, newPage PageFactory, prog *progress.Progress) *Runner {
	return &Runner{
		cfg:     cfg,
		newPage: newPage,
		prog:    prog,
		clock:   RealClock{},
		sleep:   sleepCtx,
	}
}

// Run measures every configured scenario in order and returns the ordered
// result sequence. An interrupted context stops the loop early; results
// collected so far are still returned.
func (r *Runner) Run(ctx context.Context) []collector.RunResult {
	results := make([]collector.RunResult, 0, len(r.cfg.Scenarios))

	for i, sc := range r.cfg.Scenarios {
		if ctx.Err() != nil {
			break
		}

		res := r.safeRun(ctx, sc)
		r.prog.Result(res)
		results = append(results, res)

		if i < len(r.cfg.Scenarios)-1 {
			// let GPU/worker resources settle before the next scenario
			if err := r.sleep(ctx, r.cfg.Timing.Cooldown); err != nil {
				break
			}
		}
	}

	return results
}

// safeRun is the per-scenario error boundary: panics inside a scenario
// become a failed result for that scenario only.
func (r *Runner) safeRun(ctx context.Context, sc scenario.Scenario) (res collector.RunResult) {
	start := r.clock.Now()
	defer func() {
		if p := recover(); p != nil {
			res = r.failed(sc, start, fmt.Errorf("scenario panicked: %v", p))
		}
	}()
	return r.runScenario(ctx, sc, start)
}

func (r *Runner) runScenario(ctx context.Context, sc scenario.Scenario, start time.Time) collector.RunResult {
	r.prog.Phase(sc.Label, "loading")

	url, err := sc.URL(r.cfg.BaseURL)
	if err != nil {
		return r.failed(sc, start, err)
	}

	page, err := r.newPage(ctx)
	if err != nil {
		return r.failed(sc, start, fmt.Errorf("acquiring page: %w", err))
	}
	defer page.Close()

	navCtx, cancelNav := context.WithTimeout(ctx, r.cfg.Timing.NavTimeout)
	err = page.Navigate(navCtx, url)
	cancelNav()
	if err != nil {
		return r.failed(sc, start, err)
	}

	pr := probe.New(page)
	if err := pr.Install(ctx); err != nil {
		return r.failed(sc, start, err)
	}

	r.prog.Phase(sc.Label, "stabilizing")
	if err := r.sleep(ctx, r.cfg.Timing.Stabilize); err != nil {
		return r.failed(sc, start, err)
	}
	// discard warm-up frames
	if err := pr.Reset(ctx); err != nil {
		return r.failed(sc, start, err)
	}

	r.prog.Phase(sc.Label, "measuring")
	mctx, cancelMeasure := context.WithTimeout(ctx, r.cfg.Timing.HardCeiling)
	defer cancelMeasure()

	earlyAbort, err := r.measure(mctx, pr)
	if err != nil {
		return r.failed(sc, start, err)
	}

	r.prog.Phase(sc.Label, "collecting")
	snap, err := pr.Snapshot(mctx)
	if err != nil {
		return r.failed(sc, start, err)
	}

	return r.reduce(sc, start, snap, earlyAbort)
}

// measure waits out the scenario's test window while the probe accumulates
// samples in-page. A watchdog polls the probe's sticky critical flag at the
// configured cadence and short-circuits the window when the frame rate has
// collapsed; returns true in that case. Watchdog read errors are ignored so
// a transient instrumentation hiccup cannot abort the window.
func (r *Runner) measure(ctx context.Context, pr *probe.Probe) (bool, error) {
	deadline := r.clock.Now().Add(r.cfg.Timing.Measure)
	limiter := rate.NewLimiter(rate.Every(r.cfg.Timing.Watchdog), 1)

	for r.clock.Now().Before(deadline) {
		if err := limiter.Wait(ctx); err != nil {
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return false, fmt.Errorf("measurement exceeded hard ceiling: %w", ctx.Err())
			}
			return false, err
		}

		critical, err := pr.Critical(ctx)
		if err != nil {
			continue
		}
		if critical {
			return true, nil
		}
	}

	return false, nil
}

// reduce turns a snapshot into the scenario's RunResult.
func (r *Runner) reduce(sc scenario.Scenario, start time.Time, snap *probe.Snapshot, earlyAbort bool) collector.RunResult {
	stats := collector.ComputeStats(snap.Samples)
	stability := collector.Stability(snap.Samples, r.cfg.Stability, r.cfg.MinStableFPS)
	critical := snap.Critical || earlyAbort
	stable := stability >= r.cfg.StableScore

	return collector.RunResult{
		Label:             sc.Label,
		Souls:             sc.Souls,
		Mode:              sc.Mode,
		ExpectedFPS:       sc.ExpectedFPS,
		ExpectedDrawCalls: sc.ExpectedDrawCalls,
		Stats:             stats,
		Stability:         stability,
		FrameCount:        snap.FrameCount,
		Elapsed:           r.clock.Since(start),
		PeakHeap:          snap.UsedHeap,
		Grade:             collector.Classify(stats.Mean, stable, critical),
		Pass:              stats.Mean >= sc.ExpectedFPS,
		Degraded:          snap.Degraded,
	}
}

func (r *Runner) failed(sc scenario.Scenario, start time.Time, err error) collector.RunResult {
	return collector.RunResult{
		Label:       sc.Label,
		Souls:       sc.Souls,
		Mode:        sc.Mode,
		ExpectedFPS: sc.ExpectedFPS,
		Elapsed:     r.clock.Since(start),
		Err:         err.Error(),
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
