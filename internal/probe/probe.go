// Package probe installs and reads the in-page frame instrumentation.
//
// The probe wraps the page's requestAnimationFrame so every scheduled
// callback is intercepted: each invocation derives an instantaneous rate
// from the elapsed time since the previous frame and appends it to an
// in-page buffer. The page's own callback still fires, so rendering is
// unchanged. All probe state lives under one keyed object rather than loose
// globals; the harness holds the only handle to it.
package probe

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"soulbench/internal/browser"
)

// key names the in-page probe object. Unlikely to collide with anything the
// target application defines.
const key = "__soulbenchProbe"

// maxSamples bounds the in-page buffer so a runaway window cannot grow the
// page heap without limit (72000 ~= 20 minutes at 60fps).
const maxSamples = 72000

// criticalFPS is the instantaneous rate below which the page is considered
// fatally unstable; the probe latches a sticky flag the watchdog reads.
const criticalFPS = 1.0

// Snapshot is the probe's state at collection time. Heap figures are zero
// when the host does not expose memory; Degraded marks a snapshot whose
// collection partially failed in-page.
type Snapshot struct {
	Samples    []float64
	FrameCount int
	PageFPS    float64
	Souls      int
	UsedHeap   int64
	TotalHeap  int64
	HeapLimit  int64
	Critical   bool
	Degraded   bool
}

var installJS = fmt.Sprintf(`(() => {
	if (window.%[1]s) return true;
	const p = { samples: [], frames: 0, last: 0, critical: false };
	const raf = window.requestAnimationFrame.bind(window);
	window.requestAnimationFrame = (cb) => raf((ts) => {
		if (p.last > 0) {
			const elapsed = ts - p.last;
			if (elapsed > 0) {
				const fps = 1000 / elapsed;
				if (p.samples.length < %[2]d) p.samples.push(fps);
				if (fps < %[3]g) p.critical = true;
				p.frames++;
			}
		}
		p.last = ts;
		cb(ts);
	});
	window.%[1]s = p;
	return true;
})()`, key, maxSamples, criticalFPS)

var resetJS = fmt.Sprintf(`(() => {
	const p = window.%[1]s;
	if (!p) return false;
	p.samples = [];
	p.frames = 0;
	p.critical = false;
	return true;
})()`, key)

// snapshotJS serializes the probe state to JSON in-page. Memory and target
// page globals are read best effort: a throw marks the snapshot degraded
// instead of propagating into the harness's polling loop.
var snapshotJS = fmt.Sprintf(`(() => {
	const p = window.%[1]s;
	if (!p) return JSON.stringify({ degraded: true });
	const out = {
		samples: p.samples,
		frames: p.frames,
		critical: p.critical,
		degraded: false,
	};
	try {
		if (performance.memory) {
			out.usedHeap = performance.memory.usedJSHeapSize;
			out.totalHeap = performance.memory.totalJSHeapSize;
			out.heapLimit = performance.memory.jsHeapSizeLimit;
		}
		out.pageFPS = window.currentFPS || 0;
		out.souls = window.soulCount || 0;
	} catch (e) {
		out.degraded = true;
	}
	return JSON.stringify(out);
})()`, key)

var criticalJS = fmt.Sprintf(`!!(window.%[1]s && window.%[1]s.critical)`, key)

// Probe drives the in-page instrumentation on one page.
type Probe struct {
	page browser.Page
}

// New returns a probe handle for the given page. Nothing is installed yet.
func New(page browser.Page) *Probe {
	return &Probe{page: page}
}

// Install injects the frame interceptor. Idempotent per page.
func (p *Probe) Install(ctx context.Context) error {
	var ok bool
	if err := p.page.Evaluate(ctx, installJS, &ok); err != nil {
		return fmt.Errorf("installing probe: %w", err)
	}
	return nil
}

// Reset clears the sample buffer and frame counter without uninstalling the
// interceptor. Called after the stabilization period so warm-up frames do
// not bias statistics.
func (p *Probe) Reset(ctx context.Context) error {
	var ok bool
	if err := p.page.Evaluate(ctx, resetJS, &ok); err != nil {
		return fmt.Errorf("resetting probe: %w", err)
	}
	if !ok {
		return fmt.Errorf("resetting probe: probe not installed")
	}
	return nil
}

// Critical reports whether the probe has latched its instability flag.
func (p *Probe) Critical(ctx context.Context) (bool, error) {
	var critical bool
	if err := p.page.Evaluate(ctx, criticalJS, &critical); err != nil {
		return false, fmt.Errorf("reading critical flag: %w", err)
	}
	return critical, nil
}

// Snapshot collects the probe state. A degraded in-page collection still
// returns a usable partial Snapshot; only a driver-level failure returns an
// error.
func (p *Probe) Snapshot(ctx context.Context) (*Snapshot, error) {
	var raw string
	if err := p.page.Evaluate(ctx, snapshotJS, &raw); err != nil {
		return nil, fmt.Errorf("collecting snapshot: %w", err)
	}
	return parseSnapshot(raw)
}

func parseSnapshot(raw string) (*Snapshot, error) {
	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("collecting snapshot: invalid JSON from page")
	}

	snap := &Snapshot{
		FrameCount: int(gjson.Get(raw, "frames").Int()),
		PageFPS:    gjson.Get(raw, "pageFPS").Float(),
		Souls:      int(gjson.Get(raw, "souls").Int()),
		UsedHeap:   gjson.Get(raw, "usedHeap").Int(),
		TotalHeap:  gjson.Get(raw, "totalHeap").Int(),
		HeapLimit:  gjson.Get(raw, "heapLimit").Int(),
		Critical:   gjson.Get(raw, "critical").Bool(),
		Degraded:   gjson.Get(raw, "degraded").Bool(),
	}

	samples := gjson.Get(raw, "samples")
	samples.ForEach(func(_, value gjson.Result) bool {
		snap.Samples = append(snap.Samples, value.Float())
		return true
	})

	return snap, nil
}
