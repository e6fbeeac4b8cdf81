// Package browser wraps chromedp behind a small page-session interface so
// the rest of the harness never touches the driver directly.
package browser

import (
	"context"
	"fmt"

	"github.com/chromedp/chromedp"
)

// Page is one isolated browser page. Implementations must be safe to Close
// more than once.
type Page interface {
	Navigate(ctx context.Context, url string) error
	Evaluate(ctx context.Context, js string, out any) error
	Close() error
}

// Browser owns the browser process and mints one isolated page per scenario.
type Browser struct {
	allocCtx context.Context
	cancel   context.CancelFunc
}

// Launch starts a browser process. Failure here is fatal to the whole run;
// it is the only error the orchestrator does not absorb per scenario.
func Launch(ctx context.Context, headless bool) (*Browser, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.Flag("disable-gpu", false),
		chromedp.Flag("mute-audio", true),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)

	// chromedp starts the process lazily; run an empty task now so an
	// unlaunchable browser fails the run up front.
	probeCtx, probeCancel := chromedp.NewContext(allocCtx)
	defer probeCancel()
	if err := chromedp.Run(probeCtx); err != nil {
		cancel()
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	return &Browser{allocCtx: allocCtx, cancel: cancel}, nil
}

// NewPage opens a fresh tab context.
func (b *Browser) NewPage(ctx context.Context) (Page, error) {
	tabCtx, cancel := chromedp.NewContext(b.allocCtx)
	if err := chromedp.Run(tabCtx); err != nil {
		cancel()
		return nil, fmt.Errorf("opening page: %w", err)
	}
	return &session{ctx: tabCtx, cancel: cancel}, nil
}

// Close shuts the browser process down.
func (b *Browser) Close() error {
	b.cancel()
	return nil
}

// session is a chromedp-backed Page. The caller's context deadline bounds
// each operation; the tab context carries the connection.
type session struct {
	ctx    context.Context
	cancel context.CancelFunc
}

func (s *session) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx := s.ctx
	if deadline, ok := ctx.Deadline(); ok {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithDeadline(s.ctx, deadline)
		defer cancel()
	}
	return chromedp.Run(runCtx, actions...)
}

func (s *session) Navigate(ctx context.Context, url string) error {
	if err := s.run(ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	return nil
}

func (s *session) Evaluate(ctx context.Context, js string, out any) error {
	if err := s.run(ctx, chromedp.Evaluate(js, out)); err != nil {
		return fmt.Errorf("evaluating script: %w", err)
	}
	return nil
}

func (s *session) Close() error {
	s.cancel()
	return nil
}
