package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis"
	"github.com/google/uuid"

	"soulbench/internal/browser"
	"soulbench/internal/collector"
	"soulbench/internal/envinfo"
	"soulbench/internal/progress"
	"soulbench/internal/report"
	"soulbench/internal/runner"
	"soulbench/internal/scenario"
	"soulbench/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional, built-in scenario ladder when omitted)")
	baseURL := flag.String("url", "", "override the target base URL")
	outDir := flag.String("out", "", "override the report output directory")
	quiet := flag.Bool("quiet", false, "suppress progress output during the run")
	headed := flag.Bool("headed", false, "run the browser with a visible window")
	flag.Parse()

	cfg := scenario.Default()
	if *configPath != "" {
		loaded, err := scenario.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(ExitError)
		}
		cfg = loaded
	}
	if *baseURL != "" {
		cfg.BaseURL = *baseURL
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}
	if !*headed {
		cfg.Headless = true
	}

	prog := progress.New(*quiet)

	// the dev server must answer before we bother launching a browser
	if err := checkServer(cfg.BaseURL); err != nil {
		fmt.Fprintf(os.Stderr, "error: dev server not reachable at %s: %v\n", cfg.BaseURL, err)
		fmt.Fprintln(os.Stderr, "start it first (e.g. npm run dev) and retry")
		os.Exit(ExitError)
	}

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		if !*quiet {
			fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, finishing up...")
		}
		cancel()
	}()

	os.Exit(run(ctx, cfg, prog))
}

func run(ctx context.Context, cfg *scenario.Config, prog *progress.Progress) int {
	b, err := browser.Launch(ctx, cfg.Headless)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return ExitError
	}
	defer b.Close()

	prog.Printf("soulbench starting: %d scenarios against %s, stability=%s",
		len(cfg.Scenarios), cfg.BaseURL, cfg.Stability)

	r := runner.New(cfg, b.NewPage, prog)
	results := r.Run(ctx)

	rep := &report.Report{
		RunID:            uuid.NewString(),
		GeneratedAt:      time.Now(),
		BaseURL:          cfg.BaseURL,
		StabilityVariant: cfg.Stability,
		Environment:      collectEnv(ctx, b),
		Results:          results,
		Summary:          collector.Summarize(results),
	}

	if err := report.Write(cfg.Output.Dir, rep); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return ExitError
	}

	if cfg.Archive.Redis != "" {
		archive := storage.NewRedis(redis.NewClient(&redis.Options{Addr: cfg.Archive.Redis}))
		if err := archive.SaveRun(rep); err != nil {
			prog.Printf("warning: archiving run failed: %v", err)
		}
	}

	prog.Printf("verdict: %s (avg %.1f fps over %d scenarios, %d failed)",
		rep.Summary.Verdict, rep.Summary.AvgFPS, rep.Summary.Scenarios, rep.Summary.Failures)
	prog.Printf("report written to %s", cfg.Output.Dir)

	// scenario failures are report rows, not process failures
	return ExitSuccess
}

// collectEnv gathers environment metadata on a throwaway page. Best effort:
// a page that cannot be opened still yields host facts.
func collectEnv(ctx context.Context, b *browser.Browser) envinfo.Env {
	page, err := b.NewPage(ctx)
	if err != nil {
		return envinfo.Host()
	}
	defer page.Close()

	envCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return envinfo.Collect(envCtx, page)
}

func checkServer(baseURL string) error {
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(baseURL)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("server answered %s", resp.Status)
	}
	return nil
}
