// Package report persists benchmark results as a structured JSON record and
// a human-readable Markdown table.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"soulbench/internal/collector"
	"soulbench/internal/envinfo"
)

// Report is the full persisted outcome of one benchmark run. Complete is
// set by the writer just before serialization so a partially-written or
// truncated record is distinguishable from a finished one.
type Report struct {
	RunID            string                     `json:"runId"`
	GeneratedAt      time.Time                  `json:"generatedAt"`
	BaseURL          string                     `json:"baseURL"`
	StabilityVariant collector.StabilityVariant `json:"stabilityVariant"`
	Environment      envinfo.Env                `json:"environment"`
	Results          []collector.RunResult      `json:"results"`
	Summary          collector.Summary          `json:"summary"`
	Complete         bool                       `json:"complete"`
}

// Write persists the report under dir: a timestamped archival JSON copy, a
// soulbench-latest.json pointer, and RESULTS.md. Each file is written to a
// temp file and renamed into place, so readers never observe a partial
// report under a final name. Any write failure is fatal to the run.
func Write(dir string, rep *Report) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating report dir: %w", err)
	}

	rep.Complete = true

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	data = append(data, '\n')

	stamp := rep.GeneratedAt.UTC().Format("20060102-150405")
	archival := filepath.Join(dir, fmt.Sprintf("soulbench-%s.json", stamp))
	if err := atomicWrite(archival, data); err != nil {
		return err
	}
	if err := atomicWrite(filepath.Join(dir, "soulbench-latest.json"), data); err != nil {
		return err
	}

	md := FormatMarkdown(rep)
	if err := atomicWrite(filepath.Join(dir, "RESULTS.md"), []byte(md)); err != nil {
		return err
	}

	return nil
}

func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".soulbench-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp report file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing report file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("publishing report %s: %w", filepath.Base(path), err)
	}
	return nil
}
