package scenario

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"soulbench/internal/collector"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bench.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
baseURL: http://localhost:8080
stability: dispersion
minStableFPS: 30
timing:
  stabilize: 5s
  measure: 15s
scenarios:
  - label: baseline
    souls: 500
    mode: instanced
    expectedFPS: 55
  - label: heavy
    souls: 2000
    mode: individual
    expectedFPS: 40
    expectedDrawCalls: 12
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.BaseURL != "http://localhost:8080" {
		t.Errorf("baseURL = %q", cfg.BaseURL)
	}
	if cfg.Stability != collector.StabilityDispersion {
		t.Errorf("stability = %q", cfg.Stability)
	}
	if len(cfg.Scenarios) != 2 {
		t.Fatalf("expected 2 scenarios, got %d", len(cfg.Scenarios))
	}
	if cfg.Scenarios[1].ExpectedDrawCalls != 12 {
		t.Errorf("expectedDrawCalls = %d", cfg.Scenarios[1].ExpectedDrawCalls)
	}
	if cfg.Timing.Stabilize != 5*time.Second {
		t.Errorf("stabilize = %v", cfg.Timing.Stabilize)
	}
	// unspecified fields get defaults
	if cfg.Timing.NavTimeout != 30*time.Second {
		t.Errorf("navTimeout default = %v", cfg.Timing.NavTimeout)
	}
	if cfg.StableScore != 0.8 {
		t.Errorf("stableScore default = %v", cfg.StableScore)
	}
	if cfg.Output.Dir != "reports" {
		t.Errorf("output dir default = %q", cfg.Output.Dir)
	}
	// ceiling defaults relative to the measure window
	if cfg.Timing.HardCeiling != 30*time.Second {
		t.Errorf("hardCeiling default = %v", cfg.Timing.HardCeiling)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "scenarios: [\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			"no scenarios",
			"baseURL: http://localhost:5173\n",
			"no scenarios",
		},
		{
			"missing label",
			"scenarios:\n  - souls: 500\n",
			"no label",
		},
		{
			"zero souls",
			"scenarios:\n  - label: x\n    souls: 0\n",
			"souls",
		},
		{
			"unknown stability",
			"stability: vibes\nscenarios:\n  - label: x\n    souls: 10\n",
			"stability",
		},
		{
			"ceiling below window",
			"timing:\n  measure: 30s\n  hardCeiling: 10s\nscenarios:\n  - label: x\n    souls: 10\n",
			"hardCeiling",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("built-in config must validate: %v", err)
	}
	if len(cfg.Scenarios) == 0 {
		t.Fatal("built-in config has no scenarios")
	}
	// scenario ladder must be ascending in load
	for i := 1; i < len(cfg.Scenarios); i++ {
		if cfg.Scenarios[i].Souls <= cfg.Scenarios[i-1].Souls {
			t.Errorf("scenario ladder not ascending at %d", i)
		}
	}
}

func TestScenarioURL(t *testing.T) {
	s := Scenario{Label: "heavy", Souls: 2000, Mode: "individual"}

	got, err := s.URL("http://localhost:5173/")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "souls=2000") {
		t.Errorf("missing souls parameter: %s", got)
	}
	if !strings.Contains(got, "mode=individual") {
		t.Errorf("missing mode parameter: %s", got)
	}
}

func TestScenarioURL_NoMode(t *testing.T) {
	s := Scenario{Label: "plain", Souls: 100}

	got, err := s.URL("http://localhost:5173")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "mode=") {
		t.Errorf("empty mode must be omitted: %s", got)
	}
}
