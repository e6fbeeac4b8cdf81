// Package scenario handles YAML benchmark configuration parsing.
package scenario

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"soulbench/internal/collector"
)

// Scenario is one configured benchmark case. Immutable after load.
type Scenario struct {
	Label             string  `yaml:"label"`
	Souls             int     `yaml:"souls"`
	Mode              string  `yaml:"mode"`
	ExpectedFPS       float64 `yaml:"expectedFPS"`
	ExpectedDrawCalls int     `yaml:"expectedDrawCalls,omitempty"`
}

// URL builds the navigation URL for this scenario against the given base.
// Load count and rendering mode travel as query parameters; the target page
// reads them at startup.
func (s Scenario) URL(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}
	q := u.Query()
	q.Set("souls", strconv.Itoa(s.Souls))
	if s.Mode != "" {
		q.Set("mode", s.Mode)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Timing controls the per-scenario measurement schedule.
type Timing struct {
	NavTimeout  time.Duration `yaml:"navTimeout"`
	Stabilize   time.Duration `yaml:"stabilize"`
	Measure     time.Duration `yaml:"measure"`
	Cooldown    time.Duration `yaml:"cooldown"`
	HardCeiling time.Duration `yaml:"hardCeiling"`
	Watchdog    time.Duration `yaml:"watchdog"`
}

// OutputConfig controls report persistence.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// ArchiveConfig enables the optional Redis run archive when Redis is
// non-empty.
type ArchiveConfig struct {
	Redis string `yaml:"redis,omitempty"`
}

// Config is the root configuration structure.
type Config struct {
	BaseURL      string                     `yaml:"baseURL"`
	Headless     bool                       `yaml:"headless"`
	Stability    collector.StabilityVariant `yaml:"stability"`
	MinStableFPS float64                    `yaml:"minStableFPS"`
	StableScore  float64                    `yaml:"stableScore"`
	Timing       Timing                     `yaml:"timing"`
	Output       OutputConfig               `yaml:"output"`
	Archive      ArchiveConfig              `yaml:"archive,omitempty"`
	Scenarios    []Scenario                 `yaml:"scenarios"`
}

// Default returns the built-in configuration: the fixed scenario ladder used
// when no config file is given.
func Default() *Config {
	cfg := &Config{
		BaseURL: "http://localhost:5173",
		Scenarios: []Scenario{
			{Label: "baseline", Souls: 500, Mode: "instanced", ExpectedFPS: 55},
			{Label: "moderate", Souls: 1000, Mode: "instanced", ExpectedFPS: 50},
			{Label: "heavy", Souls: 2000, Mode: "instanced", ExpectedFPS: 40},
			{Label: "extreme", Souls: 3000, Mode: "instanced", ExpectedFPS: 30},
			{Label: "breaking", Souls: 5000, Mode: "instanced", ExpectedFPS: 20},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses a YAML configuration file, filling defaults and
// validating the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:5173"
	}
	if c.Stability == "" {
		c.Stability = collector.StabilityThreshold
	}
	if c.MinStableFPS == 0 {
		c.MinStableFPS = 25
	}
	if c.StableScore == 0 {
		c.StableScore = 0.8
	}
	if c.Timing.NavTimeout == 0 {
		c.Timing.NavTimeout = 30 * time.Second
	}
	if c.Timing.Stabilize == 0 {
		c.Timing.Stabilize = 8 * time.Second
	}
	if c.Timing.Measure == 0 {
		c.Timing.Measure = 20 * time.Second
	}
	if c.Timing.Cooldown == 0 {
		c.Timing.Cooldown = 3 * time.Second
	}
	if c.Timing.HardCeiling == 0 {
		c.Timing.HardCeiling = c.Timing.Measure + 15*time.Second
	}
	if c.Timing.Watchdog == 0 {
		c.Timing.Watchdog = 500 * time.Millisecond
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "reports"
	}
}

// Validate checks the configuration for values the runner cannot work with.
func (c *Config) Validate() error {
	if len(c.Scenarios) == 0 {
		return fmt.Errorf("config: no scenarios defined")
	}
	for i, s := range c.Scenarios {
		if s.Label == "" {
			return fmt.Errorf("config: scenario %d has no label", i)
		}
		if s.Souls <= 0 {
			return fmt.Errorf("config: scenario %q: souls must be > 0", s.Label)
		}
	}
	switch c.Stability {
	case collector.StabilityThreshold, collector.StabilityDispersion:
	default:
		return fmt.Errorf("config: unknown stability variant %q", c.Stability)
	}
	if c.Timing.Measure <= 0 || c.Timing.Stabilize < 0 {
		return fmt.Errorf("config: timing durations must be positive")
	}
	if c.Timing.HardCeiling < c.Timing.Measure {
		return fmt.Errorf("config: hardCeiling %v shorter than measure window %v",
			c.Timing.HardCeiling, c.Timing.Measure)
	}
	return nil
}
