// Package config provides configuration loading and access for the sketch.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all sketch configuration.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Sketch      SketchConfig      `yaml:"sketch"`
	Persistence PersistenceConfig `yaml:"persistence"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
	Groups      GroupSet          `yaml:"groups"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int  `yaml:"width"`
	Height    int  `yaml:"height"`
	TargetFPS int  `yaml:"target_fps"`
	Resizable bool `yaml:"resizable"`
}

// SketchConfig holds global sketch settings.
type SketchConfig struct {
	Seed       int64   `yaml:"seed"`         // 0 = seed from the clock
	Background string  `yaml:"background"`   // hex color
	ShowField  bool    `yaml:"show_field"`   // flow-field overlay on start
	FieldGrid  int     `yaml:"field_grid"`   // overlay cells across the width
	FixedDT    float64 `yaml:"fixed_dt"`     // headless tick length in ms
	MaxFrameDT float64 `yaml:"max_frame_dt"` // cap on a single frame's dt in ms
}

// PersistenceConfig holds shareable-state settings.
type PersistenceConfig struct {
	DebounceMS int    `yaml:"debounce_ms"`
	StateFile  string `yaml:"state_file"` // empty disables writing
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // seconds of sim time
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
	StatsMS   float64 // Telemetry.StatsWindow in ms
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used. A groups section in the
// file replaces the default groups entirely.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if cfg.Groups.Len() == 0 {
		cfg.Groups = *DefaultGroupSet()
	}
	if err := cfg.Groups.Validate(); err != nil {
		return nil, fmt.Errorf("validating groups: %w", err)
	}

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.StatsMS = c.Telemetry.StatsWindow * 1000

	if c.Sketch.FixedDT <= 0 {
		c.Sketch.FixedDT = 1000.0 / 60
	}
	if c.Sketch.FieldGrid <= 0 {
		c.Sketch.FieldGrid = 30
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
