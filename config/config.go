// Package config provides configuration loading and access for the flow simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Noise     NoiseConfig     `yaml:"noise"`
	Flow      FlowConfig      `yaml:"flow"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds simulation world dimensions.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// NoiseConfig holds noise field sampling parameters.
type NoiseConfig struct {
	Seed            int64   `yaml:"seed"`             // 0 = use the session seed
	Scale           float64 `yaml:"scale"`            // World units to noise units
	DriftX          float64 `yaml:"drift_x"`          // Noise-space offset per tick (animates the field)
	DriftY          float64 `yaml:"drift_y"`
	MagnitudeOffset float64 `yaml:"magnitude_offset"` // Offset of the second (magnitude) sample
}

// FlowConfig holds flow particle parameters.
type FlowConfig struct {
	Count          int     `yaml:"count"`
	SpawnRate      int     `yaml:"spawn_rate"`      // Particles spawned per tick until Count is reached
	Strength       float64 `yaml:"strength"`        // Peak flow force
	Drag           float64 `yaml:"drag"`            // Fraction of velocity removed per tick
	MaxSpeed       float64 `yaml:"max_speed"`
	MinLifespan    int     `yaml:"min_lifespan"`    // Ticks
	LifespanJitter int     `yaml:"lifespan_jitter"` // Extra random ticks
	DownwardDrift  float64 `yaml:"downward_drift"`  // Constant +Y force
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"` // Ticks per stats window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	MaxSpeedSq float64 // Flow.MaxSpeed squared
	Area       float64 // World.Width * World.Height
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

// Default returns the embedded default configuration.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: invalid embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
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

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate reports the first setting the simulation cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("world size %vx%v must be positive", c.World.Width, c.World.Height)
	case c.Flow.Count < 0:
		return fmt.Errorf("flow.count %d must not be negative", c.Flow.Count)
	case c.Flow.MaxSpeed <= 0:
		return errors.New("flow.max_speed must be positive")
	case c.Flow.Drag < 0 || c.Flow.Drag >= 1:
		return fmt.Errorf("flow.drag %v must be in [0, 1)", c.Flow.Drag)
	case c.Flow.MinLifespan <= 0 || c.Flow.LifespanJitter < 0:
		return errors.New("flow lifespans must be positive")
	case c.Telemetry.StatsWindow <= 0:
		return fmt.Errorf("telemetry.stats_window %d must be positive", c.Telemetry.StatsWindow)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.MaxSpeedSq = c.Flow.MaxSpeed * c.Flow.MaxSpeed
	c.Derived.Area = c.World.Width * c.World.Height
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
