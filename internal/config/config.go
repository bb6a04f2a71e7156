package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Sim       SimConfig       `toml:"sim"`
	Tuning    TuningConfig    `toml:"tuning"`
	Data      DataConfig      `toml:"data"`
	Scripting ScriptingConfig `toml:"scripting"`
	Logging   LoggingConfig   `toml:"logging"`
	Debug     DebugConfig     `toml:"debug"`
}

type SimConfig struct {
	TickHz   int   `toml:"tick_hz"`   // simulation steps per second of game time
	MaxTicks int   `toml:"max_ticks"` // 0 = run until interrupted
	Seed     int64 `toml:"seed"`      // 0 = seed from the clock
	Realtime bool  `toml:"realtime"`  // pace steps with a ticker instead of running flat out
}

// TuningConfig holds the behavior constants shared by every unit.
type TuningConfig struct {
	ArrivalThreshold   float64 `toml:"arrival_threshold"`   // move orders complete within this distance
	InteractionPenalty float64 `toml:"interaction_penalty"` // speed multiplier while attacking/mining/collecting
	HoverDistance      float64 `toml:"hover_distance"`      // follow orders hold still within this distance; keep above every template range
	OreScatter         float64 `toml:"ore_scatter"`         // dropped ore lands within ±ore_scatter patch sizes
}

type DataConfig struct {
	UnitList string `toml:"unit_list"`
	Scenario string `toml:"scenario"`
}

type ScriptingConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type DebugConfig struct {
	Profile    string `toml:"profile"` // "", "cpu" or "mem"
	ProfileDir string `toml:"profile_dir"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes TOML over the defaults. name is used in error messages.
func Parse(data []byte, name string) (*Config, error) {
	cfg := Defaults()
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", name, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", name, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Sim.TickHz <= 0 {
		return fmt.Errorf("sim.tick_hz must be positive, got %d", c.Sim.TickHz)
	}
	if c.Sim.MaxTicks < 0 {
		return fmt.Errorf("sim.max_ticks must not be negative, got %d", c.Sim.MaxTicks)
	}
	if p := c.Tuning.InteractionPenalty; p <= 0 || p > 1 {
		return fmt.Errorf("tuning.interaction_penalty must be in (0, 1], got %v", p)
	}
	if c.Tuning.ArrivalThreshold <= 0 {
		return fmt.Errorf("tuning.arrival_threshold must be positive, got %v", c.Tuning.ArrivalThreshold)
	}
	if c.Tuning.HoverDistance <= 0 {
		return fmt.Errorf("tuning.hover_distance must be positive, got %v", c.Tuning.HoverDistance)
	}
	if c.Tuning.OreScatter <= 0 {
		return fmt.Errorf("tuning.ore_scatter must be positive, got %v", c.Tuning.OreScatter)
	}
	switch c.Debug.Profile {
	case "", "cpu", "mem":
	default:
		return fmt.Errorf("debug.profile must be cpu, mem or empty, got %q", c.Debug.Profile)
	}
	return nil
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Sim: SimConfig{
			TickHz:   60,
			MaxTicks: 3600,
			Seed:     0,
			Realtime: false,
		},
		Tuning: TuningConfig{
			ArrivalThreshold:   3,
			InteractionPenalty: 0.35,
			HoverDistance:      175,
			OreScatter:         2,
		},
		Data: DataConfig{
			UnitList: "data/yaml/unit_list.yaml",
			Scenario: "data/yaml/scenario.yaml",
		},
		Scripting: ScriptingConfig{
			Enabled: true,
			Dir:     "scripts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Debug: DebugConfig{
			Profile:    "",
			ProfileDir: ".",
		},
	}
}
