package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Sandbox  SandboxConfig  `toml:"sandbox"`
	Space    SpaceConfig    `toml:"space"`
	Recorder RecorderConfig `toml:"recorder"`
	Logging  LoggingConfig  `toml:"logging"`
}

type SandboxConfig struct {
	Name         string        `toml:"name"`
	TickRate     time.Duration `toml:"tick_rate"`
	MaxTicks     int           `toml:"max_ticks"` // 0 = run until signalled
	ScenarioDir  string        `toml:"scenario_dir"`
	MaterialFile string        `toml:"material_file"`
}

type SpaceConfig struct {
	GravityX   float64 `toml:"gravity_x"`
	GravityY   float64 `toml:"gravity_y"`
	Iterations uint    `toml:"iterations"` // 0 keeps the engine default
}

type RecorderConfig struct {
	// DSN empty disables run recording entirely.
	DSN             string        `toml:"dsn"`
	SampleInterval  int           `toml:"sample_interval"` // ticks between samples
	MaxOpenConns    int           `toml:"max_open_conns"`
	MaxIdleConns    int           `toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Sandbox.TickRate <= 0 {
		return nil, fmt.Errorf("config %s: tick_rate must be positive", path)
	}
	return cfg, nil
}

// Defaults returns the built-in configuration: a 60 Hz zero-gravity
// sandbox with recording disabled.
func Defaults() *Config {
	return &Config{
		Sandbox: SandboxConfig{
			Name:         "mote",
			TickRate:     time.Second / 60,
			ScenarioDir:  "scripts",
			MaterialFile: "data/materials.yaml",
		},
		Space: SpaceConfig{
			GravityX: 0,
			GravityY: 0,
		},
		Recorder: RecorderConfig{
			SampleInterval:  6,
			MaxOpenConns:    4,
			MaxIdleConns:    2,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
