// Package config loads server and simulation configuration from a YAML
// file with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full configuration tree.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Game    GameConfig    `mapstructure:"game"`
	Sim     SimConfig     `mapstructure:"sim"`
}

// LoggingConfig controls zap logger construction.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json or console
}

// CatalogConfig points at the card design catalog.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// GameConfig carries per-game host settings. Rules constants (board and
// hand limits, starting health) are fixed by the engine and not
// configurable.
type GameConfig struct {
	TurnTimeLimit time.Duration `mapstructure:"turn_time_limit"`
}

// SimConfig controls the self-play simulator.
type SimConfig struct {
	Games    int   `mapstructure:"games"`
	Seed     int64 `mapstructure:"seed"`
	DeckSize int   `mapstructure:"deck_size"`
	MaxTurns int   `mapstructure:"max_turns"`
}

// Load reads configuration from the given path. A missing file is not an
// error; defaults and GRIDCLASH_* environment variables still apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("catalog.path", "config/cards.yaml")
	v.SetDefault("game.turn_time_limit", 75*time.Second)
	v.SetDefault("sim.games", 1)
	v.SetDefault("sim.seed", 1)
	v.SetDefault("sim.deck_size", 30)
	v.SetDefault("sim.max_turns", 200)

	v.SetEnvPrefix("GRIDCLASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid logging format %q", c.Logging.Format)
	}
	if c.Sim.Games < 1 {
		return fmt.Errorf("sim.games must be at least 1, got %d", c.Sim.Games)
	}
	if c.Sim.DeckSize < 1 {
		return fmt.Errorf("sim.deck_size must be at least 1, got %d", c.Sim.DeckSize)
	}
	if c.Sim.MaxTurns < 1 {
		return fmt.Errorf("sim.max_turns must be at least 1, got %d", c.Sim.MaxTurns)
	}
	return nil
}
