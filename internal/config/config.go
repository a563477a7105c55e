// /internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN,required,notEmpty"`

	DefaultPrefix      string `env:"COMMAND_PREFIX" envDefault:"!"`
	EnableCustomPrefix bool   `env:"CUSTOM_PREFIX" envDefault:"false"`

	ThrottlePerSecond float64 `env:"THROTTLE_PER_SECOND" envDefault:"0"`
	ThrottleBurst     int     `env:"THROTTLE_BURST" envDefault:"3"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`
	LogFile   string `env:"LOG_FILE"`
}

// Load reads .env files (if any) and then the process environment.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return finish(&cfg)
}

// Parse builds a Config from the given variables only.
func Parse(vars map[string]string) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return finish(&cfg)
}

func finish(cfg *Config) (*Config, error) {
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat != "console" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be console or json, got %q", cfg.LogFormat)
	}
	if cfg.ThrottlePerSecond < 0 {
		return nil, fmt.Errorf("THROTTLE_PER_SECOND must not be negative, got %v", cfg.ThrottlePerSecond)
	}
	if cfg.ThrottleBurst < 1 {
		cfg.ThrottleBurst = 1
	}
	return cfg, nil
}

// ThrottleEnabled reports whether per-channel throttling is configured.
func (c *Config) ThrottleEnabled() bool {
	return c.ThrottlePerSecond > 0
}

// ThrottleLimit returns the throttle rate for golang.org/x/time/rate.
func (c *Config) ThrottleLimit() rate.Limit {
	return rate.Limit(c.ThrottlePerSecond)
}
