package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	MatchFile   string `envconfig:"MATCH_FILE" default:"data/ipl_matches_sample.csv"`
	WeatherFile string `envconfig:"WEATHER_FILE" default:"data/weather_sample.csv"`

	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"json"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	// WatchFiles enables invalidating the merged-table cache when a source
	// CSV is rewritten on disk.
	WatchFiles bool `envconfig:"WATCH_FILES" default:"true"`
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cfg.MatchFile == "" {
		return nil, errors.New("MATCH_FILE is required")
	}
	if cfg.WeatherFile == "" {
		return nil, errors.New("WEATHER_FILE is required")
	}
	if cfg.ShutdownTimeout <= 0 {
		return nil, errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: must be json or text", cfg.LogFormat)
	}

	return &cfg, nil
}
