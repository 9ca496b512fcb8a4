package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// LogConfig drives the global zerolog logger. File enables rotation through
// lumberjack; the rotation fields are ignored when logging to stdout.
type LogConfig struct {
	Service     string `env:"LOG_SERVICE" envDefault:"rofl-backend"`
	Level       string `env:"LOG_LEVEL" envDefault:"info"`
	Pretty      bool   `env:"LOG_PRETTY" envDefault:"false"`
	SampleEvery int    `env:"LOG_SAMPLE_EVERY" envDefault:"0"`

	File       string `env:"LOG_FILE"`
	MaxMB      int    `env:"LOG_MAX_MB" envDefault:"10"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"3"`
	MaxAgeDays int    `env:"LOG_MAX_AGE_DAYS" envDefault:"28"`
	Compress   bool   `env:"LOG_COMPRESS" envDefault:"true"`
}

func LoadLog() (LogConfig, error) {
	var cfg LogConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	cfg.Level = strings.ToLower(strings.TrimSpace(cfg.Level))
	if _, err := zerolog.ParseLevel(cfg.Level); err != nil {
		return cfg, fmt.Errorf("LOG_LEVEL %q: %w", cfg.Level, err)
	}
	if cfg.SampleEvery < 0 {
		return cfg, fmt.Errorf("LOG_SAMPLE_EVERY must be >= 0, got %d", cfg.SampleEvery)
	}
	return cfg, nil
}
