// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap/zapcore"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config holds every setting the dojo binary reads.
type Config struct {
	Env        string `env:"DOJO_ENV" envDefault:"local"`
	LogLevel   string `env:"DOJO_LOG_LEVEL" envDefault:"warn"`
	Store      string `env:"DOJO_STORE" envDefault:"memory"`
	SQLitePath string `env:"DOJO_SQLITE_PATH" envDefault:"dojo.db"`
	TimeoutMs  int    `env:"DOJO_TIMEOUT_MS" envDefault:"10000"`
}

// Default returns the configuration used when no variables are set.
func Default() Config {
	return Config{
		Env:        "local",
		LogLevel:   "warn",
		Store:      StoreMemory,
		SQLitePath: "dojo.db",
		TimeoutMs:  10_000,
	}
}

// LoadFromEnv parses the environment and validates the result.
func LoadFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.TimeoutMs <= 0 {
		return errors.New("DOJO_TIMEOUT_MS must be > 0")
	}
	switch c.Store {
	case StoreMemory:
	case StoreSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return errors.New("DOJO_SQLITE_PATH is required when DOJO_STORE=sqlite")
		}
	default:
		return fmt.Errorf("DOJO_STORE must be %s or %s, got %q", StoreMemory, StoreSQLite, c.Store)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("DOJO_LOG_LEVEL: %w", err)
	}
	return nil
}

// Timeout is TimeoutMs as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}
