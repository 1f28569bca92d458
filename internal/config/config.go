// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the server configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `env:"QUESTFORGE_ADDR" envDefault:":8080"`
	// DBPath is the SQLite database file holding player records.
	DBPath string `env:"QUESTFORGE_DB" envDefault:"questforge.db"`
	// ContentDir overrides the embedded content tables when set. Tables are
	// re-read at every battle start.
	ContentDir string `env:"QUESTFORGE_CONTENT_DIR"`
	// Seed fixes the battle RNG seed. 0 draws a fresh seed per battle.
	Seed int64 `env:"QUESTFORGE_SEED" envDefault:"0"`
	// MaxRounds ends a battle as a loss once exceeded.
	MaxRounds int `env:"QUESTFORGE_MAX_ROUNDS" envDefault:"100"`
	// ShutdownTimeout bounds graceful HTTP shutdown.
	ShutdownTimeout time.Duration `env:"QUESTFORGE_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.MaxRounds <= 0 {
		return Config{}, fmt.Errorf("QUESTFORGE_MAX_ROUNDS must be positive, got %d", cfg.MaxRounds)
	}
	return cfg, nil
}
