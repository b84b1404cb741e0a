package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port    string `envconfig:"PORT" default:"8080"`
	BaseURL string `envconfig:"BASE_URL"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	LogDev   bool   `envconfig:"LOG_DEV" default:"false"`

	// CatalogFile optionally replaces the built-in products and responses.
	CatalogFile string `envconfig:"CATALOG_FILE"`

	LoadTimeout  time.Duration `envconfig:"LOAD_TIMEOUT" default:"5s"`
	TypingDelay  time.Duration `envconfig:"TYPING_DELAY" default:"800ms"`
	TypingJitter time.Duration `envconfig:"TYPING_JITTER" default:"800ms"`
	LinkDelay    time.Duration `envconfig:"LINK_REPLY_DELAY" default:"600ms"`

	SessionTTL      time.Duration `envconfig:"SESSION_TTL" default:"1h"`
	RateLimitPerMin int           `envconfig:"RATE_LIMIT_PER_MIN" default:"30"`
}

func Load() (*Config, error) {
	// .env is optional; env vars may already be set (e.g. in production)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading env config: %w", err)
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = fmt.Sprintf("http://localhost:%s", cfg.Port)
	}

	for _, d := range []struct {
		name string
		val  time.Duration
	}{
		{"LOAD_TIMEOUT", cfg.LoadTimeout},
		{"SESSION_TTL", cfg.SessionTTL},
	} {
		if d.val <= 0 {
			return nil, fmt.Errorf("env var %s must be positive", d.name)
		}
	}
	if cfg.RateLimitPerMin <= 0 {
		return nil, fmt.Errorf("env var RATE_LIMIT_PER_MIN must be positive")
	}

	return &cfg, nil
}
