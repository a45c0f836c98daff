package config

import (
	"errors"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config carries all runtime configuration. Secret material (the
// privileged store credential, admin API key) is injected through the
// environment at startup and never hardcoded.
type Config struct {
	Environment string `env:"APP_ENV" envDefault:"development"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`

	DatabaseURL string `env:"DATABASE_URL"`

	// AdminAPIKey authenticates back-office callers. Required outside
	// development.
	AdminAPIKey string `env:"ADMIN_API_KEY"`

	// StatsFallbackEnabled substitutes deterministic demo statistics
	// when the order ledger is unreachable. When disabled the error is
	// surfaced to the caller instead.
	StatsFallbackEnabled bool          `env:"STATS_FALLBACK_ENABLED" envDefault:"true"`
	StatsCacheTTL        time.Duration `env:"STATS_CACHE_TTL" envDefault:"30s"`

	RateLimitPerMinute int `env:"RATE_LIMIT_PER_MINUTE" envDefault:"120"`
}

var ErrMissingAdminKey = errors.New("missing_admin_api_key")

// Load reads configuration from the environment, loading a local .env
// file first when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}

	cfg.Environment = strings.ToLower(strings.TrimSpace(cfg.Environment))
	if cfg.IsProduction() && strings.TrimSpace(cfg.AdminAPIKey) == "" {
		return Config{}, ErrMissingAdminKey
	}
	return cfg, nil
}

// IsProduction reports whether the service runs in production mode.
func (c Config) IsProduction() bool { return c.Environment == "production" }
