// Package config loads environment-based configuration for the officedesk
// services. A .env file in the working directory is honored when present.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all environment-based configuration for officedesk.
type Config struct {
	// HTTP listen address for the API server.
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`

	// Postgres connection string.
	DatabaseURL string `env:"DATABASE_URL"`

	// Signing secret for access and refresh tokens. Must be at least 32
	// bytes for HS256.
	JWTSecret string `env:"JWT_SECRET"`

	// Token lifetimes.
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"15m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"168h"`

	// Expected values for the X-Api-Client and X-Api-Secret headers. The
	// gatekeeper middleware is disabled when either is empty.
	APIClient string `env:"API_CLIENT"`
	APISecret string `env:"API_SECRET"`

	// Redis address for the token denylist. Revocation is disabled when
	// empty.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Environment controls log format.
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
}

// Load reads configuration from environment variables.
// It first attempts to load a .env file if present, then parses env vars.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.AccessTokenTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL must be positive")
	}

	if c.RefreshTokenTTL <= 0 {
		return fmt.Errorf("REFRESH_TOKEN_TTL must be positive")
	}

	if (c.APIClient == "") != (c.APISecret == "") {
		return fmt.Errorf("API_CLIENT and API_SECRET must be set together")
	}

	return nil
}

// GatekeeperEnabled reports whether the shared-secret gatekeeper should run.
func (c *Config) GatekeeperEnabled() bool {
	return c.APIClient != "" && c.APISecret != ""
}

// RevocationEnabled reports whether the Redis-backed token denylist is
// configured.
func (c *Config) RevocationEnabled() bool {
	return c.RedisAddr != ""
}

// IsProduction returns true when the environment is set to production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
