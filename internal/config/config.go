// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// DevJWTSecret is the fallback signing secret for non-production environments
// when JWT_SECRET is unset. Startup fails instead when APP_ENV=production.
const DevJWTSecret = "striketrack-dev-secret-do-not-use-in-production"

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the HTTP server listens on (e.g. :8080).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// DatabaseURL is the Postgres DSN.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// JWTSecret is the shared HS256 signing secret. Required when APP_ENV=production;
	// other environments fall back to DevJWTSecret.
	JWTSecret string `mapstructure:"JWT_SECRET"`
	// JWTIssuer is the iss claim (e.g. "striketrack-auth").
	JWTIssuer string `mapstructure:"JWT_ISSUER"`
	// JWTAudience is the aud claim (e.g. "striketrack-api").
	JWTAudience string `mapstructure:"JWT_AUDIENCE"`
	// JWTTokenTTL is the session token validity window (e.g. "168h" = 7 days).
	JWTTokenTTL string `mapstructure:"JWT_TOKEN_TTL"`
	// BcryptCost is the bcrypt cost factor (4–31); default 10.
	BcryptCost int `mapstructure:"BCRYPT_COST"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`
	// CORSAllowedOrigin is the single allowed Origin for browser clients; empty disables CORS headers.
	CORSAllowedOrigin string `mapstructure:"CORS_ALLOWED_ORIGIN"`
	// RateLimitPerMinute is the per-principal request budget on authenticated routes; 0 disables limiting.
	RateLimitPerMinute int `mapstructure:"RATE_LIMIT_PER_MINUTE"`
	// OTLPEndpoint is the OTLP gRPC endpoint for traces and metrics; empty disables export.
	OTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	// OTLPInsecure forces plaintext OTLP export even for https endpoints.
	OTLPInsecure bool `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "striketrack-auth")
	v.SetDefault("JWT_AUDIENCE", "striketrack-api")
	v.SetDefault("JWT_TOKEN_TTL", "168h") // 7d
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("APP_ENV", "")
	v.SetDefault("CORS_ALLOWED_ORIGIN", "")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 120)
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", false)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.HTTPAddr == "" {
		return errors.New("config: HTTP_ADDR must be set")
	}
	if c.JWTSecret == "" {
		if c.Env == "production" {
			return errors.New("config: JWT_SECRET must be set when APP_ENV=production")
		}
		c.JWTSecret = DevJWTSecret
	}
	if c.BcryptCost == 0 {
		c.BcryptCost = 10
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return errors.New("config: BCRYPT_COST must be between 4 and 31")
	}
	if c.RateLimitPerMinute < 0 {
		return errors.New("config: RATE_LIMIT_PER_MINUTE must not be negative")
	}
	return nil
}

// UsingDevSecret reports whether the signing secret is the insecure development fallback.
// The server logs a warning at startup when true.
func (c *Config) UsingDevSecret() bool {
	return c.JWTSecret == DevJWTSecret
}

// TokenTTL parses JWTTokenTTL as a time.Duration. Returns 168h if unset or invalid.
func (c *Config) TokenTTL() time.Duration {
	d, err := time.ParseDuration(c.JWTTokenTTL)
	if err != nil || d <= 0 {
		return 168 * time.Hour
	}
	return d
}
