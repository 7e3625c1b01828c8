// Package config loads server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config is the runtime configuration of the site.
type Config struct {
	Port           string `validate:"required,numeric"`
	DatabaseDriver string `validate:"oneof=sqlite postgres"`
	DatabasePath   string `validate:"required_if=DatabaseDriver sqlite"`
	DatabaseURL    string `validate:"required_if=DatabaseDriver postgres"`

	// Admin gate. Either the plain password or a bcrypt hash of it; when both
	// are empty the admin panel is disabled.
	AdminPassword     string
	AdminPasswordHash string
	JWTSecret         string `validate:"omitempty,min=32"`

	CookieSecure bool
	BcryptCost   int    `validate:"min=4,max=14"`
	LogLevel     string `validate:"oneof=debug info warn error"`

	// Admin login attempts allowed per minute per client IP.
	LoginRatePerMinute float64 `validate:"gt=0"`
}

// Load reads the configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Port:              envOrDefault("PORT", "8080"),
		DatabaseDriver:    strings.ToLower(envOrDefault("DATABASE_DRIVER", "sqlite")),
		DatabasePath:      envOrDefault("DATABASE_PATH", "ml-training.db"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		// Default to secure cookies; disable only for local development.
		CookieSecure:       os.Getenv("COOKIE_SECURE") != "false",
		BcryptCost:         12,
		LogLevel:           strings.ToLower(envOrDefault("LOG_LEVEL", "info")),
		LoginRatePerMinute: 10,
	}

	if v := os.Getenv("BCRYPT_COST"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
		}
		cfg.BcryptCost = parsed
	}
	if v := os.Getenv("LOGIN_RATE_PER_MINUTE"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid LOGIN_RATE_PER_MINUTE: %w", err)
		}
		cfg.LoginRatePerMinute = parsed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and cross-field rules.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			return fmt.Errorf("config error: %s failed %q", ve[0].Field(), ve[0].Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}
	if c.AdminEnabled() && c.JWTSecret == "" {
		return errors.New("config error: JWT_SECRET is required when an admin password is configured")
	}
	return nil
}

// AdminEnabled reports whether an admin password is configured.
func (c *Config) AdminEnabled() bool {
	return c.AdminPassword != "" || c.AdminPasswordHash != ""
}

// SlogLevel maps LogLevel onto slog levels.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
