// Package config loads runtime settings from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime settings. Exactly one backend is selected:
// MongoURI for shared deployments, SQLitePath for embedded use.
type Config struct {
	// --- Record store ---
	MongoURI     string `envconfig:"MONGO_URI"`
	MongoDB      string `envconfig:"MONGO_DATABASE" default:"footballDB"`
	TenantPrefix string `envconfig:"TENANT_PREFIX" default:""`
	SQLitePath   string `envconfig:"SQLITE_PATH"`

	// --- Retention windows ---
	// ActiveWindowDays bounds who counts as an active player; players whose
	// last game is older are inactive.
	ActiveWindowDays int `envconfig:"ACTIVE_WINDOW_DAYS" default:"730"`
	// RecentPaymentDays bounds the recent-transactions view.
	RecentPaymentDays int `envconfig:"RECENT_PAYMENT_DAYS" default:"180"`

	// --- Application ---
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads configuration from CFFA_-prefixed environment variables and
// validates backend selection.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("cffa", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.MongoURI == "" && cfg.SQLitePath == "" {
		return nil, fmt.Errorf("config: one of CFFA_MONGO_URI or CFFA_SQLITE_PATH must be set")
	}
	if cfg.ActiveWindowDays <= 0 || cfg.RecentPaymentDays <= 0 {
		return nil, fmt.Errorf("config: retention windows must be positive")
	}
	return &cfg, nil
}

// ActiveWindow returns the active-player window as a duration.
func (c *Config) ActiveWindow() time.Duration {
	return time.Duration(c.ActiveWindowDays) * 24 * time.Hour
}

// RecentPaymentWindow returns the recent-transactions window as a duration.
func (c *Config) RecentPaymentWindow() time.Duration {
	return time.Duration(c.RecentPaymentDays) * 24 * time.Hour
}
