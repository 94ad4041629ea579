// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from environment variables
// and an optional YAML config file.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in sensible defaults for all optional settings.
//  2. Config File: optional YAML file (config.yaml) for persistent settings.
//  3. Environment Variables: override any setting via environment variables.
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	GlobalDatabase DatabaseConfig `koanf:"global_database"`
	TenantDatabase DatabaseConfig `koanf:"tenant_database"`
	Cache          CacheConfig    `koanf:"cache"`
	Server         ServerConfig   `koanf:"server"`
	API            APIConfig      `koanf:"api"`
	Logging        LoggingConfig  `koanf:"logging"`
	Partition      PartitionConfig `koanf:"partition"`
}

// DatabaseConfig configures a MySQL connection (global catalog or a tenant DB).
//
// The global database holds tenant/user/dashboard_template/widget_catalog.
// A tenant database holds the reference tables and the dynamically
// named per-line detection_line_*/downtime_events_* tables.
type DatabaseConfig struct {
	DSN             string        `koanf:"dsn"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
	// QueryTimeout bounds any single query issued through this connection.
	QueryTimeout time.Duration `koanf:"query_timeout"`
}

// CacheConfig configures the parsed-template cache in internal/layout.
type CacheConfig struct {
	// OptionsTTL is how long a parsed dashboard-template layout is cached
	// per (tenant, role); zero disables that cache.
	OptionsTTL time.Duration `koanf:"options_ttl"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	// Location is an IANA timezone name; Validate rejects one that
	// time.LoadLocation cannot load. No other code reads it: daterange
	// filters are parsed as UTC.
	Location string `koanf:"location"`
	// CORSAllowedOrigins lists origins permitted to call the API
	// cross-origin. Empty disables cross-origin access entirely.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`
	// RateLimitDisabled turns off the per-route-group rate limiters,
	// intended only for local development and integration tests.
	RateLimitDisabled bool `koanf:"rate_limit_disabled"`
}

// APIConfig bounds pagination and response sizing for diagnostic endpoints.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// LoggingConfig configures the zerolog-based logger (internal/logging).
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// PartitionConfig configures PartitionManager's ahead-of-time partition
// creation and retention dropping. These are admin-path knobs,
// not per-request configuration.
type PartitionConfig struct {
	MonthsAhead      int `koanf:"months_ahead"`
	RetentionMonths  int `koanf:"retention_months"`
}

// defaultConfig returns a Config with all sensible default values.
// These are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		GlobalDatabase: DatabaseConfig{
			MaxOpenConns:    10,
			MaxIdleConns:    2,
			ConnMaxLifetime: time.Hour,
			ConnMaxIdleTime: 5 * time.Minute,
			QueryTimeout:    30 * time.Second,
		},
		TenantDatabase: DatabaseConfig{
			// Minimal-pooling policy: at most one open connection and
			// none kept idle, because the deployment environment
			// enforces a tight simultaneous-connection limit.
			MaxOpenConns:    1,
			MaxIdleConns:    0,
			ConnMaxLifetime: 0,
			ConnMaxIdleTime: 0,
			QueryTimeout:    30 * time.Second,
		},
		Cache: CacheConfig{
			OptionsTTL: 5 * time.Minute,
		},
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8085,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			Location:     "UTC",
			CORSAllowedOrigins: []string{},
			RateLimitDisabled:  false,
		},
		API: APIConfig{
			DefaultPageSize: 500,
			MaxPageSize:     5000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Partition: PartitionConfig{
			MonthsAhead:     3,
			RetentionMonths: 24,
		},
	}
}

// Validate checks that required fields are present and well-formed.
func (c *Config) Validate() error {
	if c.GlobalDatabase.DSN == "" {
		return fmt.Errorf("global_database.dsn is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("api.max_page_size (%d) must be >= api.default_page_size (%d)",
			c.API.MaxPageSize, c.API.DefaultPageSize)
	}
	if _, err := time.LoadLocation(c.Server.Location); err != nil {
		return fmt.Errorf("server.location %q is not a valid IANA timezone: %w", c.Server.Location, err)
	}
	return nil
}
