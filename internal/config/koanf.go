// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/cartographus/config.yaml",
	"/etc/cartographus/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// envMappings maps flattened, lower-cased environment variable names to their
// koanf dotted path. Only names listed here are accepted; anything else is
// ignored so that unrelated environment variables never leak into Config.
var envMappings = map[string]string{
	"global_database_dsn":                "global_database.dsn",
	"global_database_max_open_conns":     "global_database.max_open_conns",
	"global_database_max_idle_conns":     "global_database.max_idle_conns",
	"global_database_conn_max_lifetime":  "global_database.conn_max_lifetime",
	"global_database_conn_max_idle_time": "global_database.conn_max_idle_time",
	"global_database_query_timeout":      "global_database.query_timeout",

	"tenant_database_dsn":                "tenant_database.dsn",
	"tenant_database_max_open_conns":     "tenant_database.max_open_conns",
	"tenant_database_max_idle_conns":     "tenant_database.max_idle_conns",
	"tenant_database_conn_max_lifetime":  "tenant_database.conn_max_lifetime",
	"tenant_database_conn_max_idle_time": "tenant_database.conn_max_idle_time",
	"tenant_database_query_timeout":      "tenant_database.query_timeout",

	"cache_options_ttl": "cache.options_ttl",

	"server_host":          "server.host",
	"server_port":          "server.port",
	"server_read_timeout":  "server.read_timeout",
	"server_write_timeout": "server.write_timeout",
	"server_location":            "server.location",
	"server_rate_limit_disabled": "server.rate_limit_disabled",

	"api_default_page_size": "api.default_page_size",
	"api_max_page_size":     "api.max_page_size",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"partition_months_ahead":     "partition.months_ahead",
	"partition_retention_months": "partition.retention_months",
}

// Load builds a Config using Koanf v2 with layered sources:
//  1. Defaults: built-in sensible defaults (defaultConfig).
//  2. Config File: optional YAML file, found via CONFIG_PATH or DefaultConfigPaths.
//  3. Environment Variables: override any setting, highest priority.
//
// The resulting Config is validated before it is returned.
func Load() (*Config, error) {
	k := koanf.New(".")

	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", configPath, err)
		}
	}

	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped keys return an empty string, which koanf treats as "skip this key" -
// this keeps unrelated environment variables from polluting Config.
func envTransformFunc(key string) string {
	key = strings.ToLower(key)
	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}

// GetKoanfInstance returns a new Koanf instance for advanced usage, e.g.
// hot-reload scenarios or tests that need a custom configuration source.
func GetKoanfInstance() *koanf.Koanf {
	return koanf.New(".")
}

// WatchConfigFile sets up a file watcher for hot-reload capability. The
// caller is responsible for mutex protection when swapping configuration
// during a reload.
func WatchConfigFile(path string, callback func()) error {
	provider := file.Provider(path)

	return provider.Watch(func(event interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}
