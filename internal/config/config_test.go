// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.GlobalDatabase.MaxOpenConns != 10 {
		t.Errorf("GlobalDatabase.MaxOpenConns = %d, want 10", cfg.GlobalDatabase.MaxOpenConns)
	}
	if cfg.GlobalDatabase.ConnMaxLifetime != time.Hour {
		t.Errorf("GlobalDatabase.ConnMaxLifetime = %v, want 1h", cfg.GlobalDatabase.ConnMaxLifetime)
	}

	if cfg.TenantDatabase.MaxOpenConns != 1 {
		t.Errorf("TenantDatabase.MaxOpenConns = %d, want 1", cfg.TenantDatabase.MaxOpenConns)
	}
	if cfg.TenantDatabase.MaxIdleConns != 0 {
		t.Errorf("TenantDatabase.MaxIdleConns = %d, want 0", cfg.TenantDatabase.MaxIdleConns)
	}

	if cfg.Cache.OptionsTTL != 5*time.Minute {
		t.Errorf("Cache.OptionsTTL = %v, want 5m", cfg.Cache.OptionsTTL)
	}

	if cfg.Server.Port != 8085 {
		t.Errorf("Server.Port = %d, want 8085", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0", cfg.Server.Host)
	}
	if cfg.Server.Location != "UTC" {
		t.Errorf("Server.Location = %q, want UTC", cfg.Server.Location)
	}

	if cfg.API.DefaultPageSize != 500 {
		t.Errorf("API.DefaultPageSize = %d, want 500", cfg.API.DefaultPageSize)
	}
	if cfg.API.MaxPageSize != 5000 {
		t.Errorf("API.MaxPageSize = %d, want 5000", cfg.API.MaxPageSize)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}

	if cfg.Partition.MonthsAhead != 3 {
		t.Errorf("Partition.MonthsAhead = %d, want 3", cfg.Partition.MonthsAhead)
	}
	if cfg.Partition.RetentionMonths != 24 {
		t.Errorf("Partition.RetentionMonths = %d, want 24", cfg.Partition.RetentionMonths)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"GLOBAL_DATABASE_DSN", "global_database.dsn"},
		{"TENANT_DATABASE_DSN", "tenant_database.dsn"},
		{"SERVER_PORT", "server.port"},
		{"SERVER_LOCATION", "server.location"},
		{"LOG_LEVEL", "logging.level"},
		{"API_MAX_PAGE_SIZE", "api.max_page_size"},
		{"PARTITION_MONTHS_AHEAD", "partition.months_ahead"},
		{"SOME_UNKNOWN_VARIABLE", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := envTransformFunc(tt.input)
			if got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	defer func() {
		if err := os.Chdir(origDir); err != nil {
			t.Errorf("Failed to restore working directory: %v", err)
		}
	}()

	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	t.Run("no config file exists", func(t *testing.T) {
		os.Unsetenv(ConfigPathEnvVar)
		if result := findConfigFile(); result != "" {
			t.Errorf("findConfigFile() = %q, want empty string", result)
		}
	})

	t.Run("config.yaml exists", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "config.yaml")
		if err := os.WriteFile(configPath, []byte("server:\n  port: 9090\n"), 0644); err != nil {
			t.Fatalf("Failed to create config file: %v", err)
		}
		defer os.Remove(configPath)

		os.Unsetenv(ConfigPathEnvVar)
		if result := findConfigFile(); result != "config.yaml" {
			t.Errorf("findConfigFile() = %q, want config.yaml", result)
		}
	})

	t.Run("CONFIG_PATH env var takes precedence", func(t *testing.T) {
		customPath := filepath.Join(tmpDir, "custom_config.yaml")
		if err := os.WriteFile(customPath, []byte("server:\n  port: 9091\n"), 0644); err != nil {
			t.Fatalf("Failed to create custom config file: %v", err)
		}
		defer os.Remove(customPath)

		os.Setenv(ConfigPathEnvVar, customPath)
		defer os.Unsetenv(ConfigPathEnvVar)

		if result := findConfigFile(); result != customPath {
			t.Errorf("findConfigFile() = %q, want %q", result, customPath)
		}
	})
}

func TestLoadEnvVars(t *testing.T) {
	os.Clearenv()
	os.Setenv("GLOBAL_DATABASE_DSN", "user:pass@tcp(127.0.0.1:3306)/catalog")
	os.Setenv("SERVER_PORT", "9000")
	os.Setenv("LOG_LEVEL", "debug")
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.GlobalDatabase.DSN != "user:pass@tcp(127.0.0.1:3306)/catalog" {
		t.Errorf("GlobalDatabase.DSN = %q, want the configured DSN", cfg.GlobalDatabase.DSN)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}

	// Defaults still apply for unset values.
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0 (default)", cfg.Server.Host)
	}
	if cfg.TenantDatabase.MaxOpenConns != 1 {
		t.Errorf("TenantDatabase.MaxOpenConns = %d, want 1 (default)", cfg.TenantDatabase.MaxOpenConns)
	}
}

func TestLoadConfigFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	configContent := `
global_database:
  dsn: "user:pass@tcp(db:3306)/catalog"
server:
  port: 8090
  location: "America/New_York"
logging:
  level: "warn"
`
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	os.Clearenv()
	os.Setenv(ConfigPathEnvVar, configPath)
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8090 {
		t.Errorf("Server.Port = %d, want 8090", cfg.Server.Port)
	}
	if cfg.Server.Location != "America/New_York" {
		t.Errorf("Server.Location = %q, want America/New_York", cfg.Server.Location)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	configContent := `
global_database:
  dsn: "user:pass@tcp(db:3306)/catalog"
server:
  port: 8090
`
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	os.Clearenv()
	os.Setenv(ConfigPathEnvVar, configPath)
	os.Setenv("SERVER_PORT", "9999")
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999 (env should override file)", cfg.Server.Port)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name   string
		env    map[string]string
		errMsg string
	}{
		{
			name:   "missing global database dsn",
			env:    map[string]string{},
			errMsg: "global_database.dsn is required",
		},
		{
			name: "invalid port",
			env: map[string]string{
				"GLOBAL_DATABASE_DSN": "user:pass@tcp(db:3306)/catalog",
				"SERVER_PORT":         "70000",
			},
			errMsg: "server.port must be between",
		},
		{
			name: "invalid timezone",
			env: map[string]string{
				"GLOBAL_DATABASE_DSN": "user:pass@tcp(db:3306)/catalog",
				"SERVER_LOCATION":     "Not/A_Zone",
			},
			errMsg: "is not a valid IANA timezone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			for k, v := range tt.env {
				os.Setenv(k, v)
			}
			defer os.Clearenv()

			_, err := Load()
			if err == nil {
				t.Fatalf("Load() expected error containing %q, got nil", tt.errMsg)
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.errMsg)
			}
		})
	}
}

func TestGetKoanfInstance(t *testing.T) {
	k := GetKoanfInstance()
	if k == nil {
		t.Fatal("GetKoanfInstance() returned nil")
	}
}
