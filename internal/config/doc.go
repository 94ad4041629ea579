// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package config provides centralized configuration management for the
multi-tenant production analytics backend.

# Configuration Sources

Load() layers configuration from three sources, lowest to highest priority:

  - Defaults: built-in sensible values (defaultConfig).
  - Config file: optional YAML file, located via CONFIG_PATH or
    DefaultConfigPaths.
  - Environment variables: highest priority, mapped via envMappings.

# Configuration Structure

  - GlobalDatabase: MySQL connection for the tenant/user/dashboard catalog.
  - TenantDatabase: MySQL connection template for per-tenant databases. Per
    spec, pooling is intentionally minimal (one connection, no idle reuse)
    because the deployment environment enforces a tight simultaneous
    connection cap per tenant.
  - Cache: OptionsTTL, the TTL of internal/layout's parsed-template cache.
  - Server: HTTP listener host/port/timeouts, an IANA location name
    (checked by Validate, not read elsewhere), CORS origins and the
    rate-limit switch.
  - API: pagination bounds for diagnostic endpoints.
  - Logging: zerolog level/format/caller settings.
  - Partition: PartitionManager's ahead-of-time creation and retention
    dropping horizon.

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal().Err(err).Msg("failed to load config")
	}

# Thread Safety

Config is immutable after Load() returns and is safe for concurrent read
access from multiple goroutines without synchronization.
*/
package config
