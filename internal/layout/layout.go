// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package layout resolves which widgets and filters a tenant/role pair
// sees, reading the global database's dashboard_template table.
package layout

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/cartographus/internal/cache"
	"github.com/tomtom215/cartographus/internal/metacache"
	"github.com/tomtom215/cartographus/internal/metrics"
)

// ErrNoTemplate is returned when no dashboard_template row matches the
// tenant/role pair.
var ErrNoTemplate = errors.New("layout: no template for tenant/role")

// Config is a parsed dashboard_template.layout_config.
type Config struct {
	EnabledWidgetIDs []int                  `json:"enabled_widget_ids"`
	EnabledFilterIDs []int                  `json:"enabled_filter_ids"`
	RawConfig        map[string]interface{} `json:"-"`
}

type rawLayoutConfig struct {
	Widgets []int `json:"widgets"`
	Filters []int `json:"filters"`
}

// Service resolves per-tenant dashboard layouts against the global DB
// and maps resolved widget IDs to their metadata-cache catalog entries.
// Parsed templates are cached by (tenant_id, role) for ttl, since
// dashboard_template rows change only through out-of-band admin edits,
// not through any request this service handles.
type Service struct {
	globalDB *sql.DB
	cache    *metacache.Cache
	configs  cache.Cacher
}

// NewService returns a Service reading templates from globalDB and
// widget descriptors from metaCache, caching parsed templates for ttl.
// ttl of zero disables caching (every call hits the database).
func NewService(globalDB *sql.DB, metaCache *metacache.Cache, ttl time.Duration) *Service {
	var configs cache.Cacher
	if ttl > 0 {
		configs = cache.New(ttl)
	}
	return &Service{globalDB: globalDB, cache: metaCache, configs: configs}
}

// GetLayoutConfig finds the dashboard_template row for tenantID whose
// role_access matches role case-insensitively, and parses its
// layout_config. Returns ErrNoTemplate when no row matches.
func (s *Service) GetLayoutConfig(ctx context.Context, tenantID int, role string) (Config, error) {
	key := cache.GenerateKey("layout_config", fmt.Sprintf("%d:%s", tenantID, role))
	if s.configs != nil {
		if v, ok := s.configs.Get(key); ok {
			metrics.RecordCacheHit("layout_config")
			return v.(Config), nil
		}
		metrics.RecordCacheMiss("layout_config")
	}

	const q = `SELECT layout_config FROM dashboard_template
	           WHERE tenant_id = ? AND LOWER(role_access) = LOWER(?)
	           LIMIT 1`

	var raw string
	start := time.Now()
	err := s.globalDB.QueryRowContext(ctx, q, tenantID, role).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		metrics.RecordDBQuery("SELECT", "dashboard_template", time.Since(start), nil)
		return Config{}, ErrNoTemplate
	}
	metrics.RecordDBQuery("SELECT", "dashboard_template", time.Since(start), err)
	if err != nil {
		return Config{}, fmt.Errorf("layout: query template: %w", err)
	}

	var parsed rawLayoutConfig
	var generic map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return Config{}, fmt.Errorf("layout: parse layout_config: %w", err)
	}
	_ = json.Unmarshal([]byte(raw), &generic)

	cfg := Config{
		EnabledWidgetIDs: parsed.Widgets,
		EnabledFilterIDs: parsed.Filters,
		RawConfig:        generic,
	}
	if s.configs != nil {
		s.configs.Set(key, cfg)
	}
	return cfg, nil
}

// ResolveWidgets maps widgetIDs to their catalog entries, preserving
// the input order and silently dropping unknown IDs.
func (s *Service) ResolveWidgets(widgetIDs []int) []metacache.WidgetCatalogEntry {
	entries := make([]metacache.WidgetCatalogEntry, 0, len(widgetIDs))
	for _, id := range widgetIDs {
		entry, ok, err := s.cache.GetWidgetCatalogEntry(id)
		if err != nil || !ok {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}
