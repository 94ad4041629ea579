// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package filters implements FilterEngine: it merges the DB-backed
// filter rows cached in internal/metacache with the static descriptors
// in internal/registry, instantiates the matching concrete filter
// contract, and validates/describes user-supplied filter values.
package filters

import (
	"context"

	"github.com/tomtom215/cartographus/internal/metacache"
	"github.com/tomtom215/cartographus/internal/registry"
)

// Option is a single selectable value for dropdown/multiselect filters.
type Option struct {
	Value string                 `json:"value"`
	Label string                 `json:"label"`
	Extra map[string]interface{} `json:"extra,omitempty"`
}

// Config is the merged configuration for one filter instance: the DB row
// from `filter` combined with its registry.FilterEntry.
type Config struct {
	FilterID      int
	ClassName     string
	FilterType    registry.FilterType
	ParamName     string
	DisplayOrder  int
	Description   string
	Placeholder   string
	DefaultValue  interface{}
	Required      bool
	OptionsSource string
	DependsOn     string
	UIConfig      map[string]interface{}
}

// SQLClause is the (fragment, bind params) pair a filter contributes to a
// WHERE clause via ToSQLClause. The orchestrator's authoritative query
// path uses sqlquery.WhereBuilder instead; this exists for completeness
// and for ad-hoc widget-level filtering.
type SQLClause struct {
	Fragment string
	Params   map[string]interface{}
}

// Filter is the closed contract every concrete filter type implements.
// There are exactly six implementations (registry.FilterType values);
// FilterEngine dispatches to them by a type switch in engine.go, not by
// reflection or a plugin registry.
type Filter interface {
	Config() Config
	// Validate reports whether value is acceptable. cache is nil for
	// input filters (daterange, text, number, toggle); option-based
	// filters (dropdown, multiselect) use it to resolve the valid set.
	Validate(ctx context.Context, cache *metacache.Cache, value interface{}) bool
	Default() interface{}
	Options(ctx context.Context, cache *metacache.Cache, parentValues map[string]interface{}) ([]Option, error)
	ToSQLClause(value interface{}) (SQLClause, bool)
}

// ToDict renders a filter plus its resolved options for the frontend, the
// shape returned by GET /filters.
func ToDict(ctx context.Context, f Filter, cache *metacache.Cache, parentValues map[string]interface{}) (map[string]interface{}, error) {
	cfg := f.Config()
	opts, err := f.Options(ctx, cache, parentValues)
	if err != nil {
		return nil, err
	}
	options := make([]map[string]interface{}, 0, len(opts))
	for _, o := range opts {
		entry := map[string]interface{}{"value": o.Value, "label": o.Label}
		if len(o.Extra) > 0 {
			entry["extra"] = o.Extra
		}
		options = append(options, entry)
	}
	return map[string]interface{}{
		"filter_id":      cfg.FilterID,
		"class_name":     cfg.ClassName,
		"filter_type":    cfg.FilterType,
		"param_name":     cfg.ParamName,
		"display_order":  cfg.DisplayOrder,
		"description":    cfg.Description,
		"placeholder":    cfg.Placeholder,
		"required":       cfg.Required,
		"options_source": cfg.OptionsSource,
		"depends_on":     cfg.DependsOn,
		"ui_config":      cfg.UIConfig,
		"default_value":  f.Default(),
		"options":        options,
	}, nil
}
