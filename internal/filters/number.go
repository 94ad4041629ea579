// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package filters

import (
	"context"

	"github.com/tomtom215/cartographus/internal/metacache"
)

// NumberFilter is a numeric input with optional min/max bounds from
// ui_config. It never contributes a SQL clause: numeric filters like
// downtime_threshold are applied during Go-side processing, not the
// WHERE clause.
type NumberFilter struct {
	cfg Config
}

func NewNumberFilter(cfg Config) *NumberFilter { return &NumberFilter{cfg: cfg} }

func (f *NumberFilter) Config() Config { return f.cfg }

func (f *NumberFilter) Default() interface{} {
	if f.cfg.DefaultValue != nil {
		return f.cfg.DefaultValue
	}
	return 0
}

func asFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func (f *NumberFilter) Validate(_ context.Context, _ *metacache.Cache, value interface{}) bool {
	if value == nil {
		return !f.cfg.Required
	}
	n, ok := asFloat(value)
	if !ok {
		return false
	}
	if lo, ok := asFloat(f.cfg.UIConfig["min"]); ok && n < lo {
		return false
	}
	if hi, ok := asFloat(f.cfg.UIConfig["max"]); ok && n > hi {
		return false
	}
	return true
}

func (f *NumberFilter) Options(_ context.Context, _ *metacache.Cache, _ map[string]interface{}) ([]Option, error) {
	return nil, nil
}

func (f *NumberFilter) ToSQLClause(_ interface{}) (SQLClause, bool) {
	return SQLClause{}, false
}
