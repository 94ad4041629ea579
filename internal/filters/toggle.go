// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package filters

import (
	"context"

	"github.com/tomtom215/cartographus/internal/metacache"
)

// ToggleFilter is a boolean on/off switch.
type ToggleFilter struct {
	cfg Config
}

func NewToggleFilter(cfg Config) *ToggleFilter { return &ToggleFilter{cfg: cfg} }

func (f *ToggleFilter) Config() Config { return f.cfg }

func (f *ToggleFilter) Default() interface{} {
	if b, ok := f.cfg.DefaultValue.(bool); ok {
		return b
	}
	return false
}

func (f *ToggleFilter) Validate(_ context.Context, _ *metacache.Cache, value interface{}) bool {
	if value == nil {
		return !f.cfg.Required
	}
	_, ok := value.(bool)
	return ok
}

func (f *ToggleFilter) Options(_ context.Context, _ *metacache.Cache, _ map[string]interface{}) ([]Option, error) {
	return nil, nil
}

func (f *ToggleFilter) ToSQLClause(_ interface{}) (SQLClause, bool) {
	return SQLClause{}, false
}
