// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package filters

import (
	"context"
	"fmt"

	"github.com/tomtom215/cartographus/internal/metacache"
)

// TextFilter is free-text input with optional length bounds.
type TextFilter struct {
	cfg Config
}

func NewTextFilter(cfg Config) *TextFilter { return &TextFilter{cfg: cfg} }

func (f *TextFilter) Config() Config { return f.cfg }

func (f *TextFilter) Default() interface{} {
	if s, ok := f.cfg.DefaultValue.(string); ok {
		return s
	}
	return ""
}

func (f *TextFilter) Validate(_ context.Context, _ *metacache.Cache, value interface{}) bool {
	if value == nil || value == "" {
		return !f.cfg.Required
	}
	s, ok := value.(string)
	if !ok {
		return false
	}
	minLen, maxLen := 0, 1000
	if v, ok := f.cfg.UIConfig["min_length"].(int); ok {
		minLen = v
	}
	if v, ok := f.cfg.UIConfig["max_length"].(int); ok {
		maxLen = v
	}
	return len(s) >= minLen && len(s) <= maxLen
}

func (f *TextFilter) Options(_ context.Context, _ *metacache.Cache, _ map[string]interface{}) ([]Option, error) {
	return nil, nil
}

func (f *TextFilter) ToSQLClause(value interface{}) (SQLClause, bool) {
	s, ok := value.(string)
	if !ok || s == "" {
		return SQLClause{}, false
	}
	col := f.cfg.ParamName
	return SQLClause{
		Fragment: fmt.Sprintf("%s LIKE :%s", col, col),
		Params:   map[string]interface{}{col: "%" + s + "%"},
	}, true
}
