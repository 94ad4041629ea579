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

// DropdownFilter is a single-value selection fed from a metacache option
// source (production_lines, shifts, areas, products) or static options.
type DropdownFilter struct {
	cfg Config
}

func NewDropdownFilter(cfg Config) *DropdownFilter { return &DropdownFilter{cfg: cfg} }

func (f *DropdownFilter) Config() Config { return f.cfg }

func (f *DropdownFilter) Default() interface{} { return f.cfg.DefaultValue }

func (f *DropdownFilter) Options(ctx context.Context, cache *metacache.Cache, parentValues map[string]interface{}) ([]Option, error) {
	if static, ok := f.cfg.UIConfig["static_options"]; ok {
		return staticOptions(static), nil
	}
	if f.cfg.OptionsSource == "" {
		return nil, nil
	}
	return loadOptions(ctx, f.cfg.OptionsSource, cache, f.cfg, parentValues)
}

func staticOptions(raw interface{}) []Option {
	switch v := raw.(type) {
	case []string:
		opts := make([]Option, 0, len(v))
		for _, s := range v {
			opts = append(opts, Option{Value: s, Label: s})
		}
		return opts
	case []map[string]interface{}:
		opts := make([]Option, 0, len(v))
		for _, m := range v {
			value := fmt.Sprintf("%v", m["value"])
			label := fmt.Sprintf("%v", m["label"])
			opts = append(opts, Option{Value: value, Label: label})
		}
		return opts
	default:
		return nil
	}
}

func valueString(value interface{}) string {
	if value == nil {
		return ""
	}
	return fmt.Sprintf("%v", value)
}

func (f *DropdownFilter) Validate(ctx context.Context, cache *metacache.Cache, value interface{}) bool {
	if value == nil {
		return !f.cfg.Required
	}
	opts, err := f.Options(ctx, cache, nil)
	if err != nil {
		// Option source unavailable; caller surfaces CacheUnavailable.
		return false
	}
	vs := valueString(value)
	for _, o := range opts {
		if o.Value == vs {
			return true
		}
	}
	return false
}

func (f *DropdownFilter) ToSQLClause(value interface{}) (SQLClause, bool) {
	if value == nil {
		return SQLClause{}, false
	}
	col := f.cfg.ParamName
	return SQLClause{
		Fragment: fmt.Sprintf("%s = :%s", col, col),
		Params:   map[string]interface{}{col: value},
	}, true
}
