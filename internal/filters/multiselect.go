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

// MultiselectFilter is the multi-value variant of DropdownFilter: same
// option loading, list-shaped validation and default.
type MultiselectFilter struct {
	*DropdownFilter
}

func NewMultiselectFilter(cfg Config) *MultiselectFilter {
	return &MultiselectFilter{DropdownFilter: NewDropdownFilter(cfg)}
}

func (f *MultiselectFilter) Default() interface{} {
	switch d := f.cfg.DefaultValue.(type) {
	case nil:
		return []string{}
	case []string:
		return d
	default:
		return []string{fmt.Sprintf("%v", d)}
	}
}

func (f *MultiselectFilter) Validate(ctx context.Context, cache *metacache.Cache, value interface{}) bool {
	if value == nil {
		return !f.cfg.Required
	}
	values, ok := toStringSlice(value)
	if !ok {
		return false
	}
	if len(values) == 0 {
		return !f.cfg.Required
	}
	opts, err := f.Options(ctx, cache, nil)
	if err != nil {
		return false
	}
	valid := make(map[string]struct{}, len(opts))
	for _, o := range opts {
		valid[o.Value] = struct{}{}
	}
	for _, v := range values {
		if _, ok := valid[v]; !ok {
			return false
		}
	}
	return true
}

func toStringSlice(value interface{}) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return v, true
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, valueString(item))
		}
		return out, true
	default:
		return nil, false
	}
}

func (f *MultiselectFilter) ToSQLClause(value interface{}) (SQLClause, bool) {
	values, ok := toStringSlice(value)
	if !ok || len(values) == 0 {
		return SQLClause{}, false
	}
	col := f.cfg.ParamName
	return SQLClause{
		Fragment: fmt.Sprintf("%s IN :%s", col, col),
		Params:   map[string]interface{}{col: values},
	}, true
}
