// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package filters

import (
	"context"
	"fmt"
	"sort"

	"github.com/tomtom215/cartographus/internal/logging"
	"github.com/tomtom215/cartographus/internal/metacache"
	"github.com/tomtom215/cartographus/internal/registry"
)

// ErrCacheUnavailable is returned when filter options are requested
// before the metadata cache has been loaded for the active tenant.
var ErrCacheUnavailable = fmt.Errorf("filters: metadata cache unavailable")

// ValidationResult is the shape FilterEngine.ValidateInput returns: a
// best-effort cleaned param set alongside any per-field errors. Cleaned
// holds every value that passed validation and is returned even when
// Valid is false; a value that fails validation is left out of it.
type ValidationResult struct {
	Valid   bool
	Errors  map[string]string
	Cleaned map[string]interface{}
}

// Engine is the central filter orchestrator. It builds Filter instances
// on the fly from cached DB rows plus registry.FilterRegistry; adding a
// filter only requires a DB row, a registry entry and a concrete type.
type Engine struct {
	cache *metacache.Cache
}

// NewEngine returns a FilterEngine backed by cache.
func NewEngine(cache *metacache.Cache) *Engine {
	return &Engine{cache: cache}
}

func newFilterInstance(cfg Config) (Filter, bool) {
	switch cfg.FilterType {
	case registry.FilterTypeDateRange:
		return NewDateRangeFilter(cfg), true
	case registry.FilterTypeDropdown:
		return NewDropdownFilter(cfg), true
	case registry.FilterTypeMultiselect:
		return NewMultiselectFilter(cfg), true
	case registry.FilterTypeText:
		return NewTextFilter(cfg), true
	case registry.FilterTypeNumber:
		return NewNumberFilter(cfg), true
	case registry.FilterTypeToggle:
		return NewToggleFilter(cfg), true
	default:
		return nil, false
	}
}

// GetAll instantiates active filters from the cache plus the registry,
// sorted by display_order. filterIDs, when non-nil, whitelists which
// filter_id values are returned (from layout_config.filters); nil means
// every active filter.
func (e *Engine) GetAll(ctx context.Context, filterIDs []int) ([]Filter, error) {
	rows, err := e.cache.GetFilters()
	if err != nil {
		return nil, err
	}

	var whitelist map[int]struct{}
	if filterIDs != nil {
		whitelist = make(map[int]struct{}, len(filterIDs))
		for _, id := range filterIDs {
			whitelist[id] = struct{}{}
		}
	}

	ids := make([]int, 0, len(rows))
	for id := range rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return rows[ids[i]].DisplayOrder < rows[ids[j]].DisplayOrder
	})

	instances := make([]Filter, 0, len(ids))
	for _, id := range ids {
		row := rows[id]
		if !row.FilterStatus {
			continue
		}
		if whitelist != nil {
			if _, ok := whitelist[row.FilterID]; !ok {
				continue
			}
		}

		entry, ok := registry.FilterRegistry[row.FilterName]
		if !ok {
			logging.Ctx(ctx).Warn().Str("class_name", row.FilterName).Msg("filter class not in registry, skipped")
			continue
		}

		cfg := Config{
			FilterID:      row.FilterID,
			ClassName:     row.FilterName,
			FilterType:    entry.FilterType,
			ParamName:     entry.ParamName,
			DisplayOrder:  row.DisplayOrder,
			Description:   row.Description,
			Placeholder:   entry.Placeholder,
			DefaultValue:  entry.DefaultValue,
			Required:      entry.Required,
			OptionsSource: entry.OptionsSource,
			DependsOn:     entry.DependsOn,
			UIConfig:      entry.UIConfig,
		}

		instance, ok := newFilterInstance(cfg)
		if !ok {
			logging.Ctx(ctx).Warn().Str("filter_type", string(cfg.FilterType)).Msg("no filter implementation for type")
			continue
		}
		instances = append(instances, instance)
	}

	return instances, nil
}

// ResolveAll returns every active filter's frontend-ready description.
func (e *Engine) ResolveAll(ctx context.Context, filterIDs []int, parentValues map[string]interface{}) ([]map[string]interface{}, error) {
	all, err := e.GetAll(ctx, filterIDs)
	if err != nil {
		return nil, err
	}
	out := make([]map[string]interface{}, 0, len(all))
	for _, f := range all {
		d, err := ToDict(ctx, f, e.cache, parentValues)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// ResolveOne resolves a single filter by class name, or nil if absent.
func (e *Engine) ResolveOne(ctx context.Context, className string, parentValues map[string]interface{}) (map[string]interface{}, error) {
	f, err := e.GetByName(ctx, className)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, nil
	}
	return ToDict(ctx, f, e.cache, parentValues)
}

// GetByName finds one active filter by its registry class name.
func (e *Engine) GetByName(ctx context.Context, className string) (Filter, error) {
	all, err := e.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	for _, f := range all {
		if f.Config().ClassName == className {
			return f, nil
		}
	}
	return nil, nil
}

// GetByParam finds one active filter by its HTTP parameter name.
func (e *Engine) GetByParam(ctx context.Context, paramName string) (Filter, error) {
	all, err := e.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	for _, f := range all {
		if f.Config().ParamName == paramName {
			return f, nil
		}
	}
	return nil, nil
}

// ValidateInput validates every active filter's user-supplied value,
// falling back to its default when absent. Values that pass go into the
// cleaned map, which is returned even when Valid is false so the
// orchestrator can best-effort proceed; a failing value is recorded in
// Errors only.
func (e *Engine) ValidateInput(ctx context.Context, userParams map[string]interface{}) (ValidationResult, error) {
	all, err := e.GetAll(ctx, nil)
	if err != nil {
		return ValidationResult{}, err
	}

	errs := make(map[string]string)
	cleaned := make(map[string]interface{})

	for _, f := range all {
		pname := f.Config().ParamName
		raw, present := userParams[pname]
		if !present || raw == nil {
			raw = f.Default()
		}

		if !f.Validate(ctx, e.cache, raw) {
			errs[pname] = fmt.Sprintf("invalid value for %s", f.Config().ClassName)
		} else {
			cleaned[pname] = raw
		}
	}

	return ValidationResult{
		Valid:   len(errs) == 0,
		Errors:  errs,
		Cleaned: cleaned,
	}, nil
}
