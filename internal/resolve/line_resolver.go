// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package resolve turns cleaned filter values into concrete line IDs
// (LineResolver) and concrete per-line table names (TableResolver),
// both backed by internal/metacache.
package resolve

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cartographus/internal/logging"
	"github.com/tomtom215/cartographus/internal/metacache"
)

// LineResolver extracts a concrete []int of production line IDs from a
// FilterEngine-cleaned parameter map.
type LineResolver struct {
	cache *metacache.Cache
}

// NewLineResolver returns a LineResolver backed by cache.
func NewLineResolver(cache *metacache.Cache) *LineResolver {
	return &LineResolver{cache: cache}
}

// Resolve extracts line IDs from cleaned, in priority order:
//  1. an explicit "line_ids" list or CSV string
//  2. a single "line_id" value: "all", "group_X[_Y]", or an integer
//  3. fallback: every active line
func (r *LineResolver) Resolve(cleaned map[string]interface{}) []int {
	if raw, ok := cleaned["line_ids"]; ok && raw != nil {
		if ids := parseLineIDsValue(raw); len(ids) > 0 {
			return ids
		}
	}

	lineID, ok := cleaned["line_id"]
	if !ok || lineID == nil {
		return r.activeLineIDs()
	}

	s := fmt.Sprintf("%v", lineID)
	if s == "all" {
		return r.activeLineIDs()
	}
	if strings.HasPrefix(s, "group_") {
		return r.resolveGroup(s)
	}

	id, err := strconv.Atoi(s)
	if err != nil {
		logging.Warn().Str("line_id", s).Msg("resolve: cannot parse line_id, falling back to all active lines")
		return r.activeLineIDs()
	}
	return []int{id}
}

func parseLineIDsValue(raw interface{}) []int {
	switch v := raw.(type) {
	case []int:
		return v
	case []interface{}:
		ids := make([]int, 0, len(v))
		for _, item := range v {
			if id, err := strconv.Atoi(fmt.Sprintf("%v", item)); err == nil {
				ids = append(ids, id)
			}
		}
		return ids
	case string:
		parts := strings.Split(v, ",")
		ids := make([]int, 0, len(parts))
		for _, p := range parts {
			if id, err := strconv.Atoi(strings.TrimSpace(p)); err == nil {
				ids = append(ids, id)
			}
		}
		return ids
	default:
		return nil
	}
}

func (r *LineResolver) activeLineIDs() []int {
	ids, err := r.cache.GetActiveLineIDs()
	if err != nil {
		return nil
	}
	return ids
}

// resolveGroup handles "group_{filter_id}" and "group_{filter_id}_{idx}".
func (r *LineResolver) resolveGroup(groupValue string) []int {
	parts := strings.Split(groupValue, "_")
	switch len(parts) {
	case 2:
		return r.resolveSingleGroup(parts)
	case 3:
		return r.resolveIndexedGroup(parts)
	default:
		return r.activeLineIDs()
	}
}

type lineGroupFilter struct {
	LineIDs []int             `json:"line_ids"`
	Groups  []lineGroupFilter `json:"groups"`
}

func (r *LineResolver) additionalFilter(filterID int) (lineGroupFilter, bool) {
	rows, err := r.cache.GetFilters()
	if err != nil {
		return lineGroupFilter{}, false
	}
	row, ok := rows[filterID]
	if !ok || row.AdditionalFilter == "" {
		return lineGroupFilter{}, false
	}
	var af lineGroupFilter
	if err := json.Unmarshal([]byte(row.AdditionalFilter), &af); err != nil {
		return lineGroupFilter{}, false
	}
	return af, true
}

func (r *LineResolver) resolveSingleGroup(parts []string) []int {
	fid, err := strconv.Atoi(parts[1])
	if err != nil {
		return r.activeLineIDs()
	}
	af, ok := r.additionalFilter(fid)
	if ok && len(af.LineIDs) > 0 {
		return af.LineIDs
	}
	return r.activeLineIDs()
}

func (r *LineResolver) resolveIndexedGroup(parts []string) []int {
	fid, err1 := strconv.Atoi(parts[1])
	idx, err2 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil {
		return r.activeLineIDs()
	}
	af, ok := r.additionalFilter(fid)
	if ok && idx >= 0 && idx < len(af.Groups) {
		return af.Groups[idx].LineIDs
	}
	return r.activeLineIDs()
}
