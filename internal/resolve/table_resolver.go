// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package resolve

import (
	"strings"

	"github.com/tomtom215/cartographus/internal/metacache"
)

// TableResolver maps a line_id to its per-line physical table names via
// the metadata cache, centralizing the naming convention consumed by
// internal/repository and by internal/api (detection handlers and
// partition maintenance).
type TableResolver struct {
	cache *metacache.Cache
}

// NewTableResolver returns a TableResolver backed by cache.
func NewTableResolver(cache *metacache.Cache) *TableResolver {
	return &TableResolver{cache: cache}
}

// DetectionTable returns "detection_line_{line_name}" for lineID, or ""
// if the line is not in the cache.
func (r *TableResolver) DetectionTable(lineID int) string {
	line, ok, err := r.cache.GetLine(lineID)
	if err != nil || !ok {
		return ""
	}
	return "detection_line_" + strings.ToLower(line.LineName)
}

// DowntimeTable returns "downtime_events_{line_name}" for lineID, or ""
// if the line is not in the cache.
func (r *TableResolver) DowntimeTable(lineID int) string {
	line, ok, err := r.cache.GetLine(lineID)
	if err != nil || !ok {
		return ""
	}
	return "downtime_events_" + strings.ToLower(line.LineName)
}
