// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package repository

import (
	"strconv"

	"github.com/tomtom215/cartographus/internal/filters"
	"github.com/tomtom215/cartographus/internal/logging"
	"github.com/tomtom215/cartographus/internal/metacache"
	"github.com/tomtom215/cartographus/internal/sqlquery"
)

// applyCleanedFilters appends the four common WHERE clauses a detection
// query uses (daterange, shift, area_ids, product_ids) to wb, reading
// from a FilterEngine-cleaned parameter map.
func applyCleanedFilters(wb *sqlquery.WhereBuilder, cleaned map[string]interface{}, timeColumn string, cache *metacache.Cache) {
	if timeColumn == "" {
		timeColumn = "detected_at"
	}

	applyDaterange(wb, cleaned, timeColumn)
	applyShift(wb, cleaned, timeColumn, cache)

	wb.AddIntsIn("area_id", toIntSlice(cleaned["area_ids"]))
	wb.AddIntsIn("product_id", toIntSlice(cleaned["product_ids"]))
}

// applyDowntimeFilters appends only daterange and shift: downtime_events
// tables carry no area_id/product_id columns.
func applyDowntimeFilters(wb *sqlquery.WhereBuilder, cleaned map[string]interface{}, timeColumn string, cache *metacache.Cache) {
	if timeColumn == "" {
		timeColumn = "start_time"
	}
	applyDaterange(wb, cleaned, timeColumn)
	applyShift(wb, cleaned, timeColumn, cache)
}

func applyDaterange(wb *sqlquery.WhereBuilder, cleaned map[string]interface{}, timeColumn string) {
	raw, ok := cleaned["daterange"]
	if !ok || raw == nil {
		return
	}
	start, end, err := filters.NewDateRangeFilter(filters.Config{}).ParseDatetimes(raw)
	if err != nil {
		return
	}
	wb.AddTimeRange(timeColumn, &start, &end)
}

// applyShift mirrors sql_clauses.build_shift_clause: an overnight shift
// (end <= start) is expressed as an OR across the midnight wrap, a normal
// shift as a half-open [start, end) range. Both branches exclude the end
// time-of-day itself, so a detection exactly at a shift's end belongs to
// the next shift.
func applyShift(wb *sqlquery.WhereBuilder, cleaned map[string]interface{}, timeColumn string, cache *metacache.Cache) {
	shiftID, ok := toInt(cleaned["shift_id"])
	if !ok || shiftID == 0 || cache == nil {
		return
	}
	shift, found, err := cache.GetShift(shiftID)
	if err != nil || !found {
		logging.Warn().Int("shift_id", shiftID).Msg("shift_id not in cache, skipping shift clause")
		return
	}
	if shift.StartTime == "" || shift.EndTime == "" {
		return
	}
	if shift.IsOvernight || shift.EndTime <= shift.StartTime {
		wb.AddClause("(TIME("+timeColumn+") >= ? OR TIME("+timeColumn+") < ?)", shift.StartTime, shift.EndTime)
		return
	}
	wb.AddTimeOfDayRange(timeColumn, shift.StartTime, shift.EndTime)
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

func toIntSlice(v interface{}) []int {
	switch vals := v.(type) {
	case []int:
		return vals
	case []interface{}:
		out := make([]int, 0, len(vals))
		for _, e := range vals {
			if i, ok := toInt(e); ok {
				out = append(out, i)
			}
		}
		return out
	case []string:
		out := make([]int, 0, len(vals))
		for _, e := range vals {
			if i, ok := toInt(e); ok {
				out = append(out, i)
			}
		}
		return out
	default:
		return nil
	}
}
