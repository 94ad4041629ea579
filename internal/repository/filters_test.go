// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package repository

import (
	"testing"

	"github.com/tomtom215/cartographus/internal/metacache"
	"github.com/tomtom215/cartographus/internal/sqlquery"
)

func shiftCache() *metacache.Cache {
	return metacache.NewForTest(&metacache.Snapshot{
		Shifts: map[int]metacache.Shift{
			1: {ShiftID: 1, ShiftName: "Day", StartTime: "06:00:00", EndTime: "14:00:00", IsOvernight: false},
			2: {ShiftID: 2, ShiftName: "Night", StartTime: "22:00:00", EndTime: "06:00:00", IsOvernight: true},
		},
	})
}

func TestApplyCleanedFilters_Daterange(t *testing.T) {
	wb := sqlquery.NewWhereBuilder()
	cleaned := map[string]interface{}{
		"daterange": map[string]interface{}{
			"start_date": "2026-01-01",
			"end_date":   "2026-01-31",
		},
	}
	applyCleanedFilters(wb, cleaned, "detected_at", nil)
	where, args := wb.Build()
	if where != "detected_at >= ? AND detected_at <= ?" {
		t.Errorf("unexpected where clause: %q", where)
	}
	if len(args) != 2 {
		t.Errorf("expected 2 args, got %d", len(args))
	}
}

func TestApplyCleanedFilters_AreaAndProductIDs(t *testing.T) {
	wb := sqlquery.NewWhereBuilder()
	cleaned := map[string]interface{}{
		"area_ids":    []interface{}{1.0, 2.0},
		"product_ids": []interface{}{"3"},
	}
	applyCleanedFilters(wb, cleaned, "detected_at", nil)
	where, args := wb.Build()
	if where != "area_id IN (?, ?) AND product_id IN (?)" {
		t.Errorf("unexpected where clause: %q", where)
	}
	if len(args) != 3 {
		t.Errorf("expected 3 args, got %d", len(args))
	}
}

func TestApplyCleanedFilters_NormalShift(t *testing.T) {
	wb := sqlquery.NewWhereBuilder()
	cleaned := map[string]interface{}{"shift_id": "1"}
	applyCleanedFilters(wb, cleaned, "detected_at", shiftCache())
	where, _ := wb.Build()
	if where != "TIME(detected_at) >= ? AND TIME(detected_at) < ?" {
		t.Errorf("unexpected where clause: %q", where)
	}
}

func TestApplyCleanedFilters_OvernightShift(t *testing.T) {
	wb := sqlquery.NewWhereBuilder()
	cleaned := map[string]interface{}{"shift_id": 2.0}
	applyCleanedFilters(wb, cleaned, "detected_at", shiftCache())
	where, _ := wb.Build()
	if where != "(TIME(detected_at) >= ? OR TIME(detected_at) < ?)" {
		t.Errorf("unexpected where clause: %q", where)
	}
}

func TestApplyCleanedFilters_UnknownShiftIsSkipped(t *testing.T) {
	wb := sqlquery.NewWhereBuilder()
	cleaned := map[string]interface{}{"shift_id": "99"}
	applyCleanedFilters(wb, cleaned, "detected_at", shiftCache())
	if !wb.IsEmpty() {
		t.Errorf("expected no clause for unknown shift_id")
	}
}

func TestApplyDowntimeFilters_NoAreaOrProductClauses(t *testing.T) {
	wb := sqlquery.NewWhereBuilder()
	cleaned := map[string]interface{}{
		"area_ids": []interface{}{1.0},
		"daterange": map[string]interface{}{
			"start_date": "2026-01-01",
			"end_date":   "2026-01-02",
		},
	}
	applyDowntimeFilters(wb, cleaned, "start_time", nil)
	where, _ := wb.Build()
	if where != "start_time >= ? AND start_time <= ?" {
		t.Errorf("unexpected where clause: %q", where)
	}
}

func TestToIntSlice(t *testing.T) {
	if got := toIntSlice([]interface{}{1.0, "2", 3}); len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Errorf("got %v", got)
	}
	if got := toIntSlice(nil); got != nil {
		t.Errorf("expected nil for nil input, got %v", got)
	}
}
