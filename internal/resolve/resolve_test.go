// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package resolve

import (
	"reflect"
	"testing"

	"github.com/tomtom215/cartographus/internal/metacache"
)

func testCache() *metacache.Cache {
	return metacache.NewForTest(&metacache.Snapshot{
		Lines: map[int]metacache.ProductionLine{
			1: {LineID: 1, LineName: "Linea A", IsActive: true},
			2: {LineID: 2, LineName: "Linea B", IsActive: true},
			3: {LineID: 3, LineName: "Linea C", IsActive: false},
		},
		Filters: map[int]metacache.FilterRow{
			7: {FilterID: 7, FilterName: "ProductionLineFilter", AdditionalFilter: `{"alias":"Pack","line_ids":[1,2]}`},
			8: {FilterID: 8, FilterName: "ProductionLineFilter", AdditionalFilter: `{"groups":[{"alias":"A","line_ids":[1]},{"alias":"B","line_ids":[2]}]}`},
		},
	})
}

func TestLineResolver_ExplicitLineIDs(t *testing.T) {
	r := NewLineResolver(testCache())
	got := r.Resolve(map[string]interface{}{"line_ids": []interface{}{"1", "2"}})
	if !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("got %v", got)
	}
}

func TestLineResolver_CSVLineIDs(t *testing.T) {
	r := NewLineResolver(testCache())
	got := r.Resolve(map[string]interface{}{"line_ids": "1, 2"})
	if !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("got %v", got)
	}
}

func TestLineResolver_All(t *testing.T) {
	r := NewLineResolver(testCache())
	got := r.Resolve(map[string]interface{}{"line_id": "all"})
	if !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("expected only active lines [1 2], got %v", got)
	}
}

func TestLineResolver_SingleInteger(t *testing.T) {
	r := NewLineResolver(testCache())
	got := r.Resolve(map[string]interface{}{"line_id": "2"})
	if !reflect.DeepEqual(got, []int{2}) {
		t.Errorf("got %v", got)
	}
}

func TestLineResolver_SingleGroup(t *testing.T) {
	r := NewLineResolver(testCache())
	got := r.Resolve(map[string]interface{}{"line_id": "group_7"})
	if !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("got %v", got)
	}
}

func TestLineResolver_IndexedGroup(t *testing.T) {
	r := NewLineResolver(testCache())
	got := r.Resolve(map[string]interface{}{"line_id": "group_8_1"})
	if !reflect.DeepEqual(got, []int{2}) {
		t.Errorf("got %v", got)
	}
}

func TestLineResolver_MissingFallsBackToActive(t *testing.T) {
	r := NewLineResolver(testCache())
	got := r.Resolve(map[string]interface{}{})
	if !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("got %v", got)
	}
}

func TestLineResolver_UnparseableFallsBackToActive(t *testing.T) {
	r := NewLineResolver(testCache())
	got := r.Resolve(map[string]interface{}{"line_id": "not-a-number"})
	if !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("got %v", got)
	}
}

func TestTableResolver_KnownAndUnknownLines(t *testing.T) {
	r := NewTableResolver(testCache())
	if got := r.DetectionTable(1); got != "detection_line_linea a" {
		t.Errorf("got %q", got)
	}
	if got := r.DowntimeTable(2); got != "downtime_events_linea b" {
		t.Errorf("got %q", got)
	}
	if got := r.DetectionTable(999); got != "" {
		t.Errorf("expected empty string for unknown line, got %q", got)
	}
}
