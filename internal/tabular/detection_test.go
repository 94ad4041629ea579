// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package tabular

import (
	"testing"
	"time"
)

func TestDetectionSet_LenAndEmpty(t *testing.T) {
	empty := NewDetectionSet(nil)
	if !empty.Empty() || empty.Len() != 0 {
		t.Errorf("expected empty set, got len=%d empty=%v", empty.Len(), empty.Empty())
	}
	set := NewDetectionSet([]DetectionRow{{DetectionID: 1}})
	if set.Empty() || set.Len() != 1 {
		t.Errorf("expected non-empty set of length 1, got len=%d empty=%v", set.Len(), set.Empty())
	}
}

func TestDetectionSet_Filter(t *testing.T) {
	set := NewDetectionSet([]DetectionRow{
		{DetectionID: 1, AreaID: 1},
		{DetectionID: 2, AreaID: 2},
		{DetectionID: 3, AreaID: 1},
	})
	filtered := set.Filter(func(r DetectionRow) bool { return r.AreaID == 1 })
	if filtered.Len() != 2 {
		t.Fatalf("expected 2 rows with area_id=1, got %d", filtered.Len())
	}
	for _, r := range filtered.Rows {
		if r.AreaID != 1 {
			t.Errorf("unexpected area_id %d in filtered set", r.AreaID)
		}
	}
}

func TestDetectionSet_MaxDetectionID(t *testing.T) {
	if got := NewDetectionSet(nil).MaxDetectionID(); got != 0 {
		t.Errorf("expected 0 for an empty set, got %d", got)
	}
	set := NewDetectionSet([]DetectionRow{{DetectionID: 5}, {DetectionID: 12}, {DetectionID: 3}})
	if got := set.MaxDetectionID(); got != 12 {
		t.Errorf("expected max detection_id 12, got %d", got)
	}
}

func TestDetectionSet_Concat(t *testing.T) {
	a := NewDetectionSet([]DetectionRow{{DetectionID: 1}})
	b := NewDetectionSet([]DetectionRow{{DetectionID: 2}, {DetectionID: 3}})
	combined := a.Concat(b)
	if combined.Len() != 3 {
		t.Fatalf("expected 3 combined rows, got %d", combined.Len())
	}
	if a.Len() != 1 {
		t.Errorf("Concat mutated the receiver, a now has %d rows", a.Len())
	}
}

func TestDetectionSet_WithLineID(t *testing.T) {
	set := NewDetectionSet([]DetectionRow{{DetectionID: 1}, {DetectionID: 2}})
	tagged := set.WithLineID(7)
	for _, r := range tagged.Rows {
		if r.LineID != 7 {
			t.Errorf("expected line_id 7, got %d", r.LineID)
		}
	}
	if set.Rows[0].LineID != 0 {
		t.Errorf("WithLineID mutated the receiver's rows")
	}
}

func TestNewDetectionSet_PreservesDetectedAt(t *testing.T) {
	now := time.Now().UTC()
	set := NewDetectionSet([]DetectionRow{{DetectionID: 1, DetectedAt: now}})
	if !set.Rows[0].DetectedAt.Equal(now) {
		t.Errorf("expected DetectedAt to round-trip, got %v want %v", set.Rows[0].DetectedAt, now)
	}
}
