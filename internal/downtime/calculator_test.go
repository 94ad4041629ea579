// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package downtime

import (
	"testing"
	"time"

	"github.com/tomtom215/cartographus/internal/enrich"
	"github.com/tomtom215/cartographus/internal/metacache"
)

func testCache() *metacache.Cache {
	return metacache.NewForTest(&metacache.Snapshot{
		Lines: map[int]metacache.ProductionLine{
			1: {LineID: 1, LineName: "Linea A", IsActive: true, DowntimeThreshold: 300, AutoDetectDowntime: true},
			2: {LineID: 2, LineName: "Linea B", IsActive: true, DowntimeThreshold: 300, AutoDetectDowntime: false},
		},
	})
}

func at(h, m int) time.Time {
	return time.Date(2026, 1, 1, h, m, 0, 0, time.UTC)
}

func TestCalculateGapDowntimes_SingleGapAboveThreshold(t *testing.T) {
	dets := []enrich.Detection{
		{LineID: 1, DetectedAt: at(8, 0)},
		{LineID: 1, DetectedAt: at(8, 10)}, // 600s gap > 300s threshold
		{LineID: 1, DetectedAt: at(8, 11)},
	}
	events := CalculateGapDowntimes(dets, []int{1}, testCache(), 0)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if !events[0].StartTime.Equal(at(8, 0)) || !events[0].EndTime.Equal(at(8, 10)) {
		t.Errorf("unexpected event bounds: %+v", events[0])
	}
	if events[0].DurationSeconds != 600 {
		t.Errorf("expected 600s duration, got %v", events[0].DurationSeconds)
	}
}

func TestCalculateGapDowntimes_ConsecutiveGapsExtendSameEvent(t *testing.T) {
	dets := []enrich.Detection{
		{LineID: 1, DetectedAt: at(8, 0)},
		{LineID: 1, DetectedAt: at(8, 10)},
		{LineID: 1, DetectedAt: at(8, 20)}, // still above threshold, extends
	}
	events := CalculateGapDowntimes(dets, []int{1}, testCache(), 0)
	if len(events) != 1 {
		t.Fatalf("expected 1 merged event, got %d", len(events))
	}
	if !events[0].EndTime.Equal(at(8, 20)) {
		t.Errorf("expected event to extend to 08:20, got %v", events[0].EndTime)
	}
}

func TestCalculateGapDowntimes_StrictGreaterThan(t *testing.T) {
	dets := []enrich.Detection{
		{LineID: 1, DetectedAt: at(8, 0)},
		{LineID: 1, DetectedAt: at(8, 5)}, // exactly 300s == threshold, not > threshold
	}
	events := CalculateGapDowntimes(dets, []int{1}, testCache(), 0)
	if len(events) != 0 {
		t.Errorf("expected no event for gap==threshold, got %d", len(events))
	}
}

func TestCalculateGapDowntimes_SkipsDisabledLine(t *testing.T) {
	dets := []enrich.Detection{
		{LineID: 2, DetectedAt: at(8, 0)},
		{LineID: 2, DetectedAt: at(9, 0)},
	}
	events := CalculateGapDowntimes(dets, []int{2}, testCache(), 0)
	if len(events) != 0 {
		t.Errorf("expected no events for auto_detect_downtime=false line, got %d", len(events))
	}
}

func TestCalculateGapDowntimes_ThresholdOverride(t *testing.T) {
	dets := []enrich.Detection{
		{LineID: 1, DetectedAt: at(8, 0)},
		{LineID: 1, DetectedAt: at(8, 1)}, // 60s gap
	}
	events := CalculateGapDowntimes(dets, []int{1}, testCache(), 30)
	if len(events) != 1 {
		t.Fatalf("expected override threshold of 30s to flag a 60s gap, got %d events", len(events))
	}
}

func TestRemoveOverlapping_DropsOverlap(t *testing.T) {
	calc := []Event{
		{LineID: 1, StartTime: at(8, 0), EndTime: at(8, 10)},
		{LineID: 1, StartTime: at(9, 0), EndTime: at(9, 10)},
	}
	db := []Event{
		{LineID: 1, StartTime: at(7, 55), EndTime: at(8, 5)},
	}
	kept := RemoveOverlapping(calc, db)
	if len(kept) != 1 {
		t.Fatalf("expected 1 surviving event, got %d", len(kept))
	}
	if !kept[0].StartTime.Equal(at(9, 0)) {
		t.Errorf("expected the 09:00 event to survive, got %+v", kept[0])
	}
}

func TestRemoveOverlapping_EmptyInputsAreNoOps(t *testing.T) {
	if got := RemoveOverlapping(nil, []Event{{}}); got != nil {
		t.Errorf("expected nil for empty calculated input, got %v", got)
	}
	calc := []Event{{LineID: 1}}
	if got := RemoveOverlapping(calc, nil); len(got) != 1 {
		t.Errorf("expected calculated events unchanged when db is empty, got %v", got)
	}
}
