// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package sqlquery

import (
	"testing"
	"time"
)

func TestWhereBuilder_Empty(t *testing.T) {
	wb := NewWhereBuilder()

	if !wb.IsEmpty() {
		t.Error("Expected new builder to be empty")
	}
	if wb.Count() != 0 {
		t.Errorf("Expected count 0, got %d", wb.Count())
	}

	whereClause, args := wb.Build()
	if whereClause != "1=1" {
		t.Errorf("Expected '1=1' for empty builder, got %q", whereClause)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
}

func TestWhereBuilder_AddTimeRange(t *testing.T) {
	wb := NewWhereBuilder()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)

	wb.AddTimeRange("detected_at", &start, &end)

	whereClause, args := wb.Build()
	expected := "detected_at >= ? AND detected_at <= ?"
	if whereClause != expected {
		t.Errorf("Expected %q, got %q", expected, whereClause)
	}
	if len(args) != 2 {
		t.Errorf("Expected 2 args, got %d", len(args))
	}
}

func TestWhereBuilder_AddTimeRange_OpenEnded(t *testing.T) {
	wb := NewWhereBuilder()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	wb.AddTimeRange("detected_at", &start, nil)

	whereClause, args := wb.Build()
	if whereClause != "detected_at >= ?" {
		t.Errorf("Expected 'detected_at >= ?', got %q", whereClause)
	}
	if len(args) != 1 {
		t.Errorf("Expected 1 arg, got %d", len(args))
	}
}

func TestWhereBuilder_AddTimeOfDayRange(t *testing.T) {
	t.Run("non-wrapping shift", func(t *testing.T) {
		wb := NewWhereBuilder()
		wb.AddTimeOfDayRange("detected_at", "06:00:00", "14:00:00")
		whereClause, args := wb.Build()
		if whereClause != "TIME(detected_at) >= ? AND TIME(detected_at) < ?" {
			t.Errorf("unexpected clause %q", whereClause)
		}
		if len(args) != 2 {
			t.Errorf("expected 2 args, got %d", len(args))
		}
	})

	t.Run("wrapping shift", func(t *testing.T) {
		wb := NewWhereBuilder()
		wb.AddTimeOfDayRange("detected_at", "22:00:00", "06:00:00")
		whereClause, _ := wb.Build()
		expected := "(TIME(detected_at) >= ? OR TIME(detected_at) < ?)"
		if whereClause != expected {
			t.Errorf("Expected %q, got %q", expected, whereClause)
		}
	})

	t.Run("empty bounds are a no-op", func(t *testing.T) {
		wb := NewWhereBuilder()
		wb.AddTimeOfDayRange("detected_at", "", "")
		if !wb.IsEmpty() {
			t.Error("expected builder to remain empty")
		}
	})
}

func TestWhereBuilder_AddStringsIn(t *testing.T) {
	wb := NewWhereBuilder()
	wb.AddStringsIn("line_id", []string{"L1", "L2", "L3"})

	whereClause, args := wb.Build()
	expected := "line_id IN (?, ?, ?)"
	if whereClause != expected {
		t.Errorf("Expected %q, got %q", expected, whereClause)
	}
	if len(args) != 3 {
		t.Errorf("Expected 3 args, got %d", len(args))
	}
}

func TestWhereBuilder_AddStringsIn_Empty(t *testing.T) {
	wb := NewWhereBuilder()
	wb.AddStringsIn("line_id", nil)
	if !wb.IsEmpty() {
		t.Error("expected builder to remain empty for nil slice")
	}
}

func TestWhereBuilder_AddNotStringsIn(t *testing.T) {
	wb := NewWhereBuilder()
	wb.AddNotStringsIn("downtime_reason", []string{"planned_maintenance"})

	whereClause, args := wb.Build()
	expected := "downtime_reason NOT IN (?)"
	if whereClause != expected {
		t.Errorf("Expected %q, got %q", expected, whereClause)
	}
	if len(args) != 1 {
		t.Errorf("Expected 1 arg, got %d", len(args))
	}
}

func TestWhereBuilder_AddEquals(t *testing.T) {
	wb := NewWhereBuilder()
	wb.AddEquals("shift_name", "Night")
	wb.AddEquals("ignored_when_empty", "")

	whereClause, args := wb.Build()
	if whereClause != "shift_name = ?" {
		t.Errorf("Expected 'shift_name = ?', got %q", whereClause)
	}
	if len(args) != 1 || args[0] != "Night" {
		t.Errorf("Expected args [Night], got %v", args)
	}
}

func TestWhereBuilder_AddMinConfidence(t *testing.T) {
	wb := NewWhereBuilder()
	wb.AddMinConfidence("confidence", 0.85)

	whereClause, args := wb.Build()
	if whereClause != "confidence >= ?" {
		t.Errorf("Expected 'confidence >= ?', got %q", whereClause)
	}
	if len(args) != 1 || args[0] != 0.85 {
		t.Errorf("Expected args [0.85], got %v", args)
	}
}

func TestWhereBuilder_AddMinConfidence_ZeroSkipped(t *testing.T) {
	wb := NewWhereBuilder()
	wb.AddMinConfidence("confidence", 0)
	if !wb.IsEmpty() {
		t.Error("expected zero threshold to be a no-op")
	}
}

func TestWhereBuilder_Combined(t *testing.T) {
	wb := NewWhereBuilder()
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	wb.AddTimeRange("detected_at", &start, nil).
		AddStringsIn("line_id", []string{"L1"}).
		AddEquals("shift_name", "Day")

	if wb.Count() != 3 {
		t.Errorf("Expected 3 clauses, got %d", wb.Count())
	}

	whereClause, args := wb.BuildWithPrefix()
	expected := "WHERE detected_at >= ? AND line_id IN (?) AND shift_name = ?"
	if whereClause != expected {
		t.Errorf("Expected %q, got %q", expected, whereClause)
	}
	if len(args) != 3 {
		t.Errorf("Expected 3 args, got %d", len(args))
	}
}

func TestWhereBuilder_AddClause(t *testing.T) {
	wb := NewWhereBuilder()
	wb.AddClause("duration_seconds > ?", 120)

	whereClause, args := wb.Build()
	if whereClause != "duration_seconds > ?" {
		t.Errorf("Expected 'duration_seconds > ?', got %q", whereClause)
	}
	if len(args) != 1 || args[0] != 120 {
		t.Errorf("Expected args [120], got %v", args)
	}
}
