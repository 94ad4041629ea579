// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package metacache

import (
	"errors"
	"testing"
	"time"
)

func TestCache_UnloadedGettersReturnErrNotLoaded(t *testing.T) {
	c := New()

	if _, err := c.GetProductionLines(); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("GetProductionLines: expected ErrNotLoaded, got %v", err)
	}
	if _, _, err := c.GetLine(1); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("GetLine: expected ErrNotLoaded, got %v", err)
	}
	if _, err := c.GetAreasByLine(1); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("GetAreasByLine: expected ErrNotLoaded, got %v", err)
	}
	if _, err := c.GetShifts(); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("GetShifts: expected ErrNotLoaded, got %v", err)
	}
	if _, err := c.GetWidgetCatalogEntryByName("KpiOee"); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("GetWidgetCatalogEntryByName: expected ErrNotLoaded, got %v", err)
	}
	if c.Current() != nil {
		t.Error("expected Current() to be nil before any load")
	}
}

func TestCache_PublishAndRead(t *testing.T) {
	c := New()
	snap := &Snapshot{
		DBName:   "tenant_acme",
		LoadedAt: time.Now(),
		Lines: map[int]ProductionLine{
			1: {LineID: 1, LineName: "Line 1", LineCode: "L1", IsActive: true},
		},
		Areas: map[int]Area{
			10: {AreaID: 10, LineID: 1, AreaName: "Input", AreaType: AreaTypeInput, Order: 0},
		},
		Products:            map[int]Product{},
		Shifts:              map[int]Shift{},
		Filters:             map[int]FilterRow{},
		Failures:            map[int]Failure{},
		Incidents:           map[int]Incident{},
		WidgetCatalog:       map[int]WidgetCatalogEntry{},
		WidgetCatalogByName: map[string]WidgetCatalogEntry{},
		areasByLine: map[int][]Area{
			1: {{AreaID: 10, LineID: 1, AreaName: "Input", AreaType: AreaTypeInput, Order: 0}},
		},
	}

	c.snapshot.Store(snap)

	if c.Current() != snap {
		t.Fatal("Current() did not return the published snapshot")
	}

	line, ok, err := c.GetLine(1)
	if err != nil {
		t.Fatalf("GetLine returned error: %v", err)
	}
	if !ok || line.LineName != "Line 1" {
		t.Errorf("unexpected line: %+v ok=%v", line, ok)
	}

	areas, err := c.GetAreasByLine(1)
	if err != nil {
		t.Fatalf("GetAreasByLine returned error: %v", err)
	}
	if len(areas) != 1 || areas[0].AreaName != "Input" {
		t.Errorf("unexpected areas: %+v", areas)
	}

	if _, ok, _ := c.GetLine(999); ok {
		t.Error("expected unknown line id to miss")
	}
}

func TestCache_GetWidgetCatalogEntryByName_DefaultsWhenMissing(t *testing.T) {
	c := New()
	c.snapshot.Store(&Snapshot{
		DBName:              "tenant_acme",
		WidgetCatalogByName: map[string]WidgetCatalogEntry{"KpiOee": {WidgetID: 3, WidgetName: "KpiOee", Description: "OEE"}},
	})

	known, err := c.GetWidgetCatalogEntryByName("KpiOee")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if known.WidgetID != 3 {
		t.Errorf("expected known entry with WidgetID 3, got %+v", known)
	}

	unknown, err := c.GetWidgetCatalogEntryByName("SomeUnregisteredWidget")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if unknown.WidgetID != 0 || unknown.WidgetName != "SomeUnregisteredWidget" || unknown.Description != "SomeUnregisteredWidget" {
		t.Errorf("expected synthetic default entry, got %+v", unknown)
	}
}

func TestSourceUnavailable_ErrorAndUnwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := &SourceUnavailable{Table: "production_line", Err: inner}

	if err.Error() == "" {
		t.Error("expected non-empty error message")
	}
	if !errors.Is(err, inner) {
		t.Error("expected errors.Is to unwrap to the inner error")
	}
}
