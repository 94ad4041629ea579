// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package layout

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/tomtom215/cartographus/internal/metacache"
)

func testCache() *metacache.Cache {
	return metacache.NewForTest(&metacache.Snapshot{
		WidgetCatalog: map[int]metacache.WidgetCatalogEntry{
			7: {WidgetID: 7, WidgetName: "KpiTotalProduction"},
			9: {WidgetID: 9, WidgetName: "KpiOee"},
		},
	})
}

func TestGetLayoutConfig_CaseInsensitiveRoleMatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT layout_config FROM dashboard_template").
		WithArgs(1, "Supervisor").
		WillReturnRows(sqlmock.NewRows([]string{"layout_config"}).
			AddRow(`{"widgets":[7,9],"filters":[1,2]}`))

	s := NewService(db, testCache(), 0)
	cfg, err := s.GetLayoutConfig(context.Background(), 1, "Supervisor")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.EnabledWidgetIDs) != 2 || cfg.EnabledWidgetIDs[0] != 7 {
		t.Errorf("unexpected widget ids: %v", cfg.EnabledWidgetIDs)
	}
	if len(cfg.EnabledFilterIDs) != 2 {
		t.Errorf("unexpected filter ids: %v", cfg.EnabledFilterIDs)
	}
}

func TestGetLayoutConfig_NoRowsIsErrNoTemplate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT layout_config FROM dashboard_template").
		WillReturnRows(sqlmock.NewRows([]string{"layout_config"}))

	s := NewService(db, testCache(), 0)
	_, err = s.GetLayoutConfig(context.Background(), 1, "Nobody")
	if err != ErrNoTemplate {
		t.Errorf("expected ErrNoTemplate, got %v", err)
	}
}

func TestGetLayoutConfig_CachesWithinTTL(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT layout_config FROM dashboard_template").
		WithArgs(3, "Operator").
		WillReturnRows(sqlmock.NewRows([]string{"layout_config"}).
			AddRow(`{"widgets":[7],"filters":[1]}`))

	s := NewService(db, testCache(), time.Minute)
	first, err := s.GetLayoutConfig(context.Background(), 3, "Operator")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := s.GetLayoutConfig(context.Background(), 3, "Operator")
	if err != nil {
		t.Fatalf("unexpected error on cached read: %v", err)
	}
	if len(second.EnabledWidgetIDs) != len(first.EnabledWidgetIDs) {
		t.Errorf("cached config mismatch: %v vs %v", first, second)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expected a single query, got: %v", err)
	}
}

func TestResolveWidgets_PreservesOrderDropsUnknown(t *testing.T) {
	s := NewService(nil, testCache(), 0)
	entries := s.ResolveWidgets([]int{9, 999, 7})
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].WidgetID != 9 || entries[1].WidgetID != 7 {
		t.Errorf("expected order [9,7], got %v", entries)
	}
}
