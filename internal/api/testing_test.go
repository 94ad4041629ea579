// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cartographus/internal/config"
	"github.com/tomtom215/cartographus/internal/downtime"
	"github.com/tomtom215/cartographus/internal/filters"
	"github.com/tomtom215/cartographus/internal/layout"
	"github.com/tomtom215/cartographus/internal/metacache"
	"github.com/tomtom215/cartographus/internal/orchestrator"
	"github.com/tomtom215/cartographus/internal/repository"
	"github.com/tomtom215/cartographus/internal/resolve"
	"github.com/tomtom215/cartographus/internal/widgets"
)

// withChiURLParam attaches a chi route context carrying key=value to req,
// the way the real router would after matching a {key} path segment.
func withChiURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func testSnapshot() *metacache.Snapshot {
	return &metacache.Snapshot{
		DBName: "acme_plant",
		Lines: map[int]metacache.ProductionLine{
			1: {LineID: 1, LineName: "Bolsa25kg", IsActive: true, PerformanceUnitsMin: 1},
		},
		Areas: map[int]metacache.Area{
			1: {AreaID: 1, LineID: 1, AreaName: "Salida", AreaType: metacache.AreaTypeOutput},
		},
		Filters: map[int]metacache.FilterRow{
			1: {FilterID: 1, FilterName: "DateRangeFilter", FilterStatus: true, DisplayOrder: 1},
			2: {FilterID: 2, FilterName: "ProductionLineFilter", FilterStatus: true, DisplayOrder: 2},
		},
		WidgetCatalog: map[int]metacache.WidgetCatalogEntry{
			7: {WidgetID: 7, WidgetName: "KpiTotalProduction", Description: "Total Production"},
		},
		WidgetCatalogByName: map[string]metacache.WidgetCatalogEntry{
			"KpiTotalProduction": {WidgetID: 7, WidgetName: "KpiTotalProduction", Description: "Total Production"},
		},
	}
}

// withProcessorStub makes every widget class resolve to a processor that
// always returns result, restoring the previous hook on cleanup.
func withProcessorStub(t *testing.T, result widgets.Result) {
	t.Helper()
	prev := widgets.NewProcessor
	widgets.NewProcessor = func(className string) (widgets.Processor, bool) {
		return stubProc{result}, true
	}
	t.Cleanup(func() { widgets.NewProcessor = prev })
}

type stubProc struct{ result widgets.Result }

func (s stubProc) Process(ctx *widgets.Context) widgets.Result { return s.result }

// newTestServer returns a Server with an active tenant wired against
// sqlmock-backed detection/downtime connections, mirroring the wiring
// internal/orchestrator's own tests use. detMock/downMock let the
// caller set query expectations before making a request.
func newTestServer(t *testing.T) (*Server, sqlmock.Sqlmock, sqlmock.Sqlmock) {
	t.Helper()

	cache := metacache.NewForTest(testSnapshot())

	detDB, detMock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { detDB.Close() })

	downDB, downMock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { downDB.Close() })

	tables := resolve.NewTableResolver(cache)
	detRepo := repository.NewDetectionRepository(detDB, tables, cache)
	downRepo := repository.NewDowntimeRepository(downDB, tables, cache)
	filterEngine := filters.NewEngine(cache)
	lineResolver := resolve.NewLineResolver(cache)
	downtimeSvc := downtime.NewService(downRepo, cache)
	widgetEngine := widgets.NewEngine(cache)
	layoutSvc := layout.NewService(nil, cache, 0)

	orch := orchestrator.New(filterEngine, lineResolver, layoutSvc, detRepo, downtimeSvc, widgetEngine, cache)

	s := NewServer(&config.Config{}, nil)
	s.active.Store(&tenant{
		dbName:       "acme_plant",
		cache:        cache,
		tables:       tables,
		orchestrator: orch,
		filters:      filterEngine,
		lines:        lineResolver,
		detections:   detRepo,
		layout:       layoutSvc,
	})

	return s, detMock, downMock
}
