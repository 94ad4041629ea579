// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package metacache

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// loadSnapshot fetches every reference table from tenantDB and the widget
// catalog from globalDB, building a fully populated Snapshot. It never
// touches the currently-published snapshot - the caller swaps it in only
// on success.
func loadSnapshot(ctx context.Context, tenantDB, globalDB *sql.DB, dbName string) (*Snapshot, error) {
	snap := &Snapshot{
		DBName:              dbName,
		LoadedAt:            time.Now(),
		Lines:               make(map[int]ProductionLine),
		Areas:               make(map[int]Area),
		Products:            make(map[int]Product),
		Shifts:              make(map[int]Shift),
		Filters:             make(map[int]FilterRow),
		Failures:            make(map[int]Failure),
		Incidents:           make(map[int]Incident),
		WidgetCatalog:       make(map[int]WidgetCatalogEntry),
		WidgetCatalogByName: make(map[string]WidgetCatalogEntry),
		areasByLine:         make(map[int][]Area),
	}

	if err := loadLines(ctx, tenantDB, snap); err != nil {
		return nil, err
	}
	if err := loadAreas(ctx, tenantDB, snap); err != nil {
		return nil, err
	}
	if err := loadProducts(ctx, tenantDB, snap); err != nil {
		return nil, err
	}
	if err := loadShifts(ctx, tenantDB, snap); err != nil {
		return nil, err
	}
	if err := loadFilters(ctx, tenantDB, snap); err != nil {
		return nil, err
	}
	if err := loadFailures(ctx, tenantDB, snap); err != nil {
		return nil, err
	}
	if err := loadIncidents(ctx, tenantDB, snap); err != nil {
		return nil, err
	}
	if err := loadWidgetCatalog(ctx, globalDB, snap); err != nil {
		return nil, err
	}

	return snap, nil
}

func loadLines(ctx context.Context, db *sql.DB, snap *Snapshot) error {
	const q = `SELECT line_id, line_name, line_code, is_active, performance, downtime_threshold, auto_detect_downtime
	           FROM production_line`
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return &SourceUnavailable{Table: "production_line", Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var l ProductionLine
		if err := rows.Scan(&l.LineID, &l.LineName, &l.LineCode, &l.IsActive, &l.PerformanceUnitsMin, &l.DowntimeThreshold, &l.AutoDetectDowntime); err != nil {
			return &SourceUnavailable{Table: "production_line", Err: err}
		}
		snap.Lines[l.LineID] = l
	}
	return rows.Err()
}

func loadAreas(ctx context.Context, db *sql.DB, snap *Snapshot) error {
	const q = `SELECT area_id, line_id, area_name, area_type, area_order FROM area ORDER BY line_id, area_order`
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return &SourceUnavailable{Table: "area", Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var a Area
		var areaType string
		if err := rows.Scan(&a.AreaID, &a.LineID, &a.AreaName, &areaType, &a.Order); err != nil {
			return &SourceUnavailable{Table: "area", Err: err}
		}
		a.AreaType = AreaType(areaType)
		snap.Areas[a.AreaID] = a
		snap.areasByLine[a.LineID] = append(snap.areasByLine[a.LineID], a)
	}
	return rows.Err()
}

func loadProducts(ctx context.Context, db *sql.DB, snap *Snapshot) error {
	const q = `SELECT product_id, product_name, product_code, product_weight, product_color, production_std FROM product`
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return &SourceUnavailable{Table: "product", Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ProductID, &p.ProductName, &p.ProductCode, &p.ProductWeight, &p.ProductColor, &p.ProductionStd); err != nil {
			return &SourceUnavailable{Table: "product", Err: err}
		}
		snap.Products[p.ProductID] = p
	}
	return rows.Err()
}

func loadShifts(ctx context.Context, db *sql.DB, snap *Snapshot) error {
	const q = `SELECT shift_id, shift_name, start_time, end_time, is_overnight, days_implemented FROM shift`
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return &SourceUnavailable{Table: "shift", Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var s Shift
		var days string
		if err := rows.Scan(&s.ShiftID, &s.ShiftName, &s.StartTime, &s.EndTime, &s.IsOvernight, &days); err != nil {
			return &SourceUnavailable{Table: "shift", Err: err}
		}
		if days != "" {
			s.DaysImplemented = strings.Split(days, ",")
		}
		snap.Shifts[s.ShiftID] = s
	}
	return rows.Err()
}

func loadFilters(ctx context.Context, db *sql.DB, snap *Snapshot) error {
	const q = `SELECT filter_id, filter_name, description, filter_status, display_order, additional_filter FROM filter`
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return &SourceUnavailable{Table: "filter", Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var f FilterRow
		var additional sql.NullString
		if err := rows.Scan(&f.FilterID, &f.FilterName, &f.Description, &f.FilterStatus, &f.DisplayOrder, &additional); err != nil {
			return &SourceUnavailable{Table: "filter", Err: err}
		}
		f.AdditionalFilter = additional.String
		snap.Filters[f.FilterID] = f
	}
	return rows.Err()
}

func loadFailures(ctx context.Context, db *sql.DB, snap *Snapshot) error {
	const q = `SELECT failure_id, type_failure, description FROM failure`
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return &SourceUnavailable{Table: "failure", Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var f Failure
		if err := rows.Scan(&f.FailureID, &f.TypeFailure, &f.Description); err != nil {
			return &SourceUnavailable{Table: "failure", Err: err}
		}
		snap.Failures[f.FailureID] = f
	}
	return rows.Err()
}

func loadIncidents(ctx context.Context, db *sql.DB, snap *Snapshot) error {
	const q = `SELECT incident_id, failure_id, incident_code, description FROM incident`
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return &SourceUnavailable{Table: "incident", Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var i Incident
		if err := rows.Scan(&i.IncidentID, &i.FailureID, &i.IncidentCode, &i.Description); err != nil {
			return &SourceUnavailable{Table: "incident", Err: err}
		}
		snap.Incidents[i.IncidentID] = i
	}
	return rows.Err()
}

func loadWidgetCatalog(ctx context.Context, db *sql.DB, snap *Snapshot) error {
	const q = `SELECT widget_id, widget_name, description FROM widget_catalog`
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return &SourceUnavailable{Table: "widget_catalog", Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var w WidgetCatalogEntry
		if err := rows.Scan(&w.WidgetID, &w.WidgetName, &w.Description); err != nil {
			return &SourceUnavailable{Table: "widget_catalog", Err: err}
		}
		snap.WidgetCatalog[w.WidgetID] = w
		snap.WidgetCatalogByName[w.WidgetName] = w
	}
	return rows.Err()
}
