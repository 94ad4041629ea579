// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package metacache

import "time"

// ProductionLine is a physical production line within a tenant.
type ProductionLine struct {
	LineID              int
	LineName            string
	LineCode            string
	IsActive            bool
	PerformanceUnitsMin float64
	DowntimeThreshold   int // seconds
	AutoDetectDowntime  bool
}

// AreaType distinguishes where along a line a detection was recorded.
type AreaType string

const (
	AreaTypeInput   AreaType = "input"
	AreaTypeOutput  AreaType = "output"
	AreaTypeProcess AreaType = "process"
)

// Area is an input/output/process station on a line.
type Area struct {
	AreaID   int
	LineID   int
	AreaName string
	AreaType AreaType
	Order    int
}

// Product is a trackable SKU produced on a line.
type Product struct {
	ProductID       int
	ProductName     string
	ProductCode     string
	ProductWeight   float64
	ProductColor    string
	ProductionStd   float64
}

// Shift is a named work shift, defined by local time-of-day bounds.
type Shift struct {
	ShiftID         int
	ShiftName       string
	StartTime       string // HH:MM:SS local time-of-day
	EndTime         string
	IsOvernight     bool
	DaysImplemented []string
}

// FilterRow is the DB-backed configuration for one FilterEngine filter
// instance; AdditionalFilter is opaque JSON interpreted by the filter
// implementation that owns filter_name (e.g. line-group aliases).
type FilterRow struct {
	FilterID         int
	FilterName       string // registry key
	Description      string
	FilterStatus     bool
	DisplayOrder     int
	AdditionalFilter string // raw JSON, may be empty
}

// Failure is a top-level failure taxonomy entry.
type Failure struct {
	FailureID   int
	TypeFailure string
	Description string
}

// Incident links a downtime reason code to a Failure.
type Incident struct {
	IncidentID   int
	FailureID    int
	IncidentCode string
	Description  string
}

// WidgetCatalogEntry names a widget class and its human label.
type WidgetCatalogEntry struct {
	WidgetID    int
	WidgetName  string // registry key
	Description string
}

// DashboardTemplate maps a (tenant, role) pair to a layout configuration.
type DashboardTemplate struct {
	TemplateID   int
	TenantID     int
	RoleAccess   string
	LayoutConfig string // raw JSON: {"widgets":[id...], "filters":[id...]}
}

// Snapshot is an immutable point-in-time view of one tenant's reference
// data. Callers must treat every field as read-only; the cache never
// mutates a published Snapshot, it only replaces the pointer.
type Snapshot struct {
	DBName   string
	LoadedAt time.Time

	Lines    map[int]ProductionLine
	Areas    map[int]Area
	Products map[int]Product
	Shifts   map[int]Shift
	Filters  map[int]FilterRow
	Failures map[int]Failure
	Incidents map[int]Incident

	WidgetCatalog map[int]WidgetCatalogEntry // by widget_id
	// WidgetCatalogByName indexes the same entries by widget_name for
	// the WidgetEngine's class-name -> catalog lookup.
	WidgetCatalogByName map[string]WidgetCatalogEntry

	// areasByLine indexes the entries of Areas by line_id; kept
	// denormalized since GetAreasByLine is on the request hot path.
	areasByLine map[int][]Area
}
