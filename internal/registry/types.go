// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package registry holds the two compile-time constant maps that are the
// authoritative source of type information for filters and widgets:
// FilterRegistry and WidgetRegistry. Database rows reference entries here
// by class name only; adding a new filter or widget requires a DB row, an
// entry in this package, and the processor - no other files change.
package registry

// FilterType enumerates the concrete filter contracts FilterEngine knows
// how to instantiate.
type FilterType string

const (
	FilterTypeDateRange   FilterType = "daterange"
	FilterTypeDropdown    FilterType = "dropdown"
	FilterTypeMultiselect FilterType = "multiselect"
	FilterTypeText        FilterType = "text"
	FilterTypeNumber      FilterType = "number"
	FilterTypeToggle      FilterType = "toggle"
)

// FilterEntry is a FilterRegistry value: everything FilterEngine needs to
// instantiate and drive one filter class, beyond the DB-backed FilterRow.
type FilterEntry struct {
	FilterType    FilterType
	ParamName     string         // HTTP query/body param name
	OptionsSource string         // metacache getter key, or "" for static/no options
	DefaultValue  interface{}
	Placeholder   string
	Required      bool
	DependsOn     string                 // another param_name, for cascading dropdowns
	UIConfig      map[string]interface{} // type-specific hints (min/max, static_options, ...)
}

// WidgetCategory groups widgets for layout and UI-hint purposes.
type WidgetCategory string

const (
	CategoryKPI       WidgetCategory = "kpi"
	CategoryChart     WidgetCategory = "chart"
	CategoryTable     WidgetCategory = "table"
	CategoryRanking   WidgetCategory = "ranking"
	CategoryIndicator WidgetCategory = "indicator"
	CategorySummary   WidgetCategory = "summary"
	CategoryFeed      WidgetCategory = "feed"
)

// SourceType distinguishes widgets computed from the in-process enriched
// dataset from ones that broker a request to an external API.
type SourceType string

const (
	SourceInternal SourceType = "internal"
	SourceExternal SourceType = "external"
)

// WidgetEntry is a WidgetRegistry value.
type WidgetEntry struct {
	Category        WidgetCategory
	SourceType      SourceType
	RequiredColumns []string // subset of the master enriched schema the processor reads; not used to project data
	APISourceID     string   // only meaningful when SourceType == SourceExternal
	DefaultConfig   map[string]interface{}
}
