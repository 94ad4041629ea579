// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package registry

// WidgetRegistry maps a widget_catalog row's widget_name (class name) to
// its static descriptor. RequiredColumns lists the enriched fields a
// processor reads; WidgetEngine hands every processor the full enriched
// dataset and does not project it down to those columns.
var WidgetRegistry = map[string]WidgetEntry{
	"KpiTotalProduction": {
		Category:        CategoryKPI,
		SourceType:      SourceInternal,
		RequiredColumns: []string{"area_type"},
	},
	"KpiTotalWeight": {
		Category:        CategoryKPI,
		SourceType:      SourceInternal,
		RequiredColumns: []string{"area_type", "product_weight"},
	},
	"KpiOee": {
		Category:        CategoryKPI,
		SourceType:      SourceInternal,
		RequiredColumns: []string{"area_type", "line_id"},
	},
	"KpiAvailability": {
		Category:        CategoryKPI,
		SourceType:      SourceInternal,
		RequiredColumns: []string{"area_type", "line_id"},
	},
	"KpiPerformance": {
		Category:        CategoryKPI,
		SourceType:      SourceInternal,
		RequiredColumns: []string{"area_type", "line_id"},
	},
	"KpiQuality": {
		Category:        CategoryKPI,
		SourceType:      SourceInternal,
		RequiredColumns: []string{"area_type", "line_id"},
	},
	"KpiTotalDowntime": {
		Category:        CategoryKPI,
		SourceType:      SourceInternal,
		RequiredColumns: []string{},
	},
	"ProductionTimeChart": {
		Category:        CategoryChart,
		SourceType:      SourceInternal,
		RequiredColumns: []string{"product_name", "product_color"},
		DefaultConfig: map[string]interface{}{
			"interval":      "hour",
			"show_downtime": true,
		},
	},
	"EntryOutputCompareChart": {
		Category:        CategoryChart,
		SourceType:      SourceInternal,
		RequiredColumns: []string{"area_type", "line_id"},
		DefaultConfig: map[string]interface{}{
			"interval": "hour",
		},
	},
	"AreaDetectionChart": {
		Category:        CategoryChart,
		SourceType:      SourceInternal,
		RequiredColumns: []string{"area_name"},
	},
	"ProductDistributionChart": {
		Category:        CategoryChart,
		SourceType:      SourceInternal,
		RequiredColumns: []string{"product_name", "product_color"},
	},
	"ScatterChart": {
		Category:        CategoryChart,
		SourceType:      SourceInternal,
		RequiredColumns: []string{},
	},
	"DowntimeTable": {
		Category:        CategoryTable,
		SourceType:      SourceInternal,
		RequiredColumns: []string{},
	},
	"ProductRanking": {
		Category:        CategoryRanking,
		SourceType:      SourceInternal,
		RequiredColumns: []string{"area_type", "product_name", "product_weight"},
	},
	"LineStatusIndicator": {
		Category:        CategoryIndicator,
		SourceType:      SourceInternal,
		RequiredColumns: []string{"line_id"},
	},
	"MetricsSummary": {
		Category:        CategorySummary,
		SourceType:      SourceInternal,
		RequiredColumns: []string{},
	},
	"EventFeed": {
		Category:        CategoryFeed,
		SourceType:      SourceInternal,
		RequiredColumns: []string{},
		DefaultConfig: map[string]interface{}{
			"max_items": 50,
		},
	},
}
