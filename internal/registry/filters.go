// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package registry

// FilterRegistry maps a filter_row's filter_name (class name) to its
// static descriptor. FilterRow.FilterStatus gates whether an entry is
// surfaced to a given tenant; this map never changes per tenant.
var FilterRegistry = map[string]FilterEntry{
	"DateRangeFilter": {
		FilterType: FilterTypeDateRange,
		ParamName:  "daterange",
		Required:   true,
		UIConfig: map[string]interface{}{
			"show_time":           true,
			"default_start_time":  "00:00",
			"default_end_time":    "23:59",
		},
	},
	"ProductionLineFilter": {
		FilterType:    FilterTypeDropdown,
		ParamName:     "line_id",
		OptionsSource: "production_lines",
		Required:      true,
		UIConfig: map[string]interface{}{
			"supports_groups": true,
		},
	},
	"ShiftFilter": {
		FilterType:    FilterTypeDropdown,
		ParamName:     "shift_id",
		OptionsSource: "shifts",
	},
	"AreaFilter": {
		FilterType:    FilterTypeMultiselect,
		ParamName:     "area_ids",
		OptionsSource: "areas",
		DefaultValue:  []string{},
		DependsOn:     "line_id",
	},
	"ProductFilter": {
		FilterType:    FilterTypeMultiselect,
		ParamName:     "product_ids",
		OptionsSource: "products",
		DefaultValue:  []string{},
	},
	"IntervalFilter": {
		FilterType:   FilterTypeDropdown,
		ParamName:    "interval",
		DefaultValue: "hour",
		Required:     true,
		UIConfig: map[string]interface{}{
			"static_options": []string{"minute", "15min", "hour", "day", "week", "month"},
		},
	},
	"ShowDowntimeFilter": {
		FilterType:   FilterTypeToggle,
		ParamName:    "show_downtime",
		DefaultValue: true,
	},
	"DowntimeThresholdFilter": {
		FilterType:   FilterTypeNumber,
		ParamName:    "downtime_threshold",
		DefaultValue: 300,
		DependsOn:    "line_id",
		UIConfig: map[string]interface{}{
			"min": 0,
		},
	},
	"MinConfidenceFilter": {
		FilterType:   FilterTypeNumber,
		ParamName:    "min_confidence",
		DefaultValue: 0.0,
		UIConfig: map[string]interface{}{
			"min": 0.0,
			"max": 1.0,
		},
	},
	"SearchFilter": {
		FilterType:   FilterTypeText,
		ParamName:    "search",
		DefaultValue: "",
		UIConfig: map[string]interface{}{
			"min_length": 0,
			"max_length": 200,
		},
	},
}
