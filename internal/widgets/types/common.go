// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package types holds one file per widget processor class named in the
// widget registry, plus the ClassName->Processor switch that backs
// widgets.NewProcessor.
package types

import (
	"strconv"
	"time"

	"github.com/tomtom215/cartographus/internal/filters"
	"github.com/tomtom215/cartographus/internal/tabular"
	"github.com/tomtom215/cartographus/internal/widgets"
)

// NewProcessor is assigned to widgets.NewProcessor by the composition
// root (cmd/server/main.go) to close the ClassName->Processor dispatch
// without types importing widgets creating a cycle the other way.
func NewProcessor(className string) (widgets.Processor, bool) {
	switch className {
	case "KpiTotalProduction":
		return &KpiTotalProduction{}, true
	case "KpiTotalWeight":
		return &KpiTotalWeight{}, true
	case "KpiOee":
		return &KpiOee{}, true
	case "KpiAvailability":
		return &KpiAvailability{}, true
	case "KpiPerformance":
		return &KpiPerformance{}, true
	case "KpiQuality":
		return &KpiQuality{}, true
	case "KpiTotalDowntime":
		return &KpiTotalDowntime{}, true
	case "ProductionTimeChart":
		return &ProductionTimeChart{}, true
	case "EntryOutputCompareChart":
		return &EntryOutputCompareChart{}, true
	case "AreaDetectionChart":
		return &AreaDetectionChart{}, true
	case "ProductDistributionChart":
		return &ProductDistributionChart{}, true
	case "ScatterChart":
		return &ScatterChart{}, true
	case "DowntimeTable":
		return &DowntimeTable{}, true
	case "ProductRanking":
		return &ProductRanking{}, true
	case "LineStatusIndicator":
		return &LineStatusIndicator{}, true
	case "MetricsSummary":
		return &MetricsSummary{}, true
	case "EventFeed":
		return &EventFeed{}, true
	default:
		return nil, false
	}
}

// dateRange parses the cleaned daterange filter into absolute bounds,
// defaulting to the last 7 days when absent or unparsable.
func dateRange(cleaned map[string]interface{}) (time.Time, time.Time) {
	raw, ok := cleaned["daterange"]
	if !ok || raw == nil {
		end := time.Now().UTC()
		return end.AddDate(0, 0, -7), end
	}
	start, end, err := filters.NewDateRangeFilter(filters.Config{}).ParseDatetimes(raw)
	if err != nil {
		end := time.Now().UTC()
		return end.AddDate(0, 0, -7), end
	}
	return start, end
}

// configValue looks up key in the request's cleaned params first (the
// user's explicit override), falling back to the widget's DefaultConfig.
func configValue(ctx *widgets.Context, key string) (interface{}, bool) {
	if v, ok := ctx.Cleaned[key]; ok && v != nil {
		return v, true
	}
	if v, ok := ctx.DefaultConfig[key]; ok {
		return v, true
	}
	return nil, false
}

func intervalFrom(ctx *widgets.Context) tabular.Interval {
	v, _ := configValue(ctx, "interval")
	s, _ := v.(string)
	switch tabular.Interval(s) {
	case tabular.IntervalMinute, tabular.IntervalFifteenMin, tabular.IntervalHour,
		tabular.IntervalDay, tabular.IntervalWeek, tabular.IntervalMonth:
		return tabular.Interval(s)
	default:
		return tabular.IntervalHour
	}
}

func shiftID(cleaned map[string]interface{}) int {
	switch v := cleaned["shift_id"].(type) {
	case int:
		return v
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}

func downtimeThresholdOverride(cleaned map[string]interface{}) int {
	switch v := cleaned["downtime_threshold"].(type) {
	case int:
		return v
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}

func showDowntime(ctx *widgets.Context) bool {
	v, ok := configValue(ctx, "show_downtime")
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// emptyResult is the shared empty-input envelope every processor
// returns when it has nothing to compute over.
func emptyResult(ctx *widgets.Context) widgets.Result {
	return widgets.Result{
		WidgetID:   ctx.WidgetID,
		WidgetName: ctx.DisplayName,
		WidgetType: ctx.ClassName,
		Data:       nil,
		Metadata:   map[string]interface{}{"empty": true},
	}
}

// dataResult wraps a non-empty computed payload in the standard result
// envelope.
func dataResult(ctx *widgets.Context, data interface{}) widgets.Result {
	return widgets.Result{
		WidgetID:   ctx.WidgetID,
		WidgetName: ctx.DisplayName,
		WidgetType: ctx.ClassName,
		Data:       data,
	}
}

func maxItems(ctx *widgets.Context, fallback int) int {
	v, ok := configValue(ctx, "max_items")
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	}
	return fallback
}
