// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package types

import (
	"github.com/tomtom215/cartographus/internal/metacache"
	"github.com/tomtom215/cartographus/internal/widgets"
	"github.com/tomtom215/cartographus/internal/widgets/sched"
)

// MetricsSummary is an aggregated overview block: totals, hourly
// averages, time span, unique-product count and a downtime summary.
type MetricsSummary struct{}

func (MetricsSummary) Process(ctx *widgets.Context) widgets.Result {
	if len(ctx.Detections) == 0 {
		return emptyResult(ctx)
	}

	start, end := dateRange(ctx.Cleaned)
	hours := end.Sub(start).Hours()
	if hours <= 0 {
		hours = 1
	}

	total := len(ctx.Detections)
	totalOutput := 0
	products := make(map[string]bool)
	for _, d := range ctx.Detections {
		if d.AreaType == metacache.AreaTypeOutput {
			totalOutput++
		}
		products[d.ProductName] = true
	}

	var downtimeMinutes float64
	for _, ev := range ctx.Downtime {
		downtimeMinutes += ev.DurationSeconds / 60
	}

	return dataResult(ctx, map[string]interface{}{
		"total_detections":    total,
		"total_output":        totalOutput,
		"avg_per_hour":        sched.Round1(float64(total) / hours),
		"unique_products":     len(products),
		"period_start":        start.Format(timestampLayout),
		"period_end":          end.Format(timestampLayout),
		"downtime_event_count": len(ctx.Downtime),
		"downtime_minutes":    sched.Round1(downtimeMinutes),
	})
}
