// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package types

import (
	"time"

	"github.com/tomtom215/cartographus/internal/enrich"
	"github.com/tomtom215/cartographus/internal/tabular"
	"github.com/tomtom215/cartographus/internal/widgets"
	"github.com/tomtom215/cartographus/internal/widgets/sched"
)

// dataset is a chart.js-shaped series: one label-aligned value per
// bucket, plus a display color.
type dataset struct {
	Label string    `json:"label"`
	Data  []int     `json:"data"`
	Color string    `json:"color"`
}

// ProductionTimeChart resamples detections to the request interval, one
// dataset per product (falling back to a single "Producción" series),
// with optional downtime-event markers overlaid.
type ProductionTimeChart struct{}

func (ProductionTimeChart) Process(ctx *widgets.Context) widgets.Result {
	if len(ctx.Detections) == 0 {
		return emptyResult(ctx)
	}

	start, end := dateRange(ctx.Cleaned)
	interval := intervalFrom(ctx)

	labels, _, byBucketProduct := tabular.ResampleCount(ctx.Detections, start, end, interval,
		func(d enrich.Detection) time.Time { return d.DetectedAt },
		func(d enrich.Detection) string { return d.ProductName },
	)

	productColor := make(map[string]string)
	for _, d := range ctx.Detections {
		if _, ok := productColor[d.ProductName]; !ok {
			productColor[d.ProductName] = d.ProductColor
		}
	}

	products := make(map[string]bool)
	for _, byProduct := range byBucketProduct {
		for p := range byProduct {
			products[p] = true
		}
	}

	var datasets []dataset
	labelStrings := sched.FormatTimeLabels(labels, interval)
	classDetails := make(map[string]map[string]int, len(labels))
	for i, l := range labels {
		classDetails[labelStrings[i]] = byBucketProduct[l]
	}

	if len(products) <= 1 {
		total := make([]int, len(labels))
		for i, l := range labels {
			for _, c := range byBucketProduct[l] {
				total[i] += c
			}
		}
		datasets = []dataset{{Label: "Producción", Data: total, Color: sched.PaletteColor(0)}}
	} else {
		i := 0
		for p := range products {
			color := productColor[p]
			if color == "" {
				color = sched.PaletteColor(i)
			}
			series := make([]int, len(labels))
			for j, l := range labels {
				series[j] = byBucketProduct[l][p]
			}
			datasets = append(datasets, dataset{Label: p, Data: series, Color: color})
			i++
		}
	}

	data := map[string]interface{}{
		"labels":        labelStrings,
		"datasets":      datasets,
		"class_details": classDetails,
	}

	if showDowntime(ctx) && len(ctx.Downtime) > 0 {
		data["downtime_events"] = downtimeMarkers(ctx, labels)
	}

	return dataResult(ctx, data)
}

func downtimeMarkers(ctx *widgets.Context, labels []time.Time) []map[string]interface{} {
	markers := make([]map[string]interface{}, 0, len(ctx.Downtime))
	for _, ev := range ctx.Downtime {
		reason := ev.Reason
		hasIncident := false
		if ctx.Cache != nil {
			if inc, ok, err := ctx.Cache.GetIncidentByCode(ev.ReasonCode); err == nil && ok {
				reason = inc.Description
				hasIncident = true
			}
		}
		markers = append(markers, map[string]interface{}{
			"xMin":        sched.FindNearestLabelIndex(labels, ev.StartTime),
			"xMax":        sched.FindNearestLabelIndex(labels, ev.EndTime),
			"start_time":  ev.StartTime,
			"end_time":    ev.EndTime,
			"duration_min": sched.Round1(ev.DurationSeconds / 60),
			"reason":      reason,
			"has_incident": hasIncident,
			"source":      string(ev.Source),
			"line_name":   ev.LineName,
		})
	}
	return markers
}
