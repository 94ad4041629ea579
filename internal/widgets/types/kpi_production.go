// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package types

import (
	"github.com/tomtom215/cartographus/internal/metacache"
	"github.com/tomtom215/cartographus/internal/widgets"
)

// KpiTotalProduction counts output-area detections, falling back to the
// total row count when area_type is unavailable (e.g. an unresolved
// area_id).
type KpiTotalProduction struct{}

func (KpiTotalProduction) Process(ctx *widgets.Context) widgets.Result {
	if len(ctx.Detections) == 0 {
		return emptyResult(ctx)
	}
	hasAreaType := false
	count := 0
	for _, d := range ctx.Detections {
		if d.AreaType != "" {
			hasAreaType = true
			if d.AreaType == metacache.AreaTypeOutput {
				count++
			}
		}
	}
	if !hasAreaType {
		count = len(ctx.Detections)
	}
	return dataResult(ctx, map[string]interface{}{"value": count, "unit": "units"})
}

// KpiTotalWeight sums product_weight over output-area detections.
type KpiTotalWeight struct{}

func (KpiTotalWeight) Process(ctx *widgets.Context) widgets.Result {
	if len(ctx.Detections) == 0 {
		return emptyResult(ctx)
	}
	var total float64
	for _, d := range ctx.Detections {
		if d.AreaType == metacache.AreaTypeOutput {
			total += d.ProductWeight
		}
	}
	return dataResult(ctx, map[string]interface{}{"value": total, "unit": "kg"})
}
