// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package types

import (
	"github.com/tomtom215/cartographus/internal/enrich"
	"github.com/tomtom215/cartographus/internal/tabular"
	"github.com/tomtom215/cartographus/internal/widgets"
	"github.com/tomtom215/cartographus/internal/widgets/sched"
)

// ProductDistributionChart is a pie chart of detection share by product.
type ProductDistributionChart struct{}

func (ProductDistributionChart) Process(ctx *widgets.Context) widgets.Result {
	if len(ctx.Detections) == 0 {
		return emptyResult(ctx)
	}

	counts := tabular.GroupCount(ctx.Detections, func(d enrich.Detection) string { return d.ProductName })
	colors := make(map[string]string)
	for _, d := range ctx.Detections {
		if _, ok := colors[d.ProductName]; !ok {
			colors[d.ProductName] = d.ProductColor
		}
	}

	keys := tabular.SortedKeysByCountDesc(counts)
	values := make([]int, len(keys))
	paletteColors := make([]string, len(keys))
	for i, k := range keys {
		values[i] = counts[k]
		c := colors[k]
		if c == "" {
			c = sched.PaletteColor(i)
		}
		paletteColors[i] = c
	}

	return dataResult(ctx, map[string]interface{}{
		"labels": keys,
		"values": values,
		"colors": paletteColors,
	})
}
