// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package types

import (
	"github.com/tomtom215/cartographus/internal/enrich"
	"github.com/tomtom215/cartographus/internal/tabular"
	"github.com/tomtom215/cartographus/internal/widgets"
)

// AreaDetectionChart is a bar chart of detection counts by area, sorted
// descending.
type AreaDetectionChart struct{}

func (AreaDetectionChart) Process(ctx *widgets.Context) widgets.Result {
	if len(ctx.Detections) == 0 {
		return emptyResult(ctx)
	}
	counts := tabular.GroupCount(ctx.Detections, func(d enrich.Detection) string { return d.AreaName })
	keys := tabular.SortedKeysByCountDesc(counts)
	values := make([]int, len(keys))
	for i, k := range keys {
		values[i] = counts[k]
	}
	return dataResult(ctx, map[string]interface{}{
		"labels": keys,
		"values": values,
	})
}
