// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package types

import (
	"sort"

	"github.com/tomtom215/cartographus/internal/metacache"
	"github.com/tomtom215/cartographus/internal/widgets"
	"github.com/tomtom215/cartographus/internal/widgets/sched"
)

type productRankRow struct {
	ProductName string  `json:"product_name"`
	Count       int     `json:"count"`
	WeightKg    float64 `json:"weight_kg"`
	PercentOfTotal float64 `json:"percent_of_total"`
}

// ProductRanking ranks products by output count, descending.
type ProductRanking struct{}

func (ProductRanking) Process(ctx *widgets.Context) widgets.Result {
	counts := make(map[string]int)
	weights := make(map[string]float64)
	total := 0
	for _, d := range ctx.Detections {
		if d.AreaType != metacache.AreaTypeOutput {
			continue
		}
		counts[d.ProductName]++
		weights[d.ProductName] += d.ProductWeight
		total++
	}
	if total == 0 {
		return emptyResult(ctx)
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	rows := make([]productRankRow, len(names))
	for i, name := range names {
		rows[i] = productRankRow{
			ProductName:    name,
			Count:          counts[name],
			WeightKg:       sched.Round1(weights[name]),
			PercentOfTotal: sched.Round1(float64(counts[name]) / float64(total) * 100),
		}
	}

	return dataResult(ctx, map[string]interface{}{"rows": rows, "total_output": total})
}
