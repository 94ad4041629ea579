// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package types

import (
	"sort"
	"time"

	"github.com/tomtom215/cartographus/internal/widgets"
)

type feedItem struct {
	Timestamp time.Time              `json:"-"`
	Kind      string                 `json:"kind"` // "detection" | "downtime"
	Summary   string                 `json:"summary"`
	Details   map[string]interface{} `json:"details"`
}

// EventFeed merges the most recent detections and every downtime event
// into a single timestamp-descending feed, truncated to max_items.
type EventFeed struct{}

func (EventFeed) Process(ctx *widgets.Context) widgets.Result {
	if len(ctx.Detections) == 0 && len(ctx.Downtime) == 0 {
		return emptyResult(ctx)
	}

	limit := maxItems(ctx, 50)

	items := make([]feedItem, 0, len(ctx.Detections)+len(ctx.Downtime))
	for _, d := range ctx.Detections {
		items = append(items, feedItem{
			Timestamp: d.DetectedAt,
			Kind:      "detection",
			Summary:   d.ProductName + " @ " + d.AreaName,
			Details: map[string]interface{}{
				"line_name":    d.LineName,
				"area_name":    d.AreaName,
				"product_name": d.ProductName,
				"detected_at":  d.DetectedAt.Format(timestampLayout),
			},
		})
	}
	for _, ev := range ctx.Downtime {
		items = append(items, feedItem{
			Timestamp: ev.StartTime,
			Kind:      "downtime",
			Summary:   ev.LineName + " downtime",
			Details: map[string]interface{}{
				"line_name":  ev.LineName,
				"start_time": ev.StartTime.Format(timestampLayout),
				"end_time":   ev.EndTime.Format(timestampLayout),
				"reason":     ev.Reason,
				"source":     string(ev.Source),
			},
		})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Timestamp.After(items[j].Timestamp) })
	if len(items) > limit {
		items = items[:limit]
	}

	return dataResult(ctx, map[string]interface{}{"items": items})
}
