// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package types

import (
	"time"

	"github.com/tomtom215/cartographus/internal/metacache"
	"github.com/tomtom215/cartographus/internal/widgets"
)

const activeWindow = 10 * time.Minute

// LineStatusIndicator reports per-line activity: total and output
// counts, the last detection time, and a coarse status.
type LineStatusIndicator struct{}

func (LineStatusIndicator) Process(ctx *widgets.Context) widgets.Result {
	if len(ctx.LineIDs) == 0 {
		return emptyResult(ctx)
	}

	type lineStats struct {
		count, output int
		lastSeen      time.Time
	}
	byLine := make(map[int]*lineStats)
	for _, d := range ctx.Detections {
		st, ok := byLine[d.LineID]
		if !ok {
			st = &lineStats{}
			byLine[d.LineID] = st
		}
		st.count++
		if d.AreaType == metacache.AreaTypeOutput {
			st.output++
		}
		if d.DetectedAt.After(st.lastSeen) {
			st.lastSeen = d.DetectedAt
		}
	}

	now := time.Now().UTC()
	rows := make([]map[string]interface{}, 0, len(ctx.LineIDs))
	for _, lineID := range ctx.LineIDs {
		lineName := ""
		if ctx.Cache != nil {
			if line, ok, err := ctx.Cache.GetLine(lineID); err == nil && ok {
				lineName = line.LineName
			}
		}

		st, ok := byLine[lineID]
		status := "no_data"
		var lastSeen interface{}
		count, output := 0, 0
		if ok {
			count, output = st.count, st.output
			lastSeen = st.lastSeen.Format(timestampLayout)
			if now.Sub(st.lastSeen) < activeWindow {
				status = "active"
			} else {
				status = "idle"
			}
		}

		rows = append(rows, map[string]interface{}{
			"line_id":        lineID,
			"line_name":      lineName,
			"count":          count,
			"output_count":   output,
			"last_detection": lastSeen,
			"status":         status,
		})
	}

	return dataResult(ctx, map[string]interface{}{"lines": rows})
}
