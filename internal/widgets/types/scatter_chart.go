// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package types

import (
	"fmt"

	"github.com/tomtom215/cartographus/internal/downtime"
	"github.com/tomtom215/cartographus/internal/widgets"
)

type scatterPoint struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Tooltip string  `json:"tooltip"`
}

// ScatterChart plots each downtime event's time-of-day against its
// duration, split into "with incident" (DB-recorded) and "gap-detected"
// (calculated) series.
type ScatterChart struct{}

func (ScatterChart) Process(ctx *widgets.Context) widgets.Result {
	if len(ctx.Downtime) == 0 {
		return emptyResult(ctx)
	}

	var withIncident, gapDetected []scatterPoint
	for _, ev := range ctx.Downtime {
		x := float64(ev.StartTime.Hour()) + float64(ev.StartTime.Minute())/60
		y := ev.DurationSeconds / 60
		tooltip := fmt.Sprintf("%s: %.1f min", ev.LineName, y)
		p := scatterPoint{X: x, Y: y, Tooltip: tooltip}
		if ev.Source == downtime.SourceDB {
			withIncident = append(withIncident, p)
		} else {
			gapDetected = append(gapDetected, p)
		}
	}

	return dataResult(ctx, map[string]interface{}{
		"datasets": []map[string]interface{}{
			{"label": "Con incidente", "data": withIncident},
			{"label": "Detectado por vacío", "data": gapDetected},
		},
	})
}
