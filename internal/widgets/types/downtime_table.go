// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package types

import (
	"github.com/tomtom215/cartographus/internal/widgets"
	"github.com/tomtom215/cartographus/internal/widgets/sched"
)

const timestampLayout = "2006-01-02 15:04:05"

// DowntimeTable lists every downtime event with its resolved
// incident/failure chain, most recent first.
type DowntimeTable struct{}

func (DowntimeTable) Process(ctx *widgets.Context) widgets.Result {
	if len(ctx.Downtime) == 0 {
		return emptyResult(ctx)
	}

	rows := make([]map[string]interface{}, 0, len(ctx.Downtime))
	for _, ev := range ctx.Downtime {
		incidentCode := ev.ReasonCode
		incidentDesc := ev.Reason
		failureType := ""
		failureDesc := ""

		if ctx.Cache != nil {
			if inc, ok, err := ctx.Cache.GetIncidentByCode(ev.ReasonCode); err == nil && ok {
				incidentDesc = inc.Description
				if f, ok, err := ctx.Cache.GetFailure(inc.FailureID); err == nil && ok {
					failureType = f.TypeFailure
					failureDesc = f.Description
				}
			}
		}

		rows = append(rows, map[string]interface{}{
			"line_name":          ev.LineName,
			"start_time":         ev.StartTime.Format(timestampLayout),
			"end_time":           ev.EndTime.Format(timestampLayout),
			"duration_min":       sched.Round1(ev.DurationSeconds / 60),
			"incident_code":      incidentCode,
			"incident_description": incidentDesc,
			"failure_type":       failureType,
			"failure_description": failureDesc,
			"is_manual":          ev.IsManual,
			"source":             string(ev.Source),
		})
	}

	return dataResult(ctx, map[string]interface{}{"rows": rows})
}
