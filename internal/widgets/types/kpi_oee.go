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

type oeeValues struct {
	OEE              float64
	Availability     float64
	Performance      float64
	Quality          float64
	ScheduledMinutes float64
	DowntimeMinutes  float64
}

// KpiOee is the master OEE computation; KpiAvailability, KpiPerformance
// and KpiQuality each project one of its sub-values rather than
// recomputing it.
type KpiOee struct{}

func (KpiOee) Process(ctx *widgets.Context) widgets.Result {
	v, ok := computeOEE(ctx)
	if !ok {
		return emptyResult(ctx)
	}
	return dataResult(ctx, map[string]interface{}{
		"oee":               v.OEE,
		"availability":      v.Availability,
		"performance":       v.Performance,
		"quality":           v.Quality,
		"scheduled_minutes": v.ScheduledMinutes,
		"downtime_minutes":  v.DowntimeMinutes,
	})
}

type KpiAvailability struct{}

func (KpiAvailability) Process(ctx *widgets.Context) widgets.Result {
	v, ok := computeOEE(ctx)
	if !ok {
		return emptyResult(ctx)
	}
	return dataResult(ctx, map[string]interface{}{"value": v.Availability, "unit": "%"})
}

type KpiPerformance struct{}

func (KpiPerformance) Process(ctx *widgets.Context) widgets.Result {
	v, ok := computeOEE(ctx)
	if !ok {
		return emptyResult(ctx)
	}
	return dataResult(ctx, map[string]interface{}{"value": v.Performance, "unit": "%"})
}

type KpiQuality struct{}

func (KpiQuality) Process(ctx *widgets.Context) widgets.Result {
	v, ok := computeOEE(ctx)
	if !ok {
		return emptyResult(ctx)
	}
	return dataResult(ctx, map[string]interface{}{"value": v.Quality, "unit": "%"})
}

// KpiTotalDowntime counts downtime rows and sums their durations.
type KpiTotalDowntime struct{}

func (KpiTotalDowntime) Process(ctx *widgets.Context) widgets.Result {
	if len(ctx.Downtime) == 0 {
		return emptyResult(ctx)
	}
	var totalSeconds float64
	for _, ev := range ctx.Downtime {
		totalSeconds += ev.DurationSeconds
	}
	return dataResult(ctx, map[string]interface{}{
		"count":          len(ctx.Downtime),
		"total_minutes":  sched.Round1(totalSeconds / 60),
	})
}

// computeOEE implements the KpiOee availability/performance/quality math. Returns ok=false when there
// are no detections to compute over, matching the shared empty-input
// convention.
func computeOEE(ctx *widgets.Context) (oeeValues, bool) {
	if len(ctx.Detections) == 0 || ctx.Cache == nil {
		return oeeValues{}, false
	}

	start, end := dateRange(ctx.Cleaned)
	sid := shiftID(ctx.Cleaned)
	schedMin := sched.CalculateScheduledMinutes(ctx.Cache, sid, start, end)

	var downtimeMin float64
	perLineDowntimeMin := make(map[int]float64)
	for _, ev := range ctx.Downtime {
		m := ev.DurationSeconds / 60
		downtimeMin += m
		perLineDowntimeMin[ev.LineID] += m
	}

	var availability float64
	if schedMin > 0 {
		availability = sched.Clamp((schedMin-downtimeMin)/schedMin*100, 0, 100)
	}

	dualSet := make(map[int]bool)
	for _, lid := range sched.LinesWithInputOutput(ctx.Cache, ctx.LineIDs) {
		dualSet[lid] = true
	}

	var dualInput, dualOutput, totalOutput int
	for _, d := range ctx.Detections {
		if d.AreaType == metacache.AreaTypeOutput {
			totalOutput++
		}
		if !dualSet[d.LineID] {
			continue
		}
		switch d.AreaType {
		case metacache.AreaTypeInput:
			dualInput++
		case metacache.AreaTypeOutput:
			dualOutput++
		}
	}

	quality := 100.0
	if len(dualSet) > 0 && dualInput > 0 {
		quality = sched.Clamp(float64(dualOutput)/float64(dualInput)*100, 0, 100)
	}

	var perfDenominator float64
	for _, lineID := range ctx.LineIDs {
		line, ok, err := ctx.Cache.GetLine(lineID)
		if err != nil || !ok {
			continue
		}
		avail := schedMin - perLineDowntimeMin[lineID]
		if avail < 0 {
			avail = 0
		}
		perfDenominator += line.PerformanceUnitsMin * avail
	}

	var performance float64
	if perfDenominator > 0 {
		performance = sched.Clamp(float64(totalOutput)/perfDenominator*100, 0, 100)
	}

	var oee float64
	if availability > 0 && performance > 0 && quality > 0 {
		oee = availability * performance * quality / 10000
	}

	return oeeValues{
		OEE:              sched.Round1(oee),
		Availability:      sched.Round1(availability),
		Performance:      sched.Round1(performance),
		Quality:           sched.Round1(quality),
		ScheduledMinutes:  sched.Round1(schedMin),
		DowntimeMinutes:   sched.Round1(downtimeMin),
	}, true
}
