// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package types

import (
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/cartographus/internal/metacache"
	"github.com/tomtom215/cartographus/internal/tabular"
	"github.com/tomtom215/cartographus/internal/widgets"
	"github.com/tomtom215/cartographus/internal/widgets/sched"
)

// EntryOutputCompareChart contrasts input vs output vs discard volumes
// over the resampled daterange. Input only counts dual-area lines
// (a line with no output area cannot discard anything); output counts
// every queried line.
type EntryOutputCompareChart struct{}

func (EntryOutputCompareChart) Process(ctx *widgets.Context) widgets.Result {
	if len(ctx.Detections) == 0 {
		return emptyResult(ctx)
	}

	start, end := dateRange(ctx.Cleaned)
	interval := intervalFrom(ctx)
	labels := tabular.BuildBucketLabels(start, end, interval)

	dualSet := make(map[int]bool)
	if ctx.Cache != nil {
		for _, lid := range sched.LinesWithInputOutput(ctx.Cache, ctx.LineIDs) {
			dualSet[lid] = true
		}
	}

	inputByBucket := make(map[time.Time]int, len(labels))
	outputByBucket := make(map[time.Time]int, len(labels))
	for _, l := range labels {
		inputByBucket[l] = 0
		outputByBucket[l] = 0
	}

	var totalInput, totalOutput int
	for _, d := range ctx.Detections {
		b := tabular.BucketStart(d.DetectedAt, interval)
		switch d.AreaType {
		case metacache.AreaTypeInput:
			if dualSet[d.LineID] {
				if _, ok := inputByBucket[b]; ok {
					inputByBucket[b]++
					totalInput++
				}
			}
		case metacache.AreaTypeOutput:
			if _, ok := outputByBucket[b]; ok {
				outputByBucket[b]++
				totalOutput++
			}
		}
	}

	sid := shiftID(ctx.Cleaned)
	var shift metacache.Shift
	narrowToShift := false
	if sid != 0 && ctx.Cache != nil {
		if s, ok, err := ctx.Cache.GetShift(sid); err == nil && ok {
			shift = s
			narrowToShift = true
		}
	}

	var filteredLabels []time.Time
	input := make([]int, 0, len(labels))
	output := make([]int, 0, len(labels))
	discard := make([]int, 0, len(labels))
	var totalDiscard int
	for _, l := range labels {
		if narrowToShift && !withinShiftWindow(l, shift) {
			continue
		}
		in := inputByBucket[l]
		out := outputByBucket[l]
		d := in - out
		if d < 0 {
			d = 0
		}
		filteredLabels = append(filteredLabels, l)
		input = append(input, in)
		output = append(output, out)
		discard = append(discard, d)
		totalDiscard += d
	}

	data := map[string]interface{}{
		"labels": sched.FormatTimeLabels(filteredLabels, interval),
		"datasets": []dataset{
			{Label: "Entrada", Data: input, Color: sched.PaletteColor(0)},
			{Label: "Salida", Data: output, Color: sched.PaletteColor(1)},
			{Label: "Descarte", Data: discard, Color: sched.PaletteColor(2)},
		},
		"summary": map[string]interface{}{
			"total_input":   totalInput,
			"total_output":  totalOutput,
			"total_discard": totalDiscard,
		},
	}

	return dataResult(ctx, data)
}

// withinShiftWindow reports whether t's time-of-day falls inside shift's
// local window, handling overnight wraparound.
func withinShiftWindow(t time.Time, shift metacache.Shift) bool {
	startM, ok1 := toMinutesOfDay(shift.StartTime)
	endM, ok2 := toMinutesOfDay(shift.EndTime)
	if !ok1 || !ok2 {
		return true
	}
	tm := t.Hour()*60 + t.Minute()
	if shift.IsOvernight || endM <= startM {
		return tm >= startM || tm <= endM
	}
	return tm >= startM && tm <= endM
}

func toMinutesOfDay(hhmmss string) (int, bool) {
	parts := strings.Split(hhmmss, ":")
	if len(parts) < 2 {
		return 0, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0, false
	}
	return h*60 + m, true
}
