// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package sched holds scheduling math and presentation helpers shared by
// several widget processors: scheduled-minutes calculation, time-label
// formatting, interval frequency mapping, and the fallback color
// palette. No widget-specific logic lives here.
package sched

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/cartographus/internal/metacache"
	"github.com/tomtom215/cartographus/internal/tabular"
)

// CalculateScheduledMinutes returns the total scheduled production time
// in minutes over the queried daterange. When shiftID is non-zero, only
// that shift's daily duration counts; otherwise every active shift's
// duration is summed. The per-day total is multiplied by the number of
// calendar days spanned by [start,end] (minimum 1).
func CalculateScheduledMinutes(cache *metacache.Cache, shiftID int, start, end time.Time) float64 {
	shifts, err := cache.GetShifts()
	if err != nil {
		return 0
	}

	var selected []metacache.Shift
	if shiftID != 0 {
		s, ok := shifts[shiftID]
		if !ok {
			return 0
		}
		selected = []metacache.Shift{s}
	} else {
		for _, s := range shifts {
			selected = append(selected, s)
		}
	}
	if len(selected) == 0 {
		return 0
	}

	var daily float64
	for _, s := range selected {
		daily += ShiftDurationMinutes(s)
	}
	if daily <= 0 {
		return 0
	}

	days := CountDays(start, end)
	if days < 1 {
		days = 1
	}
	return daily * float64(days)
}

// ShiftDurationMinutes returns one shift's daily duration in minutes,
// accounting for overnight wraparound.
func ShiftDurationMinutes(s metacache.Shift) float64 {
	startM, ok1 := toMinutes(s.StartTime)
	endM, ok2 := toMinutes(s.EndTime)
	if !ok1 || !ok2 {
		return 0
	}
	if s.IsOvernight || endM <= startM {
		return (24*60 - startM) + endM
	}
	return endM - startM
}

func toMinutes(hhmmss string) (float64, bool) {
	parts := strings.Split(hhmmss, ":")
	if len(parts) < 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	return float64(h*60 + m), true
}

// CountDays returns the number of calendar days spanned by [start,end],
// inclusive, minimum 1.
func CountDays(start, end time.Time) int {
	if end.Before(start) {
		return 1
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

// LinesWithInputOutput filters lineIDs down to lines that have both an
// input and an output area configured, the precondition for quality and
// discard (descarte) calculations.
func LinesWithInputOutput(cache *metacache.Cache, lineIDs []int) []int {
	var out []int
	for _, lid := range lineIDs {
		areas, err := cache.GetAreasByLine(lid)
		if err != nil {
			continue
		}
		hasInput, hasOutput := false, false
		for _, a := range areas {
			switch a.AreaType {
			case metacache.AreaTypeInput:
				hasInput = true
			case metacache.AreaTypeOutput:
				hasOutput = true
			}
		}
		if hasInput && hasOutput {
			out = append(out, lid)
		}
	}
	return out
}

// timeLabelFormats mirrors the per-interval Go reference-time layout
// used to render chart x-axis labels.
var timeLabelFormats = map[tabular.Interval]string{
	tabular.IntervalMinute:     "15:04",
	tabular.IntervalFifteenMin: "02/01 15:04",
	tabular.IntervalHour:       "02/01 15:04",
	tabular.IntervalDay:        "02/01/2006",
	tabular.IntervalWeek:       "Sem 02/01",
	tabular.IntervalMonth:      "Jan 2006",
}

// FormatTimeLabels renders bucket start timestamps into human-readable
// x-axis labels for the given interval.
func FormatTimeLabels(labels []time.Time, interval tabular.Interval) []string {
	layout, ok := timeLabelFormats[interval]
	if !ok {
		layout = "02/01 15:04"
	}
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = l.Format(layout)
	}
	return out
}

// FallbackPalette is the default chart color cycle used when a product
// has no configured product_color.
var FallbackPalette = []string{
	"#3b82f6", "#22c55e", "#ef4444", "#f59e0b",
	"#8b5cf6", "#ec4899", "#14b8a6", "#f97316",
}

// PaletteColor returns a deterministic fallback color for the i-th
// series, cycling through FallbackPalette.
func PaletteColor(i int) string {
	if len(FallbackPalette) == 0 {
		return "#3b82f6"
	}
	return FallbackPalette[i%len(FallbackPalette)]
}

// Alpha converts a "#RRGGBB" color into an "rgba(r,g,b,a)" string, used
// for chart fill colors under their line colors.
func Alpha(hexColor string, a float64) string {
	h := strings.TrimPrefix(hexColor, "#")
	if len(h) != 6 {
		return fmt.Sprintf("rgba(100,100,100,%.2f)", a)
	}
	r, err1 := strconv.ParseInt(h[0:2], 16, 32)
	g, err2 := strconv.ParseInt(h[2:4], 16, 32)
	b, err3 := strconv.ParseInt(h[4:6], 16, 32)
	if err1 != nil || err2 != nil || err3 != nil {
		return fmt.Sprintf("rgba(100,100,100,%.2f)", a)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%.2f)", r, g, b, a)
}

// FindNearestLabelIndex returns the index into labels whose timestamp is
// closest to target, clamped to the label range.
func FindNearestLabelIndex(labels []time.Time, target time.Time) int {
	if len(labels) == 0 {
		return 0
	}
	if !target.After(labels[0]) {
		return 0
	}
	if !target.Before(labels[len(labels)-1]) {
		return len(labels) - 1
	}
	best := 0
	bestDiff := absDuration(target.Sub(labels[0]))
	for i, l := range labels {
		d := absDuration(target.Sub(l))
		if d < bestDiff {
			bestDiff = d
			best = i
		}
	}
	return best
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Round1 rounds v to 1 decimal place, matching the spec's KPI rounding.
func Round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
