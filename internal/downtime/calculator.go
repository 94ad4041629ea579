// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package downtime turns raw detection gaps and DB-recorded downtime
// events into one unified timeline: CalculateGapDowntimes flags
// production stops from consecutive-detection gaps, RemoveOverlapping
// lets operator-confirmed DB records win over calculated guesses, and
// DowntimeService wires both to the repository layer.
package downtime

import (
	"sort"
	"time"

	"github.com/tomtom215/cartographus/internal/enrich"
	"github.com/tomtom215/cartographus/internal/metacache"
)

// Source distinguishes an operator-confirmed DB record from a
// gap-calculated guess.
type Source string

const (
	SourceCalculated Source = "calculated"
	SourceDB         Source = "db"
)

// Event is one downtime window on the unified timeline, whether
// recorded in downtime_events_{line} or inferred from a detection gap.
type Event struct {
	StartTime       time.Time
	EndTime         time.Time
	DurationSeconds float64
	ReasonCode      string
	Reason          string
	LineID          int
	LineName        string
	Source          Source
	IsManual        bool
}

// CalculateGapDowntimes scans detections per line (already sorted by
// detected_at is not assumed; each line's subset is sorted here) and
// emits an Event for every run of consecutive gaps exceeding the
// line's downtime threshold. A new event begins only after a
// below-threshold gap — consecutive above-threshold gaps extend the
// same event. Lines with auto_detect_downtime disabled, or without a
// positive threshold, are skipped. thresholdOverride, when > 0,
// replaces every line's configured threshold (the dashboard's
// downtime_threshold filter).
func CalculateGapDowntimes(detections []enrich.Detection, lineIDs []int, cache *metacache.Cache, thresholdOverride int) []Event {
	if len(detections) == 0 || cache == nil {
		return nil
	}

	byLine := make(map[int][]time.Time)
	for _, d := range detections {
		byLine[d.LineID] = append(byLine[d.LineID], d.DetectedAt)
	}

	var events []Event
	for _, lineID := range lineIDs {
		line, ok, err := cache.GetLine(lineID)
		if err != nil || !ok {
			continue
		}
		if !line.AutoDetectDowntime {
			continue
		}

		threshold := line.DowntimeThreshold
		if thresholdOverride > 0 {
			threshold = thresholdOverride
		}
		if threshold <= 0 {
			continue
		}

		times := byLine[lineID]
		if len(times) < 2 {
			continue
		}
		sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

		var currentStart, currentEnd time.Time
		open := false

		for i := 0; i < len(times)-1; i++ {
			gap := times[i+1].Sub(times[i]).Seconds()
			if gap > float64(threshold) {
				if !open {
					currentStart = times[i]
					open = true
				}
				currentEnd = times[i+1]
			} else if open {
				events = append(events, makeCalculatedEvent(currentStart, currentEnd, lineID, line.LineName))
				open = false
			}
		}
		if open {
			events = append(events, makeCalculatedEvent(currentStart, currentEnd, lineID, line.LineName))
		}
	}

	return events
}

func makeCalculatedEvent(start, end time.Time, lineID int, lineName string) Event {
	return Event{
		StartTime:       start,
		EndTime:         end,
		DurationSeconds: end.Sub(start).Seconds(),
		LineID:          lineID,
		LineName:        lineName,
		Source:          SourceCalculated,
	}
}

// RemoveOverlapping drops calculated events that overlap, on the same
// line, with any DB-recorded event — DB records carry operator-
// confirmed incident data and win on conflict.
func RemoveOverlapping(calculated, db []Event) []Event {
	if len(calculated) == 0 || len(db) == 0 {
		return calculated
	}

	dbByLine := make(map[int][]Event)
	for _, e := range db {
		dbByLine[e.LineID] = append(dbByLine[e.LineID], e)
	}

	out := make([]Event, 0, len(calculated))
	for _, calc := range calculated {
		overlapped := false
		for _, dbEvent := range dbByLine[calc.LineID] {
			if calc.StartTime.Before(dbEvent.EndTime) && calc.EndTime.After(dbEvent.StartTime) {
				overlapped = true
				break
			}
		}
		if !overlapped {
			out = append(out, calc)
		}
	}
	return out
}
