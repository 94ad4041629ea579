// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package tabular

import "time"

// DowntimeRow is one recorded downtime event as read from a
// downtime_events_{line} table, before enrichment.
type DowntimeRow struct {
	EventID          int64
	LastDetectionID  int64
	StartTime        time.Time
	EndTime          time.Time
	DurationSeconds  int64
	ReasonCode       string
	Reason           string
	IsManual         bool
	CreatedAt        time.Time
	LineID           int // populated by FetchDowntimeMultiLine, 0 for single-line fetches
}

// DowntimeSet is a column-oriented batch of downtime events.
type DowntimeSet struct {
	Rows []DowntimeRow
}

// NewDowntimeSet wraps rows.
func NewDowntimeSet(rows []DowntimeRow) DowntimeSet {
	return DowntimeSet{Rows: rows}
}

func (d DowntimeSet) Len() int   { return len(d.Rows) }
func (d DowntimeSet) Empty() bool { return len(d.Rows) == 0 }

// MaxEventID returns the largest event_id in the set, or 0 if empty.
func (d DowntimeSet) MaxEventID() int64 {
	var max int64
	for _, r := range d.Rows {
		if r.EventID > max {
			max = r.EventID
		}
	}
	return max
}

// Concat appends other's rows to a copy of d's rows.
func (d DowntimeSet) Concat(other DowntimeSet) DowntimeSet {
	out := make([]DowntimeRow, 0, len(d.Rows)+len(other.Rows))
	out = append(out, d.Rows...)
	out = append(out, other.Rows...)
	return DowntimeSet{Rows: out}
}

// WithLineID returns a copy of d with every row's LineID set.
func (d DowntimeSet) WithLineID(lineID int) DowntimeSet {
	out := make([]DowntimeRow, len(d.Rows))
	for i, r := range d.Rows {
		r.LineID = lineID
		out[i] = r
	}
	return DowntimeSet{Rows: out}
}

// TotalDuration sums DurationSeconds across every row.
func (d DowntimeSet) TotalDuration() int64 {
	var total int64
	for _, r := range d.Rows {
		total += r.DurationSeconds
	}
	return total
}
