// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package tabular is the column-oriented data model the request pipeline
// shares from repository fetch through enrichment to widget processing:
// a DetectionRow slice plus the group-by/resample/count primitives every
// widget processor builds on, implemented once instead of per widget.
package tabular

import "time"

// DetectionRow is one raw detection row as read from a
// detection_line_{name} table, before enrichment.
type DetectionRow struct {
	DetectionID int64
	DetectedAt  time.Time
	AreaID      int
	ProductID   int
	LineID      int // populated by FetchDetectionsMultiLine, 0 for single-line fetches
}

// DetectionSet is a column-oriented batch of detection rows. Methods are
// read-only; every transform returns a new DetectionSet.
type DetectionSet struct {
	Rows []DetectionRow
}

// NewDetectionSet wraps rows.
func NewDetectionSet(rows []DetectionRow) DetectionSet {
	return DetectionSet{Rows: rows}
}

// Len returns the number of rows.
func (d DetectionSet) Len() int { return len(d.Rows) }

// Empty reports whether the set has no rows.
func (d DetectionSet) Empty() bool { return len(d.Rows) == 0 }

// Filter returns the subset of rows for which keep returns true.
func (d DetectionSet) Filter(keep func(DetectionRow) bool) DetectionSet {
	out := make([]DetectionRow, 0, len(d.Rows))
	for _, r := range d.Rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return DetectionSet{Rows: out}
}

// MaxDetectionID returns the largest detection_id in the set, or 0 if
// empty. Used by the repository's cursor-pagination loop.
func (d DetectionSet) MaxDetectionID() int64 {
	var max int64
	for _, r := range d.Rows {
		if r.DetectionID > max {
			max = r.DetectionID
		}
	}
	return max
}

// Concat appends other's rows to a copy of d's rows.
func (d DetectionSet) Concat(other DetectionSet) DetectionSet {
	out := make([]DetectionRow, 0, len(d.Rows)+len(other.Rows))
	out = append(out, d.Rows...)
	out = append(out, other.Rows...)
	return DetectionSet{Rows: out}
}

// WithLineID returns a copy of d with every row's LineID set.
func (d DetectionSet) WithLineID(lineID int) DetectionSet {
	out := make([]DetectionRow, len(d.Rows))
	for i, r := range d.Rows {
		r.LineID = lineID
		out[i] = r
	}
	return DetectionSet{Rows: out}
}
