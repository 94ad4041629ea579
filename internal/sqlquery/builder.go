// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package sqlquery provides SQL query building utilities shared by the
// detection and downtime repositories. It reduces duplication and provides
// type-safe, parameterized query construction.
package sqlquery

import (
	"fmt"
	"strings"
	"time"
)

// WhereBuilder constructs SQL WHERE clauses with parameterized arguments.
// It ensures consistent parameter handling and reduces SQL injection risk.
//
// Example usage:
//
//	wb := sqlquery.NewWhereBuilder()
//	wb.AddTimeRange("detected_at", start, end)
//	wb.AddStringsIn("line_id", []string{"L1", "L2"})
//	whereClause, args := wb.Build()
//	// WHERE detected_at >= ? AND detected_at <= ? AND line_id IN (?, ?)
type WhereBuilder struct {
	clauses []string
	args    []interface{}
}

// NewWhereBuilder creates a new WhereBuilder instance.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{
		clauses: []string{},
		args:    []interface{}{},
	}
}

// AddClause adds a raw WHERE clause with its arguments. Useful for
// conditions not covered by the typed helpers below (e.g. a cursor
// keyset predicate or a widget-specific JOIN condition).
func (wb *WhereBuilder) AddClause(clause string, args ...interface{}) *WhereBuilder {
	wb.clauses = append(wb.clauses, clause)
	wb.args = append(wb.args, args...)
	return wb
}

// AddTimeRange adds inclusive start/end bounds on the given timestamp
// column. Nil bounds are skipped, allowing open-ended ranges.
func (wb *WhereBuilder) AddTimeRange(column string, start, end *time.Time) *WhereBuilder {
	if start != nil {
		wb.clauses = append(wb.clauses, fmt.Sprintf("%s >= ?", column))
		wb.args = append(wb.args, *start)
	}
	if end != nil {
		wb.clauses = append(wb.clauses, fmt.Sprintf("%s <= ?", column))
		wb.args = append(wb.args, *end)
	}
	return wb
}

// AddTimeOfDayRange adds a shift-of-day predicate using MySQL's TIME()
// function, e.g. for filtering detections to a shift's hours regardless of
// calendar date. The end bound is exclusive, so a detection at exactly the
// shift's end time-of-day belongs to the next shift. When start > end the
// shift wraps past midnight and the predicate is expressed as an OR across
// the wrap boundary.
func (wb *WhereBuilder) AddTimeOfDayRange(column string, start, end string) *WhereBuilder {
	if start == "" || end == "" {
		return wb
	}
	if start <= end {
		wb.clauses = append(wb.clauses, fmt.Sprintf("TIME(%s) >= ? AND TIME(%s) < ?", column, column))
		wb.args = append(wb.args, start, end)
	} else {
		wb.clauses = append(wb.clauses, fmt.Sprintf("(TIME(%s) >= ? OR TIME(%s) < ?)", column, column))
		wb.args = append(wb.args, start, end)
	}
	return wb
}

// AddStringsIn adds an IN clause over a column for a non-empty string
// slice. An empty slice is a no-op, matching "no filter applied".
func (wb *WhereBuilder) AddStringsIn(column string, values []string) *WhereBuilder {
	if len(values) == 0 {
		return wb
	}
	placeholders := make([]string, len(values))
	for i, v := range values {
		placeholders[i] = "?"
		wb.args = append(wb.args, v)
	}
	wb.clauses = append(wb.clauses, fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ", ")))
	return wb
}

// AddIntsIn adds an IN clause over an integer column, e.g. area_id or
// product_id. An empty slice is a no-op.
func (wb *WhereBuilder) AddIntsIn(column string, values []int) *WhereBuilder {
	if len(values) == 0 {
		return wb
	}
	placeholders := make([]string, len(values))
	for i, v := range values {
		placeholders[i] = "?"
		wb.args = append(wb.args, v)
	}
	wb.clauses = append(wb.clauses, fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ", ")))
	return wb
}

// AddNotStringsIn adds a NOT IN clause, used for exclusion filters such as
// "downtime reasons to omit from a chart".
func (wb *WhereBuilder) AddNotStringsIn(column string, values []string) *WhereBuilder {
	if len(values) == 0 {
		return wb
	}
	placeholders := make([]string, len(values))
	for i, v := range values {
		placeholders[i] = "?"
		wb.args = append(wb.args, v)
	}
	wb.clauses = append(wb.clauses, fmt.Sprintf("%s NOT IN (%s)", column, strings.Join(placeholders, ", ")))
	return wb
}

// AddEquals adds a simple equality predicate when value is non-empty.
func (wb *WhereBuilder) AddEquals(column, value string) *WhereBuilder {
	if value == "" {
		return wb
	}
	wb.clauses = append(wb.clauses, fmt.Sprintf("%s = ?", column))
	wb.args = append(wb.args, value)
	return wb
}

// AddMinConfidence adds a lower-bound threshold on a confidence score
// column, skipped when threshold is zero (meaning "no threshold").
func (wb *WhereBuilder) AddMinConfidence(column string, threshold float64) *WhereBuilder {
	if threshold <= 0 {
		return wb
	}
	wb.clauses = append(wb.clauses, fmt.Sprintf("%s >= ?", column))
	wb.args = append(wb.args, threshold)
	return wb
}

// Build constructs the final WHERE clause and returns it with arguments.
// Clauses are joined with "AND". Returns ("1=1", []) if no clauses were
// added, so the result can always be substituted after a literal WHERE.
func (wb *WhereBuilder) Build() (string, []interface{}) {
	if len(wb.clauses) == 0 {
		return "1=1", []interface{}{}
	}
	return strings.Join(wb.clauses, " AND "), wb.args
}

// BuildWithPrefix returns the WHERE clause with a "WHERE " prefix.
func (wb *WhereBuilder) BuildWithPrefix() (string, []interface{}) {
	whereClause, args := wb.Build()
	return "WHERE " + whereClause, args
}

// Count returns the number of clauses added to the builder.
func (wb *WhereBuilder) Count() int {
	return len(wb.clauses)
}

// IsEmpty returns true if no clauses have been added.
func (wb *WhereBuilder) IsEmpty() bool {
	return len(wb.clauses) == 0
}
