// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package sqlquery provides parameterized SQL query-building utilities
// shared by internal/repository's DetectionRepository and
// DowntimeRepository.
//
// # Overview
//
// WhereBuilder provides a fluent interface for constructing WHERE clauses
// with properly parameterized arguments:
//
//	wb := sqlquery.NewWhereBuilder()
//	wb.AddTimeRange("detected_at", filter.Start, filter.End)
//	wb.AddStringsIn("line_id", filter.LineIDs)
//	wb.AddTimeOfDayRange("detected_at", shift.StartTime, shift.EndTime)
//	whereClause, args := wb.Build()
//
//	sql := fmt.Sprintf(`SELECT * FROM detection_line_%s WHERE %s ORDER BY detected_at LIMIT ?`,
//	    tableSuffix, whereClause)
//	args = append(args, pageSize)
//	rows, err := db.QueryContext(ctx, sql, args...)
//
// # SQL Injection Prevention
//
// All value-bearing methods use "?" placeholders bound through
// database/sql; only column names (string literals supplied by the
// calling repository code, never request input) are interpolated directly.
//
// # Thread Safety
//
// WhereBuilder instances are not thread-safe. Create one per query.
package sqlquery
