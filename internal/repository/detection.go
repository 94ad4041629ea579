// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package repository executes the cursor-paginated detection and
// downtime queries against a tenant's per-line tables, returning
// tabular.DetectionSet / DowntimeSet batches. Enrichment happens one
// layer up, in internal/enrich; this package reads the metadata cache
// only to resolve a shift_id filter to its time-of-day bounds.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/cartographus/internal/logging"
	"github.com/tomtom215/cartographus/internal/metacache"
	"github.com/tomtom215/cartographus/internal/metrics"
	"github.com/tomtom215/cartographus/internal/resolve"
	"github.com/tomtom215/cartographus/internal/sqlquery"
	"github.com/tomtom215/cartographus/internal/tabular"
)

// DetectionBatchSize and DetectionMaxRows bound the cursor-pagination
// loop in FetchDetections: 500k rows per page, 2M rows total per table.
const (
	DetectionBatchSize = 500_000
	DetectionMaxRows   = 2_000_000
)

// mysqlTableNotFound is MySQL error 1146 ("table doesn't exist").
const mysqlTableNotFound = "Error 1146"

// DetectionRepository runs parameterized SELECTs against
// detection_line_{name} tables.
type DetectionRepository struct {
	db     *sql.DB
	tables *resolve.TableResolver
	cache  *metacache.Cache
}

// NewDetectionRepository returns a DetectionRepository reading through db.
// cache resolves shift_id filters to time-of-day bounds.
func NewDetectionRepository(db *sql.DB, tables *resolve.TableResolver, cache *metacache.Cache) *DetectionRepository {
	return &DetectionRepository{db: db, tables: tables, cache: cache}
}

// FetchDetections pages through tableName in DetectionBatchSize batches,
// bounded by DetectionMaxRows, ordered by detection_id. A missing table
// (MySQL 1146) or any other query error is logged and treated as empty,
// matching the "errors on one line are logged and skipped" contract.
func (r *DetectionRepository) FetchDetections(ctx context.Context, tableName string, cleaned map[string]interface{}, partitionHint string) tabular.DetectionSet {
	var rows []tabular.DetectionRow
	cursorID := int64(0)
	fetched := 0

	for fetched < DetectionMaxRows {
		remaining := DetectionMaxRows - fetched
		batchLimit := DetectionBatchSize
		if remaining < batchLimit {
			batchLimit = remaining
		}

		batch, err := r.fetchBatch(ctx, tableName, cleaned, partitionHint, cursorID, batchLimit)
		if err != nil {
			if isTableNotFound(err) {
				logging.Ctx(ctx).Warn().Str("table", tableName).Msg("detection table not found, treating as empty")
			} else {
				logging.Ctx(ctx).Error().Err(err).Str("table", tableName).Msg("detection query failed")
			}
			break
		}
		if len(batch) == 0 {
			break
		}

		rows = append(rows, batch...)
		cursorID = tabular.NewDetectionSet(batch).MaxDetectionID()
		fetched += len(batch)

		if len(batch) < batchLimit {
			break
		}
	}

	return tabular.NewDetectionSet(rows)
}

func (r *DetectionRepository) fetchBatch(ctx context.Context, tableName string, cleaned map[string]interface{}, partitionHint string, cursorID int64, limit int) ([]tabular.DetectionRow, error) {
	wb := sqlquery.NewWhereBuilder()
	wb.AddClause("detection_id > ?", cursorID)
	applyCleanedFilters(wb, cleaned, "detected_at", r.cache)
	where, args := wb.Build()

	table := tableName
	if partitionHint != "" {
		table = fmt.Sprintf("%s %s", tableName, partitionHint)
	}

	query := fmt.Sprintf(
		"SELECT detection_id, detected_at, area_id, product_id FROM %s WHERE %s ORDER BY detection_id LIMIT ?",
		table, where,
	)
	args = append(args, limit)

	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		metrics.RecordDBQuery("SELECT", tableName, time.Since(start), err)
		return nil, err
	}
	defer rows.Close()

	var out []tabular.DetectionRow
	for rows.Next() {
		var d tabular.DetectionRow
		if err := rows.Scan(&d.DetectionID, &d.DetectedAt, &d.AreaID, &d.ProductID); err != nil {
			metrics.RecordDBQuery("SELECT", tableName, time.Since(start), err)
			return nil, err
		}
		out = append(out, d)
	}
	err = rows.Err()
	metrics.RecordDBQuery("SELECT", tableName, time.Since(start), err)
	return out, err
}

// CountDetections returns COUNT(*) for tableName under the same filters,
// without cursor or ORDER BY.
func (r *DetectionRepository) CountDetections(ctx context.Context, tableName string, cleaned map[string]interface{}, partitionHint string) (int64, error) {
	wb := sqlquery.NewWhereBuilder()
	applyCleanedFilters(wb, cleaned, "detected_at", r.cache)
	where, args := wb.Build()

	table := tableName
	if partitionHint != "" {
		table = fmt.Sprintf("%s %s", tableName, partitionHint)
	}

	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", table, where)
	var count int64
	start := time.Now()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&count)
	metrics.RecordDBQuery("COUNT", tableName, time.Since(start), err)
	if err != nil {
		if isTableNotFound(err) {
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}

// FetchDetectionsMultiLine fetches and concatenates detections across
// lineIDs concurrently, tagging each row with its source line_id.
// Concurrency is bounded by errgroup.SetLimit so a wide line-group
// query can't open unbounded connections against the minimal-pooling
// tenant DB.
func (r *DetectionRepository) FetchDetectionsMultiLine(ctx context.Context, lineIDs []int, cleaned map[string]interface{}, partitionHint string) tabular.DetectionSet {
	results := make([]tabular.DetectionSet, len(lineIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for i, lineID := range lineIDs {
		i, lineID := i, lineID
		g.Go(func() error {
			tableName := r.tables.DetectionTable(lineID)
			if tableName == "" {
				logging.Ctx(gctx).Warn().Int("line_id", lineID).Msg("no detection table for line, line not in cache")
				return nil
			}
			set := r.FetchDetections(gctx, tableName, cleaned, partitionHint)
			results[i] = set.WithLineID(lineID)
			return nil
		})
	}
	// Errors are handled per-line inside FetchDetections; Wait only
	// propagates context cancellation.
	_ = g.Wait()

	var combined tabular.DetectionSet
	for _, set := range results {
		combined = combined.Concat(set)
	}
	return combined
}

func isTableNotFound(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, mysqlTableNotFound) || strings.Contains(msg, "doesn't exist")
}
