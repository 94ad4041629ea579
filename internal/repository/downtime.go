// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/cartographus/internal/logging"
	"github.com/tomtom215/cartographus/internal/metacache"
	"github.com/tomtom215/cartographus/internal/metrics"
	"github.com/tomtom215/cartographus/internal/resolve"
	"github.com/tomtom215/cartographus/internal/sqlquery"
	"github.com/tomtom215/cartographus/internal/tabular"
)

// DowntimeBatchSize and DowntimeMaxRows bound the cursor-pagination loop
// in FetchDowntime: 10k rows per page, 100k rows total per table. Smaller
// than the detection caps since downtime events are far less frequent.
const (
	DowntimeBatchSize = 10_000
	DowntimeMaxRows   = 100_000
)

// DowntimeRepository runs parameterized SELECTs against
// downtime_events_{name} tables. Only daterange and shift filters apply;
// downtime events carry no area_id/product_id columns.
type DowntimeRepository struct {
	db     *sql.DB
	tables *resolve.TableResolver
	cache  *metacache.Cache
}

// NewDowntimeRepository returns a DowntimeRepository reading through db.
func NewDowntimeRepository(db *sql.DB, tables *resolve.TableResolver, cache *metacache.Cache) *DowntimeRepository {
	return &DowntimeRepository{db: db, tables: tables, cache: cache}
}

// FetchDowntime pages through tableName in DowntimeBatchSize batches,
// bounded by DowntimeMaxRows, ordered by event_id. A missing table or any
// other query error is logged and treated as empty.
func (r *DowntimeRepository) FetchDowntime(ctx context.Context, tableName string, cleaned map[string]interface{}) tabular.DowntimeSet {
	var rows []tabular.DowntimeRow
	cursorID := int64(0)
	fetched := 0

	for fetched < DowntimeMaxRows {
		remaining := DowntimeMaxRows - fetched
		batchLimit := DowntimeBatchSize
		if remaining < batchLimit {
			batchLimit = remaining
		}

		batch, err := r.fetchBatch(ctx, tableName, cleaned, cursorID, batchLimit)
		if err != nil {
			if isTableNotFound(err) {
				logging.Ctx(ctx).Warn().Str("table", tableName).Msg("downtime table not found, treating as empty")
			} else {
				logging.Ctx(ctx).Error().Err(err).Str("table", tableName).Msg("downtime query failed")
			}
			break
		}
		if len(batch) == 0 {
			break
		}

		rows = append(rows, batch...)
		cursorID = tabular.NewDowntimeSet(batch).MaxEventID()
		fetched += len(batch)

		if len(batch) < batchLimit {
			break
		}
	}

	return tabular.NewDowntimeSet(rows)
}

func (r *DowntimeRepository) fetchBatch(ctx context.Context, tableName string, cleaned map[string]interface{}, cursorID int64, limit int) ([]tabular.DowntimeRow, error) {
	wb := sqlquery.NewWhereBuilder()
	wb.AddClause("event_id > ?", cursorID)
	applyDowntimeFilters(wb, cleaned, "start_time", r.cache)
	where, args := wb.Build()

	query := fmt.Sprintf(
		"SELECT event_id, last_detection_id, start_time, end_time, duration_seconds, reason_code, reason, is_manual, created_at "+
			"FROM %s WHERE %s ORDER BY event_id LIMIT ?",
		tableName, where,
	)
	args = append(args, limit)

	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		metrics.RecordDBQuery("SELECT", tableName, time.Since(start), err)
		return nil, err
	}
	defer rows.Close()

	var out []tabular.DowntimeRow
	for rows.Next() {
		var d tabular.DowntimeRow
		if err := rows.Scan(&d.EventID, &d.LastDetectionID, &d.StartTime, &d.EndTime, &d.DurationSeconds, &d.ReasonCode, &d.Reason, &d.IsManual, &d.CreatedAt); err != nil {
			metrics.RecordDBQuery("SELECT", tableName, time.Since(start), err)
			return nil, err
		}
		out = append(out, d)
	}
	err = rows.Err()
	metrics.RecordDBQuery("SELECT", tableName, time.Since(start), err)
	return out, err
}

// FetchDowntimeMultiLine fetches and concatenates downtime events across
// lineIDs concurrently, tagging each row with its source line_id.
func (r *DowntimeRepository) FetchDowntimeMultiLine(ctx context.Context, lineIDs []int, cleaned map[string]interface{}) tabular.DowntimeSet {
	results := make([]tabular.DowntimeSet, len(lineIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for i, lineID := range lineIDs {
		i, lineID := i, lineID
		g.Go(func() error {
			tableName := r.tables.DowntimeTable(lineID)
			if tableName == "" {
				logging.Ctx(gctx).Warn().Int("line_id", lineID).Msg("no downtime table for line, line not in cache")
				return nil
			}
			set := r.FetchDowntime(gctx, tableName, cleaned)
			results[i] = set.WithLineID(lineID)
			return nil
		})
	}
	_ = g.Wait()

	var combined tabular.DowntimeSet
	for _, set := range results {
		combined = combined.Concat(set)
	}
	return combined
}
