// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package partition manages monthly RANGE partitions on the per-line
// detection and downtime tables. The application consumes those tables
// — it never creates them — so every operation here is a no-op against
// a table the DBA hasn't already partitioned.
package partition

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/cartographus/internal/logging"
)

// Manager adds, drops and hints monthly RANGE partitions named
// p{YYYYMM}, with an optional pmax catch-all.
type Manager struct {
	db *sql.DB
}

// NewManager returns a Manager bound to a tenant database connection.
func NewManager(db *sql.DB) *Manager {
	return &Manager{db: db}
}

// GetExistingPartitions lists a table's partition names via
// INFORMATION_SCHEMA.PARTITIONS, empty when the table isn't partitioned
// (or doesn't exist).
func (m *Manager) GetExistingPartitions(ctx context.Context, tableName string) ([]string, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT PARTITION_NAME
		FROM INFORMATION_SCHEMA.PARTITIONS
		WHERE TABLE_SCHEMA = DATABASE()
		  AND TABLE_NAME = ?
		  AND PARTITION_NAME IS NOT NULL
		ORDER BY PARTITION_ORDINAL_POSITION`, tableName)
	if err != nil {
		return nil, fmt.Errorf("partition: list %s: %w", tableName, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// EnsurePartitions guarantees monthly partitions exist from
// referenceDate's month through monthsAhead months forward. No-op if
// the table carries no partitions yet. Returns the names created.
func (m *Manager) EnsurePartitions(ctx context.Context, tableName string, monthsAhead int, referenceDate time.Time) ([]string, error) {
	existing, err := m.GetExistingPartitions(ctx, tableName)
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		logging.Warn().Str("table", tableName).Msg("partition: table has no partitions, cannot ensure; DBA must partition it first")
		return nil, nil
	}

	existingSet := make(map[string]bool, len(existing))
	hasPmax := false
	for _, n := range existing {
		existingSet[n] = true
		if n == "pmax" {
			hasPmax = true
		}
	}

	var created []string
	for _, p := range partitionsForRange(referenceDate, monthsAhead) {
		if existingSet[p.name] {
			continue
		}
		var stmtErr error
		if hasPmax {
			stmtErr = m.reorganizePmax(ctx, tableName, p.name, p.boundary)
		} else {
			stmtErr = m.addPartition(ctx, tableName, p.name, p.boundary)
		}
		if stmtErr != nil {
			return created, stmtErr
		}
		created = append(created, p.name)
		logging.Info().Str("table", tableName).Str("partition", p.name).Msg("partition: created")
	}
	return created, nil
}

// DropOldPartitions drops every p{YYYYMM} partition older than
// retentionMonths relative to referenceDate, leaving pmax untouched.
func (m *Manager) DropOldPartitions(ctx context.Context, tableName string, retentionMonths int, referenceDate time.Time) ([]string, error) {
	cutoff := yyyymm(time.Date(referenceDate.Year(), referenceDate.Month()-time.Month(retentionMonths), 1, 0, 0, 0, 0, time.UTC))

	existing, err := m.GetExistingPartitions(ctx, tableName)
	if err != nil {
		return nil, err
	}

	var dropped []string
	for _, name := range existing {
		if name == "pmax" {
			continue
		}
		val, ok := parsePartitionName(name)
		if !ok {
			continue
		}
		if val < cutoff {
			if err := m.dropPartition(ctx, tableName, name); err != nil {
				return dropped, err
			}
			dropped = append(dropped, name)
			logging.Info().Str("table", tableName).Str("partition", name).Msg("partition: dropped (past retention)")
		}
	}
	return dropped, nil
}

// GetPartitionHint returns a "PARTITION (p202601, p202602, ...)" clause
// for [start,end], or "" when the range spans more than 12 months.
func GetPartitionHint(start, end time.Time) string {
	names := partitionNamesForRange(start, end)
	if len(names) == 0 || len(names) > 12 {
		return ""
	}
	return fmt.Sprintf("PARTITION (%s)", strings.Join(names, ", "))
}

type partitionSpec struct {
	name     string
	boundary int
}

func partitionsForRange(ref time.Time, monthsAhead int) []partitionSpec {
	var out []partitionSpec
	current := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i <= monthsAhead; i++ {
		next := current.AddDate(0, 1, 0)
		out = append(out, partitionSpec{
			name:     partitionName(current),
			boundary: yyyymm(next),
		})
		current = next
	}
	return out
}

func partitionNamesForRange(start, end time.Time) []string {
	var names []string
	current := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	endMonth := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !current.After(endMonth) {
		names = append(names, partitionName(current))
		current = current.AddDate(0, 1, 0)
	}
	return names
}

func partitionName(t time.Time) string {
	return fmt.Sprintf("p%04d%02d", t.Year(), int(t.Month()))
}

func parsePartitionName(name string) (int, bool) {
	trimmed := strings.TrimPrefix(name, "p")
	v, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, false
	}
	return v, true
}

func yyyymm(t time.Time) int {
	return t.Year()*100 + int(t.Month())
}

func normalizeYYYYMM(v int) int {
	year := v / 100
	month := v % 100
	if month <= 0 {
		year--
		month += 12
	}
	return year*100 + month
}

func (m *Manager) reorganizePmax(ctx context.Context, tableName, partName string, boundary int) error {
	stmt := fmt.Sprintf(
		"ALTER TABLE %s REORGANIZE PARTITION pmax INTO (PARTITION %s VALUES LESS THAN (%d), PARTITION pmax VALUES LESS THAN MAXVALUE)",
		tableName, partName, boundary,
	)
	_, err := m.db.ExecContext(ctx, stmt)
	return err
}

func (m *Manager) addPartition(ctx context.Context, tableName, partName string, boundary int) error {
	stmt := fmt.Sprintf("ALTER TABLE %s ADD PARTITION (PARTITION %s VALUES LESS THAN (%d))", tableName, partName, boundary)
	_, err := m.db.ExecContext(ctx, stmt)
	return err
}

func (m *Manager) dropPartition(ctx context.Context, tableName, partName string) error {
	stmt := fmt.Sprintf("ALTER TABLE %s DROP PARTITION %s", tableName, partName)
	_, err := m.db.ExecContext(ctx, stmt)
	return err
}
