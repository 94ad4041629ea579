// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package partition

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestGetPartitionHint_WithinTwelveMonths(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	hint := GetPartitionHint(start, end)
	if hint != "PARTITION (p202601, p202602)" {
		t.Errorf("unexpected hint: %q", hint)
	}
}

func TestGetPartitionHint_OverTwelveMonthsIsEmpty(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	if hint := GetPartitionHint(start, end); hint != "" {
		t.Errorf("expected empty hint for >12-month range, got %q", hint)
	}
}

func TestEnsurePartitions_NoExistingPartitionsIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT PARTITION_NAME").
		WillReturnRows(sqlmock.NewRows([]string{"PARTITION_NAME"}))

	m := NewManager(db)
	created, err := m.EnsurePartitions(context.Background(), "detection_line_bolsa25kg", 3, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(created) != 0 {
		t.Errorf("expected no partitions created on an unpartitioned table, got %v", created)
	}
}

func TestEnsurePartitions_ReorganizesPmax(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT PARTITION_NAME").
		WillReturnRows(sqlmock.NewRows([]string{"PARTITION_NAME"}).AddRow("p202512").AddRow("pmax"))
	mock.ExpectExec("ALTER TABLE detection_line_bolsa25kg REORGANIZE PARTITION pmax").
		WillReturnResult(sqlmock.NewResult(0, 0))

	m := NewManager(db)
	created, err := m.EnsurePartitions(context.Background(), "detection_line_bolsa25kg", 0, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(created) != 1 || created[0] != "p202601" {
		t.Errorf("expected [p202601] created, got %v", created)
	}
}

func TestDropOldPartitions_DropsBeforeCutoff(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT PARTITION_NAME").
		WillReturnRows(sqlmock.NewRows([]string{"PARTITION_NAME"}).
			AddRow("p202301").AddRow("p202601").AddRow("pmax"))
	mock.ExpectExec("ALTER TABLE detection_line_bolsa25kg DROP PARTITION p202301").
		WillReturnResult(sqlmock.NewResult(0, 0))

	m := NewManager(db)
	dropped, err := m.DropOldPartitions(context.Background(), "detection_line_bolsa25kg", 24, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dropped) != 1 || dropped[0] != "p202301" {
		t.Errorf("expected [p202301] dropped, got %v", dropped)
	}
}
