// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package metrics

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		table     string
		duration  time.Duration
		err       error
	}{
		{name: "successful SELECT", operation: "SELECT", table: "detection_line_packaging", duration: 10 * time.Millisecond},
		{name: "failed query short error", operation: "SELECT", table: "downtime_line_packaging", duration: 100 * time.Millisecond, err: errors.New("connection refused")},
		{name: "failed query long error truncates", operation: "SELECT", table: "downtime_line_packaging", duration: 50 * time.Millisecond, err: errors.New(strings.Repeat("x", 100))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(DBQueryErrors.WithLabelValues(tt.operation, tt.table, errLabel(tt.err)))
			RecordDBQuery(tt.operation, tt.table, tt.duration, tt.err)
			if tt.err != nil {
				after := testutil.ToFloat64(DBQueryErrors.WithLabelValues(tt.operation, tt.table, errLabel(tt.err)))
				if after != before+1 {
					t.Errorf("expected error counter to increment, before=%v after=%v", before, after)
				}
			}
		})
	}
}

// errLabel mirrors the 50-char truncation RecordDBQuery applies to the
// error_type label, so tests can compute the exact label value.
func errLabel(err error) string {
	if err == nil {
		return ""
	}
	s := err.Error()
	if len(s) > 50 {
		s = s[:50]
	}
	return s
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/dashboard/data", "200"))
	RecordAPIRequest("GET", "/dashboard/data", "200", 15*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/dashboard/data", "200"))
	if after != before+1 {
		t.Errorf("expected requests_total to increment, before=%v after=%v", before, after)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	mid := testutil.ToFloat64(APIActiveRequests)
	if mid != before+1 {
		t.Errorf("expected active requests to increment, before=%v mid=%v", before, mid)
	}
	TrackActiveRequest(false)
	after := testutil.ToFloat64(APIActiveRequests)
	if after != before {
		t.Errorf("expected active requests to return to baseline, before=%v after=%v", before, after)
	}
}

func TestRecordCacheHitMiss(t *testing.T) {
	beforeHit := testutil.ToFloat64(CacheHits.WithLabelValues("layout_config"))
	beforeMiss := testutil.ToFloat64(CacheMisses.WithLabelValues("layout_config"))

	RecordCacheHit("layout_config")
	RecordCacheMiss("layout_config")

	if got := testutil.ToFloat64(CacheHits.WithLabelValues("layout_config")); got != beforeHit+1 {
		t.Errorf("expected cache hit to increment, before=%v after=%v", beforeHit, got)
	}
	if got := testutil.ToFloat64(CacheMisses.WithLabelValues("layout_config")); got != beforeMiss+1 {
		t.Errorf("expected cache miss to increment, before=%v after=%v", beforeMiss, got)
	}
}

func TestRecordWidgetProcessing(t *testing.T) {
	beforeErrs := testutil.ToFloat64(WidgetProcessingErrors.WithLabelValues("KpiOee"))

	RecordWidgetProcessing("KpiOee", 2*time.Millisecond, nil)
	if got := testutil.ToFloat64(WidgetProcessingErrors.WithLabelValues("KpiOee")); got != beforeErrs {
		t.Errorf("expected no error increment on success, before=%v after=%v", beforeErrs, got)
	}

	RecordWidgetProcessing("KpiOee", time.Millisecond, errors.New("boom"))
	if got := testutil.ToFloat64(WidgetProcessingErrors.WithLabelValues("KpiOee")); got != beforeErrs+1 {
		t.Errorf("expected error counter to increment, before=%v after=%v", beforeErrs, got)
	}
}

func TestRecordPartitionMaintenance(t *testing.T) {
	beforeErrs := testutil.ToFloat64(PartitionMaintenanceErrors)

	RecordPartitionMaintenance(100*time.Millisecond, nil)
	if got := testutil.ToFloat64(PartitionMaintenanceErrors); got != beforeErrs {
		t.Errorf("expected no error increment on success, before=%v after=%v", beforeErrs, got)
	}

	RecordPartitionMaintenance(50*time.Millisecond, errors.New("lock wait timeout"))
	if got := testutil.ToFloat64(PartitionMaintenanceErrors); got != beforeErrs+1 {
		t.Errorf("expected error counter to increment, before=%v after=%v", beforeErrs, got)
	}
}

func TestConcurrentMetricRecording(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			RecordDBQuery("SELECT", "detection_line_packaging", time.Millisecond, nil)
			RecordAPIRequest("GET", "/dashboard/data", "200", time.Millisecond)
			TrackActiveRequest(true)
			TrackActiveRequest(false)
			RecordCacheHit("metacache")
			RecordWidgetProcessing("KpiOee", time.Millisecond, nil)
		}()
	}
	wg.Wait()
}
