// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package tabular

import (
	"testing"
	"time"
)

func TestBucketStart(t *testing.T) {
	cases := []struct {
		name     string
		interval Interval
		in       time.Time
		want     time.Time
	}{
		{"minute", IntervalMinute, time.Date(2026, 1, 15, 10, 23, 45, 0, time.UTC), time.Date(2026, 1, 15, 10, 23, 0, 0, time.UTC)},
		{"fifteen minute floors to quarter", IntervalFifteenMin, time.Date(2026, 1, 15, 10, 37, 0, 0, time.UTC), time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"hour", IntervalHour, time.Date(2026, 1, 15, 10, 59, 59, 0, time.UTC), time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)},
		{"day", IntervalDay, time.Date(2026, 1, 15, 23, 0, 0, 0, time.UTC), time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"week floors to Monday", IntervalWeek, time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC), time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)}, // Jan 15 2026 is a Thursday
		{"week on Monday is itself", IntervalWeek, time.Date(2026, 1, 12, 8, 0, 0, 0, time.UTC), time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)},
		{"month", IntervalMonth, time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"unknown defaults to hour", Interval("bogus"), time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC), time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := BucketStart(c.in, c.interval)
			if !got.Equal(c.want) {
				t.Errorf("BucketStart(%v, %v) = %v, want %v", c.in, c.interval, got, c.want)
			}
		})
	}
}

func TestNextBucket(t *testing.T) {
	week := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	if got := NextBucket(week, IntervalWeek); !got.Equal(week.AddDate(0, 0, 7)) {
		t.Errorf("week bucket did not advance 7 calendar days: got %v", got)
	}
	month := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := NextBucket(month, IntervalMonth); !got.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("month bucket did not advance a calendar month: got %v", got)
	}
	hour := time.Date(2026, 1, 1, 5, 0, 0, 0, time.UTC)
	if got := NextBucket(hour, IntervalHour); !got.Equal(hour.Add(time.Hour)) {
		t.Errorf("hour bucket did not advance one hour: got %v", got)
	}
}

func TestBuildBucketLabels(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)
	labels := BuildBucketLabels(start, end, IntervalDay)
	if len(labels) != 3 {
		t.Fatalf("expected 3 day buckets for a 3-day inclusive range, got %d: %v", len(labels), labels)
	}
	for i, want := range []time.Time{start, start.AddDate(0, 0, 1), start.AddDate(0, 0, 2)} {
		if !labels[i].Equal(want) {
			t.Errorf("label[%d] = %v, want %v", i, labels[i], want)
		}
	}
}

func TestBuildBucketLabels_SingleInstant(t *testing.T) {
	start := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	labels := BuildBucketLabels(start, start, IntervalHour)
	if len(labels) != 1 {
		t.Fatalf("expected exactly 1 bucket for a zero-width range, got %d", len(labels))
	}
}

func TestGroupCount(t *testing.T) {
	type item struct{ name string }
	items := []item{{"a"}, {"b"}, {"a"}, {"a"}, {"c"}}
	got := GroupCount(items, func(i item) string { return i.name })
	want := map[string]int{"a": 3, "b": 1, "c": 1}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("GroupCount[%q] = %d, want %d", k, got[k], v)
		}
	}
	if len(got) != len(want) {
		t.Errorf("expected %d distinct keys, got %d: %v", len(want), len(got), got)
	}
}

func TestGroupSum(t *testing.T) {
	type item struct {
		name  string
		value float64
	}
	items := []item{{"a", 1.5}, {"a", 2.5}, {"b", 10}}
	got := GroupSum(items, func(i item) string { return i.name }, func(i item) float64 { return i.value })
	if got["a"] != 4 {
		t.Errorf("GroupSum[a] = %v, want 4", got["a"])
	}
	if got["b"] != 10 {
		t.Errorf("GroupSum[b] = %v, want 10", got["b"])
	}
}

func TestSortedKeysByCountDesc(t *testing.T) {
	m := map[string]int{"low": 1, "high": 5, "tie-b": 3, "tie-a": 3}
	got := SortedKeysByCountDesc(m)
	want := []string{"high", "tie-a", "tie-b", "low"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("key[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestResampleCount(t *testing.T) {
	type event struct {
		at      time.Time
		product string
	}
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	events := []event{
		{time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC), "widget"},
		{time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC), "widget"},
		{time.Date(2026, 1, 1, 9, 30, 0, 0, time.UTC), "gadget"},
		{time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), "widget"}, // outside [start,end], must be dropped
	}

	labels, totals, byGroup := ResampleCount(events, start, end, IntervalDay,
		func(e event) time.Time { return e.at },
		func(e event) string { return e.product },
	)

	if len(labels) != 2 {
		t.Fatalf("expected 2 day buckets, got %d: %v", len(labels), labels)
	}
	day1 := labels[0]
	day2 := labels[1]

	if totals[day1] != 3 {
		t.Errorf("expected 3 events on day 1, got %d", totals[day1])
	}
	if totals[day2] != 0 {
		t.Errorf("expected 0 events on day 2, got %d", totals[day2])
	}
	if byGroup[day1]["widget"] != 2 {
		t.Errorf("expected 2 widget events on day 1, got %d", byGroup[day1]["widget"])
	}
	if byGroup[day1]["gadget"] != 1 {
		t.Errorf("expected 1 gadget event on day 1, got %d", byGroup[day1]["gadget"])
	}
	if _, ok := byGroup[day2]["widget"]; ok {
		t.Errorf("expected no out-of-range event to be counted on day 2, got %v", byGroup[day2])
	}
}

func TestResampleCount_EmptyItemsStillReturnsZeroedBuckets(t *testing.T) {
	type event struct{ at time.Time }
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	labels, totals, byGroup := ResampleCount[event](nil, start, start, IntervalHour,
		func(e event) time.Time { return e.at },
		func(e event) string { return "" },
	)
	if len(labels) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(labels))
	}
	if totals[labels[0]] != 0 {
		t.Errorf("expected zero count for an empty item set")
	}
	if len(byGroup[labels[0]]) != 0 {
		t.Errorf("expected empty group map for an empty item set, got %v", byGroup[labels[0]])
	}
}
