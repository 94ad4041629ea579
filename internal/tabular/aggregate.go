// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package tabular

import (
	"sort"
	"time"
)

// Interval is a resampling bucket width, mirroring the pandas offset
// aliases the original used (1min, 15min, 1h, 1D, 1W, 1ME).
type Interval string

const (
	IntervalMinute    Interval = "minute"
	IntervalFifteenMin Interval = "15min"
	IntervalHour      Interval = "hour"
	IntervalDay       Interval = "day"
	IntervalWeek      Interval = "week"
	IntervalMonth     Interval = "month"
)

// BucketStart floors t to the start of its Interval bucket. Week buckets
// start on Monday; month buckets start on the 1st.
func BucketStart(t time.Time, interval Interval) time.Time {
	t = t.UTC()
	switch interval {
	case IntervalMinute:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
	case IntervalFifteenMin:
		m := (t.Minute() / 15) * 15
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), m, 0, 0, time.UTC)
	case IntervalHour:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, time.UTC)
	case IntervalDay:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	case IntervalWeek:
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		offset := (int(d.Weekday()) + 6) % 7 // Monday=0
		return d.AddDate(0, 0, -offset)
	case IntervalMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, time.UTC)
	}
}

// BucketStep returns the duration advance from one bucket start to the
// next, for interval widths that are fixed-size (month and week are
// advanced via AddDate to stay calendar-correct, so this is only used
// for the other four).
func BucketStep(interval Interval) time.Duration {
	switch interval {
	case IntervalMinute:
		return time.Minute
	case IntervalFifteenMin:
		return 15 * time.Minute
	case IntervalHour:
		return time.Hour
	case IntervalDay, IntervalWeek:
		return 24 * time.Hour
	default:
		return time.Hour
	}
}

// NextBucket advances from to the following bucket boundary.
func NextBucket(from time.Time, interval Interval) time.Time {
	switch interval {
	case IntervalWeek:
		return from.AddDate(0, 0, 7)
	case IntervalMonth:
		return from.AddDate(0, 1, 0)
	default:
		return from.Add(BucketStep(interval))
	}
}

// BuildBucketLabels reindexes the full [start,end] daterange into bucket
// start timestamps, so zero-count buckets remain visible in charts.
func BuildBucketLabels(start, end time.Time, interval Interval) []time.Time {
	labels := make([]time.Time, 0)
	cursor := BucketStart(start, interval)
	last := BucketStart(end, interval)
	for !cursor.After(last) {
		labels = append(labels, cursor)
		cursor = NextBucket(cursor, interval)
	}
	return labels
}

// GroupCount counts items by a string key, e.g. grouping by area_name or
// product_name for a bar/pie chart.
func GroupCount[T any](items []T, key func(T) string) map[string]int {
	out := make(map[string]int)
	for _, item := range items {
		out[key(item)]++
	}
	return out
}

// GroupSum sums a numeric field by a string key.
func GroupSum[T any](items []T, key func(T) string, value func(T) float64) map[string]float64 {
	out := make(map[string]float64)
	for _, item := range items {
		out[key(item)] += value(item)
	}
	return out
}

// SortedKeysByCountDesc returns m's keys ordered by descending count,
// breaking ties alphabetically for determinism.
func SortedKeysByCountDesc(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if m[keys[i]] != m[keys[j]] {
			return m[keys[i]] > m[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}

// ResampleCount buckets items into Interval-wide windows by a timestamp
// accessor and counts them per label, then per-group key (e.g. product
// name) for class_details-style breakdowns. Empty buckets over
// [start,end] are included with a count of 0.
func ResampleCount[T any](items []T, start, end time.Time, interval Interval, ts func(T) time.Time, group func(T) string) (labels []time.Time, totals map[time.Time]int, byGroup map[time.Time]map[string]int) {
	labels = BuildBucketLabels(start, end, interval)
	totals = make(map[time.Time]int, len(labels))
	byGroup = make(map[time.Time]map[string]int, len(labels))
	for _, l := range labels {
		totals[l] = 0
		byGroup[l] = map[string]int{}
	}
	for _, item := range items {
		b := BucketStart(ts(item), interval)
		if _, ok := totals[b]; !ok {
			continue
		}
		totals[b]++
		byGroup[b][group(item)]++
	}
	return labels, totals, byGroup
}
