// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package filters

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/cartographus/internal/metacache"
)

// DateRangeValue is the user-facing shape of a DateRangeFilter value.
type DateRangeValue struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
}

// DateRangeFilter validates and parses {start_date, end_date, start_time?,
// end_time?} into a (start, end) timestamp pair.
type DateRangeFilter struct {
	cfg Config
}

func NewDateRangeFilter(cfg Config) *DateRangeFilter { return &DateRangeFilter{cfg: cfg} }

func (f *DateRangeFilter) Config() Config { return f.cfg }

func (f *DateRangeFilter) Default() interface{} {
	end := time.Now()
	start := end.AddDate(0, 0, -7)
	startTime, endTime := "00:00", "23:59"
	if f.cfg.UIConfig != nil {
		if v, ok := f.cfg.UIConfig["default_start_time"].(string); ok {
			startTime = v
		}
		if v, ok := f.cfg.UIConfig["default_end_time"].(string); ok {
			endTime = v
		}
	}
	return DateRangeValue{
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
		StartTime: startTime,
		EndTime:   endTime,
	}
}

func asDateRangeValue(value interface{}) (DateRangeValue, bool) {
	switch v := value.(type) {
	case DateRangeValue:
		return v, true
	case map[string]interface{}:
		start, _ := v["start_date"].(string)
		end, _ := v["end_date"].(string)
		if start == "" || end == "" {
			return DateRangeValue{}, false
		}
		startTime, _ := v["start_time"].(string)
		endTime, _ := v["end_time"].(string)
		return DateRangeValue{StartDate: start, EndDate: end, StartTime: startTime, EndTime: endTime}, true
	default:
		return DateRangeValue{}, false
	}
}

func (f *DateRangeFilter) Validate(_ context.Context, _ *metacache.Cache, value interface{}) bool {
	if value == nil {
		return !f.cfg.Required
	}
	dr, ok := asDateRangeValue(value)
	if !ok {
		return false
	}
	start, err := time.Parse("2006-01-02", dr.StartDate)
	if err != nil {
		return false
	}
	end, err := time.Parse("2006-01-02", dr.EndDate)
	if err != nil {
		return false
	}
	if start.After(end) {
		return false
	}
	if start.Equal(end) {
		st, et := dr.StartTime, dr.EndTime
		if st == "" {
			st = "00:00"
		}
		if et == "" {
			et = "23:59"
		}
		if st > et {
			return false
		}
	}
	return true
}

// ParseDatetimes converts a validated DateRangeValue into absolute
// (start, end) timestamps, applying the 00:00/23:59 time-of-day defaults.
func (f *DateRangeFilter) ParseDatetimes(value interface{}) (start, end time.Time, err error) {
	dr, ok := asDateRangeValue(value)
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("filters: invalid daterange value")
	}
	sd, err := time.Parse("2006-01-02", dr.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	ed, err := time.Parse("2006-01-02", dr.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	st := dr.StartTime
	if st == "" {
		st = "00:00"
	}
	et := dr.EndTime
	if et == "" {
		et = "23:59"
	}
	var sh, sm, eh, em int
	if _, err := fmt.Sscanf(st, "%d:%d", &sh, &sm); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if _, err := fmt.Sscanf(et, "%d:%d", &eh, &em); err != nil {
		return time.Time{}, time.Time{}, err
	}
	start = time.Date(sd.Year(), sd.Month(), sd.Day(), sh, sm, 0, 0, time.UTC)
	end = time.Date(ed.Year(), ed.Month(), ed.Day(), eh, em, 59, 0, time.UTC)
	return start, end, nil
}

func (f *DateRangeFilter) Options(_ context.Context, _ *metacache.Cache, _ map[string]interface{}) ([]Option, error) {
	return nil, nil
}

func (f *DateRangeFilter) ToSQLClause(value interface{}) (SQLClause, bool) {
	if !f.Validate(context.Background(), nil, value) {
		return SQLClause{}, false
	}
	start, end, err := f.ParseDatetimes(value)
	if err != nil {
		return SQLClause{}, false
	}
	return SQLClause{
		Fragment: "detected_at BETWEEN :start_dt AND :end_dt",
		Params:   map[string]interface{}{"start_dt": start, "end_dt": end},
	}, true
}
