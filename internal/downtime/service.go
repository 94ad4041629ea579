// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package downtime

import (
	"context"
	"fmt"
	"sort"

	"github.com/tomtom215/cartographus/internal/enrich"
	"github.com/tomtom215/cartographus/internal/metacache"
	"github.com/tomtom215/cartographus/internal/repository"
	"github.com/tomtom215/cartographus/internal/tabular"
)

// Service coordinates the full downtime pipeline: fetch DB-recorded
// events, calculate gap-based events from detections, drop calculated
// events the DB already accounts for, then merge and sort.
type Service struct {
	repo  *repository.DowntimeRepository
	cache *metacache.Cache
}

// NewService returns a Service reading through repo and cache.
func NewService(repo *repository.DowntimeRepository, cache *metacache.Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// GetDowntime runs the full pipeline: DB events ∪ (gap-calculated events
// minus anything overlapping a DB event), sorted by start time.
// detections supplies the timestamps gap calculation scans; pass nil to
// skip calculation and return DB events only (equivalent to
// GetDBDowntimeOnly).
func (s *Service) GetDowntime(ctx context.Context, lineIDs []int, cleaned map[string]interface{}, detections []enrich.Detection, thresholdOverride int) ([]Event, error) {
	dbEvents := s.fetchDBEvents(ctx, lineIDs, cleaned)

	var calcEvents []Event
	if len(detections) > 0 {
		calcEvents = CalculateGapDowntimes(detections, lineIDs, s.cache, thresholdOverride)
	}

	if len(calcEvents) > 0 && len(dbEvents) > 0 {
		calcEvents = RemoveOverlapping(calcEvents, dbEvents)
	}

	merged := make([]Event, 0, len(dbEvents)+len(calcEvents))
	merged = append(merged, dbEvents...)
	merged = append(merged, calcEvents...)
	sort.Slice(merged, func(i, j int) bool { return merged[i].StartTime.Before(merged[j].StartTime) })

	return merged, nil
}

// GetDBDowntimeOnly fetches and enriches only DB-recorded events, with
// no gap calculation.
func (s *Service) GetDBDowntimeOnly(ctx context.Context, lineIDs []int, cleaned map[string]interface{}) ([]Event, error) {
	return s.fetchDBEvents(ctx, lineIDs, cleaned), nil
}

func (s *Service) fetchDBEvents(ctx context.Context, lineIDs []int, cleaned map[string]interface{}) []Event {
	set := s.repo.FetchDowntimeMultiLine(ctx, lineIDs, cleaned)
	return s.enrichDBRows(set)
}

func (s *Service) enrichDBRows(set tabular.DowntimeSet) []Event {
	out := make([]Event, 0, set.Len())
	for _, r := range set.Rows {
		lineName := fmt.Sprintf("Line %d", r.LineID)
		if s.cache != nil {
			if line, ok, err := s.cache.GetLine(r.LineID); err == nil && ok {
				lineName = line.LineName
			}
		}
		out = append(out, Event{
			StartTime:       r.StartTime,
			EndTime:         r.EndTime,
			DurationSeconds: float64(r.DurationSeconds),
			ReasonCode:      r.ReasonCode,
			Reason:          r.Reason,
			LineID:          r.LineID,
			LineName:        lineName,
			Source:          SourceDB,
			IsManual:        r.IsManual,
		})
	}
	return out
}
