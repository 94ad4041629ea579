// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package metacache

import "time"

// NewForTest builds a Cache pre-loaded with snap, for use by other
// packages' tests that need a populated metadata cache without a
// database. Nil maps are initialized empty and areasByLine is derived
// from Areas when not already set, mirroring what loadSnapshot would
// have produced.
func NewForTest(snap *Snapshot) *Cache {
	if snap.LoadedAt.IsZero() {
		snap.LoadedAt = time.Now()
	}
	if snap.Lines == nil {
		snap.Lines = map[int]ProductionLine{}
	}
	if snap.Areas == nil {
		snap.Areas = map[int]Area{}
	}
	if snap.Products == nil {
		snap.Products = map[int]Product{}
	}
	if snap.Shifts == nil {
		snap.Shifts = map[int]Shift{}
	}
	if snap.Filters == nil {
		snap.Filters = map[int]FilterRow{}
	}
	if snap.Failures == nil {
		snap.Failures = map[int]Failure{}
	}
	if snap.Incidents == nil {
		snap.Incidents = map[int]Incident{}
	}
	if snap.WidgetCatalog == nil {
		snap.WidgetCatalog = map[int]WidgetCatalogEntry{}
	}
	if snap.WidgetCatalogByName == nil {
		snap.WidgetCatalogByName = map[string]WidgetCatalogEntry{}
	}
	if snap.areasByLine == nil {
		snap.areasByLine = make(map[int][]Area)
		for _, a := range snap.Areas {
			snap.areasByLine[a.LineID] = append(snap.areasByLine[a.LineID], a)
		}
	}

	c := New()
	c.snapshot.Store(snap)
	return c
}
