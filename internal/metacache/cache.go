// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package metacache provides the process-wide, tenant-scoped in-memory
// store of reference tables (lines, areas, products, shifts, filters,
// failures, incidents, widget catalog) that the request pipeline joins
// against instead of re-querying the database per row.
package metacache

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/tomtom215/cartographus/internal/logging"
)

// SourceUnavailable wraps the underlying SQL error encountered while
// loading a reference table, so callers can distinguish "cache not
// loaded because the source DB is down" from "cache not loaded yet".
type SourceUnavailable struct {
	Table string
	Err   error
}

func (e *SourceUnavailable) Error() string {
	return fmt.Sprintf("metacache: source unavailable loading %s: %v", e.Table, e.Err)
}

func (e *SourceUnavailable) Unwrap() error {
	return e.Err
}

// ErrNotLoaded is returned by getters when no snapshot has been published
// yet (the cache has never been loaded for any tenant).
var ErrNotLoaded = fmt.Errorf("metacache: cache not loaded")

// Cache is the process-wide singleton metadata cache. The zero value is
// ready to use. Reads never block: they read the last published Snapshot
// through an atomic pointer. Writes (Load/Refresh) are serialized behind
// writeMu so concurrent tenant switches can't interleave.
type Cache struct {
	snapshot atomic.Pointer[Snapshot]
	writeMu  sync.Mutex
}

// New returns an empty, unloaded Cache.
func New() *Cache {
	return &Cache{}
}

// Current returns the last published snapshot, or nil if none has been
// loaded. The returned Snapshot and its fields must be treated as
// immutable by the caller.
func (c *Cache) Current() *Snapshot {
	return c.snapshot.Load()
}

// LoadForTenant loads reference data for dbName from the tenant database
// and the widget catalog from the global database. If the cache is
// already loaded for this tenant, it is a no-op. The entire load builds a
// new Snapshot off to the side and only swaps the pointer on success, so
// readers never observe a partially-loaded state.
func (c *Cache) LoadForTenant(ctx context.Context, tenantDB, globalDB *sql.DB, dbName string) error {
	if s := c.snapshot.Load(); s != nil && s.DBName == dbName {
		return nil
	}
	return c.Refresh(ctx, tenantDB, globalDB, dbName)
}

// Refresh unconditionally reloads the cache for dbName, even if already
// loaded for that tenant.
func (c *Cache) Refresh(ctx context.Context, tenantDB, globalDB *sql.DB, dbName string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	snap, err := loadSnapshot(ctx, tenantDB, globalDB, dbName)
	if err != nil {
		return err
	}

	c.snapshot.Store(snap)
	logging.Ctx(ctx).Info().Str("tenant_db", dbName).
		Int("lines", len(snap.Lines)).
		Int("widgets", len(snap.WidgetCatalog)).
		Msg("metadata cache loaded")
	return nil
}

// GetProductionLines returns all production lines, including inactive
// ones; callers filter by IsActive as needed.
func (c *Cache) GetProductionLines() (map[int]ProductionLine, error) {
	s := c.snapshot.Load()
	if s == nil {
		return nil, ErrNotLoaded
	}
	return s.Lines, nil
}

// GetActiveLineIDs returns the IDs of every active production line, in
// ascending order. Used as the fallback scope when a request names no
// line filter at all.
func (c *Cache) GetActiveLineIDs() ([]int, error) {
	s := c.snapshot.Load()
	if s == nil {
		return nil, ErrNotLoaded
	}
	ids := make([]int, 0, len(s.Lines))
	for id, l := range s.Lines {
		if l.IsActive {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids, nil
}

// GetLine returns a single production line by ID.
func (c *Cache) GetLine(lineID int) (ProductionLine, bool, error) {
	s := c.snapshot.Load()
	if s == nil {
		return ProductionLine{}, false, ErrNotLoaded
	}
	l, ok := s.Lines[lineID]
	return l, ok, nil
}

// GetAreasByLine returns the areas belonging to lineID, in area_order.
func (c *Cache) GetAreasByLine(lineID int) ([]Area, error) {
	s := c.snapshot.Load()
	if s == nil {
		return nil, ErrNotLoaded
	}
	return s.areasByLine[lineID], nil
}

// GetArea returns a single area by ID.
func (c *Cache) GetArea(areaID int) (Area, bool, error) {
	s := c.snapshot.Load()
	if s == nil {
		return Area{}, false, ErrNotLoaded
	}
	a, ok := s.Areas[areaID]
	return a, ok, nil
}

// GetProduct returns a single product by ID.
func (c *Cache) GetProduct(productID int) (Product, bool, error) {
	s := c.snapshot.Load()
	if s == nil {
		return Product{}, false, ErrNotLoaded
	}
	p, ok := s.Products[productID]
	return p, ok, nil
}

// GetShift returns a single shift by ID.
func (c *Cache) GetShift(shiftID int) (Shift, bool, error) {
	s := c.snapshot.Load()
	if s == nil {
		return Shift{}, false, ErrNotLoaded
	}
	sh, ok := s.Shifts[shiftID]
	return sh, ok, nil
}

// GetShifts returns every configured shift.
func (c *Cache) GetShifts() (map[int]Shift, error) {
	s := c.snapshot.Load()
	if s == nil {
		return nil, ErrNotLoaded
	}
	return s.Shifts, nil
}

// GetFilters returns every configured filter row.
func (c *Cache) GetFilters() (map[int]FilterRow, error) {
	s := c.snapshot.Load()
	if s == nil {
		return nil, ErrNotLoaded
	}
	return s.Filters, nil
}

// GetFailure returns a failure taxonomy entry by ID.
func (c *Cache) GetFailure(failureID int) (Failure, bool, error) {
	s := c.snapshot.Load()
	if s == nil {
		return Failure{}, false, ErrNotLoaded
	}
	f, ok := s.Failures[failureID]
	return f, ok, nil
}

// GetIncident returns an incident by ID.
func (c *Cache) GetIncident(incidentID int) (Incident, bool, error) {
	s := c.snapshot.Load()
	if s == nil {
		return Incident{}, false, ErrNotLoaded
	}
	i, ok := s.Incidents[incidentID]
	return i, ok, nil
}

// GetIncidentByCode returns an incident by its reason_code (the
// downtime-event column), resolved to its parent failure description by
// the caller via GetFailure.
func (c *Cache) GetIncidentByCode(code string) (Incident, bool, error) {
	s := c.snapshot.Load()
	if s == nil {
		return Incident{}, false, ErrNotLoaded
	}
	for _, inc := range s.Incidents {
		if inc.IncidentCode == code {
			return inc, true, nil
		}
	}
	return Incident{}, false, nil
}

// GetWidgetCatalogEntry returns a widget catalog entry by widget_id.
func (c *Cache) GetWidgetCatalogEntry(widgetID int) (WidgetCatalogEntry, bool, error) {
	s := c.snapshot.Load()
	if s == nil {
		return WidgetCatalogEntry{}, false, ErrNotLoaded
	}
	e, ok := s.WidgetCatalog[widgetID]
	return e, ok, nil
}

// GetWidgetCatalogEntryByName returns a widget catalog entry by
// widget_name (class name), with default id=0/name=className when absent
// used by the WidgetEngine's class-name -> catalog lookup.
func (c *Cache) GetWidgetCatalogEntryByName(className string) (WidgetCatalogEntry, error) {
	s := c.snapshot.Load()
	if s == nil {
		return WidgetCatalogEntry{}, ErrNotLoaded
	}
	if e, ok := s.WidgetCatalogByName[className]; ok {
		return e, nil
	}
	return WidgetCatalogEntry{WidgetID: 0, WidgetName: className, Description: className}, nil
}
