// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package api exposes the dashboard pipeline over HTTP using Chi
// router (ADR-0016), mirroring the route-group/middleware-stack style
// of the media-server API while replacing its handlers with the
// production-line dashboard surface.
package api

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tomtom215/cartographus/internal/config"
	"github.com/tomtom215/cartographus/internal/database"
	"github.com/tomtom215/cartographus/internal/downtime"
	"github.com/tomtom215/cartographus/internal/filters"
	"github.com/tomtom215/cartographus/internal/layout"
	"github.com/tomtom215/cartographus/internal/logging"
	"github.com/tomtom215/cartographus/internal/metacache"
	"github.com/tomtom215/cartographus/internal/metrics"
	"github.com/tomtom215/cartographus/internal/orchestrator"
	"github.com/tomtom215/cartographus/internal/partition"
	"github.com/tomtom215/cartographus/internal/repository"
	"github.com/tomtom215/cartographus/internal/resolve"
	"github.com/tomtom215/cartographus/internal/widgets"
)

// tenant bundles every component wired against one active tenant
// database connection and its loaded metadata cache.
type tenant struct {
	dbName       string
	db           *database.DB
	cache        *metacache.Cache
	tables       *resolve.TableResolver
	partitions   *partition.Manager
	orchestrator *orchestrator.Orchestrator
	filters      *filters.Engine
	lines        *resolve.LineResolver
	detections   *repository.DetectionRepository
	layout       *layout.Service
}

// Server holds the global database connection plus whichever tenant is
// currently active. Only one tenant is served at a time: switching
// tenants is an explicit admin action (POST /system/cache/load/{db_name})
// since the tenant connection pool is minimal by design and not
// meant to be multiplexed across tenants per request.
type Server struct {
	cfg      *config.Config
	globalDB *database.DB
	active   atomic.Pointer[tenant]
	loadMu   sync.Mutex
}

// NewServer returns a Server bound to the already-open global database.
func NewServer(cfg *config.Config, globalDB *database.DB) *Server {
	return &Server{cfg: cfg, globalDB: globalDB}
}

// ErrCacheNotLoaded is returned by handlers when no tenant has been
// activated yet.
var ErrCacheNotLoaded = fmt.Errorf("api: no tenant cache loaded")

// LoadTenant opens (or reopens) the tenant database named dbName, loads
// its metadata cache, wires the full request pipeline against it, and
// atomically swaps it in as the active tenant. The previous tenant's
// connection, if any, is closed after the swap.
func (s *Server) LoadTenant(ctx context.Context, dbName string) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	db, err := database.OpenTenant(ctx, &s.cfg.TenantDatabase, dbName)
	if err != nil {
		return fmt.Errorf("api: open tenant %q: %w", dbName, err)
	}

	cache := metacache.New()
	if err := cache.LoadForTenant(ctx, db.Conn(), s.globalDB.Conn(), dbName); err != nil {
		db.Close()
		return fmt.Errorf("api: load cache for %q: %w", dbName, err)
	}

	t := s.wire(dbName, db, cache)

	prev := s.active.Swap(t)
	if prev != nil {
		if err := prev.db.Close(); err != nil {
			logging.Warn().Err(err).Str("db_name", prev.dbName).Msg("api: error closing previous tenant connection")
		}
	}
	return nil
}

// RefreshActiveTenant reloads the active tenant's metadata cache without
// switching databases.
func (s *Server) RefreshActiveTenant(ctx context.Context) error {
	t := s.active.Load()
	if t == nil {
		return ErrCacheNotLoaded
	}
	return t.cache.Refresh(ctx, t.db.Conn(), s.globalDB.Conn(), t.dbName)
}

func (s *Server) wire(dbName string, db *database.DB, cache *metacache.Cache) *tenant {
	tables := resolve.NewTableResolver(cache)
	detRepo := repository.NewDetectionRepository(db.Conn(), tables, cache)
	downRepo := repository.NewDowntimeRepository(db.Conn(), tables, cache)
	filterEngine := filters.NewEngine(cache)
	lineResolver := resolve.NewLineResolver(cache)
	downtimeSvc := downtime.NewService(downRepo, cache)
	widgetEngine := widgets.NewEngine(cache)
	layoutSvc := layout.NewService(s.globalDB.Conn(), cache, s.cfg.Cache.OptionsTTL)

	orch := orchestrator.New(filterEngine, lineResolver, layoutSvc, detRepo, downtimeSvc, widgetEngine, cache)

	return &tenant{
		dbName:       dbName,
		db:           db,
		cache:        cache,
		tables:       tables,
		partitions:   partition.NewManager(db.Conn()),
		orchestrator: orch,
		filters:      filterEngine,
		lines:        lineResolver,
		detections:   detRepo,
		layout:       layoutSvc,
	}
}

// MaintainPartitions ensures the active tenant's per-line detection and
// downtime tables carry partitions through cfg.MonthsAhead and drops
// partitions older than cfg.RetentionMonths. It is a no-op when no
// tenant is active.
func (s *Server) MaintainPartitions(ctx context.Context, cfg config.PartitionConfig) error {
	t := s.active.Load()
	if t == nil {
		return nil
	}

	start := time.Now()
	firstErr := s.maintainPartitions(ctx, t, cfg)
	metrics.RecordPartitionMaintenance(time.Since(start), firstErr)
	return firstErr
}

func (s *Server) maintainPartitions(ctx context.Context, t *tenant, cfg config.PartitionConfig) error {
	lineIDs, err := t.cache.GetActiveLineIDs()
	if err != nil {
		return fmt.Errorf("api: list active lines: %w", err)
	}

	now := time.Now()
	var firstErr error
	for _, lineID := range lineIDs {
		for _, tableName := range []string{t.tables.DetectionTable(lineID), t.tables.DowntimeTable(lineID)} {
			if tableName == "" {
				continue
			}
			if _, err := t.partitions.EnsurePartitions(ctx, tableName, cfg.MonthsAhead, now); err != nil && firstErr == nil {
				firstErr = fmt.Errorf("api: ensure partitions for %s: %w", tableName, err)
			}
			if _, err := t.partitions.DropOldPartitions(ctx, tableName, cfg.RetentionMonths, now); err != nil && firstErr == nil {
				firstErr = fmt.Errorf("api: drop old partitions for %s: %w", tableName, err)
			}
		}
	}
	return firstErr
}

func (s *Server) activeOrErr() (*tenant, error) {
	t := s.active.Load()
	if t == nil {
		return nil, ErrCacheNotLoaded
	}
	return t, nil
}
