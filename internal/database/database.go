// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/tomtom215/cartographus/internal/config"
	"github.com/tomtom215/cartographus/internal/logging"
)

// DB wraps a MySQL connection pool. One DB is created for the global
// catalog (tenants, users, dashboard templates, widget catalog) and lives
// for the process lifetime; a second DB, opened by OpenTenant, serves the
// active tenant until the next tenant switch closes it.
type DB struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig
}

// Open creates a connection pool to a MySQL database and verifies
// connectivity with a Ping. Callers are responsible for closing the
// returned DB.
func Open(ctx context.Context, cfg *config.DatabaseConfig) (*DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database dsn is required")
	}

	conn, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db := &DB{conn: conn, cfg: cfg}
	db.configureConnectionPool()

	pingCtx, cancel := context.WithTimeout(ctx, cfg.QueryTimeout)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

// OpenTenant opens a connection pool on a named tenant database, reusing
// the tenant connection template (DSN host/credentials) but swapping the
// schema name. The returned DB is not tied to a request: api.Server keeps
// it for the active tenant, shared by every request, until the next
// tenant switch closes it. With the TenantDatabase defaults
// (MaxOpenConns=1, MaxIdleConns=0) it holds at most one physical
// connection, closed as soon as the query using it releases it.
func OpenTenant(ctx context.Context, cfg *config.DatabaseConfig, tenantSchema string) (*DB, error) {
	dsn, err := withSchema(cfg.DSN, tenantSchema)
	if err != nil {
		return nil, fmt.Errorf("build tenant dsn: %w", err)
	}
	tenantCfg := *cfg
	tenantCfg.DSN = dsn
	return Open(ctx, &tenantCfg)
}

// Conn returns the underlying *sql.DB for use with database/sql query helpers.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Close closes the underlying connection pool.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

// QueryTimeout returns the configured per-query timeout.
func (db *DB) QueryTimeout() time.Duration {
	return db.cfg.QueryTimeout
}

// logSlowQuery logs a failed query (non-nil err) under label at warn
// level. It does not time the query; a query that succeeds is not logged.
func (db *DB) logSlowQuery(ctx context.Context, label string, err error) {
	if err != nil {
		logging.Ctx(ctx).Warn().Str("query", label).Err(err).Msg("query failed")
	}
}
