// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
database_connection.go - Connection Management

This file provides connection pool configuration and error detection
utilities for the MySQL driver.

Connection Pool Configuration:
  - Global database: MaxOpenConns/MaxIdleConns/ConnMaxLifetime/ConnMaxIdleTime
    come from config.DatabaseConfig and are tuned for a long-lived shared pool.
  - Tenant database: the minimal-pooling policy sets MaxOpenConns=1
    and MaxIdleConns=0, so at most one physical tenant connection is open
    at a time and none is kept idle between queries.

Error Detection:
The package identifies connection errors vs query errors to determine
appropriate error handling and recovery strategies.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"fmt"
	"net/url"
	"strings"
)

// configureConnectionPool applies the configured pool parameters to the
// underlying *sql.DB.
func (db *DB) configureConnectionPool() {
	db.conn.SetMaxOpenConns(db.cfg.MaxOpenConns)
	db.conn.SetMaxIdleConns(db.cfg.MaxIdleConns)
	db.conn.SetConnMaxLifetime(db.cfg.ConnMaxLifetime)
	db.conn.SetConnMaxIdleTime(db.cfg.ConnMaxIdleTime)
}

// withSchema rewrites a go-sql-driver/mysql DSN's schema (the path
// component) to point at a different tenant database while preserving the
// user, host, and query parameters of the connection template.
//
// DSNs of this driver are not standard URLs (no scheme before "user:pass@"),
// so this performs a targeted rewrite of the path segment between the last
// "/" before "?" rather than a full url.Parse.
func withSchema(dsn, schema string) (string, error) {
	if schema == "" {
		return "", fmt.Errorf("tenant schema name must not be empty")
	}
	if strings.ContainsAny(schema, "/?#") {
		return "", fmt.Errorf("tenant schema name %q contains invalid characters", schema)
	}

	query := ""
	base := dsn
	if idx := strings.Index(dsn, "?"); idx >= 0 {
		base, query = dsn[:idx], dsn[idx:]
	}

	slash := strings.LastIndex(base, "/")
	if slash < 0 {
		return "", fmt.Errorf("dsn %q is missing a schema separator", dsn)
	}

	return base[:slash+1] + url.PathEscape(schema) + query, nil
}

// isConnectionError reports whether err indicates the MySQL connection was
// lost and a retry against a fresh connection might succeed.
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "invalid connection") ||
		strings.Contains(msg, "driver: bad connection") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "database is closed") ||
		strings.Contains(msg, "sql: database is closed")
}

// isLockWaitTimeout reports whether err is a MySQL lock wait timeout
// (error 1205), which callers may choose to retry once with backoff.
func isLockWaitTimeout(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "Error 1205") ||
		strings.Contains(err.Error(), "Lock wait timeout exceeded")
}

// isDuplicateEntry reports whether err is a MySQL duplicate-key error
// (error 1062).
func isDuplicateEntry(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "Error 1062")
}
