// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package database provides MySQL connection management for the global
// catalog database and per-tenant production databases.
//
// # Architecture
//
//   - database.go: connection lifecycle - Open for the long-lived global
//     pool, OpenTenant for the active tenant's pool (kept until the next
//     tenant switch).
//   - database_connection.go: pool tuning and MySQL error classification
//     (connection loss, lock wait timeout, duplicate entry).
//   - errors.go: resource-cleanup helpers shared with callers that hold
//     io.Closer-shaped database handles.
//
// # Two Databases
//
// The global database holds the tenant directory, user accounts,
// dashboard templates, and the widget catalog - it is opened once at
// startup and its pool stays open for the process lifetime.
//
// A tenant database holds that tenant's reference tables and its
// dynamically named per-line detection_line_* / downtime_events_* tables.
// A tenant pool is opened when a tenant is activated (api.Server.LoadTenant)
// and closed when the next tenant switch replaces it; requests share that
// pool and do not open or close a tenant session of their own. Per the
// minimal-pooling policy its defaults (MaxOpenConns=1, MaxIdleConns=0)
// keep at most one physical connection open and close it as soon as it
// is released, because the deployment environment enforces a tight
// simultaneous-connection limit per tenant.
package database
