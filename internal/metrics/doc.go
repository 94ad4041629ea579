// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package metrics provides Prometheus metrics collection and export for observability.

This package instruments the HTTP API, MySQL repository queries, the
layout-config and widget-class caches, and per-widget processing using
the Prometheus client library.

# Overview

The package provides metrics for:
  - HTTP request latency and throughput
  - MySQL query performance per operation/table
  - Layout-config and widget-class cache hit/miss rates
  - Per-widget processing duration and error rate
  - Partition maintenance sweep duration and error rate

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rejected requests (counter)
    Labels: endpoint

Database Metrics:
  - mysql_query_duration_seconds: Query execution time (histogram)
    Labels: operation, table
  - mysql_query_errors_total: Failed queries (counter)
    Labels: operation, table, error_type
  - mysql_connection_pool_size: Connections in use (gauge; registered,
    but no code in this module sets it, so it stays at zero)

Cache Metrics:
  - cache_hits_total / cache_misses_total: Hit/miss counters (counter)
    Labels: cache_type ("layout_config", "widget_class")
  - cache_entries: Current entry count (gauge)
    Labels: cache_type
  - cache_evictions_total: TTL expirations (counter)
    Labels: cache_type

cache_entries and cache_evictions_total are registered, but no code in
this module sets them, so they stay at zero.

Widget Metrics:
  - widget_processing_duration_seconds: Per-widget Process duration (histogram)
    Labels: widget_class
  - widget_processing_errors_total: Processor errors and panics (counter)
    Labels: widget_class

Partition Maintenance Metrics:
  - partition_maintenance_duration_seconds: Sweep duration (histogram)
  - partition_maintenance_errors_total: Sweep failures (counter)

# Usage Example

	metrics.RecordAPIRequest(r.Method, r.URL.Path, strconv.Itoa(status), duration)
	metrics.RecordDBQuery("SELECT", "detection_line_packaging", duration, err)
	metrics.RecordWidgetProcessing(className, duration, err)

# Cardinality Management

The endpoint label of api_requests_total and api_request_duration_seconds
is the chi route pattern, not the raw path (no query parameters, no
path-parameter values); outside a chi router it falls back to the raw
path. api_rate_limit_hits_total is labeled with the raw request path.
Error types are truncated to 50 characters to bound
mysql_query_errors_total cardinality.

# See Also

  - internal/middleware: HTTP middleware wiring RecordAPIRequest/TrackActiveRequest
  - internal/repository: RecordDBQuery call sites
  - internal/widgets: RecordWidgetProcessing call sites
*/
package metrics
