// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package middleware provides HTTP middleware components for the application.

This package implements infrastructure middleware for compression, performance
monitoring, request ID tracking, and Prometheus metrics integration. These
components work alongside the CORS, rate-limit and security-header
middleware of internal/api to form the HTTP middleware stack.

Key Components:

  - Compression: Gzip compression of every response when the client accepts gzip
  - Performance Monitor: Request latency tracking with percentile calculations
  - Request ID: UUID-based request tracking for distributed tracing
  - Prometheus Metrics: HTTP request/response instrumentation

Middleware Stack:

internal/api's Router.Setup applies, outermost first:

	RequestID -> chi RealIP -> chi Recoverer -> CORS (internal/api)
	  -> Compression -> PerformanceMonitor.Middleware
	  -> per route group: rate limit and security headers (internal/api),
	     plus PrometheusMetrics on the /layout, /filters, /dashboard and
	     /detections groups
	  -> handler

Usage Example - Compression:

	import "github.com/tomtom215/cartographus/internal/middleware"

	// Wrap handler with gzip compression
	http.HandleFunc("/api/v1/data",
	    middleware.Compression(handler),
	)

	// Every response is compressed when the request's
	// Accept-Encoding header contains gzip

Usage Example - Performance Monitoring:

	// Create a performance monitor keeping the 1000 most recent requests
	perfMon := middleware.NewPerformanceMonitor(1000)

	// Wrap handler
	http.Handle("/api/v1/stats",
	    perfMon.Middleware(handler),
	)

	// Get per-endpoint statistics (durations in milliseconds)
	for _, s := range perfMon.GetStats() {
	    fmt.Printf("%s p50: %d, p95: %d, p99: %d\n",
	        s.Path, s.P50Duration, s.P95Duration, s.P99Duration)
	}

Usage Example - Request ID:

	// Request ID middleware
	http.HandleFunc("/api/v1/logs",
	    middleware.RequestID(handler),
	)

	// Access request ID in handler
	func handler(w http.ResponseWriter, r *http.Request) {
	    requestID := r.Context().Value(middleware.RequestIDKey).(string)
	    log.Printf("[%s] Processing request", requestID)
	}

Performance Characteristics:

  - Compression: 70-90% size reduction for JSON (text/json mime types)
  - Compression overhead: ~1-2ms for typical responses
  - Metrics overhead: <0.1ms per request
  - Request ID overhead: <0.01ms (UUID generation)
  - Performance monitor: bounded slice of recent samples behind a sync.RWMutex

Compression Details:

The compression middleware:
  - Compresses every response, whatever its size or content type
  - Supports gzip encoding only (Accept-Encoding must contain gzip)
  - Skips requests carrying an Upgrade: websocket header
  - Sets Content-Encoding: gzip and removes Content-Length
  - Has no Flush support; the gzip stream is completed when the handler returns

Performance Monitor:

The performance monitor tracks:
  - Per-endpoint request count and average duration
  - Latency percentiles (p50, p95, p99), minimum and maximum
  - A rolling window of the maxMetrics most recent requests (1000 in internal/api)
  - Thread-safe concurrent access with RWMutex

Thread Safety:

All middleware components are thread-safe:
  - Compression uses per-request gzip writers
  - Performance monitor uses sync.RWMutex
  - Request ID uses context.Context (immutable)
  - Prometheus metrics use atomic operations

See Also:

  - internal/api: HTTP handlers wrapped by middleware, and its CORS,
    rate-limit and security-header middleware
  - internal/metrics: Prometheus metrics definitions
*/
package middleware
