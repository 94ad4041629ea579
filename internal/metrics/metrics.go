// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus Metrics Integration for Production Observability
// This package instruments:
// - MySQL query performance per repository/table
// - API endpoint latency and throughput
// - Layout-config and widget-class cache efficiency
// - Per-widget processing duration

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mysql_query_duration_seconds",
			Help:    "Duration of MySQL queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mysql_query_errors_total",
			Help: "Total number of MySQL query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	DBConnectionPoolSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mysql_connection_pool_size",
			Help: "Current number of database connections in use",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Cache Metrics (General) - shared by the layout.Service template
	// cache and the widget-class dispatch cache
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"}, // "layout_config", "widget_class"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions (TTL expiry)",
		},
		[]string{"cache_type"},
	)

	// Widget Processing Metrics
	WidgetProcessingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "widget_processing_duration_seconds",
			Help:    "Duration of a single widget's Process call in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"widget_class"},
	)

	WidgetProcessingErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "widget_processing_errors_total",
			Help: "Total number of widget processing errors, including panics",
		},
		[]string{"widget_class"},
	)

	// Partition Maintenance Metrics
	PartitionMaintenanceDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "partition_maintenance_duration_seconds",
			Help:    "Duration of a single partition maintenance sweep across the active tenant's tables",
			Buckets: prometheus.DefBuckets,
		},
	)

	PartitionMaintenanceErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "partition_maintenance_errors_total",
			Help: "Total number of errors encountered while ensuring or dropping partitions",
		},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordDBQuery records a database query metric.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCacheHit increments the hit counter for cacheType ("layout_config",
// "widget_class").
func RecordCacheHit(cacheType string) {
	CacheHits.WithLabelValues(cacheType).Inc()
}

// RecordCacheMiss increments the miss counter for cacheType.
func RecordCacheMiss(cacheType string) {
	CacheMisses.WithLabelValues(cacheType).Inc()
}

// RecordWidgetProcessing records how long a single widget class took to
// process, and counts it as an error when err is non-nil.
func RecordWidgetProcessing(className string, duration time.Duration, err error) {
	WidgetProcessingDuration.WithLabelValues(className).Observe(duration.Seconds())
	if err != nil {
		WidgetProcessingErrors.WithLabelValues(className).Inc()
	}
}

// RecordPartitionMaintenance records the duration of one maintenance
// sweep and whether it completed without error.
func RecordPartitionMaintenance(duration time.Duration, err error) {
	PartitionMaintenanceDuration.Observe(duration.Seconds())
	if err != nil {
		PartitionMaintenanceErrors.Inc()
	}
}
