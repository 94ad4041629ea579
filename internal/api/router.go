// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tomtom215/cartographus/internal/middleware"
)

// Router builds the HTTP handler tree for a Handler.
type Router struct {
	handler    *Handler
	chiMw      *ChiMiddleware
	perfMon    *middleware.PerformanceMonitor
}

// NewRouter returns a Router wired to handler. corsOrigins configures the
// allowed cross-origin callers (empty means no cross-origin access).
func NewRouter(handler *Handler, corsOrigins []string, rateLimitDisabled bool) *Router {
	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = corsOrigins
	cfg.RateLimitDisabled = rateLimitDisabled

	return &Router{
		handler: handler,
		chiMw:   NewChiMiddleware(cfg),
		perfMon: middleware.NewPerformanceMonitor(1000),
	}
}

// PerformanceMonitor exposes the router's request-metrics collector, e.g.
// for a /system/performance diagnostic endpoint.
func (router *Router) PerformanceMonitor() *middleware.PerformanceMonitor {
	return router.perfMon
}

// Setup builds the full route tree.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMw.CORS())
	r.Use(chiMiddleware(middleware.Compression))
	r.Use(router.perfMon.Middleware)

	r.Route("/system", func(r chi.Router) {
		r.Use(router.chiMw.RateLimitHealthGroup())
		r.Use(APISecurityHeaders())
		r.Get("/health", router.handler.SystemHealth)
		r.Get("/cache/info", router.handler.SystemCacheInfo)

		r.Group(func(r chi.Router) {
			r.Use(router.chiMw.RateLimitSystemGroup())
			r.Post("/cache/load/{db_name}", router.handler.SystemCacheLoad)
			r.Post("/cache/refresh", router.handler.SystemCacheRefresh)
		})
	})

	r.Route("/layout", func(r chi.Router) {
		r.Use(router.chiMw.RateLimitAnalyticsGroup())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Get("/config", router.handler.LayoutConfig)
	})

	r.Route("/filters", func(r chi.Router) {
		r.Use(router.chiMw.RateLimitAnalyticsGroup())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Get("/", router.handler.Filters)
		r.Get("/{class_name}/options", router.handler.FilterOptions)
	})

	r.Route("/dashboard", func(r chi.Router) {
		r.Use(router.chiMw.RateLimitAnalyticsGroup())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Post("/data", router.handler.DashboardData)
		r.Get("/data", router.handler.DashboardDataQuery)
		r.Post("/preview", router.handler.DashboardPreview)
	})

	r.Route("/detections", func(r chi.Router) {
		r.Use(router.chiMw.RateLimitAnalyticsGroup())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Get("/{line_id}", router.handler.DetectionsForLine)
		r.Post("/query", router.handler.DetectionsQuery)
		r.Post("/count", router.handler.DetectionsCount)
		r.Post("/summary", router.handler.DetectionsSummary)

		r.Group(func(r chi.Router) {
			r.Use(router.chiMw.RateLimitExportGroup())
			r.Post("/export", router.handler.DetectionsExport)
		})
	})

	return r
}
