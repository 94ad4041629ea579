// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// SystemCacheLoad handles POST /system/cache/load/{db_name}: activates
// dbName as the served tenant, opening its connection and loading its
// metadata cache.
func (h *Handler) SystemCacheLoad(w http.ResponseWriter, r *http.Request) {
	dbName := chi.URLParam(r, "db_name")
	if dbName == "" {
		respondError(w, http.StatusBadRequest, "db_name is required")
		return
	}
	if err := h.server.LoadTenant(r.Context(), dbName); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"db_name": dbName, "loaded": true})
}

// SystemCacheRefresh handles POST /system/cache/refresh: reloads the
// active tenant's cache without switching databases.
func (h *Handler) SystemCacheRefresh(w http.ResponseWriter, r *http.Request) {
	if err := h.server.RefreshActiveTenant(r.Context()); err != nil {
		if err == ErrCacheNotLoaded {
			respondError(w, http.StatusServiceUnavailable, "no tenant cache loaded to refresh")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"refreshed": true})
}

// SystemCacheInfo handles GET /system/cache/info.
func (h *Handler) SystemCacheInfo(w http.ResponseWriter, r *http.Request) {
	t, err := h.server.activeOrErr()
	if err != nil {
		respondJSON(w, http.StatusOK, map[string]interface{}{"loaded": false})
		return
	}
	snap := t.cache.Current()
	if snap == nil {
		respondJSON(w, http.StatusOK, map[string]interface{}{"loaded": false, "db_name": t.dbName})
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"loaded":         true,
		"db_name":        snap.DBName,
		"loaded_at":      snap.LoadedAt,
		"lines":          len(snap.Lines),
		"widget_catalog": len(snap.WidgetCatalog),
	})
}

// SystemHealth handles GET /system/health: a liveness probe that also
// reports whether a tenant cache is active.
func (h *Handler) SystemHealth(w http.ResponseWriter, r *http.Request) {
	_, err := h.server.activeOrErr()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "ok",
		"cache_loaded":   err == nil,
		"uptime_seconds": time.Since(h.startTime).Seconds(),
	})
}
