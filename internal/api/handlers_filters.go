// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Filters handles GET /filters?filter_ids=… — every active filter
// serialized with its resolved options.
func (h *Handler) Filters(w http.ResponseWriter, r *http.Request) {
	t, err := h.server.activeOrErr()
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "metadata cache not loaded for any tenant")
		return
	}

	filterIDs := parseIntCSV(r.URL.Query().Get("filter_ids"))
	resolved, err := t.filters.ResolveAll(r.Context(), filterIDs, nil)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"filters": resolved})
}

// FilterOptions handles GET /filters/{class_name}/options?line_id=… — a
// cascade reload of one filter's options given a parent filter's value.
func (h *Handler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	className := chi.URLParam(r, "class_name")

	t, err := h.server.activeOrErr()
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "metadata cache not loaded for any tenant")
		return
	}

	parentValues := make(map[string]interface{})
	for key, vals := range r.URL.Query() {
		if len(vals) > 0 {
			parentValues[key] = vals[0]
		}
	}

	resolved, err := t.filters.ResolveOne(r.Context(), className, parentValues)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if resolved == nil {
		respondError(w, http.StatusNotFound, "unknown filter class "+className)
		return
	}
	respondJSON(w, http.StatusOK, resolved)
}
