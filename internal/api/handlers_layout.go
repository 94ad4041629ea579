// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"net/http"
	"strconv"

	"github.com/tomtom215/cartographus/internal/layout"
)


type layoutResponse struct {
	TenantID         int                      `json:"tenant_id"`
	Role             string                   `json:"role"`
	EnabledWidgetIDs []int                    `json:"enabled_widget_ids"`
	EnabledFilterIDs []int                    `json:"enabled_filter_ids"`
	Widgets          []widgetCatalogResponse `json:"widgets"`
}

type widgetCatalogResponse struct {
	WidgetID    int    `json:"widget_id"`
	WidgetName  string `json:"widget_name"`
	Description string `json:"description"`
}

// LayoutConfig handles GET /layout/config?tenant_id&role.
func (h *Handler) LayoutConfig(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tenantID, err := strconv.Atoi(q.Get("tenant_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "tenant_id must be an integer")
		return
	}
	role := q.Get("role")
	if role == "" {
		respondError(w, http.StatusBadRequest, "role is required")
		return
	}

	t, err := h.server.activeOrErr()
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "metadata cache not loaded for any tenant")
		return
	}

	cfg, err := t.layout.GetLayoutConfig(r.Context(), tenantID, role)
	if err == layout.ErrNoTemplate {
		respondError(w, http.StatusNotFound, "no dashboard template for this tenant/role")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	entries := t.layout.ResolveWidgets(cfg.EnabledWidgetIDs)
	widgets := make([]widgetCatalogResponse, 0, len(entries))
	for _, e := range entries {
		widgets = append(widgets, widgetCatalogResponse{WidgetID: e.WidgetID, WidgetName: e.WidgetName, Description: e.Description})
	}

	respondJSON(w, http.StatusOK, layoutResponse{
		TenantID:         tenantID,
		Role:             role,
		EnabledWidgetIDs: cfg.EnabledWidgetIDs,
		EnabledFilterIDs: cfg.EnabledFilterIDs,
		Widgets:          widgets,
	})
}
