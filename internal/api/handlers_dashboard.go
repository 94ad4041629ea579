// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tomtom215/cartographus/internal/validation"
)

type dashboardRequest struct {
	WidgetIDs         []int       `json:"widget_ids"`
	TenantID          int         `json:"tenant_id" validate:"required,gt=0"`
	Role              string      `json:"role" validate:"required"`
	Daterange         interface{} `json:"daterange"`
	LineID            interface{} `json:"line_id"`
	LineIDs           interface{} `json:"line_ids"`
	ShiftID           interface{} `json:"shift_id"`
	AreaIDs           interface{} `json:"area_ids"`
	ProductIDs        interface{} `json:"product_ids"`
	Interval          string      `json:"interval"`
	DowntimeThreshold interface{} `json:"downtime_threshold"`
	ShowDowntime      interface{} `json:"show_downtime"`
}

func (r dashboardRequest) toUserParams() map[string]interface{} {
	params := make(map[string]interface{})
	if r.Daterange != nil {
		params["daterange"] = r.Daterange
	}
	if r.LineID != nil {
		params["line_id"] = r.LineID
	}
	if r.LineIDs != nil {
		params["line_ids"] = r.LineIDs
	}
	if r.ShiftID != nil {
		params["shift_id"] = r.ShiftID
	}
	if r.AreaIDs != nil {
		params["area_ids"] = r.AreaIDs
	}
	if r.ProductIDs != nil {
		params["product_ids"] = r.ProductIDs
	}
	if r.Interval != "" {
		params["interval"] = r.Interval
	}
	if r.DowntimeThreshold != nil {
		params["downtime_threshold"] = r.DowntimeThreshold
	}
	if r.ShowDowntime != nil {
		params["show_downtime"] = r.ShowDowntime
	}
	return params
}

// DashboardData handles POST /dashboard/data: full layout-resolved
// dashboard assembly for a tenant/role.
func (h *Handler) DashboardData(w http.ResponseWriter, r *http.Request) {
	var req dashboardRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondStructValidationError(w, verr)
		return
	}
	h.runDashboard(w, r, req.toUserParams(), req.TenantID, req.Role, req.WidgetIDs)
}

// DashboardDataQuery handles GET /dashboard/data, the query-string
// equivalent of DashboardData.
func (h *Handler) DashboardDataQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := queryToUserParams(q)
	tenantID, _ := strconv.Atoi(q.Get("tenant_id"))
	role := q.Get("role")
	widgetIDs := parseIntCSV(q.Get("widget_ids"))
	h.runDashboard(w, r, params, tenantID, role, widgetIDs)
}

// DashboardPreview handles POST /dashboard/preview: like DashboardData
// but bypasses layout resolution, requiring an explicit widget_ids list.
func (h *Handler) DashboardPreview(w http.ResponseWriter, r *http.Request) {
	var req dashboardRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondStructValidationError(w, verr)
		return
	}
	if len(req.WidgetIDs) == 0 {
		respondError(w, http.StatusBadRequest, "widget_ids is required for a preview")
		return
	}
	h.runDashboard(w, r, req.toUserParams(), req.TenantID, req.Role, req.WidgetIDs)
}

func (h *Handler) runDashboard(w http.ResponseWriter, r *http.Request, params map[string]interface{}, tenantID int, role string, widgetIDs []int) {
	t, err := h.server.activeOrErr()
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "metadata cache not loaded for any tenant")
		return
	}

	resp, err := t.orchestrator.Execute(r.Context(), params, tenantID, role, widgetIDs)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func queryToUserParams(q url.Values) map[string]interface{} {
	params := make(map[string]interface{})
	if sd, ed := q.Get("start_date"), q.Get("end_date"); sd != "" && ed != "" {
		params["daterange"] = map[string]interface{}{
			"start_date": sd,
			"end_date":   ed,
			"start_time": q.Get("start_time"),
			"end_time":   q.Get("end_time"),
		}
	}
	if v := q.Get("line_id"); v != "" {
		params["line_id"] = v
	}
	if v := q.Get("line_ids"); v != "" {
		params["line_ids"] = v
	}
	if v := q.Get("shift_id"); v != "" {
		params["shift_id"] = v
	}
	if v := q.Get("area_ids"); v != "" {
		params["area_ids"] = splitCSV(v)
	}
	if v := q.Get("product_ids"); v != "" {
		params["product_ids"] = splitCSV(v)
	}
	if v := q.Get("interval"); v != "" {
		params["interval"] = v
	}
	if v := q.Get("downtime_threshold"); v != "" {
		params["downtime_threshold"] = v
	}
	if v := q.Get("show_downtime"); v != "" {
		params["show_downtime"] = v == "true" || v == "1"
	}
	return params
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseIntCSV(v string) []int {
	if v == "" {
		return nil
	}
	var out []int
	for _, p := range splitCSV(v) {
		if n, err := strconv.Atoi(p); err == nil {
			out = append(out, n)
		}
	}
	return out
}
