// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFilters_ResolvesActiveFilters(t *testing.T) {
	s, _, _ := newTestServer(t)
	h := NewHandler(s, nil)

	req := httptest.NewRequest(http.MethodGet, "/filters", nil)
	rec := httptest.NewRecorder()

	h.Filters(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Filters []map[string]interface{} `json:"filters"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Filters) != 2 {
		t.Errorf("expected 2 active filters, got %d", len(resp.Filters))
	}
}

func TestFilterOptions_UnknownClassName(t *testing.T) {
	s, _, _ := newTestServer(t)
	h := NewHandler(s, nil)

	req := httptest.NewRequest(http.MethodGet, "/filters/NoSuchFilter/options", nil)
	req = withChiURLParam(req, "class_name", "NoSuchFilter")
	rec := httptest.NewRecorder()

	h.FilterOptions(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestFilterOptions_KnownClassName(t *testing.T) {
	s, _, _ := newTestServer(t)
	h := NewHandler(s, nil)

	req := httptest.NewRequest(http.MethodGet, "/filters/ProductionLineFilter/options", nil)
	req = withChiURLParam(req, "class_name", "ProductionLineFilter")
	rec := httptest.NewRecorder()

	h.FilterOptions(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}
