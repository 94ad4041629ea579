// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cartographus/internal/enrich"
	"github.com/tomtom215/cartographus/internal/validation"
)

// Exporter serializes a detection set to a downloadable format. No
// concrete implementation ships with this package (format choice is an
// external concern); NotImplementedExporter satisfies the interface so
// the export seam exists without committing to a library.
type Exporter interface {
	Export(w http.ResponseWriter, detections []enrich.Detection, format string) error
}

// ErrExportNotImplemented is returned by NotImplementedExporter.
var ErrExportNotImplemented = errors.New("api: export format not implemented")

// NotImplementedExporter is the default Exporter: it always reports
// ErrExportNotImplemented.
type NotImplementedExporter struct{}

func (NotImplementedExporter) Export(http.ResponseWriter, []enrich.Detection, string) error {
	return ErrExportNotImplemented
}

type detectionQueryRequest struct {
	LineIDs   []int       `json:"line_ids" validate:"required,min=1"`
	Daterange interface{} `json:"daterange"`
}

// decodeDetectionQuery decodes and validates req, writing an error
// response and returning false if either step fails.
func decodeDetectionQuery(w http.ResponseWriter, r *http.Request, req *detectionQueryRequest) bool {
	if err := decodeJSONBody(r, req); err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	if verr := validation.ValidateStruct(req); verr != nil {
		respondStructValidationError(w, verr)
		return false
	}
	return true
}

// DetectionsForLine handles GET /detections/{line_id}.
func (h *Handler) DetectionsForLine(w http.ResponseWriter, r *http.Request) {
	lineID, err := strconv.Atoi(chi.URLParam(r, "line_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "line_id must be an integer")
		return
	}

	t, err := h.server.activeOrErr()
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "metadata cache not loaded for any tenant")
		return
	}

	tableName := t.tables.DetectionTable(lineID)
	if tableName == "" {
		respondError(w, http.StatusNotFound, "unknown line_id")
		return
	}

	cleaned := queryToUserParams(r.URL.Query())
	set := t.detections.FetchDetections(r.Context(), tableName, cleaned, "")
	detections := enrich.Enrich(set, t.cache)
	respondJSON(w, http.StatusOK, map[string]interface{}{"detections": detections, "count": len(detections)})
}

// DetectionsQuery handles POST /detections/query.
func (h *Handler) DetectionsQuery(w http.ResponseWriter, r *http.Request) {
	var req detectionQueryRequest
	if !decodeDetectionQuery(w, r, &req) {
		return
	}

	t, err := h.server.activeOrErr()
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "metadata cache not loaded for any tenant")
		return
	}

	cleaned := map[string]interface{}{}
	if req.Daterange != nil {
		cleaned["daterange"] = req.Daterange
	}

	set := t.detections.FetchDetectionsMultiLine(r.Context(), req.LineIDs, cleaned, "")
	detections := enrich.Enrich(set, t.cache)
	respondJSON(w, http.StatusOK, map[string]interface{}{"detections": detections, "count": len(detections)})
}

// DetectionsCount handles POST /detections/count.
func (h *Handler) DetectionsCount(w http.ResponseWriter, r *http.Request) {
	var req detectionQueryRequest
	if !decodeDetectionQuery(w, r, &req) {
		return
	}

	t, err := h.server.activeOrErr()
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "metadata cache not loaded for any tenant")
		return
	}

	cleaned := map[string]interface{}{}
	if req.Daterange != nil {
		cleaned["daterange"] = req.Daterange
	}

	var total int64
	for _, lineID := range req.LineIDs {
		tableName := t.tables.DetectionTable(lineID)
		if tableName == "" {
			continue
		}
		n, err := t.detections.CountDetections(r.Context(), tableName, cleaned, "")
		if err != nil {
			continue
		}
		total += n
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"count": total})
}

// DetectionsSummary handles POST /detections/summary.
func (h *Handler) DetectionsSummary(w http.ResponseWriter, r *http.Request) {
	var req detectionQueryRequest
	if !decodeDetectionQuery(w, r, &req) {
		return
	}

	t, err := h.server.activeOrErr()
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "metadata cache not loaded for any tenant")
		return
	}

	cleaned := map[string]interface{}{}
	if req.Daterange != nil {
		cleaned["daterange"] = req.Daterange
	}

	set := t.detections.FetchDetectionsMultiLine(r.Context(), req.LineIDs, cleaned, "")
	detections := enrich.Enrich(set, t.cache)

	byLine := make(map[int]int, len(req.LineIDs))
	byProduct := make(map[string]int)
	for _, d := range detections {
		byLine[d.LineID]++
		byProduct[d.ProductName]++
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"total_detections": len(detections),
		"by_line":          byLine,
		"by_product":       byProduct,
	})
}

// DetectionsExport handles POST /detections/export?format=csv|xlsx.
func (h *Handler) DetectionsExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "csv" && format != "xlsx" {
		respondError(w, http.StatusBadRequest, "format must be csv or xlsx")
		return
	}

	var req detectionQueryRequest
	if !decodeDetectionQuery(w, r, &req) {
		return
	}

	t, err := h.server.activeOrErr()
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "metadata cache not loaded for any tenant")
		return
	}

	cleaned := map[string]interface{}{}
	if req.Daterange != nil {
		cleaned["daterange"] = req.Daterange
	}
	set := t.detections.FetchDetectionsMultiLine(r.Context(), req.LineIDs, cleaned, "")
	detections := enrich.Enrich(set, t.cache)

	if err := h.exporter.Export(w, detections, format); err != nil {
		respondError(w, http.StatusNotImplemented, err.Error())
		return
	}
}
