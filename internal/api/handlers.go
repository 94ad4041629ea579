// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"time"
)

// Handler holds the dependencies every route needs: the tenant-switching
// Server, an export seam, and a process start time for uptime reporting.
type Handler struct {
	server    *Server
	exporter  Exporter
	startTime time.Time
}

// NewHandler returns a Handler backed by server. Pass nil for exporter
// to use NotImplementedExporter.
func NewHandler(server *Server, exporter Exporter) *Handler {
	if exporter == nil {
		exporter = NotImplementedExporter{}
	}
	return &Handler{
		server:    server,
		exporter:  exporter,
		startTime: time.Now(),
	}
}
