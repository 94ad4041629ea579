// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package enrich left-joins raw tabular.DetectionRow batches against the
// metadata cache to produce the master enriched result every widget
// processor consumes.
package enrich

import (
	"time"

	"github.com/tomtom215/cartographus/internal/metacache"
	"github.com/tomtom215/cartographus/internal/tabular"
)

const (
	unknownAreaName    = "Desconocida"
	unknownProductName = "Desconocido"
)

// Detection is the master enriched result: a raw detection row joined
// against areas, products and (when present) lines.
type Detection struct {
	DetectionID   int64
	DetectedAt    time.Time
	AreaID        int
	AreaName      string
	AreaType      metacache.AreaType
	ProductID     int
	ProductName   string
	ProductCode   string
	ProductWeight float64
	ProductColor  string
	LineID        int
	LineName      string
	LineCode      string
}

// Enrich left-joins every row of rows against cache, producing one
// Detection per input row. Widget processors always receive the full
// enriched struct; RequiredColumns in internal/registry documents which
// fields a processor reads but is not used to physically narrow the Go
// struct (see DESIGN.md).
func Enrich(rows tabular.DetectionSet, cache *metacache.Cache) []Detection {
	out := make([]Detection, 0, len(rows.Rows))
	for _, r := range rows.Rows {
		d := Detection{
			DetectionID: r.DetectionID,
			DetectedAt:  r.DetectedAt,
			AreaID:      r.AreaID,
			ProductID:   r.ProductID,
			LineID:      r.LineID,
			AreaName:    unknownAreaName,
			ProductName: unknownProductName,
		}

		if area, ok, err := cache.GetArea(r.AreaID); err == nil && ok {
			d.AreaName = area.AreaName
			d.AreaType = area.AreaType
		}

		if product, ok, err := cache.GetProduct(r.ProductID); err == nil && ok {
			d.ProductName = product.ProductName
			d.ProductCode = product.ProductCode
			d.ProductWeight = product.ProductWeight
			d.ProductColor = product.ProductColor
		}

		if r.LineID != 0 {
			if line, ok, err := cache.GetLine(r.LineID); err == nil && ok {
				d.LineName = line.LineName
				d.LineCode = line.LineCode
			}
		}

		out = append(out, d)
	}
	return out
}
