// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package registry is the authoritative, code-embedded source of type
// information for filters and widgets. FilterRow and WidgetCatalogEntry
// rows in the database reference entries here by class name only;
// unknown class names are skipped with a warning rather than failing the
// request.
package registry
