// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package filters implements FilterEngine and the six concrete filter
// contracts it dispatches to: DateRangeFilter, DropdownFilter,
// MultiselectFilter, TextFilter, NumberFilter and ToggleFilter.
//
// Validation never raises for bad user input: Engine.ValidateInput
// returns a best-effort cleaned parameter set alongside a per-field
// error map, and the orchestrator proceeds with cleaned regardless of
// validity. Only a missing metadata cache surfaces as an error, since
// option-based filters cannot validate without it.
package filters
