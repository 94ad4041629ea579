// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package filters

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cartographus/internal/metacache"
)

// loadOptions dispatches on options_source to the matching cache-backed
// loader. Static options (ui_config.static_options) are handled by the
// caller before this is reached.
func loadOptions(ctx context.Context, source string, cache *metacache.Cache, cfg Config, parentValues map[string]interface{}) ([]Option, error) {
	switch source {
	case "production_lines":
		return loadProductionLineOptions(cache)
	case "shifts":
		return loadShiftOptions(cache)
	case "areas":
		return loadAreaOptions(cache, cfg, parentValues)
	case "products":
		return loadProductOptions(cache)
	default:
		return nil, nil
	}
}

// lineGroup is the shape of a filter row's additional_filter JSON for a
// single line-group alias.
type lineGroup struct {
	Alias   string `json:"alias"`
	LineIDs []int  `json:"line_ids"`
}

type lineGroupSet struct {
	Groups []lineGroup `json:"groups"`
}

// loadProductionLineOptions builds the ProductionLineFilter option list:
// a synthetic "all" entry when more than one line is active, then any
// line groups parsed from additional_filter, then individual lines.
func loadProductionLineOptions(cache *metacache.Cache) ([]Option, error) {
	lines, err := cache.GetProductionLines()
	if err != nil {
		return nil, err
	}

	var options []Option

	allIDs := make([]int, 0, len(lines))
	for id := range lines {
		allIDs = append(allIDs, id)
	}
	sort.Ints(allIDs)

	if len(allIDs) > 1 {
		options = append(options, Option{
			Value: "all",
			Label: "All lines",
			Extra: map[string]interface{}{"is_group": true, "line_ids": allIDs},
		})
	}

	filterRows, err := cache.GetFilters()
	if err != nil {
		return nil, err
	}
	filterIDs := make([]int, 0, len(filterRows))
	for fid := range filterRows {
		filterIDs = append(filterIDs, fid)
	}
	sort.Ints(filterIDs)

	for _, fid := range filterIDs {
		row := filterRows[fid]
		if row.AdditionalFilter == "" {
			continue
		}

		var single lineGroup
		if err := json.Unmarshal([]byte(row.AdditionalFilter), &single); err == nil && single.Alias != "" && len(single.LineIDs) > 0 {
			options = append(options, Option{
				Value: fmt.Sprintf("group_%d", fid),
				Label: single.Alias,
				Extra: map[string]interface{}{"is_group": true, "line_ids": single.LineIDs},
			})
			continue
		}

		var set lineGroupSet
		if err := json.Unmarshal([]byte(row.AdditionalFilter), &set); err == nil && len(set.Groups) > 0 {
			for idx, grp := range set.Groups {
				if grp.Alias == "" || len(grp.LineIDs) == 0 {
					continue
				}
				options = append(options, Option{
					Value: fmt.Sprintf("group_%d_%d", fid, idx),
					Label: grp.Alias,
					Extra: map[string]interface{}{"is_group": true, "line_ids": grp.LineIDs},
				})
			}
		}
	}

	for _, id := range allIDs {
		l := lines[id]
		options = append(options, Option{
			Value: strconv.Itoa(id),
			Label: l.LineName,
			Extra: map[string]interface{}{
				"is_group":           false,
				"line_code":          l.LineCode,
				"downtime_threshold": l.DowntimeThreshold,
			},
		})
	}

	return options, nil
}

func loadShiftOptions(cache *metacache.Cache) ([]Option, error) {
	shifts, err := cache.GetShifts()
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(shifts))
	for id := range shifts {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	options := make([]Option, 0, len(ids))
	for _, id := range ids {
		s := shifts[id]
		options = append(options, Option{
			Value: strconv.Itoa(id),
			Label: s.ShiftName,
			Extra: map[string]interface{}{"start_time": s.StartTime, "end_time": s.EndTime},
		})
	}
	return options, nil
}

func loadAreaOptions(cache *metacache.Cache, cfg Config, parentValues map[string]interface{}) ([]Option, error) {
	var lineID int
	haveLineID := false
	if cfg.DependsOn == "line_id" && parentValues != nil {
		if raw, ok := parentValues["line_id"]; ok {
			switch v := raw.(type) {
			case int:
				lineID, haveLineID = v, true
			case float64:
				lineID, haveLineID = int(v), true
			case string:
				if parsed, err := strconv.Atoi(v); err == nil {
					lineID, haveLineID = parsed, true
				}
			}
		}
	}

	if haveLineID {
		areas, err := cache.GetAreasByLine(lineID)
		if err != nil {
			return nil, err
		}
		options := make([]Option, 0, len(areas))
		for _, a := range areas {
			options = append(options, Option{
				Value: strconv.Itoa(a.AreaID),
				Label: a.AreaName,
				Extra: map[string]interface{}{"area_type": a.AreaType, "line_id": a.LineID},
			})
		}
		return options, nil
	}

	lines, err := cache.GetProductionLines()
	if err != nil {
		return nil, err
	}
	lineIDs := make([]int, 0, len(lines))
	for id := range lines {
		lineIDs = append(lineIDs, id)
	}
	sort.Ints(lineIDs)

	var options []Option
	for _, lid := range lineIDs {
		areas, err := cache.GetAreasByLine(lid)
		if err != nil {
			return nil, err
		}
		for _, a := range areas {
			options = append(options, Option{
				Value: strconv.Itoa(a.AreaID),
				Label: a.AreaName,
				Extra: map[string]interface{}{"area_type": a.AreaType, "line_id": a.LineID},
			})
		}
	}
	return options, nil
}

func loadProductOptions(cache *metacache.Cache) ([]Option, error) {
	snap := cache.Current()
	if snap == nil {
		return nil, metacache.ErrNotLoaded
	}
	ids := make([]int, 0, len(snap.Products))
	for id := range snap.Products {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	options := make([]Option, 0, len(ids))
	for _, id := range ids {
		p := snap.Products[id]
		options = append(options, Option{
			Value: strconv.Itoa(id),
			Label: p.ProductName,
			Extra: map[string]interface{}{
				"product_code":   p.ProductCode,
				"product_weight": p.ProductWeight,
				"product_color":  p.ProductColor,
			},
		})
	}
	return options, nil
}
