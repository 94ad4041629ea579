// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package orchestrator wires the filter/line/widget resolution pipeline
// together: validate request params, resolve lines and widgets, fetch
// and enrich detections and downtime, run the widget engine, and
// assemble the final JSON-shaped response.
package orchestrator

import (
	"bytes"
	"context"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cartographus/internal/downtime"
	"github.com/tomtom215/cartographus/internal/enrich"
	"github.com/tomtom215/cartographus/internal/filters"
	"github.com/tomtom215/cartographus/internal/layout"
	"github.com/tomtom215/cartographus/internal/logging"
	"github.com/tomtom215/cartographus/internal/metacache"
	"github.com/tomtom215/cartographus/internal/partition"
	"github.com/tomtom215/cartographus/internal/repository"
	"github.com/tomtom215/cartographus/internal/resolve"
	"github.com/tomtom215/cartographus/internal/widgets"
)

// WidgetEntry pairs a widget's string key with its result, used to carry
// layout order through OrderedWidgets.
type WidgetEntry struct {
	Key    string
	Result widgets.Result
}

// OrderedWidgets marshals to a JSON object whose key order follows the
// layout-resolved widget order rather than Go's map iteration (sorted-key)
// order, preserving the order a client's layout config put widgets in.
type OrderedWidgets []WidgetEntry

// Get finds the entry for key, mirroring a map lookup for callers that
// don't care about order.
func (ow OrderedWidgets) Get(key string) (widgets.Result, bool) {
	for _, e := range ow {
		if e.Key == key {
			return e.Result, true
		}
	}
	return widgets.Result{}, false
}

// MarshalJSON implements json.Marshaler.
func (ow OrderedWidgets) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range ow {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(e.Result)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Response is the assembled dashboard payload.
type Response struct {
	Widgets  OrderedWidgets `json:"widgets"`
	Metadata Metadata       `json:"metadata"`
}

// Metadata describes the request that produced Response.Widgets.
type Metadata struct {
	TotalDetections    int      `json:"total_detections"`
	TotalDowntimeEvents int     `json:"total_downtime_events"`
	LinesQueried       []int    `json:"lines_queried"`
	IsMultiLine        bool     `json:"is_multi_line"`
	WidgetCount        int      `json:"widget_count"`
	Period             Period   `json:"period"`
	Interval           string   `json:"interval"`
	ElapsedSeconds     float64  `json:"elapsed_seconds"`
	Timestamp          string   `json:"timestamp"`
	Error              string   `json:"error,omitempty"`
}

// Period is the resolved date/time window behind a response.
type Period struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
}

// Orchestrator is the single entry point the HTTP layer calls per
// dashboard request.
type Orchestrator struct {
	filters    *filters.Engine
	lines      *resolve.LineResolver
	layout     *layout.Service
	detections *repository.DetectionRepository
	downtime   *downtime.Service
	widgets    *widgets.Engine
	cache      *metacache.Cache
	now        func() time.Time
}

// New wires an Orchestrator from its constituent services.
func New(
	filterEngine *filters.Engine,
	lines *resolve.LineResolver,
	layoutSvc *layout.Service,
	detections *repository.DetectionRepository,
	downtimeSvc *downtime.Service,
	widgetEngine *widgets.Engine,
	cache *metacache.Cache,
) *Orchestrator {
	return &Orchestrator{
		filters:    filterEngine,
		lines:      lines,
		layout:     layoutSvc,
		detections: detections,
		downtime:   downtimeSvc,
		widgets:    widgetEngine,
		cache:      cache,
		now:        time.Now,
	}
}

// Execute runs the full pipeline for one dashboard request. widgetIDs,
// when non-empty, overrides the tenant/role layout's enabled widgets
// (used by the preview endpoint).
func (o *Orchestrator) Execute(ctx context.Context, userParams map[string]interface{}, tenantID int, role string, widgetIDs []int) (Response, error) {
	start := o.now()

	validation, err := o.filters.ValidateInput(ctx, userParams)
	if err != nil {
		return Response{}, err
	}
	cleaned := validation.Cleaned

	lineIDs := o.lines.Resolve(cleaned)
	if len(lineIDs) == 0 {
		return o.emptyResponse(cleaned, "no production lines matched the request", start), nil
	}

	catalog, err := o.resolveWidgets(ctx, tenantID, role, widgetIDs)
	if err != nil {
		return Response{}, err
	}
	if len(catalog) == 0 {
		return o.emptyResponse(cleaned, "no widgets enabled for this tenant/role", start), nil
	}

	detStart, detEnd := resolveDaterange(cleaned)
	hint := partition.GetPartitionHint(detStart, detEnd)

	rawDetections := o.detections.FetchDetectionsMultiLine(ctx, lineIDs, cleaned, hint)
	detections := enrich.Enrich(rawDetections, o.cache)

	downtimeEvents, err := o.downtime.GetDowntime(ctx, lineIDs, cleaned, detections, downtimeThresholdFrom(cleaned))
	if err != nil {
		logging.Warn().Err(err).Msg("orchestrator: downtime lookup failed, continuing without it")
		downtimeEvents = nil
	}

	classNames := make([]string, 0, len(catalog))
	for _, entry := range catalog {
		classNames = append(classNames, entry.WidgetName)
	}

	results := o.widgets.ProcessWidgets(ctx, classNames, detections, downtimeEvents, lineIDs, cleaned)

	return o.assemble(results, detections, downtimeEvents, lineIDs, cleaned, detStart, detEnd, start), nil
}

func (o *Orchestrator) resolveWidgets(ctx context.Context, tenantID int, role string, widgetIDs []int) ([]metacache.WidgetCatalogEntry, error) {
	if len(widgetIDs) > 0 {
		return o.layout.ResolveWidgets(widgetIDs), nil
	}

	cfg, err := o.layout.GetLayoutConfig(ctx, tenantID, role)
	if err == layout.ErrNoTemplate {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return o.layout.ResolveWidgets(cfg.EnabledWidgetIDs), nil
}

func (o *Orchestrator) assemble(
	results []widgets.Result,
	detections []enrich.Detection,
	downtimeEvents []downtime.Event,
	lineIDs []int,
	cleaned map[string]interface{},
	periodStart, periodEnd time.Time,
	requestStart time.Time,
) Response {
	ordered := make(OrderedWidgets, 0, len(results))
	for _, r := range results {
		ordered = append(ordered, WidgetEntry{Key: strconv.Itoa(r.WidgetID), Result: r})
	}

	interval, _ := cleaned["interval"].(string)
	if interval == "" {
		interval = "hour"
	}

	return Response{
		Widgets: ordered,
		Metadata: Metadata{
			TotalDetections:     len(detections),
			TotalDowntimeEvents: len(downtimeEvents),
			LinesQueried:        lineIDs,
			IsMultiLine:         len(lineIDs) > 1,
			WidgetCount:         len(results),
			Period:              periodFromDaterange(cleaned, periodStart, periodEnd),
			Interval:            interval,
			ElapsedSeconds:      o.now().Sub(requestStart).Seconds(),
			Timestamp:           o.now().UTC().Format(time.RFC3339),
		},
	}
}

func (o *Orchestrator) emptyResponse(cleaned map[string]interface{}, reason string, requestStart time.Time) Response {
	start, end := resolveDaterange(cleaned)
	return Response{
		Widgets: OrderedWidgets{},
		Metadata: Metadata{
			LinesQueried:   []int{},
			Period:         periodFromDaterange(cleaned, start, end),
			ElapsedSeconds: o.now().Sub(requestStart).Seconds(),
			Timestamp:      o.now().UTC().Format(time.RFC3339),
			Error:          reason,
		},
	}
}

func resolveDaterange(cleaned map[string]interface{}) (time.Time, time.Time) {
	raw, ok := cleaned["daterange"]
	if !ok || raw == nil {
		end := time.Now().UTC()
		return end.AddDate(0, 0, -7), end
	}
	start, end, err := filters.NewDateRangeFilter(filters.Config{}).ParseDatetimes(raw)
	if err != nil {
		end := time.Now().UTC()
		return end.AddDate(0, 0, -7), end
	}
	return start, end
}

func periodFromDaterange(cleaned map[string]interface{}, start, end time.Time) Period {
	p := Period{
		Start: start.Format("2006-01-02"),
		End:   end.Format("2006-01-02"),
	}
	if dr, ok := cleaned["daterange"].(filters.DateRangeValue); ok {
		p.StartTime = dr.StartTime
		p.EndTime = dr.EndTime
	}
	return p
}

func downtimeThresholdFrom(cleaned map[string]interface{}) int {
	switch v := cleaned["downtime_threshold"].(type) {
	case int:
		return v
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}
