// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package widgets

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/cartographus/internal/downtime"
	"github.com/tomtom215/cartographus/internal/enrich"
	"github.com/tomtom215/cartographus/internal/logging"
	"github.com/tomtom215/cartographus/internal/metacache"
	"github.com/tomtom215/cartographus/internal/metrics"
	"github.com/tomtom215/cartographus/internal/registry"
)

// NewProcessor constructs the Processor for a WidgetRegistry class name.
// Assigned by the composition root (cmd/server/main.go) to the
// widgets/types package's NewProcessor function, avoiding an import
// cycle (types imports widgets for Context/Result/Processor).
var NewProcessor func(className string) (Processor, bool)

// Engine dispatches widget classes to their processors. The class cache
// is a sync.Map populated on first use: a fixed, append-only set of
// Processor instances safe to read concurrently across requests.
type Engine struct {
	cache      *metacache.Cache
	classCache sync.Map // className -> Processor
}

// NewEngine returns an Engine reading metadata through cache.
func NewEngine(cache *metacache.Cache) *Engine {
	return &Engine{cache: cache}
}

// ProcessWidgets runs every className in order, returning one Result
// per class. Unknown classes and processor panics both become
// widget_type:"error" results rather than aborting the batch. Checked
// between widgets, ctx cancellation stops processing early.
func (e *Engine) ProcessWidgets(ctx context.Context, classNames []string, detections []enrich.Detection, downtimeEvents []downtime.Event, lineIDs []int, cleaned map[string]interface{}) []Result {
	results := make([]Result, 0, len(classNames))

	for _, className := range classNames {
		if ctx.Err() != nil {
			break
		}

		entry, ok := registry.WidgetRegistry[className]
		if !ok {
			results = append(results, errorResult(0, className, fmt.Errorf("unknown widget class %q", className)))
			continue
		}

		widgetID, displayName := e.resolveCatalogEntry(className)

		proc, ok := e.getProcessor(className)
		if !ok {
			results = append(results, errorResult(widgetID, className, fmt.Errorf("no processor registered for %q", className)))
			continue
		}

		wctx := &Context{
			WidgetID:      widgetID,
			ClassName:     className,
			DisplayName:   displayName,
			Detections:    detections,
			Downtime:      downtimeEvents,
			LineIDs:       lineIDs,
			Cleaned:       cleaned,
			DefaultConfig: entry.DefaultConfig,
			Cache:         e.cache,
		}

		results = append(results, e.safeProcess(proc, wctx))
	}

	return results
}

func (e *Engine) resolveCatalogEntry(className string) (widgetID int, displayName string) {
	if e.cache == nil {
		return 0, className
	}
	entry, err := e.cache.GetWidgetCatalogEntryByName(className)
	if err != nil {
		return 0, className
	}
	name := entry.Description
	if name == "" {
		name = className
	}
	return entry.WidgetID, name
}

func (e *Engine) getProcessor(className string) (Processor, bool) {
	if v, ok := e.classCache.Load(className); ok {
		metrics.RecordCacheHit("widget_class")
		return v.(Processor), true
	}
	metrics.RecordCacheMiss("widget_class")
	if NewProcessor == nil {
		return nil, false
	}
	proc, ok := NewProcessor(className)
	if !ok {
		return nil, false
	}
	actual, _ := e.classCache.LoadOrStore(className, proc)
	return actual.(Processor), true
}

// safeProcess runs proc.Process, converting a panic into an error
// result so one misbehaving widget never aborts the response, and
// records how long the widget took.
func (e *Engine) safeProcess(proc Processor, wctx *Context) (result Result) {
	start := time.Now()
	var procErr error
	defer func() {
		if r := recover(); r != nil {
			logging.Warn().Str("widget_class", wctx.ClassName).Interface("panic", r).Msg("widget processor panicked")
			procErr = fmt.Errorf("processor panicked: %v", r)
			result = errorResult(wctx.WidgetID, wctx.ClassName, procErr)
		}
		metrics.RecordWidgetProcessing(wctx.ClassName, time.Since(start), procErr)
	}()
	result = proc.Process(wctx)
	if result.WidgetType == "error" {
		procErr = fmt.Errorf("widget %q returned an error result", wctx.ClassName)
	}
	return result
}
