// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package widgets dispatches enriched request data to per-widget-class
// processors and assembles their results, generalizing
// internal/detection's RuleType→Detector registry dispatch into a
// ClassName→Processor one.
package widgets

import (
	"github.com/tomtom215/cartographus/internal/downtime"
	"github.com/tomtom215/cartographus/internal/enrich"
	"github.com/tomtom215/cartographus/internal/metacache"
)

// Context is everything a single widget's Process call needs: scoped
// request data plus enough metadata to label its own result.
type Context struct {
	WidgetID      int
	ClassName     string
	DisplayName   string
	Detections    []enrich.Detection
	Downtime      []downtime.Event
	LineIDs       []int
	Cleaned       map[string]interface{}
	DefaultConfig map[string]interface{}
	Cache         *metacache.Cache
}

// Result is the uniform shape every widget processor returns.
// Empty-input processors set Data to nil and Metadata["empty"] = true.
type Result struct {
	WidgetID   int                    `json:"widget_id"`
	WidgetName string                 `json:"widget_name"`
	WidgetType string                 `json:"widget_type"`
	Data       interface{}            `json:"data"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// Processor is the contract every widget-class implementation satisfies.
type Processor interface {
	Process(ctx *Context) Result
}

// ExternalSource is the seam source_type=="external" widgets route
// through. No concrete broker ships with this package; callers that
// need one inject an implementation when constructing the Engine.
type ExternalSource interface {
	Fetch(apiSourceID string, cleaned map[string]interface{}) (interface{}, error)
}

func emptyResult(ctx *Context) Result {
	return Result{
		WidgetID:   ctx.WidgetID,
		WidgetName: ctx.DisplayName,
		WidgetType: ctx.ClassName,
		Data:       nil,
		Metadata:   map[string]interface{}{"empty": true},
	}
}

func errorResult(widgetID int, className string, err error) Result {
	return Result{
		WidgetID:   widgetID,
		WidgetName: className,
		WidgetType: "error",
		Data:       nil,
		Metadata:   map[string]interface{}{"error": err.Error()},
	}
}
