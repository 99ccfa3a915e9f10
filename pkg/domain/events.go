package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRoutePlanned  EventType = "route_planned"
	EventRouteNotFound EventType = "route_not_found"
	EventSegmentStart  EventType = "segment_start"
	EventSegmentEnd    EventType = "segment_end"
	EventFramePresent  EventType = "frame_present"
	EventFetchFailure  EventType = "fetch_failure"
	EventPreempt       EventType = "preempt"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// RouteEvent reports planning outcomes.
type RouteEvent struct {
	EventBase
	From     State `json:"from"`
	To       State `json:"to"`
	Segments int   `json:"segments,omitempty"`
}

// SegmentEvent reports playback progress through one sequence.
type SegmentEvent struct {
	EventBase
	PathID    string    `json:"path_id"`
	Direction Direction `json:"direction"`
}

// FetchEvent reports a failed sequence or frame fetch.
type FetchEvent struct {
	EventBase
	PathID string `json:"path_id"`
	File   string `json:"file,omitempty"`
	Err    error  `json:"-"`
}

// LifecycleHooks defines callbacks for rig observability. Nil hooks
// are skipped.
type LifecycleHooks struct {
	OnRoutePlanned  func(context.Context, *RouteEvent)
	OnRouteNotFound func(context.Context, *RouteEvent)
	OnSegmentStart  func(context.Context, *SegmentEvent)
	OnSegmentEnd    func(context.Context, *SegmentEvent)
	OnFramePresent  func(context.Context, *SegmentEvent)
	OnFetchFailure  func(context.Context, *FetchEvent)
	OnPreempt       func(context.Context, *RouteEvent)
}
