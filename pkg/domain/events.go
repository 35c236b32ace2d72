package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRevealStarted EventType = "reveal_started"
	EventNodeRevealed  EventType = "node_revealed"
	EventEdgesRevealed EventType = "edges_revealed"
	EventFitView       EventType = "fit_view"
	EventEdgeDropped   EventType = "edge_dropped"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id,omitempty"`
}

// RevealEvent reports nodes or edges entering the visible set.
type RevealEvent struct {
	EventBase
	NodeIDs []string `json:"node_ids,omitempty"`
	EdgeIDs []string `json:"edge_ids,omitempty"`
	// Stage names the plan that produced the insertion ("stage" or "achievements").
	Stage string `json:"stage,omitempty"`
}

// FitEvent reports a camera command actually issued.
type FitEvent struct {
	EventBase
	Command FitViewCommand `json:"command"`
	// Path is "debounced" or "immediate".
	Path string `json:"path"`
	// Collapsed counts the requests merged into this command.
	Collapsed int `json:"collapsed"`
}

// IntegrityEvent reports a dataset defect tolerated by the builder.
type IntegrityEvent struct {
	EventBase
	Edge   GraphEdge `json:"edge"`
	Reason string    `json:"reason"`
}

// LifecycleHooks defines callbacks for observability.
// Any hook may be nil.
type LifecycleHooks struct {
	OnRevealStarted func(context.Context, *RevealEvent)
	OnNodeRevealed  func(context.Context, *RevealEvent)
	OnEdgesRevealed func(context.Context, *RevealEvent)
	OnFitView       func(context.Context, *FitEvent)
	OnEdgeDropped   func(context.Context, *IntegrityEvent)
}

// Merge returns hooks calling h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnRevealStarted: chain(h.OnRevealStarted, other.OnRevealStarted),
		OnNodeRevealed:  chain(h.OnNodeRevealed, other.OnNodeRevealed),
		OnEdgesRevealed: chain(h.OnEdgesRevealed, other.OnEdgesRevealed),
		OnFitView:       chain(h.OnFitView, other.OnFitView),
		OnEdgeDropped:   chain(h.OnEdgeDropped, other.OnEdgeDropped),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
