package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/careergraph"
	"github.com/aretw0/careergraph/pkg/domain"
	"github.com/aretw0/careergraph/pkg/ports"
	"github.com/aretw0/careergraph/pkg/reveal"
	"github.com/aretw0/careergraph/pkg/scheduler"
)

// Event is one observable effect of a simulated view.
type Event struct {
	At    time.Duration `json:"at_ms"`
	Kind  string        `json:"kind"`
	Stage string        `json:"stage,omitempty"`
	IDs   []string      `json:"ids,omitempty"`
}

func (e Event) String() string {
	return fmt.Sprintf("%8s  %-6s %-12s %v", e.At, e.Kind, e.Stage, e.IDs)
}

// SimulateOptions scripts a simulated view.
type SimulateOptions struct {
	Viewport domain.Viewport
	// Hover lists timeline nodes pointed at, in order, after the stage settles.
	Hover []string
	// Click lists achievements toggled after the hovers settle.
	Click []string
	// Settle is how long the clock advances after each intent.
	Settle time.Duration
}

// Simulate drives a view of eng on a manual clock and returns what it did.
func Simulate(ctx context.Context, eng *careergraph.Engine, opts SimulateOptions) ([]Event, domain.CanvasSnapshot, error) {
	if opts.Settle <= 0 {
		opts.Settle = 5 * time.Second
	}
	start := time.Unix(0, 0)
	clock := scheduler.NewManualClock(start)

	var events []Event
	record := func(kind, stage string, ids []string) {
		events = append(events, Event{At: clock.Now().Sub(start), Kind: kind, Stage: stage, IDs: ids})
	}
	hooks := domain.LifecycleHooks{
		OnNodeRevealed: func(_ context.Context, e *domain.RevealEvent) {
			record("nodes", e.Stage, e.NodeIDs)
		},
		OnEdgesRevealed: func(_ context.Context, e *domain.RevealEvent) {
			record("edges", e.Stage, e.EdgeIDs)
		},
		OnFitView: func(_ context.Context, e *domain.FitEvent) {
			record("fit", e.Path, nil)
		},
	}

	seq := eng.NewView(clock, ports.NopSurface{}, ports.CameraFunc(func(domain.FitViewCommand) {}),
		reveal.WithLifecycleHooks(hooks),
		reveal.WithContext(ctx),
	)
	defer seq.Close()

	if err := seq.Mount(ctx, opts.Viewport); err != nil {
		return nil, domain.CanvasSnapshot{}, err
	}
	if err := seq.PointerEnterGraph(); err != nil {
		return nil, domain.CanvasSnapshot{}, err
	}
	clock.Advance(opts.Settle)

	for _, id := range opts.Hover {
		if err := seq.PointerEnterNode(id); err != nil {
			return nil, domain.CanvasSnapshot{}, err
		}
		clock.Advance(opts.Settle)
	}
	for _, id := range opts.Click {
		if err := seq.ClickNode(id); err != nil {
			return nil, domain.CanvasSnapshot{}, err
		}
	}
	clock.Advance(opts.Settle)

	return events, seq.Snapshot(), nil
}
