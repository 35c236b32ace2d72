package careergraph

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/careergraph/internal/logging"
	"github.com/aretw0/careergraph/pkg/adapters/memory"
	"github.com/aretw0/careergraph/pkg/dataset"
	"github.com/aretw0/careergraph/pkg/domain"
	"github.com/aretw0/careergraph/pkg/layout"
	"github.com/aretw0/careergraph/pkg/ports"
	"github.com/aretw0/careergraph/pkg/render"
	"github.com/aretw0/careergraph/pkg/reveal"
	"github.com/aretw0/careergraph/pkg/scheduler"
	"github.com/aretw0/careergraph/pkg/session"
)

// Engine is the high-level entry point of the library.
// It owns the built graph and memoizes its layouts. Safe for concurrent use.
type Engine struct {
	source   ports.DatasetSource
	cache    ports.LayoutCache
	margins  domain.Margins
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	observer func(hit bool)

	mu          sync.RWMutex
	graph       domain.Graph
	report      *dataset.Report
	fingerprint string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithDatasetSource replaces the embedded dataset.
func WithDatasetSource(src ports.DatasetSource) Option {
	return func(e *Engine) {
		e.source = src
	}
}

// WithLayoutCache replaces the in-memory layout cache.
func WithLayoutCache(cache ports.LayoutCache) Option {
	return func(e *Engine) {
		e.cache = cache
	}
}

// WithMargins sets the chrome reservations. Zero fields keep their defaults.
func WithMargins(m domain.Margins) Option {
	return func(e *Engine) {
		e.margins = layout.WithDefaults(m)
	}
}

// WithLifecycleHooks registers observability hooks for the builder and every view.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithCacheObserver is called after every layout cache lookup.
func WithCacheObserver(fn func(hit bool)) Option {
	return func(e *Engine) {
		e.observer = fn
	}
}

// New loads and builds the dataset.
func New(ctx context.Context, opts ...Option) (*Engine, error) {
	eng := &Engine{
		margins: layout.DefaultMargins,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.source == nil {
		eng.source = memory.NewDefaultLoader()
	}
	if eng.cache == nil {
		eng.cache = memory.NewLayoutCache()
	}

	if err := eng.Reload(ctx); err != nil {
		return nil, err
	}
	return eng, nil
}

// Reload reads the dataset source again and rebuilds the graph.
func (e *Engine) Reload(ctx context.Context) error {
	ds, err := e.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	graph, report := dataset.Build(ds,
		dataset.WithLogger(e.logger),
		dataset.WithLifecycleHooks(e.hooks),
		dataset.WithContext(ctx),
	)
	if _, ok := graph.Root(); !ok {
		return fmt.Errorf("dataset has no root node")
	}
	fp, err := dataset.Fingerprint(graph)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.graph, e.report, e.fingerprint = graph, report, fp
	e.mu.Unlock()

	e.logger.Info("Graph loaded", "nodes", len(graph.Nodes), "edges", len(graph.Edges), "fingerprint", fp)
	return nil
}

// Graph returns the current graph.
func (e *Engine) Graph() domain.Graph {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.graph
}

// Report returns the integrity report of the last build.
func (e *Engine) Report() *dataset.Report {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.report
}

// Fingerprint identifies the current graph.
func (e *Engine) Fingerprint() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.fingerprint
}

// Margins returns the chrome reservations used by every layout.
func (e *Engine) Margins() domain.Margins {
	return e.margins
}

// Layout returns the positions of every placeable node of the current graph for vp.
func (e *Engine) Layout(ctx context.Context, vp domain.Viewport) ([]domain.PositionedNode, error) {
	e.mu.RLock()
	graph, fp := e.graph, e.fingerprint
	e.mu.RUnlock()
	return e.layout(ctx, graph, fp, vp)
}

// Layouter returns a Layouter bound to the current graph, for views.
func (e *Engine) Layouter() reveal.Layouter {
	e.mu.RLock()
	graph, fp := e.graph, e.fingerprint
	e.mu.RUnlock()
	return reveal.LayouterFunc(func(ctx context.Context, vp domain.Viewport) ([]domain.PositionedNode, error) {
		return e.layout(ctx, graph, fp, vp)
	})
}

func (e *Engine) layout(ctx context.Context, graph domain.Graph, fp string, vp domain.Viewport) ([]domain.PositionedNode, error) {
	if err := reveal.ValidViewport(vp); err != nil {
		return nil, err
	}
	key := LayoutKey(fp, vp, e.margins)

	nodes, ok, err := e.cache.Get(ctx, key)
	if err != nil {
		e.logger.Warn("Layout cache read failed", "key", key, "err", err)
	}
	if e.observer != nil {
		e.observer(ok)
	}
	if ok {
		return nodes, nil
	}

	nodes, err = reveal.StaticLayouter(graph, e.margins).Layout(ctx, vp)
	if err != nil {
		return nil, err
	}
	if err := e.cache.Set(ctx, key, nodes); err != nil {
		e.logger.Warn("Layout cache write failed", "key", key, "err", err)
	}
	return nodes, nil
}

// LayoutKey is the memo key of a layout pass.
func LayoutKey(fingerprint string, vp domain.Viewport, m domain.Margins) string {
	return fmt.Sprintf("%s:%gx%g:%g,%g,%g,%g", fingerprint, vp.Width, vp.Height, m.Header, m.Footer, m.Left, m.Right)
}

// NewView creates an unmounted view of the current graph.
func (e *Engine) NewView(clock scheduler.Clock, surface ports.Surface, camera ports.Camera, opts ...reveal.Option) *reveal.Sequencer {
	base := []reveal.Option{
		reveal.WithLogger(e.logger),
		reveal.WithLifecycleHooks(e.hooks),
	}
	return reveal.New(e.Graph(), e.Layouter(), clock, surface, camera, append(base, opts...)...)
}

// Sessions creates a session manager serving the current graph.
func (e *Engine) Sessions(opts ...session.Option) *session.Manager {
	base := []session.Option{
		session.WithLogger(e.logger),
		session.WithLifecycleHooks(e.hooks),
	}
	return session.NewManager(e.Graph(), e.Layouter(), append(base, opts...)...)
}

// Mermaid exports the current graph as a Mermaid flowchart.
func (e *Engine) Mermaid(overlay *render.GraphOverlay) string {
	return render.GenerateMermaid(e.Graph(), overlay)
}

// Watch returns a channel that signals when the dataset source changes.
// Returns error if the source does not support watching.
func (e *Engine) Watch(ctx context.Context) (<-chan string, error) {
	if w, ok := e.source.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, fmt.Errorf("current dataset source does not support watching")
}

// Source returns the dataset source used by the engine.
func (e *Engine) Source() ports.DatasetSource {
	return e.source
}
