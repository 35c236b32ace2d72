package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/careergraph/internal/logging"
	"github.com/aretw0/careergraph/pkg/domain"
	"github.com/aretw0/careergraph/pkg/reveal"
	"github.com/aretw0/careergraph/pkg/scheduler"
	"github.com/google/uuid"
)

// View is one live graph view.
type View struct {
	ID        string
	CreatedAt time.Time

	loop *scheduler.Loop
	seq  *reveal.Sequencer
	feed *Feed
}

// Feed returns the update feed of the view.
func (v *View) Feed() *Feed {
	return v.feed
}

// Info is the JSON description of a view.
type Info struct {
	ID        string             `json:"id"`
	CreatedAt time.Time          `json:"created_at"`
	Phase     reveal.Phase       `json:"phase"`
	Viewport  domain.Viewport    `json:"viewport"`
	State     domain.RevealState `json:"state"`
	Pending   []string           `json:"pending,omitempty"`
	Visible   int                `json:"visible_nodes"`
}

// ClockFactory builds the time source of a view from its loop.
type ClockFactory func(loop *scheduler.Loop) scheduler.Clock

// Manager owns every live view of one graph.
type Manager struct {
	graph    domain.Graph
	layouter reveal.Layouter

	mu    sync.RWMutex
	views map[string]*View

	clock     ClockFactory
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	queueSize int
	newID     func() string
	onCount   func(live int)
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithLifecycleHooks registers hooks handed to every view.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Manager) {
		m.hooks = hooks
	}
}

// WithClock overrides the time source of new views. Views use a LoopClock by default.
func WithClock(factory ClockFactory) Option {
	return func(m *Manager) {
		m.clock = factory
	}
}

// WithQueueSize sets the event loop capacity of each view.
func WithQueueSize(n int) Option {
	return func(m *Manager) {
		m.queueSize = n
	}
}

// WithIDGenerator overrides the session id generator.
func WithIDGenerator(gen func() string) Option {
	return func(m *Manager) {
		m.newID = gen
	}
}

// WithCountObserver is called with the number of live views after every create and close.
func WithCountObserver(fn func(live int)) Option {
	return func(m *Manager) {
		m.onCount = fn
	}
}

// NewManager creates a Manager serving views of graph.
func NewManager(graph domain.Graph, layouter reveal.Layouter, opts ...Option) *Manager {
	m := &Manager{
		graph:     graph,
		layouter:  layouter,
		views:     make(map[string]*View),
		clock:     func(loop *scheduler.Loop) scheduler.Clock { return scheduler.NewLoopClock(loop) },
		logger:    logging.NewNop(), // Default to no-op
		queueSize: 64,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create mounts a new view for vp.
func (m *Manager) Create(ctx context.Context, vp domain.Viewport) (*View, error) {
	if err := reveal.ValidViewport(vp); err != nil {
		return nil, err
	}
	m.mu.RLock()
	graph, layouter := m.graph, m.layouter
	m.mu.RUnlock()

	id := m.newID()
	loop := scheduler.NewLoop(m.queueSize)
	feed := NewFeed(id)
	seq := reveal.New(graph, layouter, m.clock(loop), feed, feed,
		reveal.WithSessionID(id),
		reveal.WithLogger(m.logger),
		reveal.WithLifecycleHooks(m.hooks),
	)

	if err := loop.Do(ctx, func() error { return seq.Mount(ctx, vp) }); err != nil {
		loop.Close()
		feed.Close()
		return nil, fmt.Errorf("mount view: %w", err)
	}

	v := &View{ID: id, CreatedAt: time.Now(), loop: loop, seq: seq, feed: feed}
	m.mu.Lock()
	m.views[id] = v
	live := len(m.views)
	m.mu.Unlock()
	m.observeCount(live)

	m.logger.Info("View created", "session_id", id, "width", vp.Width, "height", vp.Height)
	return v, nil
}

// Get returns the view id.
func (m *Manager) Get(id string) (*View, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.views[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return v, nil
}

// Do runs fn with the view's sequencer on the view's loop.
func (m *Manager) Do(ctx context.Context, id string, fn func(*reveal.Sequencer) error) error {
	v, err := m.Get(id)
	if err != nil {
		return err
	}
	err = v.loop.Do(ctx, func() error { return fn(v.seq) })
	if errors.Is(err, scheduler.ErrLoopClosed) {
		return domain.ErrViewClosed
	}
	return err
}

// Dispatch applies intent to the view id.
func (m *Manager) Dispatch(ctx context.Context, id string, intent Intent) error {
	return m.Do(ctx, id, func(seq *reveal.Sequencer) error {
		return intent.Apply(ctx, seq)
	})
}

// Info describes the view id.
func (m *Manager) Info(ctx context.Context, id string) (Info, error) {
	var info Info
	err := m.Do(ctx, id, func(seq *reveal.Sequencer) error {
		snap := seq.Snapshot()
		info = Info{
			ID:       id,
			Phase:    seq.Phase(),
			Viewport: seq.Viewport(),
			State:    seq.State(),
			Pending:  seq.Pending(),
			Visible:  len(snap.Nodes),
		}
		return nil
	})
	if err != nil {
		return Info{}, err
	}
	if v, err := m.Get(id); err == nil {
		info.CreatedAt = v.CreatedAt
	}
	return info, nil
}

// Snapshot returns the canvas of the view id.
func (m *Manager) Snapshot(ctx context.Context, id string) (domain.CanvasSnapshot, error) {
	var snap domain.CanvasSnapshot
	err := m.Do(ctx, id, func(seq *reveal.Sequencer) error {
		snap = seq.Snapshot()
		return nil
	})
	return snap, err
}

// Close tears the view id down: its timers are cancelled, then its loop stops.
func (m *Manager) Close(ctx context.Context, id string) error {
	m.mu.Lock()
	v, ok := m.views[id]
	delete(m.views, id)
	live := len(m.views)
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	m.observeCount(live)

	err := v.loop.Do(ctx, func() error {
		v.seq.Close()
		return nil
	})
	v.loop.Close()
	v.feed.Close()
	if err != nil {
		m.logger.Warn("View closed without draining its loop", "session_id", id, "err", err)
	}
	m.logger.Info("View closed", "session_id", id)
	return nil
}

// CloseAll tears every view down.
func (m *Manager) CloseAll(ctx context.Context) {
	for _, id := range m.List() {
		_ = m.Close(ctx, id)
	}
}

// List returns the live view ids sorted.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.views))
	for id := range m.views {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of live views.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.views)
}

// Graph returns the graph served to new views.
func (m *Manager) Graph() domain.Graph {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.graph
}

// Reset swaps the graph served to new views. Live views keep the graph they were mounted with.
func (m *Manager) Reset(graph domain.Graph, layouter reveal.Layouter) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.graph = graph
	m.layouter = layouter
}

func (m *Manager) observeCount(live int) {
	if m.onCount != nil {
		m.onCount(live)
	}
}
