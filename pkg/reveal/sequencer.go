package reveal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/aretw0/careergraph/internal/logging"
	"github.com/aretw0/careergraph/pkg/domain"
	"github.com/aretw0/careergraph/pkg/layout"
	"github.com/aretw0/careergraph/pkg/ports"
	"github.com/aretw0/careergraph/pkg/scheduler"
	"github.com/aretw0/careergraph/pkg/store"
	"github.com/aretw0/careergraph/pkg/viewport"
)

// ErrNotMounted is returned for intents issued before Mount.
var ErrNotMounted = errors.New("view not mounted")

// Phase is the coarse progress of the global reveal.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseRevealing Phase = "revealing"
	PhaseComplete  Phase = "complete"
)

// Layouter computes the positions of every placeable node for a viewport.
type Layouter interface {
	Layout(ctx context.Context, vp domain.Viewport) ([]domain.PositionedNode, error)
}

// LayouterFunc adapts a function to Layouter.
type LayouterFunc func(ctx context.Context, vp domain.Viewport) ([]domain.PositionedNode, error)

// Layout implements Layouter.
func (f LayouterFunc) Layout(ctx context.Context, vp domain.Viewport) ([]domain.PositionedNode, error) {
	return f(ctx, vp)
}

// StaticLayouter lays g out with the closed-form engine on every call.
func StaticLayouter(g domain.Graph, margins domain.Margins) Layouter {
	return LayouterFunc(func(_ context.Context, vp domain.Viewport) ([]domain.PositionedNode, error) {
		area := layout.SafeAreaFor(vp, margins)
		return layout.Compute(g.Nodes, g.Edges, area, layout.WithTimeline(g.Timeline...)), nil
	})
}

// ValidViewport reports ErrInvalidViewport for non-positive or non-finite sizes.
func ValidViewport(vp domain.Viewport) error {
	for _, v := range []float64{vp.Width, vp.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return fmt.Errorf("%w: %gx%g", domain.ErrInvalidViewport, vp.Width, vp.Height)
		}
	}
	return nil
}

// Sequencer is the reveal state machine of one view.
type Sequencer struct {
	graph    domain.Graph
	layouter Layouter
	surface  ports.Surface

	sched  *scheduler.Scheduler
	fit    *viewport.Coordinator
	store  *store.Store
	canvas *Canvas

	positions   map[string]domain.PositionedNode
	viewport    domain.Viewport
	expanded    map[string]bool
	unsubscribe func()

	ctx       context.Context
	sessionID string
	hooks     domain.LifecycleHooks
	logger    *slog.Logger

	mounted bool
	closed  bool
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithLogger configures a logger for the Sequencer.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sequencer) {
		s.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Sequencer) {
		s.hooks = hooks
	}
}

// WithStore injects the expansion store. A fresh store is used otherwise.
func WithStore(st *store.Store) Option {
	return func(s *Sequencer) {
		s.store = st
	}
}

// WithSessionID tags events and snapshots with id.
func WithSessionID(id string) Option {
	return func(s *Sequencer) {
		s.sessionID = id
	}
}

// WithContext sets the context handed to hooks and layouts triggered by timers.
func WithContext(ctx context.Context) Option {
	return func(s *Sequencer) {
		s.ctx = ctx
	}
}

// New creates a Sequencer for graph. Timers run on clock; updates go to surface and camera.
func New(graph domain.Graph, layouter Layouter, clock scheduler.Clock, surface ports.Surface, camera ports.Camera, opts ...Option) *Sequencer {
	s := &Sequencer{
		graph:    graph,
		layouter: layouter,
		surface:  surface,
		canvas:   NewCanvas(),
		expanded: map[string]bool{},
		ctx:      context.Background(),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = store.New()
	}
	if s.sessionID != "" {
		s.logger = s.logger.With("session_id", s.sessionID)
	}

	s.sched = scheduler.New(clock, scheduler.WithLogger(s.logger))
	s.fit = viewport.New(clock, camera,
		viewport.WithLogger(s.logger),
		viewport.WithLifecycleHooks(s.hooks),
		viewport.WithContext(s.ctx),
	)
	s.unsubscribe = s.store.Subscribe(s.onStateChange)
	return s
}

// Mount lays the graph out for vp and shows the root node.
func (s *Sequencer) Mount(ctx context.Context, vp domain.Viewport) error {
	if s.closed {
		return domain.ErrViewClosed
	}
	if err := s.relayout(ctx, vp); err != nil {
		return err
	}
	s.mounted = true

	root, ok := s.graph.Root()
	if !ok {
		s.logger.Warn("Graph has no root node, nothing to show")
		return nil
	}
	s.insertNodes(StageGraph, []string{root.ID})
	s.fit.FitNow(viewport.DefaultFitView)
	return nil
}

// PointerEnterGraph starts the global reveal. Only the first call has an effect.
func (s *Sequencer) PointerEnterGraph() error {
	if err := s.ready(); err != nil {
		return err
	}
	if !s.store.StartReveal() {
		s.logger.Debug("Reveal already started")
		return nil
	}

	steps := StagePlan(s.graph)
	s.logger.Info("Reveal started", "steps", len(steps))
	if s.hooks.OnRevealStarted != nil {
		s.hooks.OnRevealStarted(s.ctx, &domain.RevealEvent{
			EventBase: s.event(domain.EventRevealStarted),
			Stage:     StageGraph,
		})
	}
	s.run(StageGraph, steps)
	return nil
}

// PointerEnterNode reveals the achievements of a visible timeline node, once per node.
func (s *Sequencer) PointerEnterNode(id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	node, ok := s.graph.Node(id)
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownNode, id)
	}
	if !node.Type.IsTimeline() {
		return nil
	}
	if !s.canvas.HasNode(id) {
		s.logger.Debug("Hover on hidden timeline node ignored", "node_id", id)
		return nil
	}
	if !s.store.MarkCompanyRevealed(id) {
		return nil
	}

	steps := AchievementPlan(s.graph, id)
	if len(steps) == 0 {
		s.logger.Debug("Timeline node has no achievements", "node_id", id)
		return nil
	}
	s.logger.Info("Revealing achievements", "node_id", id, "count", len(steps)-1)
	s.run(StageAchievements, steps)
	return nil
}

// PointerLeaveNode is accepted for symmetry; leaving never hides anything.
func (s *Sequencer) PointerLeaveNode(id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if _, ok := s.graph.Node(id); !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownNode, id)
	}
	return nil
}

// ClickNode toggles the detail view of a visible achievement.
// Clicks on every other node are accepted and ignored.
func (s *Sequencer) ClickNode(id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	node, ok := s.graph.Node(id)
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownNode, id)
	}
	if node.Type != domain.NodeTypeAchievement || !s.canvas.HasNode(id) {
		return nil
	}
	s.store.ToggleNode(id)
	return nil
}

// Resize recomputes the layout for vp. The visible set is kept; positions change.
func (s *Sequencer) Resize(ctx context.Context, vp domain.Viewport) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.relayout(ctx, vp); err != nil {
		return err
	}
	s.pushNodes()
	s.pushEdges()
	s.fit.FitNow(viewport.DefaultFitView)
	return nil
}

// Close cancels every pending timer. Callbacks already due never run afterwards.
func (s *Sequencer) Close() {
	if s.closed {
		return
	}
	s.closed = true
	cancelled := s.sched.Close()
	s.fit.Cancel()
	s.unsubscribe()
	s.logger.Debug("View closed", "cancelled_tasks", cancelled)
}

// Phase reports the progress of the global reveal.
func (s *Sequencer) Phase() Phase {
	switch {
	case !s.store.HasStartedReveal():
		return PhaseIdle
	case s.sched.Len() > 0:
		return PhaseRevealing
	default:
		return PhaseComplete
	}
}

// Snapshot returns what the view currently shows.
func (s *Sequencer) Snapshot() domain.CanvasSnapshot {
	return domain.CanvasSnapshot{
		SessionID: s.sessionID,
		Nodes:     s.canvas.Nodes(s.expanded),
		Edges:     s.canvas.Edges(),
	}
}

// State returns the expansion store snapshot.
func (s *Sequencer) State() domain.RevealState {
	return s.store.Snapshot()
}

// Store returns the expansion store of the view.
func (s *Sequencer) Store() *store.Store {
	return s.store
}

// Pending returns the names of the steps still waiting.
func (s *Sequencer) Pending() []string {
	return s.sched.Pending()
}

// Viewport returns the size of the last layout.
func (s *Sequencer) Viewport() domain.Viewport {
	return s.viewport
}

// Closed reports whether Close was called.
func (s *Sequencer) Closed() bool {
	return s.closed
}

func (s *Sequencer) ready() error {
	if s.closed {
		return domain.ErrViewClosed
	}
	if !s.mounted {
		return ErrNotMounted
	}
	return nil
}

func (s *Sequencer) relayout(ctx context.Context, vp domain.Viewport) error {
	if err := ValidViewport(vp); err != nil {
		return err
	}
	nodes, err := s.layouter.Layout(ctx, vp)
	if err != nil {
		return fmt.Errorf("layout %gx%g: %w", vp.Width, vp.Height, err)
	}
	s.positions = domain.IndexByID(nodes)
	s.viewport = vp
	if removed := s.canvas.Relayout(s.positions); len(removed) > 0 {
		s.logger.Warn("Visible nodes lost their position", "node_ids", removed)
	}
	return nil
}

func (s *Sequencer) run(stage string, steps []Step) {
	for _, step := range steps {
		s.sched.Schedule(step.Name(), step.Delay, func() { s.apply(stage, step) })
	}
}

func (s *Sequencer) apply(stage string, step Step) {
	if s.closed {
		return
	}
	switch step.Action {
	case ActionInsertNodes:
		s.insertNodes(stage, step.NodeIDs)
	case ActionInsertEdges:
		s.insertEdges(stage, step.NodeIDs)
	}
}

func (s *Sequencer) insertNodes(stage string, ids []string) {
	var added []string
	for _, id := range ids {
		pos, ok := s.positions[id]
		if !ok {
			s.logger.Debug("Node has no position, skipped", "node_id", id)
			continue
		}
		if s.canvas.AddNode(pos) {
			added = append(added, id)
		}
	}
	if len(added) == 0 {
		return
	}

	s.pushNodes()
	if s.hooks.OnNodeRevealed != nil {
		s.hooks.OnNodeRevealed(s.ctx, &domain.RevealEvent{
			EventBase: s.event(domain.EventNodeRevealed),
			NodeIDs:   added,
			Stage:     stage,
		})
	}
	s.fit.Request()
}

func (s *Sequencer) insertEdges(stage string, ids []string) {
	var candidates []domain.GraphEdge
	seen := map[string]bool{}
	for _, id := range ids {
		for _, e := range s.graph.EdgesTouching(id) {
			if !seen[e.ID()] {
				seen[e.ID()] = true
				candidates = append(candidates, e)
			}
		}
	}

	added := s.canvas.AddEdges(candidates)
	if len(added) == 0 {
		return
	}
	edgeIDs := make([]string, len(added))
	for i, e := range added {
		edgeIDs[i] = e.ID
	}

	s.pushEdges()
	if s.hooks.OnEdgesRevealed != nil {
		s.hooks.OnEdgesRevealed(s.ctx, &domain.RevealEvent{
			EventBase: s.event(domain.EventEdgesRevealed),
			EdgeIDs:   edgeIDs,
			Stage:     stage,
		})
	}
	s.fit.Request()
}

func (s *Sequencer) onStateChange(state domain.RevealState) {
	if s.closed || sameSet(s.expanded, state.ExpandedNodes) {
		return
	}
	s.expanded = state.ExpandedNodes
	s.pushNodes()
	s.fit.Request()
}

func (s *Sequencer) pushNodes() {
	s.surface.SetNodes(s.canvas.Nodes(s.expanded))
}

func (s *Sequencer) pushEdges() {
	s.surface.SetEdges(s.canvas.Edges())
}

func (s *Sequencer) event(t domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: s.sched.Clock().Now(),
		Type:      t,
		SessionID: s.sessionID,
	}
}

func sameSet(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}
