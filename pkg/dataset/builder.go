package dataset

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/careergraph/internal/logging"
	"github.com/aretw0/careergraph/pkg/domain"
)

type builder struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	ctx    context.Context
	now    func() time.Time

	graph  domain.Graph
	report *Report
	types  map[string]domain.NodeType
	edges  map[string]bool
	root   string
}

// Option configures Build.
type Option func(*builder)

// WithLogger configures a logger for the builder.
func WithLogger(logger *slog.Logger) Option {
	return func(b *builder) {
		b.logger = logger
	}
}

// WithLifecycleHooks registers the OnEdgeDropped hook.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(b *builder) {
		b.hooks = hooks
	}
}

// WithContext sets the context handed to hooks.
func WithContext(ctx context.Context) Option {
	return func(b *builder) {
		b.ctx = ctx
	}
}

// Build produces the graph of ds and the report of every defect it tolerated.
func Build(ds domain.Dataset, opts ...Option) (domain.Graph, *Report) {
	b := &builder{
		logger: logging.NewNop(),
		ctx:    context.Background(),
		now:    time.Now,
		report: &Report{},
		types:  make(map[string]domain.NodeType),
		edges:  make(map[string]bool),
	}
	for _, opt := range opts {
		opt(b)
	}

	for _, d := range ds.Declarations {
		b.addNode(domain.GraphNode{ID: d.ID, Type: d.Type, Label: d.Label, Period: d.Period})
	}
	for _, a := range ds.Achievements {
		b.addNode(domain.GraphNode{
			ID:           a.ID,
			Type:         domain.NodeTypeAchievement,
			Label:        a.Title,
			Period:       a.Period,
			Description:  a.Description,
			Impact:       a.Impact,
			Technologies: a.Technologies,
			Company:      a.Company,
			Category:     a.Category,
		})
	}

	for _, e := range ds.Edges {
		b.addEdge(e)
	}
	b.deriveProjectEdges(ds.Achievements)
	b.timeline(ds)

	if !b.report.OK() {
		b.logger.Warn("Dataset has integrity defects",
			"dropped_edges", len(b.report.DroppedEdges),
			"rejected_nodes", len(b.report.RejectedNodes),
			"unslotted", len(b.report.Unslotted))
	}
	b.logger.Debug("Graph built", "nodes", len(b.graph.Nodes), "edges", len(b.graph.Edges))
	return b.graph, b.report
}

func (b *builder) addNode(n domain.GraphNode) {
	switch {
	case n.ID == "":
		b.reject(n.ID, ReasonEmptyID)
		return
	case strings.Contains(n.ID, domain.EdgeSeparator):
		b.reject(n.ID, ReasonReservedID)
		return
	case !n.Type.Valid():
		b.reject(n.ID, ReasonInvalidType)
		return
	case b.types[n.ID] != "":
		b.reject(n.ID, ReasonDuplicateID)
		return
	case n.Type == domain.NodeTypeRoot && b.root != "":
		b.reject(n.ID, ReasonExtraRoot)
		return
	}
	if !n.Category.Valid() {
		b.reject(n.ID, ReasonInvalidCategory)
		n.Category = ""
	}
	if n.Type == domain.NodeTypeRoot {
		b.root = n.ID
	}
	b.types[n.ID] = n.Type
	b.graph.Nodes = append(b.graph.Nodes, n)
}

func (b *builder) reject(id, reason string) {
	b.logger.Warn("Node rejected", "node_id", id, "reason", reason)
	b.report.RejectedNodes = append(b.report.RejectedNodes, RejectedNode{ID: id, Reason: reason})
}

func (b *builder) addEdge(e domain.GraphEdge) bool {
	if reason := b.checkEdge(e); reason != "" {
		b.drop(e, reason)
		return false
	}
	b.edges[e.ID()] = true
	b.graph.Edges = append(b.graph.Edges, e)
	return true
}

// checkEdge returns why e cannot be kept, or the empty string.
func (b *builder) checkEdge(e domain.GraphEdge) string {
	src, ok := b.types[e.Source]
	if !ok {
		return ReasonUnknownSource
	}
	dst, ok := b.types[e.Target]
	if !ok {
		return ReasonUnknownTarget
	}
	if !e.Type.Valid() {
		return ReasonInvalidType
	}
	if b.edges[e.ID()] {
		return ReasonDuplicateEdge
	}

	var fits bool
	switch e.Type {
	case domain.EdgeCareer:
		fits = src == domain.NodeTypeRoot && dst == domain.NodeTypeCompany
	case domain.EdgeEducation:
		fits = src == domain.NodeTypeRoot && dst == domain.NodeTypeEducation
	case domain.EdgeSoftSkill:
		fits = src == domain.NodeTypeRoot && dst == domain.NodeTypeSoftSkill
	case domain.EdgeProject:
		fits = src.IsTimeline() && dst == domain.NodeTypeAchievement
	}
	if !fits {
		return ReasonTypeMismatch
	}
	return ""
}

func (b *builder) drop(e domain.GraphEdge, reason string) {
	b.logger.Warn("Edge dropped", "edge", e.ID(), "type", e.Type, "reason", reason)
	b.report.DroppedEdges = append(b.report.DroppedEdges, DroppedEdge{Edge: e, Reason: reason})
	if b.hooks.OnEdgeDropped != nil {
		b.hooks.OnEdgeDropped(b.ctx, &domain.IntegrityEvent{
			EventBase: domain.EventBase{Timestamp: b.now(), Type: domain.EventEdgeDropped},
			Edge:      e,
			Reason:    reason,
		})
	}
}

// deriveProjectEdges links achievements that have a company but no project edge.
func (b *builder) deriveProjectEdges(achievements []domain.Achievement) {
	parented := make(map[string]bool)
	for _, e := range b.graph.Edges {
		if e.Type == domain.EdgeProject {
			parented[e.Target] = true
		}
	}

	for _, a := range achievements {
		if a.Company == "" || parented[a.ID] || b.types[a.ID] != domain.NodeTypeAchievement {
			continue
		}
		e := domain.GraphEdge{Source: a.Company, Target: a.ID, Type: domain.EdgeProject}
		if !b.types[a.Company].IsTimeline() {
			b.drop(e, ReasonUnknownCompany)
			continue
		}
		if b.addEdge(e) {
			parented[a.ID] = true
			b.report.DerivedEdges = append(b.report.DerivedEdges, e)
		}
	}
}

func (b *builder) timeline(ds domain.Dataset) {
	if len(ds.Timeline) == 0 {
		b.graph.Timeline = domain.ChronologicalOrder(b.graph.Nodes)
		b.logger.Debug("Timeline derived from periods", "timeline", b.graph.Timeline)
		return
	}

	slotted := make(map[string]bool)
	for _, id := range ds.Timeline {
		if !b.types[id].IsTimeline() || slotted[id] {
			b.logger.Debug("Timeline entry ignored", "node_id", id, "reason", ReasonNotTimeline)
			b.report.IgnoredTimeline = append(b.report.IgnoredTimeline, id)
			continue
		}
		slotted[id] = true
		b.graph.Timeline = append(b.graph.Timeline, id)
	}
	for _, n := range b.graph.Nodes {
		if n.Type.IsTimeline() && !slotted[n.ID] {
			b.logger.Debug("Timeline node has no slot", "node_id", n.ID)
			b.report.Unslotted = append(b.report.Unslotted, n.ID)
		}
	}
}
