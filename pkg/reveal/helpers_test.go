package reveal

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/careergraph/pkg/domain"
	"github.com/aretw0/careergraph/pkg/layout"
	"github.com/aretw0/careergraph/pkg/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hd = domain.Viewport{Width: 1920, Height: 1080}

// careerGraph has a root, three soft skills, Bilkent, Freelance and Intenseye on the
// timeline, and achievements attached to Intenseye.
func careerGraph(achievements int) domain.Graph {
	g := domain.Graph{
		Nodes:    []domain.GraphNode{{ID: "Mannan", Type: domain.NodeTypeRoot, Label: "Mannan"}},
		Timeline: []string{"Bilkent", "Freelance", "Intenseye"},
	}
	for i := 0; i < 3; i++ {
		id := fmt.Sprintf("skill-%d", i)
		g.Nodes = append(g.Nodes, domain.GraphNode{ID: id, Type: domain.NodeTypeSoftSkill, Label: id})
		g.Edges = append(g.Edges, domain.GraphEdge{Source: "Mannan", Target: id, Type: domain.EdgeSoftSkill})
	}
	g.Nodes = append(g.Nodes,
		domain.GraphNode{ID: "Bilkent", Type: domain.NodeTypeEducation, Label: "Bilkent"},
		domain.GraphNode{ID: "Freelance", Type: domain.NodeTypeCompany, Label: "Freelance"},
		domain.GraphNode{ID: "Intenseye", Type: domain.NodeTypeCompany, Label: "Intenseye"},
	)
	g.Edges = append(g.Edges,
		domain.GraphEdge{Source: "Mannan", Target: "Bilkent", Type: domain.EdgeEducation},
		domain.GraphEdge{Source: "Mannan", Target: "Freelance", Type: domain.EdgeCareer},
		domain.GraphEdge{Source: "Mannan", Target: "Intenseye", Type: domain.EdgeCareer},
	)
	for i := 0; i < achievements; i++ {
		id := fmt.Sprintf("Intenseye-a%d", i)
		g.Nodes = append(g.Nodes, domain.GraphNode{ID: id, Type: domain.NodeTypeAchievement, Label: id, Company: "Intenseye"})
		g.Edges = append(g.Edges, domain.GraphEdge{Source: "Intenseye", Target: id, Type: domain.EdgeProject})
	}
	return g
}

// recordingSurface checks on every edge push that both endpoints were pushed as nodes before.
type recordingSurface struct {
	t         *testing.T
	nodes     []domain.PositionedNode
	edges     []domain.RenderEdge
	nodeCalls int
	edgeCalls int
}

func (r *recordingSurface) SetNodes(nodes []domain.PositionedNode) {
	r.nodes = nodes
	r.nodeCalls++
}

func (r *recordingSurface) SetEdges(edges []domain.RenderEdge) {
	visible := r.visible()
	for _, e := range edges {
		assert.True(r.t, visible[e.Source], "edge %s pushed before its source", e.ID)
		assert.True(r.t, visible[e.Target], "edge %s pushed before its target", e.ID)
	}
	r.edges = edges
	r.edgeCalls++
}

func (r *recordingSurface) visible() map[string]bool {
	out := make(map[string]bool, len(r.nodes))
	for _, n := range r.nodes {
		out[n.ID] = true
	}
	return out
}

func (r *recordingSurface) nodeIDs() []string {
	ids := make([]string, len(r.nodes))
	for i, n := range r.nodes {
		ids[i] = n.ID
	}
	return ids
}

func (r *recordingSurface) edgeIDs() []string {
	ids := make([]string, len(r.edges))
	for i, e := range r.edges {
		ids[i] = e.ID
	}
	return ids
}

func (r *recordingSurface) node(id string) (domain.PositionedNode, bool) {
	for _, n := range r.nodes {
		if n.ID == id {
			return n, true
		}
	}
	return domain.PositionedNode{}, false
}

type recordingCamera struct {
	calls []domain.FitViewCommand
}

func (c *recordingCamera) FitView(cmd domain.FitViewCommand) {
	c.calls = append(c.calls, cmd)
}

type fixture struct {
	seq     *Sequencer
	clock   *scheduler.ManualClock
	surface *recordingSurface
	camera  *recordingCamera
}

func mount(t *testing.T, g domain.Graph, opts ...Option) fixture {
	t.Helper()
	f := fixture{
		clock:   scheduler.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		surface: &recordingSurface{t: t},
		camera:  &recordingCamera{},
	}
	f.seq = New(g, StaticLayouter(g, layout.DefaultMargins), f.clock, f.surface, f.camera, opts...)
	require.NoError(t, f.seq.Mount(context.Background(), hd))
	return f
}

// revealed runs the whole global stage.
func revealed(t *testing.T, g domain.Graph, opts ...Option) fixture {
	t.Helper()
	f := mount(t, g, opts...)
	require.NoError(t, f.seq.PointerEnterGraph())
	f.clock.Advance(5 * time.Second)
	require.Equal(t, PhaseComplete, f.seq.Phase())
	return f
}
