package reveal

import (
	"testing"

	"github.com/aretw0/careergraph/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pn(id string, x float64) domain.PositionedNode {
	return domain.PositionedNode{ID: id, Type: domain.NodeTypeCompany, Position: domain.Position{X: x}}
}

func TestCanvas_AddEdgesIdempotent(t *testing.T) {
	c := NewCanvas()
	require.True(t, c.AddNode(pn("a", 0)))
	require.True(t, c.AddNode(pn("b", 1)))
	assert.False(t, c.AddNode(pn("a", 5)), "second insert is ignored")

	edges := []domain.GraphEdge{{Source: "a", Target: "b", Type: domain.EdgeCareer}}
	assert.Len(t, c.AddEdges(edges), 1)
	assert.Empty(t, c.AddEdges(edges))

	_, n := c.Len()
	assert.Equal(t, 1, n)
	assert.Equal(t, "a->b", c.Edges()[0].ID)
}

func TestCanvas_AddEdgesNeedsVisibleEndpoints(t *testing.T) {
	c := NewCanvas()
	c.AddNode(pn("a", 0))

	added := c.AddEdges([]domain.GraphEdge{
		{Source: "a", Target: "hidden", Type: domain.EdgeCareer},
		{Source: "ghost", Target: "a", Type: domain.EdgeCareer},
	})
	assert.Empty(t, added)
	assert.Empty(t, c.Edges())
}

func TestCanvas_Relayout(t *testing.T) {
	c := NewCanvas()
	c.AddNode(pn("a", 0))
	c.AddNode(pn("b", 1))
	c.AddNode(pn("c", 2))
	c.AddEdges([]domain.GraphEdge{
		{Source: "a", Target: "b"},
		{Source: "a", Target: "c"},
	})

	removed := c.Relayout(domain.IndexByID([]domain.PositionedNode{pn("a", 10), pn("c", 30), pn("z", 99)}))
	assert.Equal(t, []string{"b"}, removed)
	assert.Equal(t, []string{"a", "c"}, c.NodeIDs(), "relayout never adds nodes")

	nodes := c.Nodes(nil)
	assert.Equal(t, 10.0, nodes[0].Position.X)
	assert.Equal(t, 30.0, nodes[1].Position.X)

	edges := c.Edges()
	require.Len(t, edges, 1)
	assert.Equal(t, "a->c", edges[0].ID)
}

func TestCanvas_NodesExpandedOnlyForAchievements(t *testing.T) {
	c := NewCanvas()
	c.AddNode(pn("company", 0))
	c.AddNode(domain.PositionedNode{ID: "ach", Type: domain.NodeTypeAchievement})

	nodes := c.Nodes(map[string]bool{"company": true, "ach": true})
	assert.False(t, nodes[0].Data.Expanded)
	assert.True(t, nodes[1].Data.Expanded)
}
