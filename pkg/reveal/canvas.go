package reveal

import (
	"github.com/aretw0/careergraph/pkg/domain"
	"github.com/aretw0/careergraph/pkg/render"
)

// Canvas is the visible subset of a graph: nodes and edges in insertion order.
type Canvas struct {
	nodeOrder []string
	nodes     map[string]domain.PositionedNode
	edgeOrder []string
	edges     map[string]domain.RenderEdge
}

// NewCanvas returns an empty canvas.
func NewCanvas() *Canvas {
	return &Canvas{
		nodes: make(map[string]domain.PositionedNode),
		edges: make(map[string]domain.RenderEdge),
	}
}

// HasNode reports whether id is visible.
func (c *Canvas) HasNode(id string) bool {
	_, ok := c.nodes[id]
	return ok
}

// HasEdge reports whether the edge id is visible.
func (c *Canvas) HasEdge(id string) bool {
	_, ok := c.edges[id]
	return ok
}

// AddNode makes n visible. It reports false when n was already visible.
func (c *Canvas) AddNode(n domain.PositionedNode) bool {
	if c.HasNode(n.ID) {
		return false
	}
	c.nodeOrder = append(c.nodeOrder, n.ID)
	c.nodes[n.ID] = n
	return true
}

// AddEdges makes every edge whose endpoints are both visible appear once.
// Edges already visible or with a hidden endpoint are skipped.
func (c *Canvas) AddEdges(edges []domain.GraphEdge) []domain.RenderEdge {
	var added []domain.RenderEdge
	for _, e := range edges {
		id := e.ID()
		if c.HasEdge(id) || !c.HasNode(e.Source) || !c.HasNode(e.Target) {
			continue
		}
		re := render.Edge(e)
		c.edgeOrder = append(c.edgeOrder, id)
		c.edges[id] = re
		added = append(added, re)
	}
	return added
}

// Relayout replaces the positions of visible nodes with those of positions.
// Visible nodes missing from positions are removed with their edges; their ids are returned.
func (c *Canvas) Relayout(positions map[string]domain.PositionedNode) []string {
	var removed []string
	kept := c.nodeOrder[:0]
	for _, id := range c.nodeOrder {
		n, ok := positions[id]
		if !ok {
			removed = append(removed, id)
			delete(c.nodes, id)
			continue
		}
		c.nodes[id] = n
		kept = append(kept, id)
	}
	c.nodeOrder = kept

	if len(removed) > 0 {
		edges := c.edgeOrder[:0]
		for _, id := range c.edgeOrder {
			e := c.edges[id]
			if c.HasNode(e.Source) && c.HasNode(e.Target) {
				edges = append(edges, id)
				continue
			}
			delete(c.edges, id)
		}
		c.edgeOrder = edges
	}
	return removed
}

// Nodes returns the visible nodes in insertion order, with Expanded set from expanded.
func (c *Canvas) Nodes(expanded map[string]bool) []domain.PositionedNode {
	out := make([]domain.PositionedNode, 0, len(c.nodeOrder))
	for _, id := range c.nodeOrder {
		n := c.nodes[id]
		n.Data.Expanded = n.Type == domain.NodeTypeAchievement && expanded[id]
		out = append(out, n)
	}
	return out
}

// Edges returns the visible edges in insertion order.
func (c *Canvas) Edges() []domain.RenderEdge {
	out := make([]domain.RenderEdge, 0, len(c.edgeOrder))
	for _, id := range c.edgeOrder {
		out = append(out, c.edges[id])
	}
	return out
}

// NodeIDs returns the visible node ids in insertion order.
func (c *Canvas) NodeIDs() []string {
	return append([]string(nil), c.nodeOrder...)
}

// Len returns the number of visible nodes and edges.
func (c *Canvas) Len() (nodes, edges int) {
	return len(c.nodeOrder), len(c.edgeOrder)
}
