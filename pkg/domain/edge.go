package domain

import "fmt"

// EdgeType tags a GraphEdge.
type EdgeType string

const (
	EdgeCareer    EdgeType = "career"
	EdgeEducation EdgeType = "education"
	EdgeSoftSkill EdgeType = "soft-skill"
	EdgeProject   EdgeType = "project"
)

// Valid reports whether t is one of the known edge types.
func (t EdgeType) Valid() bool {
	switch t {
	case EdgeCareer, EdgeEducation, EdgeSoftSkill, EdgeProject:
		return true
	}
	return false
}

// GraphEdge is a directed relation between two node ids.
type GraphEdge struct {
	Source string   `json:"source" yaml:"source"`
	Target string   `json:"target" yaml:"target"`
	Type   EdgeType `json:"type" yaml:"type"`
}

// ID returns the stable identifier used for idempotent insertion.
func (e GraphEdge) ID() string {
	return EdgeID(e.Source, e.Target)
}

// Touches reports whether id is one of the edge endpoints.
func (e GraphEdge) Touches(id string) bool {
	return e.Source == id || e.Target == id
}

// EdgeSeparator joins the endpoints of an edge id. Node ids must not contain it,
// otherwise two distinct edges could share an id.
const EdgeSeparator = "->"

// EdgeID builds the identifier of the edge source -> target.
func EdgeID(source, target string) string {
	return fmt.Sprintf("%s%s%s", source, EdgeSeparator, target)
}

// Graph is the uniform node/edge descriptor list produced by the dataset builder.
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`

	// Timeline is the chronological slot table: leftmost (earliest) first.
	Timeline []string `json:"timeline"`
}

// Node looks a node up by id.
func (g Graph) Node(id string) (GraphNode, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return GraphNode{}, false
}

// Root returns the root node, if any.
func (g Graph) Root() (GraphNode, bool) {
	for _, n := range g.Nodes {
		if n.Type == NodeTypeRoot {
			return n, true
		}
	}
	return GraphNode{}, false
}

// NodesOfType returns the nodes of type t in declaration order.
func (g Graph) NodesOfType(t NodeType) []GraphNode {
	var out []GraphNode
	for _, n := range g.Nodes {
		if n.Type == t {
			out = append(out, n)
		}
	}
	return out
}

// EdgesTouching returns every edge with id as one of its endpoints, in declaration order.
func (g Graph) EdgesTouching(id string) []GraphEdge {
	var out []GraphEdge
	for _, e := range g.Edges {
		if e.Touches(id) {
			out = append(out, e)
		}
	}
	return out
}

// Achievements returns the targets of the project edges leaving parentID, in edge order.
func (g Graph) Achievements(parentID string) []string {
	var out []string
	for _, e := range g.Edges {
		if e.Type == EdgeProject && e.Source == parentID {
			out = append(out, e.Target)
		}
	}
	return out
}

// TimelineSlot returns the slot index of id, or -1 when id has no slot.
func (g Graph) TimelineSlot(id string) int {
	for i, slot := range g.Timeline {
		if slot == id {
			return i
		}
	}
	return -1
}
