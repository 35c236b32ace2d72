package domain

// AnimationType tags the entrance animation a surface should play for a node.
type AnimationType string

const (
	AnimationHeroEntrance AnimationType = "hero-entrance"
	AnimationBloomIn      AnimationType = "bloom-in"
	AnimationSlideUp      AnimationType = "slide-up"
	AnimationFadeDrop     AnimationType = "fade-drop"
)

// NodeData is the payload rendered inside a node.
type NodeData struct {
	GraphNode

	// AnimationDelay is expressed in seconds.
	AnimationDelay float64       `json:"animationDelay"`
	AnimationType  AnimationType `json:"animationType"`

	// Expanded is set for achievements showing their detail view.
	Expanded bool `json:"expanded,omitempty"`
}

// PositionedNode is the layout output for one node.
type PositionedNode struct {
	ID       string   `json:"id"`
	Type     NodeType `json:"type"`
	Position Position `json:"position"`
	Data     NodeData `json:"data"`
}

// IndexByID maps node ids to their PositionedNode.
func IndexByID(nodes []PositionedNode) map[string]PositionedNode {
	idx := make(map[string]PositionedNode, len(nodes))
	for _, n := range nodes {
		idx[n.ID] = n
	}
	return idx
}
