package domain

import "reflect"

// CanvasSnapshot is what a view currently shows.
type CanvasSnapshot struct {
	SessionID string           `json:"session_id,omitempty"`
	Nodes     []PositionedNode `json:"nodes"`
	Edges     []RenderEdge     `json:"edges"`
}

// CanvasDiff represents the changes between two snapshots.
// It is designed to be serialized to JSON for partial updates on the client.
type CanvasDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	// AddedNodes are nodes that were not visible before.
	AddedNodes []PositionedNode `json:"added_nodes,omitempty"`

	// UpdatedNodes are visible nodes whose position or data changed (resize, expand).
	UpdatedNodes []PositionedNode `json:"updated_nodes,omitempty"`

	// RemovedNodes lists ids no longer visible.
	RemovedNodes []string `json:"removed_nodes,omitempty"`

	// AddedEdges are edges that were not visible before.
	AddedEdges []RenderEdge `json:"added_edges,omitempty"`

	// RemovedEdges lists edge ids no longer visible.
	RemovedEdges []string `json:"removed_edges,omitempty"`
}

// Diff calculates the difference between oldSnap and newSnap.
// If oldSnap is nil, the diff carries the entire newSnap (initial load).
// It returns nil when nothing changed.
func Diff(oldSnap, newSnap *CanvasSnapshot) *CanvasDiff {
	if newSnap == nil {
		return nil
	}

	diff := &CanvasDiff{SessionID: newSnap.SessionID}

	oldNodes := map[string]PositionedNode{}
	oldEdges := map[string]bool{}
	if oldSnap != nil {
		oldNodes = IndexByID(oldSnap.Nodes)
		for _, e := range oldSnap.Edges {
			oldEdges[e.ID] = true
		}
	}

	newNodes := make(map[string]bool, len(newSnap.Nodes))
	for _, n := range newSnap.Nodes {
		newNodes[n.ID] = true
		prev, existed := oldNodes[n.ID]
		switch {
		case !existed:
			diff.AddedNodes = append(diff.AddedNodes, n)
		case !reflect.DeepEqual(prev, n):
			diff.UpdatedNodes = append(diff.UpdatedNodes, n)
		}
	}

	newEdges := make(map[string]bool, len(newSnap.Edges))
	for _, e := range newSnap.Edges {
		newEdges[e.ID] = true
		if !oldEdges[e.ID] {
			diff.AddedEdges = append(diff.AddedEdges, e)
		}
	}

	if oldSnap != nil {
		for _, n := range oldSnap.Nodes {
			if !newNodes[n.ID] {
				diff.RemovedNodes = append(diff.RemovedNodes, n.ID)
			}
		}
		for _, e := range oldSnap.Edges {
			if !newEdges[e.ID] {
				diff.RemovedEdges = append(diff.RemovedEdges, e.ID)
			}
		}
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *CanvasDiff) IsEmpty() bool {
	return len(d.AddedNodes) == 0 &&
		len(d.UpdatedNodes) == 0 &&
		len(d.RemovedNodes) == 0 &&
		len(d.AddedEdges) == 0 &&
		len(d.RemovedEdges) == 0
}
