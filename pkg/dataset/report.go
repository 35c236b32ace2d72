package dataset

import (
	"fmt"
	"strings"

	"github.com/aretw0/careergraph/pkg/domain"
)

// Reasons recorded for rejected items.
const (
	ReasonEmptyID         = "empty id"
	ReasonUnknownSource   = "unknown source"
	ReasonUnknownTarget   = "unknown target"
	ReasonInvalidType     = "invalid type"
	ReasonTypeMismatch    = "endpoint types do not match edge type"
	ReasonDuplicateEdge   = "duplicate edge"
	ReasonDuplicateID     = "duplicate id"
	ReasonExtraRoot       = "more than one root"
	ReasonUnknownCompany  = "unknown company"
	ReasonInvalidCategory = "invalid category"
	ReasonNotTimeline     = "not a timeline node"
	ReasonReservedID      = "id contains the edge separator"
)

// DroppedEdge is an edge the builder refused.
type DroppedEdge struct {
	Edge   domain.GraphEdge `json:"edge"`
	Reason string           `json:"reason"`
}

// RejectedNode is a node declaration the builder refused or altered.
type RejectedNode struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// Report lists every integrity defect tolerated while building a graph.
type Report struct {
	DroppedEdges  []DroppedEdge      `json:"dropped_edges,omitempty"`
	RejectedNodes []RejectedNode     `json:"rejected_nodes,omitempty"`
	DerivedEdges  []domain.GraphEdge `json:"derived_edges,omitempty"`

	// IgnoredTimeline are timeline entries that are unknown or not company/education.
	IgnoredTimeline []string `json:"ignored_timeline,omitempty"`
	// Unslotted are timeline nodes missing from the timeline table; the layout omits them.
	Unslotted []string `json:"unslotted,omitempty"`
}

// OK reports whether the dataset was used as declared. Derived edges are not defects.
func (r *Report) OK() bool {
	return len(r.DroppedEdges) == 0 &&
		len(r.RejectedNodes) == 0 &&
		len(r.IgnoredTimeline) == 0 &&
		len(r.Unslotted) == 0
}

// String renders the report one defect per line.
func (r *Report) String() string {
	if r.OK() && len(r.DerivedEdges) == 0 {
		return "dataset OK"
	}
	var b strings.Builder
	for _, n := range r.RejectedNodes {
		fmt.Fprintf(&b, "node %q: %s\n", n.ID, n.Reason)
	}
	for _, d := range r.DroppedEdges {
		fmt.Fprintf(&b, "edge %s (%s): %s\n", d.Edge.ID(), d.Edge.Type, d.Reason)
	}
	for _, e := range r.DerivedEdges {
		fmt.Fprintf(&b, "edge %s: derived from company\n", e.ID())
	}
	for _, id := range r.IgnoredTimeline {
		fmt.Fprintf(&b, "timeline %q: ignored\n", id)
	}
	for _, id := range r.Unslotted {
		fmt.Fprintf(&b, "node %q: no timeline slot\n", id)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
