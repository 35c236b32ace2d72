package render

import "github.com/aretw0/careergraph/pkg/domain"

// Edge colors by type.
const (
	ColorCareer    = "#3b82f6" // blue
	ColorEducation = "#8b5cf6" // violet
	ColorProject   = "#f97316" // orange
	ColorSoftSkill = "#10b981" // emerald
	ColorNeutral   = "#6b7280"
)

// StyleFor returns the fixed style of an edge type.
func StyleFor(t domain.EdgeType) domain.EdgeStyle {
	style := domain.EdgeStyle{Color: ColorNeutral, Width: 1, Opacity: 0.6}

	switch t {
	case domain.EdgeCareer:
		style.Color = ColorCareer
		style.Width = 2
	case domain.EdgeEducation:
		style.Color = ColorEducation
	case domain.EdgeProject:
		style.Color = ColorProject
		style.Width = 1.5
	case domain.EdgeSoftSkill:
		style.Color = ColorSoftSkill
		style.Opacity = 0.3
	}
	return style
}

// Edge converts a graph edge into its rendered form.
func Edge(e domain.GraphEdge) domain.RenderEdge {
	return domain.RenderEdge{
		ID:     e.ID(),
		Source: e.Source,
		Target: e.Target,
		Type:   e.Type,
		Style:  StyleFor(e.Type),
	}
}

// Edges converts a list of graph edges, preserving order.
func Edges(edges []domain.GraphEdge) []domain.RenderEdge {
	out := make([]domain.RenderEdge, len(edges))
	for i, e := range edges {
		out[i] = Edge(e)
	}
	return out
}
