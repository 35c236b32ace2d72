package render

import (
	"fmt"
	"strings"

	"github.com/aretw0/careergraph/pkg/domain"
)

// GraphOverlay contains dynamic reveal data to visualize on the graph.
type GraphOverlay struct {
	VisibleNodes  []string
	ExpandedNodes []string
}

// GenerateMermaid produces a Mermaid flowchart syntax string from a graph.
// It applies semantic styling:
// - Root: ((Circle))
// - Timeline (company/education): [[Subroutine]]
// - Soft skill: ([Stadium])
// - Achievement: [Rectangle]
// Edges are annotated with their type. Overlay styles (visible/expanded) apply if provided.
func GenerateMermaid(g domain.Graph, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, node := range g.Nodes {
		safeID := sanitizeMermaidID(node.ID)

		opener, closer := "[", "]"
		switch node.Type {
		case domain.NodeTypeRoot:
			opener, closer = "((", "))"
		case domain.NodeTypeCompany, domain.NodeTypeEducation:
			opener, closer = "[[", "]]"
		case domain.NodeTypeSoftSkill:
			opener, closer = "([", "])"
		}

		label := node.Label
		if label == "" {
			label = node.ID
		}
		label = strings.ReplaceAll(label, "\"", "'")
		if node.Period != "" && node.Type.IsTimeline() {
			label = fmt.Sprintf("%s <br/> %s", label, node.Period)
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, label, closer))
	}

	for _, e := range g.Edges {
		arrow := fmt.Sprintf("-- %s -->", e.Type)
		if e.Type == domain.EdgeSoftSkill {
			arrow = fmt.Sprintf("-. %s .->", e.Type)
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", sanitizeMermaidID(e.Source), arrow, sanitizeMermaidID(e.Target)))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visible fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef expanded fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, id := range overlay.VisibleNodes {
			safeID := sanitizeMermaidID(id)
			if !seen[safeID] && safeID != "" {
				seen[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visible;\n", safeID))
			}
		}
		for _, id := range overlay.ExpandedNodes {
			sb.WriteString(fmt.Sprintf("    class %s expanded;\n", sanitizeMermaidID(id)))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
