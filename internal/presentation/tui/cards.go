package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/careergraph/pkg/domain"
)

// AchievementCard formats one achievement as a markdown card.
// expanded adds the description and technology list.
func AchievementCard(n domain.GraphNode, expanded bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "### %s\n\n", n.Title())

	var meta []string
	if n.Company != "" {
		meta = append(meta, n.Company)
	}
	if n.Period != "" {
		meta = append(meta, n.Period)
	}
	if n.Category != "" {
		meta = append(meta, "`"+string(n.Category)+"`")
	}
	if len(meta) > 0 {
		sb.WriteString("*" + strings.Join(meta, " · ") + "*\n\n")
	}
	if n.Impact != "" {
		fmt.Fprintf(&sb, "**Impact:** %s\n\n", n.Impact)
	}
	if !expanded {
		return sb.String()
	}
	if n.Description != "" {
		sb.WriteString(n.Description + "\n\n")
	}
	for _, tech := range n.Technologies {
		fmt.Fprintf(&sb, "- %s\n", tech)
	}
	if len(n.Technologies) > 0 {
		sb.WriteString("\n")
	}
	return sb.String()
}

// TimelineMarkdown lists the timeline of g with the achievement cards under each entry.
// Only the ids in expanded get full cards.
func TimelineMarkdown(g domain.Graph, expanded map[string]bool) string {
	var sb strings.Builder
	if root, ok := g.Root(); ok {
		fmt.Fprintf(&sb, "# %s\n\n", root.Label)
	}
	if skills := g.NodesOfType(domain.NodeTypeSoftSkill); len(skills) > 0 {
		labels := make([]string, len(skills))
		for i, s := range skills {
			labels[i] = s.Label
		}
		sb.WriteString(strings.Join(labels, " · ") + "\n\n")
	}

	for _, id := range g.Timeline {
		n, ok := g.Node(id)
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "## %s", n.Label)
		if n.Period != "" {
			fmt.Fprintf(&sb, " (%s)", n.Period)
		}
		sb.WriteString("\n\n")
		for _, aid := range g.Achievements(id) {
			if a, ok := g.Node(aid); ok {
				sb.WriteString(AchievementCard(a, expanded[aid]))
			}
		}
	}
	return sb.String()
}
