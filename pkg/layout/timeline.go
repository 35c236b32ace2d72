package layout

import (
	"math"

	"github.com/aretw0/careergraph/pkg/domain"
)

// Closed-form layout constants, in pixels unless stated otherwise.
const (
	RootOffsetY = 100.0
	RowOffsetY  = 350.0

	// SpacingRatio of the safe-area width is the responsive horizontal spacing, capped at SpacingCap.
	SpacingRatio      = 0.22
	SpacingCap        = 400.0
	SpacingMultiplier = 3.5
	RowSpacingCap     = 800.0

	// SoftSkillRingSpacing separates the extra rings stacked above the first three soft skills.
	SoftSkillRingSpacing = 120.0

	AchievementStagger       = 200.0
	AchievementInitialOffset = 180.0
	AchievementSpacing       = 140.0
)

// Animation delays, in seconds.
const (
	SoftSkillDelayBase  = 0.3
	SoftSkillDelayStep  = 0.1
	TimelineDelayBase   = 1.0
	TimelineDelayStep   = 0.2
	AchievementDelay    = 1.8
	AchievementSlotStep = 0.3
	AchievementStep     = 0.15
)

// softSkillSlots are the left-above, center-above and right-above offsets from the root.
var softSkillSlots = [3]domain.Position{
	{X: -280, Y: -120},
	{X: 0, Y: -200},
	{X: 280, Y: -120},
}

type settings struct {
	timeline    []string
	hasTimeline bool
}

// Option configures Compute.
type Option func(*settings)

// WithTimeline sets the chronological slot table. Timeline nodes without a slot are omitted.
// Without it the table is derived from node periods by domain.ChronologicalOrder.
func WithTimeline(ids ...string) Option {
	return func(s *settings) {
		s.timeline = append([]string(nil), ids...)
		s.hasTimeline = true
	}
}

// RowSpacing returns the horizontal distance between two timeline slots for an area.
func RowSpacing(area domain.SafeArea) float64 {
	responsive := math.Min(area.Width*SpacingRatio, SpacingCap)
	return math.Min(SpacingMultiplier*responsive, RowSpacingCap)
}

// SoftSkillOffset returns the offset from the root of the soft skill at index.
// Indexes past the triangle continue on rings stacked above it.
func SoftSkillOffset(index int) domain.Position {
	slot := softSkillSlots[index%len(softSkillSlots)]
	ring := index / len(softSkillSlots)
	return domain.Position{X: slot.X, Y: slot.Y - float64(ring)*SoftSkillRingSpacing}
}

// Compute returns one PositionedNode per placeable input node, in input order.
// Nodes that cannot be placed (unslotted timeline ids, orphan achievements, anything
// without a root) are omitted rather than reported as errors.
func Compute(nodes []domain.GraphNode, edges []domain.GraphEdge, area domain.SafeArea, opts ...Option) []domain.PositionedNode {
	cfg := settings{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.hasTimeline {
		cfg.timeline = domain.ChronologicalOrder(nodes)
	}

	placed := make(map[string]domain.PositionedNode, len(nodes))

	var root *domain.GraphNode
	for i := range nodes {
		if nodes[i].Type == domain.NodeTypeRoot {
			root = &nodes[i]
			break
		}
	}
	if root == nil {
		return []domain.PositionedNode{}
	}
	rootPos := domain.Position{X: area.CenterX, Y: area.MinY + RootOffsetY}
	placed[root.ID] = positioned(*root, rootPos, 0, domain.AnimationHeroEntrance)

	// Soft skills
	skillIndex := 0
	for _, n := range nodes {
		if n.Type != domain.NodeTypeSoftSkill {
			continue
		}
		off := SoftSkillOffset(skillIndex)
		pos := domain.Position{X: rootPos.X + off.X, Y: rootPos.Y + off.Y}
		delay := SoftSkillDelayBase + SoftSkillDelayStep*float64(skillIndex)
		placed[n.ID] = positioned(n, pos, delay, domain.AnimationBloomIn)
		skillIndex++
	}

	// Timeline row
	slots := make(map[string]int, len(cfg.timeline))
	for i, id := range cfg.timeline {
		if _, dup := slots[id]; !dup {
			slots[id] = i
		}
	}
	spacing := RowSpacing(area)
	rowY := rootPos.Y + RowOffsetY
	mid := float64(len(cfg.timeline)-1) / 2
	for _, n := range nodes {
		if !n.Type.IsTimeline() {
			continue
		}
		slot, ok := slots[n.ID]
		if !ok {
			continue
		}
		pos := domain.Position{X: area.CenterX + (float64(slot)-mid)*spacing, Y: rowY}
		delay := TimelineDelayBase + TimelineDelayStep*float64(slot)
		placed[n.ID] = positioned(n, pos, delay, domain.AnimationSlideUp)
	}

	// Achievements, grouped by the source of their project edge.
	parentOf := make(map[string]string)
	for _, e := range edges {
		if e.Type != domain.EdgeProject {
			continue
		}
		if _, seen := parentOf[e.Target]; !seen {
			parentOf[e.Target] = e.Source
		}
	}
	groupIndex := make(map[string]int)
	for _, n := range nodes {
		if n.Type != domain.NodeTypeAchievement {
			continue
		}
		parentID, ok := parentOf[n.ID]
		if !ok {
			continue
		}
		parent, ok := placed[parentID]
		if !ok || !parent.Type.IsTimeline() {
			continue
		}
		idx := groupIndex[parentID]
		groupIndex[parentID] = idx + 1

		dx := -AchievementStagger / 2
		if idx%2 == 1 {
			dx = AchievementStagger / 2
		}
		pos := domain.Position{
			X: parent.Position.X + dx,
			Y: parent.Position.Y + AchievementInitialOffset + float64(idx)*AchievementSpacing,
		}
		delay := AchievementDelay + AchievementSlotStep*float64(slots[parentID]) + AchievementStep*float64(idx)
		placed[n.ID] = positioned(n, pos, delay, domain.AnimationFadeDrop)
	}

	out := make([]domain.PositionedNode, 0, len(placed))
	for _, n := range nodes {
		if p, ok := placed[n.ID]; ok {
			out = append(out, p)
			// a duplicated id is emitted once
			delete(placed, n.ID)
		}
	}
	return out
}

func positioned(n domain.GraphNode, pos domain.Position, delay float64, anim domain.AnimationType) domain.PositionedNode {
	return domain.PositionedNode{
		ID:       n.ID,
		Type:     n.Type,
		Position: pos,
		Data: domain.NodeData{
			GraphNode:      n,
			AnimationDelay: delay,
			AnimationType:  anim,
		},
	}
}
