package layout

import (
	"fmt"
	"testing"

	"github.com/aretw0/careergraph/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hd() domain.SafeArea {
	return SafeAreaFor(domain.Viewport{Width: 1920, Height: 1080}, DefaultMargins)
}

func scenarioGraph() ([]domain.GraphNode, []domain.GraphEdge) {
	nodes := []domain.GraphNode{
		{ID: "Mannan", Type: domain.NodeTypeRoot, Label: "Mannan"},
		{ID: "Intenseye", Type: domain.NodeTypeCompany, Label: "Intenseye", Period: "2021 - Present"},
		{ID: "Bilkent", Type: domain.NodeTypeEducation, Label: "Bilkent University", Period: "2016 - 2021"},
	}
	edges := []domain.GraphEdge{
		{Source: "Mannan", Target: "Intenseye", Type: domain.EdgeCareer},
		{Source: "Mannan", Target: "Bilkent", Type: domain.EdgeEducation},
	}
	return nodes, edges
}

func TestCompute_TimelineRowScenario(t *testing.T) {
	nodes, edges := scenarioGraph()

	// no slot table: the order comes from the periods, not from declaration order
	out := domain.IndexByID(Compute(nodes, edges, hd()))
	require.Len(t, out, 3)

	root := out["Mannan"]
	assert.Equal(t, domain.Position{X: 960, Y: 180}, root.Position)
	assert.Equal(t, domain.AnimationHeroEntrance, root.Data.AnimationType)
	assert.Equal(t, 0.0, root.Data.AnimationDelay)

	intenseye, bilkent := out["Intenseye"], out["Bilkent"]
	assert.Greater(t, intenseye.Position.X, bilkent.Position.X)
	assert.Equal(t, root.Position.Y+RowOffsetY, intenseye.Position.Y)
	assert.Equal(t, root.Position.Y+RowOffsetY, bilkent.Position.Y)

	// leftmost slot animates first
	assert.Equal(t, domain.AnimationSlideUp, bilkent.Data.AnimationType)
	assert.InDelta(t, 1.0, bilkent.Data.AnimationDelay, 1e-9)
	assert.InDelta(t, 1.2, intenseye.Data.AnimationDelay, 1e-9)
}

func TestCompute_ExplicitTimelineOverridesPeriods(t *testing.T) {
	nodes, edges := scenarioGraph()

	out := domain.IndexByID(Compute(nodes, edges, hd(), WithTimeline("Intenseye", "Bilkent")))
	assert.Less(t, out["Intenseye"].Position.X, out["Bilkent"].Position.X)

	out = domain.IndexByID(Compute(nodes, edges, hd(), WithTimeline("Bilkent")))
	_, ok := out["Intenseye"]
	assert.False(t, ok, "unslotted timeline node is omitted")
}

func TestCompute_Deterministic(t *testing.T) {
	nodes, edges := fullGraph(3, 5)
	opts := WithTimeline("Bilkent", "Freelance", "Intenseye")

	first := Compute(nodes, edges, hd(), opts)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Compute(nodes, edges, hd(), opts), "run %d differs", i)
	}
}

func TestCompute_ViewportDependent(t *testing.T) {
	nodes, edges := scenarioGraph()
	opts := WithTimeline("Bilkent", "Intenseye")

	wide := domain.IndexByID(Compute(nodes, edges, hd(), opts))
	narrow := domain.IndexByID(Compute(nodes, edges, SafeAreaFor(domain.Viewport{Width: 800, Height: 600}, DefaultMargins), opts))

	wideGap := wide["Intenseye"].Position.X - wide["Bilkent"].Position.X
	narrowGap := narrow["Intenseye"].Position.X - narrow["Bilkent"].Position.X
	assert.Equal(t, RowSpacingCap, wideGap)
	assert.Less(t, narrowGap, wideGap)
}

func TestRowSpacing(t *testing.T) {
	tests := []struct {
		width float64
		want  float64
	}{
		{width: 1840, want: 800},  // 3.5 * 400 capped at 800
		{width: 720, want: 554.4}, // 3.5 * 158.4
		{width: 0, want: 0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("width=%v", tt.width), func(t *testing.T) {
			assert.InDelta(t, tt.want, RowSpacing(domain.SafeArea{Width: tt.width}), 1e-9)
		})
	}
}

func TestCompute_SoftSkillTriangle(t *testing.T) {
	nodes := []domain.GraphNode{
		{ID: "me", Type: domain.NodeTypeRoot},
		{ID: "s0", Type: domain.NodeTypeSoftSkill},
		{ID: "s1", Type: domain.NodeTypeSoftSkill},
		{ID: "s2", Type: domain.NodeTypeSoftSkill},
		{ID: "s3", Type: domain.NodeTypeSoftSkill},
	}
	out := domain.IndexByID(Compute(nodes, nil, hd()))
	root := out["me"].Position

	s0, s1, s2, s3 := out["s0"], out["s1"], out["s2"], out["s3"]
	assert.Less(t, s0.Position.X, root.X, "slot 0 is left")
	assert.Equal(t, root.X, s1.Position.X, "slot 1 is centred")
	assert.Greater(t, s2.Position.X, root.X, "slot 2 is right")
	for _, s := range []domain.PositionedNode{s0, s1, s2} {
		assert.Less(t, s.Position.Y, root.Y, "%s should sit above the root", s.ID)
		assert.Equal(t, domain.AnimationBloomIn, s.Data.AnimationType)
	}
	assert.InDelta(t, 0.3, s0.Data.AnimationDelay, 1e-9)
	assert.InDelta(t, 0.5, s2.Data.AnimationDelay, 1e-9)

	// a fourth skill reuses slot 0's column one ring higher instead of overlapping it
	assert.Equal(t, s0.Position.X, s3.Position.X)
	assert.Equal(t, s0.Position.Y-SoftSkillRingSpacing, s3.Position.Y)
	assert.NotEqual(t, s0.Position, s3.Position)
}

func TestCompute_AchievementZigzag(t *testing.T) {
	nodes, edges := fullGraph(0, 4)
	out := domain.IndexByID(Compute(nodes, edges, hd(), WithTimeline("Bilkent", "Freelance", "Intenseye")))

	parent := out["Intenseye"]
	for i := 0; i < 4; i++ {
		a := out[fmt.Sprintf("Intenseye-a%d", i)]
		if i%2 == 0 {
			assert.Equal(t, parent.Position.X-AchievementStagger/2, a.Position.X, "even index goes left")
		} else {
			assert.Equal(t, parent.Position.X+AchievementStagger/2, a.Position.X, "odd index goes right")
		}
		assert.Equal(t, parent.Position.Y+AchievementInitialOffset+float64(i)*AchievementSpacing, a.Position.Y)
		assert.Equal(t, domain.AnimationFadeDrop, a.Data.AnimationType)
		// slot 2 parent
		assert.InDelta(t, 1.8+0.3*2+0.15*float64(i), a.Data.AnimationDelay, 1e-9)
	}

	assert.InDelta(t, 1.8, out["Bilkent-a0"].Data.AnimationDelay, 1e-9)
}

func TestCompute_OmitsUnplaceable(t *testing.T) {
	nodes := []domain.GraphNode{
		{ID: "me", Type: domain.NodeTypeRoot},
		{ID: "known", Type: domain.NodeTypeCompany},
		{ID: "unknown", Type: domain.NodeTypeCompany},
		{ID: "orphan", Type: domain.NodeTypeAchievement},
		{ID: "child-of-unknown", Type: domain.NodeTypeAchievement},
	}
	edges := []domain.GraphEdge{
		{Source: "me", Target: "known", Type: domain.EdgeCareer},
		{Source: "me", Target: "unknown", Type: domain.EdgeCareer},
		{Source: "unknown", Target: "child-of-unknown", Type: domain.EdgeProject},
	}

	out := Compute(nodes, edges, hd(), WithTimeline("known"))

	ids := make([]string, 0, len(out))
	for _, n := range out {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"me", "known"}, ids)
}

func TestCompute_NoRoot(t *testing.T) {
	out := Compute([]domain.GraphNode{{ID: "x", Type: domain.NodeTypeCompany}}, nil, hd(), WithTimeline("x"))
	assert.Empty(t, out)
}

func TestCompute_DegenerateAreaDoesNotPanic(t *testing.T) {
	nodes, edges := fullGraph(3, 2)
	area := SafeAreaFor(domain.Viewport{Width: 10, Height: 10}, DefaultMargins)

	assert.NotPanics(t, func() {
		out := Compute(nodes, edges, area, WithTimeline("Bilkent", "Freelance", "Intenseye"))
		assert.Len(t, out, len(nodes))
	})
}

// fullGraph builds a root, skills soft-skill nodes and three timeline nodes with
// perParent achievements each.
func fullGraph(skills, perParent int) ([]domain.GraphNode, []domain.GraphEdge) {
	nodes := []domain.GraphNode{{ID: "Mannan", Type: domain.NodeTypeRoot}}
	var edges []domain.GraphEdge
	for i := 0; i < skills; i++ {
		id := fmt.Sprintf("skill-%d", i)
		nodes = append(nodes, domain.GraphNode{ID: id, Type: domain.NodeTypeSoftSkill})
		edges = append(edges, domain.GraphEdge{Source: "Mannan", Target: id, Type: domain.EdgeSoftSkill})
	}
	parents := []domain.GraphNode{
		{ID: "Bilkent", Type: domain.NodeTypeEducation},
		{ID: "Freelance", Type: domain.NodeTypeCompany},
		{ID: "Intenseye", Type: domain.NodeTypeCompany},
	}
	for _, p := range parents {
		nodes = append(nodes, p)
		et := domain.EdgeCareer
		if p.Type == domain.NodeTypeEducation {
			et = domain.EdgeEducation
		}
		edges = append(edges, domain.GraphEdge{Source: "Mannan", Target: p.ID, Type: et})
		for i := 0; i < perParent; i++ {
			id := fmt.Sprintf("%s-a%d", p.ID, i)
			nodes = append(nodes, domain.GraphNode{ID: id, Type: domain.NodeTypeAchievement})
			edges = append(edges, domain.GraphEdge{Source: p.ID, Target: id, Type: domain.EdgeProject})
		}
	}
	return nodes, edges
}
