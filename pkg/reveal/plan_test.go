package reveal

import (
	"testing"
	"time"

	"github.com/aretw0/careergraph/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStagePlan(t *testing.T) {
	steps := StagePlan(careerGraph(2))

	type want struct {
		delay  time.Duration
		action Action
		id     string
	}
	expected := []want{
		{0, ActionInsertNodes, "skill-0"},
		{200 * time.Millisecond, ActionInsertNodes, "skill-1"},
		{400 * time.Millisecond, ActionInsertNodes, "skill-2"},
		{500 * time.Millisecond, ActionInsertEdges, "skill-0"},
		{700 * time.Millisecond, ActionInsertEdges, "skill-1"},
		{900 * time.Millisecond, ActionInsertEdges, "skill-2"},
		{1200 * time.Millisecond, ActionInsertNodes, "Bilkent"},
		{1700 * time.Millisecond, ActionInsertEdges, "Bilkent"},
		{1700 * time.Millisecond, ActionInsertNodes, "Freelance"},
		{2200 * time.Millisecond, ActionInsertEdges, "Freelance"},
		{2200 * time.Millisecond, ActionInsertNodes, "Intenseye"},
		{2700 * time.Millisecond, ActionInsertEdges, "Intenseye"},
	}
	require.Len(t, steps, len(expected))
	for i, w := range expected {
		assert.Equal(t, w.delay, steps[i].Delay, "step %d", i)
		assert.Equal(t, w.action, steps[i].Action, "step %d", i)
		assert.Equal(t, []string{w.id}, steps[i].NodeIDs, "step %d", i)
	}
}

func TestStagePlan_NeverIncludesAchievements(t *testing.T) {
	g := careerGraph(5)
	for _, s := range StagePlan(g) {
		for _, id := range s.NodeIDs {
			n, ok := g.Node(id)
			require.True(t, ok)
			assert.NotEqual(t, domain.NodeTypeAchievement, n.Type, "achievements are revealed on hover only")
		}
	}
}

func TestAchievementPlan(t *testing.T) {
	g := careerGraph(5)

	steps := AchievementPlan(g, "Intenseye")
	require.Len(t, steps, 6)
	for i := 0; i < 5; i++ {
		assert.Equal(t, time.Duration(i)*100*time.Millisecond, steps[i].Delay)
		assert.Equal(t, ActionInsertNodes, steps[i].Action)
	}
	last := steps[5]
	assert.Equal(t, 1100*time.Millisecond, last.Delay)
	assert.Equal(t, ActionInsertEdges, last.Action)
	assert.Len(t, last.NodeIDs, 5)

	assert.Empty(t, AchievementPlan(g, "Bilkent"))
	assert.Empty(t, AchievementPlan(g, "nobody"))
}

func TestStep_Name(t *testing.T) {
	s := Step{Delay: 1200 * time.Millisecond, Action: ActionInsertNodes, NodeIDs: []string{"Bilkent"}}
	assert.Equal(t, "insert-nodes:Bilkent@1.2s", s.Name())
}
