package reveal

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/careergraph/pkg/domain"
	"github.com/aretw0/careergraph/pkg/layout"
	"github.com/aretw0/careergraph/pkg/scheduler"
	"github.com/aretw0/careergraph/pkg/viewport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequencer_MountShowsRoot(t *testing.T) {
	f := mount(t, careerGraph(2))

	assert.Equal(t, []string{"Mannan"}, f.surface.nodeIDs())
	assert.Equal(t, PhaseIdle, f.seq.Phase())

	root, ok := f.surface.node("Mannan")
	require.True(t, ok)
	assert.Equal(t, domain.Position{X: 960, Y: 180}, root.Position)

	f.clock.Advance(time.Second)
	assert.NotEmpty(t, f.camera.calls, "mount recenters")
}

func TestSequencer_StageTimeline(t *testing.T) {
	f := mount(t, careerGraph(2))
	require.NoError(t, f.seq.PointerEnterGraph())
	assert.Equal(t, PhaseRevealing, f.seq.Phase())

	f.clock.Advance(0)
	assert.Equal(t, []string{"Mannan", "skill-0"}, f.surface.nodeIDs())
	assert.Empty(t, f.surface.edges)

	f.clock.Advance(500 * time.Millisecond)
	assert.Equal(t, []string{"Mannan", "skill-0", "skill-1", "skill-2"}, f.surface.nodeIDs())
	assert.Equal(t, []string{"Mannan->skill-0"}, f.surface.edgeIDs())

	f.clock.Advance(699 * time.Millisecond)
	assert.NotContains(t, f.surface.nodeIDs(), "Bilkent")
	assert.Len(t, f.surface.edges, 3)

	f.clock.Advance(time.Millisecond)
	assert.Contains(t, f.surface.nodeIDs(), "Bilkent")
	assert.NotContains(t, f.surface.edgeIDs(), "Mannan->Bilkent")

	f.clock.Advance(500 * time.Millisecond)
	assert.Contains(t, f.surface.edgeIDs(), "Mannan->Bilkent")
	assert.Contains(t, f.surface.nodeIDs(), "Freelance")
	assert.NotContains(t, f.surface.nodeIDs(), "Intenseye")

	f.clock.Advance(time.Second)
	assert.Equal(t, []string{"Mannan", "skill-0", "skill-1", "skill-2", "Bilkent", "Freelance", "Intenseye"}, f.surface.nodeIDs())
	assert.Len(t, f.surface.edges, 6)
	assert.Equal(t, PhaseComplete, f.seq.Phase())
	assert.Empty(t, f.seq.Pending())
}

func TestSequencer_RevealStartsOnce(t *testing.T) {
	var started int
	hooks := domain.LifecycleHooks{
		OnRevealStarted: func(context.Context, *domain.RevealEvent) { started++ },
	}
	f := mount(t, careerGraph(2), WithLifecycleHooks(hooks))

	require.NoError(t, f.seq.PointerEnterGraph())
	pending := len(f.seq.Pending())
	assert.Equal(t, 12, pending)

	f.clock.Advance(300 * time.Millisecond)
	require.NoError(t, f.seq.PointerEnterGraph())
	require.NoError(t, f.seq.PointerEnterGraph())
	assert.Equal(t, pending-2, len(f.seq.Pending()), "nothing new scheduled")

	f.clock.Advance(5 * time.Second)
	require.NoError(t, f.seq.PointerEnterGraph())
	assert.Empty(t, f.seq.Pending())
	assert.Equal(t, 1, started)
}

func TestSequencer_AchievementReveal(t *testing.T) {
	f := revealed(t, careerGraph(5))

	require.NoError(t, f.seq.PointerEnterNode("Intenseye"))
	f.clock.Advance(400 * time.Millisecond)
	for i := 0; i < 5; i++ {
		assert.Contains(t, f.surface.nodeIDs(), careerGraph(5).Achievements("Intenseye")[i])
	}

	countProject := func() int {
		n := 0
		for _, e := range f.surface.edges {
			if e.Type == domain.EdgeProject {
				n++
			}
		}
		return n
	}

	f.clock.Advance(699 * time.Millisecond)
	assert.Zero(t, countProject(), "no project edge before 1100ms")

	f.clock.Advance(time.Millisecond)
	assert.Equal(t, 5, countProject(), "all project edges at 1100ms")
	assert.True(t, f.seq.State().RevealedCompanies["Intenseye"])

	edgeCalls := f.surface.edgeCalls
	require.NoError(t, f.seq.PointerEnterNode("Intenseye"))
	assert.Empty(t, f.seq.Pending(), "second hover does nothing")
	f.clock.Advance(2 * time.Second)
	assert.Equal(t, edgeCalls, f.surface.edgeCalls)
}

func TestSequencer_HoverHiddenTimelineNode(t *testing.T) {
	f := mount(t, careerGraph(3))
	require.NoError(t, f.seq.PointerEnterNode("Intenseye"))

	assert.Empty(t, f.seq.Pending())
	assert.False(t, f.seq.State().RevealedCompanies["Intenseye"], "a hidden node is not marked revealed")
}

func TestSequencer_HoverNonTimelineAndUnknown(t *testing.T) {
	f := revealed(t, careerGraph(1))

	assert.NoError(t, f.seq.PointerEnterNode("skill-0"))
	assert.NoError(t, f.seq.PointerEnterNode("Mannan"))
	assert.Empty(t, f.seq.Pending())

	assert.ErrorIs(t, f.seq.PointerEnterNode("nobody"), domain.ErrUnknownNode)
	assert.ErrorIs(t, f.seq.ClickNode("nobody"), domain.ErrUnknownNode)
	assert.NoError(t, f.seq.PointerLeaveNode("Intenseye"))
}

func TestSequencer_ClickTogglesAchievement(t *testing.T) {
	f := revealed(t, careerGraph(2))
	require.NoError(t, f.seq.PointerEnterNode("Intenseye"))
	f.clock.Advance(2 * time.Second)

	require.NoError(t, f.seq.ClickNode("Intenseye-a0"))
	n, ok := f.surface.node("Intenseye-a0")
	require.True(t, ok)
	assert.True(t, n.Data.Expanded)
	assert.Equal(t, []string{"Intenseye-a0"}, f.seq.State().Expanded())

	require.NoError(t, f.seq.ClickNode("Intenseye-a0"))
	n, _ = f.surface.node("Intenseye-a0")
	assert.False(t, n.Data.Expanded)
	assert.Empty(t, f.seq.State().Expanded())

	require.NoError(t, f.seq.ClickNode("Intenseye"))
	assert.Empty(t, f.seq.State().Expanded(), "only achievements expand")
}

func TestSequencer_Resize(t *testing.T) {
	f := revealed(t, careerGraph(2))
	before := f.seq.Snapshot()

	require.NoError(t, f.seq.Resize(context.Background(), domain.Viewport{Width: 1280, Height: 720}))

	after := f.seq.Snapshot()
	require.Len(t, after.Nodes, len(before.Nodes), "resize keeps the visible set")
	assert.Len(t, after.Edges, len(before.Edges))

	root, ok := f.surface.node("Mannan")
	require.True(t, ok)
	assert.Equal(t, 640.0, root.Position.X)

	calls := len(f.camera.calls)
	f.clock.Advance(viewport.SettleDelay)
	assert.Equal(t, calls+1, len(f.camera.calls), "resize recenters after the settle delay")

	err := f.seq.Resize(context.Background(), domain.Viewport{Width: 0, Height: 720})
	assert.ErrorIs(t, err, domain.ErrInvalidViewport)
}

func TestSequencer_CloseCancelsEverything(t *testing.T) {
	f := mount(t, careerGraph(3))
	require.NoError(t, f.seq.PointerEnterGraph())
	f.clock.Advance(300 * time.Millisecond)

	nodeCalls, edgeCalls, fits := f.surface.nodeCalls, f.surface.edgeCalls, len(f.camera.calls)
	f.seq.Close()
	f.seq.Close()
	assert.Empty(t, f.seq.Pending())

	f.clock.Advance(10 * time.Second)
	assert.Equal(t, nodeCalls, f.surface.nodeCalls)
	assert.Equal(t, edgeCalls, f.surface.edgeCalls)
	assert.Equal(t, fits, len(f.camera.calls), "no fit after teardown")
	assert.Zero(t, f.clock.Pending())

	assert.ErrorIs(t, f.seq.PointerEnterGraph(), domain.ErrViewClosed)
	assert.ErrorIs(t, f.seq.PointerEnterNode("Intenseye"), domain.ErrViewClosed)
	assert.ErrorIs(t, f.seq.ClickNode("Intenseye-a0"), domain.ErrViewClosed)
	assert.ErrorIs(t, f.seq.Resize(context.Background(), hd), domain.ErrViewClosed)
}

func TestSequencer_NotMounted(t *testing.T) {
	g := careerGraph(1)
	clock := scheduler.NewManualClock(time.Now())
	seq := New(g, StaticLayouter(g, layout.DefaultMargins), clock, &recordingSurface{t: t}, &recordingCamera{})

	assert.ErrorIs(t, seq.PointerEnterGraph(), ErrNotMounted)
	assert.ErrorIs(t, seq.Mount(context.Background(), domain.Viewport{Width: -1, Height: 10}), domain.ErrInvalidViewport)
}

func TestSequencer_FitRequestsAreDebounced(t *testing.T) {
	f := mount(t, careerGraph(2))
	f.clock.Advance(time.Second)
	mounted := len(f.camera.calls)

	require.NoError(t, f.seq.PointerEnterGraph())
	f.clock.Advance(5 * time.Second)

	// Mutation bursts at 0, 200, 400+500, 700, 900, 1200, 1700, 2200 and 2700ms.
	assert.Equal(t, 9, len(f.camera.calls)-mounted)
}

func TestSequencer_Hooks(t *testing.T) {
	var nodes, edges []string
	hooks := domain.LifecycleHooks{
		OnNodeRevealed: func(_ context.Context, e *domain.RevealEvent) {
			nodes = append(nodes, e.NodeIDs...)
			assert.Equal(t, "view-1", e.SessionID)
		},
		OnEdgesRevealed: func(_ context.Context, e *domain.RevealEvent) {
			edges = append(edges, e.EdgeIDs...)
		},
	}
	f := revealed(t, careerGraph(0), WithLifecycleHooks(hooks), WithSessionID("view-1"))

	assert.Equal(t, []string{"Mannan", "skill-0", "skill-1", "skill-2", "Bilkent", "Freelance", "Intenseye"}, nodes)
	assert.Len(t, edges, 6)
	assert.Equal(t, "view-1", f.seq.Snapshot().SessionID)
}
