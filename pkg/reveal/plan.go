package reveal

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aretw0/careergraph/pkg/domain"
)

// Reveal timings, relative to the intent that triggered the plan.
const (
	SoftSkillInterval = 200 * time.Millisecond
	EducationDelay    = 1200 * time.Millisecond
	FirstCompanyDelay = 1700 * time.Millisecond
	CompanyInterval   = 500 * time.Millisecond

	// EdgeSettleDelay separates a node insertion from the insertion of its edges.
	EdgeSettleDelay = 500 * time.Millisecond

	AchievementInterval   = 100 * time.Millisecond
	AchievementEdgeSettle = 600 * time.Millisecond
)

// Stage names the plan a step belongs to.
const (
	StageGraph        = "stage"
	StageAchievements = "achievements"
)

// Action is what a Step does when it fires.
type Action string

const (
	// ActionInsertNodes makes the step's nodes visible.
	ActionInsertNodes Action = "insert-nodes"
	// ActionInsertEdges makes visible every edge touching the step's nodes whose endpoints are both visible.
	ActionInsertEdges Action = "insert-edges"
)

// Step is one timed insertion of a reveal plan.
type Step struct {
	Delay   time.Duration `json:"delay"`
	Action  Action        `json:"action"`
	NodeIDs []string      `json:"node_ids"`
}

// Name identifies the step in scheduler listings.
func (s Step) Name() string {
	return fmt.Sprintf("%s:%s@%s", s.Action, strings.Join(s.NodeIDs, ","), s.Delay)
}

// StagePlan returns the global reveal: soft skills, then education, then companies
// in timeline order. Every node step is followed by its edge step.
func StagePlan(g domain.Graph) []Step {
	var steps []Step
	node := func(delay time.Duration, id string) {
		steps = append(steps,
			Step{Delay: delay, Action: ActionInsertNodes, NodeIDs: []string{id}},
			Step{Delay: delay + EdgeSettleDelay, Action: ActionInsertEdges, NodeIDs: []string{id}},
		)
	}

	for i, n := range g.NodesOfType(domain.NodeTypeSoftSkill) {
		node(time.Duration(i)*SoftSkillInterval, n.ID)
	}
	for _, id := range timelineOfType(g, domain.NodeTypeEducation) {
		node(EducationDelay, id)
	}
	for k, id := range timelineOfType(g, domain.NodeTypeCompany) {
		node(FirstCompanyDelay+time.Duration(k)*CompanyInterval, id)
	}

	sortSteps(steps)
	return steps
}

// AchievementPlan returns the reveal of the achievements attached to parentID:
// nodes one by one, then every project edge in a single batch after the last node settled.
// The plan is empty when parentID has no achievements.
func AchievementPlan(g domain.Graph, parentID string) []Step {
	ids := g.Achievements(parentID)
	if len(ids) == 0 {
		return nil
	}
	steps := make([]Step, 0, len(ids)+1)
	for i, id := range ids {
		steps = append(steps, Step{
			Delay:   time.Duration(i) * AchievementInterval,
			Action:  ActionInsertNodes,
			NodeIDs: []string{id},
		})
	}
	steps = append(steps, Step{
		Delay:   time.Duration(len(ids))*AchievementInterval + AchievementEdgeSettle,
		Action:  ActionInsertEdges,
		NodeIDs: append([]string(nil), ids...),
	})
	return steps
}

// timelineOfType returns the slotted ids of type t in slot order.
func timelineOfType(g domain.Graph, t domain.NodeType) []string {
	var ids []string
	for _, id := range g.Timeline {
		if n, ok := g.Node(id); ok && n.Type == t {
			ids = append(ids, id)
		}
	}
	return ids
}

func sortSteps(steps []Step) {
	sort.SliceStable(steps, func(i, j int) bool {
		return steps[i].Delay < steps[j].Delay
	})
}
