package domain

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func pnode(id string, x, y float64) PositionedNode {
	return PositionedNode{
		ID:       id,
		Type:     NodeTypeCompany,
		Position: Position{X: x, Y: y},
		Data:     NodeData{GraphNode: GraphNode{ID: id, Type: NodeTypeCompany, Label: id}},
	}
}

func redge(source, target string) RenderEdge {
	return RenderEdge{ID: EdgeID(source, target), Source: source, Target: target, Type: EdgeCareer}
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name     string
		old      *CanvasSnapshot
		new      *CanvasSnapshot
		wantDiff *CanvasDiff // nil means we expect no diff
	}{
		{
			name: "Initial Load (Old is Nil)",
			old:  nil,
			new: &CanvasSnapshot{
				SessionID: "sess-1",
				Nodes:     []PositionedNode{pnode("root", 0, 0)},
			},
			wantDiff: &CanvasDiff{
				SessionID:  "sess-1",
				AddedNodes: []PositionedNode{pnode("root", 0, 0)},
			},
		},
		{
			name: "No Changes",
			old: &CanvasSnapshot{
				SessionID: "sess-1",
				Nodes:     []PositionedNode{pnode("root", 0, 0)},
				Edges:     []RenderEdge{redge("root", "a")},
			},
			new: &CanvasSnapshot{
				SessionID: "sess-1",
				Nodes:     []PositionedNode{pnode("root", 0, 0)},
				Edges:     []RenderEdge{redge("root", "a")},
			},
			wantDiff: nil,
		},
		{
			name: "Node And Edge Added",
			old: &CanvasSnapshot{
				SessionID: "sess-1",
				Nodes:     []PositionedNode{pnode("root", 0, 0)},
			},
			new: &CanvasSnapshot{
				SessionID: "sess-1",
				Nodes:     []PositionedNode{pnode("root", 0, 0), pnode("a", 10, 10)},
				Edges:     []RenderEdge{redge("root", "a")},
			},
			wantDiff: &CanvasDiff{
				SessionID:  "sess-1",
				AddedNodes: []PositionedNode{pnode("a", 10, 10)},
				AddedEdges: []RenderEdge{redge("root", "a")},
			},
		},
		{
			name: "Node Moved",
			old: &CanvasSnapshot{
				Nodes: []PositionedNode{pnode("root", 0, 0)},
			},
			new: &CanvasSnapshot{
				Nodes: []PositionedNode{pnode("root", 5, 0)},
			},
			wantDiff: &CanvasDiff{
				UpdatedNodes: []PositionedNode{pnode("root", 5, 0)},
			},
		},
		{
			name: "Removal",
			old: &CanvasSnapshot{
				Nodes: []PositionedNode{pnode("root", 0, 0), pnode("a", 1, 1)},
				Edges: []RenderEdge{redge("root", "a")},
			},
			new: &CanvasSnapshot{
				Nodes: []PositionedNode{pnode("root", 0, 0)},
			},
			wantDiff: &CanvasDiff{
				RemovedNodes: []string{"a"},
				RemovedEdges: []string{"root->a"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.old, tt.new)
			if tt.wantDiff == nil {
				if got != nil {
					t.Errorf("Diff() = %v, want nil", got)
				}
				return
			}

			if got == nil {
				t.Fatalf("Diff() = nil, want %v", tt.wantDiff)
			}
			if !reflect.DeepEqual(got, tt.wantDiff) {
				t.Errorf("Diff() = %+v, want %+v", got, tt.wantDiff)
			}
		})
	}
}

func TestDiffJSONSerialization(t *testing.T) {
	t.Run("Empty Collections Omitted", func(t *testing.T) {
		diff := Diff(nil, &CanvasSnapshot{SessionID: "s", Nodes: []PositionedNode{pnode("root", 0, 0)}})
		if diff == nil {
			t.Fatal("Expected diff, got nil")
		}

		bytes, _ := json.Marshal(diff)
		if strings.Contains(string(bytes), `"added_edges"`) {
			t.Errorf("JSON should not contain 'added_edges' when empty, got: %s", string(bytes))
		}
		if !strings.Contains(string(bytes), `"animationDelay"`) {
			t.Errorf("JSON should carry node animation metadata, got: %s", string(bytes))
		}
	})
}

func TestRevealState_CloneIsolation(t *testing.T) {
	s := NewRevealState()
	s.RevealedCompanies["a"] = true

	c := s.Clone()
	c.RevealedCompanies["b"] = true
	c.ExpandedNodes["x"] = true

	if len(s.RevealedCompanies) != 1 || len(s.ExpandedNodes) != 0 {
		t.Errorf("Clone leaked writes into the original: %+v", s)
	}
	if got := c.Revealed(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Revealed() = %v", got)
	}
}

func TestGraph_Lookups(t *testing.T) {
	g := Graph{
		Nodes: []GraphNode{
			{ID: "me", Type: NodeTypeRoot},
			{ID: "acme", Type: NodeTypeCompany},
			{ID: "a1", Type: NodeTypeAchievement},
			{ID: "a2", Type: NodeTypeAchievement},
		},
		Edges: []GraphEdge{
			{Source: "me", Target: "acme", Type: EdgeCareer},
			{Source: "acme", Target: "a2", Type: EdgeProject},
			{Source: "acme", Target: "a1", Type: EdgeProject},
		},
		Timeline: []string{"acme"},
	}

	root, ok := g.Root()
	if !ok || root.ID != "me" {
		t.Fatalf("Root() = %v, %v", root, ok)
	}
	if got := g.Achievements("acme"); !reflect.DeepEqual(got, []string{"a2", "a1"}) {
		t.Errorf("Achievements() = %v, want edge order", got)
	}
	if got := g.TimelineSlot("acme"); got != 0 {
		t.Errorf("TimelineSlot(acme) = %d", got)
	}
	if got := g.TimelineSlot("nope"); got != -1 {
		t.Errorf("TimelineSlot(nope) = %d", got)
	}
	if got := len(g.EdgesTouching("acme")); got != 3 {
		t.Errorf("EdgesTouching(acme) = %d edges", got)
	}
}
