package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/careergraph/pkg/domain"
	"github.com/aretw0/careergraph/pkg/reveal"
)

// IntentType names a pointer or viewport intent.
type IntentType string

const (
	IntentPointerEnterGraph IntentType = "pointer_enter_graph"
	IntentPointerEnterNode  IntentType = "pointer_enter_node"
	IntentPointerLeaveNode  IntentType = "pointer_leave_node"
	IntentClickNode         IntentType = "click_node"
	IntentResize            IntentType = "resize"
)

// Intent is the transport form of a user intent.
type Intent struct {
	Type     IntentType       `json:"type"`
	NodeID   string           `json:"node_id,omitempty"`
	Viewport *domain.Viewport `json:"viewport,omitempty"`
}

// ErrInvalidIntent is returned for unknown intent types or missing arguments.
var ErrInvalidIntent = errors.New("invalid intent")

// Apply dispatches the intent to seq.
func (i Intent) Apply(ctx context.Context, seq *reveal.Sequencer) error {
	switch i.Type {
	case IntentPointerEnterGraph:
		return seq.PointerEnterGraph()
	case IntentPointerEnterNode, IntentPointerLeaveNode, IntentClickNode:
		id, err := SanitizeNodeID(i.NodeID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidIntent, err)
		}
		if id == "" {
			return fmt.Errorf("%w: %s needs node_id", ErrInvalidIntent, i.Type)
		}
		switch i.Type {
		case IntentPointerEnterNode:
			return seq.PointerEnterNode(id)
		case IntentPointerLeaveNode:
			return seq.PointerLeaveNode(id)
		default:
			return seq.ClickNode(id)
		}
	case IntentResize:
		if i.Viewport == nil {
			return fmt.Errorf("%w: resize needs viewport", ErrInvalidIntent)
		}
		return seq.Resize(ctx, *i.Viewport)
	}
	return fmt.Errorf("%w: %q", ErrInvalidIntent, i.Type)
}
