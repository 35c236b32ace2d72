package ports

import "github.com/aretw0/careergraph/pkg/domain"

// Surface is the rendering collaborator that paints nodes and edges.
// Each call carries the complete visible list, not a delta.
type Surface interface {
	SetNodes(nodes []domain.PositionedNode)
	SetEdges(edges []domain.RenderEdge)
}

// Camera executes viewport fit commands on the rendering surface.
type Camera interface {
	FitView(cmd domain.FitViewCommand)
}

// CameraFunc adapts a function to Camera.
type CameraFunc func(cmd domain.FitViewCommand)

// FitView implements Camera.
func (f CameraFunc) FitView(cmd domain.FitViewCommand) {
	f(cmd)
}

// NopSurface discards every update.
type NopSurface struct{}

func (NopSurface) SetNodes([]domain.PositionedNode) {}
func (NopSurface) SetEdges([]domain.RenderEdge)     {}
