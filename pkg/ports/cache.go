package ports

import (
	"context"

	"github.com/aretw0/careergraph/pkg/domain"
)

// LayoutCache memoizes layout passes.
// Keys are opaque strings derived from the dataset fingerprint, viewport and margins.
type LayoutCache interface {
	// Get returns the cached nodes and true, or false on a miss.
	Get(ctx context.Context, key string) ([]domain.PositionedNode, bool, error)

	// Set stores nodes under key.
	Set(ctx context.Context, key string, nodes []domain.PositionedNode) error
}
