package memory

import (
	"context"
	"sync"

	"github.com/aretw0/careergraph/pkg/domain"
)

// LayoutCache implements ports.LayoutCache in memory.
// Safe for concurrent use.
type LayoutCache struct {
	data map[string][]domain.PositionedNode
	mu   sync.RWMutex
}

// NewLayoutCache creates an empty cache.
func NewLayoutCache() *LayoutCache {
	return &LayoutCache{
		data: make(map[string][]domain.PositionedNode),
	}
}

// Get returns a copy of the nodes stored under key.
func (c *LayoutCache) Get(ctx context.Context, key string) ([]domain.PositionedNode, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	nodes, ok := c.data[key]
	if !ok {
		return nil, false, nil
	}
	return copyNodes(nodes), true, nil
}

// Set stores a copy of nodes under key.
func (c *LayoutCache) Set(ctx context.Context, key string, nodes []domain.PositionedNode) error {
	copied := copyNodes(nodes)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = copied
	return nil
}

// Len returns the number of cached layouts.
func (c *LayoutCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// copyNodes deep copies so callers can't mutate cached layouts through slices.
func copyNodes(nodes []domain.PositionedNode) []domain.PositionedNode {
	out := make([]domain.PositionedNode, len(nodes))
	copy(out, nodes)
	for i := range out {
		if techs := out[i].Data.Technologies; techs != nil {
			out[i].Data.Technologies = append([]string(nil), techs...)
		}
	}
	return out
}
