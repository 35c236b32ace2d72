package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/careergraph/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunLayoutCacheContract runs a suite of tests to verify that a LayoutCache implementation
// adheres to the defined interface contract.
func RunLayoutCacheContract(t *testing.T, cache LayoutCache) {
	ctx := context.Background()
	key := "contract-test-" + time.Now().Format("20060102150405.000000")

	nodes := []domain.PositionedNode{
		{
			ID:       "root",
			Type:     domain.NodeTypeRoot,
			Position: domain.Position{X: 960, Y: 180},
			Data: domain.NodeData{
				GraphNode:     domain.GraphNode{ID: "root", Type: domain.NodeTypeRoot, Label: "Me"},
				AnimationType: domain.AnimationHeroEntrance,
			},
		},
		{
			ID:       "a1",
			Type:     domain.NodeTypeAchievement,
			Position: domain.Position{X: 0.1, Y: -12.5},
			Data: domain.NodeData{
				GraphNode: domain.GraphNode{
					ID:           "a1",
					Type:         domain.NodeTypeAchievement,
					Label:        "Shipped",
					Technologies: []string{"go", "redis"},
					Category:     domain.CategoryTooling,
				},
				AnimationDelay: 1.95,
				AnimationType:  domain.AnimationFadeDrop,
			},
		},
	}

	t.Run("Miss", func(t *testing.T) {
		_, ok, err := cache.Get(ctx, "missing-"+key)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Set and Get", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, key, nodes))

		got, ok, err := cache.Get(ctx, key)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, nodes, got)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, key, nodes[:1]))

		got, ok, err := cache.Get(ctx, key)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Len(t, got, 1)
	})

	t.Run("Isolation", func(t *testing.T) {
		got, _, err := cache.Get(ctx, key)
		require.NoError(t, err)
		got[0].Position.X = -1

		again, _, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, 960.0, again[0].Position.X, "mutating a result must not alter the cache")
	})
}
