// Package redis implements ports.LayoutCache on Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/careergraph/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

const defaultPrefix = "careergraph:layout:"

// Cache implements ports.LayoutCache using Redis strings holding JSON.
type Cache struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures a Cache.
type Option func(*Cache)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

// WithTTL sets the expiration of cached layouts. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// New connects to the Redis server at addr.
func New(addr string, opts ...Option) *Cache {
	return NewFromClient(backend.NewClient(&backend.Options{Addr: addr}), opts...)
}

// NewFromClient wraps an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Cache {
	c := &Cache{
		client: client,
		prefix: defaultPrefix,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get implements ports.LayoutCache.
func (c *Cache) Get(ctx context.Context, key string) ([]domain.PositionedNode, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get layout: %w", err)
	}

	var nodes []domain.PositionedNode
	if err := json.Unmarshal(data, &nodes); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal layout: %w", err)
	}
	return nodes, true, nil
}

// Set implements ports.LayoutCache.
func (c *Cache) Set(ctx context.Context, key string, nodes []domain.PositionedNode) error {
	data, err := json.Marshal(nodes)
	if err != nil {
		return fmt.Errorf("failed to marshal layout: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set layout: %w", err)
	}
	return nil
}

// Ping checks the connection.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (c *Cache) Close() error {
	return c.client.Close()
}
