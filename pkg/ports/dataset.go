package ports

import (
	"context"

	"github.com/aretw0/careergraph/pkg/domain"
)

// DatasetSource defines how the core retrieves its dataset.
type DatasetSource interface {
	// Load returns the dataset. Implementations return a fresh value on every call.
	Load(ctx context.Context) (domain.Dataset, error)
}

// DatasetSourceFunc adapts a function to DatasetSource.
type DatasetSourceFunc func(ctx context.Context) (domain.Dataset, error)

// Load implements DatasetSource.
func (f DatasetSourceFunc) Load(ctx context.Context) (domain.Dataset, error) {
	return f(ctx)
}

// Watchable is implemented by sources that can report changes.
type Watchable interface {
	// Watch streams the ids of changed documents until ctx is done.
	Watch(ctx context.Context) (<-chan string, error)
}
