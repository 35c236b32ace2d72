package memory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/careergraph/pkg/dataset"
	"github.com/aretw0/careergraph/pkg/domain"
)

// Loader implements ports.DatasetSource from a dataset held in memory.
type Loader struct {
	raw []byte
}

// NewLoader creates a Loader serving ds. The dataset is copied; later changes to ds are not seen.
func NewLoader(ds domain.Dataset) (*Loader, error) {
	raw, err := json.Marshal(ds)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal dataset: %w", err)
	}
	return &Loader{raw: raw}, nil
}

// NewDefaultLoader serves the embedded career dataset.
func NewDefaultLoader() *Loader {
	l, err := NewLoader(dataset.Default())
	if err != nil {
		panic(err)
	}
	return l
}

// Load returns a fresh copy of the dataset.
func (l *Loader) Load(ctx context.Context) (domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return domain.Dataset{}, err
	}
	return dataset.Parse(l.raw, dataset.FormatJSON)
}
