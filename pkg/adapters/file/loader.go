// Package file loads datasets from YAML or JSON documents on disk.
package file

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/careergraph/pkg/dataset"
	"github.com/aretw0/careergraph/pkg/domain"
)

// Loader implements ports.DatasetSource reading one dataset document.
// The file is read on every Load so edits are picked up without a restart.
type Loader struct {
	path   string
	format dataset.Format
}

// NewLoader reads path, guessing the format from its extension.
func NewLoader(path string) *Loader {
	return &Loader{path: path, format: dataset.FormatOf(path)}
}

// Path returns the dataset file path.
func (l *Loader) Path() string {
	return l.path
}

// Load reads and decodes the dataset file.
func (l *Loader) Load(ctx context.Context) (domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return domain.Dataset{}, err
	}
	data, err := os.ReadFile(l.path)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("failed to read dataset: %w", err)
	}
	ds, err := dataset.Parse(data, l.format)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("failed to parse %s: %w", l.path, err)
	}
	return ds, nil
}
