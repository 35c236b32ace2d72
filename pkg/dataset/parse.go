package dataset

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/careergraph/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a dataset document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf guesses the format from a file name. Unknown extensions are read as YAML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Parse decodes a dataset document. Unknown fields are rejected.
func Parse(data []byte, format Format) (domain.Dataset, error) {
	var ds domain.Dataset
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&ds); err != nil {
			return domain.Dataset{}, fmt.Errorf("decode json dataset: %w", err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&ds); err != nil {
			return domain.Dataset{}, fmt.Errorf("decode yaml dataset: %w", err)
		}
	}
	return ds, nil
}

//go:embed default.yaml
var defaultDataset []byte

// Default returns the embedded career dataset.
func Default() domain.Dataset {
	ds, err := Parse(defaultDataset, FormatYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded dataset: %v", err))
	}
	return ds
}
