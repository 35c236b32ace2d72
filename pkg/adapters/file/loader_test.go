package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/careergraph/pkg/adapters/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_YAMLAndJSON(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "career.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
nodes:
  - {id: Mannan, label: Mannan, type: root}
  - {id: Intenseye, label: Intenseye, type: company}
edges:
  - {source: Mannan, target: Intenseye, type: career}
`), 0644))

	jsonPath := filepath.Join(dir, "career.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{
  "nodes": [{"id": "Mannan", "label": "Mannan", "type": "root"},
            {"id": "Intenseye", "label": "Intenseye", "type": "company"}],
  "edges": [{"source": "Mannan", "target": "Intenseye", "type": "career"}]
}`), 0644))

	fromYAML, err := file.NewLoader(yamlPath).Load(context.Background())
	require.NoError(t, err)
	fromJSON, err := file.NewLoader(jsonPath).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, fromYAML, fromJSON)
	assert.Len(t, fromYAML.Declarations, 2)
}

func TestLoader_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := file.NewLoader(filepath.Join(dir, "missing.yaml")).Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("nodes: {not: a list}\n"), 0644))
	_, err = file.NewLoader(bad).Load(context.Background())
	assert.ErrorContains(t, err, "bad.yaml")
}

func TestLoader_PicksUpEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "career.yaml")
	require.NoError(t, os.WriteFile(path, []byte("nodes: [{id: A, label: A, type: root}]\n"), 0644))
	loader := file.NewLoader(path)

	ds, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "A", ds.Declarations[0].Label)

	require.NoError(t, os.WriteFile(path, []byte("nodes: [{id: A, label: B, type: root}]\n"), 0644))
	ds, err = loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "B", ds.Declarations[0].Label)
}
