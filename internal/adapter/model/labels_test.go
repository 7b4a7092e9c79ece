package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLabelsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "class_labels.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadLabelTable(t *testing.T) {
	t.Run("loads ordered labels", func(t *testing.T) {
		path := writeLabelsFile(t, `{"classes": ["A", "B", "C", "D"]}`)

		table, err := LoadLabelTable(path)

		require.NoError(t, err)
		assert.Equal(t, 4, table.Len())
		assert.Equal(t, "A", table.Resolve(0))
		assert.Equal(t, "D", table.Resolve(3))
	})

	t.Run("fails on missing file", func(t *testing.T) {
		_, err := LoadLabelTable(filepath.Join(t.TempDir(), "missing.json"))

		assert.Error(t, err)
	})

	t.Run("fails on malformed JSON", func(t *testing.T) {
		path := writeLabelsFile(t, `{"classes": [`)

		_, err := LoadLabelTable(path)

		assert.Error(t, err)
	})

	t.Run("fails on empty class list", func(t *testing.T) {
		path := writeLabelsFile(t, `{"classes": []}`)

		_, err := LoadLabelTable(path)

		assert.Error(t, err)
	})
}

func TestShapeFromInt64(t *testing.T) {
	shape := shapeFromInt64([]int64{1, 160, 160, 3})
	assert.Equal(t, "(1, 160, 160, 3)", shape.String())
}
