package ui

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistFS_ContainsPages(t *testing.T) {
	dist := DistFS()

	index, err := fs.ReadFile(dist, "index.html")
	require.NoError(t, err)
	assert.Contains(t, string(index), "SQL Query Assistant")

	widgets, err := fs.ReadFile(dist, "widgets.html")
	require.NoError(t, err)
	assert.Contains(t, string(widgets), "Widget")
}
