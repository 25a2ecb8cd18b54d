package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedTopics(t *testing.T) {
	all, err := topics()
	require.NoError(t, err)

	for _, name := range []string{"layers", "backups", "components"} {
		assert.Contains(t, all, name)
		assert.NotEmpty(t, all[name])
	}
}

func TestRenderMarkdownProducesOutput(t *testing.T) {
	out := renderMarkdown("# Title\n\nBody text.\n")
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "Body text")
}
