package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	md, err := New().Normalize(`<main><h1>Title</h1><p>Some <strong>bold</strong> text.</p><ul><li>one</li></ul></main>`, "")
	require.NoError(t, err)

	assert.Contains(t, md, "# Title")
	assert.Contains(t, md, "**bold**")
	assert.Contains(t, md, "- one")
}

func TestNormalize_ResolvesLinksAgainstDomain(t *testing.T) {
	md, err := New().Normalize(`<p><a href="/docs/guide">Guide</a></p>`, "https://example.com")
	require.NoError(t, err)

	assert.Contains(t, md, "[Guide](https://example.com/docs/guide)")

	md, err = New().Normalize(`<p><a href="/docs/guide">Guide</a></p>`, "")
	require.NoError(t, err)
	assert.NotContains(t, md, "https://example.com")
}
