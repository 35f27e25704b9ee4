package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputPathMatches(t *testing.T) {
	assert.True(t, outputPathMatches("Documentation/citations.md", "Documentation/citations.md"))
	assert.True(t, outputPathMatches("./Documentation/citations.md", "Documentation/citations.md"))

	abs, err := filepath.Abs("Documentation/citations.md")
	assert.NoError(t, err)
	assert.True(t, outputPathMatches(abs, "Documentation/citations.md"))

	assert.False(t, outputPathMatches("src/main.py", "Documentation/citations.md"))
	assert.False(t, outputPathMatches("Documentation/other.md", "Documentation/citations.md"))

	// No configured output path means nothing is filtered.
	assert.False(t, outputPathMatches("Documentation/citations.md", ""))
}
