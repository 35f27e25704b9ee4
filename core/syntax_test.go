package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyntaxForExtension(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		want CommentSyntax
	}{
		{"go uses slashes", ".go", CommentSyntax{LinePrefix: "//", BlockOpen: "/*", BlockClose: "*/"}},
		{"python uses hash", ".py", CommentSyntax{LinePrefix: "#"}},
		{"html uses markup comments", ".html", CommentSyntax{BlockOpen: "<!--", BlockClose: "-->"}},
		{"sql uses double dash", ".sql", CommentSyntax{LinePrefix: "--"}},
		{"lua block comments", ".lua", CommentSyntax{LinePrefix: "--", BlockOpen: "--[[", BlockClose: "]]"}},
		{"css has no line prefix", ".css", CommentSyntax{BlockOpen: "/*", BlockClose: "*/"}},
		{"unknown extension falls back to slashes", ".zig", CommentSyntax{LinePrefix: "//"}},
		{"empty extension falls back to slashes", "", CommentSyntax{LinePrefix: "//"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SyntaxForExtension(tt.ext))
		})
	}
}

func TestSyntaxForExtensionNormalization(t *testing.T) {
	// Lookup is case-insensitive and tolerates a missing leading dot.
	withDot := SyntaxForExtension(".py")
	assert.Equal(t, withDot, SyntaxForExtension("py"))
	assert.Equal(t, withDot, SyntaxForExtension(".PY"))
	assert.Equal(t, withDot, SyntaxForExtension("Py"))
}

func TestRecognizedExtension(t *testing.T) {
	assert.True(t, RecognizedExtension(".go"))
	assert.True(t, RecognizedExtension("rb"))
	assert.True(t, RecognizedExtension(".YAML"))
	assert.False(t, RecognizedExtension(".zig"))
	assert.False(t, RecognizedExtension(""))
}

func TestRecognizedExtensionsSortedAndComplete(t *testing.T) {
	exts := RecognizedExtensions()
	assert.NotEmpty(t, exts)
	for i := 1; i < len(exts); i++ {
		assert.Less(t, exts[i-1], exts[i], "extension list must be sorted")
	}
	assert.Contains(t, exts, ".go")
	assert.Contains(t, exts, ".py")
	assert.Contains(t, exts, ".html")
}
