package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDocumentationWritesOutput(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "a.py", citedPy)
	writeTestFile(t, root, "sub/b.go", citedGo)
	outPath := filepath.Join(t.TempDir(), "docs", "citations.md")

	report, err := GenerateDocumentation(context.Background(), Options{
		RootPath:   root,
		OutputPath: outPath,
		Format:     FormatMarkdown,
		Recursive:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, report.FilesScanned)
	assert.Equal(t, 0, report.FilesSkipped)
	assert.Equal(t, 2, report.CitationCount)
	assert.True(t, report.OutputWritten)
	assert.Equal(t, outPath, report.OutputPath)

	written, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, report.Document, string(written))
}

func TestGenerateDocumentationRenderOnly(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "a.py", citedPy)

	report, err := GenerateDocumentation(context.Background(), Options{
		RootPath:  root,
		Format:    FormatJSON,
		Recursive: true,
	})
	require.NoError(t, err)
	assert.False(t, report.OutputWritten)
	assert.NotEmpty(t, report.Document)
}

func TestGenerateDocumentationDefaultsToMarkdown(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "a.py", citedPy)

	report, err := GenerateDocumentation(context.Background(), Options{
		RootPath:  root,
		Recursive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, FormatMarkdown, report.Format)
}

func TestGenerateDocumentationInvalidRoot(t *testing.T) {
	_, err := GenerateDocumentation(context.Background(), Options{
		RootPath:  filepath.Join(t.TempDir(), "missing"),
		Recursive: true,
	})
	assert.ErrorIs(t, err, ErrInvalidRoot)
}

func TestGenerateDocumentationUnsupportedFormat(t *testing.T) {
	_, err := GenerateDocumentation(context.Background(), Options{
		RootPath:  t.TempDir(),
		Format:    "docx",
		Recursive: true,
	})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestGenerateDocumentationOutputWriteFailure(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "a.py", citedPy)

	// The output path collides with an existing directory.
	outDir := t.TempDir()
	report, err := GenerateDocumentation(context.Background(), Options{
		RootPath:   root,
		OutputPath: outDir,
		Format:     FormatMarkdown,
		Recursive:  true,
	})
	require.Error(t, err)
	var writeErr *OutputWriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, outDir, writeErr.Path)

	// The rendered document survives the write failure.
	require.NotNil(t, report)
	assert.NotEmpty(t, report.Document)
	assert.False(t, report.OutputWritten)
}
