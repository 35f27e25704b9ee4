package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

const citedPy = `# [CITATION] Source: https://example.com/algo
# [CITATION] Author: Jane Doe
def f(): pass
`

const citedGo = `// [CITATION] Source: https://example.com/impl
// [CITATION] Description: ported helper
package main
`

func TestExtractFromDirectory(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "a.py", citedPy)
	writeTestFile(t, root, "sub/b.go", citedGo)
	writeTestFile(t, root, "plain.py", "x = 1\n")

	result, err := ExtractFromDirectory(context.Background(), root, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, result.FilesScanned)
	assert.Equal(t, 0, result.FilesSkipped())
	require.Len(t, result.Files, 2)
	assert.Equal(t, "a.py", result.Files[0].FilePath)
	assert.Equal(t, "sub/b.go", result.Files[1].FilePath)
	assert.Equal(t, 2, result.TotalCitations())

	// Per-record file paths are relative to the root.
	assert.Equal(t, "a.py", result.Files[0].Citations[0].FilePath)
}

func TestExtractFromDirectoryDeterministicOrder(t *testing.T) {
	root := t.TempDir()
	// Names chosen so creation order differs from lexicographic order.
	writeTestFile(t, root, "zeta.py", citedPy)
	writeTestFile(t, root, "alpha.py", citedPy)
	writeTestFile(t, root, "mid/beta.py", citedPy)

	first, err := ExtractFromDirectory(context.Background(), root, nil)
	require.NoError(t, err)
	second, err := ExtractFromDirectory(context.Background(), root, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, first.Files, 3)
	assert.Equal(t, "alpha.py", first.Files[0].FilePath)
	assert.Equal(t, "mid/beta.py", first.Files[1].FilePath)
	assert.Equal(t, "zeta.py", first.Files[2].FilePath)

	firstDoc, err := Render(first, FormatMarkdown)
	require.NoError(t, err)
	secondDoc, err := Render(second, FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, firstDoc, secondDoc)
}

func TestExtractFromDirectorySkipsExcludedDirs(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "keep.py", citedPy)
	writeTestFile(t, root, ".git/hidden.py", citedPy)
	writeTestFile(t, root, "node_modules/dep.js", citedGo)
	writeTestFile(t, root, "vendor/lib.go", citedGo)

	result, err := ExtractFromDirectory(context.Background(), root, nil)
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.Equal(t, "keep.py", result.Files[0].FilePath)
	assert.Equal(t, 1, result.FilesScanned)
}

func TestExtractFromDirectoryIncludeExtensions(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "a.py", citedPy)
	writeTestFile(t, root, "b.go", citedGo)

	result, err := ExtractFromDirectory(context.Background(), root, []string{"py"})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.Equal(t, "a.py", result.Files[0].FilePath)

	// Extension filters are normalized like registry lookups.
	result, err = ExtractFromDirectory(context.Background(), root, []string{".GO"})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.Equal(t, "b.go", result.Files[0].FilePath)
}

func TestExtractFromDirectorySkipsUnregisteredExtensions(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "a.py", citedPy)
	writeTestFile(t, root, "notes.txt", citedGo)
	writeTestFile(t, root, "README", citedGo)

	// With no explicit include set, only registry extensions are eligible;
	// unknown extensions and extensionless files are not scanned.
	result, err := ExtractFromDirectory(context.Background(), root, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.FilesScanned)
	require.Len(t, result.Files, 1)
	assert.Equal(t, "a.py", result.Files[0].FilePath)

	// An explicit include set makes an unregistered extension eligible, and
	// its citations parse with the default // syntax.
	result, err = ExtractFromDirectory(context.Background(), root, []string{".txt"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.FilesScanned)
	require.Len(t, result.Files, 1)
	assert.Equal(t, "notes.txt", result.Files[0].FilePath)
	assert.Equal(t, "https://example.com/impl", result.Files[0].Citations[0].SourceURL)
}

func TestExtractFromDirectoryNonRecursive(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "top.py", citedPy)
	writeTestFile(t, root, "sub/nested.py", citedPy)

	result, err := ExtractFromDirectoryWithOptions(context.Background(), root, ScanOptions{Recursive: false})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.Equal(t, "top.py", result.Files[0].FilePath)
}

func TestExtractFromDirectoryIgnoreNames(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "keep.py", citedPy)
	writeTestFile(t, root, "generated/gen.py", citedPy)
	writeTestFile(t, root, "skipme.py", citedPy)

	result, err := ExtractFromDirectoryWithOptions(context.Background(), root, ScanOptions{
		Recursive:   true,
		IgnoreNames: []string{"generated", "skipme.py"},
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.Equal(t, "keep.py", result.Files[0].FilePath)
}

func TestExtractFromDirectoryInvalidRoot(t *testing.T) {
	_, err := ExtractFromDirectory(context.Background(), filepath.Join(t.TempDir(), "missing"), nil)
	assert.ErrorIs(t, err, ErrInvalidRoot)

	// A file is not a valid scan root either.
	root := t.TempDir()
	writeTestFile(t, root, "a.py", citedPy)
	_, err = ExtractFromDirectory(context.Background(), filepath.Join(root, "a.py"), nil)
	assert.ErrorIs(t, err, ErrInvalidRoot)
}

func TestExtractFromDirectoryBinaryFileWarns(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "good.py", citedPy)
	require.NoError(t, os.WriteFile(filepath.Join(root, "bad.py"), []byte{0xff, 0xfe, 0x00, 0x80}, 0644))

	result, err := ExtractFromDirectory(context.Background(), root, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.FilesSkipped())
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "bad.py", result.Warnings[0].FilePath)
	require.Len(t, result.Files, 1)
	assert.Equal(t, "good.py", result.Files[0].FilePath)
}

func TestExtractFromDirectoryCanceledContext(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "a.py", citedPy)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ExtractFromDirectory(ctx, root, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
