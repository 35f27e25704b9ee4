package core

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"citetool/logger"
	"citetool/models"
)

// excludedDirNames are conventional non-source directories skipped by name
// during traversal: version-control metadata, dependency trees and build
// output.
var excludedDirNames = map[string]struct{}{
	".git":         {},
	".svn":         {},
	".hg":          {},
	".idea":        {},
	".vscode":      {},
	"node_modules": {},
	"vendor":       {},
	"__pycache__":  {},
	"dist":         {},
	"build":        {},
	"target":       {},
}

// ExcludedDirName reports whether a directory base name is in the fixed
// exclusion set.
func ExcludedDirName(name string) bool {
	_, ok := excludedDirNames[name]
	return ok
}

// ScanOptions controls a directory scan beyond the root path.
type ScanOptions struct {
	// IncludeExtensions restricts eligible files. Empty means "any
	// extension the registry recognizes".
	IncludeExtensions []string
	// Recursive controls whether subdirectories are visited.
	Recursive bool
	// IgnoreNames are extra directory/file base names to skip, merged with
	// the fixed exclusion set.
	IgnoreNames []string
}

// ExtractFromDirectory walks the tree under rootPath and aggregates the
// citations of every eligible file, sorted by relative path. See
// ExtractFromDirectoryWithOptions for the full contract.
func ExtractFromDirectory(ctx context.Context, rootPath string, includeExtensions []string) (models.ScanResult, error) {
	return ExtractFromDirectoryWithOptions(ctx, rootPath, ScanOptions{
		IncludeExtensions: includeExtensions,
		Recursive:         true,
	})
}

// ExtractFromDirectoryWithOptions performs a read-only scan of rootPath.
// Unreadable files are skipped with a warning and never abort the scan.
// The result's file order is lexicographic on the relative path, regardless
// of filesystem traversal order, so repeated scans render identically.
// Cancellation is checked between files; a canceled scan returns ctx.Err()
// and no partial result.
func ExtractFromDirectoryWithOptions(ctx context.Context, rootPath string, opts ScanOptions) (models.ScanResult, error) {
	result := models.ScanResult{RootPath: rootPath}

	info, err := os.Stat(rootPath)
	if err != nil || !info.IsDir() {
		return result, fmt.Errorf("%w: %s", ErrInvalidRoot, rootPath)
	}

	include := make(map[string]struct{}, len(opts.IncludeExtensions))
	for _, ext := range opts.IncludeExtensions {
		include[normalizeExtension(ext)] = struct{}{}
	}

	ignore := make(map[string]struct{}, len(opts.IgnoreNames))
	for _, name := range opts.IgnoreNames {
		if name = strings.TrimSpace(name); name != "" {
			ignore[name] = struct{}{}
		}
	}

	skipName := func(name string) bool {
		if _, ok := excludedDirNames[name]; ok {
			return true
		}
		_, ok := ignore[name]
		return ok
	}

	walkErr := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			// Unreadable directory entries are recoverable.
			result.AddWarning(path, err.Error())
			logger.ScanError("Scan: cannot access %s: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path == rootPath {
				return nil
			}
			if skipName(d.Name()) {
				logger.ScanDebug("Scan: skipping excluded directory %s", path)
				return filepath.SkipDir
			}
			if !opts.Recursive {
				return filepath.SkipDir
			}
			return nil
		}

		if skipName(d.Name()) {
			return nil
		}

		ext := filepath.Ext(d.Name())
		if len(include) > 0 {
			// An explicit include set wins over the registry; unknown
			// extensions in it still parse with the // default syntax.
			if _, ok := include[normalizeExtension(ext)]; !ok {
				return nil
			}
		} else if !RecognizedExtension(ext) {
			logger.ScanDebug("Scan: skipping %s: extension %q is not in the registry", path, ext)
			return nil
		}

		rel, relErr := filepath.Rel(rootPath, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		content, readErr := os.ReadFile(path)
		if readErr != nil {
			result.AddWarning(rel, readErr.Error())
			logger.ScanError("Scan: cannot read %s: %v", rel, readErr)
			return nil
		}
		if !utf8.Valid(content) {
			result.AddWarning(rel, "content is not valid UTF-8")
			logger.ScanDebug("Scan: skipping %s: content is not valid UTF-8", rel)
			return nil
		}

		result.FilesScanned++
		records := ExtractFromString(string(content), SyntaxForExtension(ext))
		if len(records) == 0 {
			return nil
		}
		for i := range records {
			records[i].FilePath = rel
		}
		result.Files = append(result.Files, models.FileCitations{FilePath: rel, Citations: records})
		logger.ScanDebug("Scan: %s yielded %d citation(s)", rel, len(records))
		return nil
	})
	if walkErr != nil {
		return models.ScanResult{RootPath: rootPath}, walkErr
	}

	// Traversal order varies by OS; the path sort is what makes output
	// reproducible.
	sort.Slice(result.Files, func(i, j int) bool {
		return result.Files[i].FilePath < result.Files[j].FilePath
	})
	sort.Slice(result.Warnings, func(i, j int) bool {
		return result.Warnings[i].FilePath < result.Warnings[j].FilePath
	})

	logger.ScanInfo("Scan of %s complete: %d file(s) scanned, %d skipped, %d citation(s) found",
		rootPath, result.FilesScanned, len(result.Warnings), result.TotalCitations())
	return result, nil
}
