package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tidwall/gjson"

	"citetool/logger"
	"citetool/models"
)

// Options parameterizes one documentation run.
type Options struct {
	// RootPath is the directory to scan. Required.
	RootPath string
	// OutputPath is where the rendered document is written. Empty means
	// render only, no file output.
	OutputPath string
	// Format is one of markdown, html, json. Empty defaults to markdown.
	Format string
	// IncludeExtensions restricts which files are scanned. Empty means all
	// recognized extensions.
	IncludeExtensions []string
	// IgnoreNames are extra directory/file base names to skip.
	IgnoreNames []string
	// Recursive controls traversal into subdirectories.
	Recursive bool
}

// Report summarizes one completed documentation run.
type Report struct {
	Result        models.ScanResult
	Document      string
	Format        string
	FilesScanned  int
	FilesSkipped  int
	CitationCount int
	Warnings      []models.ScanWarning
	OutputPath    string
	OutputWritten bool
	Duration      time.Duration
}

// GenerateDocumentation runs the full pipeline: validate options, scan the
// tree, render the document and optionally write it to disk. Scan or format
// errors abort before any file is touched; a write failure after a
// successful render surfaces as *OutputWriteError with the rendered document
// still present in the report.
func GenerateDocumentation(ctx context.Context, opts Options) (*Report, error) {
	started := time.Now()

	format := opts.Format
	if format == "" {
		format = FormatMarkdown
	}
	switch format {
	case FormatMarkdown, FormatHTML, FormatJSON:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	logger.Info("GenerateDocumentation: scanning %s (format=%s, recursive=%t)", opts.RootPath, format, opts.Recursive)

	result, err := ExtractFromDirectoryWithOptions(ctx, opts.RootPath, ScanOptions{
		IncludeExtensions: opts.IncludeExtensions,
		Recursive:         opts.Recursive,
		IgnoreNames:       opts.IgnoreNames,
	})
	if err != nil {
		return nil, err
	}

	document, err := Render(result, format)
	if err != nil {
		return nil, err
	}
	if format == FormatJSON && !gjson.Valid(document) {
		return nil, fmt.Errorf("rendered JSON document failed validation")
	}

	report := &Report{
		Result:        result,
		Document:      document,
		Format:        format,
		FilesScanned:  result.FilesScanned,
		FilesSkipped:  result.FilesSkipped(),
		CitationCount: result.TotalCitations(),
		Warnings:      result.Warnings,
		OutputPath:    opts.OutputPath,
	}

	if opts.OutputPath != "" {
		if dir := filepath.Dir(opts.OutputPath); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				report.Duration = time.Since(started)
				return report, &OutputWriteError{Path: opts.OutputPath, Err: err}
			}
		}
		if err := os.WriteFile(opts.OutputPath, []byte(document), 0644); err != nil {
			report.Duration = time.Since(started)
			return report, &OutputWriteError{Path: opts.OutputPath, Err: err}
		}
		report.OutputWritten = true
		logger.Info("GenerateDocumentation: wrote %d byte(s) to %s", len(document), opts.OutputPath)
	}

	report.Duration = time.Since(started)
	return report, nil
}
