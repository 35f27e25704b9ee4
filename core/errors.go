package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRoot is returned when the scan root does not exist or is
	// not a directory. No partial work is attempted.
	ErrInvalidRoot = errors.New("scan root does not exist or is not a directory")

	// ErrUnsupportedFormat is returned for output formats other than
	// markdown, html and json.
	ErrUnsupportedFormat = errors.New("unsupported output format")
)

// OutputWriteError reports that a rendered document could not be persisted.
// The document itself was computed successfully; callers can distinguish
// "nothing to cite" from "could not save results".
type OutputWriteError struct {
	Path string
	Err  error
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("failed to write output to %s: %v", e.Path, e.Err)
}

func (e *OutputWriteError) Unwrap() error {
	return e.Err
}
