package container

import (
	"fmt"

	"github.com/glorpus-work/pkginstall/pkg/errutils"
)

// Package reader errors.
var (
	// ErrUnsupportedFormat is returned for files that are neither a .pkg nor a game dump.
	ErrUnsupportedFormat = fmt.Errorf("unsupported package format: %w", errutils.ErrFormat)

	// ErrInvalidHeader is returned when a .pkg header is truncated or inconsistent.
	ErrInvalidHeader = fmt.Errorf("invalid pkg header: %w", errutils.ErrFormat)

	// ErrNoParamSFO is returned when a package carries no param.sfo.
	ErrNoParamSFO = fmt.Errorf("package has no param.sfo: %w", errutils.ErrFormat)

	// ErrNoTitleID is returned when neither the header nor the param.sfo name the title.
	ErrNoTitleID = fmt.Errorf("package has no title identifier: %w", errutils.ErrValidation)
)

// FormatError reports a package that could not be read, with the file it came from.
type FormatError struct {
	Path string
	Err  error
}

// Error implements the error interface for FormatError.
func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *FormatError) Unwrap() error {
	return e.Err
}
