package sfo

import (
	"fmt"

	"github.com/glorpus-work/pkginstall/pkg/errutils"
)

// Parse errors. All of them belong to the format class.
var (
	// ErrInvalidMagic is returned when the data does not start with the PSF magic.
	ErrInvalidMagic = fmt.Errorf("not a param.sfo file: %w", errutils.ErrFormat)

	// ErrTruncated is returned when a table or value points past the end of the data.
	ErrTruncated = fmt.Errorf("truncated param.sfo: %w", errutils.ErrFormat)

	// ErrUnsupportedValue is returned when an entry has an unknown value format.
	ErrUnsupportedValue = fmt.Errorf("unsupported param.sfo value format: %w", errutils.ErrFormat)
)
