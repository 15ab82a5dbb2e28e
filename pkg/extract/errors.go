package extract

import (
	"fmt"

	"github.com/glorpus-work/pkginstall/pkg/errutils"
)

// Extraction errors.
var (
	// ErrUnsupportedFormat is returned for packages whose body cannot be unpacked, such as .pkg files.
	ErrUnsupportedFormat = fmt.Errorf("package body cannot be extracted: %w", errutils.ErrFormat)

	// ErrPathTraversal is returned for entries that would be written outside the target folder.
	ErrPathTraversal = fmt.Errorf("entry escapes target directory: %w", errutils.ErrFormat)

	// ErrIndexOutOfRange is returned by ExtractFile for an index outside [0, FileCount()).
	ErrIndexOutOfRange = fmt.Errorf("file index out of range")

	// ErrJobClosed is returned when a closed job is used.
	ErrJobClosed = fmt.Errorf("extraction job is closed")
)
