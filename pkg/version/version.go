// Package version compares application version strings such as "01.05".
//
// Versions are compared as base-10 numbers, so "1.50" equals "1.5" and
// "01.00" equals "1.0". Text that is not a finite number is rejected with
// ErrInvalidVersion instead of being treated as zero.
package version

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/glorpus-work/pkginstall/pkg/errutils"
)

// ErrInvalidVersion is returned for version text that is not a finite number.
var ErrInvalidVersion = errutils.ErrInvalidVersion

// Result is the outcome of a comparison.
type Result int

const (
	Less    Result = -1
	Equal   Result = 0
	Greater Result = 1
)

func (r Result) String() string {
	switch r {
	case Less:
		return "less"
	case Equal:
		return "equal"
	case Greater:
		return "greater"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// Parse converts version text to its numeric value.
func Parse(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidVersion)
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}
	return v, nil
}

// Compare reports how a relates to b.
func Compare(a, b string) (Result, error) {
	va, err := Parse(a)
	if err != nil {
		return Equal, err
	}
	vb, err := Parse(b)
	if err != nil {
		return Equal, err
	}

	switch {
	case va < vb:
		return Less, nil
	case va > vb:
		return Greater, nil
	default:
		return Equal, nil
	}
}
