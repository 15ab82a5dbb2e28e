package hooks

import (
	"fmt"

	"github.com/glorpus-work/pkginstall/pkg/errutils"
)

// Common hooks errors.
var (
	// ErrHookTypeEmpty is returned when a hook type is empty.
	ErrHookTypeEmpty = fmt.Errorf("hook type cannot be empty")

	// ErrHookExecution is returned when there's an error executing a hooks.
	ErrHookExecution = fmt.Errorf("error executing hooks")

	// ErrHookScript is returned when a script sets err to abort the installation.
	ErrHookScript = fmt.Errorf("hook script error")

	// ErrHookLoad is returned when there's an error loading a hooks.
	ErrHookLoad = fmt.Errorf("failed to load hooks")
)

// ErrUnsupportedHookType is returned when an unknown hook type is configured.
func ErrUnsupportedHookType(hookType string) error {
	return errutils.Wrapf(ErrHookLoad, "unsupported hook type: %s", hookType)
}
