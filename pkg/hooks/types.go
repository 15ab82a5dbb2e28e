package hooks

// HookType represents the type of hooks.
type HookType string

// Supported hook types.
const (
	PreInstall  HookType = "pre-install"
	PostInstall HookType = "post-install"
)

// Types lists the supported hook types in execution order.
var Types = []HookType{PreInstall, PostInstall}

// Valid reports whether t is a supported hook type.
func (t HookType) Valid() bool {
	return t == PreInstall || t == PostInstall
}

// Hook represents a hook script with its type and content.
type Hook struct {
	Type    HookType
	Content string
}

// HookContext describes the installation a hook script runs for.
type HookContext struct {
	TitleID     string
	ContentID   string
	Entitlement string
	Action      string
	TargetPath  string
	GameDir     string
	PackagePath string
	Vars        map[string]interface{}
}

// Executor runs hook scripts.
type Executor interface {
	// Execute runs the script of the given type, if any.
	Execute(hookType HookType, ctx HookContext) error

	// HasScript reports whether a script of the given type is loaded.
	HasScript(hookType HookType) bool
}
