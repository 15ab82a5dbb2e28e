package hooks

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/pkginstall/pkg/errutils"
)

// ScriptExtension is the file extension of hook scripts.
const ScriptExtension = ".tengo"

// LoadFiles builds an executor from script paths keyed by hook type.
// Empty paths are ignored.
func LoadFiles(paths map[HookType]string) (*TengoExecutor, error) {
	executor := NewTengoExecutor()
	for hookType, path := range paths {
		if strings.TrimSpace(path) == "" {
			continue
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, errutils.Wrapf(ErrHookLoad, "error reading hook file %s: %v", path, err)
		}
		if err := executor.AddHook(Hook{Type: hookType, Content: string(content)}); err != nil {
			return nil, err
		}
	}
	return executor, nil
}

// LoadDir loads <dir>/<hooks-type>.tengo for every supported type. A missing
// directory yields an empty executor.
func LoadDir(dir string) (*TengoExecutor, error) {
	executor := NewTengoExecutor()

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return executor, nil
		}
		return nil, errutils.Wrapf(err, "failed to read hook directory %s", dir)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ScriptExtension {
			continue
		}
		hookType := HookType(strings.TrimSuffix(entry.Name(), ScriptExtension))
		if !hookType.Valid() {
			continue
		}

		hookPath := filepath.Join(dir, entry.Name())
		content, err := os.ReadFile(hookPath)
		if err != nil {
			return nil, errutils.Wrapf(err, "error reading hook file %s", hookPath)
		}
		executor.AddScript(hookType, string(content))
	}

	return executor, nil
}

// HookTemplate generates a template for a hook script.
func HookTemplate(hookType HookType) string {
	switch hookType {
	case PreInstall:
		return `// Pre-install hook
// This script runs after planning and before any file is written.
// Available variables:
// - titleId: string - title identifier, e.g. CUSA00001
// - contentId: string - full content identifier
// - entitlement: string - entitlement label of the package
// - action: string - install-new, overwrite-game, apply-patch, install-addon or overwrite-addon
// - targetPath: string - folder the package is extracted to
// - gameDir: string - folder of the base game
// - packagePath: string - path of the package file
// Assign a message to err to abort the installation.

// Example: refuse to overwrite a game
/*
if action == "overwrite-game" {
    err = "overwriting " + titleId + " is disabled"
}
*/`

	case PostInstall:
		return `// Post-install hook
// This script runs after all files were extracted.
// Available variables: same as pre-install hooks.
// Setting err is reported but does not undo the installation.

// Example: log the installation
/*
fmt := import("fmt")
fmt.println("installed " + titleId + " to " + targetPath)
*/`

	default:
		return "// Unknown hook type: " + string(hookType)
	}
}
