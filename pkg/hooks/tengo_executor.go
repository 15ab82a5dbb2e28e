package hooks

import (
	"fmt"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// TengoExecutor handles the execution of Tengo scripts.
type TengoExecutor struct {
	scripts map[HookType]string
	mutex   sync.RWMutex
}

// NewTengoExecutor creates a new Tengo script executor.
func NewTengoExecutor() *TengoExecutor {
	return &TengoExecutor{
		scripts: make(map[HookType]string),
	}
}

// Execute runs the specified hook type with the given context.
// A script aborts by assigning a non-empty string or an error value to err.
func (e *TengoExecutor) Execute(hookType HookType, ctx HookContext) error {
	e.mutex.RLock()
	script, exists := e.scripts[hookType]
	e.mutex.RUnlock()
	if !exists {
		return nil
	}

	scriptInstance := tengo.NewScript([]byte(script))
	scriptInstance.SetImports(stdlib.GetModuleMap("fmt", "os", "text", "times", "json"))

	vars := map[string]interface{}{
		"titleId":     ctx.TitleID,
		"contentId":   ctx.ContentID,
		"entitlement": ctx.Entitlement,
		"action":      ctx.Action,
		"targetPath":  ctx.TargetPath,
		"gameDir":     ctx.GameDir,
		"packagePath": ctx.PackagePath,
		"err":         "",
	}
	for k, v := range ctx.Vars {
		vars[k] = v
	}
	for k, v := range vars {
		if err := scriptInstance.Add(k, v); err != nil {
			return fmt.Errorf("failed to add variable '%s' to script: %w", k, err)
		}
	}

	compiled, err := scriptInstance.Run()
	if err != nil {
		return fmt.Errorf("%s: %w: %w", hookType, ErrHookExecution, err)
	}

	errVar := compiled.Get("err")
	if errVar != nil {
		switch v := errVar.Value().(type) {
		case error:
			return fmt.Errorf("%s: %w: %w", hookType, ErrHookScript, v)
		case string:
			if v != "" {
				return fmt.Errorf("%s: %w: %s", hookType, ErrHookScript, v)
			}
		}
	}

	return nil
}

// AddScript adds or updates a script for the specified hook type.
func (e *TengoExecutor) AddScript(hookType HookType, script string) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.scripts[hookType] = script
}

// AddHook adds a hooks after validating its type.
func (e *TengoExecutor) AddHook(hook Hook) error {
	if hook.Type == "" {
		return ErrHookTypeEmpty
	}
	if !hook.Type.Valid() {
		return ErrUnsupportedHookType(string(hook.Type))
	}
	e.AddScript(hook.Type, hook.Content)
	return nil
}

// RemoveScript removes the script for the specified hook type.
func (e *TengoExecutor) RemoveScript(hookType HookType) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	delete(e.scripts, hookType)
}

// HasScript checks if a script exists for the specified hook type.
func (e *TengoExecutor) HasScript(hookType HookType) bool {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	_, exists := e.scripts[hookType]
	return exists
}
