//go:generate mockgen -destination=./mocks/orchestrator.go . PackageOpener,InstallPlanner,Extractor,HookExecutor

package orchestrator

import (
	"context"

	"github.com/glorpus-work/pkginstall/pkg/container"
	"github.com/glorpus-work/pkginstall/pkg/extract"
	"github.com/glorpus-work/pkginstall/pkg/hooks"
	"github.com/glorpus-work/pkginstall/pkg/model"
	"github.com/glorpus-work/pkginstall/pkg/resolver"
)

// PackageOpener reads a package from disk.
type PackageOpener interface {
	Open(ctx context.Context, path string) (*container.Package, error)
}

// InstallPlanner is the subset of the planner used by the orchestrator.
type InstallPlanner interface {
	Plan(meta model.PackageMetadata, cfg model.InstallConfig, r resolver.ConflictResolver) (model.Plan, error)
}

// Extractor writes a package's files into a folder.
type Extractor interface {
	Extract(ctx context.Context, pkg *container.Package, targetDir string, opts extract.Options) error
}

// HookExecutor runs install hooks.
type HookExecutor interface {
	Execute(hookType hooks.HookType, ctx hooks.HookContext) error
}

// Orchestrator ties the package reader, planner, hooks and extractor together.
type Orchestrator struct {
	Opener    PackageOpener
	Planner   InstallPlanner
	Extractor Extractor
	HookExec  HookExecutor // optional
	Hooks     Hooks        // Hooks for progress and event notifications
}

// Phases reported through Event.
const (
	PhaseOpening    = "opening"
	PhasePlanning   = "planning"
	PhaseHooks      = "hooks"
	PhaseExtracting = "extracting"
	PhaseDone       = "done"
	PhaseAborted    = "aborted"
	PhaseError      = "error"
)

// Event represents a simple progress notification.
type Event struct {
	Phase string // opening|planning|hooks|extracting|done|aborted|error
	ID    string // title ID
	Msg   string
	// Done and Total count extracted files during the extracting phase.
	Done  int
	Total int
}

// Hooks carries callbacks for progress events.
type Hooks struct {
	OnEvent func(Event)
}

// InstallOptions control orchestrator install execution.
type InstallOptions struct {
	Concurrency int
	DryRun      bool
}
