package orchestrator

import (
	"context"
	"fmt"

	"github.com/glorpus-work/pkginstall/internal/logger"
	"github.com/glorpus-work/pkginstall/pkg/container"
	"github.com/glorpus-work/pkginstall/pkg/errutils"
	"github.com/glorpus-work/pkginstall/pkg/extract"
	"github.com/glorpus-work/pkginstall/pkg/hooks"
	"github.com/glorpus-work/pkginstall/pkg/model"
	"github.com/glorpus-work/pkginstall/pkg/resolver"
)

// ErrNotConfigured is returned when a required collaborator is missing.
var ErrNotConfigured = fmt.Errorf("orchestrator is not fully configured")

// ContainerOpener opens packages with container.Open.
type ContainerOpener struct{}

// Open implements PackageOpener.
func (ContainerOpener) Open(ctx context.Context, path string) (*container.Package, error) {
	return container.Open(ctx, path)
}

// ArchiveExtractor extracts game dumps with the extract package.
type ArchiveExtractor struct{}

// Extract implements Extractor.
func (ArchiveExtractor) Extract(ctx context.Context, pkg *container.Package, targetDir string, opts extract.Options) error {
	job, err := extract.Prepare(ctx, pkg, targetDir)
	if err != nil {
		return err
	}
	defer func() { _ = job.Close() }()
	return job.Run(ctx, opts)
}

// New returns an Orchestrator using the default package reader and extractor.
// hookExec may be nil.
func New(planner InstallPlanner, hookExec HookExecutor) *Orchestrator {
	return &Orchestrator{
		Opener:    ContainerOpener{},
		Planner:   planner,
		Extractor: ArchiveExtractor{},
		HookExec:  hookExec,
	}
}

func (o *Orchestrator) emit(e Event) {
	if o.Hooks.OnEvent != nil {
		o.Hooks.OnEvent(e)
	}
}

// Plan opens the package and computes its plan without writing anything.
func (o *Orchestrator) Plan(ctx context.Context, packagePath string, cfg model.InstallConfig, r resolver.ConflictResolver) (model.Plan, error) {
	return o.Install(ctx, packagePath, cfg, r, InstallOptions{DryRun: true})
}

// Install opens, plans and installs the package at packagePath.
//
// An aborted plan is returned together with its error. The pre-install hook
// can veto the installation; a failing post-install hook is only logged.
func (o *Orchestrator) Install(ctx context.Context, packagePath string, cfg model.InstallConfig, r resolver.ConflictResolver, opts InstallOptions) (model.Plan, error) {
	if o.Opener == nil || o.Planner == nil || (o.Extractor == nil && !opts.DryRun) {
		return model.Plan{}, ErrNotConfigured
	}

	o.emit(Event{Phase: PhaseOpening, Msg: packagePath})
	pkg, err := o.Opener.Open(ctx, packagePath)
	if err != nil {
		o.emit(Event{Phase: PhaseError, Msg: err.Error()})
		return model.Plan{}, err
	}

	o.emit(Event{Phase: PhasePlanning, ID: pkg.TitleID, Msg: "resolving install target"})
	plan, err := o.Planner.Plan(pkg.Metadata(), cfg, r)
	if err != nil {
		o.emit(Event{Phase: PhaseError, ID: pkg.TitleID, Msg: err.Error()})
		return plan, err
	}
	if plan.Aborted() {
		abortErr := plan.Err()
		o.emit(Event{Phase: PhaseAborted, ID: plan.TitleID, Msg: abortErr.Error()})
		return plan, abortErr
	}

	o.emit(Event{Phase: PhasePlanning, ID: plan.TitleID, Msg: fmt.Sprintf("%s -> %s", plan.Action, plan.TargetPath)})
	logger.Info("Planned installation", logger.Fields{
		"title_id": plan.TitleID,
		"action":   plan.Action,
		"target":   plan.TargetPath,
	})

	if opts.DryRun {
		o.emit(Event{Phase: PhaseDone, ID: plan.TitleID, Msg: "dry run"})
		return plan, nil
	}

	hookCtx := hookContext(pkg, plan)
	if o.HookExec != nil {
		o.emit(Event{Phase: PhaseHooks, ID: plan.TitleID, Msg: string(hooks.PreInstall)})
		if err := o.HookExec.Execute(hooks.PreInstall, hookCtx); err != nil {
			o.emit(Event{Phase: PhaseError, ID: plan.TitleID, Msg: err.Error()})
			return plan, errutils.Wrap(err, "pre-install hook failed")
		}
	}

	o.emit(Event{Phase: PhaseExtracting, ID: plan.TitleID, Msg: plan.TargetPath})
	err = o.Extractor.Extract(ctx, pkg, plan.TargetPath, extract.Options{
		Concurrency: opts.Concurrency,
		OnProgress: func(done, total int) {
			o.emit(Event{Phase: PhaseExtracting, ID: plan.TitleID, Done: done, Total: total})
		},
	})
	if err != nil {
		o.emit(Event{Phase: PhaseError, ID: plan.TitleID, Msg: err.Error()})
		return plan, errutils.Wrapf(err, "failed to extract %s", packagePath)
	}

	if o.HookExec != nil {
		o.emit(Event{Phase: PhaseHooks, ID: plan.TitleID, Msg: string(hooks.PostInstall)})
		if err := o.HookExec.Execute(hooks.PostInstall, hookCtx); err != nil {
			logger.Warn("Post-install hook failed", logger.Fields{"title_id": plan.TitleID, "error": err.Error()})
		}
	}

	o.emit(Event{Phase: PhaseDone, ID: plan.TitleID, Msg: string(plan.Action)})
	return plan, nil
}

func hookContext(pkg *container.Package, plan model.Plan) hooks.HookContext {
	return hooks.HookContext{
		TitleID:     plan.TitleID,
		ContentID:   pkg.ContentID,
		Entitlement: plan.EntitlementLabel,
		Action:      string(plan.Action),
		TargetPath:  plan.TargetPath,
		GameDir:     plan.GameDir,
		PackagePath: pkg.Path,
	}
}
