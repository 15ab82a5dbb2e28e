package orchestrator

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/glorpus-work/pkginstall/pkg/container"
	"github.com/glorpus-work/pkginstall/pkg/errutils"
	"github.com/glorpus-work/pkginstall/pkg/extract"
	"github.com/glorpus-work/pkginstall/pkg/hooks"
	"github.com/glorpus-work/pkginstall/pkg/model"
	ocmocks "github.com/glorpus-work/pkginstall/pkg/orchestrator/mocks"
	"github.com/glorpus-work/pkginstall/pkg/planner"
	"github.com/glorpus-work/pkginstall/pkg/resolver"
	"github.com/glorpus-work/pkginstall/pkg/scanner"
	"github.com/glorpus-work/pkginstall/pkg/sfo"
	"github.com/glorpus-work/pkginstall/test/testutil"
)

const (
	testTitle   = "CUSA00001"
	testContent = "UP0001-CUSA00001_00-GAMELABEL0000001"
)

type fixture struct {
	opener    *ocmocks.MockPackageOpener
	planner   *ocmocks.MockInstallPlanner
	extractor *ocmocks.MockExtractor
	hookExec  *ocmocks.MockHookExecutor
	orch      *Orchestrator
	events    []Event
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		opener:    ocmocks.NewMockPackageOpener(ctrl),
		planner:   ocmocks.NewMockInstallPlanner(ctrl),
		extractor: ocmocks.NewMockExtractor(ctrl),
		hookExec:  ocmocks.NewMockHookExecutor(ctrl),
	}
	f.orch = &Orchestrator{
		Opener:    f.opener,
		Planner:   f.planner,
		Extractor: f.extractor,
		HookExec:  f.hookExec,
		Hooks:     Hooks{OnEvent: func(e Event) { f.events = append(f.events, e) }},
	}
	return f
}

func (f *fixture) phases() []string {
	out := make([]string, len(f.events))
	for i, e := range f.events {
		out[i] = e.Phase
	}
	return out
}

func testPackage() *container.Package {
	return &container.Package{
		Path:      "/downloads/game.tar.gz",
		Format:    container.FormatArchive,
		TitleID:   testTitle,
		ContentID: testContent,
		Root:      ".",
	}
}

func installPlan() model.Plan {
	return model.Plan{
		TitleID:          testTitle,
		EntitlementLabel: "GAMELABEL0000001",
		Kind:             model.KindGame,
		GameDir:          "/games/CUSA00001",
		TargetPath:       "/games/CUSA00001",
		Action:           model.ActionInstallNew,
	}
}

var cfg = model.NewInstallConfig("/games", "/addons", true)

func TestInstall_DryRun(t *testing.T) {
	f := newFixture(t)
	pkg := testPackage()

	f.opener.EXPECT().Open(gomock.Any(), pkg.Path).Return(pkg, nil)
	f.planner.EXPECT().Plan(pkg.Metadata(), cfg, gomock.Any()).Return(installPlan(), nil)

	plan, err := f.orch.Install(context.Background(), pkg.Path, cfg, resolver.Fixed(true), InstallOptions{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, installPlan(), plan)
	assert.Equal(t, []string{PhaseOpening, PhasePlanning, PhasePlanning, PhaseDone}, f.phases())
}

func TestPlan_IsDryRun(t *testing.T) {
	f := newFixture(t)
	f.orch.Extractor = nil
	pkg := testPackage()

	f.opener.EXPECT().Open(gomock.Any(), pkg.Path).Return(pkg, nil)
	f.planner.EXPECT().Plan(gomock.Any(), cfg, gomock.Any()).Return(installPlan(), nil)

	plan, err := f.orch.Plan(context.Background(), pkg.Path, cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, model.ActionInstallNew, plan.Action)
}

func TestInstall_Success(t *testing.T) {
	f := newFixture(t)
	pkg := testPackage()
	plan := installPlan()

	wantHookCtx := hooks.HookContext{
		TitleID:     testTitle,
		ContentID:   testContent,
		Entitlement: "GAMELABEL0000001",
		Action:      "install-new",
		TargetPath:  plan.TargetPath,
		GameDir:     plan.GameDir,
		PackagePath: pkg.Path,
	}

	f.opener.EXPECT().Open(gomock.Any(), pkg.Path).Return(pkg, nil)
	f.planner.EXPECT().Plan(gomock.Any(), cfg, gomock.Any()).Return(plan, nil)
	gomock.InOrder(
		f.hookExec.EXPECT().Execute(hooks.PreInstall, wantHookCtx).Return(nil),
		f.extractor.EXPECT().Extract(gomock.Any(), pkg, plan.TargetPath, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ *container.Package, _ string, opts extract.Options) error {
				assert.Equal(t, 4, opts.Concurrency)
				opts.OnProgress(1, 2)
				opts.OnProgress(2, 2)
				return nil
			}),
		f.hookExec.EXPECT().Execute(hooks.PostInstall, wantHookCtx).Return(nil),
	)

	got, err := f.orch.Install(context.Background(), pkg.Path, cfg, resolver.Fixed(true), InstallOptions{Concurrency: 4})
	require.NoError(t, err)
	assert.Equal(t, plan, got)

	var progress []Event
	for _, e := range f.events {
		if e.Phase == PhaseExtracting && e.Total > 0 {
			progress = append(progress, e)
		}
	}
	require.Len(t, progress, 2)
	assert.Equal(t, 2, progress[1].Done)
	assert.Equal(t, PhaseDone, f.events[len(f.events)-1].Phase)
}

func TestInstall_AbortedPlan(t *testing.T) {
	f := newFixture(t)
	pkg := testPackage()
	aborted := installPlan().Aborting(model.ErrorKindDeclined, errutils.ErrUserDeclined)

	f.opener.EXPECT().Open(gomock.Any(), pkg.Path).Return(pkg, nil)
	f.planner.EXPECT().Plan(gomock.Any(), cfg, gomock.Any()).Return(aborted, nil)

	plan, err := f.orch.Install(context.Background(), pkg.Path, cfg, resolver.Fixed(false), InstallOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errutils.ErrUserDeclined)
	assert.Equal(t, model.ActionAbort, plan.Action)

	var abortErr *model.AbortError
	require.ErrorAs(t, err, &abortErr)
	assert.Equal(t, testTitle, abortErr.TitleID)
	assert.Equal(t, PhaseAborted, f.events[len(f.events)-1].Phase)
}

func TestInstall_PlannerError(t *testing.T) {
	f := newFixture(t)
	pkg := testPackage()

	f.opener.EXPECT().Open(gomock.Any(), pkg.Path).Return(pkg, nil)
	f.planner.EXPECT().Plan(gomock.Any(), cfg, gomock.Any()).Return(model.Plan{}, errutils.ErrScanRoot)

	_, err := f.orch.Install(context.Background(), pkg.Path, cfg, nil, InstallOptions{})
	assert.ErrorIs(t, err, errutils.ErrScanRoot)
	assert.Equal(t, PhaseError, f.events[len(f.events)-1].Phase)
}

func TestInstall_OpenError(t *testing.T) {
	f := newFixture(t)
	openErr := &container.FormatError{Path: "/x.pkg", Err: container.ErrInvalidHeader}
	f.opener.EXPECT().Open(gomock.Any(), "/x.pkg").Return(nil, openErr)

	_, err := f.orch.Install(context.Background(), "/x.pkg", cfg, nil, InstallOptions{})
	assert.ErrorIs(t, err, container.ErrInvalidHeader)
}

func TestInstall_PreInstallHookVetoes(t *testing.T) {
	f := newFixture(t)
	pkg := testPackage()
	hookErr := errors.Join(hooks.ErrHookScript, errors.New("disabled"))

	f.opener.EXPECT().Open(gomock.Any(), pkg.Path).Return(pkg, nil)
	f.planner.EXPECT().Plan(gomock.Any(), cfg, gomock.Any()).Return(installPlan(), nil)
	f.hookExec.EXPECT().Execute(hooks.PreInstall, gomock.Any()).Return(hookErr)

	_, err := f.orch.Install(context.Background(), pkg.Path, cfg, nil, InstallOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, hooks.ErrHookScript)
}

func TestInstall_PostInstallHookFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	pkg := testPackage()

	f.opener.EXPECT().Open(gomock.Any(), pkg.Path).Return(pkg, nil)
	f.planner.EXPECT().Plan(gomock.Any(), cfg, gomock.Any()).Return(installPlan(), nil)
	f.hookExec.EXPECT().Execute(hooks.PreInstall, gomock.Any()).Return(nil)
	f.extractor.EXPECT().Extract(gomock.Any(), pkg, gomock.Any(), gomock.Any()).Return(nil)
	f.hookExec.EXPECT().Execute(hooks.PostInstall, gomock.Any()).Return(hooks.ErrHookScript)

	_, err := f.orch.Install(context.Background(), pkg.Path, cfg, nil, InstallOptions{})
	assert.NoError(t, err)
}

func TestInstall_ExtractError(t *testing.T) {
	f := newFixture(t)
	f.orch.HookExec = nil
	pkg := testPackage()

	f.opener.EXPECT().Open(gomock.Any(), pkg.Path).Return(pkg, nil)
	f.planner.EXPECT().Plan(gomock.Any(), cfg, gomock.Any()).Return(installPlan(), nil)
	f.extractor.EXPECT().Extract(gomock.Any(), pkg, gomock.Any(), gomock.Any()).Return(extract.ErrUnsupportedFormat)

	_, err := f.orch.Install(context.Background(), pkg.Path, cfg, nil, InstallOptions{})
	assert.ErrorIs(t, err, extract.ErrUnsupportedFormat)
}

func TestInstall_NotConfigured(t *testing.T) {
	_, err := (&Orchestrator{}).Install(context.Background(), "x", cfg, nil, InstallOptions{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestInstall_EndToEnd(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "src", testTitle)
	testutil.InstallGame(t, src, testutil.GameSFO(testTitle, testContent, "gd", "01.00"))
	testutil.WriteFiles(t, src, map[string]string{"data/level.bin": "level"})
	archivePath := filepath.Join(tmp, "game.tar.gz")
	testutil.PackTarGz(t, filepath.Join(tmp, "src"), archivePath)

	exec := hooks.NewTengoExecutor()
	exec.AddScript(hooks.PreInstall, `if action != "install-new" { err = "unexpected action " + action }`)

	orch := New(planner.New(scanner.New(), sfo.NewReader()), exec)
	installCfg := model.NewInstallConfig(filepath.Join(tmp, "games"), filepath.Join(tmp, "addons"), true)

	plan, err := orch.Install(context.Background(), archivePath, installCfg, resolver.Defaults{}, InstallOptions{Concurrency: 2})
	require.NoError(t, err)
	assert.Equal(t, model.ActionInstallNew, plan.Action)

	target := filepath.Join(installCfg.InstallRoot, testTitle)
	assert.Equal(t, target, plan.TargetPath)
	assert.FileExists(t, filepath.Join(target, "eboot.bin"))
	assert.FileExists(t, filepath.Join(target, "data", "level.bin"))

	// a second install finds the game and, answered with the default, declines
	plan, err = orch.Install(context.Background(), archivePath, installCfg, resolver.Defaults{}, InstallOptions{})
	assert.ErrorIs(t, err, errutils.ErrUserDeclined)
	assert.Equal(t, model.ActionAbort, plan.Action)
}
