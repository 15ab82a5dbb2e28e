//go:generate mockgen -destination=./mocks/planner.go . GameFinder,MetadataReader,Filesystem

// Package planner decides where a package goes and what installing it means.
//
// Plan is a pure function of the package metadata, the install configuration,
// the state of the disk and the operator's answers. It only stats and reads;
// writing the package is left to the caller.
package planner

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/pkginstall/internal/logger"
	"github.com/glorpus-work/pkginstall/pkg/errutils"
	"github.com/glorpus-work/pkginstall/pkg/fsutil"
	"github.com/glorpus-work/pkginstall/pkg/model"
	"github.com/glorpus-work/pkginstall/pkg/resolver"
	"github.com/glorpus-work/pkginstall/pkg/version"
)

// GameFinder locates an installed title below a library folder.
type GameFinder interface {
	FindGame(root, titleID string, maxDepth int) (string, bool, error)
}

// MetadataReader opens an installed param.sfo.
type MetadataReader interface {
	ReadFile(path string) (model.Fields, error)
}

// Filesystem is the read-only view of the disk used for conflict checks.
type Filesystem interface {
	Exists(path string) bool
	HasEntries(dir string) (bool, error)
}

type osFilesystem struct{}

func (osFilesystem) Exists(path string) bool { return fsutil.Exists(path) }

func (osFilesystem) HasEntries(dir string) (bool, error) { return fsutil.HasEntries(dir) }

// Option configures a Planner.
type Option func(*Planner)

// WithFilesystem replaces the disk view used for existence checks.
func WithFilesystem(fs Filesystem) Option {
	return func(p *Planner) {
		if fs != nil {
			p.fs = fs
		}
	}
}

// WithScanDepth bounds the search for an existing installation. A negative
// depth disables the search.
func WithScanDepth(depth int) Option {
	return func(p *Planner) {
		p.scanDepth = depth
	}
}

// Planner computes install plans. It keeps no state between calls.
type Planner struct {
	finder    GameFinder
	reader    MetadataReader
	fs        Filesystem
	scanDepth int
}

// New creates a Planner.
func New(finder GameFinder, reader MetadataReader, opts ...Option) *Planner {
	p := &Planner{
		finder:    finder,
		reader:    reader,
		fs:        osFilesystem{},
		scanDepth: model.DefaultScanDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan resolves the install target and action for meta.
//
// A returned error means no plan could be computed: the title identifier or
// install folder is missing, or the disk could not be read. Every other
// outcome, including refusals, is a Plan whose Abort field explains why.
// A nil resolver answers every question with its default.
func (p *Planner) Plan(meta model.PackageMetadata, cfg model.InstallConfig, r resolver.ConflictResolver) (model.Plan, error) {
	if strings.TrimSpace(meta.TitleID) == "" {
		return model.Plan{}, errutils.ErrEmptyTitleID
	}
	if strings.TrimSpace(cfg.InstallRoot) == "" {
		return model.Plan{}, errutils.ErrInstallRootNotSet
	}
	if r == nil {
		r = resolver.Defaults{}
	}

	plan := model.Plan{
		TitleID:        meta.TitleID,
		Kind:           meta.Kind(),
		PackageVersion: meta.AppVersion,
	}

	if meta.ContentID == "" {
		return plan.Aborting(model.ErrorKindValidation, errutils.ErrMissingContentID), nil
	}
	label, ok := model.EntitlementLabel(meta.ContentID)
	if !ok {
		return plan.Aborting(model.ErrorKindFormat, errutils.ErrMalformedContentID), nil
	}
	plan.EntitlementLabel = label

	separate := plan.Kind == model.KindPatch && cfg.SeparateUpdateFolder
	base := filepath.Join(cfg.InstallRoot, meta.TitleID)

	eboot, found, err := p.finder.FindGame(cfg.InstallRoot, meta.TitleID, p.scanDepth)
	if err != nil {
		return model.Plan{}, err
	}
	if found {
		base = filepath.Dir(eboot)
	}
	plan.GameDir = base
	plan.TargetPath = targetPath(base, meta.TitleID, separate)

	logger.Debug("Classified package", logger.Fields{
		"title_id":  meta.TitleID,
		"kind":      plan.Kind,
		"found":     found,
		"game_dir":  plan.GameDir,
		"target":    plan.TargetPath,
		"separate":  separate,
		"scan_root": cfg.InstallRoot,
		"depth":     p.scanDepth,
	})

	if !found {
		if plan.Kind != model.KindGame {
			return plan.Aborting(model.ErrorKindNotFound, errutils.ErrBaseNotInstalled), nil
		}
		if !p.fs.Exists(base) {
			plan.Action = model.ActionInstallNew
			return plan, nil
		}
	}

	switch plan.Kind {
	case model.KindPatch:
		return p.resolvePatch(plan, meta, r)
	case model.KindAddon:
		return p.resolveAddon(plan, cfg, r)
	default:
		return p.resolveGame(plan, r), nil
	}
}

// targetPath places a separate update folder next to the game folder.
func targetPath(base, titleID string, separate bool) string {
	if !separate {
		return base
	}
	return filepath.Join(filepath.Dir(base), titleID+fsutil.PatchDirSuffix)
}

func (p *Planner) resolvePatch(plan model.Plan, meta model.PackageMetadata, r resolver.ConflictResolver) (model.Plan, error) {
	if meta.AppVersion == "" {
		return plan.Aborting(model.ErrorKindValidation, errutils.ErrMissingVersion), nil
	}

	// The update folder's param.sfo takes precedence over the base game's.
	sfoPath := fsutil.ParamSFO(plan.TargetPath)
	if !p.fs.Exists(sfoPath) {
		sfoPath = fsutil.ParamSFO(plan.GameDir)
	}
	fields, err := p.reader.ReadFile(sfoPath)
	if err != nil {
		return model.Plan{}, fmt.Errorf("%w: %s: %w", errutils.ErrReadInstalledMetadata, sfoPath, err)
	}
	installed, ok := fields.GetString(model.KeyAppVer)
	installed = strings.TrimSpace(installed)
	if !ok || installed == "" {
		return plan.Aborting(model.ErrorKindValidation, errutils.ErrMissingVersion), nil
	}
	plan.InstalledVersion = installed

	cmp, err := version.Compare(meta.AppVersion, installed)
	if err != nil {
		return plan.Aborting(model.ErrorKindFormat, err), nil
	}

	logger.Debug("Compared patch version", logger.Fields{
		"title_id":  plan.TitleID,
		"package":   meta.AppVersion,
		"installed": installed,
		"result":    cmp.String(),
		"sfo":       sfoPath,
	})

	if !r.Ask(patchQuestion(cmp, meta.AppVersion, installed)) {
		return plan.Aborting(model.ErrorKindDeclined, errutils.ErrUserDeclined), nil
	}
	plan.Action = model.ActionApplyPatch
	return plan, nil
}

func (p *Planner) resolveAddon(plan model.Plan, cfg model.InstallConfig, r resolver.ConflictResolver) (model.Plan, error) {
	if strings.TrimSpace(cfg.AddonRoot) == "" {
		return model.Plan{}, errutils.ErrAddonRootNotSet
	}

	hasContent, err := p.fs.HasEntries(cfg.AddonRoot)
	if err != nil {
		return model.Plan{}, fmt.Errorf("%w: %s: %w", errutils.ErrReadAddonRoot, cfg.AddonRoot, err)
	}

	q := resolver.Question{
		Kind:    resolver.KindInstallAddon,
		Title:   "DLC Install",
		Message: fmt.Sprintf("Would you like to install DLC: %s?", plan.EntitlementLabel),
	}
	action := model.ActionInstallAddon
	if hasContent {
		q = resolver.Question{
			Kind:    resolver.KindOverwriteAddon,
			Title:   "DLC Install",
			Message: fmt.Sprintf("DLC already installed:\n%s\n\nWould you like to overwrite?", cfg.AddonRoot),
		}
		action = model.ActionOverwriteAddon
	}

	logger.Debug("Resolving add-on", logger.Fields{
		"title_id":    plan.TitleID,
		"entitlement": plan.EntitlementLabel,
		"addon_root":  cfg.AddonRoot,
		"has_content": hasContent,
	})

	if !r.Ask(q) {
		return plan.Aborting(model.ErrorKindDeclined, errutils.ErrUserDeclined), nil
	}
	plan.TargetPath = cfg.AddonRoot
	plan.Action = action
	return plan, nil
}

func (p *Planner) resolveGame(plan model.Plan, r resolver.ConflictResolver) model.Plan {
	q := resolver.Question{
		Kind:    resolver.KindOverwriteGame,
		Title:   "PKG Installation",
		Message: fmt.Sprintf("Game already installed\n%s\nWould you like to overwrite?", plan.GameDir),
	}
	if !r.Ask(q) {
		return plan.Aborting(model.ErrorKindDeclined, errutils.ErrUserDeclined)
	}
	plan.Action = model.ActionOverwriteGame
	return plan
}

func patchQuestion(cmp version.Result, pkgVersion, installed string) resolver.Question {
	q := resolver.Question{Title: "Patch detected!"}
	switch cmp {
	case version.Equal:
		q.Kind = resolver.KindPatchSameVersion
		q.Message = fmt.Sprintf("PKG and Game versions match: %s\nWould you like to overwrite?", pkgVersion)
	case version.Less:
		q.Kind = resolver.KindPatchOlderVersion
		q.Message = fmt.Sprintf("PKG Version %s is older than existing version: %s\nWould you like to overwrite?", pkgVersion, installed)
	default:
		q.Kind = resolver.KindPatchNewerVersion
		q.Message = fmt.Sprintf("Game exists: %s\nWould you like to apply Patch: %s ?", installed, pkgVersion)
	}
	return q
}
