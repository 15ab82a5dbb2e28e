package container

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"

	"github.com/mholt/archives"

	"github.com/glorpus-work/pkginstall/pkg/fsutil"
	"github.com/glorpus-work/pkginstall/pkg/model"
	"github.com/glorpus-work/pkginstall/pkg/sfo"
)

// OpenFS returns the file system of a dump, rooted at the folder that holds
// sce_sys. The returned closer must be called when done.
func (p *Package) OpenFS(ctx context.Context) (fs.FS, io.Closer, error) {
	if !p.IsArchive() {
		return nil, nil, fmt.Errorf("%s: %w", p.Format, ErrUnsupportedFormat)
	}
	fsys, closer, err := openArchiveFS(ctx, p.Path)
	if err != nil {
		return nil, nil, err
	}
	if p.Root == "" || p.Root == "." {
		return fsys, closer, nil
	}
	sub, err := fs.Sub(fsys, p.Root)
	if err != nil {
		_ = closer.Close()
		return nil, nil, err
	}
	return sub, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func openArchiveFS(ctx context.Context, filename string) (fs.FS, io.Closer, error) {
	fsys, err := archives.FileSystem(ctx, filename, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open archive: %w", err)
	}
	if c, ok := fsys.(io.Closer); ok {
		return fsys, c, nil
	}
	return fsys, nopCloser{}, nil
}

func openDump(ctx context.Context, filename string, format Format) (*Package, error) {
	fsys, closer, err := openArchiveFS(ctx, filename)
	if err != nil {
		return nil, err
	}
	defer func() { _ = closer.Close() }()

	if _, plain := fsys.(archives.FileFS); plain {
		return nil, ErrUnsupportedFormat
	}

	root, err := locateSysRoot(fsys)
	if err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(fsys, path.Join(root, fsutil.SysDirName, fsutil.ParamSFOName))
	if err != nil {
		return nil, fmt.Errorf("failed to read param.sfo: %w", err)
	}
	params, err := sfo.Parse(data)
	if err != nil {
		return nil, err
	}

	pkg := &Package{
		Path:   filename,
		Format: format,
		SFO:    params,
		Root:   root,
	}
	pkg.ContentID, _ = params.GetString(model.KeyContentID)
	pkg.TitleID, _ = params.GetString(model.KeyTitleID)
	if pkg.TitleID == "" {
		pkg.TitleID = titleFromContentID(pkg.ContentID)
	}
	if pkg.TitleID == "" {
		return nil, ErrNoTitleID
	}
	if category, _ := params.GetString(model.KeyCategory); category == model.CategoryPatch {
		pkg.Flags = []string{model.FlagPatch}
	}
	return pkg, nil
}

// locateSysRoot finds the folder holding sce_sys/param.sfo: the top level or
// one folder below it, the first in name order.
func locateSysRoot(fsys fs.FS) (string, error) {
	if hasParamSFO(fsys, ".") {
		return ".", nil
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrUnsupportedFormat
		}
		return "", err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	for _, e := range entries {
		if e.IsDir() && hasParamSFO(fsys, e.Name()) {
			return e.Name(), nil
		}
	}
	return "", ErrNoParamSFO
}

func hasParamSFO(fsys fs.FS, dir string) bool {
	info, err := fs.Stat(fsys, path.Join(dir, fsutil.SysDirName, fsutil.ParamSFOName))
	return err == nil && !info.IsDir()
}
