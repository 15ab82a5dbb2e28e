// Package container opens installable packages and exposes the metadata the
// planner needs.
//
// Two layouts are understood: PS4 .pkg files, of which only the header and the
// embedded param.sfo are read, and game dumps, either as a plain folder or as
// any archive mholt/archives can identify, with sce_sys/param.sfo at the root
// or one folder below it.
package container

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/glorpus-work/pkginstall/internal/logger"
	"github.com/glorpus-work/pkginstall/pkg/model"
	"github.com/glorpus-work/pkginstall/pkg/sfo"
)

// Format is the layout of a package on disk.
type Format string

const (
	// FormatPKG is a PS4 .pkg file.
	FormatPKG Format = "pkg"
	// FormatArchive is a game dump packed into an archive.
	FormatArchive Format = "archive"
	// FormatDirectory is an unpacked game dump.
	FormatDirectory Format = "directory"
)

// Package is an opened package.
type Package struct {
	Path      string
	Format    Format
	TitleID   string
	ContentID string
	// Flags are the package-type tokens, e.g. SUBSEQUENT_PATCH and PATCH.
	Flags []string
	SFO   *sfo.File
	// Root is the slash-separated folder of a dump that holds sce_sys; "." for the top level.
	Root string
}

// Open reads the package at path.
func Open(ctx context.Context, path string) (*Package, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open package %s: %w", path, err)
	}

	var pkg *Package
	if info.IsDir() {
		pkg, err = openDump(ctx, path, FormatDirectory)
	} else {
		var isPKG bool
		isPKG, err = hasPKGMagic(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read package %s: %w", path, err)
		}
		if isPKG {
			pkg, err = openPKG(path)
		} else {
			pkg, err = openDump(ctx, path, FormatArchive)
		}
	}
	if err != nil {
		var fe *FormatError
		if errors.As(err, &fe) {
			return nil, err
		}
		return nil, &FormatError{Path: path, Err: err}
	}

	logger.Debug("Opened package", logger.Fields{
		"path":       path,
		"format":     pkg.Format,
		"title_id":   pkg.TitleID,
		"content_id": pkg.ContentID,
		"flags":      pkg.Flags,
	})
	return pkg, nil
}

func hasPKGMagic(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer func() { _ = f.Close() }()

	var magic [4]byte
	if _, err := io.ReadFull(f, magic[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}
		return false, err
	}
	return isPKGMagic(magic[:]), nil
}

// Metadata returns the planner's view of the package.
func (p *Package) Metadata() model.PackageMetadata {
	var fields model.Fields
	if p.SFO != nil {
		fields = p.SFO
	}
	return model.NewPackageMetadata(p.TitleID, p.Flags, fields)
}

// IsArchive reports whether the package is a dump the extractor can unpack.
func (p *Package) IsArchive() bool {
	return p.Format == FormatArchive || p.Format == FormatDirectory
}

// Title returns the display title from param.sfo, falling back to the title identifier.
func (p *Package) Title() string {
	if p.SFO != nil {
		if t, ok := p.SFO.GetString(model.KeyTitle); ok && t != "" {
			return t
		}
	}
	return p.TitleID
}

// titleFromContentID extracts the title identifier, e.g. CUSA00001 from
// UP0001-CUSA00001_00-GAMELABEL0000001.
func titleFromContentID(contentID string) string {
	if len(contentID) < 16 {
		return ""
	}
	return contentID[7:16]
}
