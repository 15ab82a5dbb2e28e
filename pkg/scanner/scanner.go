// Package scanner locates an existing installation of a title below a
// library folder.
package scanner

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/glorpus-work/pkginstall/internal/logger"
	"github.com/glorpus-work/pkginstall/pkg/errutils"
	"github.com/glorpus-work/pkginstall/pkg/fsutil"
)

// Scanner performs a depth-bounded search for installed titles. It holds no
// state and is safe for concurrent use.
type Scanner struct{}

// New creates a Scanner.
func New() *Scanner {
	return &Scanner{}
}

// FindGame searches root for a folder named titleID that holds a complete
// installation (sce_sys/param.sfo and eboot.bin) and returns the path of its
// eboot.bin. root itself is depth 0; a negative maxDepth never matches.
//
// Subdirectories that cannot be listed are skipped. Failing to list root is
// returned as an error wrapping errutils.ErrScanRoot. The one exception is a
// root that does not exist: nothing can be installed below it yet, so it is
// reported as not found and a first install into a fresh library proceeds.
func (s *Scanner) FindGame(root, titleID string, maxDepth int) (string, bool, error) {
	if maxDepth < 0 || titleID == "" {
		return "", false, nil
	}
	if eboot, ok := matchGame(root, titleID); ok {
		return eboot, true, nil
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, errutils.Wrapf(errutils.ErrScanRoot, "%s: %v", root, err)
	}

	eboot, found := s.searchEntries(root, entries, titleID, maxDepth-1)
	return eboot, found, nil
}

func (s *Scanner) search(dir, titleID string, depth int) (string, bool) {
	if depth < 0 {
		return "", false
	}
	if eboot, ok := matchGame(dir, titleID); ok {
		return eboot, true
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Debug("Skipping unreadable directory", logger.Fields{"dir": dir, "error": err})
		if len(entries) == 0 {
			return "", false
		}
	}
	return s.searchEntries(dir, entries, titleID, depth-1)
}

func (s *Scanner) searchEntries(dir string, entries []os.DirEntry, titleID string, depth int) (string, bool) {
	for _, entry := range entries {
		if !isDir(dir, entry) {
			continue
		}
		if eboot, ok := s.search(filepath.Join(dir, entry.Name()), titleID, depth); ok {
			return eboot, true
		}
	}
	return "", false
}

// isDir follows symlinks so libraries linked in from other drives are searched.
func isDir(parent string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	return fsutil.IsDir(filepath.Join(parent, entry.Name()))
}

func matchGame(dir, titleID string) (string, bool) {
	if filepath.Base(dir) != titleID {
		return "", false
	}
	if !fsutil.IsFile(fsutil.ParamSFO(dir)) {
		return "", false
	}
	eboot := filepath.Join(dir, fsutil.EbootName)
	if !fsutil.IsFile(eboot) {
		return "", false
	}
	return eboot, true
}
