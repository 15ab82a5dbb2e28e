// Package fsutil provides filesystem helpers shared by the scanner, planner
// and extractor: permission constants, existence checks and the
// XDG-based default locations.
package fsutil

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// EnsureDir creates a directory and its parents with DirModeDefault.
func EnsureDir(path string) error {
	return os.MkdirAll(path, DirModeDefault)
}

// EnsureFileDir creates the parent directory of a file path.
func EnsureFileDir(filePath string) error {
	return EnsureDir(filepath.Dir(filePath))
}

// Exists reports whether path exists. Errors other than "not exist" are
// reported as existing so callers never treat an unreadable path as free.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsFile reports whether path exists and is not a directory.
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// HasEntries reports whether dir is a directory with at least one visible
// entry. Hidden entries such as .DS_Store are ignored. A missing directory
// has no entries.
func HasEntries(dir string) (bool, error) {
	f, err := os.Open(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() { _ = f.Close() }()

	for {
		names, err := f.Readdirnames(64)
		for _, name := range names {
			if !strings.HasPrefix(name, ".") {
				return true, nil
			}
		}
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
	}
}

// CreateFilePerm creates or truncates a file with the specified permissions.
func CreateFilePerm(name string, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, perm)
}

// SysFile returns the path of a file inside a title's sce_sys directory.
func SysFile(gameDir, name string) string {
	return filepath.Join(gameDir, SysDirName, name)
}

// ParamSFO returns the param.sfo path of a title folder.
func ParamSFO(gameDir string) string {
	return SysFile(gameDir, ParamSFOName)
}
