// Package extract unpacks game dumps into an install folder.
//
// Prepare indexes the package once; every file can then be written
// independently with ExtractFile, which is safe for concurrent use, or all of
// them with Run over a bounded worker pool.
package extract

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/glorpus-work/pkginstall/internal/logger"
	"github.com/glorpus-work/pkginstall/pkg/container"
	"github.com/glorpus-work/pkginstall/pkg/errutils"
	"github.com/glorpus-work/pkginstall/pkg/fsutil"
)

// File is a regular file scheduled for extraction.
type File struct {
	// Name is the slash-separated path inside the package.
	Name string
	Size int64
	Mode fs.FileMode
}

// Job extracts one package into one target folder.
type Job struct {
	target string
	fsys   fs.FS
	closer io.Closer
	files  []File
	dirs   []string

	mu     sync.RWMutex
	closed bool
}

// Prepare opens pkg, indexes its files and creates the folder layout below
// targetDir. Nothing but directories is written until files are extracted.
func Prepare(ctx context.Context, pkg *container.Package, targetDir string) (*Job, error) {
	if pkg == nil || !pkg.IsArchive() {
		format := "unknown"
		if pkg != nil {
			format = string(pkg.Format)
		}
		return nil, fmt.Errorf("%s: %w", format, ErrUnsupportedFormat)
	}
	if targetDir == "" {
		return nil, fmt.Errorf("empty target directory: %w", errutils.ErrInvalidPath)
	}

	fsys, closer, err := pkg.OpenFS(ctx)
	if err != nil {
		return nil, err
	}

	j := &Job{target: targetDir, fsys: fsys, closer: closer}
	if err := j.index(ctx); err != nil {
		_ = closer.Close()
		return nil, err
	}
	if err := j.createDirs(); err != nil {
		_ = closer.Close()
		return nil, err
	}

	logger.Debug("Prepared extraction", logger.Fields{
		"package": pkg.Path,
		"target":  targetDir,
		"files":   len(j.files),
		"dirs":    len(j.dirs),
	})
	return j, nil
}

func (j *Job) index(ctx context.Context) error {
	return fs.WalkDir(j.fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if name == "." {
			return nil
		}
		if _, err := safeJoin(j.target, name); err != nil {
			return err
		}

		if d.IsDir() {
			j.dirs = append(j.dirs, name)
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("failed to get file info for %s: %w", name, err)
		}
		if !info.Mode().IsRegular() {
			logger.Warn("Skipping non-regular entry", logger.Fields{"entry": name, "mode": info.Mode().String()})
			return nil
		}
		j.files = append(j.files, File{Name: name, Size: info.Size(), Mode: info.Mode()})
		return nil
	})
}

func (j *Job) createDirs() error {
	if err := fsutil.EnsureDir(j.target); err != nil {
		return fmt.Errorf("failed to create target directory: %w", err)
	}
	for _, name := range j.dirs {
		path, _ := safeJoin(j.target, name)
		if err := fsutil.EnsureDir(path); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", name, err)
		}
	}
	return nil
}

// safeJoin joins a package entry name onto dir, rejecting names that are
// absolute or climb out of dir.
func safeJoin(dir, name string) (string, error) {
	local := filepath.FromSlash(name)
	if !filepath.IsLocal(local) {
		return "", fmt.Errorf("%w: %s", ErrPathTraversal, name)
	}
	return filepath.Join(dir, local), nil
}

// Target returns the folder files are extracted to.
func (j *Job) Target() string {
	return j.target
}

// FileCount returns the number of files ExtractFile accepts.
func (j *Job) FileCount() int {
	return len(j.files)
}

// Files returns the indexed files in extraction order.
func (j *Job) Files() []File {
	return append([]File(nil), j.files...)
}

// ExtractFile writes the file at index to the target folder, replacing any
// existing file.
func (j *Job) ExtractFile(ctx context.Context, index int) error {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.closed {
		return ErrJobClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if index < 0 || index >= len(j.files) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(j.files))
	}

	f := j.files[index]
	targetPath, err := safeJoin(j.target, f.Name)
	if err != nil {
		return err
	}
	return j.writeRegularFile(f, targetPath)
}

// writeRegularFile copies an entry to targetPath and preserves its mode and modification time.
func (j *Job) writeRegularFile(f File, targetPath string) error {
	srcFile, err := j.fsys.Open(f.Name)
	if err != nil {
		return fmt.Errorf("failed to open source file %s: %w", f.Name, err)
	}
	defer func() { _ = srcFile.Close() }()

	info, err := srcFile.Stat()
	if err != nil {
		return fmt.Errorf("failed to get file info for %s: %w", f.Name, err)
	}

	if err := fsutil.EnsureFileDir(targetPath); err != nil {
		return fmt.Errorf("failed to create parent directory for %s: %w", f.Name, err)
	}

	perm := info.Mode().Perm()
	if perm == 0 {
		perm = fsutil.FileModeDefault
	}
	if filepath.Base(targetPath) == fsutil.EbootName {
		perm |= fsutil.FileModeExec
	}
	dstFile, err := fsutil.CreateFilePerm(targetPath, perm)
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", targetPath, err)
	}
	defer func() { _ = dstFile.Close() }()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy file %s: %w", f.Name, err)
	}

	if err := os.Chmod(targetPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions for %s: %w", targetPath, err)
	}
	if mt := info.ModTime(); !mt.IsZero() {
		if err := os.Chtimes(targetPath, mt, mt); err != nil {
			return fmt.Errorf("failed to set modification time for %s: %w", targetPath, err)
		}
	}
	return nil
}

// Close releases the package. Running extractions finish first.
func (j *Job) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil
	}
	j.closed = true
	return j.closer.Close()
}
