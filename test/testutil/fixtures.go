// Package testutil builds on-disk fixtures for tests: param.sfo files,
// installed titles, synthetic .pkg files and archived game dumps.
package testutil

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/mholt/archives"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/pkginstall/pkg/model"
	"github.com/glorpus-work/pkginstall/pkg/sfo"
)

// GameSFO returns a param.sfo with the usual identification keys. Empty
// values are left out.
func GameSFO(titleID, contentID, category, appVer string) *sfo.File {
	f := sfo.New()
	for key, value := range map[string]string{
		model.KeyTitleID:   titleID,
		model.KeyContentID: contentID,
		model.KeyCategory:  category,
		model.KeyAppVer:    appVer,
		model.KeyTitle:     "Test Game",
	} {
		if value != "" {
			f.SetString(key, value)
		}
	}
	return f
}

// WriteSFO writes f to dir/sce_sys/param.sfo.
func WriteSFO(t *testing.T, dir string, f *sfo.File) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sce_sys"), 0o755))
	require.NoError(t, f.WriteFile(filepath.Join(dir, "sce_sys", "param.sfo"), 0o644))
}

// InstallGame creates a complete installation in dir.
func InstallGame(t *testing.T, dir string, f *sfo.File) {
	t.Helper()
	WriteSFO(t, dir, f)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "eboot.bin"), []byte("\x7fELF"), 0o644))
}

// WriteFiles creates files below dir from a map of slash-separated names to contents.
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

// PackTarGz packs the contents of sourceDir into a .tar.gz at archivePath.
func PackTarGz(t *testing.T, sourceDir, archivePath string) {
	t.Helper()
	ctx := context.Background()

	abs, err := filepath.Abs(sourceDir)
	require.NoError(t, err)
	files, err := archives.FilesFromDisk(ctx, nil, map[string]string{
		abs + string(os.PathSeparator): "",
	})
	require.NoError(t, err)

	out, err := os.Create(archivePath)
	require.NoError(t, err)
	defer func() { _ = out.Close() }()

	format := archives.CompressedArchive{
		Compression: archives.Gz{},
		Archival:    archives.Tar{},
	}
	require.NoError(t, format.Archive(ctx, out, files))
}

// PKGOptions describes a synthetic .pkg file.
type PKGOptions struct {
	ContentID    string
	ContentFlags uint32
	// SFO is embedded as the param.sfo entry; nil leaves the entry out.
	SFO *sfo.File
}

// WritePKG writes a .pkg file holding only a header, an entry table and
// the param.sfo entry.
func WritePKG(t *testing.T, path string, opts PKGOptions) {
	t.Helper()

	const (
		tableOffset = 0x100
		dataOffset  = 0x200
	)

	var sfoData []byte
	if opts.SFO != nil {
		var err error
		sfoData, err = opts.SFO.MarshalBinary()
		require.NoError(t, err)
	}

	buf := make([]byte, dataOffset+len(sfoData))
	be := binary.BigEndian
	be.PutUint32(buf[0x00:], 0x7F434E54)
	be.PutUint32(buf[0x10:], 2)
	be.PutUint32(buf[0x18:], tableOffset)
	copy(buf[0x40:0x64], opts.ContentID)
	be.PutUint32(buf[0x78:], opts.ContentFlags)

	// a digest entry that is not param.sfo
	be.PutUint32(buf[tableOffset:], 0x0001)
	be.PutUint32(buf[tableOffset+16:], dataOffset)
	be.PutUint32(buf[tableOffset+20:], 0)

	sfoEntry := buf[tableOffset+32:]
	id := uint32(0x1000)
	if opts.SFO == nil {
		id = 0x1200
	}
	be.PutUint32(sfoEntry[0:], id)
	be.PutUint32(sfoEntry[16:], dataOffset)
	be.PutUint32(sfoEntry[20:], uint32(len(sfoData)))
	copy(buf[dataOffset:], sfoData)

	require.NoError(t, os.WriteFile(path, buf, 0o644))
}
