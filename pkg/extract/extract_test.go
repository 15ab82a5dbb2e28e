package extract

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/pkginstall/pkg/container"
	"github.com/glorpus-work/pkginstall/test/testutil"
)

const (
	testTitle   = "CUSA00001"
	testContent = "UP0001-CUSA00001_00-GAMELABEL0000001"
)

var dumpFiles = map[string]string{
	"data/level1.bin":          "level one",
	"data/level2.bin":          "level two",
	"data/audio/music.at9":     "music",
	"sce_module/libc.prx":      "libc",
	"sce_sys/icon0.png":        "png",
	"sce_sys/about/right.sprx": "sprx",
}

// archivedDump packs a game dump below a top-level folder and opens it.
func archivedDump(t *testing.T) *container.Package {
	t.Helper()
	tmp := t.TempDir()
	gameDir := filepath.Join(tmp, "src", testTitle)
	testutil.InstallGame(t, gameDir, testutil.GameSFO(testTitle, testContent, "gd", "01.00"))
	testutil.WriteFiles(t, gameDir, dumpFiles)

	archivePath := filepath.Join(tmp, "dump.tar.gz")
	testutil.PackTarGz(t, filepath.Join(tmp, "src"), archivePath)

	pkg, err := container.Open(context.Background(), archivePath)
	require.NoError(t, err)
	return pkg
}

func assertExtracted(t *testing.T, target string) {
	t.Helper()
	for name, content := range dumpFiles {
		got, err := os.ReadFile(filepath.Join(target, filepath.FromSlash(name)))
		if assert.NoError(t, err, name) {
			assert.Equal(t, content, string(got), name)
		}
	}
	assert.FileExists(t, filepath.Join(target, "eboot.bin"))
	assert.FileExists(t, filepath.Join(target, "sce_sys", "param.sfo"))
}

func TestRun_ExtractsEverything(t *testing.T) {
	pkg := archivedDump(t)
	target := filepath.Join(t.TempDir(), "games", testTitle)

	job, err := Prepare(context.Background(), pkg, target)
	require.NoError(t, err)
	defer func() { _ = job.Close() }()

	// dump files plus eboot.bin and param.sfo
	total := len(dumpFiles) + 2
	assert.Equal(t, total, job.FileCount())
	assert.Equal(t, target, job.Target())

	var (
		mu    sync.Mutex
		calls []int
	)
	err = job.Run(context.Background(), Options{
		Concurrency: 3,
		OnProgress: func(done, n int) {
			mu.Lock()
			defer mu.Unlock()
			assert.Equal(t, total, n)
			calls = append(calls, done)
		},
	})
	require.NoError(t, err)

	require.Len(t, calls, total)
	for i, done := range calls {
		assert.Equal(t, i+1, done, "progress must be reported in order")
	}
	assertExtracted(t, target)
}

func TestExtractFile_Individually(t *testing.T) {
	pkg := archivedDump(t)
	target := t.TempDir()

	job, err := Prepare(context.Background(), pkg, target)
	require.NoError(t, err)
	defer func() { _ = job.Close() }()

	var wg sync.WaitGroup
	errs := make([]error, job.FileCount())
	for i := 0; i < job.FileCount(); i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = job.ExtractFile(context.Background(), i)
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}
	assertExtracted(t, target)

	// overwriting is allowed
	require.NoError(t, job.ExtractFile(context.Background(), 0))
}

func TestExtractFile_IndexOutOfRange(t *testing.T) {
	job, err := Prepare(context.Background(), archivedDump(t), t.TempDir())
	require.NoError(t, err)
	defer func() { _ = job.Close() }()

	assert.ErrorIs(t, job.ExtractFile(context.Background(), -1), ErrIndexOutOfRange)
	assert.ErrorIs(t, job.ExtractFile(context.Background(), job.FileCount()), ErrIndexOutOfRange)
}

func TestExtractFile_AfterClose(t *testing.T) {
	job, err := Prepare(context.Background(), archivedDump(t), t.TempDir())
	require.NoError(t, err)

	require.NoError(t, job.Close())
	require.NoError(t, job.Close())
	assert.ErrorIs(t, job.ExtractFile(context.Background(), 0), ErrJobClosed)
}

func TestPrepare_DirectoryDump(t *testing.T) {
	src := filepath.Join(t.TempDir(), testTitle)
	testutil.InstallGame(t, src, testutil.GameSFO(testTitle, testContent, "gd", "01.00"))
	testutil.WriteFiles(t, src, dumpFiles)

	pkg, err := container.Open(context.Background(), src)
	require.NoError(t, err)

	target := t.TempDir()
	job, err := Prepare(context.Background(), pkg, target)
	require.NoError(t, err)
	defer func() { _ = job.Close() }()

	require.NoError(t, job.Run(context.Background(), Options{}))
	assertExtracted(t, target)
}

func TestPrepare_RejectsPKG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.pkg")
	testutil.WritePKG(t, path, testutil.PKGOptions{
		ContentID: testContent,
		SFO:       testutil.GameSFO(testTitle, testContent, "gd", "01.00"),
	})
	pkg, err := container.Open(context.Background(), path)
	require.NoError(t, err)

	_, err = Prepare(context.Background(), pkg, t.TempDir())
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Prepare(context.Background(), nil, t.TempDir())
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestPrepare_EmptyTarget(t *testing.T) {
	_, err := Prepare(context.Background(), archivedDump(t), "")
	assert.Error(t, err)
}

func TestRun_CancelledContext(t *testing.T) {
	job, err := Prepare(context.Background(), archivedDump(t), t.TempDir())
	require.NoError(t, err)
	defer func() { _ = job.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err = job.Run(ctx, Options{Concurrency: 2, OnProgress: func(int, int) { calls++ }})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}

func TestRun_StopsOnFirstError(t *testing.T) {
	target := t.TempDir()
	job, err := Prepare(context.Background(), archivedDump(t), target)
	require.NoError(t, err)
	defer func() { _ = job.Close() }()

	// a non-empty directory where a file has to go
	blocker := filepath.Join(target, "data", "level1.bin")
	require.NoError(t, os.MkdirAll(filepath.Join(blocker, "x"), 0o755))

	err = job.Run(context.Background(), Options{Concurrency: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "level1.bin")
}

func TestSafeJoin(t *testing.T) {
	dir := filepath.Join("/games", testTitle)

	tests := []struct {
		name    string
		entry   string
		want    string
		wantErr bool
	}{
		{name: "plain", entry: "eboot.bin", want: filepath.Join(dir, "eboot.bin")},
		{name: "nested", entry: "sce_sys/param.sfo", want: filepath.Join(dir, "sce_sys", "param.sfo")},
		{name: "parent", entry: "../evil", wantErr: true},
		{name: "nested parent", entry: "data/../../evil", wantErr: true},
		{name: "absolute", entry: "/etc/passwd", wantErr: true},
		{name: "empty", entry: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := safeJoin(dir, tt.entry)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrPathTraversal)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRun_EbootIsExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}
	pkg := archivedDump(t)
	target := filepath.Join(t.TempDir(), testTitle)

	job, err := Prepare(context.Background(), pkg, target)
	require.NoError(t, err)
	defer func() { _ = job.Close() }()
	require.NoError(t, job.Run(context.Background(), Options{Concurrency: 1}))

	info, err := os.Stat(filepath.Join(target, "eboot.bin"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0o100)
}
