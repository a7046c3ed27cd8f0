package sync

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	logrusTest "github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/bolasblack/dirmirror/internal/eventlog"
)

var baseTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestSyncEnv(fs afero.Fs) (*SyncEnv, *logrusTest.Hook, clockwork.FakeClock) {
	logger, hook := logrusTest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	clock := clockwork.NewFakeClockAt(baseTime)
	return NewSyncEnv(fs, clock, eventlog.Wrap(logger)), hook, clock
}

// testPaths creates /src, /replica and a log file on fs.
func testPaths(t *testing.T, fs afero.Fs) Paths {
	t.Helper()
	paths := Paths{
		Source:  "/src",
		Replica: "/replica",
		LogFile: "/logs/run_sync_folders_log.txt",
	}
	require.NoError(t, fs.MkdirAll(paths.Source, 0o755))
	require.NoError(t, fs.MkdirAll(paths.Replica, 0o755))
	require.NoError(t, fs.MkdirAll(filepath.Dir(paths.LogFile), 0o755))
	require.NoError(t, afero.WriteFile(fs, paths.LogFile, nil, 0o644))
	return paths
}

func writeFile(t *testing.T, fs afero.Fs, path, content string, modTime time.Time) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	require.NoError(t, fs.Chtimes(path, modTime, modTime))
}

// events returns "LEVEL message" for every entry the hook recorded.
func events(hook *logrusTest.Hook) []string {
	var out []string
	for _, e := range hook.AllEntries() {
		out = append(out, string(eventlog.LevelOf(e))+" "+e.Message)
	}
	return out
}

// eventsOf returns the messages logged with level.
func eventsOf(hook *logrusTest.Hook, level eventlog.Level) []string {
	var out []string
	for _, e := range hook.AllEntries() {
		if eventlog.LevelOf(e) == level {
			out = append(out, e.Message)
		}
	}
	return out
}

// faultFs fails selected operations with a permission error.
type faultFs struct {
	afero.Fs
	failOpen   map[string]bool
	failRemove map[string]bool
	// partialRemove makes RemoveAll of the key delete only the value, then fail.
	partialRemove map[string]string
}

func newFaultFs(fs afero.Fs) *faultFs {
	return &faultFs{
		Fs:            fs,
		failOpen:      map[string]bool{},
		failRemove:    map[string]bool{},
		partialRemove: map[string]string{},
	}
}

func (f *faultFs) Open(name string) (afero.File, error) {
	if f.failOpen[filepath.Clean(name)] {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	return f.Fs.Open(name)
}

func (f *faultFs) Remove(name string) error {
	if f.failRemove[filepath.Clean(name)] {
		return &os.PathError{Op: "remove", Path: name, Err: os.ErrPermission}
	}
	return f.Fs.Remove(name)
}

func (f *faultFs) RemoveAll(path string) error {
	if victim, ok := f.partialRemove[filepath.Clean(path)]; ok {
		_ = f.Fs.RemoveAll(victim)
		return &os.PathError{Op: "unlinkat", Path: path, Err: os.ErrPermission}
	}
	if f.failRemove[filepath.Clean(path)] {
		return &os.PathError{Op: "unlinkat", Path: path, Err: os.ErrPermission}
	}
	return f.Fs.RemoveAll(path)
}
