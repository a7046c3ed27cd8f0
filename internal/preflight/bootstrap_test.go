package preflight

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bolasblack/dirmirror/internal/eventlog"
)

var startedAt = time.Date(2024, 5, 1, 12, 34, 56, 0, time.UTC)

func TestBootstrap(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/src", 0o755))
	var console bytes.Buffer
	logger := eventlog.New(&console)
	checker := &Checker{Fs: fs, Prompt: func(string) (bool, error) { return true, nil }, Access: allowAll}

	paths, err := Bootstrap(fs, checker, logger,
		Folders{Source: "/src", Replica: "/replica", LogFolder: "/logs"}, 10, startedAt)

	require.NoError(t, err)
	assert.Equal(t, "/src", paths.Source)
	assert.Equal(t, "/replica", paths.Replica)
	assert.Equal(t, "/logs/2024-05-01_12-34-56_sync_folders_log.txt", paths.LogFile)

	out := console.String()
	for _, want := range []string{
		"] CREATED - Log folder was created: /logs",
		"] OKAY    - Log folder exists and has necessary permissions: /logs",
		"] CREATED - Log file was created: /logs/2024-05-01_12-34-56_sync_folders_log.txt",
		"] OKAY    - Source folder exists and has necessary permissions: /src",
		"] CREATED - Replica folder was created: /replica",
		"] OKAY    - All given folders exist and have necessary permissions.",
		"] INFO    - Starting synchronization with intervals of 10 seconds",
	} {
		assert.Contains(t, out, want)
	}

	data, err := afero.ReadFile(fs, paths.LogFile)
	require.NoError(t, err)
	file := string(data)
	assert.NotContains(t, file, "Log folder", "log folder messages are console only")
	assert.True(t, strings.HasPrefix(strings.SplitN(file, "\n", 2)[0][28:], " CREATED - Log file was created"),
		"first line of the log file: %q", file)
	assert.Contains(t, file, "Replica folder was created: /replica")
	assert.Equal(t, 6, strings.Count(file, "\n"))
}

func TestBootstrap_LogFolderDeclined(t *testing.T) {
	fs := afero.NewMemMapFs()
	var console bytes.Buffer
	logger := eventlog.New(&console)
	checker := &Checker{Fs: fs, Access: allowAll}

	_, err := Bootstrap(fs, checker, logger,
		Folders{Source: "/src", Replica: "/replica", LogFolder: "/logs"}, 10, startedAt)

	assert.ErrorIs(t, err, ErrDeclined)
	assert.Contains(t, console.String(), "Folder /logs does not exist and user declined creation. Exiting...")
	exists, _ := afero.DirExists(fs, "/logs")
	assert.False(t, exists)
}

func TestBootstrap_SourceFailureIsLogged(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/logs", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/src", []byte("not a folder"), 0o644))
	var console bytes.Buffer
	logger := eventlog.New(&console)
	checker := &Checker{Fs: fs, Access: allowAll}

	_, err := Bootstrap(fs, checker, logger,
		Folders{Source: "/src", Replica: "/replica", LogFolder: "/logs"}, 10, startedAt)

	assert.ErrorIs(t, err, ErrNotDirectory)
	data, readErr := afero.ReadFile(fs, "/logs/"+eventlog.FileName(startedAt))
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "ERROR   - Path /src is not a folder. Exiting...")
}
