package util

import (
	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
)

// Env contains environment dependencies that can be mocked for testing.
type Env struct {
	// Fs is the filesystem to use for file operations.
	Fs afero.Fs
	// Clock drives timestamps and the sync interval.
	Clock clockwork.Clock
}

// NewEnv creates an Env with the given filesystem and the real clock.
func NewEnv(fs afero.Fs) *Env {
	return &Env{Fs: fs, Clock: clockwork.NewRealClock()}
}

// NewOsEnv creates an Env backed by the OS filesystem.
func NewOsEnv() *Env {
	return NewEnv(afero.NewOsFs())
}

// NewReadonlyOsEnv creates an Env with a read-only OS filesystem.
// Use this for commands that only inspect state (like status).
func NewReadonlyOsEnv() *Env {
	return NewEnv(afero.NewReadOnlyFs(afero.NewOsFs()))
}

// NewTestEnv creates an Env with an in-memory filesystem and a fake clock.
func NewTestEnv() (*Env, clockwork.FakeClock) {
	clock := clockwork.NewFakeClock()
	return &Env{Fs: afero.NewMemMapFs(), Clock: clock}, clock
}
