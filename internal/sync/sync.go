// Package sync implements one-way mirroring of a source tree onto a replica
// tree.
//
// A cycle snapshots both trees from scratch, diffs the two snapshots by
// relative path, then deletes replica-only entries, creates source-only
// entries and re-copies common files whose modification time differs.
// Nothing is cached between cycles, so an item that fails in one cycle is
// simply part of the next cycle's diff again.
package sync

import (
	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"

	"github.com/bolasblack/dirmirror/internal/eventlog"
)

// SyncEnv holds dependencies for the sync engine.
type SyncEnv struct {
	Fs    afero.Fs
	Clock clockwork.Clock
	Log   eventlog.Sink
}

// NewSyncEnv creates a new SyncEnv from externally-created dependencies.
func NewSyncEnv(fs afero.Fs, clock clockwork.Clock, log eventlog.Sink) *SyncEnv {
	return &SyncEnv{
		Fs:    fs,
		Clock: clock,
		Log:   log,
	}
}

// Paths are the locations a cycle works on. All of them must still exist
// when a cycle starts.
type Paths struct {
	Source  string
	Replica string
	LogFile string
}
