package sync

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/bolasblack/dirmirror/internal/eventlog"
)

// ErrEnvironmentGone is returned by the daemon when one of the watched
// folders or the log file disappeared while it was running.
var ErrEnvironmentGone = errors.New("folders or log file were deleted")

// Report summarizes one cycle.
type Report struct {
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Created    int       `json:"created"`
	Deleted    int       `json:"deleted"`
	Updated    int       `json:"updated"`
	Failed     []string  `json:"failed,omitempty"`
	Unreadable []string  `json:"unreadable,omitempty"`
}

// Problems returns every path the cycle could not read or apply.
func (r *Report) Problems() []string {
	out := make([]string, 0, len(r.Unreadable)+len(r.Failed))
	out = append(out, r.Unreadable...)
	return append(out, r.Failed...)
}

// Changed reports whether the cycle touched the replica at all.
func (r *Report) Changed() bool {
	return r.Created+r.Deleted+r.Updated > 0
}

// RunCycle makes the replica mirror the source once.
//
// It returns false, without touching either tree, when the log folder, the
// log file, the source or the replica no longer exists. Every other problem
// is logged and retried next cycle, so the result is true even when single
// items failed or ctx was cancelled midway.
func RunCycle(ctx context.Context, env *SyncEnv, paths Paths) (*Report, bool) {
	for _, p := range []string{filepath.Dir(paths.LogFile), paths.LogFile, paths.Source, paths.Replica} {
		if ok, err := afero.Exists(env.Fs, p); err != nil || !ok {
			return nil, false
		}
	}

	report := &Report{StartedAt: env.Clock.Now()}
	defer func() { report.FinishedAt = env.Clock.Now() }()

	source, err := TakeSnapshot(env.Fs, paths.Source)
	if err != nil {
		report.unreadable(env.Log, paths.Source)
		return report, true
	}
	replica, err := TakeSnapshot(env.Fs, paths.Replica)
	if err != nil {
		report.unreadable(env.Log, paths.Replica)
		return report, true
	}
	for _, rel := range source.Unreadable.Sorted() {
		report.unreadable(env.Log, filepath.Join(paths.Source, rel))
	}
	for _, rel := range replica.Unreadable.Sorted() {
		report.unreadable(env.Log, filepath.Join(paths.Replica, rel))
	}

	diff := ComputeDiff(source, replica)
	if len(diff.Withheld) > 0 {
		log.WithField("count", len(diff.Withheld)).Debug("Left entries below unreadable folders alone")
	}
	if diff.Empty() {
		log.Debug("Replica already has every source file and folder")
	}

	deleted := ApplyDeletions(ctx, env, diff.DeletedFolders, diff.DeletedFiles, paths.Replica)
	created := ApplyCreations(ctx, env, diff.CreatedFolders, diff.CreatedFiles, paths.Source, paths.Replica)
	updated := ApplyUpdates(ctx, env, diff.CommonFiles, paths.Source, paths.Replica)

	report.Deleted = deleted.Done
	report.Created = created.Done
	report.Updated = updated.Done
	report.Failed = append(report.Failed, deleted.Failed...)
	report.Failed = append(report.Failed, created.Failed...)
	report.Failed = append(report.Failed, updated.Failed...)
	return report, true
}

func (r *Report) unreadable(log eventlog.Sink, path string) {
	log.Log(eventlog.Error, retryLater(path, "read"))
	r.Unreadable = append(r.Unreadable, path)
}
