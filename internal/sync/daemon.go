package sync

import (
	"context"
	"time"

	"github.com/bolasblack/dirmirror/internal/eventlog"
	"github.com/bolasblack/dirmirror/internal/util"
)

// Daemon runs cycles one after another until it is cancelled or the
// environment disappears.
type Daemon struct {
	Env      *SyncEnv
	Paths    Paths
	Interval time.Duration

	// Trigger wakes the daemon before Interval has elapsed. May be nil.
	Trigger <-chan struct{}

	// OnCycle is called after every completed cycle. May be nil.
	OnCycle func(*Report)
}

// Run blocks until ctx is done, in which case it returns nil, or until a
// cycle finds a watched path missing, in which case it returns
// ErrEnvironmentGone.
func (d *Daemon) Run(ctx context.Context) error {
	interval := d.Interval
	if interval <= 0 {
		interval = time.Duration(util.DefaultIntervalSeconds) * time.Second
	}

	for {
		if ctx.Err() != nil {
			return d.interrupted()
		}

		d.Env.Log.Log(eventlog.Info, "Started synchronization")
		report, ok := RunCycle(ctx, d.Env, d.Paths)
		if !ok {
			eventlog.ToConsole(d.Env.Log, eventlog.Error, "Folders or log file were deleted. Exiting...")
			return ErrEnvironmentGone
		}
		if ctx.Err() != nil {
			return d.interrupted()
		}
		d.Env.Log.Log(eventlog.Info, "Finished synchronization")
		if d.OnCycle != nil {
			d.OnCycle(report)
		}

		timer := d.Env.Clock.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return d.interrupted()
		case <-timer.Chan():
		case <-d.Trigger:
			timer.Stop()
		}
	}
}

func (d *Daemon) interrupted() error {
	d.Env.Log.Log(eventlog.Info, "Synchronization interrupted by user. Exiting...")
	return nil
}
