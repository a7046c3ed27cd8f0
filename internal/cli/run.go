package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bolasblack/dirmirror/internal/config"
	"github.com/bolasblack/dirmirror/internal/eventlog"
	"github.com/bolasblack/dirmirror/internal/preflight"
	"github.com/bolasblack/dirmirror/internal/state"
	"github.com/bolasblack/dirmirror/internal/sync"
	"github.com/bolasblack/dirmirror/internal/util"
)

var (
	mirrorFlags      config.Config
	mirrorConfigPath string
)

// runMirror checks the folders and synchronizes until interrupted.
func runMirror(cmd *cobra.Command, args []string) error {
	env := util.NewOsEnv()

	cfg, err := resolveConfig(env, mirrorConfigPath, mirrorFlags, cmd.Flags().Changed)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newEventLogger(cmd.OutOrStdout())
	checker := preflight.NewChecker(env.Fs, folderPrompt(cfg.AssumeYes, os.Stdin))
	return mirror(ctx, env, logger, checker, cfg, cmd.OutOrStdout())
}

// mirror bootstraps the run and drives the daemon, plus the source watcher
// in watch mode, until ctx is done or the environment disappears.
func mirror(ctx context.Context, env *util.Env, logger *eventlog.Logger, checker *preflight.Checker, cfg config.Config, out io.Writer) error {
	folders := preflight.Folders{Source: cfg.Source, Replica: cfg.Replica, LogFolder: cfg.LogFolder}
	paths, err := preflight.Bootstrap(env.Fs, checker, logger, folders, cfg.Interval, env.Clock.Now())
	if err != nil {
		return reportedError{err}
	}

	diag := logger.Logrus()

	st := state.New(paths, cfg.Interval, env.Clock.Now())
	st.Watch = cfg.Watch
	if err := state.Save(env, cfg.LogFolder, st); err != nil {
		diag.WithError(err).Warn("Failed to save run state")
	}
	logger.Log(eventlog.Info, fmt.Sprintf("Run ID %s, state in %s", st.RunID, state.StateFilePath(cfg.LogFolder)))

	daemon := &sync.Daemon{
		Env:      sync.NewSyncEnv(env.Fs, env.Clock, logger),
		Paths:    paths,
		Interval: cfg.IntervalDuration(),
		OnCycle: func(r *sync.Report) {
			st.RecordCycle(r)
			if err := state.Save(env, cfg.LogFolder, st); err != nil {
				diag.WithError(err).Debug("Failed to save run state")
			}
			sync.RenderBanner(r, out)
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	if cfg.Watch {
		watcher, err := sync.NewWatcher(env.Fs, paths.Source)
		if err != nil {
			diag.WithError(err).Warn("Failed to watch source, synchronizing on the interval only")
		} else {
			daemon.Trigger = watcher.Changes()
			g.Go(func() error { return watcher.Run(gctx) })
		}
	}
	g.Go(func() error { return daemon.Run(gctx) })

	if err := g.Wait(); err != nil {
		if errors.Is(err, sync.ErrEnvironmentGone) {
			return reportedError{err}
		}
		return err
	}
	return nil
}
