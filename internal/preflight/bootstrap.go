package preflight

import (
	"fmt"
	"time"

	"github.com/spf13/afero"

	"github.com/bolasblack/dirmirror/internal/eventlog"
	"github.com/bolasblack/dirmirror/internal/sync"
)

// Folders are the three folders a run is started with.
type Folders struct {
	Source    string
	Replica   string
	LogFolder string
}

// Bootstrap prepares a run. It checks the log folder first, printing to the
// console only since no log file exists yet, then creates the run's log file
// and attaches it to logger. Source and replica are checked afterwards with
// their messages going to the log file as well.
func Bootstrap(fs afero.Fs, checker *Checker, logger *eventlog.Logger, folders Folders, intervalSeconds int, now time.Time) (sync.Paths, error) {
	if err := checker.Ensure(KindLog, folders.LogFolder, logger.Console); err != nil {
		return sync.Paths{}, err
	}

	logFile, err := eventlog.CreateLogFile(fs, folders.LogFolder, now)
	if err != nil {
		logger.Console(eventlog.Error, fmt.Sprintf("Failed to create log file in %s. Exiting...", folders.LogFolder))
		return sync.Paths{}, err
	}
	logger.AttachFile(fs, logFile)
	logger.Log(eventlog.Created, "Log file was created: "+logFile)

	if err := checker.Ensure(KindSource, folders.Source, logger.Log); err != nil {
		return sync.Paths{}, err
	}
	if err := checker.Ensure(KindReplica, folders.Replica, logger.Log); err != nil {
		return sync.Paths{}, err
	}

	logger.Log(eventlog.Okay, "All given folders exist and have necessary permissions.")
	logger.Log(eventlog.Info, fmt.Sprintf("Starting synchronization with intervals of %d seconds", intervalSeconds))

	return sync.Paths{
		Source:  folders.Source,
		Replica: folders.Replica,
		LogFile: logFile,
	}, nil
}
