// Package state keeps a small JSON file in the log folder describing the
// running mirror: which folders it watches, where it logs and how the last
// cycle went. `dirmirror status` reads it back.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/bolasblack/dirmirror/internal/sync"
	"github.com/bolasblack/dirmirror/internal/util"
)

const (
	// StateFilename is the name of the state file inside the log folder.
	StateFilename = ".dirmirror-state.json"
	// CurrentVersion is the current state file version.
	CurrentVersion = "1"
)

// State represents one run of the mirror daemon.
type State struct {
	Version string `json:"version"`
	// RunID is a unique UUID for this run, also printed in the startup log.
	RunID           string    `json:"run_id"`
	PID             int       `json:"pid"`
	Source          string    `json:"source"`
	Replica         string    `json:"replica"`
	LogFile         string    `json:"log_file"`
	IntervalSeconds int       `json:"interval_seconds"`
	Watch           bool      `json:"watch,omitempty"`
	StartedAt       time.Time `json:"started_at"`
	// Cycles counts completed cycles.
	Cycles    int          `json:"cycles"`
	LastCycle *sync.Report `json:"last_cycle,omitempty"`
}

// New creates the state of a run that starts now.
func New(paths sync.Paths, intervalSeconds int, now time.Time) *State {
	return &State{
		Version:         CurrentVersion,
		RunID:           uuid.New().String(),
		PID:             os.Getpid(),
		Source:          paths.Source,
		Replica:         paths.Replica,
		LogFile:         paths.LogFile,
		IntervalSeconds: intervalSeconds,
		StartedAt:       now,
	}
}

// ShortID returns the first 8 characters of the run ID.
func (s *State) ShortID() string {
	if len(s.RunID) < 8 {
		return s.RunID
	}
	return s.RunID[:8]
}

// RecordCycle stores r as the latest completed cycle.
func (s *State) RecordCycle(r *sync.Report) {
	s.Cycles++
	s.LastCycle = r
}

// StateFilePath returns the path to the state file for the given log folder.
func StateFilePath(logFolder string) string {
	return filepath.Join(logFolder, StateFilename)
}

// Load reads the state file from the given log folder.
// Returns nil and no error if the state file does not exist.
func Load(env *util.Env, logFolder string) (*State, error) {
	data, err := afero.ReadFile(env.Fs, StateFilePath(logFolder))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}
	return &state, nil
}

// Save writes the state file into the given log folder. The folder is never
// created here: a vanished log folder must stay vanished so the daemon
// notices it.
func Save(env *util.Env, logFolder string, state *State) error {
	if ok, err := afero.DirExists(env.Fs, logFolder); err != nil || !ok {
		return fmt.Errorf("failed to write state file: log folder %s does not exist", logFolder)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := afero.WriteFile(env.Fs, StateFilePath(logFolder), data, 0o644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}
