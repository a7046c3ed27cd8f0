// Package preflight makes sure the folders a run needs exist and are usable
// before the first cycle, offering to create missing ones.
package preflight

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/bolasblack/dirmirror/internal/eventlog"
)

// Kind names a folder in log messages.
type Kind string

const (
	KindLog     Kind = "Log"
	KindSource  Kind = "Source"
	KindReplica Kind = "Replica"
)

var (
	// ErrDeclined is returned when a missing folder may not be created.
	ErrDeclined = errors.New("folder does not exist and creation was declined")
	// ErrNotDirectory is returned when the path exists but is not a folder.
	ErrNotDirectory = errors.New("path is not a folder")
	// ErrNoAccess is returned when the folder is not readable and writable.
	ErrNoAccess = errors.New("folder is not readable and writable")
	// ErrCreateFailed is returned when creating a missing folder failed.
	ErrCreateFailed = errors.New("failed to create folder")
)

// PromptFunc asks whether the missing folder at path should be created.
type PromptFunc func(path string) (bool, error)

// LogFunc receives the messages of a check.
type LogFunc func(level eventlog.Level, msg string)

// Checker verifies folders on Fs.
type Checker struct {
	Fs afero.Fs
	// Prompt decides about missing folders. A nil Prompt declines.
	Prompt PromptFunc
	// Access reports whether path is readable and writable. Defaults to the
	// operating system's access check.
	Access func(path string) error
}

// NewChecker creates a Checker using the OS access check.
func NewChecker(fs afero.Fs, prompt PromptFunc) *Checker {
	return &Checker{Fs: fs, Prompt: prompt, Access: checkAccess}
}

// Check makes sure path is an existing, accessible folder, creating it when
// the prompt agrees. created reports whether it had to be created.
func (c *Checker) Check(path string) (created bool, err error) {
	info, err := c.Fs.Stat(path)
	switch {
	case os.IsNotExist(err):
		ok := false
		if c.Prompt != nil {
			if ok, err = c.Prompt(path); err != nil {
				return false, fmt.Errorf("failed to ask about %s: %w", path, err)
			}
		}
		if !ok {
			return false, ErrDeclined
		}
		if err := c.Fs.MkdirAll(path, 0o755); err != nil {
			return false, fmt.Errorf("%w: %w", ErrCreateFailed, err)
		}
		return true, nil
	case err != nil:
		return false, fmt.Errorf("%w: %w", ErrNoAccess, err)
	case !info.IsDir():
		return false, ErrNotDirectory
	}

	access := c.Access
	if access == nil {
		access = checkAccess
	}
	if err := access(path); err != nil {
		return false, fmt.Errorf("%w: %w", ErrNoAccess, err)
	}
	return false, nil
}

// Ensure runs Check and reports the outcome through log the way the
// startup sequence prints it.
func (c *Checker) Ensure(kind Kind, path string, log LogFunc) error {
	created, err := c.Check(path)
	if err != nil {
		log(eventlog.Error, failureMessage(path, err))
		return err
	}
	if created {
		log(eventlog.Created, fmt.Sprintf("%s folder was created: %s", kind, path))
	}
	log(eventlog.Okay, fmt.Sprintf("%s folder exists and has necessary permissions: %s", kind, path))
	return nil
}

func failureMessage(path string, err error) string {
	switch {
	case errors.Is(err, ErrDeclined):
		return fmt.Sprintf("Folder %s does not exist and user declined creation. Exiting...", path)
	case errors.Is(err, ErrNotDirectory):
		return fmt.Sprintf("Path %s is not a folder. Exiting...", path)
	case errors.Is(err, ErrCreateFailed):
		return fmt.Sprintf("Failed to create folder %s. Exiting...", path)
	case errors.Is(err, ErrNoAccess):
		return fmt.Sprintf("Folder %s does not have read and writing permissions. Exiting...", path)
	default:
		return fmt.Sprintf("Folder %s could not be checked (%v). Exiting...", path, err)
	}
}
