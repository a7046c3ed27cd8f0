package eventlog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// FileNameSuffix is appended to the start timestamp to name a run's log file.
const FileNameSuffix = "_sync_folders_log.txt"

// FileName returns the log file name for a run started at now.
func FileName(now time.Time) string {
	return now.Format("2006-01-02_15-04-05") + FileNameSuffix
}

// CreateLogFile creates an empty log file for a run started at now inside
// folder and returns its path.
func CreateLogFile(fs afero.Fs, folder string, now time.Time) (string, error) {
	path := filepath.Join(folder, FileName(now))
	f, err := fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create log file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close log file: %w", err)
	}
	return path, nil
}

// FileHook appends every entry to a log file. The file is opened and closed
// for each entry so no handle survives between writes. It is never created
// here: a missing file is reported as an error instead.
type FileHook struct {
	Fs        afero.Fs
	Path      string
	Formatter logrus.Formatter
}

// NewFileHook returns a FileHook writing event lines to path.
func NewFileHook(fs afero.Fs, path string) *FileHook {
	return &FileHook{Fs: fs, Path: path, Formatter: &Formatter{}}
}

// Levels implements logrus.Hook.
func (h *FileHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire implements logrus.Hook.
func (h *FileHook) Fire(entry *logrus.Entry) error {
	if consoleOnly, _ := entry.Data[consoleOnlyField].(bool); consoleOnly {
		return nil
	}
	// Diagnostics stay on the console.
	if _, ok := entry.Data[EventField]; !ok {
		return nil
	}

	line, err := h.Formatter.Format(entry)
	if err != nil {
		return err
	}
	// Format may hand back the entry's shared buffer.
	line = append([]byte(nil), line...)

	f, err := h.Fs.OpenFile(h.Path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	if _, err := f.Write(line); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to append to log file: %w", err)
	}
	return f.Close()
}
