// Package eventlog is the logging sink shared by the sync engine and the CLI.
// Every mutating action is one line on the console and one line appended to
// the run's log file:
//
//	[2024-05-01 12:34:56.123456] CREATED - /replica/docs/a.txt
package eventlog

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Level is the label printed in front of every log line.
type Level string

const (
	Created Level = "CREATED"
	Deleted Level = "DELETED"
	Updated Level = "UPDATED"
	Error   Level = "ERROR"
	Info    Level = "INFO"
	Okay    Level = "OKAY"
)

const (
	// EventField is the logrus field holding the Level of an entry.
	EventField = "event"

	// consoleOnlyField marks entries that must not reach the log file.
	consoleOnlyField = "console_only"
)

// Sink receives engine events. Components get one passed in explicitly.
type Sink interface {
	Log(level Level, msg string)
}

// ConsoleSink is a Sink that can also print to the console alone.
type ConsoleSink interface {
	Sink
	Console(level Level, msg string)
}

// ToConsole logs msg through sink's console-only path when it has one.
func ToConsole(sink Sink, level Level, msg string) {
	if cs, ok := sink.(ConsoleSink); ok {
		cs.Console(level, msg)
		return
	}
	sink.Log(level, msg)
}

// Logger is a Sink backed by a logrus logger.
type Logger struct {
	logger *logrus.Logger
}

// New creates a Logger that prints to out using the event line format.
func New(out io.Writer) *Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&Formatter{})
	return Wrap(logger)
}

// Wrap turns an existing logrus logger into a Sink. The logger's formatter
// and output are left alone, which lets tests use logrus's test hook.
func Wrap(logger *logrus.Logger) *Logger {
	return &Logger{logger: logger}
}

// Logrus exposes the underlying logger, e.g. for debug diagnostics.
func (l *Logger) Logrus() *logrus.Logger {
	return l.logger
}

// AttachFile makes every following non console-only entry also append to
// the file at path.
func (l *Logger) AttachFile(fs afero.Fs, path string) {
	l.logger.AddHook(NewFileHook(fs, path))
}

// Log implements Sink.
func (l *Logger) Log(level Level, msg string) {
	l.entry(level).Log(logrusLevel(level), msg)
}

// Console logs to the console only, skipping any attached log file.
func (l *Logger) Console(level Level, msg string) {
	l.entry(level).WithField(consoleOnlyField, true).Log(logrusLevel(level), msg)
}

func (l *Logger) entry(level Level) *logrus.Entry {
	return l.logger.WithField(EventField, level)
}

func logrusLevel(level Level) logrus.Level {
	if level == Error {
		return logrus.ErrorLevel
	}
	return logrus.InfoLevel
}

// LevelOf returns the event level of a logrus entry. Entries logged without
// an event field report their logrus level in upper case.
func LevelOf(entry *logrus.Entry) Level {
	if lvl, ok := entry.Data[EventField].(Level); ok {
		return lvl
	}
	return Level(strings.ToUpper(entry.Level.String()))
}
