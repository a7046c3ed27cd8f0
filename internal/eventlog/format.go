package eventlog

import (
	"bytes"
	"fmt"

	"github.com/sirupsen/logrus"
)

// TimestampFormat renders microseconds, matching the log files produced by
// earlier versions of the tool.
const TimestampFormat = "2006-01-02 15:04:05.000000"

// Formatter renders entries as "[timestamp] LEVEL   - message".
type Formatter struct {
	// TimestampFormat overrides the default TimestampFormat when set.
	TimestampFormat string
}

// Format implements logrus.Formatter.
func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	layout := f.TimestampFormat
	if layout == "" {
		layout = TimestampFormat
	}

	b := entry.Buffer
	if b == nil {
		b = &bytes.Buffer{}
	}
	fmt.Fprintf(b, "[%s] %-7s - %s\n", entry.Time.Format(layout), LevelOf(entry), entry.Message)
	return b.Bytes(), nil
}
