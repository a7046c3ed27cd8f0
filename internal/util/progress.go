// Package util provides shared helpers for the CLI and the engine packages.
package util

import (
	"fmt"
	"io"
)

// Progress writes a message unless w is nil.
func Progress(w io.Writer, format string, args ...any) {
	if w != nil {
		_, _ = fmt.Fprintf(w, format, args...)
	}
}

// ProgressDone writes a message with ✓ prefix (step completed).
func ProgressDone(w io.Writer, format string, args ...any) {
	Progress(w, "✓ "+format, args...)
}
