package util

import (
	"bytes"
	"testing"
)

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	ProgressDone(&buf, "Created %s\n", "/work/.dirmirror.toml")
	if got := buf.String(); got != "✓ Created /work/.dirmirror.toml\n" {
		t.Errorf("ProgressDone() wrote %q", got)
	}
}

func TestProgressNilWriter(t *testing.T) {
	// Must not panic.
	Progress(nil, "ignored %d", 1)
}
