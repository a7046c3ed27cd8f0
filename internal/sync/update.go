package sync

import (
	"context"
	"path/filepath"

	"github.com/bolasblack/dirmirror/internal/eventlog"
)

// ApplyUpdates re-copies every common file whose replica modification time
// differs from the source one. Times are compared exactly and contents are
// never looked at.
func ApplyUpdates(ctx context.Context, env *SyncEnv, files PathSet, sourceRoot, destRoot string) Tally {
	var t Tally
	for _, file := range files.Sorted() {
		if ctx.Err() != nil {
			return t
		}

		src := filepath.Join(sourceRoot, file)
		dst := filepath.Join(destRoot, file)

		srcInfo, err := env.Fs.Stat(src)
		if err != nil {
			env.Log.Log(eventlog.Error, retryLater(dst, "updated"))
			t.fail(dst)
			continue
		}
		dstInfo, err := env.Fs.Stat(dst)
		if err != nil {
			env.Log.Log(eventlog.Error, retryLater(dst, "updated"))
			t.fail(dst)
			continue
		}
		if srcInfo.ModTime().Equal(dstInfo.ModTime()) {
			continue
		}

		if err := copyFile(env.Fs, src, dst); err != nil {
			env.Log.Log(eventlog.Error, retryLater(dst, "updated"))
			t.fail(dst)
			continue
		}
		env.Log.Log(eventlog.Updated, dst)
		t.Done++
	}
	return t
}
