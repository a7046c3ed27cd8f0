package sync

import (
	"context"
	"path/filepath"

	"github.com/bolasblack/dirmirror/internal/eventlog"
)

// ApplyCreations copies source-only folders and files from sourceRoot into
// destRoot.
//
// Folders go shallowest first and are copied with their whole subtree. The
// folder and every scheduled path below it are logged CREATED with their
// destination path. When the copy fails partway, the folder is logged as
// one ERROR and nothing below it is attempted again in this cycle. Files outside any copied folder are copied one by one
// with their modification time, so the next update pass sees them as equal.
func ApplyCreations(ctx context.Context, env *SyncEnv, folders, files PathSet, sourceRoot, destRoot string) Tally {
	var t Tally
	handled := PathSet{}
	scheduled := folders.Union(files).Sorted()

	for _, folder := range folders.ByDepth() {
		if ctx.Err() != nil {
			return t
		}
		if handled.Contains(folder) {
			continue
		}

		dst := filepath.Join(destRoot, folder)
		items := cascade(folder, scheduled)
		if err := copyTree(env.Fs, filepath.Join(sourceRoot, folder), dst); err != nil {
			env.Log.Log(eventlog.Error, retryLater(dst, "created"))
			t.fail(dst)
			// Whatever was copied stays; the next snapshot schedules the rest.
			handled.AddAll(items)
			continue
		}
		for _, item := range items {
			if handled.Contains(item) {
				continue
			}
			handled.Add(item)
			env.Log.Log(eventlog.Created, filepath.Join(destRoot, item))
			t.Done++
		}
	}

	for _, file := range files.Sorted() {
		if ctx.Err() != nil {
			return t
		}
		if handled.Contains(file) {
			continue
		}

		dst := filepath.Join(destRoot, file)
		if err := copyFile(env.Fs, filepath.Join(sourceRoot, file), dst); err != nil {
			env.Log.Log(eventlog.Error, retryLater(dst, "created"))
			t.fail(dst)
			continue
		}
		handled.Add(file)
		env.Log.Log(eventlog.Created, dst)
		t.Done++
	}
	return t
}
