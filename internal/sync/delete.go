package sync

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/bolasblack/dirmirror/internal/eventlog"
)

// Tally is the outcome of one applier: how many items it applied and the
// absolute paths it gave up on.
type Tally struct {
	Done   int
	Failed []string
}

func (t *Tally) fail(path string) {
	t.Failed = append(t.Failed, path)
}

func retryLater(path, action string) string {
	return fmt.Sprintf("%s could not be %s. Trying again next synchronization", path, action)
}

// ApplyDeletions removes replica-only folders and files below root.
//
// Folders go shallowest first. A removed folder takes its whole subtree
// with it; the folder and every scheduled path below it are logged DELETED
// once each and not visited again. Files outside any removed folder are
// removed one by one. An item that fails is logged as ERROR and left for the
// next cycle; after a failed folder removal nothing below it is attempted
// again in the same cycle.
func ApplyDeletions(ctx context.Context, env *SyncEnv, folders, files PathSet, root string) Tally {
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

		abs := filepath.Join(root, folder)
		items := cascade(folder, scheduled)
		if err := env.Fs.RemoveAll(abs); err != nil {
			env.Log.Log(eventlog.Error, retryLater(abs, "deleted"))
			t.fail(abs)
			handled.AddAll(items)
			continue
		}
		for _, item := range items {
			if handled.Contains(item) {
				continue
			}
			handled.Add(item)
			env.Log.Log(eventlog.Deleted, filepath.Join(root, item))
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

		abs := filepath.Join(root, file)
		if err := env.Fs.Remove(abs); err != nil {
			env.Log.Log(eventlog.Error, retryLater(abs, "deleted"))
			t.fail(abs)
			continue
		}
		handled.Add(file)
		env.Log.Log(eventlog.Deleted, abs)
		t.Done++
	}
	return t
}
