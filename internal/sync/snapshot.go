package sync

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Snapshot is the set of files and folders below Root at one instant, as
// paths relative to Root.
type Snapshot struct {
	Root    string
	Files   PathSet
	Folders PathSet

	// Unreadable holds entries that could not be inspected. Their contents
	// are unknown, so nothing is decided about them this cycle.
	Unreadable PathSet
}

// TakeSnapshot walks the tree at root. Symbolic links are not followed and
// count as files. Entries that cannot be read are recorded in Unreadable and
// skipped; only a failure to read root itself is returned as an error.
func TakeSnapshot(fs afero.Fs, root string) (*Snapshot, error) {
	snap := &Snapshot{
		Root:       root,
		Files:      PathSet{},
		Folders:    PathSet{},
		Unreadable: PathSet{},
	}

	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			if rel, relErr := filepath.Rel(root, path); relErr == nil {
				snap.Unreadable.Add(rel)
			}
			return nil
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relative path of %s: %w", path, err)
		}
		if info.IsDir() {
			snap.Folders.Add(rel)
		} else {
			snap.Files.Add(rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot %s: %w", root, err)
	}
	return snap, nil
}
