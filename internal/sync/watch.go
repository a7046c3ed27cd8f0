package sync

import (
	"context"
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Watcher reports changes below a source tree. It only shortens the wait
// between cycles; what changed is still worked out by the next snapshot.
type Watcher struct {
	fs      afero.Fs
	watcher *fsnotify.Watcher
	changes chan struct{}
}

// NewWatcher watches root and every folder below it. fsnotify is not
// recursive, so folders created later are added as their events arrive.
func NewWatcher(fs afero.Fs, root string) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		fs:      fs,
		watcher: watcher,
		changes: make(chan struct{}, 1),
	}
	if err := w.addTree(root); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			log.WithError(closeErr).Warn("Failed to close file watcher")
		}
		return nil, err
	}
	return w, nil
}

// Changes receives at most one pending notification; bursts of events
// collapse into it.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Run forwards events until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			log.WithField("path", event.Name).WithField("op", event.Op.String()).Debug("Source changed")
			if event.Has(fsnotify.Create) {
				if info, err := w.fs.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						log.WithError(err).Debug("Failed to watch new folder")
					}
				}
			}
			w.notify()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Debug("File watcher error")
			w.notify()
		}
	}
}

// Close releases the underlying watches.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) notify() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

func (w *Watcher) addTree(root string) error {
	return afero.Walk(w.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("failed to walk %s: %w", root, err)
			}
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %q: %w", path, err)
		}
		return nil
	})
}
