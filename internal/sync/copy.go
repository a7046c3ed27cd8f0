package sync

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/afero"
)

const tempFilePattern = ".dirmirror-*.tmp"

// withOwnerWrite keeps the owner-write bit on anything written into the
// replica, so later cycles can still update and remove it.
func withOwnerWrite(perm os.FileMode) os.FileMode {
	return perm | 0o200
}

// copyFile copies src over dst together with its permission bits and
// modification time. The content goes to a temp file next to dst first and
// is renamed into place, so dst is never left half written.
func copyFile(fs afero.Fs, src, dst string) error {
	info, err := fs.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}
	if info.IsDir() {
		return fmt.Errorf("failed to copy %s: is a directory", src)
	}

	in, err := fs.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	dir := filepath.Dir(dst)
	out, err := afero.TempFile(fs, dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tempPath := out.Name()
	defer func() {
		if tempPath != "" {
			_ = fs.Remove(tempPath)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	// Closing may touch the mtime, so metadata is applied afterwards.
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tempPath, err)
	}
	if err := fs.Chmod(tempPath, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", tempPath, err)
	}
	if err := fs.Chtimes(tempPath, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("failed to set timestamps on %s: %w", tempPath, err)
	}
	if err := fs.Rename(tempPath, dst); err != nil {
		return fmt.Errorf("failed to move %s to %s: %w", tempPath, dst, err)
	}
	tempPath = ""
	return nil
}

// copyTree copies the folder src to dst, which must not exist yet. Every
// entry below src is attempted even when some fail; the failures are joined
// into the returned error. dst itself is only created with Mkdir, so a
// missing replica parent fails instead of being recreated.
func copyTree(fs afero.Fs, src, dst string) error {
	type dirTimes struct {
		path    string
		modTime time.Time
	}
	var (
		errs []error
		dirs []dirTimes
	)

	walkErr := afero.Walk(fs, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == src {
				return err
			}
			errs = append(errs, fmt.Errorf("failed to read %s: %w", path, err))
			return nil
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if info.IsDir() {
			if err := fs.Mkdir(target, withOwnerWrite(info.Mode().Perm())); err != nil {
				if path == src {
					return fmt.Errorf("failed to create %s: %w", target, err)
				}
				errs = append(errs, fmt.Errorf("failed to create %s: %w", target, err))
				return filepath.SkipDir
			}
			dirs = append(dirs, dirTimes{path: target, modTime: info.ModTime()})
			return nil
		}

		if err := copyFile(fs, path, target); err != nil {
			errs = append(errs, err)
		}
		return nil
	})
	if walkErr != nil {
		return walkErr
	}

	// Writing into a folder moves its mtime, so folders are stamped last,
	// deepest first.
	sort.SliceStable(dirs, func(i, j int) bool {
		return depth(dirs[i].path) > depth(dirs[j].path)
	})
	for _, d := range dirs {
		if err := fs.Chtimes(d.path, d.modTime, d.modTime); err != nil {
			errs = append(errs, fmt.Errorf("failed to set timestamps on %s: %w", d.path, err))
		}
	}
	return errors.Join(errs...)
}
