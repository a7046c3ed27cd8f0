//go:build windows

package preflight

import (
	"errors"
	"os"
)

// checkAccess falls back to the permission bits on Windows.
func checkAccess(path string) error {
	info, err := os.Stat(path) //nolint:fslint // permission bits of the real folder
	if err != nil {
		return err
	}
	if info.Mode().Perm()&0o200 == 0 {
		return errors.New("folder is read-only")
	}
	return nil
}
