//go:build !windows

package preflight

import "golang.org/x/sys/unix"

// checkAccess asks the kernel whether the current user may read and write
// path, which also accounts for ACLs and read-only mounts.
func checkAccess(path string) error {
	return unix.Access(path, unix.R_OK|unix.W_OK)
}
