package engine

import (
	"os"
	fp "path/filepath"
)

func copyTree(src, dst string) error {
	if err := os.MkdirAll(dst, 0o755); err != nil { // want `direct filesystem call os.MkdirAll`
		return err
	}
	return fp.Walk(src, func(string, os.FileInfo, error) error { // want `direct filesystem call fp.Walk`
		return nil
	})
}

func pid() int {
	return os.Getpid()
}

func missing(err error) bool {
	return os.IsNotExist(err)
}
