package storage

import (
	"os"
	"path/filepath"
)

// EnsureDir ensures a directory exists with private permissions.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o700)
}

// EnsureParentDir creates the directory holding path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return EnsureDir(dir)
}
