// Package fileutil provides the filesystem primitives used by delivery:
// existence checks, recursive directory creation, and hard links.
package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/sys/unix"
)

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// EnsureDir creates dir and any missing parents. A pre-existing directory is
// not an error.
func EnsureDir(dir string) error {
	if dir == "" {
		return errors.New("ensure dir: empty path")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}

// LinkFile hard-links src to dst. A pre-existing dst surfaces as fs.ErrExist
// so callers can distinguish re-delivery collisions from other failures.
func LinkFile(src, dst string) error {
	if err := os.Link(src, dst); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("link %s: %w", dst, fs.ErrExist)
		}
		return fmt.Errorf("link %s to %s: %w", src, dst, err)
	}
	return nil
}

// SameFilesystem reports whether both paths live on the same device. Hard
// links cannot cross devices, so delivery checks this before linking.
func SameFilesystem(a, b string) (bool, error) {
	var statA, statB unix.Stat_t
	if err := unix.Stat(a, &statA); err != nil {
		return false, fmt.Errorf("stat %s: %w", a, err)
	}
	if err := unix.Stat(b, &statB); err != nil {
		return false, fmt.Errorf("stat %s: %w", b, err)
	}
	return statA.Dev == statB.Dev, nil
}
