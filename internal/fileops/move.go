// Package fileops wraps the filesystem primitives the organizer relies on:
// move with a cross-device fallback and same-file detection.
package fileops

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"
)

// ErrExists is returned by Move when the destination exists and overwrite is false.
var ErrExists = errors.New("destination already exists")

// Exists reports whether path names an existing file or directory.
// Symlinks are not followed.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// SameFile reports whether a and b resolve to the same file. This is how a
// case-only rename on a case-insensitive filesystem is recognized.
func SameFile(a, b string) bool {
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

// Move relocates src to dst. When dst exists and is a different file, Move
// returns ErrExists unless overwrite is set, in which case dst is replaced by
// the rename itself and survives any failure. A rename that crosses devices
// falls back to a copy into a temporary file next to dst, renamed into place.
func Move(src, dst string, overwrite bool) error {
	if !overwrite && Exists(dst) && !SameFile(src, dst) {
		return fmt.Errorf("%s: %w", dst, ErrExists)
	}

	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}
	if err := copyReplace(src, dst); err != nil {
		return fmt.Errorf("cross-device copy %s: %w", filepath.Base(src), err)
	}
	return os.Remove(src)
}

// copyReplace copies src into a temporary file in dst's directory, keeping
// the source permission bits, then renames it over dst. On failure dst is
// untouched and the temporary file is removed.
func copyReplace(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	fi, err := in.Stat()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".organize-move-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err = io.Copy(tmp, in); err != nil {
		return err
	}
	if err = tmp.Chmod(fi.Mode().Perm()); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, dst)
}
