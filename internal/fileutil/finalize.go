// Package fileutil provides shared file operation helpers.
package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/spf13/afero"
)

// TempName returns the path "<filename>.<N>.tmp" with the smallest N >= start that does not exist on fsys.
func TempName(fsys afero.Fs, filename string, start int) (string, int, error) {
	for n := start; ; n++ {
		name := filename + "." + strconv.Itoa(n) + ".tmp"

		_, err := fsys.Stat(name)

		switch {
		case err == nil:
			continue
		case errors.Is(err, fs.ErrNotExist):
			return name, n, nil
		default:
			return "", 0, fmt.Errorf("probing temporary name %q: %w", name, err)
		}
	}
}

// TempContext holds state for an atomic file replacement.
type TempContext struct {
	SrcInfo os.FileInfo
	TmpFile afero.File
	TmpName string

	fsys   afero.Fs
	closed bool
}

// NewTempContext stats the source file and creates a temporary file next to it.
// Caller must defer CleanupOnError.
func NewTempContext(fsys afero.Fs, filename string) (*TempContext, error) {
	info, err := fsys.Stat(filename)
	if err != nil {
		return nil, fmt.Errorf("getting file info for %q: %w", filename, err)
	}

	const ownerReadWrite = 0o600

	for n := 0; ; n++ {
		name, next, err := TempName(fsys, filename, n)
		if err != nil {
			return nil, err
		}

		// Another writer may claim the name between the probe and the create.
		tmpFile, err := fsys.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, ownerReadWrite)
		if errors.Is(err, fs.ErrExist) {
			n = next

			continue
		}

		if err != nil {
			return nil, fmt.Errorf("creating temporary file: %w", err)
		}

		return &TempContext{
			SrcInfo: info,
			TmpFile: tmpFile,
			TmpName: name,
			fsys:    fsys,
		}, nil
	}
}

// Commit closes the temporary file, copies the source permissions onto it and renames it over filename.
// If the rename fails the temporary file is removed.
func (tc *TempContext) Commit(filename string) error {
	tc.closed = true

	if err := tc.TmpFile.Close(); err != nil {
		return fmt.Errorf("closing temporary file: %w", err)
	}

	if err := tc.fsys.Chmod(tc.TmpName, tc.SrcInfo.Mode().Perm()); err != nil {
		return fmt.Errorf("setting file permissions: %w", err)
	}

	if err := tc.fsys.Rename(tc.TmpName, filename); err != nil {
		tc.fsys.Remove(tc.TmpName) //nolint:errcheck,gosec // best-effort cleanup

		return fmt.Errorf("replacing file: %w", err)
	}

	return nil
}

// CleanupOnError closes the temp file and removes it if the write failed.
func (tc *TempContext) CleanupOnError(errp *error) {
	if !tc.closed {
		tc.TmpFile.Close() //nolint:errcheck,gosec // best-effort cleanup
	}

	if *errp != nil {
		tc.fsys.Remove(tc.TmpName) //nolint:errcheck,gosec // best-effort cleanup
	}
}

// RestoreModTime sets both access and modification time of path to modTime.
func RestoreModTime(fsys afero.Fs, path string, modTime time.Time) error {
	if err := fsys.Chtimes(path, modTime, modTime); err != nil {
		return fmt.Errorf("preserving timestamps: %w", err)
	}

	return nil
}
