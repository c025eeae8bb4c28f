/*
Copyright © 2023 Microsoft Corporation
*/
package trackheader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var (
	// ErrTooShort is returned for files that cannot hold a full header.
	ErrTooShort = errors.New("file is too short to hold a track header")

	// ErrNotRegular is returned when the path does not name a regular file.
	ErrNotRegular = errors.New("not a regular file")
)

// FileAccessError reports a failure to open, read or write a track file.
type FileAccessError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("failed to %s track file '%s': %v", e.Op, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// Apply returns a copy of data with its header replaced by the user header.
func Apply(data []byte) ([]byte, error) {
	if err := checkLength(len(data)); err != nil {
		return nil, err
	}

	patched := make([]byte, len(data))
	copy(patched, userHeader[:])
	copy(patched[HeaderSize:], data[HeaderSize:])

	return patched, nil
}

// IsPatched reports whether data already starts with the user header.
func IsPatched(data []byte) bool {
	return bytes.HasPrefix(data, userHeader[:])
}

// PatchFile replaces the header of the track file at path in place. The file is never created
// or truncated, and everything after the header is written back unchanged. A failure during
// the write may leave the file partially patched.
func PatchFile(path string) (err error) {
	file, err := openTrack(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = &FileAccessError{Op: "close", Path: path, Err: closeErr}
		}
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return &FileAccessError{Op: "read", Path: path, Err: err}
	}

	if err = checkLength(len(data)); err != nil {
		return fmt.Errorf("cannot patch '%s': %w", path, err)
	}

	log.WithFields(log.Fields{
		"file":    path,
		"size":    len(data),
		"patched": IsPatched(data),
	}).Debug("Writing user header in place")

	if _, err = file.Seek(0, io.SeekStart); err != nil {
		return &FileAccessError{Op: "seek", Path: path, Err: err}
	}

	if err = writeTrack(file, data); err != nil {
		return &FileAccessError{Op: "write", Path: path, Err: err}
	}

	return nil
}

// PatchFileAtomic replaces the header of the track file at path by writing the patched
// contents to a temporary file next to it and renaming that over the original. Either the
// original or the fully patched file is left behind. Symlinks are resolved so the target is
// replaced; files with more than one hard link are patched in place.
func PatchFileAtomic(path string) (err error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return &FileAccessError{Op: "resolve", Path: path, Err: err}
	}
	if resolved != path {
		log.WithFields(log.Fields{
			"file":   path,
			"target": resolved,
		}).Debug("Resolved track symlink")
		path = resolved
	}

	file, err := openTrack(path)
	if err != nil {
		return err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return &FileAccessError{Op: "stat", Path: path, Err: err}
	}

	// A rename would detach this name from the other links.
	if links := linkCount(info); links > 1 {
		file.Close()
		log.WithFields(log.Fields{
			"file":  path,
			"links": links,
		}).Debug("Track has several hard links, patching in place")
		return PatchFile(path)
	}

	data, err := io.ReadAll(file)
	file.Close()
	if err != nil {
		return &FileAccessError{Op: "read", Path: path, Err: err}
	}

	if err = checkLength(len(data)); err != nil {
		return fmt.Errorf("cannot patch '%s': %w", path, err)
	}

	tmpPath := filepath.Join(filepath.Dir(path), fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))
	tmp, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return &FileAccessError{Op: "create temporary copy of", Path: path, Err: err}
	}

	closed := false
	defer func() {
		if err == nil {
			return
		}
		if !closed {
			tmp.Close()
		}
		os.Remove(tmpPath)
	}()

	log.WithFields(log.Fields{
		"file":      path,
		"temporary": tmpPath,
		"size":      len(data),
		"patched":   IsPatched(data),
	}).Debug("Writing patched copy of track")

	if err = writeTrack(tmp, data); err != nil {
		return &FileAccessError{Op: "write", Path: tmpPath, Err: err}
	}

	// Permission bits given to OpenFile are subject to the umask.
	if err = tmp.Chmod(info.Mode().Perm()); err != nil {
		return &FileAccessError{Op: "chmod", Path: tmpPath, Err: err}
	}

	if err = tmp.Sync(); err != nil {
		return &FileAccessError{Op: "sync", Path: tmpPath, Err: err}
	}

	closed = true
	if err = tmp.Close(); err != nil {
		return &FileAccessError{Op: "close", Path: tmpPath, Err: err}
	}

	if err = os.Rename(tmpPath, path); err != nil {
		return &FileAccessError{Op: "replace", Path: path, Err: err}
	}

	return nil
}

// openTrack opens an existing regular file for reading and writing.
func openTrack(path string) (*os.File, error) {
	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, &FileAccessError{Op: "open", Path: path, Err: err}
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, &FileAccessError{Op: "stat", Path: path, Err: err}
	}

	if !info.Mode().IsRegular() {
		file.Close()
		return nil, &FileAccessError{Op: "open", Path: path, Err: ErrNotRegular}
	}

	return file, nil
}

func writeTrack(w io.Writer, original []byte) error {
	if _, err := w.Write(userHeader[:]); err != nil {
		return err
	}

	_, err := w.Write(original[HeaderSize:])
	return err
}

func checkLength(size int) error {
	if size < HeaderSize {
		return fmt.Errorf("%w: got %d bytes, need at least %d", ErrTooShort, size, HeaderSize)
	}

	return nil
}
