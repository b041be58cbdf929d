// Package status defines the error taxonomy of simple-crypt and its mapping to exit codes.
package status

import (
	"errors"
	"io/fs"
	"os"
	"syscall"
)

// Code is a process exit status.
type Code int

// Exit statuses, in the order of the historical enumeration.
const (
	OK Code = iota
	Usage
	BadArguments
	NoKey
	IOError
	BadState
)

var (
	// ErrUsage is returned for malformed or missing command-line arguments.
	ErrUsage = errors.New("bad arguments")
	// ErrNoKey is returned when no key was supplied.
	ErrNoKey = errors.New("key value not provided")
	// ErrIO is returned for any failed open, read, write, seek, rename, remove or directory listing.
	ErrIO = errors.New("io error")
	// ErrBadState is returned for paths that cannot be processed in the requested mode.
	ErrBadState = errors.New("unsupported state")
)

// FromError maps an error chain to an exit status.
// Errors outside the taxonomy are treated as I/O failures.
func FromError(err error) Code {
	switch {
	case err == nil:
		return OK
	case errors.Is(err, ErrUsage):
		return BadArguments
	case errors.Is(err, ErrNoKey):
		return NoKey
	case errors.Is(err, ErrBadState):
		return BadState
	default:
		return IOError
	}
}

// Errno extracts the underlying system error number, if any.
func Errno(err error) (syscall.Errno, bool) {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno, true
	}

	return 0, false
}

// Path extracts the path of the innermost failing filesystem operation, if any.
func Path(err error) (string, bool) {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Path, true
	}

	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		return linkErr.New, true
	}

	return "", false
}
