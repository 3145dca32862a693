package myapps

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by Install matches exactly one of these
// with errors.Is.
var (
	ErrUsage          = errors.New("usage error")
	ErrNotFound       = errors.New("not found")
	ErrAlreadyRunning = errors.New("already running")
	ErrIO             = errors.New("i/o error")
	ErrArchive        = errors.New("archive error")
)

var kinds = []error{ErrUsage, ErrNotFound, ErrAlreadyRunning, ErrIO, ErrArchive}

// Exit codes used by the command line.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// withKind tags err with kind unless it already carries one.
func withKind(kind, err error) error {
	if err == nil {
		return nil
	}
	if Kind(err) != nil {
		return err
	}
	return fmt.Errorf("%w: %w", kind, err)
}

// Kind returns the error kind err carries, or nil.
func Kind(err error) error {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage):
		return ExitUsage
	default:
		return ExitFailure
	}
}
