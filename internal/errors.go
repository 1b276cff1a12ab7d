package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// Op names the filesystem step that failed.
type Op string

const (
	OpList  Op = "list"
	OpStat  Op = "stat"
	OpWrite Op = "write"
)

// GenerateError is the error that aborts a run. It wraps the underlying
// filesystem error, so errors.Is(err, fs.ErrPermission) and friends work.
type GenerateError struct {
	Op   Op
	Path string
	Err  error
}

func (e *GenerateError) Error() string {
	cause := e.Err
	var pe *fs.PathError
	if errors.As(e.Err, &pe) {
		cause = pe.Err
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, cause)
}

func (e *GenerateError) Unwrap() error {
	return e.Err
}

// Suggestion returns a short hint for the user, or "" when the cause is not
// one we recognise.
func (e *GenerateError) Suggestion() string {
	switch {
	case errors.Is(e.Err, syscall.ENOSPC):
		return "free up disk space in the target folder and rerun"
	case errors.Is(e.Err, syscall.EROFS):
		return "the target folder is on a read-only filesystem"
	case errors.Is(e.Err, fs.ErrPermission):
		return "check permissions on the folder and its entries"
	case errors.Is(e.Err, syscall.ENOTDIR):
		return "the path is not a directory"
	case errors.Is(e.Err, fs.ErrNotExist) && e.Op == OpList:
		return "the folder does not exist"
	case errors.Is(e.Err, fs.ErrNotExist):
		return "an entry vanished while the run was in progress, or is a dangling symlink"
	case errors.Is(e.Err, syscall.EISDIR):
		return "a directory already occupies the sidecar name"
	}
	return ""
}

func wrapErr(op Op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &GenerateError{Op: op, Path: path, Err: err}
}
