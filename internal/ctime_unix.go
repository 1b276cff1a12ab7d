//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package internal

import (
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

// CreationTime returns the status-change time of path, following symlinks.
func CreationTime(path string) (time.Time, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return time.Time{}, &fs.PathError{Op: "stat", Path: path, Err: err}
	}
	return time.Unix(st.Ctim.Unix()), nil
}
