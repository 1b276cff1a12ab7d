//go:build windows

package internal

import (
	"os"
	"syscall"
	"time"
)

// CreationTime returns the NTFS creation time of path, following symlinks.
func CreationTime(path string) (time.Time, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	if d, ok := fi.Sys().(*syscall.Win32FileAttributeData); ok {
		return time.Unix(0, d.CreationTime.Nanoseconds()), nil
	}
	return fi.ModTime(), nil
}
