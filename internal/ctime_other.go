//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly || windows)

package internal

import (
	"os"
	"time"
)

// CreationTime falls back to the modification time where the platform
// exposes nothing better.
func CreationTime(path string) (time.Time, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return fi.ModTime(), nil
}
