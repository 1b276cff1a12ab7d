package internal

import (
	"github.com/karrick/godirwalk"
)

// ListEntries returns the names of every entry directly inside dir, in the
// order the filesystem yields them. Nothing is filtered: subdirectories,
// symlinks and special files are all included.
func ListEntries(dir string) ([]string, error) {
	return godirwalk.ReadDirnames(dir, nil)
}
