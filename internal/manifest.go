package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// Manifest appends one JSON line per run event to a file.
type Manifest struct {
	Path string
	file *os.File
}

// ManifestEvent is a single line of the manifest.
type ManifestEvent struct {
	Event string `json:"event"`
	Ts    string `json:"ts"`

	Folder    string `json:"folder,omitempty"`
	Src       string `json:"src,omitempty"`
	Dest      string `json:"dest,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Size      int    `json:"size,omitempty"`
	DryRun    bool   `json:"dry_run,omitempty"`

	Error     string `json:"error,omitempty"`
	ErrorOp   string `json:"error_op,omitempty"`
	ErrorHint string `json:"error_hint,omitempty"`

	Entries int `json:"entries,omitempty"`
	Written int `json:"written,omitempty"`
}

// RunStats counts what a run did.
type RunStats struct {
	Entries int
	Written int
}

// OpenManifest opens path for append-only writes, creating it if needed.
func OpenManifest(path string) (*Manifest, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	return &Manifest{Path: path, file: f}, nil
}

func (m *Manifest) LogRunStart(folder string, entries int, dryRun bool) error {
	return m.writeEvent(ManifestEvent{
		Event:   "run_start",
		Folder:  folder,
		Entries: entries,
		DryRun:  dryRun,
	})
}

func (m *Manifest) LogWritten(src, dest, timestamp string, size int) error {
	return m.writeEvent(ManifestEvent{
		Event:     "written",
		Src:       src,
		Dest:      dest,
		Timestamp: timestamp,
		Size:      size,
	})
}

// LogError records the error that aborted the run.
func (m *Manifest) LogError(err error) error {
	event := ManifestEvent{
		Event: "error",
		Error: err.Error(),
	}
	var ge *GenerateError
	if errors.As(err, &ge) {
		event.Src = ge.Path
		event.ErrorOp = string(ge.Op)
		event.ErrorHint = ge.Suggestion()
	}
	return m.writeEvent(event)
}

func (m *Manifest) LogRunEnd(stats RunStats) error {
	return m.writeEvent(ManifestEvent{
		Event:   "run_end",
		Entries: stats.Entries,
		Written: stats.Written,
	})
}

func (m *Manifest) Close() error {
	if m.file != nil {
		return m.file.Close()
	}
	return nil
}

func (m *Manifest) writeEvent(event ManifestEvent) error {
	event.Ts = time.Now().UTC().Format(time.RFC3339)

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if _, err := m.file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write to manifest: %w", err)
	}
	return m.file.Sync()
}
