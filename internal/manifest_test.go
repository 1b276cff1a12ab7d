package internal

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func readManifest(t *testing.T, path string) []ManifestEvent {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open manifest: %v", err)
	}
	defer f.Close()

	var events []ManifestEvent
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e ManifestEvent
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			t.Fatalf("Invalid manifest line %q: %v", scanner.Text(), err)
		}
		if _, err := time.Parse(time.RFC3339, e.Ts); err != nil {
			t.Errorf("Invalid ts %q: %v", e.Ts, err)
		}
		events = append(events, e)
	}
	return events
}

func TestManifest_Run(t *testing.T) {
	tempDir := t.TempDir()
	folder := filepath.Join(tempDir, "photos")
	os.Mkdir(folder, 0755)
	os.WriteFile(filepath.Join(folder, "a.jpg"), []byte("a"), 0644)
	os.WriteFile(filepath.Join(folder, "b.jpg"), []byte("b"), 0644)

	manifestPath := filepath.Join(tempDir, "run.jsonl")
	m, err := OpenManifest(manifestPath)
	if err != nil {
		t.Fatalf("OpenManifest failed: %v", err)
	}

	g := NewGenerator(DefaultConfig(), WithManifest(m), WithCreationTime(fixedTime(1700000000)))
	if _, err := g.Generate(folder); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	m.Close()

	events := readManifest(t, manifestPath)
	if len(events) != 4 {
		t.Fatalf("Expected 4 events, got %d: %+v", len(events), events)
	}
	if events[0].Event != "run_start" || events[0].Folder != folder || events[0].Entries != 2 {
		t.Errorf("unexpected run_start: %+v", events[0])
	}
	for _, e := range events[1:3] {
		if e.Event != "written" || e.Timestamp != "1700000000" || e.Size == 0 {
			t.Errorf("unexpected written event: %+v", e)
		}
		if e.Dest != e.Src+DefaultSuffix {
			t.Errorf("dest %s does not match src %s", e.Dest, e.Src)
		}
	}
	if end := events[3]; end.Event != "run_end" || end.Written != 2 {
		t.Errorf("unexpected run_end: %+v", end)
	}
}

func TestManifest_Error(t *testing.T) {
	tempDir := t.TempDir()
	manifestPath := filepath.Join(tempDir, "run.jsonl")
	m, err := OpenManifest(manifestPath)
	if err != nil {
		t.Fatalf("OpenManifest failed: %v", err)
	}

	missing := filepath.Join(tempDir, "missing")
	if _, err := NewGenerator(DefaultConfig(), WithManifest(m)).Generate(missing); err == nil {
		t.Fatal("Expected Generate to fail")
	}
	m.Close()

	events := readManifest(t, manifestPath)
	if len(events) != 1 {
		t.Fatalf("Expected a single error event, got %+v", events)
	}
	e := events[0]
	if e.Event != "error" || e.ErrorOp != string(OpList) || e.Src != missing || e.ErrorHint == "" {
		t.Errorf("unexpected error event: %+v", e)
	}
}

func TestManifest_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.jsonl")

	for i := 0; i < 2; i++ {
		m, err := OpenManifest(path)
		if err != nil {
			t.Fatalf("OpenManifest failed: %v", err)
		}
		if err := m.LogRunEnd(RunStats{Entries: i}); err != nil {
			t.Fatalf("LogRunEnd failed: %v", err)
		}
		m.Close()
	}

	if events := readManifest(t, path); len(events) != 2 {
		t.Errorf("Expected 2 appended events, got %d", len(events))
	}
}
