package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Record is a takeout supplemental-metadata document for one entry.
// Field order is the serialized key order.
type Record struct {
	Title              string             `json:"title"`
	Description        string             `json:"description"`
	CreationTime       TimeObject         `json:"creationTime"`
	PhotoTakenTime     TimeObject         `json:"photoTakenTime"`
	URL                string             `json:"url"`
	GooglePhotosOrigin GooglePhotosOrigin `json:"googlePhotosOrigin"`
}

// TimeObject holds an epoch timestamp as a decimal string and its
// human-readable UTC rendering.
type TimeObject struct {
	Timestamp string `json:"timestamp"`
	Formatted string `json:"formatted"`
}

type GooglePhotosOrigin struct {
	MobileUpload MobileUpload `json:"mobileUpload"`
}

type MobileUpload struct {
	DeviceFolder DeviceFolder `json:"deviceFolder"`
	DeviceType   string       `json:"deviceType"`
}

type DeviceFolder struct {
	LocalFolderName string `json:"localFolderName"`
}

// NewRecord builds the record for the entry called name, created at created.
// Both time fields carry the same truncated timestamp.
func NewRecord(name string, created time.Time, cfg *Config) Record {
	ts := NewTimeObject(EpochSeconds(created))
	return Record{
		Title:          name,
		Description:    "",
		CreationTime:   ts,
		PhotoTakenTime: ts,
		URL:            cfg.URL,
		GooglePhotosOrigin: GooglePhotosOrigin{
			MobileUpload: MobileUpload{
				DeviceFolder: DeviceFolder{LocalFolderName: cfg.LocalFolderName},
				DeviceType:   cfg.DeviceType,
			},
		},
	}
}

// Encode pretty-prints r with indent spaces per level. HTML characters are
// kept literal and no trailing newline is written.
func Encode(r Record, indent int) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", strings.Repeat(" ", indent))
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("failed to encode record %q: %w", r.Title, err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// MarshalJSON writes Title byte for byte. Bytes that are not valid UTF-8
// become \udcXX escapes, the form a surrogateescape-decoded name takes in
// takeout JSON, so the original name can be recovered.
func (r Record) MarshalJSON() ([]byte, error) {
	type plain Record
	title, err := quoteName(r.Title)
	if err != nil {
		return nil, err
	}
	return marshalNoEscape(struct {
		Title json.RawMessage `json:"title"`
		plain
	}{Title: title, plain: plain(r)})
}

func quoteName(name string) ([]byte, error) {
	if utf8.ValidString(name) {
		return marshalNoEscape(name)
	}

	var out bytes.Buffer
	out.WriteByte('"')
	start := 0
	flush := func(end int) error {
		if start == end {
			return nil
		}
		q, err := marshalNoEscape(name[start:end])
		if err != nil {
			return err
		}
		out.Write(q[1 : len(q)-1])
		return nil
	}
	for i := 0; i < len(name); {
		r, size := utf8.DecodeRuneInString(name[i:])
		if r == utf8.RuneError && size == 1 {
			if err := flush(i); err != nil {
				return nil, err
			}
			fmt.Fprintf(&out, `\udc%02x`, name[i])
			i++
			start = i
			continue
		}
		i += size
	}
	if err := flush(len(name)); err != nil {
		return nil, err
	}
	out.WriteByte('"')
	return out.Bytes(), nil
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// SidecarName returns the sidecar file name for entry.
func SidecarName(entry, suffix string) string {
	return entry + suffix
}
