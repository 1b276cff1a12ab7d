package main

import (
	_ "embed"
	"strings"

	"gpsidecar/cmd"
)

//go:embed VERSION
var embeddedVersion string

// A version injected with -ldflags wins over the embedded file.
func init() {
	if cmd.Version != "dev" {
		return
	}
	if v := strings.TrimSpace(embeddedVersion); v != "" {
		cmd.Version = v
		cmd.ApplyVersion()
	}
}
