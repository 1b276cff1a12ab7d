package internal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"k8s.io/klog/v2"
)

// Generator writes one sidecar per entry of a folder.
type Generator struct {
	cfg          *Config
	out          io.Writer
	dryRun       bool
	manifest     *Manifest
	creationTime func(path string) (time.Time, error)
}

type Option func(*Generator)

// WithDryRun makes Generate report what it would write instead of writing.
func WithDryRun(dryRun bool) Option {
	return func(g *Generator) { g.dryRun = dryRun }
}

// WithOutput sets where dry-run lines are printed.
func WithOutput(w io.Writer) Option {
	return func(g *Generator) { g.out = w }
}

// WithManifest records every run event in m.
func WithManifest(m *Manifest) Option {
	return func(g *Generator) { g.manifest = m }
}

// WithCreationTime replaces the filesystem creation-time lookup.
func WithCreationTime(fn func(path string) (time.Time, error)) Option {
	return func(g *Generator) { g.creationTime = fn }
}

func NewGenerator(cfg *Config, opts ...Option) *Generator {
	g := &Generator{
		cfg:          cfg,
		out:          os.Stdout,
		creationTime: CreationTime,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Generate writes the sidecars for folder with the default configuration.
func Generate(folder string) error {
	_, err := NewGenerator(DefaultConfig()).Generate(folder)
	return err
}

// Generate lists folder and writes a sidecar next to every entry, overwriting
// existing ones. The first filesystem error aborts the run; sidecars already
// written are left in place.
func (g *Generator) Generate(folder string) (RunStats, error) {
	var stats RunStats

	names, err := ListEntries(folder)
	if err != nil {
		return stats, g.abort(wrapErr(OpList, folder, err))
	}
	stats.Entries = len(names)

	if g.manifest != nil {
		if err := g.manifest.LogRunStart(folder, len(names), g.dryRun); err != nil {
			return stats, err
		}
	}

	for _, name := range names {
		n, err := g.writeSidecar(folder, name)
		if err != nil {
			return stats, g.abort(err)
		}
		if n > 0 {
			stats.Written++
		}
	}

	klog.V(1).Infof("%s: %d entries, %d sidecars written", folder, stats.Entries, stats.Written)
	if g.manifest != nil {
		if err := g.manifest.LogRunEnd(stats); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

// writeSidecar returns the number of bytes written, 0 on a dry run.
func (g *Generator) writeSidecar(folder, name string) (int, error) {
	src := filepath.Join(folder, name)
	dest := filepath.Join(folder, SidecarName(name, g.cfg.Suffix))

	created, err := g.creationTime(src)
	if err != nil {
		return 0, wrapErr(OpStat, src, err)
	}

	rec := NewRecord(name, created, g.cfg)
	data, err := Encode(rec, g.cfg.Indent)
	if err != nil {
		return 0, err
	}

	if g.dryRun {
		fmt.Fprintf(g.out, "[dry-run] would write %s (timestamp %s)\n", dest, rec.CreationTime.Timestamp)
		return 0, nil
	}

	if err := os.WriteFile(dest, data, 0644); err != nil {
		return 0, wrapErr(OpWrite, dest, err)
	}
	klog.V(1).Infof("wrote %s (%d bytes)", dest, len(data))

	if g.manifest != nil {
		if err := g.manifest.LogWritten(src, dest, rec.CreationTime.Timestamp, len(data)); err != nil {
			return len(data), err
		}
	}
	return len(data), nil
}

func (g *Generator) abort(err error) error {
	if g.manifest != nil {
		if mErr := g.manifest.LogError(err); mErr != nil {
			klog.Warningf("failed to record error in manifest: %v", mErr)
		}
	}
	return err
}
