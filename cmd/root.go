package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"

	"gpsidecar/internal"
)

// Version is overridden from the embedded VERSION file at startup.
var Version = "dev"

const usageLine = "Usage: gpsidecar <folder_path>"

// ErrUsage is returned when the command line has the wrong shape.
var ErrUsage = errors.New("expected exactly one folder argument")

var rootCmd = newRootCmd()

// ApplyVersion copies Version onto the root command.
func ApplyVersion() {
	rootCmd.Version = Version
}

// Execute runs the root command with os.Args and returns the exit status.
func Execute() int {
	defer klog.Flush()
	return run(rootCmd, os.Args[1:], os.Stdout, os.Stderr)
}

func run(c *cobra.Command, args []string, stdout, stderr io.Writer) int {
	// cobra falls back to os.Args on a nil slice.
	if args == nil {
		args = []string{}
	}
	c.SetArgs(args)
	c.SetOut(stdout)
	c.SetErr(stderr)

	err := c.Execute()
	if err == nil {
		return 0
	}
	if errors.Is(err, ErrUsage) {
		fmt.Fprintln(stdout, usageLine)
		return 1
	}

	fmt.Fprintf(stderr, "gpsidecar: %v\n", err)
	var ge *internal.GenerateError
	if errors.As(err, &ge) {
		if hint := ge.Suggestion(); hint != "" {
			fmt.Fprintf(stderr, "hint: %s\n", hint)
		}
	}
	return 1
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	var (
		configFlag   string
		manifestFlag string
		dryRunFlag   bool
	)

	c := &cobra.Command{
		Use:   "gpsidecar <folder_path>",
		Short: "Write Google Photos takeout sidecars next to every entry of a folder",
		Long: `gpsidecar writes <entry>.supplemental-metadata.json next to every entry of
folder_path, describing a fabricated takeout record whose timestamps come from
the entry's filesystem creation time. Existing sidecars are overwritten.

A folder whose name starts with "-" must follow "--", as in
"gpsidecar -- -photos".`,
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return ErrUsage
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			folder := args[0]

			conf, err := internal.LoadConfig(v, configFlag)
			if err != nil {
				return err
			}

			opts := []internal.Option{
				internal.WithDryRun(dryRunFlag),
				internal.WithOutput(cmd.OutOrStdout()),
			}

			if manifestFlag != "" {
				if err := checkManifestPath(manifestFlag, folder); err != nil {
					return err
				}
				m, err := internal.OpenManifest(manifestFlag)
				if err != nil {
					return err
				}
				defer m.Close()
				opts = append(opts, internal.WithManifest(m))
			}

			stats, err := internal.NewGenerator(conf, opts...).Generate(folder)
			if err != nil {
				return err
			}

			if dryRunFlag {
				fmt.Fprintf(cmd.OutOrStdout(), "Dry run: %d sidecars would be written\n", stats.Entries)
			}
			return nil
		},
	}

	c.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	})

	c.Flags().StringVar(&configFlag, "config", "", "Config file (toml, yaml or json); none is read by default")
	c.Flags().StringVar(&manifestFlag, "manifest", "", "Append a JSONL record of the run to this file (must be outside the folder)")
	c.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Show sidecars without writing them")
	c.Flags().String("suffix", internal.DefaultSuffix, "Suffix appended to each entry name")
	c.Flags().Int("indent", internal.DefaultIndent, "JSON indentation width in spaces")
	c.Flags().String("device-type", internal.DefaultDeviceType, "deviceType stamped into googlePhotosOrigin")

	_ = v.BindPFlag("suffix", c.Flags().Lookup("suffix"))
	_ = v.BindPFlag("indent", c.Flags().Lookup("indent"))
	_ = v.BindPFlag("device_type", c.Flags().Lookup("device-type"))

	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	c.Flags().AddGoFlag(klogFlags.Lookup("v"))

	return c
}

// checkManifestPath refuses a manifest inside folder: it would show up in
// the listing and get a sidecar of its own. A symlinked alias of folder, or a
// manifest symlinked into it, counts as inside.
func checkManifestPath(manifest, folder string) error {
	absManifest, err := filepath.Abs(manifest)
	if err != nil {
		return err
	}
	absFolder, err := filepath.Abs(folder)
	if err != nil {
		return err
	}
	dirs := []string{filepath.Dir(absManifest)}
	if target, err := filepath.EvalSymlinks(absManifest); err == nil {
		dirs = append(dirs, filepath.Dir(target))
	}

	// A missing folder fails in listing before anything is written into it.
	folderInfo, folderErr := os.Stat(absFolder)
	for _, dir := range dirs {
		if dir == absFolder {
			return fmt.Errorf("manifest %s must not be inside %s", manifest, folder)
		}
		if folderErr != nil {
			continue
		}
		if dirInfo, err := os.Stat(dir); err == nil && os.SameFile(dirInfo, folderInfo) {
			return fmt.Errorf("manifest %s must not be inside %s", manifest, folder)
		}
	}
	return nil
}
