package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(viper.New(), "")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gpsidecar.toml")
	os.WriteFile(path, []byte(`
suffix = ".json"
indent = 2
device_type = "IOS_PHONE"
local_folder_name = "Camera"
`), 0644)

	cfg, err := LoadConfig(viper.New(), path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	want := &Config{
		Suffix:          ".json",
		Indent:          2,
		URL:             DefaultURL,
		DeviceType:      "IOS_PHONE",
		LocalFolderName: "Camera",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(viper.New(), filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Expected error for a missing explicit config file")
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"empty suffix", `suffix = ""`},
		{"negative indent", `indent = -1`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.toml")
			os.WriteFile(path, []byte(tc.body), 0644)
			if _, err := LoadConfig(viper.New(), path); err == nil {
				t.Errorf("Expected validation error for %s", tc.body)
			}
		})
	}
}
