package internal

import (
	"fmt"

	"github.com/spf13/viper"
)

const (
	DefaultSuffix     = ".supplemental-metadata.json"
	DefaultIndent     = 4
	DefaultURL        = "https://photos.google.com/photo/AF1QipMjB5UVZ4V257bEr9MUafTu-bZEyk7WKmQs3TV_"
	DefaultDeviceType = "ANDROID_PHONE"
)

// Config holds the values stamped into every generated sidecar.
type Config struct {
	Suffix          string `mapstructure:"suffix"`
	Indent          int    `mapstructure:"indent"`
	URL             string `mapstructure:"url"`
	DeviceType      string `mapstructure:"device_type"`
	LocalFolderName string `mapstructure:"local_folder_name"`
}

// SetDefaults registers the default value of every config key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("suffix", DefaultSuffix)
	v.SetDefault("indent", DefaultIndent)
	v.SetDefault("url", DefaultURL)
	v.SetDefault("device_type", DefaultDeviceType)
	v.SetDefault("local_folder_name", "")
}

// DefaultConfig returns the configuration used when no file or flag
// overrides anything.
func DefaultConfig() *Config {
	return &Config{
		Suffix:     DefaultSuffix,
		Indent:     DefaultIndent,
		URL:        DefaultURL,
		DeviceType: DefaultDeviceType,
	}
}

// LoadConfig reads path into v when path is set and decodes the result.
// Without a path only defaults and bound flags apply; no file is searched for.
func LoadConfig(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings that would make the generator clobber its inputs
// or emit malformed output.
func (c *Config) Validate() error {
	if c.Suffix == "" {
		return fmt.Errorf("suffix must not be empty")
	}
	if c.Indent < 0 {
		return fmt.Errorf("indent must be >= 0, got %d", c.Indent)
	}
	return nil
}
