package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Client defaults.
const (
	DefaultAPIBase       = "http://localhost:8081"
	DefaultClientTimeout = 10 * time.Second
)

// ClientConfig is the CLI configuration file.
//
//	api_base: http://localhost:8081
//	timeout: 10s
//	preferences:
//	  dir: ~/.config/taskmate/prefs
//	  gcs_bucket: my-bucket
type ClientConfig struct {
	APIBase     string            `yaml:"api_base"`
	Timeout     time.Duration     `yaml:"timeout"`
	Preferences PreferencesConfig `yaml:"preferences"`
}

// PreferencesConfig selects where client preferences live. A bucket takes
// precedence over the directory.
type PreferencesConfig struct {
	Dir         string `yaml:"dir"`
	GCSBucket   string `yaml:"gcs_bucket"`
	GCSPrefix   string `yaml:"gcs_prefix"`
	GCSEndpoint string `yaml:"gcs_endpoint"`
}

// DefaultClientConfigPath is <user config dir>/taskmate/config.yaml.
func DefaultClientConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "taskmate", "config.yaml"), nil
}

// LoadClientConfig reads path. A missing file yields the defaults.
func LoadClientConfig(path string) (*ClientConfig, error) {
	cfg := &ClientConfig{}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read client config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := cfg.applyDefaults(filepath.Dir(path)); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *ClientConfig) applyDefaults(configDir string) error {
	if c.APIBase == "" {
		c.APIBase = DefaultAPIBase
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultClientTimeout
	}
	if c.Preferences.Dir == "" {
		c.Preferences.Dir = filepath.Join(configDir, "prefs")
	}
	dir, err := expandHome(c.Preferences.Dir)
	if err != nil {
		return err
	}
	c.Preferences.Dir = dir
	return nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to expand %s: %w", path, err)
	}
	return filepath.Join(home, path[1:]), nil
}

// Save writes the configuration to path, creating parent directories.
func (c *ClientConfig) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode client config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write client config: %w", err)
	}
	return nil
}
