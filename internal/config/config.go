// Package config loads CLI configuration from ~/.octorail/config.yaml.
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvURL overrides the marketplace URL when set.
const EnvURL = "OCTORAIL_URL"

// defaultURL is the marketplace used when nothing else is configured.
const defaultURL = "http://localhost:3000"

// Config holds octorail configuration.
type Config struct {
	// URL is the marketplace base URL.
	URL string `yaml:"url"`

	// TimeoutSeconds is the HTTP request timeout. Zero means the default.
	TimeoutSeconds int `yaml:"timeout"`

	// DataDir is where wallet, allowlist, and history live.
	// Defaults to ~/.octorail.
	DataDir string `yaml:"data_dir"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		URL:            defaultURL,
		TimeoutSeconds: 30,
	}
}

// Load reads config.yaml from dir, applying defaults and the OCTORAIL_URL
// environment override. A missing or unparsable file yields the defaults,
// matching how the rest of the local state degrades.
func Load(dir string) *Config {
	cfg := Default()
	cfg.DataDir = dir

	if data, err := os.ReadFile(filepath.Join(dir, "config.yaml")); err == nil {
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			if fileCfg.URL != "" {
				cfg.URL = fileCfg.URL
			}
			if fileCfg.TimeoutSeconds > 0 {
				cfg.TimeoutSeconds = fileCfg.TimeoutSeconds
			}
			if fileCfg.DataDir != "" {
				cfg.DataDir = fileCfg.DataDir
			}
		}
	}

	if env := os.Getenv(EnvURL); env != "" {
		cfg.URL = env
	}

	return cfg
}

// DefaultDir returns ~/.octorail, falling back to a relative directory when
// the home directory cannot be determined.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".octorail"
	}
	return filepath.Join(home, ".octorail")
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
