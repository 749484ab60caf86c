package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default values for configuration.
const (
	DefaultRegistryURL    = "https://www.peeringdb.com/api"
	DefaultUserAgent      = "pdbdiff"
	DefaultOutput         = "text"
	DefaultColor          = "auto"
	DefaultWebhookTimeout = 10 * time.Second
)

// Environment variable names.
const (
	EnvConfig      = "PDBDIFF_CONFIG"
	EnvRegistryURL = "PDBDIFF_REGISTRY_URL"
	EnvOutput      = "PDBDIFF_OUTPUT"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Registry: RegistryConfig{
			URL:       DefaultRegistryURL,
			UserAgent: DefaultUserAgent,
		},
		Output: DefaultOutput,
		Color:  DefaultColor,
	}
}

// DefaultPath returns ~/.pdbdiff/config.yaml, or "" if the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pdbdiff", "config.yaml")
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if u := os.Getenv(EnvRegistryURL); u != "" {
		c.Registry.URL = u
	}
	if o := os.Getenv(EnvOutput); o != "" {
		c.Output = o
	}
}
