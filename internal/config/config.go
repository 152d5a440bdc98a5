package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// RunnerConfig names the program the launcher hands off to and the
// arguments it always receives.
type RunnerConfig struct {
	// Path is the absolute path to the runner. It is invoked directly,
	// never resolved against the search path.
	Path string `json:"path"`

	// ProjectDir is passed to the runner via its --directory flag.
	// Defaults to the launcher's working directory.
	ProjectDir string `json:"projectDir"`

	// ServerCommand is the trailing argv naming the server to run.
	ServerCommand []string `json:"serverCommand"`
}

// JournalConfig controls the optional launch journal.
type JournalConfig struct {
	// Enabled toggles recording a row per launch attempt.
	Enabled bool `json:"enabled"`

	// Path overrides the journal database location. Defaults to
	// mcplaunch/launches.db under the user cache directory.
	Path string `json:"path"`
}

// Config is the top-level configuration for the launcher. The defaults
// reproduce the shell wrapper this tool replaces, so an empty or
// missing config file yields the original behavior.
type Config struct {
	// NvmDir overrides the nvm base directory. Empty means resolve
	// from NVM_DIR, then $HOME/.nvm.
	NvmDir string `json:"nvmDir"`

	// NodeVersion is an exact pin ("20.18.0") or, with ResolveLatest,
	// a version constraint (">= 20, < 21").
	NodeVersion string `json:"nodeVersion"`

	// ResolveLatest matches NodeVersion against the versions installed
	// under the nvm directory and picks the highest.
	ResolveLatest bool `json:"resolveLatest"`

	// Tool is the logical CLI name probed for the diagnostic block.
	Tool string `json:"tool"`

	// VersionTimeoutSeconds bounds the tool's --version probe.
	VersionTimeoutSeconds int `json:"versionTimeoutSeconds"`

	Runner  RunnerConfig  `json:"runner"`
	Journal JournalConfig `json:"journal"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		NodeVersion:           "20.18.0",
		Tool:                  "claude",
		VersionTimeoutSeconds: 5,
		Runner: RunnerConfig{
			Path:          "/opt/homebrew/bin/uv",
			ServerCommand: []string{"run", "mcp_snowflake_server"},
		},
	}
}

// Parse reads a JSON config file and returns the parsed Config. The
// file path is taken from the MCPLAUNCH_CONFIG env var, defaulting to
// "mcplaunch.json". A missing file is not an error: the launcher must
// run config-free, like the wrapper it replaces.
func Parse() (*Config, error) {
	path := os.Getenv("MCPLAUNCH_CONFIG")
	if path == "" {
		path = "mcplaunch.json"
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// VersionTimeout returns the version-probe timeout as a duration.
func (c *Config) VersionTimeout() time.Duration {
	return time.Duration(c.VersionTimeoutSeconds) * time.Second
}

// JournalPath returns the configured journal location, falling back to
// the user cache directory.
func (c *Config) JournalPath() (string, error) {
	if c.Journal.Path != "" {
		return c.Journal.Path, nil
	}
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolving journal directory: %w", err)
	}
	return filepath.Join(cacheDir, "mcplaunch", "launches.db"), nil
}
