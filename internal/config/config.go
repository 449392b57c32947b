// Package config loads the optional YAML configuration file that
// customizes the dotfile-exclusion set and default worker/thread counts.
package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config holds the settings a "--config" file can override.
type Config struct {
	// ExcludeDotfiles is the set of path components that trigger
	// exclusion when -E/--exclude-dotfiles is given. Empty means "use
	// DefaultExcludeDotfiles".
	ExcludeDotfiles []string `yaml:"exclude_dotfiles"`

	// DefaultThreads, if nonzero, overrides the default value of
	// -t/--threads for strategies that take it.
	DefaultThreads int `yaml:"default_threads"`

	// DefaultWorkers, if nonzero, overrides the default value of
	// -w/--workers for the fastasync strategy.
	DefaultWorkers int `yaml:"default_workers"`
}

// DefaultExcludeDotfiles is the hard-coded exclusion set applied when
// -E/--exclude-dotfiles is given and no config file overrides it.
var DefaultExcludeDotfiles = []string{".dandi", ".datalad", ".git", ".gitattributes", ".gitmodules"}

// Default returns a Config with the hard-coded dotfile set and
// thread/worker counts pinned to the logical CPU count.
func Default() *Config {
	n := runtime.NumCPU()
	return &Config{
		ExcludeDotfiles: append([]string(nil), DefaultExcludeDotfiles...),
		DefaultThreads:  n,
		DefaultWorkers:  n,
	}
}

// Load reads a YAML config file at path. A missing file is not an error;
// it yields Default(). Fields left unset in the file fall back to the
// defaults for that field.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if len(parsed.ExcludeDotfiles) > 0 {
		cfg.ExcludeDotfiles = parsed.ExcludeDotfiles
	}
	if parsed.DefaultThreads > 0 {
		cfg.DefaultThreads = parsed.DefaultThreads
	}
	if parsed.DefaultWorkers > 0 {
		cfg.DefaultWorkers = parsed.DefaultWorkers
	}
	return cfg, nil
}
