// Package config loads interpreter settings from an optional .sorrel.yaml
// file. Everything has a working default, so the file is never required.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is looked for in the working directory when no path
// is given.
const DefaultFileName = ".sorrel.yaml"

// Config represents the complete Sorrel configuration
type Config struct {
	BaseDir string        `yaml:"-"` // Directory containing config file, for resolving relative paths
	Runtime RuntimeConfig `yaml:"runtime"`
	Repl    ReplConfig    `yaml:"repl"`
}

// RuntimeConfig holds evaluation settings
type RuntimeConfig struct {
	MaxDepth int    `yaml:"max_depth"` // Eval recursion limit (default: 10000)
	Locale   string `yaml:"locale"`    // BCP 47 tag for format() (default: "en-US")
}

// ReplConfig holds interactive session settings
type ReplConfig struct {
	HistoryFile string `yaml:"history_file"` // Readline history path (default: "~/.sorrel_history")
	Prompt      string `yaml:"prompt"`       // Input prompt (default: ">> ")
}

// Defaults returns a Config with sensible defaults
func Defaults() *Config {
	return &Config{
		Runtime: RuntimeConfig{
			MaxDepth: 10000,
			Locale:   "en-US",
		},
		Repl: ReplConfig{
			HistoryFile: "~/.sorrel_history",
			Prompt:      ">> ",
		},
	}
}

// Load reads a config file and merges it over Defaults. An empty path
// means "use DefaultFileName if it exists"; a missing default file is
// not an error.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err == nil {
		cfg.BaseDir = filepath.Dir(abs)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// HistoryPath expands a leading ~ in the history file setting.
func (c *Config) HistoryPath() string {
	p := c.Repl.HistoryFile
	if len(p) >= 2 && p[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	return p
}

func (c *Config) validate() error {
	if c.Runtime.MaxDepth < 0 {
		return fmt.Errorf("runtime.max_depth must not be negative, got %d", c.Runtime.MaxDepth)
	}
	return nil
}
