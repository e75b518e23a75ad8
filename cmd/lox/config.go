package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/metaphox/lox-lang/interpreter"
)

// Config holds the user's settings from ~/.lox.yml. Fields missing from the
// file keep their defaults.
type Config struct {
	Prompt       string `yaml:"prompt"`
	Continuation string `yaml:"continuation"`
	HistoryFile  string `yaml:"history_file"`
	Color        bool   `yaml:"color"`
	MaxDepth     int    `yaml:"max_depth"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Prompt:       "> ",
		Continuation: ". ",
		HistoryFile:  "~/.lox_history",
		Color:        true,
		MaxDepth:     interpreter.DefaultMaxDepth,
	}
}

// LoadConfig reads a YAML config file. A missing or empty file yields the
// defaults; unknown keys are rejected. A leading "~" in history_file is
// expanded to the home directory.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	home, _ := os.UserHomeDir()
	defer func() { cfg.HistoryFile = expandHome(cfg.HistoryFile, home) }()
	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if cfg.MaxDepth < 1 {
		return nil, fmt.Errorf("config: %s: max_depth must be positive, got %d", path, cfg.MaxDepth)
	}
	return cfg, nil
}

// expandHome replaces a leading "~" with home.
func expandHome(path, home string) string {
	if home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

// defaultConfigPath is $HOME/.lox.yml, or "" when there is no home directory.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lox.yml")
}
