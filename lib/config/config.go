// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides loading of the blazingjj application config
// file.
//
// The file is located via:
//   - BLAZINGJJ_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There is no automatic discovery and no environment-variable override
// of individual values; the file is the single source of truth. When
// neither the variable nor the flag is set, built-in defaults apply.
//
// Repository-level behavior (diff format, highlight color, bookmark
// templates) lives in jj's own config and is read through the jj
// package; this file covers only what belongs to the application
// itself: which jj binary to run, the default revset, theme file, and
// log output.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration for blazingjj.
type Config struct {
	// JJBinary is the jj executable to run. Default: "jj", resolved
	// through PATH.
	JJBinary string `yaml:"jj_binary"`

	// DefaultRevset overrides the revset shown on startup. Empty means
	// jj's own default log revset.
	DefaultRevset string `yaml:"default_revset"`

	// ThemeFile is a JSONC theme file overlaid on the built-in theme.
	ThemeFile string `yaml:"theme_file"`

	// Layout forces the panel layout ("horizontal" or "vertical"),
	// taking precedence over the blazingjj.layout jj setting. Empty
	// defers to the jj setting.
	Layout string `yaml:"layout"`

	// Log configures diagnostic logging.
	Log LogConfig `yaml:"log"`
}

// LogConfig configures the diagnostic log sink. The TUI always shows
// warnings and errors in its status bar; this adds an optional file
// sink for debugging.
type LogConfig struct {
	// File is the path of a gzip-compressed JSONL log file. Empty
	// disables the file sink.
	File string `yaml:"file"`

	// Level is the minimum level for the file sink: "debug", "info",
	// "warn", or "error". Default: "info".
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		JJBinary: "jj",
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load resolves the config file path and loads it. The explicit path
// (from --config) wins over BLAZINGJJ_CONFIG; when neither is set the
// defaults are returned without touching the filesystem.
func Load(explicitPath string) (*Config, error) {
	path := explicitPath
	if path == "" {
		path = os.Getenv("BLAZINGJJ_CONFIG")
	}
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path, merged over
// the defaults. ${HOME} and ~/ in path values are expanded for
// portability; no other expansion is performed.
func LoadFile(path string) (*Config, error) {
	configuration := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(configuration); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := configuration.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	configuration.expandPaths()
	return configuration, nil
}

func (configuration *Config) validate() error {
	switch configuration.Layout {
	case "", "horizontal", "vertical":
	default:
		return fmt.Errorf("invalid layout %q (want horizontal or vertical)", configuration.Layout)
	}
	switch configuration.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", configuration.Log.Level)
	}
	if configuration.JJBinary == "" {
		configuration.JJBinary = "jj"
	}
	if configuration.Log.Level == "" {
		configuration.Log.Level = "info"
	}
	return nil
}

// expandPaths expands ${HOME} and a leading ~/ in path-valued fields.
func (configuration *Config) expandPaths() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	expand := func(path string) string {
		path = strings.ReplaceAll(path, "${HOME}", home)
		if strings.HasPrefix(path, "~/") {
			path = home + path[1:]
		}
		return path
	}
	configuration.ThemeFile = expand(configuration.ThemeFile)
	configuration.Log.File = expand(configuration.Log.File)
}
