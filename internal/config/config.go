// Package config provides configuration loading for symfind.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultDir is the configuration directory under the user's home.
	DefaultDir = ".symfind"
	// ConfigFile is the configuration file name.
	ConfigFile = "config.yaml"

	envConfigDir = "SYMFIND_CONFIG"
	envDebugDirs = "SYMFIND_DEBUG_FILE_DIRECTORIES"
	envLogLevel  = "SYMFIND_LOG_LEVEL"
)

// Config represents ~/.symfind/config.yaml.
type Config struct {
	// DebugFileDirectories lists the directories probed for
	// .build-id/xx/rest.debug files, in order. Empty means the single
	// platform default directory.
	DebugFileDirectories []string `yaml:"debug_file_directories,omitempty"`

	Log LogConfig `yaml:"log,omitempty"`
}

// LogConfig contains logging preferences.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Pretty *bool  `yaml:"pretty,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "warn"},
	}
}

// Loader resolves and reads the configuration file.
type Loader struct {
	baseDir string
}

// NewLoader creates a config loader. The base directory is resolved in
// this order:
//  1. SYMFIND_CONFIG environment variable.
//  2. User home directory.
//  3. The OS temp directory (containerized environments without a home).
//
// The loader never fails: with no home directory, Load still returns
// defaults with environment overrides applied.
func NewLoader() *Loader {
	if baseDir := os.Getenv(envConfigDir); baseDir != "" {
		return &Loader{baseDir: baseDir}
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return &Loader{baseDir: homeDir}
	}
	return &Loader{baseDir: os.TempDir()}
}

// Path returns the path of the configuration file.
func (l *Loader) Path() string {
	return filepath.Join(l.baseDir, DefaultDir, ConfigFile)
}

// Load reads the configuration file and applies environment overrides.
// A missing file is not an error; a present but unparsable file is.
func (l *Loader) Load() (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(l.Path())
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Defaults plus env overrides.
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", l.Path(), err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", l.Path(), err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

// applyEnv layers environment variables over the file contents.
// SYMFIND_DEBUG_FILE_DIRECTORIES is colon-separated, like PATH.
func applyEnv(cfg *Config) {
	if dirs := os.Getenv(envDebugDirs); dirs != "" {
		cfg.DebugFileDirectories = cfg.DebugFileDirectories[:0]
		for _, d := range strings.Split(dirs, ":") {
			if d != "" {
				cfg.DebugFileDirectories = append(cfg.DebugFileDirectories, d)
			}
		}
	}
	if level := os.Getenv(envLogLevel); level != "" {
		cfg.Log.Level = level
	}
}
