package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdstrike/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidValue    = errors.New("invalid config value")
)

// MaxWorkers caps the worker pool size a config file may request.
const MaxWorkers = 64

// appDir is the directory under the user config dir searched for named
// configs.
const appDir = "go-mdstrike"

// Config holds all configuration for formatting and checking documents.
type Config struct {
	Format  FormatConfig `yaml:"format"`
	Check   CheckConfig  `yaml:"check"`
	HTML    HTMLConfig   `yaml:"html"`
	Workers int          `yaml:"workers"` // 0 = GOMAXPROCS
}

// FormatConfig selects the markers the serializer writes. Empty strings
// keep the serializer defaults.
type FormatConfig struct {
	Quote         string `yaml:"quote"`         // '"' or "'"
	Emphasis      string `yaml:"emphasis"`      // "*" or "_"
	Strong        string `yaml:"strong"`        // "*" or "_"
	Bullet        string `yaml:"bullet"`        // "*", "+" or "-"
	BulletOrdered string `yaml:"bulletOrdered"` // "." or ")"
	Fence         string `yaml:"fence"`         // "`" or "~"
	Rule          string `yaml:"rule"`          // "*", "-" or "_"
	Setext        bool   `yaml:"setext"`
	ResourceLink  bool   `yaml:"resourceLink"`

	// Strikethrough is nil when unset, which means enabled.
	Strikethrough *bool `yaml:"strikethrough"`
}

// StrikethroughEnabled reports whether ~~text~~ is read and written.
func (f FormatConfig) StrikethroughEnabled() bool {
	return f.Strikethrough == nil || *f.Strikethrough
}

// CheckConfig defines options for the check command.
type CheckConfig struct {
	Verify bool `yaml:"verify"` // also compare rendered HTML before and after
}

// HTMLConfig defines options for the html command.
type HTMLConfig struct {
	Style      string `yaml:"style"`      // chroma style for code blocks
	Standalone bool   `yaml:"standalone"` // full document with stylesheet
}

// Validate checks every marker against the characters the serializer
// accepts. Called automatically by LoadConfig, but available for callers
// who build a Config by hand.
func (c *Config) Validate() error {
	markers := []struct {
		field   string
		value   string
		allowed string
	}{
		{"format.quote", c.Format.Quote, `"'`},
		{"format.emphasis", c.Format.Emphasis, "*_"},
		{"format.strong", c.Format.Strong, "*_"},
		{"format.bullet", c.Format.Bullet, "*+-"},
		{"format.bulletOrdered", c.Format.BulletOrdered, ".)"},
		{"format.fence", c.Format.Fence, "`~"},
		{"format.rule", c.Format.Rule, "*-_"},
	}
	for _, m := range markers {
		if err := validateMarker(m.field, m.value, m.allowed); err != nil {
			return err
		}
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Workers)
	}
	return nil
}

// validateMarker checks that value is empty or one of the allowed bytes.
func validateMarker(field, value, allowed string) error {
	if value == "" {
		return nil
	}
	if len(value) != 1 || !strings.Contains(allowed, value) {
		return fmt.Errorf("%w: %s %q (must be one of %q)", ErrInvalidValue, field, value, allowed)
	}
	return nil
}

// DefaultConfig returns a configuration that keeps every serializer
// default.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/go-mdstrike/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, appDir, name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
