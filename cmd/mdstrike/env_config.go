package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-mdstrike/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MDSTRIKE_CONFIG: config file name or path
	Style      string // MDSTRIKE_STYLE: code highlighting style
	Workers    int    // MDSTRIKE_WORKERS: parallel workers
	Verify     bool   // MDSTRIKE_VERIFY: compare rendered HTML
}

// knownEnvVars lists valid MDSTRIKE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDSTRIKE_CONFIG":  true,
	"MDSTRIKE_STYLE":   true,
	"MDSTRIKE_WORKERS": true,
	"MDSTRIKE_VERIFY":  true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and booleans are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("MDSTRIKE_CONFIG"),
		Style:      getenv("MDSTRIKE_STYLE"),
	}

	if workers := getenv("MDSTRIKE_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	if verify := getenv("MDSTRIKE_VERIFY"); verify != "" {
		if v, err := strconv.ParseBool(verify); err == nil {
			cfg.Verify = v
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MDSTRIKE_* variables.
// Helps catch typos like MDSTRIKE_WORKER instead of MDSTRIKE_WORKERS.
func warnUnknownEnvVars(w io.Writer, environ func() []string) {
	for _, env := range environ() {
		if strings.HasPrefix(env, "MDSTRIKE_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" && cfg.HTML.Style == "" {
		cfg.HTML.Style = env.Style
	}
	if env.Workers > 0 && cfg.Workers == 0 {
		cfg.Workers = env.Workers
	}
	if env.Verify {
		cfg.Check.Verify = true
	}
}
