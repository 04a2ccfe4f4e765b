// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "go-mdstrike") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForNotFormatted returns the hint printed when check finds unformatted
// files.
func ForNotFormatted() string {
	return format("run 'mdstrike fmt --write' to rewrite them")
}

// ForRoundTrip returns the hint printed when reformatting would change how
// a document renders.
func ForRoundTrip() string {
	return format("the formatter changed the rendered HTML; please report the input")
}

// ForStyleNotFound returns hints for highlighting style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForMarker returns hints for an invalid marker flag or config value.
func ForMarker(field, allowed string) string {
	chars := make([]string, 0, len(allowed))
	for _, c := range allowed {
		chars = append(chars, string(c))
	}
	return format(field + " must be one of " + strings.Join(chars, " "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
