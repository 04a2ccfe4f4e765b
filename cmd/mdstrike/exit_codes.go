package main

import (
	"errors"
	"os"
	"strings"

	"github.com/alnah/go-mdstrike"
	"github.com/alnah/go-mdstrike/internal/config"
	"github.com/alnah/go-mdstrike/internal/hints"
	"github.com/alnah/go-mdstrike/internal/pipeline"
)

// Exit codes for mdstrike CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess     = 0 // Everything formatted, checked or rendered
	ExitGeneral     = 1 // General/unexpected error
	ExitUsage       = 2 // Invalid flags, config, or validation
	ExitIO          = 3 // File not found, permission denied
	ExitUnformatted = 4 // check found files fmt would change, or --verify failed
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidFlag) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, mdstrike.ErrInvalidOption) ||
		errors.Is(err, mdstrike.ErrUnknownConstruct) ||
		errors.Is(err, pipeline.ErrUnknownStyle) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteMarkdown) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Formatting verdicts (exit 4)
	if errors.Is(err, mdstrike.ErrNotFormatted) ||
		errors.Is(err, mdstrike.ErrRoundTrip) {
		return ExitUnformatted
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	var marker *markerError
	switch {
	case errors.As(err, &marker):
		return hints.ForMarker("--"+marker.flag, marker.allowed)
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(strings.Split(err.Error(), ", "))
	case errors.Is(err, pipeline.ErrUnknownStyle):
		return hints.ForStyleNotFound(pipeline.StyleNames())
	case errors.Is(err, mdstrike.ErrRoundTrip):
		return hints.ForRoundTrip()
	case errors.Is(err, mdstrike.ErrNotFormatted):
		return hints.ForNotFormatted()
	}
	return ""
}
