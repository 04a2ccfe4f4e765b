package main

// Notes:
// - exitCodeFor: we test sentinel errors from the root, config and pipeline
//   packages, plus wrapped and joined errors to verify errors.Is() works.
// - hintFor: we test that each hinted error class gets its hint.

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/alnah/go-mdstrike"
	"github.com/alnah/go-mdstrike/internal/config"
	"github.com/alnah/go-mdstrike/internal/pipeline"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Usage/config/validation errors (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"invalid flag", &markerError{flag: "fence", value: "=", allowed: "`~"}, ExitUsage},
		{"invalid workers", ErrInvalidWorkerCount, ExitUsage},
		{"invalid extension", ErrInvalidExtension, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"invalid config value", config.ErrInvalidValue, ExitUsage},
		{"invalid option", mdstrike.ErrInvalidOption, ExitUsage},
		{"unknown style", pipeline.ErrUnknownStyle, ExitUsage},
		{"wrapped config not found", fmt.Errorf("loading config: %w", config.ErrConfigNotFound), ExitUsage},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read markdown", ErrReadMarkdown, ExitIO},
		{"write markdown", ErrWriteMarkdown, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"batch with read failure", fmt.Errorf("%w (1 of 2): %w", ErrBatchFailed, ErrReadMarkdown), ExitIO},

		// Formatting verdicts (exit 4)
		{"not formatted", mdstrike.ErrNotFormatted, ExitUnformatted},
		{"round trip", fmt.Errorf("%w: differs", mdstrike.ErrRoundTrip), ExitUnformatted},

		// I/O wins over a verdict in the same run
		{"joined", errors.Join(ErrReadMarkdown, mdstrike.ErrNotFormatted), ExitIO},

		// General
		{"unknown error", errors.New("boom"), ExitGeneral},
		{"parse error", mdstrike.ErrParse, ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodes_Conventions - Unix exit code conventions
// ---------------------------------------------------------------------------

func TestExitCodes_Conventions(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Error("exit codes 0, 1 and 2 must follow Unix conventions")
	}
	for _, code := range []int{ExitIO, ExitUnformatted} {
		if code >= 126 {
			t.Errorf("exit code %d collides with shell-reserved codes", code)
		}
	}
}

// ---------------------------------------------------------------------------
// TestHintFor - Actionable hints
// ---------------------------------------------------------------------------

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"marker", fmt.Errorf("flags: %w", &markerError{flag: "rule", value: "+", allowed: "*-_"}), "--rule must be one of * - _"},
		{"config", fmt.Errorf("%w: tried a.yaml, /home/u/.config/go-mdstrike/a.yaml", config.ErrConfigNotFound), "or create /home/u/.config/go-mdstrike/a.yaml"},
		{"style", pipeline.ErrUnknownStyle, "available:"},
		{"round trip", mdstrike.ErrRoundTrip, "please report"},
		{"not formatted", mdstrike.ErrNotFormatted, "mdstrike fmt --write"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := hintFor(tt.err); !strings.Contains(got, tt.want) {
				t.Errorf("hintFor() = %q, want it to contain %q", got, tt.want)
			}
		})
	}

	if got := hintFor(errors.New("boom")); got != "" {
		t.Errorf("hintFor(unknown) = %q, want empty", got)
	}
}
