package mdstrike

import "runtime"

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps concurrent documents so large batches do not hold
	// every file in memory at once.
	MaxPoolSize = 16
)

// ResolvePoolSize determines the number of documents to process at once.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by servers and CLIs.
func ResolvePoolSize(workers int) int {
	// Explicit value takes priority
	if workers > 0 {
		return workers
	}

	// Formatting is CPU-bound: one worker per available CPU
	// (GOMAXPROCS is adjusted by automaxprocs for containers).
	n := runtime.GOMAXPROCS(0)

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
