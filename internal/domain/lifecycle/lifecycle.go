// Package lifecycle holds shared timing constants for component start and stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds startup probes and graceful shutdown of a single component.
const DefaultTimeout = 10 * time.Second
