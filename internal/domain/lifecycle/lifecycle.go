// Package lifecycle holds shared timeouts for start and stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds pings, graceful shutdowns and other lifecycle hooks.
const DefaultTimeout = 10 * time.Second
