// Package lifecycle holds shared shutdown constants.
package lifecycle

import "time"

// DefaultTimeout bounds graceful shutdown of servers and infrastructure clients.
const DefaultTimeout = 30 * time.Second
