// Package delivery defines the transport-facing entry points of the service.
package delivery

import "context"

// Delivery is a long-running transport started by main, such as the HTTP
// server. Serve blocks until the transport stops.
type Delivery interface {
	Serve(ctx context.Context) error
}
