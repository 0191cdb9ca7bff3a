// Package delivery defines the interface every transport entrypoint implements.
package delivery

import "context"

// Delivery is a long-running transport (HTTP server, worker loop) started
// by the application container.
type Delivery interface {
	// Serve blocks until the delivery stops or the context is canceled.
	Serve(ctx context.Context) error
}
