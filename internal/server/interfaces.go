package server

import "context"

// Server defines the lifecycle contract for servers managed by this package.
type Server interface {
	// Run starts serving requests and blocks until ctx is cancelled or the
	// listener fails. A graceful stop returns nil.
	Run(ctx context.Context) error
}
