// Package runcount persists the guest session's simulation run counter in
// the client-local database so it survives restarts. The counter is local
// bookkeeping only and is never sent to the remote service.
package runcount

import "context"

type Repository interface {
	// Count returns the current number of accounted guest runs.
	Count(ctx context.Context) (int, error)
	// Increment advances the counter by one and returns the new value.
	Increment(ctx context.Context) (int, error)
	// Reset zeroes the counter.
	Reset(ctx context.Context) error
}
