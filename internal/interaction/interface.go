package interaction

import "context"

// Sink receives interaction records. Implementations must not block for
// long; the emitter calls them from a single background goroutine.
type Sink interface {
	Write(ctx context.Context, rec Record) error
}
