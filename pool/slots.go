// Package pool provides the bounded worker-slot pool used by the
// dispatcher: a fixed set of admission tokens, at most capacity of which
// are held at any instant.
package pool

import (
	"context"
	"errors"
)

// ErrStopped is returned by Acquire when admission has been stopped.
var ErrStopped = errors.New("pool: admission stopped")

// Slots is a bounded pool of worker-slot tokens. A task holds exactly one
// slot from admission until its outcome is recorded. Safe for concurrent use.
type Slots struct {
	tokens chan struct{}
}

// New creates a pool holding capacity slots. capacity must be >= 1; the
// caller validates configuration before constructing the pool.
func New(capacity int) *Slots {
	return &Slots{tokens: make(chan struct{}, capacity)}
}

// Acquire blocks until a slot is free, ctx is done, or stop is closed.
// Stop and cancellation take priority over a free slot, so once admission
// has been stopped no further Acquire succeeds.
func (s *Slots) Acquire(ctx context.Context, stop <-chan struct{}) error {
	select {
	case <-stop:
		return ErrStopped
	default:
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	select {
	case s.tokens <- struct{}{}:
		// A stop racing the send must still win: the slot freed by the
		// failing task becomes available in the same moment stop closes.
		select {
		case <-stop:
			<-s.tokens
			return ErrStopped
		default:
			return nil
		}
	case <-stop:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release returns a slot to the pool. It must be called exactly once per
// successful Acquire.
func (s *Slots) Release() {
	<-s.tokens
}

// Cap returns the total number of slots.
func (s *Slots) Cap() int { return cap(s.tokens) }

// InUse returns the number of currently held slots.
func (s *Slots) InUse() int { return len(s.tokens) }
