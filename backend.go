package dispatch

import (
	"context"
	"fmt"
)

// Backend is the execution substrate for a single task. It runs the task and
// returns its value or error; it knows nothing about batch policy (ordering,
// fail-fast, outcome recording), which lives entirely in the Dispatcher.
//
// Implementations must be safe for concurrent use: the Dispatcher invokes
// Execute from up to MaxWorkers goroutines at once.
type Backend[R any] interface {
	Execute(ctx context.Context, t Task[R]) (R, error)
}

// Threads returns the shared-memory backend: each task runs in the worker's
// goroutine with panic recovery, so an uncaught panic becomes a failure
// outcome instead of terminating the process.
func Threads[R any]() Backend[R] { return threadBackend[R]{} }

type threadBackend[R any] struct{}

func (threadBackend[R]) Execute(ctx context.Context, t Task[R]) (res R, err error) {
	defer func() {
		if p := recover(); p != nil {
			var zero R
			res, err = zero, fmt.Errorf("%w: %v", ErrTaskPanicked, p)
		}
	}()
	return t.Run(ctx)
}
