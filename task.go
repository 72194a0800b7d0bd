package dispatch

import "context"

// Task is a unit of work submitted to a Dispatcher. It is identified by its
// position in the submitted slice, not by any user-supplied key, and must
// not be mutated after submission.
type Task[R any] interface {
	Run(ctx context.Context) (R, error)
}

// TaskFunc adapts func(ctx) (R, error) to Task[R].
type TaskFunc[R any] func(context.Context) (R, error)

func (f TaskFunc[R]) Run(ctx context.Context) (R, error) { return f(ctx) }

// ValueTask adapts func(ctx) R to Task[R] for work that cannot fail.
func ValueTask[R any](fn func(context.Context) R) Task[R] {
	return TaskFunc[R](func(ctx context.Context) (R, error) { return fn(ctx), nil })
}
