package dispatch

import "errors"

// Outcome is the recorded result of one task: either a value or a failure.
// Err == nil means success. Index is the task's position in the submitted
// batch.
type Outcome[R any] struct {
	Index int
	Value R
	Err   error
}

// Failed reports whether the task ended in a failure.
func (o Outcome[R]) Failed() bool { return o.Err != nil }

// Result is the ordered outcome sequence of one batch. Result[i] always
// corresponds to the task submitted at index i, regardless of completion
// order, and len(Result) always equals the number of submitted tasks.
type Result[R any] []Outcome[R]

// Values returns the values of all successful outcomes, in index order.
func (r Result[R]) Values() []R {
	out := make([]R, 0, len(r))
	for _, o := range r {
		if o.Err == nil {
			out = append(out, o.Value)
		}
	}
	return out
}

// Failed returns the outcomes of all failed tasks, in index order.
func (r Result[R]) Failed() []Outcome[R] {
	var out []Outcome[R]
	for _, o := range r {
		if o.Err != nil {
			out = append(out, o)
		}
	}
	return out
}

// Err returns all task failures joined into a single error, or nil if every
// task succeeded. Each joined error carries its task index; see FailedIndex.
func (r Result[R]) Err() error {
	var errs []error
	for _, o := range r {
		if o.Err != nil {
			errs = append(errs, o.Err)
		}
	}
	return errors.Join(errs...)
}
