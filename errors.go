package dispatch

import "errors"

const Namespace = "dispatch"

var (
	ErrInvalidConfig = errors.New(Namespace + ": invalid configuration")
	ErrTaskPanicked  = errors.New(Namespace + ": task execution panicked")
	ErrCancelled     = errors.New(Namespace + ": task cancelled before admission")
)
