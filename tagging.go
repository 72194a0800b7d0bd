package dispatch

import (
	"errors"
	"fmt"
)

// FailureError exposes correlation metadata for a task failure.
type FailureError interface {
	error
	Unwrap() error
	TaskIndex() int
}

type indexedError struct {
	err   error
	index int
}

func newIndexedError(err error, index int) error {
	if err == nil {
		return nil
	}
	return &indexedError{err: err, index: index}
}

func (e *indexedError) Error() string  { return e.err.Error() }
func (e *indexedError) Unwrap() error  { return e.err }
func (e *indexedError) TaskIndex() int { return e.index }

func (e *indexedError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprintf(s, "task(index=%d): %+v", e.index, e.err)
			return
		}
		fallthrough
	case 's':
		_, _ = fmt.Fprint(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}

// FailedIndex returns the submission index carried by err, if present.
func FailedIndex(err error) (int, bool) {
	var fe FailureError
	if errors.As(err, &fe) {
		return fe.TaskIndex(), true
	}
	return 0, false
}
