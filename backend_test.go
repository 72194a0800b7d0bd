package dispatch

import (
	"context"
	"errors"
	"testing"
)

func TestThreads_Execute(t *testing.T) {
	t.Parallel()

	b := Threads[int]()
	v, err := b.Execute(context.Background(), ValueTask(func(ctx context.Context) int { return 42 }))
	if err != nil || v != 42 {
		t.Fatalf("Execute = (%d, %v); want (42, nil)", v, err)
	}
}

func TestThreads_Execute_PanicBecomesError(t *testing.T) {
	t.Parallel()

	b := Threads[int]()
	v, err := b.Execute(context.Background(), TaskFunc[int](func(ctx context.Context) (int, error) {
		panic("boom")
	}))
	if !errors.Is(err, ErrTaskPanicked) {
		t.Fatalf("error = %v; want ErrTaskPanicked", err)
	}
	if v != 0 {
		t.Fatalf("value = %d; want zero value on panic", v)
	}
}
