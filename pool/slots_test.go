package pool

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSlots_CapAndInUse(t *testing.T) {
	t.Parallel()

	s := New(3)
	if s.Cap() != 3 || s.InUse() != 0 {
		t.Fatalf("Cap/InUse = %d/%d; want 3/0", s.Cap(), s.InUse())
	}

	stop := make(chan struct{})
	for i := 0; i < 3; i++ {
		if err := s.Acquire(context.Background(), stop); err != nil {
			t.Fatalf("Acquire %d: %v", i, err)
		}
	}
	if s.InUse() != 3 {
		t.Fatalf("InUse = %d; want 3", s.InUse())
	}
	s.Release()
	if s.InUse() != 2 {
		t.Fatalf("InUse after Release = %d; want 2", s.InUse())
	}
}

func TestSlots_AcquireBlocksUntilRelease(t *testing.T) {
	t.Parallel()

	s := New(1)
	stop := make(chan struct{})
	if err := s.Acquire(context.Background(), stop); err != nil {
		t.Fatalf("first Acquire: %v", err)
	}

	acquired := make(chan error, 1)
	go func() { acquired <- s.Acquire(context.Background(), stop) }()

	select {
	case err := <-acquired:
		t.Fatalf("second Acquire returned %v before Release", err)
	case <-time.After(20 * time.Millisecond):
	}

	s.Release()
	select {
	case err := <-acquired:
		if err != nil {
			t.Fatalf("second Acquire after Release: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("second Acquire did not proceed after Release")
	}
}

func TestSlots_StopUnblocksAcquire(t *testing.T) {
	t.Parallel()

	s := New(1)
	stop := make(chan struct{})
	_ = s.Acquire(context.Background(), stop)

	acquired := make(chan error, 1)
	go func() { acquired <- s.Acquire(context.Background(), stop) }()

	close(stop)
	select {
	case err := <-acquired:
		if !errors.Is(err, ErrStopped) {
			t.Fatalf("Acquire after stop = %v; want ErrStopped", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Acquire did not observe stop")
	}
}

func TestSlots_StopWinsOverFreeSlot(t *testing.T) {
	t.Parallel()

	s := New(2)
	stop := make(chan struct{})
	close(stop)

	if err := s.Acquire(context.Background(), stop); !errors.Is(err, ErrStopped) {
		t.Fatalf("Acquire with closed stop = %v; want ErrStopped", err)
	}
	if s.InUse() != 0 {
		t.Fatalf("InUse = %d; a stopped Acquire must not hold a slot", s.InUse())
	}
}

func TestSlots_ContextCancellation(t *testing.T) {
	t.Parallel()

	s := New(1)
	stop := make(chan struct{})
	_ = s.Acquire(context.Background(), stop)

	ctx, cancel := context.WithCancel(context.Background())
	acquired := make(chan error, 1)
	go func() { acquired <- s.Acquire(ctx, stop) }()

	cancel()
	select {
	case err := <-acquired:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Acquire after cancel = %v; want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Acquire did not observe cancellation")
	}
}
