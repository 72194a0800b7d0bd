package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/dispatch/metrics"
	"github.com/ygrebnov/dispatch/pool"
)

// Dispatcher executes batches of tasks against a bounded worker-slot pool.
// It holds configuration only; all per-batch state (slots, admission stop,
// inflight accounting) is scoped to a single Dispatch call, so one
// Dispatcher may be reused and is safe for concurrent Dispatch calls.
type Dispatcher[R any] struct {
	cfg     config
	backend Backend[R]

	mTasks     metrics.Counter
	mFailures  metrics.Counter
	mCancelled metrics.Counter
	mInflight  metrics.UpDownCounter
	mDuration  metrics.Histogram
}

// New creates a Dispatcher from functional options. It returns
// ErrInvalidConfig for out-of-range MaxWorkers, process mode without a
// backend, or a process backend whose result type does not match R.
func New[R any](opts ...Option) (*Dispatcher[R], error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	b := Threads[R]()
	if cfg.mode == ModeProcess {
		typed, ok := cfg.backend.(Backend[R])
		if !ok {
			return nil, errorc.With(ErrInvalidConfig,
				errorc.String("", fmt.Sprintf("process backend %T does not produce the dispatcher result type", cfg.backend)))
		}
		b = typed
	}

	m := cfg.metrics
	return &Dispatcher[R]{
		cfg:     cfg,
		backend: b,

		mTasks:     m.Counter("dispatch_tasks_total", metrics.WithDescription("Tasks admitted for execution.")),
		mFailures:  m.Counter("dispatch_failures_total", metrics.WithDescription("Tasks that ended in a failure outcome.")),
		mCancelled: m.Counter("dispatch_cancelled_total", metrics.WithDescription("Tasks never admitted due to fail-fast or caller cancellation.")),
		mInflight:  m.UpDownCounter("dispatch_inflight", metrics.WithDescription("Tasks currently executing.")),
		mDuration:  m.Histogram("dispatch_task_seconds", metrics.WithUnit("seconds"), metrics.WithDescription("Per-task execution duration.")),
	}, nil
}

// Dispatch runs the batch and blocks until every index has a recorded
// outcome. The returned Result has exactly len(tasks) entries, Result[i]
// corresponding to tasks[i] regardless of completion order. Per-task
// failures (errors, panics, process crashes, fail-fast cancellation) are
// captured in outcomes and never returned as a call error.
//
// Cancelling ctx stops admission of not-yet-started tasks (recorded as
// ErrCancelled failures); tasks already running are allowed to finish.
func (d *Dispatcher[R]) Dispatch(ctx context.Context, tasks []Task[R]) Result[R] {
	res := make(Result[R], len(tasks))
	if len(tasks) == 0 {
		return res
	}

	log := d.cfg.logger.With(
		"batch_id", uuid.NewString(),
		"mode", d.cfg.mode.String(),
		"tasks", len(tasks),
		"max_workers", d.cfg.maxWorkers,
	)
	log.Debug("dispatching batch")

	slots := pool.New(d.cfg.maxWorkers)

	// stop is closed on the first failure when failFast is enabled. It only
	// halts admission; running tasks are never interrupted through it.
	stop := make(chan struct{})
	var stopOnce sync.Once
	trip := func() { stopOnce.Do(func() { close(stop) }) }

	var inflight sync.WaitGroup
	for i := range tasks {
		if err := slots.Acquire(ctx, stop); err != nil {
			res[i] = Outcome[R]{Index: i, Err: newIndexedError(fmt.Errorf("%w: %w", ErrCancelled, err), i)}
			d.mCancelled.Add(1)
			continue
		}

		d.mTasks.Add(1)
		d.mInflight.Add(1)
		inflight.Add(1)
		go func(i int, t Task[R]) {
			defer inflight.Done()
			defer d.mInflight.Add(-1)
			defer slots.Release()

			started := time.Now()
			v, err := d.backend.Execute(ctx, t)
			d.mDuration.Record(time.Since(started).Seconds())

			if err != nil {
				// Record the failure and trip admission before the slot is
				// released, so no later task can slip in under fail-fast.
				res[i] = Outcome[R]{Index: i, Err: newIndexedError(err, i)}
				d.mFailures.Add(1)
				if d.cfg.failFast {
					trip()
				}
				log.Debug("task failed", "index", i, "error", err)
				return
			}
			res[i] = Outcome[R]{Index: i, Value: v}
		}(i, tasks[i])
	}

	inflight.Wait()
	log.Debug("batch complete", "failed", len(res.Failed()))
	return res
}
