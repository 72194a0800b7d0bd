package dispatch

import (
	"io"
	"log/slog"
	"runtime"
	"strconv"

	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/dispatch/metrics"
)

// Mode selects the execution backend for a Dispatcher.
type Mode int

const (
	// ModeThread runs each task in a goroutine of the calling process.
	ModeThread Mode = iota

	// ModeProcess runs each task in a separate OS process. Requires a
	// process backend; see WithProcessBackend and package proc.
	ModeProcess
)

func (m Mode) String() string {
	switch m {
	case ModeThread:
		return "thread"
	case ModeProcess:
		return "process"
	default:
		return "unknown"
	}
}

// config holds Dispatcher configuration assembled from options.
type config struct {
	// mode selects the execution backend. Default: ModeThread.
	mode Mode

	// maxWorkers bounds concurrently active task executions.
	// Default: runtime.GOMAXPROCS(0). Must be >= 1.
	maxWorkers int

	// failFast stops admission of new tasks after the first failure.
	// Default: false (all tasks run to completion regardless of failures).
	failFast bool

	// backend holds the process-mode backend (stored as any because config
	// is not generic; New re-types it for the Dispatcher's result type).
	backend any

	// logger receives per-batch structured logs. Default: discard.
	logger *slog.Logger

	// metrics constructs the Dispatcher's instruments. Default: no-op.
	metrics metrics.Provider
}

func defaultConfig() config {
	return config{
		mode:       ModeThread,
		maxWorkers: runtime.GOMAXPROCS(0),
		failFast:   false,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics:    metrics.NewNoopProvider(),
	}
}

// validateConfig checks invariants that options alone cannot enforce.
func validateConfig(cfg *config) error {
	if cfg.maxWorkers < 1 {
		return errorc.With(ErrInvalidConfig, errorc.String("max_workers", strconv.Itoa(cfg.maxWorkers)))
	}
	if cfg.mode == ModeProcess && cfg.backend == nil {
		return errorc.With(ErrInvalidConfig, errorc.String("", "process mode requires a backend"))
	}
	return nil
}

// Option configures a Dispatcher. Use New(opts...) to construct one.
type Option func(*config) error

// WithMaxWorkers bounds the number of concurrently active tasks (must be >= 1).
func WithMaxWorkers(n int) Option {
	return func(cfg *config) error {
		if n < 1 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithMaxWorkers requires n >= 1"))
		}
		cfg.maxWorkers = n
		return nil
	}
}

// WithFailFast stops admitting new tasks after the first task failure.
// Tasks already running still finish and report their real outcomes.
func WithFailFast() Option {
	return func(cfg *config) error { cfg.failFast = true; return nil }
}

// WithProcessBackend selects process mode using the given backend.
// Package proc provides the standard implementation for R = json.RawMessage.
func WithProcessBackend[R any](b Backend[R]) Option {
	return func(cfg *config) error {
		if b == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithProcessBackend requires a non-nil backend"))
		}
		cfg.mode = ModeProcess
		cfg.backend = b
		return nil
	}
}

// WithLogger sets the structured logger used for per-batch logging.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *config) error {
		if l != nil {
			cfg.logger = l
		}
		return nil
	}
}

// WithMetrics sets the metrics provider used to record dispatch instruments.
func WithMetrics(p metrics.Provider) Option {
	return func(cfg *config) error {
		if p != nil {
			cfg.metrics = p
		}
		return nil
	}
}
