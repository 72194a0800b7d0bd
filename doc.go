// Package dispatch executes a batch of independent tasks concurrently and
// returns one outcome per task, index-aligned with the input.
//
// A Dispatcher is configured once via functional options and holds no state
// across batches. Each Dispatch call allocates a bounded pool of worker
// slots, admits tasks in submission order, and blocks until every index has
// a recorded outcome. Completion order is unspecified; output order is
// always submission order.
//
// Failure isolation
// A task failure (returned error, panic, or abnormal process termination)
// is captured as that task's outcome and never aborts sibling tasks or the
// Dispatch call itself. The only call-level error is ErrInvalidConfig,
// reported by New before any task runs.
//
// Backends
//   - Threads (default): each task runs in a goroutine of the calling
//     process, sharing memory. Suitable for I/O-bound work.
//   - Process (package proc): each task runs in a separate OS process.
//     Descriptors must be serializable; see proc.Registry and proc.Runner.
//
// Fail-fast
// With WithFailFast, the first failure stops admission of further tasks.
// Tasks already running are allowed to finish and report their real
// outcomes; tasks never admitted are recorded as ErrCancelled failures.
// Running tasks are never forcibly interrupted.
package dispatch
