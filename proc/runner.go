package proc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/google/uuid"
	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/dispatch"
)

// Runner is the process-mode backend: it executes each Call in a re-exec of
// the current binary, one process per task. It implements
// dispatch.Backend[json.RawMessage].
//
// Descriptor-level problems (a task that is not a Call, an unregistered
// name, unmarshalable arguments) fail at admission with a per-task error;
// abnormal child termination is captured as a per-task error carrying the
// exit status and stderr. Neither aborts the batch.
type Runner struct {
	reg    *Registry
	exe    string
	logger *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithRunnerLogger sets the structured logger for spawned workers.
func WithRunnerLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithExecutable overrides the binary re-executed for each task. The
// default is the current executable.
func WithExecutable(path string) RunnerOption {
	return func(r *Runner) { r.exe = path }
}

// NewRunner creates a process-mode backend over reg.
func NewRunner(reg *Registry, opts ...RunnerOption) (*Runner, error) {
	r := &Runner{
		reg:    reg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.exe == "" {
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("%s: resolving executable: %w", Namespace, err)
		}
		r.exe = exe
	}
	return r, nil
}

// Execute ships the descriptor to a child process and returns its result.
// ctx cancellation kills the child; the dispatcher only passes a live batch
// context here, so a running task is never killed by fail-fast.
func (r *Runner) Execute(ctx context.Context, t dispatch.Task[json.RawMessage]) (json.RawMessage, error) {
	c, ok := t.(*Call)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a proc.Call descriptor", ErrNotSerializable, t)
	}
	if c.encErr != nil {
		return nil, c.encErr
	}
	if _, ok := r.reg.lookup(c.name); !ok {
		return nil, errorc.With(ErrUnknownFunction, errorc.String("name", c.name))
	}

	req := request{ID: uuid.NewString(), Fn: c.name, Args: c.args}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding request for %q: %v", ErrNotSerializable, c.name, err)
	}

	log := r.logger.With("invocation_id", req.ID, "fn", c.name)
	log.Debug("spawning worker process")

	cmd := exec.CommandContext(ctx, r.exe)
	cmd.Env = append(os.Environ(), workerEnv+"=1")
	cmd.Stdin = bytes.NewReader(payload)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			log.Debug("worker process terminated abnormally", "state", exitErr.ProcessState.String())
			msg := strings.TrimSpace(stderr.String())
			if msg != "" {
				return nil, fmt.Errorf("%w: %s: %s", ErrProcessTerminated, exitErr.ProcessState, msg)
			}
			return nil, fmt.Errorf("%w: %s", ErrProcessTerminated, exitErr.ProcessState)
		}
		return nil, fmt.Errorf("%w: %v", ErrProcessTerminated, err)
	}

	var resp response
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		return nil, fmt.Errorf("%w: undecodable worker reply: %v", ErrProcessTerminated, err)
	}
	if resp.Error != "" {
		return resp.Value, errors.New(resp.Error)
	}
	log.Debug("worker process finished")
	return resp.Value, nil
}
