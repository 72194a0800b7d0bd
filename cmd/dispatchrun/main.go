// Command dispatchrun executes a manifest of shell commands as one batch,
// in thread or process mode, and reports a per-command outcome.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ygrebnov/dispatch"
	"github.com/ygrebnov/dispatch/internal/manifest"
	"github.com/ygrebnov/dispatch/metrics"
	"github.com/ygrebnov/dispatch/proc"
)

type shellArgs struct {
	Command string `json:"command"`
}

// runShell executes one manifest command through bash and returns its
// combined output. Failures carry the trimmed stderr for diagnosis.
func runShell(ctx context.Context, args shellArgs) (string, error) {
	cmd := exec.CommandContext(ctx, "bash", "-c", args.Command)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return stdout.String(), fmt.Errorf("shell command failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

func main() {
	reg := proc.NewRegistry()
	if err := proc.Register(reg, "shell", runShell); err != nil {
		log.Fatalf("registering shell function: %v", err)
	}
	// Child-process path: serve one call and exit.
	if proc.Worker(reg) {
		return
	}

	path := flag.String("manifest", "dispatch.yaml", "path to the batch manifest")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	m, err := manifest.Load(*path)
	if err != nil {
		log.Fatalf("loading manifest: %v", err)
	}

	promReg := prometheus.NewRegistry()
	opts := []dispatch.Option{
		dispatch.WithMaxWorkers(m.MaxWorkers),
		dispatch.WithLogger(logger),
		dispatch.WithMetrics(metrics.NewPromProvider(promReg)),
	}
	if m.FailFast {
		opts = append(opts, dispatch.WithFailFast())
	}
	if m.Mode == "process" {
		runner, err := proc.NewRunner(reg, proc.WithRunnerLogger(logger))
		if err != nil {
			log.Fatalf("creating process runner: %v", err)
		}
		opts = append(opts, dispatch.WithProcessBackend[json.RawMessage](runner))
	}

	d, err := dispatch.New[json.RawMessage](opts...)
	if err != nil {
		log.Fatalf("configuring dispatcher: %v", err)
	}

	tasks := make([]dispatch.Task[json.RawMessage], len(m.Commands))
	for i, c := range m.Commands {
		tasks[i] = reg.Call("shell", shellArgs{Command: c.Run})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res := d.Dispatch(ctx, tasks)

	failed := 0
	for i, o := range res {
		name := m.Commands[i].Name
		if o.Err != nil {
			failed++
			fmt.Printf("FAIL %-20s %v\n", name, o.Err)
			continue
		}
		var out string
		if err := json.Unmarshal(o.Value, &out); err != nil {
			out = string(o.Value)
		}
		fmt.Printf("OK   %-20s %s\n", name, strings.TrimSpace(out))
	}

	mfs, err := promReg.Gather()
	if err == nil {
		for _, mf := range mfs {
			for _, mt := range mf.GetMetric() {
				switch {
				case mt.GetCounter() != nil:
					logger.Info("metric", "name", mf.GetName(), "value", mt.GetCounter().GetValue())
				case mt.GetGauge() != nil:
					logger.Info("metric", "name", mf.GetName(), "value", mt.GetGauge().GetValue())
				}
			}
		}
	}

	if failed > 0 {
		logger.Error("batch finished with failures", "failed", failed, "total", len(res))
		os.Exit(1)
	}
	logger.Info("batch finished", "total", len(res))
}
