package proc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Worker serves a single call request when the process was spawned by a
// Runner, reading the request envelope from stdin and writing the response
// to stdout. It returns true if it ran, in which case the caller must
// return from main (or TestMain) immediately; it returns false in a normal
// parent process.
//
// A panic in the registered function is deliberately not recovered: it
// crashes the worker with a non-zero exit, which the Runner reports as an
// abnormal termination. That is the isolation the process backend exists
// to provide.
func Worker(reg *Registry) bool {
	if os.Getenv(workerEnv) == "" {
		return false
	}
	if err := serve(reg, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return true
}

func serve(reg *Registry, in io.Reader, out io.Writer) error {
	var req request
	if err := json.NewDecoder(in).Decode(&req); err != nil {
		return fmt.Errorf("%s: decoding request: %w", Namespace, err)
	}

	resp := response{ID: req.ID}
	fn, ok := reg.lookup(req.Fn)
	if !ok {
		resp.Error = fmt.Sprintf("%v: %q", ErrUnknownFunction, req.Fn)
	} else if val, err := fn(context.Background(), req.Args); err != nil {
		resp.Error = err.Error()
	} else {
		resp.Value = val
	}

	if err := json.NewEncoder(out).Encode(resp); err != nil {
		return fmt.Errorf("%s: encoding response: %w", Namespace, err)
	}
	return nil
}
