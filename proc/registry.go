// Package proc implements the isolated-process execution backend: task
// descriptors address functions registered by name, arguments and results
// cross the process boundary as JSON, and each task runs in a re-exec of
// the current binary.
//
// The parent and the child must share one Registry. The usual wiring is to
// build the registry at the top of main and hand it to Worker before
// anything else runs:
//
//	func main() {
//		reg := proc.NewRegistry()
//		proc.Register(reg, "resize", resizeImage)
//		if proc.Worker(reg) {
//			return
//		}
//		// parent path: build a Runner and dispatch Calls
//	}
package proc

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ygrebnov/errorc"
)

// Fn is the boundary shape for registered functions: raw JSON arguments in,
// raw JSON result out. Use Register to adapt typed functions.
type Fn func(ctx context.Context, args json.RawMessage) (json.RawMessage, error)

// Registry maps function names to implementations. It is safe for
// concurrent use, though registration normally happens once at startup,
// before any dispatch.
type Registry struct {
	mu  sync.RWMutex
	fns map[string]Fn
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{fns: make(map[string]Fn)}
}

// RegisterFn registers fn under name. Registering the same name twice
// returns ErrDuplicateFunction.
func (r *Registry) RegisterFn(name string, fn Fn) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.fns[name]; ok {
		return errorc.With(ErrDuplicateFunction, errorc.String("name", name))
	}
	r.fns[name] = fn
	return nil
}

func (r *Registry) lookup(name string) (Fn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.fns[name]
	return fn, ok
}

// Register adapts a typed function to the JSON boundary and registers it
// under name. A must be JSON-unmarshalable and R JSON-marshalable.
func Register[A, R any](r *Registry, name string, fn func(ctx context.Context, args A) (R, error)) error {
	return r.RegisterFn(name, func(ctx context.Context, raw json.RawMessage) (json.RawMessage, error) {
		var args A
		if len(raw) > 0 && string(raw) != "null" {
			if err := json.Unmarshal(raw, &args); err != nil {
				return nil, fmt.Errorf("%w: decoding arguments for %q: %v", ErrNotSerializable, name, err)
			}
		}
		res, err := fn(ctx, args)
		if err != nil {
			return nil, err
		}
		out, err := json.Marshal(res)
		if err != nil {
			return nil, fmt.Errorf("%w: encoding result of %q: %v", ErrNotSerializable, name, err)
		}
		return out, nil
	})
}
