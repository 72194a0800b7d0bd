package proc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ygrebnov/errorc"
)

// Call is a serializable task descriptor: a registered function name plus
// its JSON-encoded arguments, captured at construction time. A Call
// implements dispatch.Task[json.RawMessage], so the same descriptor runs
// in-process under the thread backend or in a child process via a Runner.
type Call struct {
	reg  *Registry
	name string
	args json.RawMessage

	// encErr records an argument-marshalling failure at construction so it
	// surfaces as this task's failure outcome, not as a dispatcher error.
	encErr error
}

// Call builds a descriptor addressing the named function with args.
// Arguments are marshalled immediately; a value that cannot be marshalled
// produces a descriptor whose execution fails with ErrNotSerializable.
func (r *Registry) Call(name string, args any) *Call {
	c := &Call{reg: r, name: name}
	raw, err := json.Marshal(args)
	if err != nil {
		c.encErr = fmt.Errorf("%w: encoding arguments for %q: %v", ErrNotSerializable, name, err)
		return c
	}
	c.args = raw
	return c
}

// Name returns the registered function name this call addresses.
func (c *Call) Name() string { return c.name }

// Run executes the call in the current process by looking the function up
// in the registry. This is the thread-mode path; a Runner bypasses Run and
// ships the descriptor to a child process instead.
func (c *Call) Run(ctx context.Context) (json.RawMessage, error) {
	if c.encErr != nil {
		return nil, c.encErr
	}
	fn, ok := c.reg.lookup(c.name)
	if !ok {
		return nil, errorc.With(ErrUnknownFunction, errorc.String("name", c.name))
	}
	return fn(ctx, c.args)
}
