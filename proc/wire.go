package proc

import "encoding/json"

// workerEnv marks a process as a dispatch worker. Worker serves one request
// when it is set; a Runner sets it on every child it spawns.
const workerEnv = "DISPATCH_PROC_WORKER"

// request is the envelope a Runner writes to a child's stdin.
type request struct {
	ID   string          `json:"id"`
	Fn   string          `json:"fn"`
	Args json.RawMessage `json:"args,omitempty"`
}

// response is the envelope a child writes to stdout. A task-level error is
// carried in Error with exit status 0, which keeps it distinguishable from
// an abnormal termination of the worker process itself.
type response struct {
	ID    string          `json:"id"`
	Value json.RawMessage `json:"value,omitempty"`
	Error string          `json:"error,omitempty"`
}
