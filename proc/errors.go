package proc

import "errors"

const Namespace = "proc"

var (
	ErrNotSerializable   = errors.New(Namespace + ": task descriptor is not serializable")
	ErrUnknownFunction   = errors.New(Namespace + ": function is not registered")
	ErrDuplicateFunction = errors.New(Namespace + ": function is already registered")
	ErrProcessTerminated = errors.New(Namespace + ": worker process terminated abnormally")
)
