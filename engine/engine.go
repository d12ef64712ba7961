// Package engine defines the boundary between the zenroom builder and a
// Zencode virtual machine: the fixed-arity request crossing it, the Engine
// contract a binding implements, and the Hooks registry through which the
// VM reports output and completion back to the caller.
package engine

import "context"

// Verbosity levels understood by the VM's diagnostic channel.
const (
	// VerbosityInfo is the default, informational level.
	VerbosityInfo = 1
	// VerbosityVerbose adds per-statement tracing.
	VerbosityVerbose = 2
	// VerbosityDebug is the most detailed level.
	VerbosityDebug = 3
)

// Request carries the five scalar fields of one execution across the
// foreign-call boundary. Pointer fields distinguish "absent" from "empty":
// a nil Conf, Keys or Data is passed to the VM as absent, never as an
// empty string. Keys and Data are already serialized to their canonical
// text form by the time a Request is built.
type Request struct {
	Script    string
	Conf      *string
	Keys      *string
	Data      *string
	Verbosity int
}

// Engine is one binding to a Zencode virtual machine.
//
// Exec issues exactly one call to the VM entry point with the given
// request. Output and the terminal outcome are delivered through the
// binding's Hooks, not through the return value: a nil error means the
// call was issued and the entry point returned control, not that the
// execution has completed or that no further hook will fire. A non-nil
// error reports a boundary failure (missing export, guest memory fault,
// trapped runtime) outside the VM's own success/failure reporting.
type Engine interface {
	Exec(ctx context.Context, req Request) error
	Hooks() *Hooks
}
