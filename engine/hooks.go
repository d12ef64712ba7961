package engine

import (
	"fmt"
	"os"
)

// PrintHook receives one chunk of program or diagnostic output. It may be
// invoked zero or more times during one execution.
type PrintHook func(line string)

// SuccessHook marks the successful completion of one execution.
type SuccessHook func()

// FailureHook marks the failed completion of one execution and receives
// the VM's diagnostic text. For any single execution, exactly one of the
// success and failure hooks fires, at most once.
type FailureHook func(diagnostic string)

// Hooks is the callback registry of one engine binding: a single slot per
// hook kind. Setting a slot immediately replaces what the VM invokes on
// its next print, success or failure event; there is no queueing and no
// per-call isolation. Because the slots are shared across executions, a
// hook installed between dispatch and completion receives the earlier
// execution's events. Run at most one execution per binding at a time.
type Hooks struct {
	print   PrintHook
	success SuccessHook
	failure FailureHook
}

// NewHooks returns a registry with the factory defaults installed: print
// writes each line to standard output, success and failure do nothing.
func NewHooks() *Hooks {
	h := &Hooks{}
	h.Reset()
	return h
}

// Reset restores all three slots to their factory defaults. It is
// idempotent.
func (h *Hooks) Reset() {
	h.print = defaultPrint
	h.success = func() {}
	h.failure = func(string) {}
}

// SetPrint installs fn as the output hook. Panics if fn is nil; use Reset
// to restore the default.
func (h *Hooks) SetPrint(fn PrintHook) {
	if fn == nil {
		panic("engine: nil print hook")
	}
	h.print = fn
}

// SetSuccess installs fn as the success hook. Panics if fn is nil; use
// Reset to restore the default.
func (h *Hooks) SetSuccess(fn SuccessHook) {
	if fn == nil {
		panic("engine: nil success hook")
	}
	h.success = fn
}

// SetFailure installs fn as the failure hook. Panics if fn is nil; use
// Reset to restore the default.
func (h *Hooks) SetFailure(fn FailureHook) {
	if fn == nil {
		panic("engine: nil failure hook")
	}
	h.failure = fn
}

// Print invokes the current output hook with one chunk of text.
func (h *Hooks) Print(line string) {
	h.print(line)
}

// Success invokes the current success hook.
func (h *Hooks) Success() {
	h.success()
}

// Failure invokes the current failure hook with the VM's diagnostic text.
func (h *Hooks) Failure(diagnostic string) {
	h.failure(diagnostic)
}

func defaultPrint(line string) {
	fmt.Fprintln(os.Stdout, line)
}
