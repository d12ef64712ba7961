// Package testutil provides a scripted in-memory engine for builder
// tests, standing in for a real VM binding.
package testutil

import (
	"context"

	"github.com/martinheidegger/zenroom-go/engine"
)

// Engine implements engine.Engine without a VM. It records every
// dispatched request and lets a test script the VM side of the call.
type Engine struct {
	hooks *engine.Hooks

	// Requests holds every request Exec received, in order.
	Requests []engine.Request

	// ExecErr, when set, is returned by Exec before anything else runs,
	// simulating a boundary failure.
	ExecErr error

	// OnExec, when set, plays the VM: it receives the request and the
	// live hook registry and may fire hooks in any pattern.
	OnExec func(req engine.Request, hooks *engine.Hooks)
}

// NewEngine returns an engine with a fresh default hook registry.
func NewEngine() *Engine {
	return &Engine{hooks: engine.NewHooks()}
}

// Hooks returns the engine's hook registry.
func (e *Engine) Hooks() *engine.Hooks {
	return e.hooks
}

// Exec records the request and runs the scripted VM behavior, if any.
func (e *Engine) Exec(_ context.Context, req engine.Request) error {
	if e.ExecErr != nil {
		return e.ExecErr
	}
	e.Requests = append(e.Requests, req)
	if e.OnExec != nil {
		e.OnExec(req, e.hooks)
	}
	return nil
}

// LastRequest returns the most recently dispatched request, or a zero
// request if none was dispatched.
func (e *Engine) LastRequest() engine.Request {
	if len(e.Requests) == 0 {
		return engine.Request{}
	}
	return e.Requests[len(e.Requests)-1]
}
