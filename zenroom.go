// Package zenroom provides chainable Go bindings for driving a Zencode
// virtual machine through a single fixed-arity entry point.
//
// A Zenroom builder accumulates one execution request — script, optional
// key material, optional data, an opaque configuration string and a
// verbosity level — plus three callback hooks for output, success and
// failure. Exec hands the accumulated state to an engine binding (see the
// engine and engine/wasmvm packages) in one foreign call; the outcome
// comes back through the hooks, never through a return value.
//
// Every method returns the builder, so calls compose in any order:
//
//	z := zenroom.New(vm)
//	z.Zencode(script).
//	    Keys(map[string]any{"keyring": kr}).
//	    Print(func(line string) { fmt.Println(line) }).
//	    Exec(ctx)
//
// The builder is not safe for concurrent use, and because the hook
// registry is a single slot per kind on the engine binding, at most one
// execution should be in flight per binding at a time.
package zenroom

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/martinheidegger/zenroom-go/engine"
)

// DefaultVerbosity is the informational diagnostic level the VM starts at.
const DefaultVerbosity = engine.VerbosityInfo

// Zenroom accumulates the configuration of one execution request and
// dispatches it to an engine binding. Methods chain: every setter mutates
// the same instance and returns it, and the last write to a field wins.
// The zero value is not usable; construct with New.
type Zenroom struct {
	eng   engine.Engine
	state engine.Request
	store Options // persistent Init store, merged across Init calls
	err   error   // sticky, see Err
}

// New returns a builder bound to eng with the factory defaults applied:
// empty script, no conf, keys or data, verbosity 1, output printed to
// standard output, success and failure no-ops.
func New(eng engine.Engine) *Zenroom {
	z := &Zenroom{eng: eng}
	return z.Reset()
}

// Zencode sets the script to execute.
func (z *Zenroom) Zencode(script string) *Zenroom {
	z.state.Script = script
	return z
}

// Conf sets the configuration string handed to the VM unexamined, for
// example to select a memory manager. Reset or Init clear it back to
// absent.
func (z *Zenroom) Conf(conf string) *Zenroom {
	z.state.Conf = &conf
	return z
}

// Keys sets the key material for the next execution. Strings, byte slices
// and json.RawMessage pass through verbatim; nil clears the field; any
// other value is serialized to its canonical JSON text, since the VM entry
// point accepts only text. A value that cannot be serialized records a
// sticky error (see Err) and leaves the field absent.
func (z *Zenroom) Keys(v any) *Zenroom {
	z.state.Keys = z.serialize("keys", v)
	return z
}

// Data sets the free-form data for the next execution, with the same
// serialization rules as Keys.
func (z *Zenroom) Data(v any) *Zenroom {
	z.state.Data = z.serialize("data", v)
	return z
}

// Verbosity sets the VM's diagnostic output level. See the engine
// package's Verbosity constants.
func (z *Zenroom) Verbosity(n int) *Zenroom {
	z.state.Verbosity = n
	return z
}

// Print installs fn as the output hook. The hook takes effect in the
// binding's registry immediately, not at the next Exec, and replaces any
// previously installed output hook. Panics if fn is nil.
func (z *Zenroom) Print(fn engine.PrintHook) *Zenroom {
	z.eng.Hooks().SetPrint(fn)
	return z
}

// Success installs fn as the success hook, effective immediately. Panics
// if fn is nil.
func (z *Zenroom) Success(fn engine.SuccessHook) *Zenroom {
	z.eng.Hooks().SetSuccess(fn)
	return z
}

// Error installs fn as the failure hook, effective immediately. Panics if
// fn is nil. The method name mirrors the error() callback of the original
// binding surface; the returned value is the builder, not an error.
func (z *Zenroom) Error(fn engine.FailureHook) *Zenroom {
	z.eng.Hooks().SetFailure(fn)
	return z
}

// Init merges opts into the builder's persistent option store and then
// re-derives the whole execution state from the merged result, filling
// every absent field with its documented default. Fields absent from opts
// keep whatever an earlier Init stored, so repeated Init calls
// reconfigure progressively; fields absent from the store fall back to
// the same defaults New applies. All three hook slots are re-registered:
// a stored hook is installed, an absent one reverts to its factory
// default. Invalid options record a sticky error and leave the state
// untouched.
func (z *Zenroom) Init(opts Options) *Zenroom {
	merged := merge(z.store, opts)
	if err := merged.validate(); err != nil {
		z.err = err
		return z
	}
	r, err := merged.withDefaults()
	if err != nil {
		z.err = fmt.Errorf("zenroom: init: %w", err)
		return z
	}
	z.store = merged

	z.state = engine.Request{
		Script:    r.script,
		Conf:      r.conf,
		Keys:      r.keys,
		Data:      r.data,
		Verbosity: r.verbosity,
	}

	hooks := z.eng.Hooks()
	hooks.Reset()
	if r.print != nil {
		hooks.SetPrint(r.print)
	}
	if r.success != nil {
		hooks.SetSuccess(r.success)
	}
	if r.failure != nil {
		hooks.SetFailure(r.failure)
	}
	return z
}

// Exec issues exactly one call to the engine with the current state and
// returns the builder immediately. Output and the terminal outcome arrive
// through the registered hooks — exactly one of success or failure fires,
// at most once, after zero or more output events. The return value only
// supports further chaining and says nothing about completion; in
// particular it does not guarantee the execution has finished. A second
// Exec with no intervening setters re-sends the same state.
//
// While a sticky error is set (see Err), Exec does not dispatch. A
// boundary failure reported by the engine (missing export, trapped
// runtime) becomes the sticky error; failures of the script itself are
// reported through the failure hook instead.
func (z *Zenroom) Exec(ctx context.Context) *Zenroom {
	if z.err != nil {
		return z
	}
	if err := z.eng.Exec(ctx, z.state); err != nil {
		z.err = fmt.Errorf("zenroom: exec: %w", err)
	}
	return z
}

// Reset discards everything accumulated since construction or the last
// Reset: the payload fields, the verbosity, the persistent Init store,
// the sticky error, and all hook customizations, which revert to the
// factory defaults. Reset is idempotent and performs no engine call.
func (z *Zenroom) Reset() *Zenroom {
	z.state = engine.Request{Verbosity: DefaultVerbosity}
	z.store = Options{}
	z.err = nil
	z.eng.Hooks().Reset()
	return z
}

// Err reports the first error recorded since construction or the last
// Reset: a keys or data value that would not serialize, invalid Init
// options, or an engine dispatch failure. Script execution failures
// inside the VM are not reported here; they reach the failure hook.
func (z *Zenroom) Err() error {
	return z.err
}

func (z *Zenroom) serialize(field string, v any) *string {
	s, err := canonicalText(v)
	if err != nil {
		z.err = fmt.Errorf("zenroom: serialize %s: %w", field, err)
		return nil
	}
	return s
}

// canonicalText converts a structured value to the canonical text form
// crossing the foreign boundary. nil means absent.
func canonicalText(v any) (*string, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		return &t, nil
	case *string:
		return t, nil
	case []byte:
		s := string(t)
		return &s, nil
	case json.RawMessage:
		s := string(t)
		return &s, nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		s := string(b)
		return &s, nil
	}
}
