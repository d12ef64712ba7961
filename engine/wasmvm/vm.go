// Package wasmvm binds a Zencode virtual machine compiled to WASM to the
// engine boundary using the wazero runtime.
//
// The guest module must export the entry point (default "zenroom_exec"),
// an "allocate" function for host-to-guest buffers, and import the host
// module (default "zenroom_host") providing host_print, host_success and
// host_error. Text crosses the boundary as guest memory regions; host
// callbacks receive them packed into a single i64, upper 32 bits pointer,
// lower 32 bits length.
package wasmvm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/martinheidegger/zenroom-go/engine"
)

// vmConfig holds configuration for the VM binding. Unexported to enforce
// the functional options pattern.
type vmConfig struct {
	hostModule string
	entrypoint string
	hooks      *engine.Hooks
}

func defaultVMConfig() vmConfig {
	return vmConfig{
		hostModule: "zenroom_host",
		entrypoint: "zenroom_exec",
	}
}

// Option configures the VM binding.
type Option func(*vmConfig)

// WithHostModuleName sets the name the guest imports host callbacks from
// (default: "zenroom_host").
func WithHostModuleName(name string) Option {
	return func(c *vmConfig) {
		c.hostModule = name
	}
}

// WithEntrypoint sets the exported function Exec calls
// (default: "zenroom_exec").
func WithEntrypoint(name string) Option {
	return func(c *vmConfig) {
		c.entrypoint = name
	}
}

// WithHooks installs a pre-built hook registry instead of a fresh default
// one. Useful when the registry must outlive the VM, e.g. in tests.
func WithHooks(h *engine.Hooks) Option {
	return func(c *vmConfig) {
		if h != nil {
			c.hooks = h
		}
	}
}

// VM is one instantiated Zencode virtual machine. It implements
// engine.Engine. A VM holds a single guest instance and a single hook
// registry; run at most one execution at a time and do not share a VM
// across goroutines.
type VM struct {
	runtime wazero.Runtime
	module  api.Module
	hooks   *engine.Hooks
	cfg     vmConfig
}

// New compiles and instantiates the VM from wasmBytes. The host callback
// module is registered before the guest so its imports resolve, WASI is
// provided for the VM's libc, and the guest's _initialize export runs if
// present.
func New(ctx context.Context, wasmBytes []byte, opts ...Option) (*VM, error) {
	cfg := defaultVMConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.hooks == nil {
		cfg.hooks = engine.NewHooks()
	}

	rt := wazero.NewRuntime(ctx)
	wasi_snapshot_preview1.MustInstantiate(ctx, rt)

	vm := &VM{runtime: rt, hooks: cfg.hooks, cfg: cfg}
	if err := vm.registerHostModule(ctx); err != nil {
		rt.Close(ctx)
		return nil, fmt.Errorf("failed to register host module: %w", err)
	}

	mod, err := rt.Instantiate(ctx, wasmBytes)
	if err != nil {
		rt.Close(ctx)
		return nil, fmt.Errorf("failed to instantiate VM module: %w", err)
	}
	if init := mod.ExportedFunction("_initialize"); init != nil {
		if _, err := init.Call(ctx); err != nil {
			rt.Close(ctx)
			return nil, fmt.Errorf("failed to call _initialize: %w", err)
		}
	}
	vm.module = mod
	return vm, nil
}

// Hooks returns the binding's callback registry.
func (vm *VM) Hooks() *engine.Hooks {
	return vm.hooks
}

// Close releases the runtime and the guest instance. Hooks installed on
// the registry are not invoked after Close.
func (vm *VM) Close(ctx context.Context) error {
	return vm.runtime.Close(ctx)
}

// Exec writes the request's four text fields into guest memory and calls
// the entry point once:
//
//	zenroom_exec(script_ptr, script_len, conf_ptr, conf_len,
//	             keys_ptr, keys_len, data_ptr, data_len, verbosity)
//
// Absent fields are passed as ptr 0 / len 0. The VM reports output and
// the terminal outcome through the host module while the call runs; a nil
// return means the call was issued and control came back, not that the
// hooks are done firing.
func (vm *VM) Exec(ctx context.Context, req engine.Request) error {
	entry := vm.module.ExportedFunction(vm.cfg.entrypoint)
	if entry == nil {
		return fmt.Errorf("VM module does not export %q", vm.cfg.entrypoint)
	}

	fields := []struct {
		name  string
		value *string
	}{
		{"script", &req.Script},
		{"conf", req.Conf},
		{"keys", req.Keys},
		{"data", req.Data},
	}

	args := make([]uint64, 0, 2*len(fields)+1)
	for _, f := range fields {
		ptr, length, err := vm.writeGuestString(ctx, f.value)
		if err != nil {
			return fmt.Errorf("failed to write %s to guest memory: %w", f.name, err)
		}
		args = append(args, uint64(ptr), uint64(length))
	}
	args = append(args, uint64(req.Verbosity)) //nolint:gosec // G115: verbosity is a small non-negative level

	if req.Verbosity >= engine.VerbosityVerbose {
		slog.DebugContext(ctx, "wasmvm: dispatching execution",
			"entrypoint", vm.cfg.entrypoint,
			"script_bytes", len(req.Script),
			"verbosity", req.Verbosity)
	}

	if _, err := entry.Call(ctx, args...); err != nil {
		return fmt.Errorf("VM entry point failed: %w", err)
	}
	return nil
}

// writeGuestString allocates guest memory via the guest's "allocate"
// export and copies s into it. A nil or empty string becomes ptr 0 /
// len 0, the absent marker.
func (vm *VM) writeGuestString(ctx context.Context, s *string) (uint32, uint32, error) {
	if s == nil || len(*s) == 0 {
		return 0, 0, nil
	}

	allocate := vm.module.ExportedFunction("allocate")
	if allocate == nil {
		return 0, 0, fmt.Errorf("guest does not export 'allocate'")
	}
	results, err := allocate.Call(ctx, uint64(len(*s)))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to allocate in guest: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("allocate returned no results")
	}
	ptr := uint32(results[0]) //nolint:gosec // G115: WASM32 pointers are always 32-bit

	if !vm.module.Memory().Write(ptr, []byte(*s)) {
		return 0, 0, fmt.Errorf("failed to write to guest memory")
	}
	return ptr, uint32(len(*s)), nil //nolint:gosec // G115: length bounded by guest memory
}
