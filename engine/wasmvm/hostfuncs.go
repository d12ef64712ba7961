package wasmvm

import (
	"context"
	"log/slog"

	"github.com/tetratelabs/wazero/api"
)

// registerHostModule exports the three callback entry points the guest
// imports. Each dispatches to whatever hook is installed in the registry
// at invocation time, which is what gives the registry its single-slot,
// most-recent-wins semantics.
func (vm *VM) registerHostModule(ctx context.Context) error {
	builder := vm.runtime.NewHostModuleBuilder(vm.cfg.hostModule)

	builder.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, m api.Module, packed uint64) {
			line, ok := readGuestString(m, packed)
			if !ok {
				slog.WarnContext(ctx, "wasmvm: host_print with unreadable payload")
				return
			}
			vm.hooks.Print(line)
		}).
		Export("host_print")

	builder.NewFunctionBuilder().
		WithFunc(func(_ context.Context, _ api.Module) {
			vm.hooks.Success()
		}).
		Export("host_success")

	builder.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, m api.Module, packed uint64) {
			diagnostic, ok := readGuestString(m, packed)
			if !ok {
				slog.WarnContext(ctx, "wasmvm: host_error with unreadable payload")
				diagnostic = "unreadable diagnostic from VM"
			}
			vm.hooks.Failure(diagnostic)
		}).
		Export("host_error")

	_, err := builder.Instantiate(ctx)
	return err
}
