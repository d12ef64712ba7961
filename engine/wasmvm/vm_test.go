package wasmvm

import (
	"testing"

	"github.com/martinheidegger/zenroom-go/engine"
)

func TestDefaultVMConfig(t *testing.T) {
	cfg := defaultVMConfig()

	if cfg.hostModule != "zenroom_host" {
		t.Errorf("hostModule = %q, want %q", cfg.hostModule, "zenroom_host")
	}
	if cfg.entrypoint != "zenroom_exec" {
		t.Errorf("entrypoint = %q, want %q", cfg.entrypoint, "zenroom_exec")
	}
	if cfg.hooks != nil {
		t.Error("hooks should default to nil (fresh registry per VM)")
	}
}

func TestWithHostModuleName(t *testing.T) {
	cfg := defaultVMConfig()
	WithHostModuleName("custom_host")(&cfg)

	if cfg.hostModule != "custom_host" {
		t.Errorf("hostModule = %q, want %q", cfg.hostModule, "custom_host")
	}
}

func TestWithEntrypoint(t *testing.T) {
	cfg := defaultVMConfig()
	WithEntrypoint("zencode_exec")(&cfg)

	if cfg.entrypoint != "zencode_exec" {
		t.Errorf("entrypoint = %q, want %q", cfg.entrypoint, "zencode_exec")
	}
}

func TestWithHooks(t *testing.T) {
	cfg := defaultVMConfig()
	h := engine.NewHooks()
	WithHooks(h)(&cfg)

	if cfg.hooks != h {
		t.Error("WithHooks should install the given registry")
	}

	WithHooks(nil)(&cfg)
	if cfg.hooks != h {
		t.Error("WithHooks(nil) should be ignored")
	}
}
