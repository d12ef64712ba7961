package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHooks_DefaultsAreSafe(t *testing.T) {
	h := NewHooks()

	// Success and failure default to no-ops, print to the console path.
	// None of them may panic on a fresh registry.
	assert.NotPanics(t, func() { h.Success() })
	assert.NotPanics(t, func() { h.Failure("diagnostic") })
}

func TestSetPrint_ReplacesSlot(t *testing.T) {
	h := NewHooks()

	var lines []string
	h.SetPrint(func(line string) { lines = append(lines, line) })

	h.Print("first")
	h.Print("second")

	assert.Equal(t, []string{"first", "second"}, lines)
}

func TestSetSuccess_And_SetFailure(t *testing.T) {
	h := NewHooks()

	succeeded := 0
	var diag string
	h.SetSuccess(func() { succeeded++ })
	h.SetFailure(func(d string) { diag = d })

	h.Success()
	h.Failure("out of memory")

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, "out of memory", diag)
}

func TestReset_RestoresDefaults(t *testing.T) {
	h := NewHooks()

	fired := false
	h.SetPrint(func(string) { fired = true })
	h.SetSuccess(func() { fired = true })
	h.SetFailure(func(string) { fired = true })

	h.Reset()

	h.Success()
	h.Failure("diagnostic")
	require.False(t, fired, "custom hooks must not fire after Reset")
}

func TestReset_Idempotent(t *testing.T) {
	h := NewHooks()
	h.SetSuccess(func() { t.Fatal("custom hook fired after Reset") })

	h.Reset()
	h.Reset()

	assert.NotPanics(t, func() { h.Success() })
}

func TestSetHooks_NilPanics(t *testing.T) {
	h := NewHooks()

	assert.Panics(t, func() { h.SetPrint(nil) })
	assert.Panics(t, func() { h.SetSuccess(nil) })
	assert.Panics(t, func() { h.SetFailure(nil) })
}
