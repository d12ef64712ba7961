package zenroom

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/martinheidegger/zenroom-go/engine"
)

// optionsValidator is a package-level singleton; constructing a validator
// per call is expensive.
var optionsValidator = validator.New()

// Options is the configuration object accepted by Init. A nil field is
// absent: it keeps whatever an earlier Init stored, or falls back to the
// documented default when the store has no value either. Keys and Data
// take any value Keys and Data setters take. The hook fields are excluded
// from the JSON shape; see OptionsSchema.
type Options struct {
	Zencode   *string `json:"zencode,omitempty" jsonschema:"description=Script to execute"`
	Conf      *string `json:"conf,omitempty" jsonschema:"description=Opaque VM configuration string"`
	Keys      any     `json:"keys,omitempty" jsonschema:"description=Key material serialized to text"`
	Data      any     `json:"data,omitempty" jsonschema:"description=Free-form data serialized to text"`
	Verbosity *int    `json:"verbosity,omitempty" validate:"omitempty,min=1,max=3" jsonschema:"description=Diagnostic level 1 to 3,default=1"`

	Print   engine.PrintHook   `json:"-"`
	Success engine.SuccessHook `json:"-"`
	Error   engine.FailureHook `json:"-"`
}

// merge returns the shallow union of old and next: fields present in next
// overwrite the same-named fields of old, absent fields are retained from
// old. It is pure; neither argument is modified.
func merge(old, next Options) Options {
	out := old
	if next.Zencode != nil {
		out.Zencode = next.Zencode
	}
	if next.Conf != nil {
		out.Conf = next.Conf
	}
	if next.Keys != nil {
		out.Keys = next.Keys
	}
	if next.Data != nil {
		out.Data = next.Data
	}
	if next.Verbosity != nil {
		out.Verbosity = next.Verbosity
	}
	if next.Print != nil {
		out.Print = next.Print
	}
	if next.Success != nil {
		out.Success = next.Success
	}
	if next.Error != nil {
		out.Error = next.Error
	}
	return out
}

func (o Options) validate() error {
	if err := optionsValidator.Struct(o); err != nil {
		return fmt.Errorf("zenroom: invalid options: %w", err)
	}
	return nil
}

// resolved is an Options value with every absent field replaced by its
// default and the structured fields serialized for the boundary. Nil hook
// fields mean "factory default".
type resolved struct {
	script    string
	conf      *string
	keys      *string
	data      *string
	verbosity int

	print   engine.PrintHook
	success engine.SuccessHook
	failure engine.FailureHook
}

// withDefaults resolves the options into a concrete state: script defaults
// to the empty string, conf, keys and data to absent, verbosity to the
// informational level. It is pure and independent of merge so the two
// steps stay separately testable.
func (o Options) withDefaults() (resolved, error) {
	r := resolved{
		verbosity: DefaultVerbosity,
		print:     o.Print,
		success:   o.Success,
		failure:   o.Error,
	}
	if o.Zencode != nil {
		r.script = *o.Zencode
	}
	r.conf = o.Conf
	if o.Verbosity != nil {
		r.verbosity = *o.Verbosity
	}

	var err error
	if r.keys, err = canonicalText(o.Keys); err != nil {
		return resolved{}, fmt.Errorf("serialize keys: %w", err)
	}
	if r.data, err = canonicalText(o.Data); err != nil {
		return resolved{}, fmt.Errorf("serialize data: %w", err)
	}
	return r, nil
}
