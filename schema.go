package zenroom

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// OptionsSchema returns the JSON Schema (Draft 2020-12) describing the
// recognized Init options, for embedding hosts that accept the
// configuration object from an untyped source. Hook fields are functions
// and have no JSON shape, so they do not appear in the schema.
func OptionsSchema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
	}
	schema := reflector.Reflect(&Options{})

	jsonBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return jsonBytes, nil
}
