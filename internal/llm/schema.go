package llm

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// SchemaJSON reflects a compact JSON schema for v, suitable for embedding in
// a prompt. Definitions are inlined and unknown properties are disallowed.
func SchemaJSON(v any) string {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(v)
	schema.Version = ""
	schema.ID = ""

	b, err := json.Marshal(schema)
	if err != nil {
		return "{}"
	}
	return string(b)
}
