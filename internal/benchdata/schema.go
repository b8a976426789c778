package benchdata

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrInvalidDocument is returned when the data file does not match the schema.
var ErrInvalidDocument = errors.New("invalid benchmark data document")

func packageSchema(rawKeys ...string) map[string]any {
	properties := map[string]any{
		"name":    map[string]any{"type": "string", "minLength": 1},
		"version": map[string]any{"type": "string"},
		"features": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
	}
	required := []string{"name", "version"}
	for _, key := range rawKeys {
		properties[key] = map[string]any{"type": "string"}
		required = append(required, key)
	}
	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

// documentSchema describes the data file: `rust` and `cpp` arrays of package tables.
var documentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"rust": map[string]any{
			"type":  "array",
			"items": packageSchema("raw"),
		},
		"cpp": map[string]any{
			"type":  "array",
			"items": packageSchema("raw_sync", "raw_async"),
		},
	},
	"required": []string{"rust", "cpp"},
}

// Validate checks a JSON-encoded document against the data file schema and
// reports every violation at once.
func Validate(document []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(documentSchema),
		gojsonschema.NewBytesLoader(document),
	)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(errs, ", "))
}
