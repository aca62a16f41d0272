package schema

import (
	"embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/cmmcleod/coriolis-sub002/internal/domain/loadout"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/shared"
)

//go:embed schemas/ship-loadout/1.json
var schemaFS embed.FS

const shipLoadoutV1 = "schemas/ship-loadout/1.json"

// Validator checks exported loadout documents against the ship-loadout schema
type Validator struct {
	schema *gojsonschema.Schema
}

// NewValidator compiles the embedded ship-loadout schema
func NewValidator() (*Validator, error) {
	raw, err := schemaFS.ReadFile(shipLoadoutV1)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}

	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", loadout.SchemaURL, err)
	}

	return &Validator{schema: compiled}, nil
}

// Validate returns a SchemaValidationError listing every violation, or nil
func (v *Validator) Validate(doc *loadout.Document) error {
	return v.validate(gojsonschema.NewGoLoader(doc))
}

// ValidateJSON validates a raw JSON document
func (v *Validator) ValidateJSON(raw []byte) error {
	return v.validate(gojsonschema.NewBytesLoader(raw))
}

func (v *Validator) validate(document gojsonschema.JSONLoader) error {
	result, err := v.schema.Validate(document)
	if err != nil {
		return fmt.Errorf("failed to validate document: %w", err)
	}
	if result.Valid() {
		return nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		violations = append(violations, e.String())
	}
	return shared.NewSchemaValidationError(loadout.SchemaURL, violations)
}
