// Package validate checks structured values against JSON Schemas before
// they are framed onto the wire.
package validate

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/siqueiraa/jsonwire/pkg/registry"
)

// Validator checks value against schema. A nil return means the value
// conforms; any non-nil error is a violation (or a schema that failed to
// compile) and must stop serialization.
type Validator interface {
	Validate(value any, schema registry.Schema) error
}

// Violation is a failed schema check. Message names the offending
// instance location and the constraint it broke.
type Violation struct {
	Message string
}

func (v *Violation) Error() string { return v.Message }

// JSONSchema validates against JSON Schema documents using
// santhosh-tekuri/jsonschema. Compiled schemas are cached by a hash of
// the schema text, so a validator instance can be shared by any number of
// serializers without recompiling per call.
type JSONSchema struct {
	compiled sync.Map // uint64 -> *jsonschema.Schema
}

// NewJSONSchema returns an empty-cache JSON Schema validator.
func NewJSONSchema() *JSONSchema {
	return &JSONSchema{}
}

func (j *JSONSchema) Validate(value any, schema registry.Schema) error {
	compiled, err := j.compile(schema.Text)
	if err != nil {
		return err
	}
	if err := compiled.Validate(value); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return &Violation{Message: leafMessage(ve)}
		}
		return &Violation{Message: err.Error()}
	}
	return nil
}

func (j *JSONSchema) compile(text string) (*jsonschema.Schema, error) {
	key := xxhash.Sum64String(text)
	if v, ok := j.compiled.Load(key); ok {
		return v.(*jsonschema.Schema), nil
	}
	compiled, err := jsonschema.CompileString("schema.json", text)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	j.compiled.Store(key, compiled)
	return compiled, nil
}

// leafMessage walks to the deepest cause of a validation error, which
// carries the concrete constraint (e.g. the name of a missing required
// property) instead of the generic "does not validate" root.
func leafMessage(ve *jsonschema.ValidationError) string {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	if ve.InstanceLocation != "" {
		return fmt.Sprintf("%s: %s", ve.InstanceLocation, ve.Message)
	}
	return ve.Message
}
