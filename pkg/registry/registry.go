// Package registry defines the schema registry gateway consumed by the
// serde and provides the srclient-backed implementation of it.
package registry

// Schema is the immutable schema value handed to the registry: the raw
// schema text plus its registry type tag (always "JSON" for this codec).
type Schema struct {
	Text string
	Type string
}

// JSONSchema builds a Schema value tagged for the registry's JSON type.
func JSONSchema(text string) Schema {
	return Schema{Text: text, Type: "JSON"}
}

// Client is the gateway to a Confluent-style schema registry. Register
// submits the schema under subject and returns the assigned ID; Lookup
// resolves the ID of an already registered schema without creating a new
// version. Both surface transport and registry failures to the caller
// unchanged; retry policy lives with the implementation or the caller,
// never in the codec.
type Client interface {
	Register(subject string, schema Schema) (uint32, error)
	Lookup(subject string, schema Schema) (uint32, error)
}
