package serde

import "fmt"

// ConfigError reports an invalid serializer or deserializer configuration.
// It is only produced at construction time; a constructed codec never
// returns it.
type ConfigError struct {
	Option string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("serde config %q: %s", e.Option, e.Reason)
}

// ValidationError reports a value that failed schema validation. Detail is
// the validator's violation message.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return "schema validation failed: " + e.Detail
}

// EncodingError wraps a JSON marshal or unmarshal failure.
type EncodingError struct {
	Op  string // "marshal" or "unmarshal"
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("json %s: %v", e.Op, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }
