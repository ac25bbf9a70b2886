// Package serde implements the Confluent Schema Registry wire format for
// JSON: a magic byte and a big-endian schema ID in front of a plain JSON
// document. The Serializer registers (or looks up) the schema once per
// subject and validates every outgoing value against it; the Deserializer
// checks the framing and hands the decoded document to the caller.
package serde

// MessageField tells the subject name strategy whether the bytes being
// (de)serialized are a message key or a message value.
type MessageField string

const (
	KeyField   MessageField = "key"
	ValueField MessageField = "value"
)

// SerializationContext carries per-call metadata about the message being
// processed. It is owned by the caller; the codec only reads it.
type SerializationContext struct {
	Topic string
	Field MessageField
}
