package serde

import (
	"github.com/siqueiraa/jsonwire/pkg/wire"
)

// FromDictFunc materializes the decoded JSON tree into a domain object.
type FromDictFunc func(ctx SerializationContext, value any) (any, error)

// Deserializer reads values written in the Schema Registry JSON wire
// format. JSON documents are self-describing, so decoding never contacts
// the registry; callers that want the embedded schema ID (for logging or
// routing) can read it with wire.Split.
//
// A Deserializer holds no mutable state and is safe for concurrent use.
type Deserializer struct {
	fromDict FromDictFunc
}

// NewDeserializer builds a Deserializer. fromDict may be nil, in which
// case Deserialize returns the decoded JSON tree unchanged.
func NewDeserializer(fromDict FromDictFunc) *Deserializer {
	return &Deserializer{fromDict: fromDict}
}

// Deserialize decodes data into a structured value. A nil data slice is
// the null sentinel and yields nil. Framing violations surface as
// wire.ErrFrameTooShort or wire.ErrBadMagicByte; malformed payloads as
// an EncodingError; materializer failures propagate unchanged.
func (d *Deserializer) Deserialize(ctx SerializationContext, data []byte) (any, error) {
	if data == nil {
		return nil, nil
	}

	_, payload, err := wire.Split(data)
	if err != nil {
		return nil, err
	}

	var value any
	if err := json.Unmarshal(payload, &value); err != nil {
		return nil, &EncodingError{Op: "unmarshal", Err: err}
	}

	if d.fromDict != nil {
		return d.fromDict(ctx, value)
	}
	return value, nil
}

// DeserializeInto decodes data directly into v, skipping the generic tree
// and the materializer. It exists for callers that reuse decode targets,
// e.g. pooled maps in a consumer loop. Framing rules match Deserialize;
// nil data leaves v untouched.
func (d *Deserializer) DeserializeInto(ctx SerializationContext, data []byte, v any) error {
	if data == nil {
		return nil
	}

	_, payload, err := wire.Split(data)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(payload, v); err != nil {
		return &EncodingError{Op: "unmarshal", Err: err}
	}
	return nil
}
