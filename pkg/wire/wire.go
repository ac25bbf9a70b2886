package wire

import (
	"encoding/binary"
	"errors"
)

// Constants for the Confluent wire format.
const (
	// MagicByte is the fixed first byte of every framed message.
	MagicByte byte = 0x0
	// HeaderSize is magic byte (1) + schema ID (4).
	HeaderSize = 5
)

var (
	ErrFrameTooShort = errors.New("message too small to hold a wire-format header")
	ErrBadMagicByte  = errors.New("message does not start with magic byte")
)

// Frame prepends the magic byte and the schema ID in network byte order
// (big endian) to payload. The returned slice is freshly allocated.
func Frame(schemaID uint32, payload []byte) []byte {
	out := make([]byte, HeaderSize+len(payload))
	out[0] = MagicByte
	binary.BigEndian.PutUint32(out[1:HeaderSize], schemaID)
	copy(out[HeaderSize:], payload)
	return out
}

// Split validates the framing of data and returns the embedded schema ID
// and the payload bytes that follow the header. The payload aliases data;
// no copy is made.
//
// A frame needs at least one payload byte after the header, so any input
// of HeaderSize bytes or fewer is rejected.
func Split(data []byte) (schemaID uint32, payload []byte, err error) {
	if len(data) <= HeaderSize {
		return 0, nil, ErrFrameTooShort
	}
	if data[0] != MagicByte {
		return 0, nil, ErrBadMagicByte
	}
	return binary.BigEndian.Uint32(data[1:HeaderSize]), data[HeaderSize:], nil
}
