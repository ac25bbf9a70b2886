package wire

import (
	"bytes"
	"errors"
	"testing"
)

func TestFrameLayout(t *testing.T) {
	payload := []byte(`{"name":"Ada"}`)
	frame := Frame(1, payload)

	if len(frame) != HeaderSize+len(payload) {
		t.Fatalf("Expected frame length %d, got %d", HeaderSize+len(payload), len(frame))
	}
	if frame[0] != MagicByte {
		t.Errorf("Expected magic byte %#x, got %#x", MagicByte, frame[0])
	}
	if !bytes.Equal(frame[1:HeaderSize], []byte{0, 0, 0, 1}) {
		t.Errorf("Expected big-endian schema ID 1, got % x", frame[1:HeaderSize])
	}
	if !bytes.Equal(frame[HeaderSize:], payload) {
		t.Errorf("Payload mismatch: got %s", frame[HeaderSize:])
	}
}

func TestFrameSplitRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		schemaID uint32
		payload  string
	}{
		{"small id", 1, `{}`},
		{"large id", 0xFFFFFFFF, `{"a":[1,2,3]}`},
		{"mid id", 100042, `"scalar"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := Frame(tt.schemaID, []byte(tt.payload))

			id, payload, err := Split(frame)
			if err != nil {
				t.Fatalf("Split failed: %v", err)
			}
			if id != tt.schemaID {
				t.Errorf("Expected schema ID %d, got %d", tt.schemaID, id)
			}
			if string(payload) != tt.payload {
				t.Errorf("Expected payload %s, got %s", tt.payload, payload)
			}
		})
	}
}

func TestSplitRejectsShortBuffers(t *testing.T) {
	buffers := [][]byte{
		{},
		{0x00, 0x00},
		{0x00, 0x00, 0x00, 0x00, 0x01}, // exactly HeaderSize, no payload
	}

	for _, buf := range buffers {
		if _, _, err := Split(buf); !errors.Is(err, ErrFrameTooShort) {
			t.Errorf("Expected ErrFrameTooShort for %d bytes, got %v", len(buf), err)
		}
	}
}

func TestSplitRejectsBadMagicByte(t *testing.T) {
	buf := []byte{0x01, 0x00, 0x00, 0x00, 0x01, '{', '}'}
	if _, _, err := Split(buf); !errors.Is(err, ErrBadMagicByte) {
		t.Errorf("Expected ErrBadMagicByte, got %v", err)
	}
}

func TestSplitChecksLengthBeforeMagic(t *testing.T) {
	// A short buffer with a bad leading byte must still report the length
	// problem, not the magic byte.
	buf := []byte{0xFF, 0x00}
	if _, _, err := Split(buf); !errors.Is(err, ErrFrameTooShort) {
		t.Errorf("Expected ErrFrameTooShort, got %v", err)
	}
}
