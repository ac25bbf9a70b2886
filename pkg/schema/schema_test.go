package schema

import (
	"reflect"
	"testing"
	"time"
)

func TestInfer(t *testing.T) {
	tests := []struct {
		name     string
		record   map[string]any
		expected map[string]any
	}{
		{
			name: "basic types",
			record: map[string]any{
				"id":     123,
				"name":   "John",
				"active": true,
				"score":  45.5,
			},
			expected: map[string]any{
				"active": map[string]any{"type": "boolean"},
				"id":     map[string]any{"type": "integer"},
				"name":   map[string]any{"type": "string"},
				"score":  map[string]any{"type": "number"},
			},
		},
		{
			name: "float without decimal as integer",
			record: map[string]any{
				"count": 10.0,
				"rate":  3.14,
			},
			expected: map[string]any{
				"count": map[string]any{"type": "integer"},
				"rate":  map[string]any{"type": "number"},
			},
		},
		{
			name: "timestamps",
			record: map[string]any{
				"created_at": time.Now(),
				"iso_time":   "2023-01-01T12:00:00Z",
				"regular":    "not a timestamp",
			},
			expected: map[string]any{
				"created_at": map[string]any{"type": "string", "format": "date-time"},
				"iso_time":   map[string]any{"type": "string", "format": "date-time"},
				"regular":    map[string]any{"type": "string"},
			},
		},
		{
			name: "complex and null",
			record: map[string]any{
				"tags":     []string{"a", "b"},
				"metadata": map[string]string{"key": "value"},
				"config":   struct{ Name string }{Name: "test"},
				"missing":  nil,
			},
			expected: map[string]any{
				"tags":     map[string]any{"type": "array"},
				"metadata": map[string]any{"type": "object"},
				"config":   map[string]any{"type": "object"},
				"missing":  map[string]any{"type": "null"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Infer("Sample", tt.record)

			if doc.Title() != "Sample" {
				t.Errorf("Expected title Sample, got %s", doc.Title())
			}
			if doc["type"] != "object" {
				t.Errorf("Expected object schema, got %v", doc["type"])
			}

			props, ok := doc["properties"].(map[string]any)
			if !ok {
				t.Fatalf("Expected properties map, got %T", doc["properties"])
			}
			if !reflect.DeepEqual(props, tt.expected) {
				t.Errorf("Property mismatch.\nExpected: %v\nGot:      %v", tt.expected, props)
			}
		})
	}
}

func TestInferRequiredIsSorted(t *testing.T) {
	doc := Infer("Sample", map[string]any{
		"zebra": 1,
		"apple": 2,
		"mango": 3,
	})

	required, ok := doc["required"].([]string)
	if !ok {
		t.Fatalf("Expected required list, got %T", doc["required"])
	}
	expected := []string{"apple", "mango", "zebra"}
	if !reflect.DeepEqual(required, expected) {
		t.Errorf("Expected %v, got %v", expected, required)
	}
}

func TestInferDeterministicText(t *testing.T) {
	record := map[string]any{"id": 1, "name": "a", "ok": true}

	first, err := Infer("Sample", record).Text()
	if err != nil {
		t.Fatalf("Text failed: %v", err)
	}
	second, err := Infer("Sample", record).Text()
	if err != nil {
		t.Fatalf("Text failed: %v", err)
	}

	if first != second {
		t.Errorf("Inference is not deterministic.\nFirst:  %s\nSecond: %s", first, second)
	}
}

func TestManager(t *testing.T) {
	m := NewManager()

	if m.Get("events") != nil {
		t.Errorf("Expected nil for untracked topic")
	}

	doc := Infer("Event", map[string]any{"id": 1})
	m.Update("events", doc)

	got := m.Get("events")
	if got == nil || got.Title() != "Event" {
		t.Errorf("Expected tracked Event schema, got %v", got)
	}
}

func TestIsDifferent(t *testing.T) {
	m := NewManager()
	base := Infer("Event", map[string]any{"id": 1, "name": "a"})

	tests := []struct {
		name      string
		other     map[string]any
		different bool
	}{
		{"same shape", map[string]any{"id": 2, "name": "b"}, false},
		{"added field", map[string]any{"id": 2, "name": "b", "extra": true}, true},
		{"removed field", map[string]any{"id": 2}, true},
		{"changed type", map[string]any{"id": "2", "name": "b"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := Infer("Event", tt.other)
			if got := m.IsDifferent(base, other); got != tt.different {
				t.Errorf("IsDifferent = %v, expected %v", got, tt.different)
			}
		})
	}
}
