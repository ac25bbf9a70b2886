// Package schema infers JSON Schema documents from sample records, for
// callers that want to serialize ad-hoc maps without hand-writing a
// schema first.
package schema

import (
	"reflect"
	"sort"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigFastest

const (
	nullTypeName    = "null"
	booleanTypeName = "boolean"
	integerTypeName = "integer"
	numberTypeName  = "number"
	stringTypeName  = "string"
	arrayTypeName   = "array"
	objectTypeName  = "object"

	dateTimeFormat = "date-time"
)

// Document is a parsed JSON Schema document.
type Document map[string]any

// Text renders the document as canonical JSON.
func (d Document) Text() (string, error) {
	data, err := json.Marshal(map[string]any(d))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Title returns the document's title annotation, or "".
func (d Document) Title() string {
	title, _ := d["title"].(string)
	return title
}

// Manager tracks the inferred schema per topic so producers can detect
// when the shape of their records drifts.
type Manager struct {
	mu      sync.RWMutex
	schemas map[string]Document
}

func NewManager() *Manager {
	return &Manager{
		schemas: make(map[string]Document),
	}
}

// Infer derives an object schema from a single sample record. Every
// observed field becomes a required property; property names are sorted
// so the same record always yields the same document. title becomes the
// schema's record name annotation.
func Infer(title string, record map[string]any) Document {
	keys := make([]string, 0, len(record))
	for k := range record {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	properties := make(map[string]any, len(record))
	for _, k := range keys {
		properties[k] = propertySchema(record[k])
	}

	return Document{
		"title":      title,
		"type":       objectTypeName,
		"properties": properties,
		"required":   keys,
	}
}

// IsDifferent reports whether two documents disagree on their property
// sets or property types.
func (m *Manager) IsDifferent(old, updated Document) bool {
	oldProps, _ := old["properties"].(map[string]any)
	newProps, _ := updated["properties"].(map[string]any)
	if len(oldProps) != len(newProps) {
		return true
	}
	for name, prop := range newProps {
		oldProp, ok := oldProps[name]
		if !ok || !reflect.DeepEqual(oldProp, prop) {
			return true
		}
	}
	return false
}

// Update replaces the schema tracked for a topic.
func (m *Manager) Update(topic string, doc Document) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schemas[topic] = doc
}

// Get retrieves the schema tracked for a topic, or nil.
func (m *Manager) Get(topic string) Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.schemas[topic]
}

// propertySchema maps a sample Go value to its JSON Schema property.
func propertySchema(value any) map[string]any {
	if value == nil {
		return map[string]any{"type": nullTypeName}
	}

	t := reflect.TypeOf(value)
	if t.Kind() == reflect.Ptr {
		v := reflect.ValueOf(value)
		if v.IsNil() {
			return map[string]any{"type": nullTypeName}
		}
		return propertySchema(v.Elem().Interface())
	}

	if t == reflect.TypeOf(time.Time{}) {
		return map[string]any{"type": stringTypeName, "format": dateTimeFormat}
	}

	switch t.Kind() {
	case reflect.Bool:
		return map[string]any{"type": booleanTypeName}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return map[string]any{"type": integerTypeName}
	case reflect.Float32, reflect.Float64:
		return floatProperty(value)
	case reflect.String:
		return stringProperty(value)
	case reflect.Slice, reflect.Array:
		return map[string]any{"type": arrayTypeName}
	case reflect.Map, reflect.Struct:
		return map[string]any{"type": objectTypeName}
	default:
		return map[string]any{"type": stringTypeName}
	}
}

// floatProperty treats JSON-decoded whole numbers (float64 with no
// fraction) as integers, matching how the values round-trip through JSON.
func floatProperty(value any) map[string]any {
	if f, ok := value.(float64); ok && f == float64(int64(f)) {
		return map[string]any{"type": integerTypeName}
	}
	return map[string]any{"type": numberTypeName}
}

func stringProperty(value any) map[string]any {
	if s, ok := value.(string); ok && isRFC3339(s) {
		return map[string]any{"type": stringTypeName, "format": dateTimeFormat}
	}
	return map[string]any{"type": stringTypeName}
}

// isRFC3339 checks if a string parses as an RFC3339 timestamp.
func isRFC3339(s string) bool {
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}
