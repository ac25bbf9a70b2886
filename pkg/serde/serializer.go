package serde

import (
	"fmt"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/siqueiraa/jsonwire/pkg/registry"
	"github.com/siqueiraa/jsonwire/pkg/validate"
	"github.com/siqueiraa/jsonwire/pkg/wire"
)

var json = jsoniter.ConfigFastest

// Configuration keys accepted by NewSerializer.
const (
	// AutoRegisterSchemas controls whether unknown subjects are registered
	// (true, the default) or only looked up. Value must be a bool.
	AutoRegisterSchemas = "auto.register.schemas"
	// SubjectStrategy overrides how registry subjects are derived from the
	// serialization context. Value must be a SubjectNameStrategy.
	SubjectStrategy = "subject.name.strategy"
)

// Config is the serializer configuration surface. Keys outside the
// constants above are rejected at construction.
type Config map[string]any

// ToDictFunc projects a domain object into the plain structured value
// that gets validated and written to the wire.
type ToDictFunc func(ctx SerializationContext, obj any) (any, error)

// Serializer writes values in the Schema Registry JSON wire format. One
// instance serves one schema; the schema's title annotation is its record
// name and is required.
//
// A Serializer is safe for concurrent use. The registration check-and-set
// is serialized per instance so at most one registry round trip happens
// for a given subject.
type Serializer struct {
	client    registry.Client
	validator validate.Validator
	schema    registry.Schema

	schemaName   string
	subjectName  SubjectNameStrategy
	autoRegister bool
	toDict       ToDictFunc

	mu            sync.Mutex
	schemaID      uint32
	knownSubjects map[string]struct{}
}

// NewSerializer builds a Serializer for schemaText, a JSON Schema document
// whose title annotation names the record. validator may be nil, in which
// case a shared JSON Schema validator is used. toDict may be nil for
// values that already are plain maps/slices/scalars. conf may be nil for
// the defaults (auto-registration on, topic name strategy).
func NewSerializer(
	client registry.Client,
	validator validate.Validator,
	schemaText string,
	toDict ToDictFunc,
	conf Config,
) (*Serializer, error) {
	s := &Serializer{
		client:        client,
		validator:     validator,
		schema:        registry.JSONSchema(schemaText),
		toDict:        toDict,
		autoRegister:  true,
		subjectName:   TopicNameStrategy,
		knownSubjects: make(map[string]struct{}),
	}
	if s.validator == nil {
		s.validator = validate.NewJSONSchema()
	}

	var parsed any
	if err := json.Unmarshal([]byte(schemaText), &parsed); err != nil {
		return nil, &ConfigError{Option: "schema", Reason: fmt.Sprintf("invalid JSON Schema document: %v", err)}
	}
	doc, ok := parsed.(map[string]any)
	if !ok {
		return nil, &ConfigError{Option: "schema", Reason: "schema document must be a JSON object"}
	}
	name, ok := doc["title"].(string)
	if !ok || name == "" {
		return nil, &ConfigError{Option: "schema", Reason: "missing required JSON Schema annotation \"title\""}
	}
	s.schemaName = name

	for key, value := range conf {
		switch key {
		case AutoRegisterSchemas:
			flag, ok := value.(bool)
			if !ok {
				return nil, &ConfigError{Option: key, Reason: "must be a boolean"}
			}
			s.autoRegister = flag
		case SubjectStrategy:
			strategy, ok := value.(SubjectNameStrategy)
			if !ok || strategy == nil {
				return nil, &ConfigError{Option: key, Reason: "must be a non-nil SubjectNameStrategy"}
			}
			s.subjectName = strategy
		default:
			return nil, &ConfigError{Option: key, Reason: "unrecognized property"}
		}
	}

	return s, nil
}

// SchemaName returns the record name extracted from the schema's title.
func (s *Serializer) SchemaName() string { return s.schemaName }

// Serialize encodes obj into the wire format. A nil obj is the null
// sentinel and yields nil bytes with no side effects. The first call for
// a subject registers (or looks up) the schema; later calls reuse the
// cached schema ID.
func (s *Serializer) Serialize(ctx SerializationContext, obj any) ([]byte, error) {
	if obj == nil {
		return nil, nil
	}

	subject := s.subjectName(ctx, s.schemaName)
	schemaID, err := s.ensureSubject(subject)
	if err != nil {
		return nil, err
	}

	value := obj
	if s.toDict != nil {
		value, err = s.toDict(ctx, obj)
		if err != nil {
			return nil, err
		}
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return nil, &EncodingError{Op: "marshal", Err: err}
	}

	// Validate the document as decoded JSON so the validator sees exactly
	// the types a consumer will see.
	var doc any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, &EncodingError{Op: "unmarshal", Err: err}
	}
	if err := s.validator.Validate(doc, s.schema); err != nil {
		return nil, &ValidationError{Detail: err.Error()}
	}

	return wire.Frame(schemaID, payload), nil
}

// ensureSubject returns the schema ID to frame with, performing the
// registry round trip on the first call per subject. Registry errors are
// returned unchanged and leave the subject uncached so the next call
// retries.
func (s *Serializer) ensureSubject(subject string) (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.knownSubjects[subject]; ok {
		return s.schemaID, nil
	}

	var (
		id  uint32
		err error
	)
	if s.autoRegister {
		id, err = s.client.Register(subject, s.schema)
	} else {
		id, err = s.client.Lookup(subject, s.schema)
	}
	if err != nil {
		return 0, err
	}

	s.schemaID = id
	s.knownSubjects[subject] = struct{}{}
	return id, nil
}
