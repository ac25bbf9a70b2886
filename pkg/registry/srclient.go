package registry

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/riferrei/srclient"
	"golang.org/x/sync/singleflight"
)

const maxSchemaID = 0xFFFFFFFF

// schemaClient is the slice of the srclient API the adapter needs.
type schemaClient interface {
	CreateSchema(subject string, schema string, schemaType srclient.SchemaType, references ...srclient.Reference) (*srclient.Schema, error)
	LookupSchema(subject string, schema string, schemaType srclient.SchemaType, references ...srclient.Reference) (*srclient.Schema, error)
}

// SchemaRegistry is the srclient-backed Client. Concurrent callers asking
// for the same subject+schema pair share a single in-flight registry
// round trip; the registry is idempotent for identical schema content, so
// deduplication is an optimization, not a correctness requirement.
type SchemaRegistry struct {
	client schemaClient
	flight singleflight.Group
}

// NewSchemaRegistry creates a Client talking to the registry at url.
func NewSchemaRegistry(url string) *SchemaRegistry {
	return &SchemaRegistry{client: srclient.CreateSchemaRegistryClient(url)}
}

// NewSchemaRegistryWithClient wraps a pre-configured srclient instance,
// e.g. one carrying credentials or a custom HTTP client.
func NewSchemaRegistryWithClient(client *srclient.SchemaRegistryClient) *SchemaRegistry {
	return &SchemaRegistry{client: client}
}

// Register submits schema under subject and returns the assigned ID.
func (r *SchemaRegistry) Register(subject string, schema Schema) (uint32, error) {
	return r.dedup("register", subject, schema, func() (*srclient.Schema, error) {
		return r.client.CreateSchema(subject, schema.Text, srclient.SchemaType(schema.Type))
	})
}

// Lookup resolves the ID of a schema already registered under subject.
func (r *SchemaRegistry) Lookup(subject string, schema Schema) (uint32, error) {
	return r.dedup("lookup", subject, schema, func() (*srclient.Schema, error) {
		return r.client.LookupSchema(subject, schema.Text, srclient.SchemaType(schema.Type))
	})
}

// dedup collapses concurrent identical calls behind one round trip. The
// flight key hashes the schema text so distinct schemas for the same
// subject never share a result.
func (r *SchemaRegistry) dedup(
	op, subject string,
	schema Schema,
	call func() (*srclient.Schema, error),
) (uint32, error) {
	key := fmt.Sprintf("%s:%s:%x", op, subject, xxhash.Sum64String(schema.Text))
	v, err, _ := r.flight.Do(key, func() (any, error) {
		meta, err := call()
		if err != nil {
			return nil, fmt.Errorf("%s subject %s: %w", op, subject, err)
		}
		id := meta.ID()
		if id < 0 || id > maxSchemaID {
			return nil, fmt.Errorf("%s subject %s: schema ID %d out of uint32 range", op, subject, id)
		}
		return uint32(id), nil
	})
	if err != nil {
		return 0, err
	}
	return v.(uint32), nil
}
