package kafka

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"
	"unsafe"

	jsoniter "github.com/json-iterator/go"
	"github.com/segmentio/kafka-go"

	"github.com/siqueiraa/jsonwire/pkg/config"
	"github.com/siqueiraa/jsonwire/pkg/registry"
	"github.com/siqueiraa/jsonwire/pkg/serde"
)

const (
	batchTimeoutMillis = 100 // Batch timeout in milliseconds
	intKeyCapacity     = 12  // Buffer capacity for int keys
	int64KeyCapacity   = 20  // Buffer capacity for int64 keys
	batchTimeoutSecs   = 10  // Batch write timeout in seconds
	decimalBase        = 10  // Base for decimal number conversion
)

var (
	// jsonFast is our high-performance JSON API.
	jsonFast = jsoniter.ConfigFastest
)

// Producer wraps a kafka.Writer with optional schema-registry framing.
// Topics with a registered serializer publish wire-format frames; all
// other topics publish plain JSON.
type Producer struct {
	ctx       context.Context
	writer    *kafka.Writer
	useSchema bool
	registry  registry.Client
	serdeCfg  config.SerdeConfig

	mu          sync.RWMutex
	serializers map[string]*serde.Serializer
}

// NewProducer creates a new Kafka producer.
// Pass in a Context and your KafkaConfig.
func NewProducer(
	ctx context.Context,
	cfg config.KafkaConfig,
	serdeCfg config.SerdeConfig,
) (*Producer, error) {
	w := kafka.NewWriter(kafka.WriterConfig{
		Brokers:      cfg.Brokers,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: batchTimeoutMillis * time.Millisecond,
		// RequiredAcks is an int, so cast the constant.
		RequiredAcks: int(kafka.RequireAll),
	})

	var client registry.Client
	if cfg.UseSchemaRegistry {
		client = registry.NewSchemaRegistry(cfg.SchemaRegistry)
	}

	return &Producer{
		ctx:         ctx,
		writer:      w,
		useSchema:   cfg.UseSchemaRegistry,
		registry:    client,
		serdeCfg:    serdeCfg,
		serializers: make(map[string]*serde.Serializer),
	}, nil
}

// RegisterSerializer binds a JSON Schema to a topic. Messages published to
// that topic afterwards are validated against the schema and framed with
// its registry ID.
func (p *Producer) RegisterSerializer(topic, schemaText string) error {
	if !p.useSchema {
		return fmt.Errorf("schema registry disabled, cannot register serializer for %s", topic)
	}

	strategy, err := serde.StrategyByName(p.serdeCfg.SubjectStrategy)
	if err != nil {
		return err
	}
	s, err := serde.NewSerializer(p.registry, nil, schemaText, nil, serde.Config{
		serde.AutoRegisterSchemas: p.serdeCfg.AutoRegister,
		serde.SubjectStrategy:     strategy,
	})
	if err != nil {
		return fmt.Errorf("serializer for %s: %w", topic, err)
	}

	p.mu.Lock()
	p.serializers[topic] = s
	p.mu.Unlock()
	return nil
}

func (p *Producer) serializerFor(topic string) *serde.Serializer {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.serializers[topic]
}

// encode serializes value for topic, framing through the topic's
// serializer when one is registered.
func (p *Producer) encode(topic string, value map[string]any) ([]byte, error) {
	if s := p.serializerFor(topic); s != nil {
		ctx := serde.SerializationContext{Topic: topic, Field: serde.ValueField}
		return s.Serialize(ctx, value)
	}
	return jsonFast.Marshal(value)
}

// Publish sends a single message.
func (p *Producer) Publish(
	topic string,
	key []byte,
	value map[string]any,
) error {
	payload, err := p.encode(topic, value)
	if err != nil {
		return fmt.Errorf("encode failed: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   key,
		Value: payload,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(p.ctx, msg); err != nil {
		log.Printf("[Kafka] publish failed topic=%s: %v", topic, err)
		return err
	}
	return nil
}

// PublishBatch serializes every record, builds the kafka.Message slice with
// minimal allocations and writes the batch with a context that can be
// canceled by the caller.
func (p *Producer) PublishBatch(
	topic string,
	records []map[string]any,
	keyField string,
) error {
	// Reserve exact capacity → no slice growth during append
	msgs := make([]kafka.Message, 0, len(records))

	now := time.Now() // One syscall instead of one per message

	for _, rec := range records {
		//------------------- payload serialization -------------------//
		payload, err := p.encode(topic, rec)
		if err != nil {
			log.Printf("[Kafka] encode failed: %v", err)
			continue // drop the faulty record, continue with the rest
		}

		//------------------- key extraction --------------------------//
		var key []byte
		if raw, ok := rec[keyField]; ok && raw != nil {
			switch v := raw.(type) {
			case string:
				// zero‑copy in Go 1.22+: string → []byte without allocation
				key = unsafe.Slice(unsafe.StringData(v), len(v))
			case []byte:
				key = v // already a byte slice
			case int:
				key = strconv.AppendInt(make([]byte, 0, intKeyCapacity), int64(v), decimalBase)
			case int64:
				key = strconv.AppendInt(make([]byte, 0, int64KeyCapacity), v, decimalBase)
			default:
				// Fallback: slower but rare for non‑primitive keys
				key = fmt.Append(nil, v)
			}
		}

		//------------------- build message ---------------------------//
		msgs = append(msgs, kafka.Message{
			Topic: topic,
			Key:   key,
			Value: payload,
			Time:  now,
		})
	}

	//------------------- write batch --------------------------------//
	ctx, cancel := context.WithTimeout(p.ctx, batchTimeoutSecs*time.Second)
	defer cancel()

	return p.writer.WriteMessages(ctx, msgs...)
}

// Close shuts down the writer cleanly.
func (p *Producer) Close() error {
	return p.writer.Close()
}
