package kafka

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	ck "github.com/confluentinc/confluent-kafka-go/kafka"
	jsoniter "github.com/json-iterator/go"

	"github.com/siqueiraa/jsonwire/pkg/config"
	"github.com/siqueiraa/jsonwire/pkg/serde"
	"github.com/siqueiraa/jsonwire/pkg/wire"
)

const (
	// Maximum value for signed 32-bit integer
	maxInt32       = 0x7FFFFFFF
	defaultMapSize = 16 // Default size for payload maps
)

var (
	decodedMsgPool = sync.Pool{New: func() any { return new(DecodedMessage) }}
	payloadMapPool = sync.Pool{New: func() any { m := make(map[string]any, defaultMapSize); return &m }}
	json           = jsoniter.ConfigFastest
)

// Consumer reads a topic and decodes schema-registry framed payloads back
// into maps. Plain JSON payloads (no magic byte) decode as-is, so mixed
// topics keep working.
type Consumer struct {
	ctx          context.Context
	c            *ck.Consumer
	topic        string
	deserializer *serde.Deserializer
}

type DecodedMessage struct {
	Key        []byte
	Value      map[string]any
	SchemaID   uint32 // 0 for plain JSON payloads
	Topic      string
	Time       time.Time
	Offset     int64
	Partition  int
	poolMapPtr *map[string]any
}

func (dm *DecodedMessage) Release() {
	if dm.poolMapPtr != nil {
		// Clear map and return to pool
		for k := range *dm.poolMapPtr {
			delete(*dm.poolMapPtr, k)
		}
		payloadMapPool.Put(dm.poolMapPtr)
		dm.poolMapPtr = nil
	}
	// Return DecodedMessage to pool
	decodedMsgPool.Put(dm)
}

// NewConsumer keeps the old 1‑return signature: it panics on unrecoverable
// config errors because the previous code path never returned an error either.
func NewConsumer(
	ctx context.Context,
	brokers []string,
	topic, groupID string,
	cfg config.KafkaConfig,
) *Consumer {
	cm := &ck.ConfigMap{
		"bootstrap.servers":  strings.Join(brokers, ","),
		"group.id":           groupID,
		"enable.auto.commit": false,
		"auto.offset.reset":  "earliest",
	}
	c, err := ck.NewConsumer(cm)
	if err != nil {
		log.Fatalf("failed to create confluent consumer: %v", err)
	}

	if err := c.SubscribeTopics([]string{topic}, nil); err != nil {
		log.Fatalf("subscribe failed: %v", err)
	}

	return &Consumer{
		ctx:          ctx,
		c:            c,
		topic:        topic,
		deserializer: serde.NewDeserializer(nil),
	}
}

// Read blocks for the next message and decodes its payload.
func (c *Consumer) Read() (*DecodedMessage, error) {
	msg, err := c.c.ReadMessage(-1)
	if err != nil {
		var ke ck.Error
		if errors.As(err, &ke) && ke.Code() == ck.ErrTimedOut {
			return nil, nil // caller can skip on timeout
		}
		return nil, err
	}

	dm := decodedMsgPool.Get().(*DecodedMessage)
	dm.Topic = *msg.TopicPartition.Topic
	dm.Partition = int(msg.TopicPartition.Partition)
	dm.Offset = int64(msg.TopicPartition.Offset)
	dm.Key = msg.Key
	dm.Time = msg.Timestamp
	dm.SchemaID = 0
	dm.poolMapPtr = nil

	mp := payloadMapPool.Get().(*map[string]any)
	m := *mp
	for k := range m {
		delete(m, k)
	}

	schemaID, err := decodeValue(c.deserializer, dm.Topic, msg.Value, &m)
	if err != nil {
		payloadMapPool.Put(mp)
		decodedMsgPool.Put(dm)
		return nil, err
	}

	dm.SchemaID = schemaID
	dm.Value = m
	dm.poolMapPtr = mp
	return dm, nil
}

// decodeValue unmarshals a message payload into m. Framed payloads (magic
// byte first) go through the deserializer; anything else is treated as
// plain JSON. Returns the embedded schema ID, 0 for plain payloads.
func decodeValue(d *serde.Deserializer, topic string, value []byte, m *map[string]any) (uint32, error) {
	if len(value) > 0 && value[0] == wire.MagicByte {
		sctx := serde.SerializationContext{Topic: topic, Field: serde.ValueField}
		if err := d.DeserializeInto(sctx, value, m); err != nil {
			return 0, err
		}
		// Header already verified by DeserializeInto.
		schemaID, _, _ := wire.Split(value)
		return schemaID, nil
	}
	if err := json.Unmarshal(value, m); err != nil {
		return 0, err
	}
	return 0, nil
}

// CommitBatch commits a group of messages in one RPC to reduce overhead.
func (c *Consumer) CommitBatch(dms []*DecodedMessage) error {
	// determine highest offset+1 per partition
	byPart := make(map[int]int64)
	for _, dm := range dms {
		next := dm.Offset + 1
		if curr, ok := byPart[dm.Partition]; !ok || next > curr {
			byPart[dm.Partition] = next
		}
	}
	// build TopicPartition list
	tps := make([]ck.TopicPartition, 0, len(byPart))
	for p, off := range byPart {
		if p > maxInt32 { // Ensure partition fits in int32
			return fmt.Errorf("partition %d exceeds int32 limit", p)
		}
		tps = append(tps, ck.TopicPartition{
			Topic:     &c.topic,
			Partition: int32(p), //nolint:gosec // Bounded by int32 max check above
			Offset:    ck.Offset(off),
		})
	}
	// commit offsets
	_, err := c.c.CommitOffsets(tps)
	if err != nil {
		return fmt.Errorf("commit batch failed: %w", err)
	}
	return nil
}

func (c *Consumer) Close() error { return c.c.Close() }

func (c *Consumer) LogStats() {
	if s := c.c.String(); s != "" {
		log.Printf("[Confluent] %s", s)
	}
}
