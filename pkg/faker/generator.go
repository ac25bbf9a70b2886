package faker

import (
	"fmt"
	"log"
	"math/rand" // Using weak random for test data generation only
	"time"

	"github.com/siqueiraa/jsonwire/pkg/kafka"
	"github.com/siqueiraa/jsonwire/pkg/schema"
)

const (
	maxUsers             = 50    // Maximum number of test users to generate
	maxTransactionAmount = 100.0 // Maximum transaction amount for test data
)

var userIDs []string

func init() { //nolint:gochecknoinits // Required for test data initialization
	for i := 1; i <= maxUsers; i++ {
		userIDs = append(userIDs, fmt.Sprintf("u%d", i))
	}
}

func randomUserID() string {
	return userIDs[rand.Intn(len(userIDs))] //nolint:gosec // Using weak random for test data generation only
}

const userEventSchema = `{
  "title": "UserEvent",
  "type": "object",
  "properties": {
    "user_id": {"type": "string"},
    "event_type": {"type": "string"},
    "event_time": {"type": "string", "format": "date-time"}
  },
  "required": ["user_id", "event_type", "event_time"]
}`

const userProfileSchema = `{
  "title": "UserProfile",
  "type": "object",
  "properties": {
    "user_id": {"type": "string"},
    "plan": {"type": "string"}
  },
  "required": ["user_id", "plan"]
}`

// transactionSchema is inferred from a sample record instead of being
// written out, exercising the same path callers with ad-hoc maps use.
func transactionSchema() (string, error) {
	doc := schema.Infer("Transaction", map[string]any{
		"user_id": "u1",
		"amount":  12.5,
	})
	return doc.Text()
}

// RegisterSchemas binds a serializer to each generated topic so every
// published event is validated and framed with its registry schema ID.
func RegisterSchemas(p *kafka.Producer) error {
	txSchema, err := transactionSchema()
	if err != nil {
		return fmt.Errorf("infer transaction schema: %w", err)
	}

	schemas := map[string]string{
		"user_events":   userEventSchema,
		"user_profiles": userProfileSchema,
		"transactions":  txSchema,
	}

	for topic, schemaText := range schemas {
		if err := p.RegisterSerializer(topic, schemaText); err != nil {
			return fmt.Errorf("register serializer for %s: %w", topic, err)
		}
		log.Printf("[Schema] Bound schema to topic %s", topic)
	}
	return nil
}

func PublishUserEvent(p *kafka.Producer) {
	payload := map[string]any{
		"user_id":    randomUserID(),
		"event_type": "login",
		"event_time": time.Now().Format(time.RFC3339),
	}
	send(p, "user_events", payload)
}

func PublishUserProfile(p *kafka.Producer) {
	payload := map[string]any{
		"user_id": randomUserID(),
		"plan":    "premium",
	}
	send(p, "user_profiles", payload)
}

func PublishTransaction(p *kafka.Producer) {
	payload := map[string]any{
		"user_id": randomUserID(),
		"amount":  rand.Float64() * maxTransactionAmount, //nolint:gosec // Using weak random for test data generation only
	}
	send(p, "transactions", payload)
}

func send(p *kafka.Producer, topic string, data map[string]any) {
	if err := p.Publish(topic, nil, data); err != nil {
		log.Printf("[Kafka] Failed to publish message to topic %s: %v", topic, err)
		return
	}
	log.Printf("[Kafka] Published message to topic %s", topic)
}
