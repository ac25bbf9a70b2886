package main

import (
	"context"
	"log"
	"time"

	"github.com/siqueiraa/jsonwire/pkg/config"
	"github.com/siqueiraa/jsonwire/pkg/faker"
	"github.com/siqueiraa/jsonwire/pkg/kafka"
)

func main() {
	cfg := config.Load("config.yaml")
	ctx := context.Background() // or a cancellable / timeout context

	producer, err := kafka.NewProducer(ctx, cfg.Kafka, cfg.Serde)
	if err != nil {
		log.Fatalf("[Fakegen] failed to create Kafka producer: %v", err)
	}
	defer producer.Close()

	if cfg.Kafka.UseSchemaRegistry {
		log.Printf("[Fakegen] Binding schemas via %s", cfg.Kafka.SchemaRegistry)
		if err := faker.RegisterSchemas(producer); err != nil {
			log.Fatalf("[Fakegen] failed to bind schemas: %v", err)
		}
	}

	log.Println("[Fakegen] Starting event generation...")
	for {
		faker.PublishUserEvent(producer)
		faker.PublishUserProfile(producer)
		faker.PublishTransaction(producer)
		time.Sleep(cfg.Emitter.Interval)
	}
}
