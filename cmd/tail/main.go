package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	jsoniter "github.com/json-iterator/go"

	"github.com/siqueiraa/jsonwire/pkg/config"
	"github.com/siqueiraa/jsonwire/pkg/kafka"
)

var json = jsoniter.ConfigFastest

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	topic := flag.String("topic", "", "topic to tail")
	groupID := flag.String("group", "jsonwire-tail", "consumer group id")
	flag.Parse()

	if *topic == "" {
		log.Fatal("[Tail] -topic is required")
	}

	cfg := config.Load(*configPath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
	}()

	consumer := kafka.NewConsumer(ctx, cfg.Kafka.Brokers, *topic, *groupID, cfg.Kafka)
	defer consumer.Close()

	log.Printf("[Tail] Consuming %s from %v", *topic, cfg.Kafka.Brokers)
	for ctx.Err() == nil {
		dm, err := consumer.Read()
		if err != nil {
			log.Printf("[Tail] read failed: %v", err)
			continue
		}
		if dm == nil {
			continue
		}

		line, err := json.Marshal(dm.Value)
		if err != nil {
			log.Printf("[Tail] marshal failed: %v", err)
			dm.Release()
			continue
		}
		log.Printf("[Tail] schema=%d partition=%d offset=%d %s", dm.SchemaID, dm.Partition, dm.Offset, line)
		dm.Release()
	}
}
