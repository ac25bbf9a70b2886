package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// KafkaConfig holds broker and registry endpoints shared by the producer
// and consumer.
type KafkaConfig struct {
	Brokers           []string `yaml:"brokers"`
	SchemaRegistry    string   `yaml:"schemaRegistry"`
	UseSchemaRegistry bool     `yaml:"useSchemaRegistry"`
}

// SerdeConfig holds the codec options applied to every topic serializer.
type SerdeConfig struct {
	AutoRegister    bool   `yaml:"autoRegister"`
	SubjectStrategy string `yaml:"subjectStrategy"` // topic | topicRecord | record
}

type AppConfig struct {
	Kafka KafkaConfig `yaml:"kafka"`
	Serde SerdeConfig `yaml:"serde"`

	Emitter struct {
		Interval time.Duration `yaml:"interval"`
	} `yaml:"emitter"`
}

// Load reads and parses a YAML config file into an AppConfig struct.
// It will terminate the program if the file is not found or invalid.
func Load(path string) AppConfig {
	// Initialize with defaults
	cfg := AppConfig{
		Serde: SerdeConfig{
			AutoRegister:    true,
			SubjectStrategy: "topic",
		},
	}
	cfg.Emitter.Interval = 1 * time.Second

	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Fatalf("Config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Error reading config file: %v", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("Error parsing config file: %v", err)
	}

	return cfg
}
