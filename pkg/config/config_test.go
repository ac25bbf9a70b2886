package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfigLoading(t *testing.T) {
	// Create a temporary config file for testing
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.yaml")

	configContent := `
kafka:
  brokers:
    - localhost:9092
    - localhost:9093
  schemaRegistry: http://localhost:8081
  useSchemaRegistry: true

serde:
  autoRegister: false
  subjectStrategy: topicRecord

emitter:
  interval: 5s
`

	err := os.WriteFile(configPath, []byte(configContent), 0600)
	if err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	// Test loading the config
	config := Load(configPath)

	// Verify Kafka configuration
	if len(config.Kafka.Brokers) != 2 {
		t.Errorf("Expected 2 brokers, got %d", len(config.Kafka.Brokers))
	}

	if config.Kafka.Brokers[0] != "localhost:9092" {
		t.Errorf("Expected first broker to be localhost:9092, got %s", config.Kafka.Brokers[0])
	}

	if config.Kafka.SchemaRegistry != "http://localhost:8081" {
		t.Errorf("Expected schema registry http://localhost:8081, got %s", config.Kafka.SchemaRegistry)
	}

	if !config.Kafka.UseSchemaRegistry {
		t.Errorf("Expected UseSchemaRegistry to be true")
	}

	// Verify serde configuration
	if config.Serde.AutoRegister {
		t.Errorf("Expected autoRegister to be false")
	}

	if config.Serde.SubjectStrategy != "topicRecord" {
		t.Errorf("Expected subject strategy topicRecord, got %s", config.Serde.SubjectStrategy)
	}

	// Verify emitter configuration
	if config.Emitter.Interval != 5*time.Second {
		t.Errorf("Expected emitter interval 5s, got %v", config.Emitter.Interval)
	}
}

func TestConfigDefaults(t *testing.T) {
	// Create a minimal config file
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "minimal_config.yaml")

	configContent := `
kafka:
  brokers:
    - localhost:9092
  schemaRegistry: http://localhost:8081
`

	err := os.WriteFile(configPath, []byte(configContent), 0600)
	if err != nil {
		t.Fatalf("Failed to write minimal config: %v", err)
	}

	config := Load(configPath)

	// Verify defaults are applied
	if config.Emitter.Interval == 0 {
		t.Errorf("Expected default emitter interval to be set")
	}

	if !config.Serde.AutoRegister {
		t.Errorf("Expected auto-registration to default to true")
	}

	if config.Serde.SubjectStrategy != "topic" {
		t.Errorf("Expected default subject strategy topic, got %s", config.Serde.SubjectStrategy)
	}

	if config.Kafka.UseSchemaRegistry {
		t.Errorf("Expected UseSchemaRegistry to default to false")
	}
}
