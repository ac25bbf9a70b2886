package serde

import "fmt"

// SubjectNameStrategy maps a serialization context and the schema's record
// name to the registry subject the schema is registered under. Strategies
// must be pure: same inputs, same subject.
type SubjectNameStrategy func(ctx SerializationContext, recordName string) string

// TopicNameStrategy is the default: {topic}-{key|value}.
func TopicNameStrategy(ctx SerializationContext, _ string) string {
	return ctx.Topic + "-" + string(ctx.Field)
}

// TopicRecordNameStrategy yields {topic}-{record name}.
func TopicRecordNameStrategy(ctx SerializationContext, recordName string) string {
	return ctx.Topic + "-" + recordName
}

// RecordNameStrategy yields the record name alone, letting one subject
// span topics.
func RecordNameStrategy(_ SerializationContext, recordName string) string {
	return recordName
}

// StrategyByName resolves a configured strategy name ("topic",
// "topicRecord" or "record") to its built-in implementation.
func StrategyByName(name string) (SubjectNameStrategy, error) {
	switch name {
	case "", "topic":
		return TopicNameStrategy, nil
	case "topicRecord":
		return TopicRecordNameStrategy, nil
	case "record":
		return RecordNameStrategy, nil
	default:
		return nil, &ConfigError{Option: SubjectStrategy, Reason: fmt.Sprintf("unknown strategy %q", name)}
	}
}
