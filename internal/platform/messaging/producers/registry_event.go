package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/boardroom-share-registry/internal/config"
)

// RegistryEventProducer publishes committed registry transactions for
// downstream consumers (document generation, notifications, reporting).
type RegistryEventProducer struct {
	logger *slog.Logger
	writer KafkaWriter // Interface for testability
	topic  string
}

// NewRegistryEventProducer creates the relay producer and ensures the topic exists.
// Writes are synchronous: the relay must not mark an outbox row processed
// until the broker has acknowledged the event.
func NewRegistryEventProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*RegistryEventProducer, error) {
	if cfg.RegistryTopic == "" {
		return nil, fmt.Errorf("kafka registry topic is not configured")
	}

	conn, err := kafka.Dial("tcp", cfg.Brokers)
	if err != nil {
		return nil, fmt.Errorf("failed to dial kafka for registry event producer: %w", err)
	}
	defer conn.Close()

	err = createKafkaTopicIfNotExists(conn, cfg.RegistryTopic, cfg.NumPartitions, cfg.ReplicationFactor, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure registry topic %s exists for registry event producer: %w", cfg.RegistryTopic, err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        cfg.RegistryTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		WriteTimeout: cfg.MaxWait,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("Failed to write registry events", "topic", cfg.RegistryTopic, "error", err, "count", len(messages))
			} else {
				logger.Debug("Successfully wrote registry events", "topic", cfg.RegistryTopic, "count", len(messages))
			}
		},
	}

	return &RegistryEventProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.RegistryTopic,
	}, nil
}

// Publish writes one registry event keyed by tenant so a tenant's events
// stay ordered within a partition
func (p *RegistryEventProducer) Publish(ctx context.Context, key string, value interface{}) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal message value for registry event producer: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: jsonValue,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish registry event",
			"topic", p.topic,
			"key", key,
			"error", err,
		)
		return fmt.Errorf("failed to publish message to %s via registry event producer: %w", p.topic, err)
	}

	p.logger.Debug("Published registry event",
		"topic", p.topic,
		"key", key,
	)
	return nil
}

func (p *RegistryEventProducer) Close() error {
	p.logger.Info("Closing registry event Kafka producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close registry event kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}
