// Package registry_relay drains the transactional outbox and publishes
// committed registry transactions to Kafka. It is the only writer of the
// outbound event stream; the API process never talks to the broker.
package registry_relay

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/boardroom-share-registry/internal/domain/outbox"
	"github.com/boardroom-share-registry/internal/domain/shared"
	"github.com/boardroom-share-registry/internal/domain/sharetx"
	"github.com/boardroom-share-registry/internal/platform/messaging/producers"
)

// EventPublisher publishes one outbox message to the registry event stream
type EventPublisher interface {
	PublishEvent(ctx context.Context, message *outbox.Message) error
}

// EventPublisherImpl implements EventPublisher
type EventPublisherImpl struct {
	outboxRepo outbox.Repository
	producer   producers.MessagePublisher
	logger     *slog.Logger
}

// NewEventPublisher creates a new publisher
func NewEventPublisher(
	outboxRepo outbox.Repository,
	producer producers.MessagePublisher,
	logger *slog.Logger,
) EventPublisher {
	return &EventPublisherImpl{
		outboxRepo: outboxRepo,
		producer:   producer,
		logger:     logger,
	}
}

// PublishEvent decodes the stored transaction and publishes it keyed by
// tenant, then marks the outbox row processed. A payload that cannot be
// decoded is marked failed immediately; retrying it can never succeed.
func (p *EventPublisherImpl) PublishEvent(ctx context.Context, message *outbox.Message) error {
	var transaction sharetx.Transaction
	if err := json.Unmarshal(message.Payload, &transaction); err != nil {
		p.logger.Error("Failed to unmarshal transaction from outbox payload",
			"outbox_id", message.ID, "transaction_id", message.TransactionID, "error", err,
		)
		if updateErr := p.outboxRepo.UpdateStatus(ctx, message.ID, shared.OutboxStatusFailedToPublish); updateErr != nil {
			p.logger.Error("Also failed to update outbox status to FAILED_TO_PUBLISH after unmarshal error", "outbox_id", message.ID, "update_error", updateErr)
		}
		return fmt.Errorf("unmarshal payload for outbox %d failed: %w", message.ID, err)
	}

	logger := p.logger.With("tenant_id", message.TenantID, "transaction_id", message.TransactionID.String())
	logger.Info("Publishing registry event", "outbox_id", message.ID, "type", string(transaction.Type))

	if err := p.producer.Publish(ctx, message.TenantID, &transaction); err != nil {
		return fmt.Errorf("failed to publish registry event for outbox %d: %w", message.ID, err)
	}

	if err := p.outboxRepo.UpdateStatus(ctx, message.ID, shared.OutboxStatusProcessed); err != nil {
		logger.Error("Failed to update outbox message status to PROCESSED",
			"outbox_id", message.ID, "error", err,
		)
		return fmt.Errorf("event for %s published, but failed to mark outbox %d as PROCESSED: %w", message.TransactionID, message.ID, err)
	}

	logger.Info("Outbox message successfully published and marked as PROCESSED", "outbox_id", message.ID)
	return nil
}
