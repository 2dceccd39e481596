package outbox

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/boardroom-share-registry/internal/domain/shared"
	"github.com/boardroom-share-registry/internal/domain/sharetx"
)

// Message stores a committed registry transaction for reliable publishing.
// A row is written in the same database transaction as the ledger mutation,
// so an event exists exactly when the mutation is visible.
type Message struct {
	ID            int64               `json:"id"`
	TenantID      string              `json:"tenant_id"`
	TransactionID uuid.UUID           `json:"transaction_id"`
	Payload       json.RawMessage     `json:"payload"`
	Status        shared.OutboxStatus `json:"status"`
	Attempts      int                 `json:"attempts"`
	CreatedAt     time.Time           `json:"created_at"`
	LastAttemptAt *time.Time          `json:"last_attempt_at,omitempty"`
}

func NewMessage(transaction *sharetx.Transaction) (*Message, error) {
	payload, err := json.Marshal(transaction)
	if err != nil {
		return nil, err
	}

	return &Message{
		TenantID:      transaction.TenantID,
		TransactionID: transaction.ID,
		Payload:       payload,
		Status:        shared.OutboxStatusPending,
		Attempts:      0,
		CreatedAt:     time.Now(),
	}, nil
}

func (m *Message) IncrementAttempts() {
	m.Attempts++
	now := time.Now()
	m.LastAttemptAt = &now
}

func (m *Message) MarkAsProcessed() {
	m.Status = shared.OutboxStatusProcessed
	now := time.Now()
	m.LastAttemptAt = &now
}

func (m *Message) MarkAsFailed() {
	m.Status = shared.OutboxStatusFailedToPublish
	now := time.Now()
	m.LastAttemptAt = &now
}

// GetTransaction extracts the share transaction from the payload
func (m *Message) GetTransaction() (*sharetx.Transaction, error) {
	var transaction sharetx.Transaction
	if err := json.Unmarshal(m.Payload, &transaction); err != nil {
		return nil, err
	}
	return &transaction, nil
}
