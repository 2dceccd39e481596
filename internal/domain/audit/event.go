package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Actions recorded in the audit trail
const (
	ActionShareholderCreated = "shareholder.created"
	ActionShareholderUpdated = "shareholder.updated"
	ActionShareholderRemoved = "shareholder.removed"
	ActionTransactionCreated = "share_transaction.created"
)

// Event is one append-only audit record, written after a successful mutation
type Event struct {
	ID        uuid.UUID       `json:"id" bson:"event_id"`
	TenantID  string          `json:"tenant_id" bson:"tenant_id"`
	Action    string          `json:"action" bson:"action"`
	Subject   string          `json:"subject" bson:"subject"`
	SubjectID uuid.UUID       `json:"subject_id" bson:"subject_id"`
	Payload   json.RawMessage `json:"payload" bson:"payload"`
	CreatedAt time.Time       `json:"created_at" bson:"created_at"`
}

// NewEvent builds an audit event, capturing the mutated subject as JSON
func NewEvent(tenantID, action, subject string, subjectID uuid.UUID, payload interface{}) (*Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Action:    action,
		Subject:   subject,
		SubjectID: subjectID,
		Payload:   raw,
		CreatedAt: time.Now(),
	}, nil
}
