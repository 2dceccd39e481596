package shareentry

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/boardroom-share-registry/internal/domain/shared"
)

// Common errors
var (
	ErrInvalidRange        = errors.New("share number range must start at 1 or above and end at or after its start")
	ErrInvalidNominalValue = errors.New("nominal value must be positive")
	ErrNegativeVotes       = errors.New("votes per share cannot be negative")
	ErrInvalidShareClass   = errors.New("invalid share class")
)

// Entry represents one contiguous numbered block of shares owned by one
// shareholder. An entry is immutable except for IsActive, which flips from
// true to false exactly once when a later transaction fully consumes the
// block.
type Entry struct {
	ID              uuid.UUID         `json:"id"`
	TenantID        string            `json:"tenant_id"`
	ShareholderID   uuid.UUID         `json:"shareholder_id"`
	ShareClass      shared.ShareClass `json:"share_class"`
	NumberOfShares  int64             `json:"number_of_shares"`
	ShareNumberFrom int64             `json:"share_number_from"`
	ShareNumberTo   int64             `json:"share_number_to"` // Inclusive
	NominalValue    float64           `json:"nominal_value"`   // Per-share book value
	VotesPerShare   int64             `json:"votes_per_share"`
	IsActive        bool              `json:"is_active"`
	CreatedAt       time.Time         `json:"created_at"`
}

// NewEntry creates an active entry for the numbered range [from, to].
// NumberOfShares is derived from the range, keeping the
// count == to - from + 1 invariant by construction.
func NewEntry(tenantID string, shareholderID uuid.UUID, class shared.ShareClass, from, to int64, nominalValue float64, votesPerShare int64) (*Entry, error) {
	if !class.Valid() {
		return nil, ErrInvalidShareClass
	}
	if from < 1 || to < from {
		return nil, ErrInvalidRange
	}
	if nominalValue <= 0 {
		return nil, ErrInvalidNominalValue
	}
	if votesPerShare < 0 {
		return nil, ErrNegativeVotes
	}

	return &Entry{
		ID:              uuid.New(),
		TenantID:        tenantID,
		ShareholderID:   shareholderID,
		ShareClass:      class,
		NumberOfShares:  to - from + 1,
		ShareNumberFrom: from,
		ShareNumberTo:   to,
		NominalValue:    nominalValue,
		VotesPerShare:   votesPerShare,
		IsActive:        true,
		CreatedAt:       time.Now(),
	}, nil
}

// Contains reports whether the entry's range fully covers [from, to]
func (e *Entry) Contains(from, to int64) bool {
	return from >= e.ShareNumberFrom && to <= e.ShareNumberTo && from <= to
}

// Overlaps reports whether the entry's range shares any share number with [from, to]
func (e *Entry) Overlaps(from, to int64) bool {
	return from <= e.ShareNumberTo && to >= e.ShareNumberFrom
}
