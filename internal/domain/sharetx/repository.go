package sharetx

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/boardroom-share-registry/internal/domain/shared"
)

// Repository is the append-only transaction log. The interface carries no
// update or delete on purpose: immutability of the ledger is removed from
// the type system, not left to caller discipline.
type Repository interface {
	Create(ctx context.Context, t *Transaction) error
	GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*Transaction, error)

	// List returns the tenant's transactions ordered by date descending.
	List(ctx context.Context, tenantID string) ([]*Transaction, error)

	WithTx(tx pgx.Tx) Repository
}

// ErrTransactionNotFound indicates a missing transaction, or one belonging
// to a different tenant
type ErrTransactionNotFound struct {
	TransactionID uuid.UUID
}

func (e ErrTransactionNotFound) Error() string {
	return "share transaction not found: " + e.TransactionID.String()
}

// Is implements the errors.Is interface for ErrTransactionNotFound
func (e ErrTransactionNotFound) Is(target error) bool {
	t, ok := target.(ErrTransactionNotFound)
	if !ok {
		return false
	}
	if t.TransactionID == uuid.Nil {
		return true
	}
	return e.TransactionID == t.TransactionID
}

// ErrSharesNotHeld indicates a transfer or redemption of a range the source
// shareholder does not actively hold in one contiguous block
type ErrSharesNotHeld struct {
	ShareholderID   uuid.UUID
	ShareClass      shared.ShareClass
	ShareNumberFrom int64
	ShareNumberTo   int64
}

func (e ErrSharesNotHeld) Error() string {
	return "shareholder " + e.ShareholderID.String() + " does not actively hold the requested " +
		string(e.ShareClass) + " share range"
}

// ErrRangeOverlap indicates an issuance whose numbered range collides with
// an active entry in the same class
type ErrRangeOverlap struct {
	ShareClass      shared.ShareClass
	ShareNumberFrom int64
	ShareNumberTo   int64
}

func (e ErrRangeOverlap) Error() string {
	return "share number range overlaps an active " + string(e.ShareClass) + " entry"
}

// ErrVotingWeightMismatch indicates a transaction whose votes-per-share
// disagrees with the class's active entries. All entries of a class carry
// the same voting weight; the cap-table aggregation relies on it.
type ErrVotingWeightMismatch struct {
	ShareClass shared.ShareClass
	Submitted  int64
	ClassVotes int64
}

func (e ErrVotingWeightMismatch) Error() string {
	return "votes per share disagrees with active " + string(e.ShareClass) + " entries"
}

// ErrShareholderInactive indicates a transaction party that exists but has
// been removed from the registry
type ErrShareholderInactive struct {
	ShareholderID uuid.UUID
}

func (e ErrShareholderInactive) Error() string {
	return "shareholder is not active: " + e.ShareholderID.String()
}

// ErrEmptyShareClass indicates a split against a class with no active entries
type ErrEmptyShareClass struct {
	ShareClass shared.ShareClass
}

func (e ErrEmptyShareClass) Error() string {
	return "no active entries in share class " + string(e.ShareClass)
}
