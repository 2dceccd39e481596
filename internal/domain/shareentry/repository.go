package shareentry

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/boardroom-share-registry/internal/domain/shared"
)

// Repository is the holdings table. It deliberately exposes no general
// update: the only mutation paths are creation of new entries and
// deactivation of superseded ones, so the active set at any time is a pure
// function of which entries have been created and deactivated so far.
type Repository interface {
	Create(ctx context.Context, e *Entry) error
	GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*Entry, error)
	List(ctx context.Context, tenantID string) ([]*Entry, error)
	ListActive(ctx context.Context, tenantID string) ([]*Entry, error)
	ListByShareholder(ctx context.Context, tenantID string, shareholderID uuid.UUID) ([]*Entry, error)
	CountActiveByShareholder(ctx context.Context, tenantID string, shareholderID uuid.UUID) (int64, error)

	// LockActiveByClass reads all active entries of a class with
	// SELECT ... FOR UPDATE so issuance-overlap checks and splits serialize
	// against concurrent writers.
	LockActiveByClass(ctx context.Context, tenantID string, class shared.ShareClass) ([]*Entry, error)

	// LockActiveByShareholderClass reads one holder's active entries in a
	// class with SELECT ... FOR UPDATE for the transfer/redemption carve path.
	LockActiveByShareholderClass(ctx context.Context, tenantID string, shareholderID uuid.UUID, class shared.ShareClass) ([]*Entry, error)

	// Deactivate flips is_active to false. It is idempotent: deactivating an
	// already-inactive entry is a no-op reported through the returned bool,
	// not an error. Returns ErrEntryNotFound for an unknown id.
	Deactivate(ctx context.Context, tenantID string, id uuid.UUID) (bool, error)

	WithTx(tx pgx.Tx) Repository
}

// ErrEntryNotFound indicates a missing share entry, or one belonging to a
// different tenant
type ErrEntryNotFound struct {
	EntryID uuid.UUID
}

func (e ErrEntryNotFound) Error() string {
	return "share entry not found: " + e.EntryID.String()
}

// Is implements the errors.Is interface for ErrEntryNotFound
func (e ErrEntryNotFound) Is(target error) bool {
	t, ok := target.(ErrEntryNotFound)
	if !ok {
		return false
	}
	if t.EntryID == uuid.Nil {
		return true
	}
	return e.EntryID == t.EntryID
}

// ErrEntryConsumed indicates a write-write race: an entry believed active was
// deactivated by a concurrent transaction between read and write
type ErrEntryConsumed struct {
	EntryID uuid.UUID
}

func (e ErrEntryConsumed) Error() string {
	return "share entry was consumed by a concurrent transaction: " + e.EntryID.String()
}
