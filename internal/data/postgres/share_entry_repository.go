package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/boardroom-share-registry/internal/domain/shared"
	"github.com/boardroom-share-registry/internal/domain/shareentry"
	"github.com/boardroom-share-registry/internal/platform/persistence"
)

// ShareEntryRepository implements the shareentry.Repository interface for
// PostgreSQL. There is no update statement for anything but the is_active
// flag; entries are otherwise immutable rows.
type ShareEntryRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewShareEntryRepository creates a new PostgreSQL share entry repository
func NewShareEntryRepository(logger *slog.Logger, db *persistence.PostgresDB) shareentry.Repository {
	return &ShareEntryRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction for atomic ledger commits
func (r *ShareEntryRepository) WithTx(tx pgx.Tx) shareentry.Repository {
	return &ShareEntryRepository{
		querier: tx,
		logger:  r.logger,
	}
}

const shareEntryColumns = `id, tenant_id, shareholder_id, share_class, number_of_shares, share_number_from, share_number_to, nominal_value, votes_per_share, is_active, created_at`

// Create stores a new entry. The row is written as-is; entries always start active.
func (r *ShareEntryRepository) Create(ctx context.Context, e *shareentry.Entry) error {
	query := `
		INSERT INTO share_entries (id, tenant_id, shareholder_id, share_class, number_of_shares, share_number_from, share_number_to, nominal_value, votes_per_share, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.querier.Exec(ctx, query,
		e.ID,
		e.TenantID,
		e.ShareholderID,
		e.ShareClass,
		e.NumberOfShares,
		e.ShareNumberFrom,
		e.ShareNumberTo,
		e.NominalValue,
		e.VotesPerShare,
		e.IsActive,
		e.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create share entry", "error", err)
		return fmt.Errorf("failed to create share entry: %w", err)
	}

	return nil
}

// GetByID retrieves an entry by id within the tenant
func (r *ShareEntryRepository) GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*shareentry.Entry, error) {
	query := `
		SELECT ` + shareEntryColumns + `
		FROM share_entries
		WHERE tenant_id = $1 AND id = $2
	`

	e, err := r.scanRow(r.querier.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shareentry.ErrEntryNotFound{EntryID: id}
		}
		r.logger.Error("Failed to get share entry", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get share entry: %w", err)
	}

	return e, nil
}

// List retrieves all of the tenant's entries, active and superseded
func (r *ShareEntryRepository) List(ctx context.Context, tenantID string) ([]*shareentry.Entry, error) {
	query := `
		SELECT ` + shareEntryColumns + `
		FROM share_entries
		WHERE tenant_id = $1
		ORDER BY share_class, share_number_from
	`
	return r.queryMany(ctx, query, tenantID)
}

// ListActive retrieves the tenant's active entries, the input of every
// cap-table computation
func (r *ShareEntryRepository) ListActive(ctx context.Context, tenantID string) ([]*shareentry.Entry, error) {
	query := `
		SELECT ` + shareEntryColumns + `
		FROM share_entries
		WHERE tenant_id = $1 AND is_active = true
		ORDER BY share_class, share_number_from
	`
	return r.queryMany(ctx, query, tenantID)
}

// ListByShareholder retrieves all entries of one shareholder
func (r *ShareEntryRepository) ListByShareholder(ctx context.Context, tenantID string, shareholderID uuid.UUID) ([]*shareentry.Entry, error) {
	query := `
		SELECT ` + shareEntryColumns + `
		FROM share_entries
		WHERE tenant_id = $1 AND shareholder_id = $2
		ORDER BY share_class, share_number_from
	`
	return r.queryMany(ctx, query, tenantID, shareholderID)
}

// CountActiveByShareholder counts a shareholder's active entries, used by
// the removal guard
func (r *ShareEntryRepository) CountActiveByShareholder(ctx context.Context, tenantID string, shareholderID uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM share_entries
		WHERE tenant_id = $1 AND shareholder_id = $2 AND is_active = true
	`

	var count int64
	if err := r.querier.QueryRow(ctx, query, tenantID, shareholderID).Scan(&count); err != nil {
		r.logger.Error("Failed to count active share entries", "shareholder_id", shareholderID.String(), "error", err)
		return 0, fmt.Errorf("failed to count active share entries: %w", err)
	}

	return count, nil
}

// LockActiveByClass reads a class's active entries FOR UPDATE so concurrent
// writers against the class serialize
func (r *ShareEntryRepository) LockActiveByClass(ctx context.Context, tenantID string, class shared.ShareClass) ([]*shareentry.Entry, error) {
	query := `
		SELECT ` + shareEntryColumns + `
		FROM share_entries
		WHERE tenant_id = $1 AND share_class = $2 AND is_active = true
		ORDER BY share_number_from
		FOR UPDATE
	`
	return r.queryMany(ctx, query, tenantID, class)
}

// LockActiveByShareholderClass reads one holder's active entries in a class
// FOR UPDATE for the transfer/redemption carve path
func (r *ShareEntryRepository) LockActiveByShareholderClass(ctx context.Context, tenantID string, shareholderID uuid.UUID, class shared.ShareClass) ([]*shareentry.Entry, error) {
	query := `
		SELECT ` + shareEntryColumns + `
		FROM share_entries
		WHERE tenant_id = $1 AND shareholder_id = $2 AND share_class = $3 AND is_active = true
		ORDER BY share_number_from
		FOR UPDATE
	`
	return r.queryMany(ctx, query, tenantID, shareholderID, class)
}

// Deactivate flips is_active to false. Deactivating an already-inactive
// entry is a no-op reported via the returned bool, keeping the operation
// idempotent. An unknown id is a not-found.
func (r *ShareEntryRepository) Deactivate(ctx context.Context, tenantID string, id uuid.UUID) (bool, error) {
	query := `
		UPDATE share_entries
		SET is_active = false
		WHERE tenant_id = $1 AND id = $2 AND is_active = true
	`

	result, err := r.querier.Exec(ctx, query, tenantID, id)
	if err != nil {
		r.logger.Error("Failed to deactivate share entry", "id", id.String(), "error", err)
		return false, fmt.Errorf("failed to deactivate share entry: %w", err)
	}

	if result.RowsAffected() == 0 {
		// Distinguish an already-inactive entry from a missing one
		var exists bool
		checkQuery := `SELECT EXISTS (SELECT 1 FROM share_entries WHERE tenant_id = $1 AND id = $2)`
		if err := r.querier.QueryRow(ctx, checkQuery, tenantID, id).Scan(&exists); err != nil {
			return false, fmt.Errorf("failed to check share entry existence: %w", err)
		}
		if !exists {
			return false, shareentry.ErrEntryNotFound{EntryID: id}
		}
		return false, nil
	}

	return true, nil
}

func (r *ShareEntryRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]*shareentry.Entry, error) {
	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list share entries", "error", err)
		return nil, fmt.Errorf("failed to list share entries: %w", err)
	}
	defer rows.Close()

	var entries []*shareentry.Entry
	for rows.Next() {
		e, err := r.scanRow(rows)
		if err != nil {
			r.logger.Error("Failed to scan share entry", "error", err)
			return nil, fmt.Errorf("failed to scan share entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over share entries: %w", err)
	}

	return entries, nil
}

func (r *ShareEntryRepository) scanRow(row pgx.Row) (*shareentry.Entry, error) {
	var e shareentry.Entry
	err := row.Scan(
		&e.ID,
		&e.TenantID,
		&e.ShareholderID,
		&e.ShareClass,
		&e.NumberOfShares,
		&e.ShareNumberFrom,
		&e.ShareNumberTo,
		&e.NominalValue,
		&e.VotesPerShare,
		&e.IsActive,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
