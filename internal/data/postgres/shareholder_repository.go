// Package postgres provides PostgreSQL implementations of the registry
// repositories. The holdings table and the transaction log live here so a
// submitted transaction, its entry mutations and its outbox row commit as
// one unit of work.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/boardroom-share-registry/internal/domain/shareholder"
	"github.com/boardroom-share-registry/internal/platform/persistence"
)

// ShareholderRepository implements the shareholder.Repository interface for PostgreSQL
type ShareholderRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewShareholderRepository creates a new PostgreSQL shareholder repository
func NewShareholderRepository(logger *slog.Logger, db *persistence.PostgresDB) shareholder.Repository {
	return &ShareholderRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction, allowing for atomic
// operations across multiple repository calls
func (r *ShareholderRepository) WithTx(tx pgx.Tx) shareholder.Repository {
	return &ShareholderRepository{
		querier: tx,
		logger:  r.logger,
	}
}

const shareholderColumns = `id, tenant_id, name, type, organization_number, email, address, is_active, created_at, updated_at`

// Create stores a new shareholder
func (r *ShareholderRepository) Create(ctx context.Context, s *shareholder.Shareholder) error {
	query := `
		INSERT INTO shareholders (id, tenant_id, name, type, organization_number, email, address, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.querier.Exec(ctx, query,
		s.ID,
		s.TenantID,
		s.Name,
		s.Type,
		s.OrganizationNumber,
		s.Email,
		s.Address,
		s.IsActive,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create shareholder", "error", err)
		return fmt.Errorf("failed to create shareholder: %w", err)
	}

	return nil
}

// GetByID retrieves a shareholder by id within the tenant. An id belonging
// to another tenant is a not-found.
func (r *ShareholderRepository) GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*shareholder.Shareholder, error) {
	query := `
		SELECT ` + shareholderColumns + `
		FROM shareholders
		WHERE tenant_id = $1 AND id = $2
	`

	s, err := r.scanRow(r.querier.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shareholder.ErrShareholderNotFound{ShareholderID: id}
		}
		r.logger.Error("Failed to get shareholder", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get shareholder: %w", err)
	}

	return s, nil
}

// List retrieves all of the tenant's shareholders, including soft-removed ones
func (r *ShareholderRepository) List(ctx context.Context, tenantID string) ([]*shareholder.Shareholder, error) {
	query := `
		SELECT ` + shareholderColumns + `
		FROM shareholders
		WHERE tenant_id = $1
		ORDER BY name ASC
	`
	return r.queryMany(ctx, query, tenantID)
}

// ListActive retrieves the tenant's active shareholders
func (r *ShareholderRepository) ListActive(ctx context.Context, tenantID string) ([]*shareholder.Shareholder, error) {
	query := `
		SELECT ` + shareholderColumns + `
		FROM shareholders
		WHERE tenant_id = $1 AND is_active = true
		ORDER BY name ASC
	`
	return r.queryMany(ctx, query, tenantID)
}

// Update persists changes to an existing shareholder
func (r *ShareholderRepository) Update(ctx context.Context, s *shareholder.Shareholder) error {
	query := `
		UPDATE shareholders
		SET name = $1, type = $2, organization_number = $3, email = $4, address = $5, is_active = $6, updated_at = $7
		WHERE tenant_id = $8 AND id = $9
	`

	result, err := r.querier.Exec(ctx, query,
		s.Name,
		s.Type,
		s.OrganizationNumber,
		s.Email,
		s.Address,
		s.IsActive,
		s.UpdatedAt,
		s.TenantID,
		s.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update shareholder", "id", s.ID.String(), "error", err)
		return fmt.Errorf("failed to update shareholder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return shareholder.ErrShareholderNotFound{ShareholderID: s.ID}
	}

	return nil
}

// Deactivate soft-removes a shareholder. The row is kept because share
// entries and transactions reference it.
func (r *ShareholderRepository) Deactivate(ctx context.Context, tenantID string, id uuid.UUID) error {
	query := `
		UPDATE shareholders
		SET is_active = false, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
	`

	result, err := r.querier.Exec(ctx, query, tenantID, id)
	if err != nil {
		r.logger.Error("Failed to deactivate shareholder", "id", id.String(), "error", err)
		return fmt.Errorf("failed to deactivate shareholder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return shareholder.ErrShareholderNotFound{ShareholderID: id}
	}

	return nil
}

func (r *ShareholderRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]*shareholder.Shareholder, error) {
	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list shareholders", "error", err)
		return nil, fmt.Errorf("failed to list shareholders: %w", err)
	}
	defer rows.Close()

	var shareholders []*shareholder.Shareholder
	for rows.Next() {
		s, err := r.scanRow(rows)
		if err != nil {
			r.logger.Error("Failed to scan shareholder", "error", err)
			return nil, fmt.Errorf("failed to scan shareholder: %w", err)
		}
		shareholders = append(shareholders, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over shareholders: %w", err)
	}

	return shareholders, nil
}

func (r *ShareholderRepository) scanRow(row pgx.Row) (*shareholder.Shareholder, error) {
	var s shareholder.Shareholder
	err := row.Scan(
		&s.ID,
		&s.TenantID,
		&s.Name,
		&s.Type,
		&s.OrganizationNumber,
		&s.Email,
		&s.Address,
		&s.IsActive,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
