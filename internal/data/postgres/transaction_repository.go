package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/boardroom-share-registry/internal/domain/sharetx"
	"github.com/boardroom-share-registry/internal/platform/persistence"
)

// TransactionRepository implements the sharetx.Repository interface for
// PostgreSQL. Rows are inserted and read, never updated or deleted.
type TransactionRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewTransactionRepository creates a new PostgreSQL share transaction repository
func NewTransactionRepository(logger *slog.Logger, db *persistence.PostgresDB) sharetx.Repository {
	return &TransactionRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction so the log row commits
// together with the entry mutations it describes
func (r *TransactionRepository) WithTx(tx pgx.Tx) sharetx.Repository {
	return &TransactionRepository{
		querier: tx,
		logger:  r.logger,
	}
}

const transactionColumns = `id, tenant_id, type, date, from_shareholder_id, to_shareholder_id, share_class, number_of_shares, share_number_from, share_number_to, nominal_value, votes_per_share, price_per_share, total_amount, description, created_at`

// Create appends a transaction to the ledger
func (r *TransactionRepository) Create(ctx context.Context, t *sharetx.Transaction) error {
	query := `
		INSERT INTO share_transactions (id, tenant_id, type, date, from_shareholder_id, to_shareholder_id, share_class, number_of_shares, share_number_from, share_number_to, nominal_value, votes_per_share, price_per_share, total_amount, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.querier.Exec(ctx, query,
		t.ID,
		t.TenantID,
		t.Type,
		t.Date,
		t.FromShareholderID,
		t.ToShareholderID,
		t.ShareClass,
		t.NumberOfShares,
		t.ShareNumberFrom,
		t.ShareNumberTo,
		t.NominalValue,
		t.VotesPerShare,
		t.PricePerShare,
		t.TotalAmount,
		t.Description,
		t.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create share transaction", "error", err)
		return fmt.Errorf("failed to create share transaction: %w", err)
	}

	return nil
}

// GetByID retrieves a transaction by id within the tenant
func (r *TransactionRepository) GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*sharetx.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM share_transactions
		WHERE tenant_id = $1 AND id = $2
	`

	t, err := r.scanRow(r.querier.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sharetx.ErrTransactionNotFound{TransactionID: id}
		}
		r.logger.Error("Failed to get share transaction", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get share transaction: %w", err)
	}

	return t, nil
}

// List retrieves the tenant's full transaction history, newest first
func (r *TransactionRepository) List(ctx context.Context, tenantID string) ([]*sharetx.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM share_transactions
		WHERE tenant_id = $1
		ORDER BY date DESC, created_at DESC
	`

	rows, err := r.querier.Query(ctx, query, tenantID)
	if err != nil {
		r.logger.Error("Failed to list share transactions", "error", err)
		return nil, fmt.Errorf("failed to list share transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*sharetx.Transaction
	for rows.Next() {
		t, err := r.scanRow(rows)
		if err != nil {
			r.logger.Error("Failed to scan share transaction", "error", err)
			return nil, fmt.Errorf("failed to scan share transaction: %w", err)
		}
		transactions = append(transactions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over share transactions: %w", err)
	}

	return transactions, nil
}

func (r *TransactionRepository) scanRow(row pgx.Row) (*sharetx.Transaction, error) {
	var t sharetx.Transaction
	err := row.Scan(
		&t.ID,
		&t.TenantID,
		&t.Type,
		&t.Date,
		&t.FromShareholderID,
		&t.ToShareholderID,
		&t.ShareClass,
		&t.NumberOfShares,
		&t.ShareNumberFrom,
		&t.ShareNumberTo,
		&t.NominalValue,
		&t.VotesPerShare,
		&t.PricePerShare,
		&t.TotalAmount,
		&t.Description,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
