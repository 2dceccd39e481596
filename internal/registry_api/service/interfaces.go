package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/boardroom-share-registry/internal/domain/captable"
	"github.com/boardroom-share-registry/internal/domain/shareentry"
	"github.com/boardroom-share-registry/internal/domain/shareholder"
	"github.com/boardroom-share-registry/internal/domain/sharetx"
)

// TxRunner runs a function inside one database transaction, rolling back
// on error or panic. *persistence.PostgresDB satisfies it.
type TxRunner interface {
	ExecuteTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// ShareholderService defines the interface for shareholder operations
type ShareholderService interface {
	// CreateShareholder registers a new shareholder in the tenant's registry
	CreateShareholder(ctx context.Context, tenantID, name string, shareholderType string, organizationNumber, email, address string) (*shareholder.Shareholder, error)

	// GetShareholderByID retrieves a shareholder by its ID
	// Returns ErrShareholderNotFound if the shareholder doesn't exist
	GetShareholderByID(ctx context.Context, tenantID string, id uuid.UUID) (*shareholder.Shareholder, error)

	// ListShareholders retrieves the tenant's shareholders, optionally only active ones
	ListShareholders(ctx context.Context, tenantID string, activeOnly bool) ([]*shareholder.Shareholder, error)

	// UpdateShareholder applies a partial update to an existing shareholder
	UpdateShareholder(ctx context.Context, tenantID string, id uuid.UUID, patch shareholder.Patch) (*shareholder.Shareholder, error)

	// RemoveShareholder soft-removes a shareholder.
	// Returns ErrActiveHoldings while the holder has active share entries.
	RemoveShareholder(ctx context.Context, tenantID string, id uuid.UUID) error
}

// ShareEntryService defines the read-only interface over share entries.
// Entries are only ever mutated through the transaction orchestration.
type ShareEntryService interface {
	// GetEntryByID retrieves an entry by its ID
	GetEntryByID(ctx context.Context, tenantID string, id uuid.UUID) (*shareentry.Entry, error)

	// ListEntries retrieves entries, optionally filtered to active ones or
	// to one shareholder
	ListEntries(ctx context.Context, tenantID string, activeOnly bool, shareholderID *uuid.UUID) ([]*shareentry.Entry, error)
}

// TransactionService defines the interface for ledger operations
type TransactionService interface {
	// CreateTransaction validates and commits a registry transaction: the
	// log record, the entry mutations it implies and the outbox event are
	// written atomically
	CreateTransaction(ctx context.Context, transaction *sharetx.Transaction) (*sharetx.Transaction, error)

	// GetTransactionByID retrieves a transaction by its ID
	GetTransactionByID(ctx context.Context, tenantID string, id uuid.UUID) (*sharetx.Transaction, error)

	// ListTransactions retrieves the tenant's transaction history, newest first
	ListTransactions(ctx context.Context, tenantID string) ([]*sharetx.Transaction, error)
}

// CapTableService computes ownership aggregations over the current registry
type CapTableService interface {
	// GetCapTable computes the tenant's cap table from active entries and
	// active shareholders
	GetCapTable(ctx context.Context, tenantID string) (*captable.Summary, error)

	// Export assembles the full registry document: all shareholders, the
	// transaction history and a fresh cap table
	Export(ctx context.Context, tenantID string) (*RegistryExport, error)
}

// RegistryExport is the structured registry document
type RegistryExport struct {
	Shareholders []*shareholder.Shareholder `json:"shareholders"`
	Transactions []*sharetx.Transaction     `json:"transactions"`
	CapTable     *captable.Summary          `json:"cap_table"`
}
