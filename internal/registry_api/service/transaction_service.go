package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/boardroom-share-registry/internal/domain/audit"
	"github.com/boardroom-share-registry/internal/domain/outbox"
	"github.com/boardroom-share-registry/internal/domain/shared"
	"github.com/boardroom-share-registry/internal/domain/shareentry"
	"github.com/boardroom-share-registry/internal/domain/shareholder"
	"github.com/boardroom-share-registry/internal/domain/sharetx"
)

// TransactionServiceImpl implements the TransactionService interface. It is
// the single write path into the share ledger: every entry mutation in the
// system happens inside CreateTransaction's database transaction.
type TransactionServiceImpl struct {
	txRunner        TxRunner
	shareholderRepo shareholder.Repository
	entryRepo       shareentry.Repository
	txRepo          sharetx.Repository
	outboxRepo      outbox.Repository
	auditRepo       audit.Repository
	logger          *slog.Logger
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	txRunner TxRunner,
	shareholderRepo shareholder.Repository,
	entryRepo shareentry.Repository,
	txRepo sharetx.Repository,
	outboxRepo outbox.Repository,
	auditRepo audit.Repository,
	logger *slog.Logger,
) TransactionService {
	return &TransactionServiceImpl{
		txRunner:        txRunner,
		shareholderRepo: shareholderRepo,
		entryRepo:       entryRepo,
		txRepo:          txRepo,
		outboxRepo:      outboxRepo,
		auditRepo:       auditRepo,
		logger:          logger,
	}
}

// CreateTransaction validates the submitted transaction, applies its entry
// mutations, appends it to the ledger and enqueues the outbound event, all
// in one database transaction. Affected entries are read FOR UPDATE, so two
// concurrent transactions against the same holding serialize and the loser
// fails its balance check instead of double-spending.
func (s *TransactionServiceImpl) CreateTransaction(ctx context.Context, t *sharetx.Transaction) (*sharetx.Transaction, error) {
	t.ID = uuid.New()
	t.CreatedAt = time.Now()
	if t.Date.IsZero() {
		t.Date = t.CreatedAt
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	err := s.txRunner.ExecuteTx(ctx, func(tx pgx.Tx) error {
		shareholderRepo := s.shareholderRepo.WithTx(tx)
		entryRepo := s.entryRepo.WithTx(tx)
		txRepo := s.txRepo.WithTx(tx)
		outboxRepo := s.outboxRepo.WithTx(tx)

		if err := s.resolveParties(ctx, shareholderRepo, t); err != nil {
			return err
		}

		var err error
		switch t.Type {
		case shared.TransactionTypeTransfer:
			err = s.applyTransfer(ctx, entryRepo, t, true)
		case shared.TransactionTypeRedemption:
			err = s.applyTransfer(ctx, entryRepo, t, false)
		case shared.TransactionTypeSplit:
			err = s.applySplit(ctx, entryRepo, t)
		default: // founding, new_issue, bonus_issue
			err = s.applyIssuance(ctx, entryRepo, t)
		}
		if err != nil {
			return err
		}

		if err := txRepo.Create(ctx, t); err != nil {
			return err
		}

		message, err := outbox.NewMessage(t)
		if err != nil {
			return err
		}
		return outboxRepo.Create(ctx, message)
	})
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, t)

	return t, nil
}

// GetTransactionByID retrieves a transaction by its ID
func (s *TransactionServiceImpl) GetTransactionByID(ctx context.Context, tenantID string, id uuid.UUID) (*sharetx.Transaction, error) {
	return s.txRepo.GetByID(ctx, tenantID, id)
}

// ListTransactions retrieves the tenant's transaction history, newest first
func (s *TransactionServiceImpl) ListTransactions(ctx context.Context, tenantID string) ([]*sharetx.Transaction, error) {
	return s.txRepo.List(ctx, tenantID)
}

// resolveParties checks that every shareholder the transaction names exists
// and is active
func (s *TransactionServiceImpl) resolveParties(ctx context.Context, repo shareholder.Repository, t *sharetx.Transaction) error {
	for _, id := range []*uuid.UUID{t.FromShareholderID, t.ToShareholderID} {
		if id == nil {
			continue
		}
		holder, err := repo.GetByID(ctx, t.TenantID, *id)
		if err != nil {
			return err
		}
		if !holder.IsActive {
			return sharetx.ErrShareholderInactive{ShareholderID: *id}
		}
	}
	return nil
}

// applyIssuance creates a new active entry for the recipient. The issued
// range must not collide with any active range in the class, and issuing
// into a class that already has active entries must match their voting
// weight; every entry of a class carries the same votes per share.
func (s *TransactionServiceImpl) applyIssuance(ctx context.Context, entryRepo shareentry.Repository, t *sharetx.Transaction) error {
	existing, err := entryRepo.LockActiveByClass(ctx, t.TenantID, t.ShareClass)
	if err != nil {
		return err
	}

	for _, e := range existing {
		if e.Overlaps(t.ShareNumberFrom, t.ShareNumberTo) {
			return sharetx.ErrRangeOverlap{
				ShareClass:      t.ShareClass,
				ShareNumberFrom: t.ShareNumberFrom,
				ShareNumberTo:   t.ShareNumberTo,
			}
		}
	}

	if len(existing) > 0 && existing[0].VotesPerShare != t.VotesPerShare {
		return sharetx.ErrVotingWeightMismatch{
			ShareClass: t.ShareClass,
			Submitted:  t.VotesPerShare,
			ClassVotes: existing[0].VotesPerShare,
		}
	}

	entry, err := shareentry.NewEntry(t.TenantID, *t.ToShareholderID, t.ShareClass, t.ShareNumberFrom, t.ShareNumberTo, t.NominalValue, t.VotesPerShare)
	if err != nil {
		return err
	}
	return entryRepo.Create(ctx, entry)
}

// applyTransfer carves the named range out of the source holder's entry.
// The range must lie within one active entry of the source holder; the
// consumed entry is deactivated, remainders are recreated for the source
// holder, and for a transfer the carved span becomes the recipient's entry.
// For a redemption the carved span is simply retired.
func (s *TransactionServiceImpl) applyTransfer(ctx context.Context, entryRepo shareentry.Repository, t *sharetx.Transaction, toRecipient bool) error {
	held, err := entryRepo.LockActiveByShareholderClass(ctx, t.TenantID, *t.FromShareholderID, t.ShareClass)
	if err != nil {
		return err
	}

	var source *shareentry.Entry
	for _, e := range held {
		if e.Contains(t.ShareNumberFrom, t.ShareNumberTo) {
			source = e
			break
		}
	}
	if source == nil {
		return sharetx.ErrSharesNotHeld{
			ShareholderID:   *t.FromShareholderID,
			ShareClass:      t.ShareClass,
			ShareNumberFrom: t.ShareNumberFrom,
			ShareNumberTo:   t.ShareNumberTo,
		}
	}

	// Shares keep their book value and voting weight across ownership changes
	t.NominalValue = source.NominalValue
	t.VotesPerShare = source.VotesPerShare

	consumed, remainders, err := shareentry.Carve(source, t.ShareNumberFrom, t.ShareNumberTo)
	if err != nil {
		return err
	}

	changed, err := entryRepo.Deactivate(ctx, t.TenantID, source.ID)
	if err != nil {
		return err
	}
	if !changed {
		return shareentry.ErrEntryConsumed{EntryID: source.ID}
	}

	for _, r := range remainders {
		remainder, err := shareentry.NewEntry(t.TenantID, source.ShareholderID, t.ShareClass, r.From, r.To, source.NominalValue, source.VotesPerShare)
		if err != nil {
			return err
		}
		if err := entryRepo.Create(ctx, remainder); err != nil {
			return err
		}
	}

	if toRecipient {
		received, err := shareentry.NewEntry(t.TenantID, *t.ToShareholderID, t.ShareClass, consumed.From, consumed.To, source.NominalValue, source.VotesPerShare)
		if err != nil {
			return err
		}
		if err := entryRepo.Create(ctx, received); err != nil {
			return err
		}
	}

	return nil
}

// applySplit multiplies every active holding in the class by the ratio.
// Old entries are retired and each holding is recreated with ratio times
// the shares at a ratio-th of the nominal value, renumbered contiguously
// from 1 in ascending order of the old ranges. Total share capital and
// every holder's ownership percentage are unchanged.
func (s *TransactionServiceImpl) applySplit(ctx context.Context, entryRepo shareentry.Repository, t *sharetx.Transaction) error {
	ratio := t.NumberOfShares

	existing, err := entryRepo.LockActiveByClass(ctx, t.TenantID, t.ShareClass)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		return sharetx.ErrEmptyShareClass{ShareClass: t.ShareClass}
	}

	nextFrom := int64(1)
	for _, e := range existing {
		changed, err := entryRepo.Deactivate(ctx, t.TenantID, e.ID)
		if err != nil {
			return err
		}
		if !changed {
			return shareentry.ErrEntryConsumed{EntryID: e.ID}
		}

		newCount := e.NumberOfShares * ratio
		replacement, err := shareentry.NewEntry(t.TenantID, e.ShareholderID, t.ShareClass, nextFrom, nextFrom+newCount-1, e.NominalValue/float64(ratio), e.VotesPerShare)
		if err != nil {
			return err
		}
		if err := entryRepo.Create(ctx, replacement); err != nil {
			return err
		}
		nextFrom += newCount
	}

	// The recorded range spans the class's renumbered share sequence
	t.ShareNumberFrom = 1
	t.ShareNumberTo = nextFrom - 1
	t.NominalValue = existing[0].NominalValue / float64(ratio)
	t.VotesPerShare = existing[0].VotesPerShare

	return nil
}

// recordAudit appends the committed transaction to the audit trail. Audit
// is best effort; the ledger commit already happened.
func (s *TransactionServiceImpl) recordAudit(ctx context.Context, t *sharetx.Transaction) {
	event, err := audit.NewEvent(t.TenantID, audit.ActionTransactionCreated, "share_transaction", t.ID, t)
	if err != nil {
		s.logger.Error("Failed to build audit event", "transaction_id", t.ID.String(), "error", err)
		return
	}
	if err := s.auditRepo.Append(ctx, event); err != nil {
		s.logger.Error("Failed to append audit event", "transaction_id", t.ID.String(), "error", err)
	}
}
