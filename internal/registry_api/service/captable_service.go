package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/boardroom-share-registry/internal/domain/captable"
	"github.com/boardroom-share-registry/internal/domain/shareentry"
	"github.com/boardroom-share-registry/internal/domain/shareholder"
	"github.com/boardroom-share-registry/internal/domain/sharetx"
)

// CapTableServiceImpl implements the CapTableService interface. It only
// ever reads; aggregation is recomputed from the active entries on demand.
type CapTableServiceImpl struct {
	shareholderRepo shareholder.Repository
	entryRepo       shareentry.Repository
	txRepo          sharetx.Repository
}

// NewCapTableService creates a new cap table service
func NewCapTableService(
	shareholderRepo shareholder.Repository,
	entryRepo shareentry.Repository,
	txRepo sharetx.Repository,
) CapTableService {
	return &CapTableServiceImpl{
		shareholderRepo: shareholderRepo,
		entryRepo:       entryRepo,
		txRepo:          txRepo,
	}
}

// GetCapTable computes the tenant's cap table. The two inputs are fetched
// concurrently; computation itself is pure.
func (s *CapTableServiceImpl) GetCapTable(ctx context.Context, tenantID string) (*captable.Summary, error) {
	var (
		entries []*shareentry.Entry
		holders []*shareholder.Shareholder
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = s.entryRepo.ListActive(gctx, tenantID)
		return err
	})
	g.Go(func() error {
		var err error
		holders, err = s.shareholderRepo.ListActive(gctx, tenantID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return captable.Compute(entries, holders), nil
}

// Export assembles the registry document: every shareholder ever recorded,
// the full transaction history and a fresh cap table
func (s *CapTableServiceImpl) Export(ctx context.Context, tenantID string) (*RegistryExport, error) {
	var (
		holders      []*shareholder.Shareholder
		transactions []*sharetx.Transaction
		summary      *captable.Summary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		holders, err = s.shareholderRepo.List(gctx, tenantID)
		return err
	})
	g.Go(func() error {
		var err error
		transactions, err = s.txRepo.List(gctx, tenantID)
		return err
	})
	g.Go(func() error {
		var err error
		summary, err = s.GetCapTable(gctx, tenantID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &RegistryExport{
		Shareholders: holders,
		Transactions: transactions,
		CapTable:     summary,
	}, nil
}
