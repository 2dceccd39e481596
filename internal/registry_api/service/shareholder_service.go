package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/boardroom-share-registry/internal/domain/audit"
	"github.com/boardroom-share-registry/internal/domain/shared"
	"github.com/boardroom-share-registry/internal/domain/shareentry"
	"github.com/boardroom-share-registry/internal/domain/shareholder"
)

// ShareholderServiceImpl implements the ShareholderService interface
type ShareholderServiceImpl struct {
	shareholderRepo shareholder.Repository
	entryRepo       shareentry.Repository
	auditRepo       audit.Repository
	logger          *slog.Logger
}

// NewShareholderService creates a new shareholder service
func NewShareholderService(
	shareholderRepo shareholder.Repository,
	entryRepo shareentry.Repository,
	auditRepo audit.Repository,
	logger *slog.Logger,
) ShareholderService {
	return &ShareholderServiceImpl{
		shareholderRepo: shareholderRepo,
		entryRepo:       entryRepo,
		auditRepo:       auditRepo,
		logger:          logger,
	}
}

// CreateShareholder registers a new shareholder in the tenant's registry
func (s *ShareholderServiceImpl) CreateShareholder(ctx context.Context, tenantID, name string, shareholderType string, organizationNumber, email, address string) (*shareholder.Shareholder, error) {
	holder, err := shareholder.NewShareholder(tenantID, name, shared.ShareholderType(shareholderType), organizationNumber, email, address)
	if err != nil {
		return nil, err
	}

	if err := s.shareholderRepo.Create(ctx, holder); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, tenantID, audit.ActionShareholderCreated, holder.ID, holder)

	return holder, nil
}

// GetShareholderByID retrieves a shareholder by its ID
func (s *ShareholderServiceImpl) GetShareholderByID(ctx context.Context, tenantID string, id uuid.UUID) (*shareholder.Shareholder, error) {
	return s.shareholderRepo.GetByID(ctx, tenantID, id)
}

// ListShareholders retrieves the tenant's shareholders
func (s *ShareholderServiceImpl) ListShareholders(ctx context.Context, tenantID string, activeOnly bool) ([]*shareholder.Shareholder, error) {
	if activeOnly {
		return s.shareholderRepo.ListActive(ctx, tenantID)
	}
	return s.shareholderRepo.List(ctx, tenantID)
}

// UpdateShareholder applies a partial update to an existing shareholder
func (s *ShareholderServiceImpl) UpdateShareholder(ctx context.Context, tenantID string, id uuid.UUID, patch shareholder.Patch) (*shareholder.Shareholder, error) {
	holder, err := s.shareholderRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := holder.Apply(patch); err != nil {
		return nil, err
	}

	if err := s.shareholderRepo.Update(ctx, holder); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, tenantID, audit.ActionShareholderUpdated, holder.ID, holder)

	return holder, nil
}

// RemoveShareholder soft-removes a shareholder. A holder with active share
// entries cannot be removed; the registry would lose track of live shares.
func (s *ShareholderServiceImpl) RemoveShareholder(ctx context.Context, tenantID string, id uuid.UUID) error {
	if _, err := s.shareholderRepo.GetByID(ctx, tenantID, id); err != nil {
		return err
	}

	count, err := s.entryRepo.CountActiveByShareholder(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shareholder.ErrActiveHoldings{ShareholderID: id}
	}

	if err := s.shareholderRepo.Deactivate(ctx, tenantID, id); err != nil {
		return err
	}

	s.recordAudit(ctx, tenantID, audit.ActionShareholderRemoved, id, map[string]string{"shareholder_id": id.String()})

	return nil
}

// recordAudit appends to the audit trail. Audit is best effort; a trail
// write failure never fails the mutation that already happened.
func (s *ShareholderServiceImpl) recordAudit(ctx context.Context, tenantID, action string, subjectID uuid.UUID, payload interface{}) {
	event, err := audit.NewEvent(tenantID, action, "shareholder", subjectID, payload)
	if err != nil {
		s.logger.Error("Failed to build audit event", "action", action, "error", err)
		return
	}
	if err := s.auditRepo.Append(ctx, event); err != nil {
		s.logger.Error("Failed to append audit event", "action", action, "error", err)
	}
}
