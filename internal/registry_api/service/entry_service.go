package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/boardroom-share-registry/internal/domain/shareentry"
)

// ShareEntryServiceImpl implements the ShareEntryService interface
type ShareEntryServiceImpl struct {
	entryRepo shareentry.Repository
}

// NewShareEntryService creates a new share entry service
func NewShareEntryService(entryRepo shareentry.Repository) ShareEntryService {
	return &ShareEntryServiceImpl{
		entryRepo: entryRepo,
	}
}

// GetEntryByID retrieves an entry by its ID
func (s *ShareEntryServiceImpl) GetEntryByID(ctx context.Context, tenantID string, id uuid.UUID) (*shareentry.Entry, error) {
	return s.entryRepo.GetByID(ctx, tenantID, id)
}

// ListEntries retrieves entries, optionally filtered
func (s *ShareEntryServiceImpl) ListEntries(ctx context.Context, tenantID string, activeOnly bool, shareholderID *uuid.UUID) ([]*shareentry.Entry, error) {
	if shareholderID != nil {
		entries, err := s.entryRepo.ListByShareholder(ctx, tenantID, *shareholderID)
		if err != nil {
			return nil, err
		}
		if !activeOnly {
			return entries, nil
		}
		active := entries[:0:0]
		for _, e := range entries {
			if e.IsActive {
				active = append(active, e)
			}
		}
		return active, nil
	}

	if activeOnly {
		return s.entryRepo.ListActive(ctx, tenantID)
	}
	return s.entryRepo.List(ctx, tenantID)
}
