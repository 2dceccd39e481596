package shareholder

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/boardroom-share-registry/internal/domain/shared"
)

// Common errors
var (
	ErrEmptyName   = errors.New("shareholder name cannot be empty")
	ErrInvalidType = errors.New("shareholder type must be individual, company or fund")
)

// Shareholder represents a legal or natural person that may hold shares.
// A shareholder is never physically deleted while referenced by a share
// entry or transaction; removal flips IsActive instead.
type Shareholder struct {
	ID                 uuid.UUID              `json:"id"`
	TenantID           string                 `json:"tenant_id"`
	Name               string                 `json:"name"`
	Type               shared.ShareholderType `json:"type"`
	OrganizationNumber string                 `json:"organization_number,omitempty"`
	Email              string                 `json:"email,omitempty"`
	Address            string                 `json:"address,omitempty"`
	IsActive           bool                   `json:"is_active"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
}

// NewShareholder creates a new active shareholder with the given details
func NewShareholder(tenantID, name string, shareholderType shared.ShareholderType, organizationNumber, email, address string) (*Shareholder, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if !shareholderType.Valid() {
		return nil, ErrInvalidType
	}

	now := time.Now()
	return &Shareholder{
		ID:                 uuid.New(),
		TenantID:           tenantID,
		Name:               name,
		Type:               shareholderType,
		OrganizationNumber: organizationNumber,
		Email:              email,
		Address:            address,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

// Patch describes an update to a shareholder. Nil fields are left unchanged.
type Patch struct {
	Name               *string
	Type               *shared.ShareholderType
	OrganizationNumber *string
	Email              *string
	Address            *string
}

// Apply mutates the shareholder with the non-nil patch fields
func (s *Shareholder) Apply(patch Patch) error {
	if patch.Name != nil {
		if *patch.Name == "" {
			return ErrEmptyName
		}
		s.Name = *patch.Name
	}
	if patch.Type != nil {
		if !patch.Type.Valid() {
			return ErrInvalidType
		}
		s.Type = *patch.Type
	}
	if patch.OrganizationNumber != nil {
		s.OrganizationNumber = *patch.OrganizationNumber
	}
	if patch.Email != nil {
		s.Email = *patch.Email
	}
	if patch.Address != nil {
		s.Address = *patch.Address
	}
	s.UpdatedAt = time.Now()
	return nil
}
