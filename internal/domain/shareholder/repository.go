package shareholder

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository defines shareholder persistence operations. All reads are
// tenant-scoped; a row belonging to another tenant is a not-found, never
// another tenant's data.
type Repository interface {
	Create(ctx context.Context, s *Shareholder) error
	GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*Shareholder, error)
	List(ctx context.Context, tenantID string) ([]*Shareholder, error)
	ListActive(ctx context.Context, tenantID string) ([]*Shareholder, error)
	Update(ctx context.Context, s *Shareholder) error

	// Deactivate soft-removes a shareholder. The active-holdings guard is
	// enforced by the service layer before calling this.
	Deactivate(ctx context.Context, tenantID string, id uuid.UUID) error

	WithTx(tx pgx.Tx) Repository
}

// ErrShareholderNotFound indicates a missing shareholder, or one belonging
// to a different tenant
type ErrShareholderNotFound struct {
	ShareholderID uuid.UUID
}

func (e ErrShareholderNotFound) Error() string {
	return "shareholder not found: " + e.ShareholderID.String()
}

// Is implements the errors.Is interface for ErrShareholderNotFound
func (e ErrShareholderNotFound) Is(target error) bool {
	t, ok := target.(ErrShareholderNotFound)
	if !ok {
		return false
	}
	if t.ShareholderID == uuid.Nil {
		return true
	}
	return e.ShareholderID == t.ShareholderID
}

// ErrActiveHoldings indicates an attempt to remove a shareholder that still
// holds active share entries
type ErrActiveHoldings struct {
	ShareholderID uuid.UUID
}

func (e ErrActiveHoldings) Error() string {
	return "shareholder still holds active shares: " + e.ShareholderID.String()
}
