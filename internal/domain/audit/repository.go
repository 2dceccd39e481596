package audit

import "context"

// Repository is the append-only audit trail. There is no update or delete;
// the trail only ever grows.
type Repository interface {
	Append(ctx context.Context, event *Event) error
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*Event, error)
}
