package delegation

import (
	"context"

	"github.com/elevatehq/palisade/id"
)

// Store defines persistence operations for delegations.
type Store interface {
	// CreateDelegation persists a new delegation.
	CreateDelegation(ctx context.Context, d *Delegation) error

	// GetDelegation retrieves a delegation by ID.
	GetDelegation(ctx context.Context, delegationID id.DelegationID) (*Delegation, error)

	// UpdateDelegation persists changes to a delegation (status, end date).
	UpdateDelegation(ctx context.Context, d *Delegation) error

	// ListDelegations returns delegations matching the filter.
	ListDelegations(ctx context.Context, filter *ListFilter) ([]*Delegation, error)

	// ListActiveForDelegate returns all delegations currently naming the
	// user as delegate, applying the ACTIVE-status and date-window rule.
	ListActiveForDelegate(ctx context.Context, tenantID, delegateID string) ([]*Delegation, error)

	// DeleteDelegationsByTenant removes all delegations for a tenant.
	DeleteDelegationsByTenant(ctx context.Context, tenantID string) error
}
