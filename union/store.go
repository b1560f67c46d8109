package union

import (
	"context"

	"github.com/elevatehq/palisade/id"
)

// Store defines persistence operations for union memberships.
type Store interface {
	// CreateUnionMembership persists a new membership.
	CreateUnionMembership(ctx context.Context, m *Membership) error

	// GetUnionMembership retrieves a membership by ID.
	GetUnionMembership(ctx context.Context, memberID id.UnionMemberID) (*Membership, error)

	// UpdateUnionMembership persists changes to a membership.
	UpdateUnionMembership(ctx context.Context, m *Membership) error

	// ListUnionMemberships returns memberships matching the filter.
	ListUnionMemberships(ctx context.Context, filter *ListFilter) ([]*Membership, error)

	// ListActiveUnionMemberships returns the user's ACTIVE memberships with
	// their contract rules.
	ListActiveUnionMemberships(ctx context.Context, tenantID, userID string) ([]*Membership, error)

	// DeleteUnionMembershipsByTenant removes all memberships for a tenant.
	DeleteUnionMembershipsByTenant(ctx context.Context, tenantID string) error
}
