package policy

import (
	"context"

	"github.com/elevatehq/palisade/id"
)

// Store defines persistence operations for access policies.
type Store interface {
	// CreatePolicy persists a new policy.
	CreatePolicy(ctx context.Context, p *AccessPolicy) error

	// GetPolicy retrieves a policy by ID.
	GetPolicy(ctx context.Context, polID id.PolicyID) (*AccessPolicy, error)

	// GetPolicyByName retrieves a policy by tenant and name.
	GetPolicyByName(ctx context.Context, tenantID, name string) (*AccessPolicy, error)

	// UpdatePolicy persists changes to a policy.
	UpdatePolicy(ctx context.Context, p *AccessPolicy) error

	// DeletePolicy removes a policy by ID.
	DeletePolicy(ctx context.Context, polID id.PolicyID) error

	// ListPolicies returns policies matching the filter.
	ListPolicies(ctx context.Context, filter *ListFilter) ([]*AccessPolicy, error)

	// CountPolicies returns the number of policies matching the filter.
	CountPolicies(ctx context.Context, filter *ListFilter) (int64, error)

	// ListActivePolicies returns all ACTIVE policies for a tenant ordered by
	// descending priority. Effective-date filtering is the evaluator's job
	// so that a single query serves every evaluation instant.
	ListActivePolicies(ctx context.Context, tenantID string) ([]*AccessPolicy, error)

	// DeletePoliciesByTenant removes all policies for a tenant.
	DeletePoliciesByTenant(ctx context.Context, tenantID string) error
}
