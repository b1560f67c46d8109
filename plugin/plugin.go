// Package plugin defines the plugin system for Palisade.
// Plugins are notified of lifecycle events (decision made, policy updated,
// delegation revoked, etc.) and can react — logging, metrics, tracing, etc.
//
// Each lifecycle hook is a separate interface so plugins opt in only
// to the events they care about.
package plugin

import (
	"context"

	"github.com/elevatehq/palisade/delegation"
	"github.com/elevatehq/palisade/id"
	"github.com/elevatehq/palisade/org"
	"github.com/elevatehq/palisade/policy"
)

// Plugin is the base interface all plugins must implement.
type Plugin interface {
	// Name returns a unique human-readable name for the plugin.
	Name() string
}

// ──────────────────────────────────────────────────
// Decision lifecycle hooks
// ──────────────────────────────────────────────────

// BeforeDecision is called before a scope access decision is evaluated.
// The req parameter is *palisade.DecisionRequest (passed as any to avoid
// an import cycle).
type BeforeDecision interface {
	OnBeforeDecision(ctx context.Context, req any) error
}

// AfterDecision is called after a scope access decision completes.
// The req parameter is *palisade.DecisionRequest.
type AfterDecision interface {
	OnAfterDecision(ctx context.Context, req any, allowed bool) error
}

// ──────────────────────────────────────────────────
// Policy lifecycle hooks
// ──────────────────────────────────────────────────

// PolicyCreated is called after an access policy is created.
type PolicyCreated interface {
	OnPolicyCreated(ctx context.Context, p *policy.AccessPolicy) error
}

// PolicyUpdated is called after an access policy is updated.
type PolicyUpdated interface {
	OnPolicyUpdated(ctx context.Context, p *policy.AccessPolicy) error
}

// PolicyDeleted is called after an access policy is deleted.
type PolicyDeleted interface {
	OnPolicyDeleted(ctx context.Context, polID id.PolicyID) error
}

// ──────────────────────────────────────────────────
// Delegation lifecycle hooks
// ──────────────────────────────────────────────────

// DelegationCreated is called after a delegation is created.
type DelegationCreated interface {
	OnDelegationCreated(ctx context.Context, d *delegation.Delegation) error
}

// DelegationRevoked is called after a delegation is revoked.
type DelegationRevoked interface {
	OnDelegationRevoked(ctx context.Context, d *delegation.Delegation) error
}

// ──────────────────────────────────────────────────
// Organizational lifecycle hooks
// ──────────────────────────────────────────────────

// TeamMemberAdded is called after a user joins a team.
type TeamMemberAdded interface {
	OnTeamMemberAdded(ctx context.Context, m *org.TeamMembership) error
}

// TeamMemberRemoved is called after a team membership is ended.
type TeamMemberRemoved interface {
	OnTeamMemberRemoved(ctx context.Context, membershipID id.TeamMembershipID) error
}

// CacheCleared is called after the membership cache is invalidated.
// Empty userID and tenantID mean the whole cache was flushed.
type CacheCleared interface {
	OnCacheCleared(ctx context.Context, userID, tenantID string) error
}

// ──────────────────────────────────────────────────
// Shutdown hook
// ──────────────────────────────────────────────────

// Shutdown is called during graceful shutdown.
type Shutdown interface {
	OnShutdown(ctx context.Context) error
}
