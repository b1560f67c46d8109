package plugin

import (
	"context"
	"log/slog"

	"github.com/elevatehq/palisade/delegation"
	"github.com/elevatehq/palisade/id"
	"github.com/elevatehq/palisade/org"
	"github.com/elevatehq/palisade/policy"
)

// Named entry types pair a hook with the plugin name for logging.

type beforeDecisionEntry struct {
	name string
	hook BeforeDecision
}
type afterDecisionEntry struct {
	name string
	hook AfterDecision
}
type policyCreatedEntry struct {
	name string
	hook PolicyCreated
}
type policyUpdatedEntry struct {
	name string
	hook PolicyUpdated
}
type policyDeletedEntry struct {
	name string
	hook PolicyDeleted
}
type delegationCreatedEntry struct {
	name string
	hook DelegationCreated
}
type delegationRevokedEntry struct {
	name string
	hook DelegationRevoked
}
type teamMemberAddedEntry struct {
	name string
	hook TeamMemberAdded
}
type teamMemberRemovedEntry struct {
	name string
	hook TeamMemberRemoved
}
type cacheClearedEntry struct {
	name string
	hook CacheCleared
}
type shutdownEntry struct {
	name string
	hook Shutdown
}

// Registry holds registered plugins and dispatches lifecycle events.
// It type-caches plugins at registration time so emit calls iterate
// only over plugins implementing the relevant hook.
type Registry struct {
	plugins []Plugin
	logger  *slog.Logger

	beforeDecision    []beforeDecisionEntry
	afterDecision     []afterDecisionEntry
	policyCreated     []policyCreatedEntry
	policyUpdated     []policyUpdatedEntry
	policyDeleted     []policyDeletedEntry
	delegationCreated []delegationCreatedEntry
	delegationRevoked []delegationRevokedEntry
	teamMemberAdded   []teamMemberAddedEntry
	teamMemberRemoved []teamMemberRemovedEntry
	cacheCleared      []cacheClearedEntry
	shutdown          []shutdownEntry
}

// NewRegistry creates a plugin registry with the given logger.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{logger: logger}
}

// Register adds a plugin and type-asserts it into all applicable
// hook caches. Plugins are notified in registration order.
func (r *Registry) Register(p Plugin) {
	r.plugins = append(r.plugins, p)
	name := p.Name()

	if h, ok := p.(BeforeDecision); ok {
		r.beforeDecision = append(r.beforeDecision, beforeDecisionEntry{name, h})
	}
	if h, ok := p.(AfterDecision); ok {
		r.afterDecision = append(r.afterDecision, afterDecisionEntry{name, h})
	}
	if h, ok := p.(PolicyCreated); ok {
		r.policyCreated = append(r.policyCreated, policyCreatedEntry{name, h})
	}
	if h, ok := p.(PolicyUpdated); ok {
		r.policyUpdated = append(r.policyUpdated, policyUpdatedEntry{name, h})
	}
	if h, ok := p.(PolicyDeleted); ok {
		r.policyDeleted = append(r.policyDeleted, policyDeletedEntry{name, h})
	}
	if h, ok := p.(DelegationCreated); ok {
		r.delegationCreated = append(r.delegationCreated, delegationCreatedEntry{name, h})
	}
	if h, ok := p.(DelegationRevoked); ok {
		r.delegationRevoked = append(r.delegationRevoked, delegationRevokedEntry{name, h})
	}
	if h, ok := p.(TeamMemberAdded); ok {
		r.teamMemberAdded = append(r.teamMemberAdded, teamMemberAddedEntry{name, h})
	}
	if h, ok := p.(TeamMemberRemoved); ok {
		r.teamMemberRemoved = append(r.teamMemberRemoved, teamMemberRemovedEntry{name, h})
	}
	if h, ok := p.(CacheCleared); ok {
		r.cacheCleared = append(r.cacheCleared, cacheClearedEntry{name, h})
	}
	if h, ok := p.(Shutdown); ok {
		r.shutdown = append(r.shutdown, shutdownEntry{name, h})
	}
}

// Plugins returns all registered plugins.
func (r *Registry) Plugins() []Plugin { return r.plugins }

// ──────────────────────────────────────────────────
// Decision event emitters
// ──────────────────────────────────────────────────

// EmitBeforeDecision notifies all plugins that implement BeforeDecision.
func (r *Registry) EmitBeforeDecision(ctx context.Context, req any) {
	for _, e := range r.beforeDecision {
		if err := e.hook.OnBeforeDecision(ctx, req); err != nil {
			r.logHookError("OnBeforeDecision", e.name, err)
		}
	}
}

// EmitAfterDecision notifies all plugins that implement AfterDecision.
func (r *Registry) EmitAfterDecision(ctx context.Context, req any, allowed bool) {
	for _, e := range r.afterDecision {
		if err := e.hook.OnAfterDecision(ctx, req, allowed); err != nil {
			r.logHookError("OnAfterDecision", e.name, err)
		}
	}
}

// ──────────────────────────────────────────────────
// Policy event emitters
// ──────────────────────────────────────────────────

// EmitPolicyCreated notifies all plugins that implement PolicyCreated.
func (r *Registry) EmitPolicyCreated(ctx context.Context, p *policy.AccessPolicy) {
	for _, e := range r.policyCreated {
		if err := e.hook.OnPolicyCreated(ctx, p); err != nil {
			r.logHookError("OnPolicyCreated", e.name, err)
		}
	}
}

// EmitPolicyUpdated notifies all plugins that implement PolicyUpdated.
func (r *Registry) EmitPolicyUpdated(ctx context.Context, p *policy.AccessPolicy) {
	for _, e := range r.policyUpdated {
		if err := e.hook.OnPolicyUpdated(ctx, p); err != nil {
			r.logHookError("OnPolicyUpdated", e.name, err)
		}
	}
}

// EmitPolicyDeleted notifies all plugins that implement PolicyDeleted.
func (r *Registry) EmitPolicyDeleted(ctx context.Context, polID id.PolicyID) {
	for _, e := range r.policyDeleted {
		if err := e.hook.OnPolicyDeleted(ctx, polID); err != nil {
			r.logHookError("OnPolicyDeleted", e.name, err)
		}
	}
}

// ──────────────────────────────────────────────────
// Delegation event emitters
// ──────────────────────────────────────────────────

// EmitDelegationCreated notifies all plugins that implement DelegationCreated.
func (r *Registry) EmitDelegationCreated(ctx context.Context, d *delegation.Delegation) {
	for _, e := range r.delegationCreated {
		if err := e.hook.OnDelegationCreated(ctx, d); err != nil {
			r.logHookError("OnDelegationCreated", e.name, err)
		}
	}
}

// EmitDelegationRevoked notifies all plugins that implement DelegationRevoked.
func (r *Registry) EmitDelegationRevoked(ctx context.Context, d *delegation.Delegation) {
	for _, e := range r.delegationRevoked {
		if err := e.hook.OnDelegationRevoked(ctx, d); err != nil {
			r.logHookError("OnDelegationRevoked", e.name, err)
		}
	}
}

// ──────────────────────────────────────────────────
// Organizational event emitters
// ──────────────────────────────────────────────────

// EmitTeamMemberAdded notifies all plugins that implement TeamMemberAdded.
func (r *Registry) EmitTeamMemberAdded(ctx context.Context, m *org.TeamMembership) {
	for _, e := range r.teamMemberAdded {
		if err := e.hook.OnTeamMemberAdded(ctx, m); err != nil {
			r.logHookError("OnTeamMemberAdded", e.name, err)
		}
	}
}

// EmitTeamMemberRemoved notifies all plugins that implement TeamMemberRemoved.
func (r *Registry) EmitTeamMemberRemoved(ctx context.Context, membershipID id.TeamMembershipID) {
	for _, e := range r.teamMemberRemoved {
		if err := e.hook.OnTeamMemberRemoved(ctx, membershipID); err != nil {
			r.logHookError("OnTeamMemberRemoved", e.name, err)
		}
	}
}

// EmitCacheCleared notifies all plugins that implement CacheCleared.
func (r *Registry) EmitCacheCleared(ctx context.Context, userID, tenantID string) {
	for _, e := range r.cacheCleared {
		if err := e.hook.OnCacheCleared(ctx, userID, tenantID); err != nil {
			r.logHookError("OnCacheCleared", e.name, err)
		}
	}
}

// ──────────────────────────────────────────────────
// Shutdown emitter
// ──────────────────────────────────────────────────

// EmitShutdown notifies all plugins that implement Shutdown.
func (r *Registry) EmitShutdown(ctx context.Context) {
	for _, e := range r.shutdown {
		if err := e.hook.OnShutdown(ctx); err != nil {
			r.logHookError("OnShutdown", e.name, err)
		}
	}
}

// logHookError logs a warning when a lifecycle hook returns an error.
// Errors from hooks are never propagated — they must not block the pipeline.
func (r *Registry) logHookError(hook, pluginName string, err error) {
	r.logger.Warn("plugin hook error",
		slog.String("hook", hook),
		slog.String("plugin", pluginName),
		slog.String("error", err.Error()),
	)
}
