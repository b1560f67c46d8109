package palisade

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/elevatehq/palisade/id"
	"github.com/elevatehq/palisade/org"
	"github.com/elevatehq/palisade/plugin"
	"github.com/elevatehq/palisade/store"
)

// Engine is the central authorization engine. It coordinates the scope
// access decision function, membership resolution, hierarchy expansion, and
// policy evaluation, and fires extension hooks.
type Engine struct {
	store      store.Store
	aliases    *AliasResolver
	cache      MembershipCache
	membership *MembershipResolver
	hierarchy  *HierarchyExpander
	evaluator  PolicyEvaluator
	audit      AuditSink
	plugins    *plugin.Registry
	logger     *slog.Logger
	config     Config
}

// DecisionRequest captures one scope access decision for plugin hooks.
type DecisionRequest struct {
	Principal *Principal
	Resource  *ResourceContext
	Scope     ScopeLevel
}

// NewEngine creates a new Palisade engine with the given options.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		aliases: NewAliasResolver(DefaultAliases()),
		audit:   NopAuditSink{},
		logger:  slog.Default(),
		config:  DefaultConfig(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.store == nil {
		return nil, errors.New("palisade: store is required")
	}
	if _, nop := e.audit.(NopAuditSink); nop && e.config.auditEnabled() {
		e.audit = NewStoreAuditSink(e.store, e.logger)
	}
	e.membership = NewMembershipResolver(e.store, e.cache, e.logger)
	e.hierarchy = NewHierarchyExpander(e.store, e.logger, e.config.MaxHierarchyDepth)
	if e.evaluator == nil {
		e.evaluator = NewPolicyEvaluator(e.store, e.aliases, e.logger)
	}
	return e, nil
}

// Store returns the underlying composite store.
func (e *Engine) Store() store.Store { return e.store }

// Aliases returns the role alias resolver.
func (e *Engine) Aliases() *AliasResolver { return e.aliases }

// Membership returns the organizational membership resolver.
func (e *Engine) Membership() *MembershipResolver { return e.membership }

// Plugins returns the plugin registry (may be nil).
func (e *Engine) Plugins() *plugin.Registry { return e.plugins }

// Start performs any startup initialization.
func (e *Engine) Start(_ context.Context) error { return nil }

// Stop performs graceful shutdown.
func (e *Engine) Stop(ctx context.Context) error {
	if e.plugins != nil {
		e.plugins.EmitShutdown(ctx)
	}
	return nil
}

// ClearMembershipCache invalidates cached membership snapshots. Both
// arguments empty flushes the whole cache. Any collaborator mutating team,
// reporting-line, or delegation data must call this.
func (e *Engine) ClearMembershipCache(ctx context.Context, userID, tenantID string) {
	e.membership.ClearCache(ctx, userID, tenantID)
	if e.plugins != nil {
		e.plugins.EmitCacheCleared(ctx, userID, tenantID)
	}
}

// Decide is the scope access decision function. It reports whether the
// principal may act on the resource at the required scope. The tenant
// boundary check always runs first and no role can bypass it. A data-layer
// failure propagates as an error; it never degrades into an allow.
func (e *Engine) Decide(ctx context.Context, user *Principal, resource *ResourceContext, requiredScope ScopeLevel) (bool, error) {
	if user == nil {
		return false, ErrNotAuthenticated
	}
	if resource == nil {
		return false, nil
	}

	req := &DecisionRequest{Principal: user, Resource: resource, Scope: requiredScope}
	if e.plugins != nil {
		e.plugins.EmitBeforeDecision(ctx, req)
	}

	allowed, err := e.decide(ctx, user, resource, requiredScope)
	if err != nil {
		return false, err
	}

	if e.plugins != nil {
		e.plugins.EmitAfterDecision(ctx, req, allowed)
	}
	return allowed, nil
}

func (e *Engine) decide(ctx context.Context, user *Principal, resource *ResourceContext, requiredScope ScopeLevel) (bool, error) {
	// Tenant isolation runs before every other rule.
	if resource.TenantID != user.TenantID {
		e.emitCrossTenantBlocked(ctx, user, resource, requiredScope)
		return false, nil
	}

	if e.aliases.IsSuperAdmin(user.Roles) {
		return true, nil
	}

	switch requiredScope {
	case ScopeOwn:
		return e.decideOwn(ctx, user, resource)
	case ScopeTeam:
		return e.decideTeam(ctx, user, resource)
	case ScopeDepartment:
		return e.decideUnit(ctx, user, resource, org.UnitDepartment)
	case ScopeBusinessUnit:
		return e.decideUnit(ctx, user, resource, org.UnitBusinessUnit)
	case ScopeAll:
		return true, nil
	default:
		// Closed enumeration: unrecognized scopes deny.
		return false, nil
	}
}

// decideOwn allows access when the resource owner is the principal or a
// delegator whose active delegation names the principal as delegate.
func (e *Engine) decideOwn(ctx context.Context, user *Principal, resource *ResourceContext) (bool, error) {
	if resource.OwnerID == "" {
		return false, nil
	}
	if resource.OwnerID == user.ID {
		return true, nil
	}
	snap, err := e.membership.Resolve(ctx, user.ID, user.TenantID)
	if err != nil {
		return false, err
	}
	return containsString(snap.DelegatedFromIDs, resource.OwnerID), nil
}

// decideTeam allows access when the owner is the principal, a delegator, or
// a report, or when the resource sits in one of the principal's teams. The
// team-member expansion is a secondary lookup performed only after the
// cheaper checks fail.
func (e *Engine) decideTeam(ctx context.Context, user *Principal, resource *ResourceContext) (bool, error) {
	snap, err := e.membership.Resolve(ctx, user.ID, user.TenantID)
	if err != nil {
		return false, err
	}
	if ownedByPrincipal(user, snap, resource.OwnerID) {
		return true, nil
	}
	if containsString(snap.ReportIDs, resource.OwnerID) {
		return true, nil
	}
	if resource.TeamID != "" && containsString(snap.TeamIDs, resource.TeamID) {
		return true, nil
	}
	if resource.OwnerID != "" && len(snap.TeamIDs) > 0 {
		members, err := e.store.ListActiveTeamMemberIDs(ctx, user.TenantID, snap.TeamIDs)
		if err != nil {
			return false, err
		}
		return containsString(members, resource.OwnerID), nil
	}
	return false, nil
}

// decideUnit handles department and businessUnit scopes. Beyond the
// ownership paths, a principal placed in the same unit as the resource is
// allowed, and the recorded head of a unit is allowed for the whole
// subtree below it.
func (e *Engine) decideUnit(ctx context.Context, user *Principal, resource *ResourceContext, kind org.UnitKind) (bool, error) {
	snap, err := e.membership.Resolve(ctx, user.ID, user.TenantID)
	if err != nil {
		return false, err
	}
	if ownedByPrincipal(user, snap, resource.OwnerID) {
		return true, nil
	}
	if containsString(snap.ReportIDs, resource.OwnerID) && resource.OwnerID != "" {
		return true, nil
	}

	userUnitID, resourceUnitID := unitIDs(user, resource, kind)
	if userUnitID == "" || resourceUnitID == "" {
		// Absent organizational data makes the unit check inapplicable,
		// not an error.
		return false, nil
	}
	if userUnitID == resourceUnitID {
		return true, nil
	}
	return e.headsSubtreeContaining(ctx, user, userUnitID, resourceUnitID, kind)
}

// headsSubtreeContaining reports whether the principal is the recorded head
// of their own unit and the resource's unit lies in that unit's subtree.
func (e *Engine) headsSubtreeContaining(ctx context.Context, user *Principal, userUnitID, resourceUnitID string, kind org.UnitKind) (bool, error) {
	unitID, err := id.ParseOrgUnitID(userUnitID)
	if err != nil {
		// Principals can carry unit identifiers from an external HR
		// system; an unparseable one just fails the head check.
		return false, nil
	}
	unit, err := e.store.GetOrgUnit(ctx, unitID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if unit.HeadUserID != user.ID || unit.Kind != kind {
		return false, nil
	}
	descendants, err := e.hierarchy.Descendants(ctx, user.TenantID, unitID, kind)
	if err != nil {
		return false, err
	}
	return containsString(descendants, resourceUnitID), nil
}

// DecideLocal is the synchronous-degraded decision variant. It performs the
// tenant and super-admin checks plus direct ownership and unit equality
// only, with no organizational lookups. It under-grants relative to Decide
// for team, department, and businessUnit scopes; prefer Decide wherever a
// store round-trip is tolerable.
func (e *Engine) DecideLocal(user *Principal, resource *ResourceContext, requiredScope ScopeLevel) bool {
	if user == nil || resource == nil {
		return false
	}
	if resource.TenantID != user.TenantID {
		return false
	}
	if e.aliases.IsSuperAdmin(user.Roles) {
		return true
	}
	switch requiredScope {
	case ScopeOwn, ScopeTeam:
		return resource.OwnerID != "" && resource.OwnerID == user.ID
	case ScopeDepartment:
		if resource.OwnerID != "" && resource.OwnerID == user.ID {
			return true
		}
		return user.DepartmentID != "" && user.DepartmentID == resource.DepartmentID
	case ScopeBusinessUnit:
		if resource.OwnerID != "" && resource.OwnerID == user.ID {
			return true
		}
		return user.BusinessUnitID != "" && user.BusinessUnitID == resource.BusinessUnitID
	case ScopeAll:
		return true
	default:
		return false
	}
}

// DecideAll evaluates one principal against a batch of resources at the
// same required scope. The result slice is positionally aligned with the
// input. The first data-layer failure aborts the batch.
func (e *Engine) DecideAll(ctx context.Context, user *Principal, resources []*ResourceContext, requiredScope ScopeLevel) ([]bool, error) {
	results := make([]bool, len(resources))
	for i, res := range resources {
		allowed, err := e.Decide(ctx, user, res, requiredScope)
		if err != nil {
			return nil, fmt.Errorf("palisade: decide batch item %d: %w", i, err)
		}
		results[i] = allowed
	}
	return results, nil
}

// EvaluatePolicy runs the tenant's access policies for the action and
// resource type, emitting an audit event for every policy deny. When
// Config.EnablePolicies is false it allows without consulting the store.
func (e *Engine) EvaluatePolicy(ctx context.Context, user *Principal, action, resourceType string) (*PolicyResult, error) {
	if !e.config.policiesEnabled() {
		return &PolicyResult{Allowed: true}, nil
	}
	result, err := e.evaluator.EvaluatePolicy(ctx, user, action, resourceType)
	if err != nil {
		return nil, err
	}
	if !result.Allowed && e.config.auditEnabled() {
		e.audit.Emit(ctx, &AuditEvent{
			Kind:         EventPolicyDenied,
			ActorID:      user.ID,
			TenantID:     user.TenantID,
			ResourceType: resourceType,
			Detail: map[string]any{
				"action": action,
				"policy": result.PolicyName,
			},
			CreatedAt: time.Now(),
		})
	}
	return result, nil
}

// CheckUnionRestrictions reports whether the principal's union contract
// restricts the action. Middleware turns a restricted result into an
// authorization failure; callers needing an advisory check read the value
// directly.
func (e *Engine) CheckUnionRestrictions(ctx context.Context, user *Principal, action string) (*UnionRestriction, error) {
	return e.evaluator.CheckUnionRestrictions(ctx, user, action)
}

func (e *Engine) emitCrossTenantBlocked(ctx context.Context, user *Principal, resource *ResourceContext, requiredScope ScopeLevel) {
	e.logger.Warn("cross-tenant access blocked",
		slog.String("actor_id", user.ID),
		slog.String("actor_tenant", user.TenantID),
		slog.String("resource_tenant", resource.TenantID),
		slog.String("scope", string(requiredScope)),
	)
	if !e.config.auditEnabled() {
		return
	}
	e.audit.Emit(ctx, &AuditEvent{
		Kind:         EventCrossTenantBlocked,
		ActorID:      user.ID,
		TenantID:     user.TenantID,
		ResourceType: resource.Type,
		ResourceID:   resource.ID,
		Detail: map[string]any{
			"attempted_tenant": resource.TenantID,
			"required_scope":   string(requiredScope),
		},
		CreatedAt: time.Now(),
	})
}

// unitIDs selects the principal's and the resource's unit identifier for
// the given unit kind.
func unitIDs(user *Principal, resource *ResourceContext, kind org.UnitKind) (string, string) {
	if kind == org.UnitBusinessUnit {
		return user.BusinessUnitID, resource.BusinessUnitID
	}
	return user.DepartmentID, resource.DepartmentID
}

// ownedByPrincipal reports whether the owner is the principal themself or a
// delegator of the principal.
func ownedByPrincipal(user *Principal, snap *Membership, ownerID string) bool {
	if ownerID == "" {
		return false
	}
	return ownerID == user.ID || containsString(snap.DelegatedFromIDs, ownerID)
}
