// Package palisade provides tenant-isolated, attribute-based authorization
// for the Elevate performance management platform.
//
// The engine decides, per request, whether an authenticated principal may act
// on a resource at a required scope, combining role aliasing, organizational
// membership (teams, reporting lines, delegations), recursive department and
// business-unit hierarchies, and tenant-authored ALLOW/DENY policy documents.
// Tenant isolation is checked first on every decision and cannot be bypassed
// by any role.
//
//	eng, err := palisade.NewEngine(
//	    palisade.WithStore(memStore),
//	)
//	ok, err := eng.Decide(ctx, &palisade.Principal{
//	    ID: "u1", TenantID: "t1", Roles: []string{"Manager"},
//	}, &palisade.ResourceContext{TenantID: "t1", OwnerID: "u2"}, palisade.ScopeTeam)
package palisade

// Principal is the authenticated actor for a request. It is produced by the
// platform's authentication layer and is immutable for the lifetime of one
// request.
type Principal struct {
	ID             string   `json:"id"`
	TenantID       string   `json:"tenant_id"`
	Roles          []string `json:"roles"`
	Permissions    []string `json:"permissions,omitempty"`
	DepartmentID   string   `json:"department_id,omitempty"`
	BusinessUnitID string   `json:"business_unit_id,omitempty"`
	Level          int      `json:"level,omitempty"`
}

// ResourceContext carries the ownership and placement attributes of the
// object being accessed. Callers construct one per authorization check; it is
// never persisted.
type ResourceContext struct {
	TenantID       string `json:"tenant_id"`
	Type           string `json:"type,omitempty"`
	ID             string `json:"id,omitempty"`
	OwnerID        string `json:"owner_id,omitempty"`
	TeamID         string `json:"team_id,omitempty"`
	DepartmentID   string `json:"department_id,omitempty"`
	BusinessUnitID string `json:"business_unit_id,omitempty"`
}

// Membership is the organizational snapshot for one user within one tenant:
// the teams they actively belong to, the users reporting to them (direct and
// matrix), and the users who have delegated their authority to them.
type Membership struct {
	TeamIDs          []string `json:"team_ids"`
	ReportIDs        []string `json:"report_ids"`
	DelegatedFromIDs []string `json:"delegated_from_ids"`
}

// PolicyResult is the outcome of a policy evaluation.
type PolicyResult struct {
	Allowed    bool   `json:"allowed"`
	Reason     string `json:"reason,omitempty"`
	PolicyName string `json:"policy_name,omitempty"`
}

// UnionRestriction describes a union-contract restriction that applies to an
// action. Restricted is false when no active contract blocks the action.
type UnionRestriction struct {
	Restricted bool   `json:"restricted"`
	UnionCode  string `json:"union_code,omitempty"`
	Category   string `json:"category,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// PermissionRequirement is one entry in an authorization gate. Either Roles
// or Resource+Action must be set; an entry with neither is never satisfied.
type PermissionRequirement struct {
	Resource string     `json:"resource,omitempty"`
	Action   string     `json:"action,omitempty"`
	Scope    ScopeLevel `json:"scope,omitempty"`
	Roles    []string   `json:"roles,omitempty"`
}
