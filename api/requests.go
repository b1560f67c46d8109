package api

import (
	"time"

	"github.com/elevatehq/palisade"
	"github.com/elevatehq/palisade/policy"
	"github.com/elevatehq/palisade/union"
)

// ──────────────────────────────────────────────────
// Decision requests
// ──────────────────────────────────────────────────

// DecideRequest is the request body for a scope decision.
type DecideRequest struct {
	Principal palisade.Principal       `json:"principal" description:"Acting principal"`
	Resource  palisade.ResourceContext `json:"resource" description:"Resource attributes"`
	Scope     string                   `json:"scope" description:"Required scope level (own, team, department, businessUnit, all)"`
}

// BatchDecideRequest contains one principal and multiple resources checked
// at the same scope.
type BatchDecideRequest struct {
	Principal palisade.Principal         `json:"principal" description:"Acting principal"`
	Resources []palisade.ResourceContext `json:"resources" description:"Resources to check in order"`
	Scope     string                     `json:"scope" description:"Required scope level"`
}

// EvaluatePolicyRequest is the body for a policy evaluation.
type EvaluatePolicyRequest struct {
	Principal    palisade.Principal `json:"principal" description:"Acting principal"`
	Action       string             `json:"action" description:"Action name"`
	ResourceType string             `json:"resource_type" description:"Resource type"`
}

// UnionCheckRequest is the body for a union-restriction check.
type UnionCheckRequest struct {
	Principal palisade.Principal `json:"principal" description:"Acting principal"`
	Action    string             `json:"action" description:"Action name"`
}

// ClearCacheRequest is the body for a membership-cache invalidation.
type ClearCacheRequest struct {
	UserID   string `json:"user_id,omitempty" description:"User whose snapshot to drop (empty with tenant_id empty = all)"`
	TenantID string `json:"tenant_id,omitempty" description:"Tenant of the snapshot"`
}

// ──────────────────────────────────────────────────
// Team requests
// ──────────────────────────────────────────────────

// CreateTeamRequest is the body for creating a team.
type CreateTeamRequest struct {
	TenantID    string `json:"tenant_id" description:"Owning tenant"`
	Name        string `json:"name" description:"Team name"`
	Description string `json:"description,omitempty" description:"Human-readable description"`
	LeadUserID  string `json:"lead_user_id,omitempty" description:"Team lead user ID"`
}

// UpdateTeamRequest is the body for updating a team.
type UpdateTeamRequest struct {
	Name        string `json:"name,omitempty" description:"Team name"`
	Description string `json:"description,omitempty" description:"Human-readable description"`
	LeadUserID  string `json:"lead_user_id,omitempty" description:"Team lead user ID"`
	IsActive    *bool  `json:"is_active,omitempty" description:"Active flag"`
}

// GetTeamRequest is the path parameter for getting a team.
type GetTeamRequest struct {
	TeamID string `path:"teamId" description:"Team ID"`
}

// ListTeamsRequest holds query parameters for listing teams.
type ListTeamsRequest struct {
	TenantID string `query:"tenant_id" description:"Owning tenant"`
	Search   string `query:"search" description:"Search by name"`
	Limit    int    `query:"limit" description:"Maximum results (default: 50)"`
	Offset   int    `query:"offset" description:"Results to skip"`
}

// AddTeamMemberRequest is the body for adding a user to a team.
type AddTeamMemberRequest struct {
	TenantID  string     `json:"tenant_id" description:"Owning tenant"`
	UserID    string     `json:"user_id" description:"User to add"`
	StartedAt *time.Time `json:"started_at,omitempty" description:"Membership start (default: now)"`
}

// EndTeamMembershipRequest is the path parameter for ending a membership.
type EndTeamMembershipRequest struct {
	MembershipID string `path:"membershipId" description:"Team membership ID"`
}

// ──────────────────────────────────────────────────
// Org unit requests
// ──────────────────────────────────────────────────

// CreateOrgUnitRequest is the body for creating a department or business unit.
type CreateOrgUnitRequest struct {
	TenantID   string `json:"tenant_id" description:"Owning tenant"`
	Kind       string `json:"kind" description:"Unit kind (department, business_unit)"`
	Name       string `json:"name" description:"Unit name"`
	ParentID   string `json:"parent_id,omitempty" description:"Parent unit ID"`
	HeadUserID string `json:"head_user_id,omitempty" description:"Designated head user ID"`
}

// UpdateOrgUnitRequest is the body for updating an org unit.
type UpdateOrgUnitRequest struct {
	Name       string `json:"name,omitempty" description:"Unit name"`
	HeadUserID string `json:"head_user_id,omitempty" description:"Designated head user ID"`
	IsActive   *bool  `json:"is_active,omitempty" description:"Active flag"`
}

// GetOrgUnitRequest is the path parameter for getting an org unit.
type GetOrgUnitRequest struct {
	UnitID string `path:"unitId" description:"Org unit ID"`
}

// ListOrgUnitsRequest holds query parameters for listing org units.
type ListOrgUnitsRequest struct {
	TenantID string `query:"tenant_id" description:"Owning tenant"`
	Kind     string `query:"kind" description:"Unit kind filter"`
	Limit    int    `query:"limit" description:"Maximum results (default: 50)"`
	Offset   int    `query:"offset" description:"Results to skip"`
}

// ──────────────────────────────────────────────────
// Delegation requests
// ──────────────────────────────────────────────────

// CreateDelegationRequest is the body for creating a delegation.
type CreateDelegationRequest struct {
	TenantID    string     `json:"tenant_id" description:"Owning tenant"`
	DelegatorID string     `json:"delegator_id" description:"User delegating authority"`
	DelegateID  string     `json:"delegate_id" description:"User receiving authority"`
	StartsAt    *time.Time `json:"starts_at,omitempty" description:"Grant start (default: now)"`
	EndsAt      *time.Time `json:"ends_at,omitempty" description:"Grant end (empty = open)"`
	Reason      string     `json:"reason,omitempty" description:"Why the authority is delegated"`
}

// GetDelegationRequest is the path parameter for getting a delegation.
type GetDelegationRequest struct {
	DelegationID string `path:"delegationId" description:"Delegation ID"`
}

// ListDelegationsRequest holds query parameters for listing delegations.
type ListDelegationsRequest struct {
	TenantID    string `query:"tenant_id" description:"Owning tenant"`
	DelegatorID string `query:"delegator_id" description:"Filter by delegator"`
	DelegateID  string `query:"delegate_id" description:"Filter by delegate"`
	Status      string `query:"status" description:"Filter by status"`
	Limit       int    `query:"limit" description:"Maximum results (default: 50)"`
	Offset      int    `query:"offset" description:"Results to skip"`
}

// ──────────────────────────────────────────────────
// Policy requests
// ──────────────────────────────────────────────────

// CreatePolicyRequest is the body for creating an access policy.
type CreatePolicyRequest struct {
	TenantID          string              `json:"tenant_id" description:"Owning tenant"`
	Name              string              `json:"name" description:"Policy name, unique per tenant"`
	Description       string              `json:"description,omitempty" description:"Human-readable description"`
	Priority          int                 `json:"priority" description:"Evaluation priority, higher first"`
	Status            string              `json:"status,omitempty" description:"Lifecycle status (default: ACTIVE)"`
	EffectiveFrom     *time.Time          `json:"effective_from,omitempty" description:"Window start"`
	EffectiveTo       *time.Time          `json:"effective_to,omitempty" description:"Window end"`
	TargetRoles       []string            `json:"target_roles,omitempty" description:"Role filter (aliases expanded)"`
	TargetDepartments []string            `json:"target_departments,omitempty" description:"Department filter"`
	TargetLevels      []int               `json:"target_levels,omitempty" description:"Job level filter"`
	UnionCode         string              `json:"union_code,omitempty" description:"Union contract filter"`
	ContractType      string              `json:"contract_type,omitempty" description:"Contract type filter"`
	Actions           policy.ActionFilter `json:"actions" description:"Resource and action patterns"`
	Effect            string              `json:"effect" description:"ALLOW or DENY"`
}

// UpdatePolicyRequest is the body for updating an access policy.
type UpdatePolicyRequest struct {
	Description       *string              `json:"description,omitempty" description:"Human-readable description"`
	Priority          *int                 `json:"priority,omitempty" description:"Evaluation priority"`
	Status            string               `json:"status,omitempty" description:"Lifecycle status"`
	EffectiveFrom     *time.Time           `json:"effective_from,omitempty" description:"Window start"`
	EffectiveTo       *time.Time           `json:"effective_to,omitempty" description:"Window end"`
	TargetRoles       []string             `json:"target_roles,omitempty" description:"Role filter"`
	TargetDepartments []string             `json:"target_departments,omitempty" description:"Department filter"`
	TargetLevels      []int                `json:"target_levels,omitempty" description:"Job level filter"`
	Actions           *policy.ActionFilter `json:"actions,omitempty" description:"Resource and action patterns"`
	Effect            string               `json:"effect,omitempty" description:"ALLOW or DENY"`
}

// GetPolicyRequest is the path parameter for getting a policy.
type GetPolicyRequest struct {
	PolicyID string `path:"policyId" description:"Policy ID"`
}

// ListPoliciesRequest holds query parameters for listing policies.
type ListPoliciesRequest struct {
	TenantID string `query:"tenant_id" description:"Owning tenant"`
	Status   string `query:"status" description:"Filter by lifecycle status"`
	Effect   string `query:"effect" description:"Filter by effect"`
	Search   string `query:"search" description:"Search by name"`
	Limit    int    `query:"limit" description:"Maximum results (default: 50)"`
	Offset   int    `query:"offset" description:"Results to skip"`
}

// ──────────────────────────────────────────────────
// Union membership requests
// ──────────────────────────────────────────────────

// CreateUnionMembershipRequest is the body for recording a union membership.
type CreateUnionMembershipRequest struct {
	TenantID     string                `json:"tenant_id" description:"Owning tenant"`
	UserID       string                `json:"user_id" description:"Covered user"`
	UnionCode    string                `json:"union_code" description:"Union identifier"`
	ContractType string                `json:"contract_type,omitempty" description:"Contract type"`
	Rules        map[string]union.Rule `json:"rules,omitempty" description:"Per-category restriction rules"`
}

// UpdateUnionMembershipRequest is the body for updating a union membership.
type UpdateUnionMembershipRequest struct {
	Status string                `json:"status,omitempty" description:"Lifecycle status (ACTIVE, LAPSED)"`
	Rules  map[string]union.Rule `json:"rules,omitempty" description:"Per-category restriction rules"`
}

// GetUnionMembershipRequest is the path parameter for getting a membership.
type GetUnionMembershipRequest struct {
	MemberID string `path:"memberId" description:"Union membership ID"`
}

// ListUnionMembershipsRequest holds query parameters for listing memberships.
type ListUnionMembershipsRequest struct {
	TenantID  string `query:"tenant_id" description:"Owning tenant"`
	UserID    string `query:"user_id" description:"Filter by user"`
	UnionCode string `query:"union_code" description:"Filter by union"`
	Limit     int    `query:"limit" description:"Maximum results (default: 50)"`
	Offset    int    `query:"offset" description:"Results to skip"`
}

// ──────────────────────────────────────────────────
// Audit requests
// ──────────────────────────────────────────────────

// ListAuditEntriesRequest holds query parameters for the audit log.
type ListAuditEntriesRequest struct {
	TenantID     string     `query:"tenant_id" description:"Owning tenant"`
	Kind         string     `query:"kind" description:"Filter by event kind"`
	ActorID      string     `query:"actor_id" description:"Filter by actor"`
	ResourceType string     `query:"resource_type" description:"Filter by resource type"`
	After        *time.Time `query:"after" description:"Entries created after this instant"`
	Before       *time.Time `query:"before" description:"Entries created before this instant"`
	Limit        int        `query:"limit" description:"Maximum results (default: 50)"`
	Offset       int        `query:"offset" description:"Results to skip"`
}

// GetAuditEntryRequest is the path parameter for getting an audit entry.
type GetAuditEntryRequest struct {
	EntryID string `path:"entryId" description:"Audit entry ID"`
}
