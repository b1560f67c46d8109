// Package policy defines tenant-authored, priority-ordered ALLOW/DENY access
// policy documents.
package policy

import (
	"time"

	"github.com/elevatehq/palisade/id"
)

// Effect is the policy outcome — allow or deny.
type Effect string

const (
	// EffectAllow permits matching requests.
	EffectAllow Effect = "ALLOW"

	// EffectDeny blocks matching requests.
	EffectDeny Effect = "DENY"
)

// Status is the lifecycle state of a policy.
type Status string

const (
	// StatusActive means the policy participates in evaluation.
	StatusActive Status = "ACTIVE"

	// StatusDraft means the policy is being edited and is ignored.
	StatusDraft Status = "DRAFT"

	// StatusArchived means the policy has been retired.
	StatusArchived Status = "ARCHIVED"
)

// ActionFilter narrows a policy to specific resources and actions. A nil or
// empty slice means no restriction on that axis. Action patterns support a
// trailing '*' glob.
type ActionFilter struct {
	Resources []string `json:"resources,omitempty"`
	Actions   []string `json:"actions,omitempty"`
}

// AccessPolicy is a tenant-scoped rule targeting roles, departments, job
// levels, and union contracts. Policies are evaluated in descending Priority
// order with first-match-wins semantics; when none matches the default is
// ALLOW.
type AccessPolicy struct {
	ID                id.PolicyID  `json:"id" db:"id"`
	TenantID          string       `json:"tenant_id" db:"tenant_id"`
	Name              string       `json:"name" db:"name"`
	Description       string       `json:"description,omitempty" db:"description"`
	Priority          int          `json:"priority" db:"priority"`
	Status            Status       `json:"status" db:"status"`
	EffectiveFrom     *time.Time   `json:"effective_from,omitempty" db:"effective_from"`
	EffectiveTo       *time.Time   `json:"effective_to,omitempty" db:"effective_to"`
	TargetRoles       []string     `json:"target_roles,omitempty" db:"-"`
	TargetDepartments []string     `json:"target_departments,omitempty" db:"-"`
	TargetLevels      []int        `json:"target_levels,omitempty" db:"-"`
	UnionCode         string       `json:"union_code,omitempty" db:"union_code"`
	ContractType      string       `json:"contract_type,omitempty" db:"contract_type"`
	Actions           ActionFilter `json:"actions" db:"-"`
	Effect            Effect       `json:"effect" db:"effect"`
	CreatedAt         time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at" db:"updated_at"`
}

// InEffectAt reports whether the policy's effective window contains the
// given instant. Missing bounds are open.
func (p *AccessPolicy) InEffectAt(now time.Time) bool {
	if p.Status != StatusActive {
		return false
	}
	if p.EffectiveFrom != nil && p.EffectiveFrom.After(now) {
		return false
	}
	if p.EffectiveTo != nil && !p.EffectiveTo.After(now) {
		return false
	}
	return true
}

// ListFilter contains filters for listing policies.
type ListFilter struct {
	TenantID string `json:"tenant_id,omitempty"`
	Effect   Effect `json:"effect,omitempty"`
	Status   Status `json:"status,omitempty"`
	Search   string `json:"search,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	Offset   int    `json:"offset,omitempty"`
}
