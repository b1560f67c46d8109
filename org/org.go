// Package org defines the organizational entities the authorization engine
// reads: teams and their memberships, reporting links, and the department /
// business-unit tree.
package org

import (
	"time"

	"github.com/elevatehq/palisade/id"
)

// Team is a working group within a tenant.
type Team struct {
	ID          id.TeamID `json:"id" db:"id"`
	TenantID    string    `json:"tenant_id" db:"tenant_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description,omitempty" db:"description"`
	LeadUserID  string    `json:"lead_user_id,omitempty" db:"lead_user_id"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// TeamMembership links a user to a team for a bounded period. A membership
// is active while EndedAt is nil or in the future.
type TeamMembership struct {
	ID        id.TeamMembershipID `json:"id" db:"id"`
	TenantID  string              `json:"tenant_id" db:"tenant_id"`
	TeamID    id.TeamID           `json:"team_id" db:"team_id"`
	UserID    string              `json:"user_id" db:"user_id"`
	StartedAt time.Time           `json:"started_at" db:"started_at"`
	EndedAt   *time.Time          `json:"ended_at,omitempty" db:"ended_at"`
	CreatedAt time.Time           `json:"created_at" db:"created_at"`
}

// ActiveAt reports whether the membership is in force at the given instant.
func (m *TeamMembership) ActiveAt(now time.Time) bool {
	return m.EndedAt == nil || m.EndedAt.After(now)
}

// ReportKind distinguishes the primary manager link from a matrix
// (dotted-line) relationship.
type ReportKind string

const (
	// ReportDirect is the primary manager relationship.
	ReportDirect ReportKind = "direct"

	// ReportMatrix is a dotted-line relationship distinct from the primary
	// manager link.
	ReportMatrix ReportKind = "matrix"
)

// ReportLink connects a manager to a report. A link is active while EndedAt
// is nil or in the future.
type ReportLink struct {
	ID        id.ReportLinkID `json:"id" db:"id"`
	TenantID  string          `json:"tenant_id" db:"tenant_id"`
	ManagerID string          `json:"manager_id" db:"manager_id"`
	ReportID  string          `json:"report_id" db:"report_id"`
	Kind      ReportKind      `json:"kind" db:"kind"`
	StartedAt time.Time       `json:"started_at" db:"started_at"`
	EndedAt   *time.Time      `json:"ended_at,omitempty" db:"ended_at"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// ActiveAt reports whether the link is in force at the given instant.
func (l *ReportLink) ActiveAt(now time.Time) bool {
	return l.EndedAt == nil || l.EndedAt.After(now)
}

// UnitKind distinguishes departments from business units in the org tree.
type UnitKind string

const (
	// UnitDepartment is a department node.
	UnitDepartment UnitKind = "department"

	// UnitBusinessUnit is a business-unit node.
	UnitBusinessUnit UnitKind = "business_unit"
)

// OrgUnit is one node of the parent-pointer org tree. HeadUserID is the
// designated head whose scope extends over the unit's subtree.
type OrgUnit struct {
	ID         id.OrgUnitID  `json:"id" db:"id"`
	TenantID   string        `json:"tenant_id" db:"tenant_id"`
	Kind       UnitKind      `json:"kind" db:"kind"`
	Name       string        `json:"name" db:"name"`
	ParentID   *id.OrgUnitID `json:"parent_id,omitempty" db:"parent_id"`
	HeadUserID string        `json:"head_user_id,omitempty" db:"head_user_id"`
	IsActive   bool          `json:"is_active" db:"is_active"`
	CreatedAt  time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at" db:"updated_at"`
}

// TeamListFilter contains filters for listing teams.
type TeamListFilter struct {
	TenantID string `json:"tenant_id,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
	Search   string `json:"search,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	Offset   int    `json:"offset,omitempty"`
}

// UnitListFilter contains filters for listing org units.
type UnitListFilter struct {
	TenantID string       `json:"tenant_id,omitempty"`
	Kind     UnitKind     `json:"kind,omitempty"`
	ParentID *id.OrgUnitID `json:"parent_id,omitempty"`
	IsActive *bool        `json:"is_active,omitempty"`
	Limit    int          `json:"limit,omitempty"`
	Offset   int          `json:"offset,omitempty"`
}
