package org

import (
	"context"
	"time"

	"github.com/elevatehq/palisade/id"
)

// Store defines persistence operations for organizational data. Every query
// is tenant-scoped and excludes soft-deleted and inactive records.
type Store interface {
	// CreateTeam persists a new team.
	CreateTeam(ctx context.Context, t *Team) error

	// GetTeam retrieves a team by ID.
	GetTeam(ctx context.Context, teamID id.TeamID) (*Team, error)

	// UpdateTeam persists changes to a team.
	UpdateTeam(ctx context.Context, t *Team) error

	// ListTeams returns teams matching the filter.
	ListTeams(ctx context.Context, filter *TeamListFilter) ([]*Team, error)

	// DeleteTeamsByTenant removes all teams for a tenant.
	DeleteTeamsByTenant(ctx context.Context, tenantID string) error

	// AddTeamMember persists a new team membership.
	AddTeamMember(ctx context.Context, m *TeamMembership) error

	// EndTeamMembership closes a membership as of the given time.
	EndTeamMembership(ctx context.Context, membershipID id.TeamMembershipID, endedAt time.Time) error

	// ListActiveTeamIDs returns the IDs of all teams where the user has an
	// active membership, ordered by team ID.
	ListActiveTeamIDs(ctx context.Context, tenantID, userID string) ([]string, error)

	// ListActiveTeamMemberIDs returns the de-duplicated user IDs of all
	// active members of the given teams.
	ListActiveTeamMemberIDs(ctx context.Context, tenantID string, teamIDs []string) ([]string, error)

	// AddReportLink persists a new reporting link.
	AddReportLink(ctx context.Context, l *ReportLink) error

	// EndReportLink closes a reporting link as of the given time.
	EndReportLink(ctx context.Context, linkID id.ReportLinkID, endedAt time.Time) error

	// ListDirectReportIDs returns the user IDs actively reporting to the
	// manager through the primary manager link.
	ListDirectReportIDs(ctx context.Context, tenantID, managerID string) ([]string, error)

	// ListMatrixReportIDs returns the user IDs actively linked to the
	// manager through a matrix (dotted-line) relationship.
	ListMatrixReportIDs(ctx context.Context, tenantID, managerID string) ([]string, error)

	// CreateOrgUnit persists a new org unit.
	CreateOrgUnit(ctx context.Context, u *OrgUnit) error

	// GetOrgUnit retrieves an org unit by ID.
	GetOrgUnit(ctx context.Context, unitID id.OrgUnitID) (*OrgUnit, error)

	// UpdateOrgUnit persists changes to an org unit.
	UpdateOrgUnit(ctx context.Context, u *OrgUnit) error

	// ListOrgUnits returns org units matching the filter.
	ListOrgUnits(ctx context.Context, filter *UnitListFilter) ([]*OrgUnit, error)

	// ListChildUnits returns the active org units whose parent is the given
	// unit, restricted to the given kind.
	ListChildUnits(ctx context.Context, tenantID string, parentID id.OrgUnitID, kind UnitKind) ([]*OrgUnit, error)

	// DeleteOrgUnitsByTenant removes all org units for a tenant.
	DeleteOrgUnitsByTenant(ctx context.Context, tenantID string) error
}
