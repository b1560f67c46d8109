// Package postgres provides a PostgreSQL implementation of the palisade
// composite store using grove ORM with Go-based migrations.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/pgdriver"
	"github.com/xraph/grove/migrate"

	"github.com/elevatehq/palisade/auditlog"
	"github.com/elevatehq/palisade/delegation"
	"github.com/elevatehq/palisade/id"
	"github.com/elevatehq/palisade/org"
	"github.com/elevatehq/palisade/policy"
	"github.com/elevatehq/palisade/store"
	"github.com/elevatehq/palisade/union"
)

// Compile-time interface check.
var _ store.Store = (*Store)(nil)

// Store is a PostgreSQL implementation of the composite palisade store.
type Store struct {
	db   *grove.DB
	pgdb *pgdriver.PgDB
}

// New creates a new PostgreSQL store.
func New(db *grove.DB) *Store {
	return &Store{
		db:   db,
		pgdb: pgdriver.Unwrap(db),
	}
}

// Migrate runs programmatic migrations via the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.pgdb)
	if err != nil {
		return fmt.Errorf("palisade: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("palisade: migration failed: %w", err)
	}
	return nil
}

// Ping verifies the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ──────────────────────────────────────────────────
// Team operations
// ──────────────────────────────────────────────────

func (s *Store) CreateTeam(ctx context.Context, t *org.Team) error {
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	m := teamToModel(t)
	if _, err := s.pgdb.NewInsert(m).Exec(ctx); err != nil {
		return fmt.Errorf("palisade: create team: %w", err)
	}
	return nil
}

func (s *Store) GetTeam(ctx context.Context, teamID id.TeamID) (*org.Team, error) {
	m := new(teamModel)
	err := s.pgdb.NewSelect(m).Where("id = ?", teamID.String()).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("team %s: %w", teamID, store.ErrNotFound)
		}
		return nil, fmt.Errorf("palisade: get team: %w", err)
	}
	return teamFromModel(m), nil
}

func (s *Store) UpdateTeam(ctx context.Context, t *org.Team) error {
	t.UpdatedAt = time.Now().UTC()
	m := teamToModel(t)
	if _, err := s.pgdb.NewUpdate(m).WherePK().Exec(ctx); err != nil {
		return fmt.Errorf("palisade: update team: %w", err)
	}
	return nil
}

func (s *Store) ListTeams(ctx context.Context, filter *org.TeamListFilter) ([]*org.Team, error) {
	var models []teamModel
	q := s.pgdb.NewSelect(&models).OrderExpr("created_at ASC")
	if filter != nil {
		if filter.TenantID != "" {
			q = q.Where("tenant_id = ?", filter.TenantID)
		}
		if filter.IsActive != nil {
			q = q.Where("is_active = ?", *filter.IsActive)
		}
		if filter.Search != "" {
			q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Search+"%")
		}
		if filter.Limit > 0 {
			q = q.Limit(filter.Limit)
		}
		if filter.Offset > 0 {
			q = q.Offset(filter.Offset)
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("palisade: list teams: %w", err)
	}
	result := make([]*org.Team, len(models))
	for i := range models {
		result[i] = teamFromModel(&models[i])
	}
	return result, nil
}

func (s *Store) DeleteTeamsByTenant(ctx context.Context, tenantID string) error {
	_, err := s.pgdb.NewDelete((*teamModel)(nil)).
		Where("tenant_id = ?", tenantID).Exec(ctx)
	if err != nil {
		return fmt.Errorf("palisade: delete teams by tenant: %w", err)
	}
	return nil
}

func (s *Store) AddTeamMember(ctx context.Context, m *org.TeamMembership) error {
	m.CreatedAt = time.Now().UTC()
	model := teamMembershipToModel(m)
	if _, err := s.pgdb.NewInsert(model).Exec(ctx); err != nil {
		return fmt.Errorf("palisade: add team member: %w", err)
	}
	return nil
}

func (s *Store) EndTeamMembership(ctx context.Context, membershipID id.TeamMembershipID, endedAt time.Time) error {
	m := new(teamMembershipModel)
	err := s.pgdb.NewSelect(m).Where("id = ?", membershipID.String()).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("team membership %s: %w", membershipID, store.ErrNotFound)
		}
		return fmt.Errorf("palisade: end team membership: %w", err)
	}
	m.EndedAt = &endedAt
	if _, err := s.pgdb.NewUpdate(m).WherePK().Exec(ctx); err != nil {
		return fmt.Errorf("palisade: end team membership: %w", err)
	}
	return nil
}

func (s *Store) ListActiveTeamIDs(ctx context.Context, tenantID, userID string) ([]string, error) {
	var models []teamMembershipModel
	now := time.Now().UTC()
	err := s.pgdb.NewSelect(&models).
		Where("tenant_id = ?", tenantID).
		Where("user_id = ?", userID).
		Where("started_at <= ?", now).
		Where("ended_at IS NULL OR ended_at > ?", now).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("palisade: list active team ids: %w", err)
	}
	seen := make(map[string]struct{}, len(models))
	result := make([]string, 0, len(models))
	for _, m := range models {
		if _, ok := seen[m.TeamID]; ok {
			continue
		}
		seen[m.TeamID] = struct{}{}
		result = append(result, m.TeamID)
	}
	sort.Strings(result)
	return result, nil
}

func (s *Store) ListActiveTeamMemberIDs(ctx context.Context, tenantID string, teamIDs []string) ([]string, error) {
	if len(teamIDs) == 0 {
		return nil, nil
	}
	var models []teamMembershipModel
	now := time.Now().UTC()
	err := s.pgdb.NewSelect(&models).
		Where("tenant_id = ?", tenantID).
		Where("team_id IN (?)", teamIDs).
		Where("started_at <= ?", now).
		Where("ended_at IS NULL OR ended_at > ?", now).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("palisade: list active team member ids: %w", err)
	}
	seen := make(map[string]struct{}, len(models))
	result := make([]string, 0, len(models))
	for _, m := range models {
		if _, ok := seen[m.UserID]; ok {
			continue
		}
		seen[m.UserID] = struct{}{}
		result = append(result, m.UserID)
	}
	sort.Strings(result)
	return result, nil
}

// ──────────────────────────────────────────────────
// Report link operations
// ──────────────────────────────────────────────────

func (s *Store) AddReportLink(ctx context.Context, l *org.ReportLink) error {
	l.CreatedAt = time.Now().UTC()
	m := reportLinkToModel(l)
	if _, err := s.pgdb.NewInsert(m).Exec(ctx); err != nil {
		return fmt.Errorf("palisade: add report link: %w", err)
	}
	return nil
}

func (s *Store) EndReportLink(ctx context.Context, linkID id.ReportLinkID, endedAt time.Time) error {
	m := new(reportLinkModel)
	err := s.pgdb.NewSelect(m).Where("id = ?", linkID.String()).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("report link %s: %w", linkID, store.ErrNotFound)
		}
		return fmt.Errorf("palisade: end report link: %w", err)
	}
	m.EndedAt = &endedAt
	if _, err := s.pgdb.NewUpdate(m).WherePK().Exec(ctx); err != nil {
		return fmt.Errorf("palisade: end report link: %w", err)
	}
	return nil
}

func (s *Store) ListDirectReportIDs(ctx context.Context, tenantID, managerID string) ([]string, error) {
	return s.listReportIDs(ctx, tenantID, managerID, org.ReportDirect)
}

func (s *Store) ListMatrixReportIDs(ctx context.Context, tenantID, managerID string) ([]string, error) {
	return s.listReportIDs(ctx, tenantID, managerID, org.ReportMatrix)
}

func (s *Store) listReportIDs(ctx context.Context, tenantID, managerID string, kind org.ReportKind) ([]string, error) {
	var models []reportLinkModel
	now := time.Now().UTC()
	err := s.pgdb.NewSelect(&models).
		Where("tenant_id = ?", tenantID).
		Where("manager_id = ?", managerID).
		Where("kind = ?", string(kind)).
		Where("started_at <= ?", now).
		Where("ended_at IS NULL OR ended_at > ?", now).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("palisade: list %s report ids: %w", kind, err)
	}
	seen := make(map[string]struct{}, len(models))
	result := make([]string, 0, len(models))
	for _, m := range models {
		if _, ok := seen[m.ReportID]; ok {
			continue
		}
		seen[m.ReportID] = struct{}{}
		result = append(result, m.ReportID)
	}
	sort.Strings(result)
	return result, nil
}

// ──────────────────────────────────────────────────
// Org unit operations
// ──────────────────────────────────────────────────

func (s *Store) CreateOrgUnit(ctx context.Context, u *org.OrgUnit) error {
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	m := orgUnitToModel(u)
	if _, err := s.pgdb.NewInsert(m).Exec(ctx); err != nil {
		return fmt.Errorf("palisade: create org unit: %w", err)
	}
	return nil
}

func (s *Store) GetOrgUnit(ctx context.Context, unitID id.OrgUnitID) (*org.OrgUnit, error) {
	m := new(orgUnitModel)
	err := s.pgdb.NewSelect(m).Where("id = ?", unitID.String()).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("org unit %s: %w", unitID, store.ErrNotFound)
		}
		return nil, fmt.Errorf("palisade: get org unit: %w", err)
	}
	return orgUnitFromModel(m), nil
}

func (s *Store) UpdateOrgUnit(ctx context.Context, u *org.OrgUnit) error {
	u.UpdatedAt = time.Now().UTC()
	m := orgUnitToModel(u)
	if _, err := s.pgdb.NewUpdate(m).WherePK().Exec(ctx); err != nil {
		return fmt.Errorf("palisade: update org unit: %w", err)
	}
	return nil
}

func (s *Store) ListOrgUnits(ctx context.Context, filter *org.UnitListFilter) ([]*org.OrgUnit, error) {
	var models []orgUnitModel
	q := s.pgdb.NewSelect(&models).OrderExpr("created_at ASC")
	if filter != nil {
		if filter.TenantID != "" {
			q = q.Where("tenant_id = ?", filter.TenantID)
		}
		if filter.Kind != "" {
			q = q.Where("kind = ?", string(filter.Kind))
		}
		if filter.ParentID != nil {
			q = q.Where("parent_id = ?", filter.ParentID.String())
		}
		if filter.IsActive != nil {
			q = q.Where("is_active = ?", *filter.IsActive)
		}
		if filter.Limit > 0 {
			q = q.Limit(filter.Limit)
		}
		if filter.Offset > 0 {
			q = q.Offset(filter.Offset)
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("palisade: list org units: %w", err)
	}
	result := make([]*org.OrgUnit, len(models))
	for i := range models {
		result[i] = orgUnitFromModel(&models[i])
	}
	return result, nil
}

func (s *Store) ListChildUnits(ctx context.Context, tenantID string, parentID id.OrgUnitID, kind org.UnitKind) ([]*org.OrgUnit, error) {
	var models []orgUnitModel
	err := s.pgdb.NewSelect(&models).
		Where("tenant_id = ?", tenantID).
		Where("parent_id = ?", parentID.String()).
		Where("kind = ?", string(kind)).
		Where("is_active = ?", true).
		OrderExpr("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("palisade: list child units: %w", err)
	}
	result := make([]*org.OrgUnit, len(models))
	for i := range models {
		result[i] = orgUnitFromModel(&models[i])
	}
	return result, nil
}

func (s *Store) DeleteOrgUnitsByTenant(ctx context.Context, tenantID string) error {
	_, err := s.pgdb.NewDelete((*orgUnitModel)(nil)).
		Where("tenant_id = ?", tenantID).Exec(ctx)
	if err != nil {
		return fmt.Errorf("palisade: delete org units by tenant: %w", err)
	}
	return nil
}

// ──────────────────────────────────────────────────
// Delegation operations
// ──────────────────────────────────────────────────

func (s *Store) CreateDelegation(ctx context.Context, d *delegation.Delegation) error {
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now
	m := delegationToModel(d)
	if _, err := s.pgdb.NewInsert(m).Exec(ctx); err != nil {
		return fmt.Errorf("palisade: create delegation: %w", err)
	}
	return nil
}

func (s *Store) GetDelegation(ctx context.Context, delegationID id.DelegationID) (*delegation.Delegation, error) {
	m := new(delegationModel)
	err := s.pgdb.NewSelect(m).Where("id = ?", delegationID.String()).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("delegation %s: %w", delegationID, store.ErrNotFound)
		}
		return nil, fmt.Errorf("palisade: get delegation: %w", err)
	}
	return delegationFromModel(m), nil
}

func (s *Store) UpdateDelegation(ctx context.Context, d *delegation.Delegation) error {
	d.UpdatedAt = time.Now().UTC()
	m := delegationToModel(d)
	if _, err := s.pgdb.NewUpdate(m).WherePK().Exec(ctx); err != nil {
		return fmt.Errorf("palisade: update delegation: %w", err)
	}
	return nil
}

func (s *Store) ListDelegations(ctx context.Context, filter *delegation.ListFilter) ([]*delegation.Delegation, error) {
	var models []delegationModel
	q := s.pgdb.NewSelect(&models).OrderExpr("created_at ASC")
	if filter != nil {
		if filter.TenantID != "" {
			q = q.Where("tenant_id = ?", filter.TenantID)
		}
		if filter.DelegatorID != "" {
			q = q.Where("delegator_id = ?", filter.DelegatorID)
		}
		if filter.DelegateID != "" {
			q = q.Where("delegate_id = ?", filter.DelegateID)
		}
		if filter.Status != "" {
			q = q.Where("status = ?", string(filter.Status))
		}
		if filter.Limit > 0 {
			q = q.Limit(filter.Limit)
		}
		if filter.Offset > 0 {
			q = q.Offset(filter.Offset)
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("palisade: list delegations: %w", err)
	}
	result := make([]*delegation.Delegation, len(models))
	for i := range models {
		result[i] = delegationFromModel(&models[i])
	}
	return result, nil
}

func (s *Store) ListActiveForDelegate(ctx context.Context, tenantID, delegateID string) ([]*delegation.Delegation, error) {
	var models []delegationModel
	now := time.Now().UTC()
	err := s.pgdb.NewSelect(&models).
		Where("tenant_id = ?", tenantID).
		Where("delegate_id = ?", delegateID).
		Where("status = ?", string(delegation.StatusActive)).
		Where("starts_at <= ?", now).
		Where("ends_at IS NULL OR ends_at > ?", now).
		OrderExpr("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("palisade: list active delegations: %w", err)
	}
	result := make([]*delegation.Delegation, len(models))
	for i := range models {
		result[i] = delegationFromModel(&models[i])
	}
	return result, nil
}

func (s *Store) DeleteDelegationsByTenant(ctx context.Context, tenantID string) error {
	_, err := s.pgdb.NewDelete((*delegationModel)(nil)).
		Where("tenant_id = ?", tenantID).Exec(ctx)
	if err != nil {
		return fmt.Errorf("palisade: delete delegations by tenant: %w", err)
	}
	return nil
}

// ──────────────────────────────────────────────────
// Policy operations
// ──────────────────────────────────────────────────

func (s *Store) CreatePolicy(ctx context.Context, p *policy.AccessPolicy) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	m := policyToModel(p)
	if _, err := s.pgdb.NewInsert(m).Exec(ctx); err != nil {
		return fmt.Errorf("palisade: create policy: %w", err)
	}
	return nil
}

func (s *Store) GetPolicy(ctx context.Context, polID id.PolicyID) (*policy.AccessPolicy, error) {
	m := new(policyModel)
	err := s.pgdb.NewSelect(m).Where("id = ?", polID.String()).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("policy %s: %w", polID, store.ErrNotFound)
		}
		return nil, fmt.Errorf("palisade: get policy: %w", err)
	}
	return policyFromModel(m), nil
}

func (s *Store) GetPolicyByName(ctx context.Context, tenantID, name string) (*policy.AccessPolicy, error) {
	m := new(policyModel)
	err := s.pgdb.NewSelect(m).
		Where("tenant_id = ?", tenantID).
		Where("name = ?", name).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("policy %q: %w", name, store.ErrNotFound)
		}
		return nil, fmt.Errorf("palisade: get policy by name: %w", err)
	}
	return policyFromModel(m), nil
}

func (s *Store) UpdatePolicy(ctx context.Context, p *policy.AccessPolicy) error {
	p.UpdatedAt = time.Now().UTC()
	m := policyToModel(p)
	if _, err := s.pgdb.NewUpdate(m).WherePK().Exec(ctx); err != nil {
		return fmt.Errorf("palisade: update policy: %w", err)
	}
	return nil
}

func (s *Store) DeletePolicy(ctx context.Context, polID id.PolicyID) error {
	_, err := s.pgdb.NewDelete((*policyModel)(nil)).
		Where("id = ?", polID.String()).Exec(ctx)
	if err != nil {
		return fmt.Errorf("palisade: delete policy: %w", err)
	}
	return nil
}

func (s *Store) ListPolicies(ctx context.Context, filter *policy.ListFilter) ([]*policy.AccessPolicy, error) {
	var models []policyModel
	q := s.pgdb.NewSelect(&models).OrderExpr("priority DESC, created_at ASC")
	if filter != nil {
		if filter.TenantID != "" {
			q = q.Where("tenant_id = ?", filter.TenantID)
		}
		if filter.Effect != "" {
			q = q.Where("effect = ?", string(filter.Effect))
		}
		if filter.Status != "" {
			q = q.Where("status = ?", string(filter.Status))
		}
		if filter.Search != "" {
			q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Search+"%")
		}
		if filter.Limit > 0 {
			q = q.Limit(filter.Limit)
		}
		if filter.Offset > 0 {
			q = q.Offset(filter.Offset)
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("palisade: list policies: %w", err)
	}
	result := make([]*policy.AccessPolicy, len(models))
	for i := range models {
		result[i] = policyFromModel(&models[i])
	}
	return result, nil
}

func (s *Store) CountPolicies(ctx context.Context, filter *policy.ListFilter) (int64, error) {
	q := s.pgdb.NewSelect((*policyModel)(nil))
	if filter != nil {
		if filter.TenantID != "" {
			q = q.Where("tenant_id = ?", filter.TenantID)
		}
		if filter.Effect != "" {
			q = q.Where("effect = ?", string(filter.Effect))
		}
		if filter.Status != "" {
			q = q.Where("status = ?", string(filter.Status))
		}
		if filter.Search != "" {
			q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Search+"%")
		}
	}
	count, err := q.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("palisade: count policies: %w", err)
	}
	return count, nil
}

func (s *Store) ListActivePolicies(ctx context.Context, tenantID string) ([]*policy.AccessPolicy, error) {
	var models []policyModel
	err := s.pgdb.NewSelect(&models).
		Where("tenant_id = ?", tenantID).
		Where("status = ?", string(policy.StatusActive)).
		OrderExpr("priority DESC, created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("palisade: list active policies: %w", err)
	}
	result := make([]*policy.AccessPolicy, len(models))
	for i := range models {
		result[i] = policyFromModel(&models[i])
	}
	return result, nil
}

func (s *Store) DeletePoliciesByTenant(ctx context.Context, tenantID string) error {
	_, err := s.pgdb.NewDelete((*policyModel)(nil)).
		Where("tenant_id = ?", tenantID).Exec(ctx)
	if err != nil {
		return fmt.Errorf("palisade: delete policies by tenant: %w", err)
	}
	return nil
}

// ──────────────────────────────────────────────────
// Union membership operations
// ──────────────────────────────────────────────────

func (s *Store) CreateUnionMembership(ctx context.Context, m *union.Membership) error {
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	model := unionMembershipToModel(m)
	if _, err := s.pgdb.NewInsert(model).Exec(ctx); err != nil {
		return fmt.Errorf("palisade: create union membership: %w", err)
	}
	return nil
}

func (s *Store) GetUnionMembership(ctx context.Context, memberID id.UnionMemberID) (*union.Membership, error) {
	m := new(unionMembershipModel)
	err := s.pgdb.NewSelect(m).Where("id = ?", memberID.String()).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("union membership %s: %w", memberID, store.ErrNotFound)
		}
		return nil, fmt.Errorf("palisade: get union membership: %w", err)
	}
	return unionMembershipFromModel(m), nil
}

func (s *Store) UpdateUnionMembership(ctx context.Context, m *union.Membership) error {
	m.UpdatedAt = time.Now().UTC()
	model := unionMembershipToModel(m)
	if _, err := s.pgdb.NewUpdate(model).WherePK().Exec(ctx); err != nil {
		return fmt.Errorf("palisade: update union membership: %w", err)
	}
	return nil
}

func (s *Store) ListUnionMemberships(ctx context.Context, filter *union.ListFilter) ([]*union.Membership, error) {
	var models []unionMembershipModel
	q := s.pgdb.NewSelect(&models).OrderExpr("created_at ASC")
	if filter != nil {
		if filter.TenantID != "" {
			q = q.Where("tenant_id = ?", filter.TenantID)
		}
		if filter.UserID != "" {
			q = q.Where("user_id = ?", filter.UserID)
		}
		if filter.UnionCode != "" {
			q = q.Where("union_code = ?", filter.UnionCode)
		}
		if filter.Status != "" {
			q = q.Where("status = ?", string(filter.Status))
		}
		if filter.Limit > 0 {
			q = q.Limit(filter.Limit)
		}
		if filter.Offset > 0 {
			q = q.Offset(filter.Offset)
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("palisade: list union memberships: %w", err)
	}
	result := make([]*union.Membership, len(models))
	for i := range models {
		result[i] = unionMembershipFromModel(&models[i])
	}
	return result, nil
}

func (s *Store) ListActiveUnionMemberships(ctx context.Context, tenantID, userID string) ([]*union.Membership, error) {
	var models []unionMembershipModel
	err := s.pgdb.NewSelect(&models).
		Where("tenant_id = ?", tenantID).
		Where("user_id = ?", userID).
		Where("status = ?", string(union.StatusActive)).
		OrderExpr("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("palisade: list active union memberships: %w", err)
	}
	result := make([]*union.Membership, len(models))
	for i := range models {
		result[i] = unionMembershipFromModel(&models[i])
	}
	return result, nil
}

func (s *Store) DeleteUnionMembershipsByTenant(ctx context.Context, tenantID string) error {
	_, err := s.pgdb.NewDelete((*unionMembershipModel)(nil)).
		Where("tenant_id = ?", tenantID).Exec(ctx)
	if err != nil {
		return fmt.Errorf("palisade: delete union memberships by tenant: %w", err)
	}
	return nil
}

// ──────────────────────────────────────────────────
// Audit log operations
// ──────────────────────────────────────────────────

func (s *Store) CreateAuditEntry(ctx context.Context, e *auditlog.Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	m := auditEntryToModel(e)
	if _, err := s.pgdb.NewInsert(m).Exec(ctx); err != nil {
		return fmt.Errorf("palisade: create audit entry: %w", err)
	}
	return nil
}

func (s *Store) GetAuditEntry(ctx context.Context, entryID id.AuditEventID) (*auditlog.Entry, error) {
	m := new(auditEntryModel)
	err := s.pgdb.NewSelect(m).Where("id = ?", entryID.String()).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("audit entry %s: %w", entryID, store.ErrNotFound)
		}
		return nil, fmt.Errorf("palisade: get audit entry: %w", err)
	}
	return auditEntryFromModel(m), nil
}

func (s *Store) ListAuditEntries(ctx context.Context, filter *auditlog.QueryFilter) ([]*auditlog.Entry, error) {
	var models []auditEntryModel
	q := s.pgdb.NewSelect(&models).OrderExpr("created_at DESC")
	if filter != nil {
		if filter.TenantID != "" {
			q = q.Where("tenant_id = ?", filter.TenantID)
		}
		if filter.Kind != "" {
			q = q.Where("kind = ?", filter.Kind)
		}
		if filter.ActorID != "" {
			q = q.Where("actor_id = ?", filter.ActorID)
		}
		if filter.ResourceType != "" {
			q = q.Where("resource_type = ?", filter.ResourceType)
		}
		if filter.ResourceID != "" {
			q = q.Where("resource_id = ?", filter.ResourceID)
		}
		if filter.After != nil {
			q = q.Where("created_at > ?", *filter.After)
		}
		if filter.Before != nil {
			q = q.Where("created_at < ?", *filter.Before)
		}
		if filter.Limit > 0 {
			q = q.Limit(filter.Limit)
		}
		if filter.Offset > 0 {
			q = q.Offset(filter.Offset)
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("palisade: list audit entries: %w", err)
	}
	result := make([]*auditlog.Entry, len(models))
	for i := range models {
		result[i] = auditEntryFromModel(&models[i])
	}
	return result, nil
}

func (s *Store) CountAuditEntries(ctx context.Context, filter *auditlog.QueryFilter) (int64, error) {
	q := s.pgdb.NewSelect((*auditEntryModel)(nil))
	if filter != nil {
		if filter.TenantID != "" {
			q = q.Where("tenant_id = ?", filter.TenantID)
		}
		if filter.Kind != "" {
			q = q.Where("kind = ?", filter.Kind)
		}
		if filter.ActorID != "" {
			q = q.Where("actor_id = ?", filter.ActorID)
		}
		if filter.ResourceType != "" {
			q = q.Where("resource_type = ?", filter.ResourceType)
		}
		if filter.ResourceID != "" {
			q = q.Where("resource_id = ?", filter.ResourceID)
		}
		if filter.After != nil {
			q = q.Where("created_at > ?", *filter.After)
		}
		if filter.Before != nil {
			q = q.Where("created_at < ?", *filter.Before)
		}
	}
	count, err := q.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("palisade: count audit entries: %w", err)
	}
	return count, nil
}

func (s *Store) PurgeAuditEntries(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.pgdb.NewDelete((*auditEntryModel)(nil)).
		Where("created_at < ?", before).Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("palisade: purge audit entries: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("palisade: purge audit entries: %w", err)
	}
	return n, nil
}

func (s *Store) DeleteAuditEntriesByTenant(ctx context.Context, tenantID string) error {
	_, err := s.pgdb.NewDelete((*auditEntryModel)(nil)).
		Where("tenant_id = ?", tenantID).Exec(ctx)
	if err != nil {
		return fmt.Errorf("palisade: delete audit entries by tenant: %w", err)
	}
	return nil
}
