// Package memory provides an in-memory implementation of the Palisade
// composite store. It is intended for testing and development.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/elevatehq/palisade/auditlog"
	"github.com/elevatehq/palisade/delegation"
	"github.com/elevatehq/palisade/id"
	"github.com/elevatehq/palisade/org"
	"github.com/elevatehq/palisade/policy"
	"github.com/elevatehq/palisade/store"
	"github.com/elevatehq/palisade/union"
)

// Compile-time interface checks.
var (
	_ org.Store        = (*Store)(nil)
	_ delegation.Store = (*Store)(nil)
	_ policy.Store     = (*Store)(nil)
	_ union.Store      = (*Store)(nil)
	_ auditlog.Store   = (*Store)(nil)
	_ store.Store      = (*Store)(nil)
)

// Store is a thread-safe in-memory store for all Palisade entities.
type Store struct {
	mu sync.RWMutex

	teams            map[string]*org.Team
	teamMemberships  map[string]*org.TeamMembership
	reportLinks      map[string]*org.ReportLink
	orgUnits         map[string]*org.OrgUnit
	delegations      map[string]*delegation.Delegation
	policies         map[string]*policy.AccessPolicy
	unionMemberships map[string]*union.Membership
	auditEntries     map[string]*auditlog.Entry
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		teams:            make(map[string]*org.Team),
		teamMemberships:  make(map[string]*org.TeamMembership),
		reportLinks:      make(map[string]*org.ReportLink),
		orgUnits:         make(map[string]*org.OrgUnit),
		delegations:      make(map[string]*delegation.Delegation),
		policies:         make(map[string]*policy.AccessPolicy),
		unionMemberships: make(map[string]*union.Membership),
		auditEntries:     make(map[string]*auditlog.Entry),
	}
}

// Migrate is a no-op for the memory store.
func (s *Store) Migrate(_ context.Context) error { return nil }

// Ping is a no-op for the memory store.
func (s *Store) Ping(_ context.Context) error { return nil }

// Close is a no-op for the memory store.
func (s *Store) Close() error { return nil }

// ──────────────────────────────────────────────────
// Org Store: teams
// ──────────────────────────────────────────────────

func (s *Store) CreateTeam(_ context.Context, t *org.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams[t.ID.String()] = copyTeam(t)
	return nil
}

func (s *Store) GetTeam(_ context.Context, teamID id.TeamID) (*org.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.teams[teamID.String()]
	if !ok {
		return nil, fmt.Errorf("team %s: %w", teamID, store.ErrNotFound)
	}
	return copyTeam(t), nil
}

func (s *Store) UpdateTeam(_ context.Context, t *org.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.teams[t.ID.String()]; !ok {
		return fmt.Errorf("team %s: %w", t.ID, store.ErrNotFound)
	}
	s.teams[t.ID.String()] = copyTeam(t)
	return nil
}

func (s *Store) ListTeams(_ context.Context, filter *org.TeamListFilter) ([]*org.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*org.Team
	for _, t := range s.teams {
		if filter != nil {
			if filter.TenantID != "" && t.TenantID != filter.TenantID {
				continue
			}
			if filter.IsActive != nil && t.IsActive != *filter.IsActive {
				continue
			}
			if filter.Search != "" && !strings.Contains(strings.ToLower(t.Name), strings.ToLower(filter.Search)) {
				continue
			}
		}
		out = append(out, copyTeam(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	if filter != nil {
		return paginate(out, pageArgs{filter.Limit, filter.Offset}), nil
	}
	return out, nil
}

func (s *Store) DeleteTeamsByTenant(_ context.Context, tenantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, t := range s.teams {
		if t.TenantID == tenantID {
			delete(s.teams, k)
		}
	}
	return nil
}

// ──────────────────────────────────────────────────
// Org Store: team memberships
// ──────────────────────────────────────────────────

func (s *Store) AddTeamMember(_ context.Context, m *org.TeamMembership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teamMemberships[m.ID.String()] = copyTeamMembership(m)
	return nil
}

func (s *Store) EndTeamMembership(_ context.Context, membershipID id.TeamMembershipID, endedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.teamMemberships[membershipID.String()]
	if !ok {
		return fmt.Errorf("team membership %s: %w", membershipID, store.ErrNotFound)
	}
	e := endedAt
	m.EndedAt = &e
	return nil
}

func (s *Store) ListActiveTeamIDs(_ context.Context, tenantID, userID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := time.Now()
	seen := make(map[string]struct{})
	var out []string
	for _, m := range s.teamMemberships {
		if m.TenantID != tenantID || m.UserID != userID || !m.ActiveAt(now) {
			continue
		}
		key := m.TeamID.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	sort.Strings(out)
	return out, nil
}

func (s *Store) ListActiveTeamMemberIDs(_ context.Context, tenantID string, teamIDs []string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := time.Now()
	want := make(map[string]struct{}, len(teamIDs))
	for _, t := range teamIDs {
		want[t] = struct{}{}
	}
	seen := make(map[string]struct{})
	var out []string
	for _, m := range s.teamMemberships {
		if m.TenantID != tenantID || !m.ActiveAt(now) {
			continue
		}
		if _, ok := want[m.TeamID.String()]; !ok {
			continue
		}
		if _, ok := seen[m.UserID]; ok {
			continue
		}
		seen[m.UserID] = struct{}{}
		out = append(out, m.UserID)
	}
	sort.Strings(out)
	return out, nil
}

// ──────────────────────────────────────────────────
// Org Store: reporting links
// ──────────────────────────────────────────────────

func (s *Store) AddReportLink(_ context.Context, l *org.ReportLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reportLinks[l.ID.String()] = copyReportLink(l)
	return nil
}

func (s *Store) EndReportLink(_ context.Context, linkID id.ReportLinkID, endedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.reportLinks[linkID.String()]
	if !ok {
		return fmt.Errorf("report link %s: %w", linkID, store.ErrNotFound)
	}
	e := endedAt
	l.EndedAt = &e
	return nil
}

func (s *Store) ListDirectReportIDs(_ context.Context, tenantID, managerID string) ([]string, error) {
	return s.listReportIDs(tenantID, managerID, org.ReportDirect)
}

func (s *Store) ListMatrixReportIDs(_ context.Context, tenantID, managerID string) ([]string, error) {
	return s.listReportIDs(tenantID, managerID, org.ReportMatrix)
}

func (s *Store) listReportIDs(tenantID, managerID string, kind org.ReportKind) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := time.Now()
	seen := make(map[string]struct{})
	var out []string
	for _, l := range s.reportLinks {
		if l.TenantID != tenantID || l.ManagerID != managerID || l.Kind != kind || !l.ActiveAt(now) {
			continue
		}
		if _, ok := seen[l.ReportID]; ok {
			continue
		}
		seen[l.ReportID] = struct{}{}
		out = append(out, l.ReportID)
	}
	sort.Strings(out)
	return out, nil
}

// ──────────────────────────────────────────────────
// Org Store: org units
// ──────────────────────────────────────────────────

func (s *Store) CreateOrgUnit(_ context.Context, u *org.OrgUnit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orgUnits[u.ID.String()] = copyOrgUnit(u)
	return nil
}

func (s *Store) GetOrgUnit(_ context.Context, unitID id.OrgUnitID) (*org.OrgUnit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.orgUnits[unitID.String()]
	if !ok {
		return nil, fmt.Errorf("org unit %s: %w", unitID, store.ErrNotFound)
	}
	return copyOrgUnit(u), nil
}

func (s *Store) UpdateOrgUnit(_ context.Context, u *org.OrgUnit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orgUnits[u.ID.String()]; !ok {
		return fmt.Errorf("org unit %s: %w", u.ID, store.ErrNotFound)
	}
	s.orgUnits[u.ID.String()] = copyOrgUnit(u)
	return nil
}

func (s *Store) ListOrgUnits(_ context.Context, filter *org.UnitListFilter) ([]*org.OrgUnit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*org.OrgUnit
	for _, u := range s.orgUnits {
		if filter != nil {
			if filter.TenantID != "" && u.TenantID != filter.TenantID {
				continue
			}
			if filter.Kind != "" && u.Kind != filter.Kind {
				continue
			}
			if filter.ParentID != nil && (u.ParentID == nil || u.ParentID.String() != filter.ParentID.String()) {
				continue
			}
			if filter.IsActive != nil && u.IsActive != *filter.IsActive {
				continue
			}
		}
		out = append(out, copyOrgUnit(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	if filter != nil {
		return paginate(out, pageArgs{filter.Limit, filter.Offset}), nil
	}
	return out, nil
}

func (s *Store) ListChildUnits(_ context.Context, tenantID string, parentID id.OrgUnitID, kind org.UnitKind) ([]*org.OrgUnit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*org.OrgUnit
	for _, u := range s.orgUnits {
		if u.TenantID != tenantID || u.Kind != kind || !u.IsActive {
			continue
		}
		if u.ParentID == nil || u.ParentID.String() != parentID.String() {
			continue
		}
		out = append(out, copyOrgUnit(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (s *Store) DeleteOrgUnitsByTenant(_ context.Context, tenantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, u := range s.orgUnits {
		if u.TenantID == tenantID {
			delete(s.orgUnits, k)
		}
	}
	return nil
}

// ──────────────────────────────────────────────────
// Delegation Store
// ──────────────────────────────────────────────────

func (s *Store) CreateDelegation(_ context.Context, d *delegation.Delegation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delegations[d.ID.String()] = copyDelegation(d)
	return nil
}

func (s *Store) GetDelegation(_ context.Context, delegationID id.DelegationID) (*delegation.Delegation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.delegations[delegationID.String()]
	if !ok {
		return nil, fmt.Errorf("delegation %s: %w", delegationID, store.ErrNotFound)
	}
	return copyDelegation(d), nil
}

func (s *Store) UpdateDelegation(_ context.Context, d *delegation.Delegation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.delegations[d.ID.String()]; !ok {
		return fmt.Errorf("delegation %s: %w", d.ID, store.ErrNotFound)
	}
	s.delegations[d.ID.String()] = copyDelegation(d)
	return nil
}

func (s *Store) ListDelegations(_ context.Context, filter *delegation.ListFilter) ([]*delegation.Delegation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*delegation.Delegation
	for _, d := range s.delegations {
		if filter != nil {
			if filter.TenantID != "" && d.TenantID != filter.TenantID {
				continue
			}
			if filter.DelegatorID != "" && d.DelegatorID != filter.DelegatorID {
				continue
			}
			if filter.DelegateID != "" && d.DelegateID != filter.DelegateID {
				continue
			}
			if filter.Status != "" && d.Status != filter.Status {
				continue
			}
		}
		out = append(out, copyDelegation(d))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	if filter != nil {
		return paginate(out, pageArgs{filter.Limit, filter.Offset}), nil
	}
	return out, nil
}

func (s *Store) ListActiveForDelegate(_ context.Context, tenantID, delegateID string) ([]*delegation.Delegation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := time.Now()
	var out []*delegation.Delegation
	for _, d := range s.delegations {
		if d.TenantID != tenantID || d.DelegateID != delegateID || !d.ActiveAt(now) {
			continue
		}
		out = append(out, copyDelegation(d))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (s *Store) DeleteDelegationsByTenant(_ context.Context, tenantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, d := range s.delegations {
		if d.TenantID == tenantID {
			delete(s.delegations, k)
		}
	}
	return nil
}

// ──────────────────────────────────────────────────
// Policy Store
// ──────────────────────────────────────────────────

func (s *Store) CreatePolicy(_ context.Context, p *policy.AccessPolicy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.policies[p.ID.String()] = copyPolicy(p)
	return nil
}

func (s *Store) GetPolicy(_ context.Context, policyID id.PolicyID) (*policy.AccessPolicy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.policies[policyID.String()]
	if !ok {
		return nil, fmt.Errorf("policy %s: %w", policyID, store.ErrNotFound)
	}
	return copyPolicy(p), nil
}

func (s *Store) GetPolicyByName(_ context.Context, tenantID, name string) (*policy.AccessPolicy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.policies {
		if p.TenantID == tenantID && p.Name == name {
			return copyPolicy(p), nil
		}
	}
	return nil, fmt.Errorf("policy %q: %w", name, store.ErrNotFound)
}

func (s *Store) UpdatePolicy(_ context.Context, p *policy.AccessPolicy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.policies[p.ID.String()]; !ok {
		return fmt.Errorf("policy %s: %w", p.ID, store.ErrNotFound)
	}
	s.policies[p.ID.String()] = copyPolicy(p)
	return nil
}

func (s *Store) DeletePolicy(_ context.Context, policyID id.PolicyID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.policies, policyID.String())
	return nil
}

func (s *Store) ListPolicies(_ context.Context, filter *policy.ListFilter) ([]*policy.AccessPolicy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*policy.AccessPolicy
	for _, p := range s.policies {
		if filter != nil {
			if filter.TenantID != "" && p.TenantID != filter.TenantID {
				continue
			}
			if filter.Effect != "" && p.Effect != filter.Effect {
				continue
			}
			if filter.Status != "" && p.Status != filter.Status {
				continue
			}
			if filter.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) {
				continue
			}
		}
		out = append(out, copyPolicy(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	if filter != nil {
		return paginate(out, pageArgs{filter.Limit, filter.Offset}), nil
	}
	return out, nil
}

func (s *Store) ListActivePolicies(_ context.Context, tenantID string) ([]*policy.AccessPolicy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*policy.AccessPolicy
	for _, p := range s.policies {
		if p.TenantID != tenantID || p.Status != policy.StatusActive {
			continue
		}
		out = append(out, copyPolicy(p))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority > out[j].Priority })
	return out, nil
}

func (s *Store) CountPolicies(_ context.Context, filter *policy.ListFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, p := range s.policies {
		if filter != nil {
			if filter.TenantID != "" && p.TenantID != filter.TenantID {
				continue
			}
			if filter.Effect != "" && p.Effect != filter.Effect {
				continue
			}
			if filter.Status != "" && p.Status != filter.Status {
				continue
			}
			if filter.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) {
				continue
			}
		}
		n++
	}
	return n, nil
}

func (s *Store) DeletePoliciesByTenant(_ context.Context, tenantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, p := range s.policies {
		if p.TenantID == tenantID {
			delete(s.policies, k)
		}
	}
	return nil
}

// ──────────────────────────────────────────────────
// Union Store
// ──────────────────────────────────────────────────

func (s *Store) CreateUnionMembership(_ context.Context, m *union.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unionMemberships[m.ID.String()] = copyUnionMembership(m)
	return nil
}

func (s *Store) GetUnionMembership(_ context.Context, memberID id.UnionMemberID) (*union.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.unionMemberships[memberID.String()]
	if !ok {
		return nil, fmt.Errorf("union membership %s: %w", memberID, store.ErrNotFound)
	}
	return copyUnionMembership(m), nil
}

func (s *Store) UpdateUnionMembership(_ context.Context, m *union.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.unionMemberships[m.ID.String()]; !ok {
		return fmt.Errorf("union membership %s: %w", m.ID, store.ErrNotFound)
	}
	s.unionMemberships[m.ID.String()] = copyUnionMembership(m)
	return nil
}

func (s *Store) ListUnionMemberships(_ context.Context, filter *union.ListFilter) ([]*union.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*union.Membership
	for _, m := range s.unionMemberships {
		if filter != nil {
			if filter.TenantID != "" && m.TenantID != filter.TenantID {
				continue
			}
			if filter.UserID != "" && m.UserID != filter.UserID {
				continue
			}
			if filter.UnionCode != "" && m.UnionCode != filter.UnionCode {
				continue
			}
			if filter.Status != "" && m.Status != filter.Status {
				continue
			}
		}
		out = append(out, copyUnionMembership(m))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	if filter != nil {
		return paginate(out, pageArgs{filter.Limit, filter.Offset}), nil
	}
	return out, nil
}

func (s *Store) ListActiveUnionMemberships(_ context.Context, tenantID, userID string) ([]*union.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*union.Membership
	for _, m := range s.unionMemberships {
		if m.TenantID != tenantID || m.UserID != userID || m.Status != union.StatusActive {
			continue
		}
		out = append(out, copyUnionMembership(m))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (s *Store) DeleteUnionMembershipsByTenant(_ context.Context, tenantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, m := range s.unionMemberships {
		if m.TenantID == tenantID {
			delete(s.unionMemberships, k)
		}
	}
	return nil
}

// ──────────────────────────────────────────────────
// Audit Store
// ──────────────────────────────────────────────────

func (s *Store) CreateAuditEntry(_ context.Context, e *auditlog.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auditEntries[e.ID.String()] = copyAuditEntry(e)
	return nil
}

func (s *Store) GetAuditEntry(_ context.Context, entryID id.AuditEventID) (*auditlog.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.auditEntries[entryID.String()]
	if !ok {
		return nil, fmt.Errorf("audit entry %s: %w", entryID, store.ErrNotFound)
	}
	return copyAuditEntry(e), nil
}

func (s *Store) ListAuditEntries(_ context.Context, filter *auditlog.QueryFilter) ([]*auditlog.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*auditlog.Entry
	for _, e := range s.auditEntries {
		if filter != nil && !matchAuditFilter(e, filter) {
			continue
		}
		out = append(out, copyAuditEntry(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if filter != nil {
		return paginate(out, pageArgs{filter.Limit, filter.Offset}), nil
	}
	return out, nil
}

func (s *Store) CountAuditEntries(_ context.Context, filter *auditlog.QueryFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, e := range s.auditEntries {
		if filter != nil && !matchAuditFilter(e, filter) {
			continue
		}
		n++
	}
	return n, nil
}

func (s *Store) PurgeAuditEntries(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for k, e := range s.auditEntries {
		if e.CreatedAt.Before(before) {
			delete(s.auditEntries, k)
			n++
		}
	}
	return n, nil
}

func (s *Store) DeleteAuditEntriesByTenant(_ context.Context, tenantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, e := range s.auditEntries {
		if e.TenantID == tenantID {
			delete(s.auditEntries, k)
		}
	}
	return nil
}

func matchAuditFilter(e *auditlog.Entry, f *auditlog.QueryFilter) bool {
	if f.TenantID != "" && e.TenantID != f.TenantID {
		return false
	}
	if f.Kind != "" && e.Kind != f.Kind {
		return false
	}
	if f.ActorID != "" && e.ActorID != f.ActorID {
		return false
	}
	if f.ResourceType != "" && e.ResourceType != f.ResourceType {
		return false
	}
	if f.ResourceID != "" && e.ResourceID != f.ResourceID {
		return false
	}
	if f.After != nil && !e.CreatedAt.After(*f.After) {
		return false
	}
	if f.Before != nil && !e.CreatedAt.Before(*f.Before) {
		return false
	}
	return true
}

// ──────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────

type pageArgs struct {
	limit  int
	offset int
}

func paginate[T any](items []T, p pageArgs) []T {
	if p.offset > 0 {
		if p.offset >= len(items) {
			return nil
		}
		items = items[p.offset:]
	}
	if p.limit > 0 && p.limit < len(items) {
		items = items[:p.limit]
	}
	return items
}

func copyTeam(t *org.Team) *org.Team {
	c := *t
	return &c
}

func copyTeamMembership(m *org.TeamMembership) *org.TeamMembership {
	c := *m
	if m.EndedAt != nil {
		e := *m.EndedAt
		c.EndedAt = &e
	}
	return &c
}

func copyReportLink(l *org.ReportLink) *org.ReportLink {
	c := *l
	if l.EndedAt != nil {
		e := *l.EndedAt
		c.EndedAt = &e
	}
	return &c
}

func copyOrgUnit(u *org.OrgUnit) *org.OrgUnit {
	c := *u
	if u.ParentID != nil {
		p := *u.ParentID
		c.ParentID = &p
	}
	return &c
}

func copyDelegation(d *delegation.Delegation) *delegation.Delegation {
	c := *d
	if d.EndsAt != nil {
		e := *d.EndsAt
		c.EndsAt = &e
	}
	return &c
}

func copyPolicy(p *policy.AccessPolicy) *policy.AccessPolicy {
	c := *p
	c.TargetRoles = append([]string(nil), p.TargetRoles...)
	c.TargetDepartments = append([]string(nil), p.TargetDepartments...)
	c.TargetLevels = append([]int(nil), p.TargetLevels...)
	c.Actions.Resources = append([]string(nil), p.Actions.Resources...)
	c.Actions.Actions = append([]string(nil), p.Actions.Actions...)
	if p.EffectiveFrom != nil {
		e := *p.EffectiveFrom
		c.EffectiveFrom = &e
	}
	if p.EffectiveTo != nil {
		e := *p.EffectiveTo
		c.EffectiveTo = &e
	}
	return &c
}

func copyUnionMembership(m *union.Membership) *union.Membership {
	c := *m
	if m.Rules != nil {
		c.Rules = make(map[string]union.Rule, len(m.Rules))
		for k, v := range m.Rules {
			c.Rules[k] = v
		}
	}
	return &c
}

func copyAuditEntry(e *auditlog.Entry) *auditlog.Entry {
	c := *e
	if e.Detail != nil {
		c.Detail = make(map[string]any, len(e.Detail))
		for k, v := range e.Detail {
			c.Detail[k] = v
		}
	}
	return &c
}
