package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/elevatehq/palisade/auditlog"
	"github.com/elevatehq/palisade/delegation"
	"github.com/elevatehq/palisade/id"
	"github.com/elevatehq/palisade/org"
	"github.com/elevatehq/palisade/policy"
	"github.com/elevatehq/palisade/store"
	"github.com/elevatehq/palisade/union"
)

func TestTeamCRUD(t *testing.T) {
	ctx := context.Background()
	s := New()

	team := &org.Team{
		ID:       id.NewTeamID(),
		TenantID: "t1",
		Name:     "platform",
		IsActive: true,
	}

	if err := s.CreateTeam(ctx, team); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetTeam(ctx, team.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "platform" {
		t.Fatalf("expected platform, got %s", got.Name)
	}

	team.Name = "platform-eng"
	if err := s.UpdateTeam(ctx, team); err != nil {
		t.Fatal(err)
	}
	got, _ = s.GetTeam(ctx, team.ID)
	if got.Name != "platform-eng" {
		t.Fatal("update failed")
	}

	list, _ := s.ListTeams(ctx, &org.TeamListFilter{TenantID: "t1"})
	if len(list) != 1 {
		t.Fatalf("expected 1 team, got %d", len(list))
	}

	if err := s.DeleteTeamsByTenant(ctx, "t1"); err != nil {
		t.Fatal(err)
	}
	_, err = s.GetTeam(ctx, team.ID)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestActiveTeamMemberships(t *testing.T) {
	ctx := context.Background()
	s := New()

	teamID := id.NewTeamID()
	past := time.Now().Add(-time.Hour)

	// Active membership.
	m1 := &org.TeamMembership{
		ID:        id.NewTeamMembershipID(),
		TenantID:  "t1",
		TeamID:    teamID,
		UserID:    "u1",
		StartedAt: past,
	}
	// Ended membership for another user.
	ended := time.Now().Add(-time.Minute)
	m2 := &org.TeamMembership{
		ID:        id.NewTeamMembershipID(),
		TenantID:  "t1",
		TeamID:    teamID,
		UserID:    "u2",
		StartedAt: past,
		EndedAt:   &ended,
	}
	_ = s.AddTeamMember(ctx, m1)
	_ = s.AddTeamMember(ctx, m2)

	teamIDs, err := s.ListActiveTeamIDs(ctx, "t1", "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(teamIDs) != 1 || teamIDs[0] != teamID.String() {
		t.Fatalf("unexpected team ids: %v", teamIDs)
	}

	// u2's membership has ended.
	teamIDs, _ = s.ListActiveTeamIDs(ctx, "t1", "u2")
	if len(teamIDs) != 0 {
		t.Fatalf("expected no active teams for u2, got %v", teamIDs)
	}

	members, err := s.ListActiveTeamMemberIDs(ctx, "t1", []string{teamID.String()})
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != 1 || members[0] != "u1" {
		t.Fatalf("unexpected members: %v", members)
	}

	// Ending u1's membership removes them from the active set.
	if err := s.EndTeamMembership(ctx, m1.ID, time.Now().Add(-time.Second)); err != nil {
		t.Fatal(err)
	}
	members, _ = s.ListActiveTeamMemberIDs(ctx, "t1", []string{teamID.String()})
	if len(members) != 0 {
		t.Fatalf("expected no members after end, got %v", members)
	}
}

func TestReportLinks(t *testing.T) {
	ctx := context.Background()
	s := New()

	past := time.Now().Add(-time.Hour)
	_ = s.AddReportLink(ctx, &org.ReportLink{
		ID: id.NewReportLinkID(), TenantID: "t1",
		ManagerID: "mgr", ReportID: "u1", Kind: org.ReportDirect, StartedAt: past,
	})
	_ = s.AddReportLink(ctx, &org.ReportLink{
		ID: id.NewReportLinkID(), TenantID: "t1",
		ManagerID: "mgr", ReportID: "u2", Kind: org.ReportMatrix, StartedAt: past,
	})
	// Different tenant, must not leak.
	_ = s.AddReportLink(ctx, &org.ReportLink{
		ID: id.NewReportLinkID(), TenantID: "t2",
		ManagerID: "mgr", ReportID: "u3", Kind: org.ReportDirect, StartedAt: past,
	})

	direct, err := s.ListDirectReportIDs(ctx, "t1", "mgr")
	if err != nil {
		t.Fatal(err)
	}
	if len(direct) != 1 || direct[0] != "u1" {
		t.Fatalf("unexpected direct reports: %v", direct)
	}

	matrix, _ := s.ListMatrixReportIDs(ctx, "t1", "mgr")
	if len(matrix) != 1 || matrix[0] != "u2" {
		t.Fatalf("unexpected matrix reports: %v", matrix)
	}
}

func TestOrgUnitTree(t *testing.T) {
	ctx := context.Background()
	s := New()

	rootID := id.NewOrgUnitID()
	childID := id.NewOrgUnitID()

	_ = s.CreateOrgUnit(ctx, &org.OrgUnit{
		ID: rootID, TenantID: "t1", Kind: org.UnitDepartment, Name: "Engineering",
		HeadUserID: "head-1", IsActive: true,
	})
	_ = s.CreateOrgUnit(ctx, &org.OrgUnit{
		ID: childID, TenantID: "t1", Kind: org.UnitDepartment, Name: "Platform",
		ParentID: &rootID, IsActive: true,
	})
	// Inactive child must be excluded.
	inactiveID := id.NewOrgUnitID()
	_ = s.CreateOrgUnit(ctx, &org.OrgUnit{
		ID: inactiveID, TenantID: "t1", Kind: org.UnitDepartment, Name: "Sunset",
		ParentID: &rootID, IsActive: false,
	})

	children, err := s.ListChildUnits(ctx, "t1", rootID, org.UnitDepartment)
	if err != nil {
		t.Fatal(err)
	}
	if len(children) != 1 || children[0].ID != childID {
		t.Fatalf("unexpected children: %v", children)
	}

	got, err := s.GetOrgUnit(ctx, rootID)
	if err != nil {
		t.Fatal(err)
	}
	if got.HeadUserID != "head-1" {
		t.Fatalf("unexpected head: %s", got.HeadUserID)
	}
}

func TestDelegationActiveWindow(t *testing.T) {
	ctx := context.Background()
	s := New()

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)
	expired := time.Now().Add(-time.Minute)

	// Active, open-ended.
	_ = s.CreateDelegation(ctx, &delegation.Delegation{
		ID: id.NewDelegationID(), TenantID: "t1",
		DelegatorID: "boss", DelegateID: "deputy",
		Status: delegation.StatusActive, StartsAt: past,
	})
	// Active but already ended.
	_ = s.CreateDelegation(ctx, &delegation.Delegation{
		ID: id.NewDelegationID(), TenantID: "t1",
		DelegatorID: "former-boss", DelegateID: "deputy",
		Status: delegation.StatusActive, StartsAt: past, EndsAt: &expired,
	})
	// Revoked.
	_ = s.CreateDelegation(ctx, &delegation.Delegation{
		ID: id.NewDelegationID(), TenantID: "t1",
		DelegatorID: "other-boss", DelegateID: "deputy",
		Status: delegation.StatusRevoked, StartsAt: past, EndsAt: &future,
	})

	active, err := s.ListActiveForDelegate(ctx, "t1", "deputy")
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 1 || active[0].DelegatorID != "boss" {
		t.Fatalf("unexpected active delegations: %v", active)
	}
}

func TestPolicyOrdering(t *testing.T) {
	ctx := context.Background()
	s := New()

	_ = s.CreatePolicy(ctx, &policy.AccessPolicy{
		ID: id.NewPolicyID(), TenantID: "t1", Name: "low", Priority: 5,
		Status: policy.StatusActive, Effect: policy.EffectAllow,
	})
	_ = s.CreatePolicy(ctx, &policy.AccessPolicy{
		ID: id.NewPolicyID(), TenantID: "t1", Name: "high", Priority: 10,
		Status: policy.StatusActive, Effect: policy.EffectDeny,
	})
	_ = s.CreatePolicy(ctx, &policy.AccessPolicy{
		ID: id.NewPolicyID(), TenantID: "t1", Name: "draft", Priority: 99,
		Status: policy.StatusDraft, Effect: policy.EffectDeny,
	})

	active, err := s.ListActivePolicies(ctx, "t1")
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 2 {
		t.Fatalf("expected 2 active policies, got %d", len(active))
	}
	if active[0].Name != "high" || active[1].Name != "low" {
		t.Fatalf("wrong priority order: %s, %s", active[0].Name, active[1].Name)
	}

	byName, err := s.GetPolicyByName(ctx, "t1", "high")
	if err != nil {
		t.Fatal(err)
	}
	if byName.Priority != 10 {
		t.Fatalf("unexpected policy: %+v", byName)
	}

	count, _ := s.CountPolicies(ctx, &policy.ListFilter{TenantID: "t1"})
	if count != 3 {
		t.Fatalf("expected count 3, got %d", count)
	}
}

func TestUnionMemberships(t *testing.T) {
	ctx := context.Background()
	s := New()

	_ = s.CreateUnionMembership(ctx, &union.Membership{
		ID: id.NewUnionMemberID(), TenantID: "t1", UserID: "u1",
		UnionCode: "IGM", ContractType: "CBA-2024", Status: union.StatusActive,
		Rules: map[string]union.Rule{
			union.CategoryCalibration: {Restricted: true, Reason: "collective agreement"},
		},
	})
	_ = s.CreateUnionMembership(ctx, &union.Membership{
		ID: id.NewUnionMemberID(), TenantID: "t1", UserID: "u1",
		UnionCode: "OLD", Status: union.StatusLapsed,
	})

	active, err := s.ListActiveUnionMemberships(ctx, "t1", "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 1 || active[0].UnionCode != "IGM" {
		t.Fatalf("unexpected active memberships: %v", active)
	}
	if !active[0].Rules[union.CategoryCalibration].Restricted {
		t.Fatal("expected calibration rule to survive the round trip")
	}
}

func TestAuditEntries(t *testing.T) {
	ctx := context.Background()
	s := New()

	old := &auditlog.Entry{
		ID: id.NewAuditEventID(), TenantID: "t1", Kind: "CROSS_TENANT_ACCESS_BLOCKED",
		ActorID: "u1", CreatedAt: time.Now().Add(-48 * time.Hour),
	}
	recent := &auditlog.Entry{
		ID: id.NewAuditEventID(), TenantID: "t1", Kind: "POLICY_DENIED",
		ActorID: "u1", CreatedAt: time.Now(),
	}
	_ = s.CreateAuditEntry(ctx, old)
	_ = s.CreateAuditEntry(ctx, recent)

	list, err := s.ListAuditEntries(ctx, &auditlog.QueryFilter{TenantID: "t1", ActorID: "u1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(list))
	}
	// Newest first.
	if list[0].Kind != "POLICY_DENIED" {
		t.Fatalf("wrong order, got %s first", list[0].Kind)
	}

	purged, err := s.PurgeAuditEntries(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if purged != 1 {
		t.Fatalf("expected 1 purged, got %d", purged)
	}

	count, _ := s.CountAuditEntries(ctx, &auditlog.QueryFilter{TenantID: "t1"})
	if count != 1 {
		t.Fatalf("expected 1 remaining, got %d", count)
	}
}

func TestCopyOnReadIsolation(t *testing.T) {
	ctx := context.Background()
	s := New()

	p := &policy.AccessPolicy{
		ID: id.NewPolicyID(), TenantID: "t1", Name: "freeze", Priority: 1,
		Status: policy.StatusActive, Effect: policy.EffectDeny,
		TargetRoles: []string{"MANAGER"},
	}
	_ = s.CreatePolicy(ctx, p)

	got, _ := s.GetPolicy(ctx, p.ID)
	got.TargetRoles[0] = "mutated"
	got.Name = "mutated"

	again, _ := s.GetPolicy(ctx, p.ID)
	if again.Name != "freeze" || again.TargetRoles[0] != "MANAGER" {
		t.Fatal("stored policy was mutated through a returned copy")
	}
}
