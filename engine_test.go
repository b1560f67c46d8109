package palisade

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/elevatehq/palisade/delegation"
	"github.com/elevatehq/palisade/id"
	"github.com/elevatehq/palisade/org"
	"github.com/elevatehq/palisade/store/memory"
)

// captureSink records emitted audit events for assertions.
type captureSink struct {
	mu     sync.Mutex
	events []*AuditEvent
}

func (c *captureSink) Emit(_ context.Context, ev *AuditEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
}

func (c *captureSink) byKind(kind string) []*AuditEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*AuditEvent
	for _, ev := range c.events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

func newTestEngine(t *testing.T) (*Engine, *memory.Store, *captureSink) {
	t.Helper()
	s := memory.New()
	sink := &captureSink{}
	eng, err := NewEngine(WithStore(s), WithAuditSink(sink))
	if err != nil {
		t.Fatal(err)
	}
	return eng, s, sink
}

func TestNewEngine_RequiresStore(t *testing.T) {
	_, err := NewEngine()
	if err == nil {
		t.Fatal("expected error when store is nil")
	}
}

// Cross-tenant access is refused for every scope and role, even for the
// resource's own owner, and each refusal lands on the audit sink.
func TestTenantIsolation(t *testing.T) {
	ctx := context.Background()
	eng, _, sink := newTestEngine(t)

	user := &Principal{ID: "u1", TenantID: "t1", Roles: []string{"Super Admin"}}
	resource := &ResourceContext{TenantID: "t2", OwnerID: "u1", Type: "goal", ID: "g1"}

	for _, scope := range []ScopeLevel{ScopeOwn, ScopeTeam, ScopeDepartment, ScopeBusinessUnit, ScopeAll} {
		allowed, err := eng.Decide(ctx, user, resource, scope)
		if err != nil {
			t.Fatal(err)
		}
		if allowed {
			t.Fatalf("cross-tenant access allowed at scope %s", scope)
		}
	}

	blocked := sink.byKind(EventCrossTenantBlocked)
	if len(blocked) != 5 {
		t.Fatalf("expected 5 blocked events, got %d", len(blocked))
	}
	ev := blocked[0]
	if ev.ActorID != "u1" || ev.TenantID != "t1" {
		t.Fatalf("unexpected event actor: %+v", ev)
	}
	if ev.Detail["attempted_tenant"] != "t2" {
		t.Fatalf("event missing attempted tenant: %+v", ev.Detail)
	}
}

func TestSuperAdminBypass(t *testing.T) {
	ctx := context.Background()
	eng, _, _ := newTestEngine(t)

	user := &Principal{ID: "u1", TenantID: "t1", Roles: []string{"SuperAdmin"}}
	resource := &ResourceContext{TenantID: "t1", OwnerID: "someone-else"}

	for _, scope := range []ScopeLevel{ScopeOwn, ScopeTeam, ScopeDepartment, ScopeBusinessUnit, ScopeAll} {
		allowed, err := eng.Decide(ctx, user, resource, scope)
		if err != nil {
			t.Fatal(err)
		}
		if !allowed {
			t.Fatalf("super admin denied at scope %s", scope)
		}
	}
}

func TestDecideOwn(t *testing.T) {
	ctx := context.Background()
	eng, s, _ := newTestEngine(t)

	user := &Principal{ID: "u1", TenantID: "t1", Roles: []string{"Employee"}}

	allowed, err := eng.Decide(ctx, user, &ResourceContext{TenantID: "t1", OwnerID: "u1"}, ScopeOwn)
	if err != nil {
		t.Fatal(err)
	}
	if !allowed {
		t.Fatal("owner denied own resource")
	}

	allowed, _ = eng.Decide(ctx, user, &ResourceContext{TenantID: "t1", OwnerID: "u2"}, ScopeOwn)
	if allowed {
		t.Fatal("non-owner allowed at own scope")
	}

	// An active delegation makes the delegator's resources the delegate's own.
	_ = s.CreateDelegation(ctx, &delegation.Delegation{
		ID: id.NewDelegationID(), TenantID: "t1",
		DelegatorID: "u2", DelegateID: "u1",
		Status: delegation.StatusActive, StartsAt: time.Now().Add(-time.Hour),
	})
	eng.ClearMembershipCache(ctx, "u1", "t1")

	allowed, err = eng.Decide(ctx, user, &ResourceContext{TenantID: "t1", OwnerID: "u2"}, ScopeOwn)
	if err != nil {
		t.Fatal(err)
	}
	if !allowed {
		t.Fatal("delegate denied delegator's resource")
	}

	// Missing owner never matches.
	allowed, _ = eng.Decide(ctx, user, &ResourceContext{TenantID: "t1"}, ScopeOwn)
	if allowed {
		t.Fatal("ownerless resource allowed at own scope")
	}
}

func TestDecideTeam(t *testing.T) {
	ctx := context.Background()
	eng, s, _ := newTestEngine(t)

	manager := &Principal{ID: "mgr", TenantID: "t1", Roles: []string{"Manager"}}
	past := time.Now().Add(-time.Hour)

	// u2 reports to mgr.
	_ = s.AddReportLink(ctx, &org.ReportLink{
		ID: id.NewReportLinkID(), TenantID: "t1",
		ManagerID: "mgr", ReportID: "u2", Kind: org.ReportDirect, StartedAt: past,
	})

	allowed, err := eng.Decide(ctx, manager, &ResourceContext{TenantID: "t1", OwnerID: "u2"}, ScopeTeam)
	if err != nil {
		t.Fatal(err)
	}
	if !allowed {
		t.Fatal("manager denied report's resource at team scope")
	}

	// A resource placed in one of the principal's teams.
	teamID := id.NewTeamID()
	_ = s.AddTeamMember(ctx, &org.TeamMembership{
		ID: id.NewTeamMembershipID(), TenantID: "t1",
		TeamID: teamID, UserID: "member", StartedAt: past,
	})
	member := &Principal{ID: "member", TenantID: "t1", Roles: []string{"Employee"}}

	allowed, err = eng.Decide(ctx, member, &ResourceContext{TenantID: "t1", TeamID: teamID.String()}, ScopeTeam)
	if err != nil {
		t.Fatal(err)
	}
	if !allowed {
		t.Fatal("team member denied team resource")
	}

	// Owner in a shared team, resource carries no team ID: the secondary
	// member expansion must find it.
	_ = s.AddTeamMember(ctx, &org.TeamMembership{
		ID: id.NewTeamMembershipID(), TenantID: "t1",
		TeamID: teamID, UserID: "teammate", StartedAt: past,
	})
	allowed, err = eng.Decide(ctx, member, &ResourceContext{TenantID: "t1", OwnerID: "teammate"}, ScopeTeam)
	if err != nil {
		t.Fatal(err)
	}
	if !allowed {
		t.Fatal("teammate's resource denied despite shared team")
	}

	// A stranger in no shared team is denied.
	allowed, _ = eng.Decide(ctx, member, &ResourceContext{TenantID: "t1", OwnerID: "stranger"}, ScopeTeam)
	if allowed {
		t.Fatal("stranger's resource allowed at team scope")
	}
}

func TestDecideDepartment(t *testing.T) {
	ctx := context.Background()
	eng, s, _ := newTestEngine(t)

	deptID := id.NewOrgUnitID()
	childID := id.NewOrgUnitID()
	otherID := id.NewOrgUnitID()

	_ = s.CreateOrgUnit(ctx, &org.OrgUnit{
		ID: deptID, TenantID: "t1", Kind: org.UnitDepartment, Name: "Engineering",
		HeadUserID: "head", IsActive: true,
	})
	_ = s.CreateOrgUnit(ctx, &org.OrgUnit{
		ID: childID, TenantID: "t1", Kind: org.UnitDepartment, Name: "Platform",
		ParentID: &deptID, IsActive: true,
	})
	_ = s.CreateOrgUnit(ctx, &org.OrgUnit{
		ID: otherID, TenantID: "t1", Kind: org.UnitDepartment, Name: "Sales",
		IsActive: true,
	})

	// Same department: allowed.
	member := &Principal{ID: "u1", TenantID: "t1", Roles: []string{"Employee"}, DepartmentID: deptID.String()}
	allowed, err := eng.Decide(ctx, member, &ResourceContext{TenantID: "t1", DepartmentID: deptID.String()}, ScopeDepartment)
	if err != nil {
		t.Fatal(err)
	}
	if !allowed {
		t.Fatal("same-department access denied")
	}

	// Child department: denied for a plain member.
	allowed, _ = eng.Decide(ctx, member, &ResourceContext{TenantID: "t1", DepartmentID: childID.String()}, ScopeDepartment)
	if allowed {
		t.Fatal("plain member allowed into child department")
	}

	// The recorded head sees the whole subtree.
	head := &Principal{ID: "head", TenantID: "t1", Roles: []string{"Department Head"}, DepartmentID: deptID.String()}
	allowed, err = eng.Decide(ctx, head, &ResourceContext{TenantID: "t1", DepartmentID: childID.String()}, ScopeDepartment)
	if err != nil {
		t.Fatal(err)
	}
	if !allowed {
		t.Fatal("department head denied descendant department")
	}

	// But not departments outside the subtree.
	allowed, _ = eng.Decide(ctx, head, &ResourceContext{TenantID: "t1", DepartmentID: otherID.String()}, ScopeDepartment)
	if allowed {
		t.Fatal("department head allowed outside subtree")
	}

	// A principal with no department fails the unit check without erroring.
	nodept := &Principal{ID: "u9", TenantID: "t1", Roles: []string{"Employee"}}
	allowed, err = eng.Decide(ctx, nodept, &ResourceContext{TenantID: "t1", DepartmentID: deptID.String()}, ScopeDepartment)
	if err != nil {
		t.Fatal(err)
	}
	if allowed {
		t.Fatal("department-less principal allowed at department scope")
	}
}

func TestDecideBusinessUnit(t *testing.T) {
	ctx := context.Background()
	eng, s, _ := newTestEngine(t)

	buID := id.NewOrgUnitID()
	subID := id.NewOrgUnitID()

	_ = s.CreateOrgUnit(ctx, &org.OrgUnit{
		ID: buID, TenantID: "t1", Kind: org.UnitBusinessUnit, Name: "EMEA",
		HeadUserID: "bu-head", IsActive: true,
	})
	_ = s.CreateOrgUnit(ctx, &org.OrgUnit{
		ID: subID, TenantID: "t1", Kind: org.UnitBusinessUnit, Name: "DACH",
		ParentID: &buID, IsActive: true,
	})

	head := &Principal{ID: "bu-head", TenantID: "t1", Roles: []string{"BU Head"}, BusinessUnitID: buID.String()}
	allowed, err := eng.Decide(ctx, head, &ResourceContext{TenantID: "t1", BusinessUnitID: subID.String()}, ScopeBusinessUnit)
	if err != nil {
		t.Fatal(err)
	}
	if !allowed {
		t.Fatal("BU head denied descendant business unit")
	}

	member := &Principal{ID: "u1", TenantID: "t1", Roles: []string{"Employee"}, BusinessUnitID: buID.String()}
	allowed, _ = eng.Decide(ctx, member, &ResourceContext{TenantID: "t1", BusinessUnitID: buID.String()}, ScopeBusinessUnit)
	if !allowed {
		t.Fatal("same-BU access denied")
	}
}

func TestDecideAllScopeAndUnknownScope(t *testing.T) {
	ctx := context.Background()
	eng, _, _ := newTestEngine(t)

	user := &Principal{ID: "u1", TenantID: "t1", Roles: []string{"Employee"}}
	resource := &ResourceContext{TenantID: "t1", OwnerID: "someone-else"}

	allowed, err := eng.Decide(ctx, user, resource, ScopeAll)
	if err != nil {
		t.Fatal(err)
	}
	if !allowed {
		t.Fatal("all scope should allow within the tenant")
	}

	allowed, _ = eng.Decide(ctx, user, resource, ScopeLevel("region"))
	if allowed {
		t.Fatal("unrecognized scope must deny")
	}
}

// Granting at a coarser scope implies granting at every finer scope for the
// same principal and resource.
func TestScopeMonotonicity(t *testing.T) {
	ctx := context.Background()
	eng, s, _ := newTestEngine(t)

	past := time.Now().Add(-time.Hour)
	deptID := id.NewOrgUnitID()
	_ = s.CreateOrgUnit(ctx, &org.OrgUnit{
		ID: deptID, TenantID: "t1", Kind: org.UnitDepartment, Name: "Engineering", IsActive: true,
	})
	_ = s.AddReportLink(ctx, &org.ReportLink{
		ID: id.NewReportLinkID(), TenantID: "t1",
		ManagerID: "mgr", ReportID: "u2", Kind: org.ReportDirect, StartedAt: past,
	})

	mgr := &Principal{ID: "mgr", TenantID: "t1", Roles: []string{"Manager"}, DepartmentID: deptID.String()}
	resource := &ResourceContext{TenantID: "t1", OwnerID: "mgr", DepartmentID: deptID.String()}

	scopes := []ScopeLevel{ScopeOwn, ScopeTeam, ScopeDepartment, ScopeBusinessUnit, ScopeAll}
	results := make(map[ScopeLevel]bool, len(scopes))
	for _, sc := range scopes {
		allowed, err := eng.Decide(ctx, mgr, resource, sc)
		if err != nil {
			t.Fatal(err)
		}
		results[sc] = allowed
	}
	for i, coarse := range scopes {
		if !results[coarse] {
			continue
		}
		for _, fine := range scopes[:i] {
			if !results[fine] {
				t.Errorf("allowed at %s but denied at finer scope %s", coarse, fine)
			}
		}
	}
}

func TestDecideNilInputs(t *testing.T) {
	ctx := context.Background()
	eng, _, _ := newTestEngine(t)

	if _, err := eng.Decide(ctx, nil, &ResourceContext{TenantID: "t1"}, ScopeOwn); err != ErrNotAuthenticated {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	allowed, err := eng.Decide(ctx, &Principal{ID: "u1", TenantID: "t1"}, nil, ScopeOwn)
	if err != nil || allowed {
		t.Fatalf("nil resource should deny without error, got (%v, %v)", allowed, err)
	}
}

func TestDecideLocal(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	user := &Principal{ID: "u1", TenantID: "t1", Roles: []string{"Employee"}, DepartmentID: "d1", BusinessUnitID: "b1"}

	if eng.DecideLocal(user, &ResourceContext{TenantID: "t2", OwnerID: "u1"}, ScopeOwn) {
		t.Fatal("cross-tenant allowed by degraded variant")
	}
	if !eng.DecideLocal(user, &ResourceContext{TenantID: "t1", OwnerID: "u1"}, ScopeOwn) {
		t.Fatal("owner denied by degraded variant")
	}
	// The degraded variant under-grants: a report's resource is denied at
	// team scope because no lookups run.
	if eng.DecideLocal(user, &ResourceContext{TenantID: "t1", OwnerID: "u2"}, ScopeTeam) {
		t.Fatal("degraded variant expanded team membership")
	}
	if !eng.DecideLocal(user, &ResourceContext{TenantID: "t1", DepartmentID: "d1"}, ScopeDepartment) {
		t.Fatal("department equality denied by degraded variant")
	}
	if !eng.DecideLocal(user, &ResourceContext{TenantID: "t1", BusinessUnitID: "b1"}, ScopeBusinessUnit) {
		t.Fatal("BU equality denied by degraded variant")
	}
	if !eng.DecideLocal(user, &ResourceContext{TenantID: "t1"}, ScopeAll) {
		t.Fatal("all scope denied by degraded variant")
	}
	su := &Principal{ID: "u1", TenantID: "t1", Roles: []string{"Super Admin"}}
	if !eng.DecideLocal(su, &ResourceContext{TenantID: "t1", OwnerID: "x"}, ScopeTeam) {
		t.Fatal("super admin denied by degraded variant")
	}
}

func TestDecideAll(t *testing.T) {
	ctx := context.Background()
	eng, _, _ := newTestEngine(t)

	user := &Principal{ID: "u1", TenantID: "t1", Roles: []string{"Employee"}}
	resources := []*ResourceContext{
		{TenantID: "t1", OwnerID: "u1"},
		{TenantID: "t1", OwnerID: "u2"},
		{TenantID: "t2", OwnerID: "u1"},
	}

	results, err := eng.DecideAll(ctx, user, resources, ScopeOwn)
	if err != nil {
		t.Fatal(err)
	}
	want := []bool{true, false, false}
	for i := range want {
		if results[i] != want[i] {
			t.Errorf("result[%d] = %v, want %v", i, results[i], want[i])
		}
	}
}
