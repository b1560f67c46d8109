package palisade

import (
	"context"
	"testing"
	"time"

	"github.com/elevatehq/palisade/id"
	"github.com/elevatehq/palisade/policy"
	"github.com/elevatehq/palisade/store/memory"
	"github.com/elevatehq/palisade/union"
)

func newTestEvaluator(t *testing.T) (PolicyEvaluator, *memory.Store) {
	t.Helper()
	s := memory.New()
	return NewPolicyEvaluator(s, nil, nil), s
}

func createPolicy(t *testing.T, s *memory.Store, p *policy.AccessPolicy) {
	t.Helper()
	if p.ID.IsNil() {
		p.ID = id.NewPolicyID()
	}
	if p.Status == "" {
		p.Status = policy.StatusActive
	}
	if err := s.CreatePolicy(context.Background(), p); err != nil {
		t.Fatal(err)
	}
}

// The higher-priority policy wins regardless of insertion order.
func TestPolicyPriorityOrdering(t *testing.T) {
	ctx := context.Background()
	manager := &Principal{ID: "u1", TenantID: "t1", Roles: []string{"Manager"}}

	run := func(insertLowFirst bool) *PolicyResult {
		ev, s := newTestEvaluator(t)
		low := &policy.AccessPolicy{
			TenantID: "t1", Name: "allow-all", Priority: 5,
			TargetRoles: []string{"Manager"}, Effect: policy.EffectAllow,
		}
		high := &policy.AccessPolicy{
			TenantID: "t1", Name: "no-delete", Priority: 10,
			TargetRoles: []string{"Manager"},
			Actions:     policy.ActionFilter{Actions: []string{"delete"}},
			Effect:      policy.EffectDeny,
		}
		if insertLowFirst {
			createPolicy(t, s, low)
			createPolicy(t, s, high)
		} else {
			createPolicy(t, s, high)
			createPolicy(t, s, low)
		}
		result, err := ev.EvaluatePolicy(ctx, manager, "delete", "goal")
		if err != nil {
			t.Fatal(err)
		}
		return result
	}

	for _, lowFirst := range []bool{true, false} {
		result := run(lowFirst)
		if result.Allowed {
			t.Fatalf("insertLowFirst=%v: expected the priority-10 deny to win", lowFirst)
		}
		if result.Reason != "Denied by policy: no-delete" {
			t.Fatalf("unexpected reason: %q", result.Reason)
		}
	}
}

func TestPolicyDefaultAllow(t *testing.T) {
	ctx := context.Background()
	ev, _ := newTestEvaluator(t)

	result, err := ev.EvaluatePolicy(ctx, &Principal{ID: "u1", TenantID: "t1"}, "read", "goal")
	if err != nil {
		t.Fatal(err)
	}
	if !result.Allowed {
		t.Fatal("no matching policy must default to allow")
	}
}

func TestPolicyTargetFilters(t *testing.T) {
	ctx := context.Background()
	ev, s := newTestEvaluator(t)

	createPolicy(t, s, &policy.AccessPolicy{
		TenantID: "t1", Name: "dept-freeze", Priority: 10,
		TargetDepartments: []string{"d-sales"},
		TargetLevels:      []int{3, 4},
		Effect:            policy.EffectDeny,
	})

	// Wrong department: skipped, default allow.
	result, err := ev.EvaluatePolicy(ctx, &Principal{
		ID: "u1", TenantID: "t1", DepartmentID: "d-eng", Level: 3,
	}, "update", "goal")
	if err != nil {
		t.Fatal(err)
	}
	if !result.Allowed {
		t.Fatal("policy should not match another department")
	}

	// Wrong level: skipped.
	result, _ = ev.EvaluatePolicy(ctx, &Principal{
		ID: "u1", TenantID: "t1", DepartmentID: "d-sales", Level: 7,
	}, "update", "goal")
	if !result.Allowed {
		t.Fatal("policy should not match another level")
	}

	// Both match: denied.
	result, _ = ev.EvaluatePolicy(ctx, &Principal{
		ID: "u1", TenantID: "t1", DepartmentID: "d-sales", Level: 4,
	}, "update", "goal")
	if result.Allowed {
		t.Fatal("matching department and level should deny")
	}
}

// Role targets match through the alias resolver, so a display name in the
// principal matches a machine code in the policy.
func TestPolicyRoleAliasTarget(t *testing.T) {
	ctx := context.Background()
	ev, s := newTestEvaluator(t)

	createPolicy(t, s, &policy.AccessPolicy{
		TenantID: "t1", Name: "manager-freeze", Priority: 1,
		TargetRoles: []string{"MANAGER"},
		Effect:      policy.EffectDeny,
	})

	result, err := ev.EvaluatePolicy(ctx, &Principal{
		ID: "u1", TenantID: "t1", Roles: []string{"Manager"},
	}, "update", "goal")
	if err != nil {
		t.Fatal(err)
	}
	if result.Allowed {
		t.Fatal("display-name role should match code-form policy target")
	}
}

func TestPolicyEffectiveWindow(t *testing.T) {
	ctx := context.Background()
	ev, s := newTestEvaluator(t)

	past := time.Now().Add(-time.Hour)
	earlier := time.Now().Add(-2 * time.Hour)
	future := time.Now().Add(time.Hour)

	// Expired window.
	createPolicy(t, s, &policy.AccessPolicy{
		TenantID: "t1", Name: "old-freeze", Priority: 10,
		EffectiveFrom: &earlier, EffectiveTo: &past,
		Effect: policy.EffectDeny,
	})
	// Not yet effective.
	createPolicy(t, s, &policy.AccessPolicy{
		TenantID: "t1", Name: "future-freeze", Priority: 9,
		EffectiveFrom: &future,
		Effect:        policy.EffectDeny,
	})

	result, err := ev.EvaluatePolicy(ctx, &Principal{ID: "u1", TenantID: "t1"}, "update", "goal")
	if err != nil {
		t.Fatal(err)
	}
	if !result.Allowed {
		t.Fatal("out-of-window policies must be skipped")
	}

	// In-window policy applies.
	createPolicy(t, s, &policy.AccessPolicy{
		TenantID: "t1", Name: "live-freeze", Priority: 8,
		EffectiveFrom: &past, EffectiveTo: &future,
		Effect: policy.EffectDeny,
	})
	result, _ = ev.EvaluatePolicy(ctx, &Principal{ID: "u1", TenantID: "t1"}, "update", "goal")
	if result.Allowed {
		t.Fatal("in-window policy must apply")
	}
}

func TestPolicyActionGlob(t *testing.T) {
	ctx := context.Background()
	ev, s := newTestEvaluator(t)

	createPolicy(t, s, &policy.AccessPolicy{
		TenantID: "t1", Name: "review-freeze", Priority: 10,
		Actions: policy.ActionFilter{Actions: []string{"review*"}, Resources: []string{"performance"}},
		Effect:  policy.EffectDeny,
	})

	user := &Principal{ID: "u1", TenantID: "t1"}

	result, _ := ev.EvaluatePolicy(ctx, user, "review:submit", "performance")
	if result.Allowed {
		t.Fatal("glob action filter should match review:submit")
	}
	result, _ = ev.EvaluatePolicy(ctx, user, "goal:update", "performance")
	if !result.Allowed {
		t.Fatal("non-matching action should fall through")
	}
	result, _ = ev.EvaluatePolicy(ctx, user, "review:submit", "goal")
	if !result.Allowed {
		t.Fatal("non-matching resource should fall through")
	}
}

func TestPolicyUnionTarget(t *testing.T) {
	ctx := context.Background()
	ev, s := newTestEvaluator(t)

	createPolicy(t, s, &policy.AccessPolicy{
		TenantID: "t1", Name: "cba-freeze", Priority: 10,
		UnionCode: "IGM",
		Effect:    policy.EffectDeny,
	})

	user := &Principal{ID: "u1", TenantID: "t1"}

	// No union membership: policy skipped.
	result, err := ev.EvaluatePolicy(ctx, user, "update", "goal")
	if err != nil {
		t.Fatal(err)
	}
	if !result.Allowed {
		t.Fatal("union-targeted policy should skip non-members")
	}

	_ = s.CreateUnionMembership(ctx, &union.Membership{
		ID: id.NewUnionMemberID(), TenantID: "t1", UserID: "u1",
		UnionCode: "IGM", Status: union.StatusActive,
	})
	result, _ = ev.EvaluatePolicy(ctx, user, "update", "goal")
	if result.Allowed {
		t.Fatal("union-targeted policy should match members")
	}
}

func TestCheckUnionRestrictions(t *testing.T) {
	ctx := context.Background()
	ev, s := newTestEvaluator(t)

	_ = s.CreateUnionMembership(ctx, &union.Membership{
		ID: id.NewUnionMemberID(), TenantID: "t1", UserID: "u1",
		UnionCode: "IGM", Status: union.StatusActive,
		Rules: map[string]union.Rule{
			union.CategoryCalibration: {Restricted: true, Reason: "collective agreement 12.4"},
			union.CategoryFeedback:    {Restricted: false},
		},
	})

	user := &Principal{ID: "u1", TenantID: "t1"}

	r, err := ev.CheckUnionRestrictions(ctx, user, "calibration:run")
	if err != nil {
		t.Fatal(err)
	}
	if !r.Restricted {
		t.Fatal("calibration action should be restricted")
	}
	if r.UnionCode != "IGM" || r.Category != union.CategoryCalibration {
		t.Fatalf("unexpected restriction: %+v", r)
	}

	// Unrestricted category.
	r, _ = ev.CheckUnionRestrictions(ctx, user, "feedback:give")
	if r.Restricted {
		t.Fatal("feedback is not restricted by this contract")
	}

	// Actions outside the restricted families pass.
	r, _ = ev.CheckUnionRestrictions(ctx, user, "goal:update")
	if r.Restricted {
		t.Fatal("non-categorized actions are never restricted")
	}

	// Users without memberships pass.
	r, _ = ev.CheckUnionRestrictions(ctx, &Principal{ID: "u2", TenantID: "t1"}, "calibration:run")
	if r.Restricted {
		t.Fatal("non-member should not be restricted")
	}
}

// The engine wrapper emits an audit event for every policy deny.
func TestEnginePolicyDenyAudit(t *testing.T) {
	ctx := context.Background()
	eng, s, sink := newTestEngine(t)

	createPolicy(t, s, &policy.AccessPolicy{
		TenantID: "t1", Name: "freeze", Priority: 10,
		Effect: policy.EffectDeny,
	})

	result, err := eng.EvaluatePolicy(ctx, &Principal{ID: "u1", TenantID: "t1"}, "update", "goal")
	if err != nil {
		t.Fatal(err)
	}
	if result.Allowed {
		t.Fatal("expected deny")
	}

	denied := sink.byKind(EventPolicyDenied)
	if len(denied) != 1 {
		t.Fatalf("expected 1 policy-denied event, got %d", len(denied))
	}
	if denied[0].Detail["policy"] != "freeze" {
		t.Fatalf("event missing policy name: %+v", denied[0].Detail)
	}
}

// Disabling policy evaluation bypasses matching policies entirely, so an
// otherwise-winning deny never fires and no audit event is emitted.
func TestEnginePoliciesDisabled(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	sink := &captureSink{}

	createPolicy(t, s, &policy.AccessPolicy{
		TenantID: "t1", Name: "block-delete", Priority: 10,
		Effect: policy.EffectDeny,
	})

	disabled := false
	eng, err := NewEngine(
		WithStore(s),
		WithAuditSink(sink),
		WithConfig(Config{EnablePolicies: &disabled}),
	)
	if err != nil {
		t.Fatal(err)
	}

	result, err := eng.EvaluatePolicy(ctx, &Principal{ID: "u1", TenantID: "t1"}, "delete", "goal")
	if err != nil {
		t.Fatal(err)
	}
	if !result.Allowed {
		t.Fatalf("expected allow with policies disabled, got reason %q", result.Reason)
	}
	if got := sink.byKind(EventPolicyDenied); len(got) != 0 {
		t.Fatalf("expected no policy-denied events, got %d", len(got))
	}

	enabled := true
	eng, err = NewEngine(
		WithStore(s),
		WithAuditSink(sink),
		WithConfig(Config{EnablePolicies: &enabled}),
	)
	if err != nil {
		t.Fatal(err)
	}
	result, err = eng.EvaluatePolicy(ctx, &Principal{ID: "u1", TenantID: "t1"}, "delete", "goal")
	if err != nil {
		t.Fatal(err)
	}
	if result.Allowed {
		t.Fatal("expected the deny policy to apply when evaluation is enabled")
	}
}
