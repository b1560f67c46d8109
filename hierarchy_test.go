package palisade

import (
	"context"
	"testing"

	"github.com/elevatehq/palisade/id"
	"github.com/elevatehq/palisade/org"
	"github.com/elevatehq/palisade/store/memory"
)

func TestDescendants(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	root := id.NewOrgUnitID()
	child1 := id.NewOrgUnitID()
	child2 := id.NewOrgUnitID()
	grandchild := id.NewOrgUnitID()

	_ = s.CreateOrgUnit(ctx, &org.OrgUnit{ID: root, TenantID: "t1", Kind: org.UnitDepartment, Name: "Eng", IsActive: true})
	_ = s.CreateOrgUnit(ctx, &org.OrgUnit{ID: child1, TenantID: "t1", Kind: org.UnitDepartment, Name: "Platform", ParentID: &root, IsActive: true})
	_ = s.CreateOrgUnit(ctx, &org.OrgUnit{ID: child2, TenantID: "t1", Kind: org.UnitDepartment, Name: "Product", ParentID: &root, IsActive: true})
	_ = s.CreateOrgUnit(ctx, &org.OrgUnit{ID: grandchild, TenantID: "t1", Kind: org.UnitDepartment, Name: "Infra", ParentID: &child1, IsActive: true})

	h := NewHierarchyExpander(s, nil, 0)
	got, err := h.Descendants(ctx, "t1", root, org.UnitDepartment)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 descendants, got %v", got)
	}
	for _, want := range []string{child1.String(), child2.String(), grandchild.String()} {
		if !containsString(got, want) {
			t.Errorf("missing descendant %s", want)
		}
	}
	// The root itself is excluded.
	if containsString(got, root.String()) {
		t.Error("root must not appear in its own descendants")
	}
}

func TestDescendantsExcludesOtherKindsAndTenants(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	root := id.NewOrgUnitID()
	dept := id.NewOrgUnitID()
	bu := id.NewOrgUnitID()
	foreign := id.NewOrgUnitID()

	_ = s.CreateOrgUnit(ctx, &org.OrgUnit{ID: root, TenantID: "t1", Kind: org.UnitDepartment, Name: "Eng", IsActive: true})
	_ = s.CreateOrgUnit(ctx, &org.OrgUnit{ID: dept, TenantID: "t1", Kind: org.UnitDepartment, Name: "Platform", ParentID: &root, IsActive: true})
	_ = s.CreateOrgUnit(ctx, &org.OrgUnit{ID: bu, TenantID: "t1", Kind: org.UnitBusinessUnit, Name: "EMEA", ParentID: &root, IsActive: true})
	_ = s.CreateOrgUnit(ctx, &org.OrgUnit{ID: foreign, TenantID: "t2", Kind: org.UnitDepartment, Name: "Other", ParentID: &root, IsActive: true})

	h := NewHierarchyExpander(s, nil, 0)
	got, err := h.Descendants(ctx, "t1", root, org.UnitDepartment)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != dept.String() {
		t.Fatalf("expected only the same-tenant department child, got %v", got)
	}
}

// A corrupted parent-pointer cycle must terminate instead of looping.
func TestDescendantsCycleGuard(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	a := id.NewOrgUnitID()
	b := id.NewOrgUnitID()

	_ = s.CreateOrgUnit(ctx, &org.OrgUnit{ID: a, TenantID: "t1", Kind: org.UnitDepartment, Name: "A", ParentID: &b, IsActive: true})
	_ = s.CreateOrgUnit(ctx, &org.OrgUnit{ID: b, TenantID: "t1", Kind: org.UnitDepartment, Name: "B", ParentID: &a, IsActive: true})

	h := NewHierarchyExpander(s, nil, 0)
	got, err := h.Descendants(ctx, "t1", a, org.UnitDepartment)
	if err != nil {
		t.Fatal(err)
	}
	// b is a's child; a is b's child but already visited.
	if len(got) != 1 || got[0] != b.String() {
		t.Fatalf("expected only b, got %v", got)
	}
}

func TestDescendantsDepthLimit(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	root := id.NewOrgUnitID()
	level1 := id.NewOrgUnitID()
	level2 := id.NewOrgUnitID()

	_ = s.CreateOrgUnit(ctx, &org.OrgUnit{ID: root, TenantID: "t1", Kind: org.UnitDepartment, Name: "Root", IsActive: true})
	_ = s.CreateOrgUnit(ctx, &org.OrgUnit{ID: level1, TenantID: "t1", Kind: org.UnitDepartment, Name: "L1", ParentID: &root, IsActive: true})
	_ = s.CreateOrgUnit(ctx, &org.OrgUnit{ID: level2, TenantID: "t1", Kind: org.UnitDepartment, Name: "L2", ParentID: &level1, IsActive: true})

	h := NewHierarchyExpander(s, nil, 1)
	got, err := h.Descendants(ctx, "t1", root, org.UnitDepartment)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != level1.String() {
		t.Fatalf("depth-limited expansion returned %v", got)
	}
}
