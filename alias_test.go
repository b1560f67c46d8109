package palisade

import "testing"

func TestAliasSymmetry(t *testing.T) {
	r := NewAliasResolver(DefaultAliases())

	// Every alias pair within a class must match in both directions.
	for _, set := range DefaultAliases() {
		for _, a := range set {
			for _, b := range set {
				if !r.HasAnyRole([]string{a}, b) {
					t.Errorf("HasAnyRole({%q}, %q) = false, want true", a, b)
				}
				if !r.HasAnyRole([]string{b}, a) {
					t.Errorf("HasAnyRole({%q}, %q) = false, want true", b, a)
				}
			}
		}
	}
}

func TestExpandNeverEmpty(t *testing.T) {
	r := NewAliasResolver(DefaultAliases())

	got := r.Expand("MANAGER")
	if len(got) == 0 {
		t.Fatal("expected non-empty class for known role")
	}

	got = r.Expand("Machinist")
	if len(got) != 1 || got[0] != "Machinist" {
		t.Fatalf("unrecognized role should expand to itself, got %v", got)
	}
}

func TestCanonicalize(t *testing.T) {
	r := NewAliasResolver(DefaultAliases())

	if got := r.Canonicalize("Dept Head"); got != "DEPARTMENT_HEAD" {
		t.Fatalf("Canonicalize(Dept Head) = %q", got)
	}
	if got := r.Canonicalize("DEPARTMENT_HEAD"); got != "DEPARTMENT_HEAD" {
		t.Fatalf("canonical identifier should map to itself, got %q", got)
	}
	if got := r.Canonicalize("Machinist"); got != "Machinist" {
		t.Fatalf("unrecognized role should canonicalize to itself, got %q", got)
	}
}

func TestHasAnyRole(t *testing.T) {
	r := NewAliasResolver(DefaultAliases())

	tests := []struct {
		name     string
		held     []string
		required []string
		want     bool
	}{
		{"display name vs code", []string{"Manager"}, []string{"MANAGER"}, true},
		{"code vs display name", []string{"HR_ADMIN"}, []string{"HR Admin"}, true},
		{"disjoint", []string{"Employee"}, []string{"MANAGER"}, false},
		{"one of several", []string{"Employee", "Team Lead"}, []string{"MANAGER", "TEAM_LEAD"}, true},
		{"empty held", nil, []string{"MANAGER"}, false},
		{"empty required", []string{"Manager"}, nil, false},
		{"unrecognized exact match", []string{"Machinist"}, []string{"Machinist"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.HasAnyRole(tt.held, tt.required...); got != tt.want {
				t.Errorf("HasAnyRole(%v, %v) = %v, want %v", tt.held, tt.required, got, tt.want)
			}
		})
	}
}

func TestIsSuperAdmin(t *testing.T) {
	r := NewAliasResolver(DefaultAliases())

	for _, alias := range []string{"SUPER_ADMIN", "Super Admin", "SuperAdmin", "super_admin"} {
		if !r.IsSuperAdmin([]string{alias}) {
			t.Errorf("IsSuperAdmin({%q}) = false", alias)
		}
	}
	if r.IsSuperAdmin([]string{"Manager", "HR Admin"}) {
		t.Error("non-super-admin roles should not pass")
	}
}
