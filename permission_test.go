package palisade

import "testing"

func TestParsePermission(t *testing.T) {
	tests := []struct {
		in   string
		want ParsedPermission
	}{
		{"hr:read:team", ParsedPermission{Resource: "hr", Action: "read", Scope: ScopeTeam}},
		{"hr:manage", ParsedPermission{Resource: "hr", Action: "manage"}},
		{"hr", ParsedPermission{Resource: "hr"}},
		{"*:manage", ParsedPermission{Resource: "*", Action: "manage"}},
		{"", ParsedPermission{}},
	}
	for _, tt := range tests {
		if got := ParsePermission(tt.in); got != tt.want {
			t.Errorf("ParsePermission(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestCheckPermission(t *testing.T) {
	tests := []struct {
		name     string
		held     []string
		resource string
		action   string
		scope    ScopeLevel
		want     bool
	}{
		{"exact match", []string{"goals:read:own"}, "goals", "read", ScopeOwn, true},
		{"manage subsumes action", []string{"hr:manage:all"}, "hr", "read", ScopeTeam, true},
		{"wildcard resource", []string{"*:read"}, "goals", "read", "", true},
		{"global wildcard short-circuits", []string{"*:manage"}, "anything", "delete", ScopeAll, true},
		{"wrong resource", []string{"goals:read:all"}, "reviews", "read", ScopeOwn, false},
		{"wrong action", []string{"goals:read:all"}, "goals", "delete", ScopeOwn, false},
		{"held scope below required", []string{"goals:read:own"}, "goals", "read", ScopeTeam, false},
		{"held scope above required", []string{"goals:read:businessUnit"}, "goals", "read", ScopeTeam, true},
		{"unscoped held satisfies scoped requirement", []string{"goals:read"}, "goals", "read", ScopeAll, true},
		{"scoped held satisfies unscoped requirement", []string{"goals:read:own"}, "goals", "read", "", true},
		{"unknown held scope fails scoped requirement", []string{"goals:read:region"}, "goals", "read", ScopeOwn, false},
		{"unknown held scope passes unscoped requirement", []string{"goals:read:region"}, "goals", "read", "", true},
		{"or over the set", []string{"reviews:write:own", "goals:read:team"}, "goals", "read", ScopeTeam, true},
		{"empty set", nil, "goals", "read", ScopeOwn, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckPermission(tt.held, tt.resource, tt.action, tt.scope)
			if got != tt.want {
				t.Errorf("CheckPermission(%v, %q, %q, %q) = %v, want %v",
					tt.held, tt.resource, tt.action, tt.scope, got, tt.want)
			}
		})
	}
}

// manage subsumes read even when the held permission carries no scope.
func TestCheckPermissionManageUnscoped(t *testing.T) {
	if !CheckPermission([]string{"hr:manage:all"}, "hr", "read", ScopeTeam) {
		t.Fatal("hr:manage:all should satisfy hr read at team scope")
	}
}
