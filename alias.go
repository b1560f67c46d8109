package palisade

import "strings"

// SuperAdminRole is the canonical identifier for the platform super admin.
// Any alias of this role short-circuits every scope check within a tenant.
const SuperAdminRole = "SUPER_ADMIN"

// AliasSet is one equivalence class of role identifiers naming the same role.
// The first entry is the canonical identifier.
type AliasSet []string

// DefaultAliases is the platform role vocabulary: machine codes and the
// display names the onboarding spreadsheets and the web client use for them.
func DefaultAliases() []AliasSet {
	return []AliasSet{
		{"SUPER_ADMIN", "Super Admin", "SuperAdmin", "super_admin"},
		{"HR_ADMIN", "HR Admin", "HR", "hr_admin"},
		{"MANAGER", "Manager", "manager"},
		{"DEPARTMENT_HEAD", "Department Head", "Dept Head", "department_head"},
		{"BU_HEAD", "Business Unit Head", "BU Head", "bu_head"},
		{"TEAM_LEAD", "Team Lead", "team_lead"},
		{"EMPLOYEE", "Employee", "employee"},
	}
}

// AliasResolver maps any recognized role identifier to its equivalence class.
// It is built once at startup from a declarative alias table and is safe for
// concurrent use.
type AliasResolver struct {
	canonical map[string]string   // any alias -> canonical identifier
	classes   map[string][]string // canonical identifier -> full class
}

// NewAliasResolver builds a resolver from alias sets. Each set's first entry
// is its canonical identifier; every member (including the canonical one)
// resolves to the same class, so symmetry holds by construction.
func NewAliasResolver(sets []AliasSet) *AliasResolver {
	r := &AliasResolver{
		canonical: make(map[string]string),
		classes:   make(map[string][]string),
	}
	for _, set := range sets {
		if len(set) == 0 {
			continue
		}
		canon := set[0]
		class := make([]string, len(set))
		copy(class, set)
		r.classes[canon] = class
		for _, alias := range set {
			r.canonical[alias] = canon
		}
	}
	return r
}

// Canonicalize returns the canonical identifier for a role, or the role
// itself when unrecognized.
func (r *AliasResolver) Canonicalize(role string) string {
	if canon, ok := r.canonical[role]; ok {
		return canon
	}
	return role
}

// Expand returns the full equivalence class for a role identifier, or a
// single-element class containing the role itself when unrecognized. The
// result is never empty.
func (r *AliasResolver) Expand(role string) []string {
	if canon, ok := r.canonical[role]; ok {
		return r.classes[canon]
	}
	return []string{role}
}

// HasAnyRole reports whether the user's role set intersects the alias
// equivalence class of any required role.
func (r *AliasResolver) HasAnyRole(userRoles []string, required ...string) bool {
	if len(userRoles) == 0 || len(required) == 0 {
		return false
	}
	held := make(map[string]struct{}, len(userRoles))
	for _, role := range userRoles {
		held[r.Canonicalize(role)] = struct{}{}
	}
	for _, req := range required {
		if _, ok := held[r.Canonicalize(req)]; ok {
			return true
		}
	}
	return false
}

// IsSuperAdmin reports whether the role set contains any alias of the super
// admin role.
func (r *AliasResolver) IsSuperAdmin(userRoles []string) bool {
	return r.HasAnyRole(userRoles, SuperAdminRole)
}

// DescribeRoles renders a role requirement list for authorization error
// messages.
func DescribeRoles(roles []string) string {
	return "one of roles [" + strings.Join(roles, ", ") + "]"
}
