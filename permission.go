package palisade

import "strings"

// Permission wildcards. A permission whose resource is "*" and whose action
// is "manage" is super-admin-equivalent and short-circuits all further
// checks; "manage" on a specific resource subsumes every action on it.
const (
	WildcardResource = "*"
	ManageAction     = "manage"
)

// ParsedPermission is the decomposition of a "resource:action[:scope]"
// permission string.
type ParsedPermission struct {
	Resource string
	Action   string
	Scope    ScopeLevel // empty when the permission is unscoped
}

// ParsePermission splits a colon-delimited permission string. Missing parts
// are left empty; parsing never fails.
func ParsePermission(s string) ParsedPermission {
	parts := strings.SplitN(s, ":", 3)
	p := ParsedPermission{Resource: parts[0]}
	if len(parts) > 1 {
		p.Action = parts[1]
	}
	if len(parts) > 2 {
		p.Scope = ScopeLevel(parts[2])
	}
	return p
}

// CheckPermission reports whether any permission in the flat set satisfies
// the required (resource, action, scope) triple.
//
// The scope comparison only applies when both the held permission and the
// requirement specify a scope: the held scope must rank at or above the
// required one in the scope order. A scope missing on either side is treated
// as satisfying. Unknown scope strings rank below every level and therefore
// never satisfy a scoped requirement.
func CheckPermission(userPermissions []string, resource, action string, scope ScopeLevel) bool {
	for _, raw := range userPermissions {
		p := ParsePermission(raw)

		if p.Resource == WildcardResource && p.Action == ManageAction {
			return true
		}
		if p.Resource != resource && p.Resource != WildcardResource {
			continue
		}
		if p.Action != action && p.Action != ManageAction {
			continue
		}
		if scope != "" && p.Scope != "" && p.Scope.rank() < scope.rank() {
			continue
		}
		return true
	}
	return false
}
