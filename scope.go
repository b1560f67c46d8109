package palisade

// ScopeLevel is the breadth of a grant. Levels form a total order:
// own < team < department < businessUnit < all.
type ScopeLevel string

const (
	// ScopeOwn covers resources the principal owns (or inherits via
	// delegation).
	ScopeOwn ScopeLevel = "own"

	// ScopeTeam covers resources belonging to the principal's teams and
	// reports.
	ScopeTeam ScopeLevel = "team"

	// ScopeDepartment covers resources placed in the principal's department
	// (or its subtree for a department head).
	ScopeDepartment ScopeLevel = "department"

	// ScopeBusinessUnit covers resources placed in the principal's business
	// unit (or its subtree for a BU head).
	ScopeBusinessUnit ScopeLevel = "businessUnit"

	// ScopeAll covers every resource within the tenant.
	ScopeAll ScopeLevel = "all"
)

// scopeOrder is the single source of truth for scope comparisons. Scope
// strings are never compared lexicographically.
var scopeOrder = []ScopeLevel{ScopeOwn, ScopeTeam, ScopeDepartment, ScopeBusinessUnit, ScopeAll}

// rank returns the position of s in the scope order, or -1 for an
// unrecognized scope. Unknown scopes always fail comparisons.
func (s ScopeLevel) rank() int {
	for i, level := range scopeOrder {
		if s == level {
			return i
		}
	}
	return -1
}

// Valid reports whether s is one of the five recognized scope levels.
func (s ScopeLevel) Valid() bool { return s.rank() >= 0 }

// Covers reports whether a grant at level s satisfies a requirement at level
// required. Both sides must be recognized levels.
func (s ScopeLevel) Covers(required ScopeLevel) bool {
	sr, rr := s.rank(), required.rank()
	if sr < 0 || rr < 0 {
		return false
	}
	return sr >= rr
}

// ParseScope returns the ScopeLevel for a scope string, and whether the
// string names a recognized level.
func ParseScope(s string) (ScopeLevel, bool) {
	level := ScopeLevel(s)
	return level, level.Valid()
}
