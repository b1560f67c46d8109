package palisade

import "testing"

func TestScopeOrdering(t *testing.T) {
	ordered := []ScopeLevel{ScopeOwn, ScopeTeam, ScopeDepartment, ScopeBusinessUnit, ScopeAll}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].rank() >= ordered[i].rank() {
			t.Fatalf("%s should rank below %s", ordered[i-1], ordered[i])
		}
	}
}

func TestScopeCovers(t *testing.T) {
	tests := []struct {
		held     ScopeLevel
		required ScopeLevel
		want     bool
	}{
		{ScopeAll, ScopeOwn, true},
		{ScopeAll, ScopeBusinessUnit, true},
		{ScopeDepartment, ScopeTeam, true},
		{ScopeDepartment, ScopeDepartment, true},
		{ScopeTeam, ScopeDepartment, false},
		{ScopeOwn, ScopeTeam, false},
		{ScopeLevel("region"), ScopeOwn, false},
	}
	for _, tt := range tests {
		if got := tt.held.Covers(tt.required); got != tt.want {
			t.Errorf("Covers(%s, %s) = %v, want %v", tt.held, tt.required, got, tt.want)
		}
	}
}

func TestScopeValid(t *testing.T) {
	for _, s := range scopeOrder {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if ScopeLevel("region").Valid() {
		t.Error("unknown scope should be invalid")
	}
	if ScopeLevel("").Valid() {
		t.Error("empty scope should be invalid")
	}
}

func TestUnknownScopeRanksBelowEverything(t *testing.T) {
	unknown := ScopeLevel("region")
	if unknown.rank() != -1 {
		t.Fatalf("unknown scope rank = %d, want -1", unknown.rank())
	}
	for _, s := range scopeOrder {
		if unknown.rank() >= s.rank() {
			t.Errorf("unknown scope should rank below %s", s)
		}
	}
}

func TestParseScope(t *testing.T) {
	got, ok := ParseScope("businessUnit")
	if !ok {
		t.Fatal("expected businessUnit to parse")
	}
	if got != ScopeBusinessUnit {
		t.Fatalf("got %s", got)
	}
	if _, ok := ParseScope("region"); ok {
		t.Fatal("expected unknown scope to be rejected")
	}
}
