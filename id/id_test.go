package id_test

import (
	"strings"
	"testing"

	"github.com/elevatehq/palisade/id"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		newFn  func() id.ID
		prefix string
	}{
		{"TeamID", id.NewTeamID, "team_"},
		{"TeamMembershipID", id.NewTeamMembershipID, "tmem_"},
		{"ReportLinkID", id.NewReportLinkID, "rlink_"},
		{"OrgUnitID", id.NewOrgUnitID, "ounit_"},
		{"DelegationID", id.NewDelegationID, "dlg_"},
		{"PolicyID", id.NewPolicyID, "apol_"},
		{"UnionMemberID", id.NewUnionMemberID, "umem_"},
		{"AuditEventID", id.NewAuditEventID, "audevt_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.newFn().String()
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("expected prefix %q, got %q", tt.prefix, got)
			}
		})
	}
}

func TestNew(t *testing.T) {
	i := id.New(id.PrefixTeam)
	if i.IsNil() {
		t.Fatal("expected non-nil ID")
	}
	if i.Prefix() != id.PrefixTeam {
		t.Errorf("expected prefix %q, got %q", id.PrefixTeam, i.Prefix())
	}
}

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		newFn   func() id.ID
		parseFn func(string) (id.ID, error)
	}{
		{"TeamID", id.NewTeamID, id.ParseTeamID},
		{"TeamMembershipID", id.NewTeamMembershipID, id.ParseTeamMembershipID},
		{"ReportLinkID", id.NewReportLinkID, id.ParseReportLinkID},
		{"OrgUnitID", id.NewOrgUnitID, id.ParseOrgUnitID},
		{"DelegationID", id.NewDelegationID, id.ParseDelegationID},
		{"PolicyID", id.NewPolicyID, id.ParsePolicyID},
		{"UnionMemberID", id.NewUnionMemberID, id.ParseUnionMemberID},
		{"AuditEventID", id.NewAuditEventID, id.ParseAuditEventID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := tt.newFn()
			parsed, err := tt.parseFn(original.String())
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if parsed.String() != original.String() {
				t.Errorf("round-trip mismatch: %q != %q", parsed.String(), original.String())
			}
		})
	}
}

func TestCrossTypeRejection(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		parseFn func(string) (id.ID, error)
	}{
		{"ParseTeamID rejects ounit_", id.NewOrgUnitID().String(), id.ParseTeamID},
		{"ParseOrgUnitID rejects dlg_", id.NewDelegationID().String(), id.ParseOrgUnitID},
		{"ParseDelegationID rejects apol_", id.NewPolicyID().String(), id.ParseDelegationID},
		{"ParsePolicyID rejects umem_", id.NewUnionMemberID().String(), id.ParsePolicyID},
		{"ParseUnionMemberID rejects audevt_", id.NewAuditEventID().String(), id.ParseUnionMemberID},
		{"ParseAuditEventID rejects team_", id.NewTeamID().String(), id.ParseAuditEventID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.parseFn(tt.input)
			if err == nil {
				t.Errorf("expected error for cross-type parse of %q, got nil", tt.input)
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	_, err := id.Parse("")
	if err == nil {
		t.Error("expected error for empty string")
	}
}

func TestNilID(t *testing.T) {
	var i id.ID
	if !i.IsNil() {
		t.Error("zero-value ID should be nil")
	}
	if i.String() != "" {
		t.Errorf("expected empty string, got %q", i.String())
	}
	if i.Prefix() != "" {
		t.Errorf("expected empty prefix, got %q", i.Prefix())
	}
}

func TestMarshalUnmarshalText(t *testing.T) {
	original := id.NewDelegationID()
	data, err := original.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText failed: %v", err)
	}

	var restored id.ID
	if unmarshalErr := restored.UnmarshalText(data); unmarshalErr != nil {
		t.Fatalf("UnmarshalText failed: %v", unmarshalErr)
	}
	if restored.String() != original.String() {
		t.Errorf("mismatch: %q != %q", restored.String(), original.String())
	}
}

func TestValueScan(t *testing.T) {
	original := id.NewPolicyID()
	val, err := original.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}

	var scanned id.ID
	if scanErr := scanned.Scan(val); scanErr != nil {
		t.Fatalf("Scan failed: %v", scanErr)
	}
	if scanned.String() != original.String() {
		t.Errorf("mismatch: %q != %q", scanned.String(), original.String())
	}

	var nilID id.ID
	val, err = nilID.Value()
	if err != nil {
		t.Fatalf("Value(nil) failed: %v", err)
	}
	if val != nil {
		t.Errorf("expected nil value for nil ID, got %v", val)
	}

	var scanned2 id.ID
	if err := scanned2.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) failed: %v", err)
	}
	if !scanned2.IsNil() {
		t.Error("expected nil after scan of nil")
	}
}

func TestUniqueness(t *testing.T) {
	a := id.NewTeamID()
	b := id.NewTeamID()
	if a.String() == b.String() {
		t.Error("expected unique IDs")
	}
}
