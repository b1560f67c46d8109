// Package id defines TypeID-based identity types for all Palisade entities.
//
// Every entity in Palisade uses a single ID struct with a prefix that
// identifies the entity type. IDs are K-sortable (UUIDv7-based), globally
// unique, and URL-safe in the format "prefix_suffix".
package id

import (
	"database/sql/driver"
	"fmt"

	"go.jetify.com/typeid/v2"
)

// Prefix identifies the entity type encoded in a TypeID.
type Prefix string

// Prefix constants for all Palisade entity types.
const (
	PrefixTeam           Prefix = "team"
	PrefixTeamMembership Prefix = "tmem"
	PrefixReportLink     Prefix = "rlink"
	PrefixOrgUnit        Prefix = "ounit"
	PrefixDelegation     Prefix = "dlg"
	PrefixPolicy         Prefix = "apol"
	PrefixUnionMember    Prefix = "umem"
	PrefixAuditEvent     Prefix = "audevt"
)

// ID is the primary identifier type for all Palisade entities.
// It wraps a TypeID providing a prefix-qualified, globally unique,
// sortable, URL-safe identifier in the format "prefix_suffix".
//
//nolint:recvcheck // Value receivers for read-only methods, pointer receivers for UnmarshalText/Scan.
type ID struct {
	inner typeid.TypeID
	valid bool
}

// Nil is the zero-value ID.
var Nil ID

// New generates a new globally unique ID with the given prefix.
// It panics if prefix is not a valid TypeID prefix (programming error).
func New(prefix Prefix) ID {
	tid, err := typeid.Generate(string(prefix))
	if err != nil {
		panic(fmt.Sprintf("id: invalid prefix %q: %v", prefix, err))
	}

	return ID{inner: tid, valid: true}
}

// Parse parses a TypeID string (e.g., "team_01h2xcejqtf2nbrexx3vqjhp41")
// into an ID. Returns an error if the string is not valid.
func Parse(s string) (ID, error) {
	if s == "" {
		return Nil, fmt.Errorf("id: parse %q: empty string", s)
	}

	tid, err := typeid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("id: parse %q: %w", s, err)
	}

	return ID{inner: tid, valid: true}, nil
}

// ParseWithPrefix parses a TypeID string and validates that its prefix
// matches the expected value.
func ParseWithPrefix(s string, expected Prefix) (ID, error) {
	parsed, err := Parse(s)
	if err != nil {
		return Nil, err
	}

	if parsed.Prefix() != expected {
		return Nil, fmt.Errorf("id: expected prefix %q, got %q", expected, parsed.Prefix())
	}

	return parsed, nil
}

// MustParse is like Parse but panics on error. Use for hardcoded ID values.
func MustParse(s string) ID {
	parsed, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("id: must parse %q: %v", s, err))
	}

	return parsed
}

// ──────────────────────────────────────────────────
// Type aliases per entity
// ──────────────────────────────────────────────────

// TeamID is a type-safe identifier for teams (prefix: "team").
type TeamID = ID

// TeamMembershipID is a type-safe identifier for team memberships (prefix: "tmem").
type TeamMembershipID = ID

// ReportLinkID is a type-safe identifier for reporting links (prefix: "rlink").
type ReportLinkID = ID

// OrgUnitID is a type-safe identifier for departments and business units (prefix: "ounit").
type OrgUnitID = ID

// DelegationID is a type-safe identifier for delegations (prefix: "dlg").
type DelegationID = ID

// PolicyID is a type-safe identifier for access policies (prefix: "apol").
type PolicyID = ID

// UnionMemberID is a type-safe identifier for union memberships (prefix: "umem").
type UnionMemberID = ID

// AuditEventID is a type-safe identifier for audit events (prefix: "audevt").
type AuditEventID = ID

// AnyID is a type alias that accepts any valid prefix.
type AnyID = ID

// ──────────────────────────────────────────────────
// Convenience constructors
// ──────────────────────────────────────────────────

// NewTeamID generates a new unique team ID.
func NewTeamID() ID { return New(PrefixTeam) }

// NewTeamMembershipID generates a new unique team membership ID.
func NewTeamMembershipID() ID { return New(PrefixTeamMembership) }

// NewReportLinkID generates a new unique reporting link ID.
func NewReportLinkID() ID { return New(PrefixReportLink) }

// NewOrgUnitID generates a new unique org unit ID.
func NewOrgUnitID() ID { return New(PrefixOrgUnit) }

// NewDelegationID generates a new unique delegation ID.
func NewDelegationID() ID { return New(PrefixDelegation) }

// NewPolicyID generates a new unique access policy ID.
func NewPolicyID() ID { return New(PrefixPolicy) }

// NewUnionMemberID generates a new unique union membership ID.
func NewUnionMemberID() ID { return New(PrefixUnionMember) }

// NewAuditEventID generates a new unique audit event ID.
func NewAuditEventID() ID { return New(PrefixAuditEvent) }

// ──────────────────────────────────────────────────
// Convenience parsers
// ──────────────────────────────────────────────────

// ParseTeamID parses a string and validates the "team" prefix.
func ParseTeamID(s string) (ID, error) { return ParseWithPrefix(s, PrefixTeam) }

// ParseTeamMembershipID parses a string and validates the "tmem" prefix.
func ParseTeamMembershipID(s string) (ID, error) { return ParseWithPrefix(s, PrefixTeamMembership) }

// ParseReportLinkID parses a string and validates the "rlink" prefix.
func ParseReportLinkID(s string) (ID, error) { return ParseWithPrefix(s, PrefixReportLink) }

// ParseOrgUnitID parses a string and validates the "ounit" prefix.
func ParseOrgUnitID(s string) (ID, error) { return ParseWithPrefix(s, PrefixOrgUnit) }

// ParseDelegationID parses a string and validates the "dlg" prefix.
func ParseDelegationID(s string) (ID, error) { return ParseWithPrefix(s, PrefixDelegation) }

// ParsePolicyID parses a string and validates the "apol" prefix.
func ParsePolicyID(s string) (ID, error) { return ParseWithPrefix(s, PrefixPolicy) }

// ParseUnionMemberID parses a string and validates the "umem" prefix.
func ParseUnionMemberID(s string) (ID, error) { return ParseWithPrefix(s, PrefixUnionMember) }

// ParseAuditEventID parses a string and validates the "audevt" prefix.
func ParseAuditEventID(s string) (ID, error) { return ParseWithPrefix(s, PrefixAuditEvent) }

// ParseAny parses a string into an ID without type checking the prefix.
func ParseAny(s string) (ID, error) { return Parse(s) }

// ──────────────────────────────────────────────────
// ID methods
// ──────────────────────────────────────────────────

// String returns the full TypeID string representation (prefix_suffix).
// Returns an empty string for the Nil ID.
func (i ID) String() string {
	if !i.valid {
		return ""
	}

	return i.inner.String()
}

// Prefix returns the prefix component of this ID.
func (i ID) Prefix() Prefix {
	if !i.valid {
		return ""
	}

	return Prefix(i.inner.Prefix())
}

// IsNil reports whether this ID is the zero value.
func (i ID) IsNil() bool {
	return !i.valid
}

// MarshalText implements encoding.TextMarshaler.
func (i ID) MarshalText() ([]byte, error) {
	if !i.valid {
		return []byte{}, nil
	}

	return []byte(i.inner.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *ID) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*i = Nil

		return nil
	}

	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}

	*i = parsed

	return nil
}

// Value implements driver.Valuer for database storage.
// Returns nil for the Nil ID so that optional foreign key columns store NULL.
func (i ID) Value() (driver.Value, error) {
	if !i.valid {
		return nil, nil //nolint:nilnil // nil is the canonical NULL for driver.Valuer
	}

	return i.inner.String(), nil
}

// Scan implements sql.Scanner for database retrieval.
func (i *ID) Scan(src any) error {
	if src == nil {
		*i = Nil

		return nil
	}

	switch v := src.(type) {
	case string:
		if v == "" {
			*i = Nil

			return nil
		}

		return i.UnmarshalText([]byte(v))
	case []byte:
		if len(v) == 0 {
			*i = Nil

			return nil
		}

		return i.UnmarshalText(v)
	default:
		return fmt.Errorf("id: cannot scan %T into ID", src)
	}
}
