package palisade

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated is returned when no principal is attached to the
	// request context.
	ErrNotAuthenticated = errors.New("palisade: not authenticated")

	// ErrAccessDenied is returned when an authorization check fails.
	ErrAccessDenied = errors.New("palisade: access denied")

	// ErrTeamNotFound is returned when a team cannot be found.
	ErrTeamNotFound = errors.New("palisade: team not found")

	// ErrOrgUnitNotFound is returned when a department or business unit
	// cannot be found.
	ErrOrgUnitNotFound = errors.New("palisade: org unit not found")

	// ErrDelegationNotFound is returned when a delegation cannot be found.
	ErrDelegationNotFound = errors.New("palisade: delegation not found")

	// ErrPolicyNotFound is returned when an access policy cannot be found.
	ErrPolicyNotFound = errors.New("palisade: policy not found")

	// ErrUnionMembershipNotFound is returned when a union membership cannot
	// be found.
	ErrUnionMembershipNotFound = errors.New("palisade: union membership not found")

	// ErrAuditEventNotFound is returned when an audit event cannot be found.
	ErrAuditEventNotFound = errors.New("palisade: audit event not found")

	// ErrUnknownScope is returned when a scope string is not one of the
	// recognized levels.
	ErrUnknownScope = errors.New("palisade: unknown scope level")
)

// AuthorizationError is raised at the middleware boundary when a decision
// comes back negative. Requirement is a human-readable description of what
// was required; it never leaks internal check details or data-layer errors.
type AuthorizationError struct {
	Requirement string
}

// NewAuthorizationError creates an AuthorizationError with the given
// requirement description.
func NewAuthorizationError(requirement string) *AuthorizationError {
	return &AuthorizationError{Requirement: requirement}
}

// Error implements the error interface.
func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("palisade: access denied: %s", e.Requirement)
}

// Unwrap allows errors.Is(err, ErrAccessDenied) to match.
func (e *AuthorizationError) Unwrap() error { return ErrAccessDenied }
