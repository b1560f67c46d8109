// Package delegation defines time-bounded authority grants between users.
package delegation

import (
	"time"

	"github.com/elevatehq/palisade/id"
)

// Status is the lifecycle state of a delegation.
type Status string

const (
	// StatusActive means the delegation is in force (subject to its dates).
	StatusActive Status = "ACTIVE"

	// StatusRevoked means the delegation was withdrawn before its end date.
	StatusRevoked Status = "REVOKED"

	// StatusExpired means the delegation's window has passed.
	StatusExpired Status = "EXPIRED"
)

// Delegation lets a delegate act with the delegator's "own" authority for a
// bounded period. The grant is one-directional and non-transitive: a
// delegate of a delegate inherits nothing.
type Delegation struct {
	ID          id.DelegationID `json:"id" db:"id"`
	TenantID    string          `json:"tenant_id" db:"tenant_id"`
	DelegatorID string          `json:"delegator_id" db:"delegator_id"`
	DelegateID  string          `json:"delegate_id" db:"delegate_id"`
	Status      Status          `json:"status" db:"status"`
	StartsAt    time.Time       `json:"starts_at" db:"starts_at"`
	EndsAt      *time.Time      `json:"ends_at,omitempty" db:"ends_at"`
	Reason      string          `json:"reason,omitempty" db:"reason"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// ActiveAt reports whether the delegation is valid at the given instant:
// status ACTIVE, started, and not yet ended (a nil EndsAt never ends).
func (d *Delegation) ActiveAt(now time.Time) bool {
	if d.Status != StatusActive {
		return false
	}
	if d.StartsAt.After(now) {
		return false
	}
	return d.EndsAt == nil || d.EndsAt.After(now)
}

// ListFilter contains filters for listing delegations.
type ListFilter struct {
	TenantID    string `json:"tenant_id,omitempty"`
	DelegatorID string `json:"delegator_id,omitempty"`
	DelegateID  string `json:"delegate_id,omitempty"`
	Status      Status `json:"status,omitempty"`
	Limit       int    `json:"limit,omitempty"`
	Offset      int    `json:"offset,omitempty"`
}
