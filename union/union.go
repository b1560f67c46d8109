// Package union defines union-contract memberships and the per-category
// restriction rules their contracts impose on performance-management actions.
package union

import (
	"time"

	"github.com/elevatehq/palisade/id"
)

// Status is the lifecycle state of a union membership.
type Status string

const (
	// StatusActive means the membership's contract rules apply.
	StatusActive Status = "ACTIVE"

	// StatusLapsed means the membership has ended.
	StatusLapsed Status = "LAPSED"
)

// Action categories a contract can restrict. Restriction matching is a
// prefix match on the action name (e.g. "review" blocks "review:submit").
const (
	CategoryReview      = "review"
	CategoryFeedback    = "feedback"
	CategoryCalibration = "calibration"
)

// Rule is one contract clause for an action category.
type Rule struct {
	Restricted bool   `json:"restricted"`
	Reason     string `json:"reason,omitempty"`
}

// Membership records that a user is covered by a union contract within a
// tenant. Rules is keyed by action category.
type Membership struct {
	ID           id.UnionMemberID `json:"id" db:"id"`
	TenantID     string           `json:"tenant_id" db:"tenant_id"`
	UserID       string           `json:"user_id" db:"user_id"`
	UnionCode    string           `json:"union_code" db:"union_code"`
	ContractType string           `json:"contract_type" db:"contract_type"`
	Status       Status           `json:"status" db:"status"`
	Rules        map[string]Rule  `json:"rules,omitempty" db:"-"`
	CreatedAt    time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at" db:"updated_at"`
}

// ListFilter contains filters for listing union memberships.
type ListFilter struct {
	TenantID  string `json:"tenant_id,omitempty"`
	UserID    string `json:"user_id,omitempty"`
	UnionCode string `json:"union_code,omitempty"`
	Status    Status `json:"status,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	Offset    int    `json:"offset,omitempty"`
}
