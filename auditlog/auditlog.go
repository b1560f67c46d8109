// Package auditlog defines the persisted security audit Entry entity.
package auditlog

import (
	"time"

	"github.com/elevatehq/palisade/id"
)

// Entry is a single security audit record. The audit surface is write-only:
// the engine emits entries and never reads them back into a decision.
type Entry struct {
	ID           id.AuditEventID `json:"id" db:"id"`
	TenantID     string          `json:"tenant_id" db:"tenant_id"`
	Kind         string          `json:"kind" db:"kind"`
	ActorID      string          `json:"actor_id" db:"actor_id"`
	ResourceType string          `json:"resource_type,omitempty" db:"resource_type"`
	ResourceID   string          `json:"resource_id,omitempty" db:"resource_id"`
	Detail       map[string]any  `json:"detail,omitempty" db:"detail"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

// QueryFilter contains filters for querying audit entries.
type QueryFilter struct {
	TenantID     string     `json:"tenant_id,omitempty"`
	Kind         string     `json:"kind,omitempty"`
	ActorID      string     `json:"actor_id,omitempty"`
	ResourceType string     `json:"resource_type,omitempty"`
	ResourceID   string     `json:"resource_id,omitempty"`
	After        *time.Time `json:"after,omitempty"`
	Before       *time.Time `json:"before,omitempty"`
	Limit        int        `json:"limit,omitempty"`
	Offset       int        `json:"offset,omitempty"`
}
