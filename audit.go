package palisade

import (
	"context"
	"log/slog"
	"time"

	"github.com/elevatehq/palisade/auditlog"
	"github.com/elevatehq/palisade/id"
)

// Audit event kinds emitted by the engine.
const (
	// EventCrossTenantBlocked is emitted whenever a decision is refused
	// because the resource belongs to a different tenant than the actor.
	EventCrossTenantBlocked = "CROSS_TENANT_ACCESS_BLOCKED"

	// EventPolicyDenied is emitted whenever an access policy produces an
	// explicit deny.
	EventPolicyDenied = "POLICY_DENIED"
)

// AuditEvent is a security event on the write-only audit side channel.
type AuditEvent struct {
	Kind         string         `json:"kind"`
	ActorID      string         `json:"actor_id"`
	TenantID     string         `json:"tenant_id"`
	ResourceType string         `json:"resource_type,omitempty"`
	ResourceID   string         `json:"resource_id,omitempty"`
	Detail       map[string]any `json:"detail,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// AuditSink receives security events. Implementations must not block the
// decision path on failure; a sink error is logged, never propagated into
// the authorization result.
type AuditSink interface {
	Emit(ctx context.Context, ev *AuditEvent)
}

// NopAuditSink discards all events.
type NopAuditSink struct{}

// Emit implements AuditSink.
func (NopAuditSink) Emit(context.Context, *AuditEvent) {}

// StoreAuditSink persists events through an auditlog.Store.
type StoreAuditSink struct {
	store  auditlog.Store
	logger *slog.Logger
}

// NewStoreAuditSink creates a sink that writes events to the given store.
func NewStoreAuditSink(s auditlog.Store, logger *slog.Logger) *StoreAuditSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &StoreAuditSink{store: s, logger: logger}
}

// Emit implements AuditSink. Write failures are logged and swallowed so the
// audit channel can never change an authorization outcome.
func (s *StoreAuditSink) Emit(ctx context.Context, ev *AuditEvent) {
	entry := &auditlog.Entry{
		ID:           id.NewAuditEventID(),
		TenantID:     ev.TenantID,
		Kind:         ev.Kind,
		ActorID:      ev.ActorID,
		ResourceType: ev.ResourceType,
		ResourceID:   ev.ResourceID,
		Detail:       ev.Detail,
		CreatedAt:    ev.CreatedAt,
	}
	if err := s.store.CreateAuditEntry(ctx, entry); err != nil {
		s.logger.Error("palisade: audit write failed",
			"kind", ev.Kind, "tenant", ev.TenantID, "error", err)
	}
}
