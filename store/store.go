// Package store defines the aggregate persistence interface. Each subsystem
// (org, delegation, policy, union, auditlog) defines its own store
// interface. The composite Store composes them all.
// Backends: Postgres, SQLite, and Memory.
package store

import (
	"context"
	"errors"

	"github.com/elevatehq/palisade/auditlog"
	"github.com/elevatehq/palisade/delegation"
	"github.com/elevatehq/palisade/org"
	"github.com/elevatehq/palisade/policy"
	"github.com/elevatehq/palisade/union"
)

// ErrNotFound is wrapped by every backend when a record is absent; callers
// branch on it with errors.Is.
var ErrNotFound = errors.New("not found")

// Store is the aggregate persistence interface. A single backend (postgres,
// sqlite, memory) implements all of the subsystem stores.
type Store interface {
	org.Store
	delegation.Store
	policy.Store
	union.Store
	auditlog.Store

	// Migrate runs all schema migrations.
	Migrate(ctx context.Context) error

	// Ping checks database connectivity.
	Ping(ctx context.Context) error

	// Close closes the store connection.
	Close() error
}
