package palisade

import "context"

// MembershipCache caches membership snapshots per (userID, tenantID).
//
// Entries are always replaced whole, never updated in place, so a
// last-writer-wins overwrite under concurrent population is acceptable: a
// snapshot is a pure function of upstream data at a point in time and races
// only decide which snapshot wins within the TTL window.
type MembershipCache interface {
	// Get returns a cached membership snapshot, if present and unexpired.
	Get(ctx context.Context, userID, tenantID string) (*Membership, bool)

	// Set stores a membership snapshot.
	Set(ctx context.Context, userID, tenantID string, m *Membership)

	// Invalidate removes the entry for one (userID, tenantID) pair.
	Invalidate(ctx context.Context, userID, tenantID string)

	// InvalidateAll removes every entry.
	InvalidateAll(ctx context.Context)
}
