package palisade

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/elevatehq/palisade/store"
)

// MembershipResolver builds membership snapshots for a user within one
// tenant: the teams they belong to, the users who report to them, and the
// users who have delegated authority to them. Snapshots are cached with a
// short TTL; staleness within that window is acceptable.
type MembershipResolver struct {
	store  store.Store
	cache  MembershipCache
	logger *slog.Logger
}

// NewMembershipResolver creates a resolver backed by the given store. The
// cache may be nil, in which case every Resolve hits the store. Snapshot
// lifetime is the cache's concern; the resolver never inspects it.
func NewMembershipResolver(s store.Store, cache MembershipCache, logger *slog.Logger) *MembershipResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &MembershipResolver{
		store:  s,
		cache:  cache,
		logger: logger,
	}
}

// Resolve returns the membership snapshot for a user in a tenant. On a
// cache miss the three lookups (team memberships, reporting links,
// delegations) run concurrently; any lookup failure fails the whole
// resolution.
func (r *MembershipResolver) Resolve(ctx context.Context, userID, tenantID string) (*Membership, error) {
	if r.cache != nil {
		if snap, ok := r.cache.Get(ctx, userID, tenantID); ok {
			return snap, nil
		}
	}

	snap := &Membership{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		teamIDs, err := r.store.ListActiveTeamIDs(gctx, tenantID, userID)
		if err != nil {
			return fmt.Errorf("team memberships: %w", err)
		}
		snap.TeamIDs = teamIDs
		return nil
	})

	g.Go(func() error {
		direct, err := r.store.ListDirectReportIDs(gctx, tenantID, userID)
		if err != nil {
			return fmt.Errorf("direct reports: %w", err)
		}
		matrix, err := r.store.ListMatrixReportIDs(gctx, tenantID, userID)
		if err != nil {
			return fmt.Errorf("matrix reports: %w", err)
		}
		snap.ReportIDs = dedupeStrings(append(direct, matrix...))
		return nil
	})

	g.Go(func() error {
		delegations, err := r.store.ListActiveForDelegate(gctx, tenantID, userID)
		if err != nil {
			return fmt.Errorf("delegations: %w", err)
		}
		ids := make([]string, 0, len(delegations))
		for _, d := range delegations {
			ids = append(ids, d.DelegatorID)
		}
		snap.DelegatedFromIDs = dedupeStrings(ids)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("palisade: resolve membership: %w", err)
	}

	if r.cache != nil {
		r.cache.Set(ctx, userID, tenantID, snap)
	}
	return snap, nil
}

// ClearCache invalidates cached snapshots. With both arguments empty the
// entire cache is flushed; otherwise only the given (userID, tenantID)
// entry is removed. Callers invoke this after team, reporting, or
// delegation changes when they cannot wait out the TTL.
func (r *MembershipResolver) ClearCache(ctx context.Context, userID, tenantID string) {
	if r.cache == nil {
		return
	}
	if userID == "" && tenantID == "" {
		r.cache.InvalidateAll(ctx)
		return
	}
	r.cache.Invalidate(ctx, userID, tenantID)
}

// dedupeStrings returns the input with duplicates removed, preserving
// first-seen order.
func dedupeStrings(in []string) []string {
	if len(in) < 2 {
		return in
	}
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
