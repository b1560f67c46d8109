package palisade

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/elevatehq/palisade/delegation"
	"github.com/elevatehq/palisade/id"
	"github.com/elevatehq/palisade/org"
	"github.com/elevatehq/palisade/store"
	"github.com/elevatehq/palisade/store/memory"
)

// countingStore counts the organizational lookups the resolver issues.
type countingStore struct {
	store.Store
	mu    sync.Mutex
	calls int
}

func (c *countingStore) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func (c *countingStore) bump() {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
}

func (c *countingStore) ListActiveTeamIDs(ctx context.Context, tenantID, userID string) ([]string, error) {
	c.bump()
	return c.Store.ListActiveTeamIDs(ctx, tenantID, userID)
}

func (c *countingStore) ListDirectReportIDs(ctx context.Context, tenantID, managerID string) ([]string, error) {
	c.bump()
	return c.Store.ListDirectReportIDs(ctx, tenantID, managerID)
}

func (c *countingStore) ListMatrixReportIDs(ctx context.Context, tenantID, managerID string) ([]string, error) {
	c.bump()
	return c.Store.ListMatrixReportIDs(ctx, tenantID, managerID)
}

func (c *countingStore) ListActiveForDelegate(ctx context.Context, tenantID, delegateID string) ([]*delegation.Delegation, error) {
	c.bump()
	return c.Store.ListActiveForDelegate(ctx, tenantID, delegateID)
}

// mapCache is a minimal MembershipCache for resolver tests. It never
// expires; TTL behavior belongs to the cache implementation's own tests.
type mapCache struct {
	mu      sync.Mutex
	entries map[string]*Membership
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]*Membership)}
}

func (c *mapCache) Get(_ context.Context, userID, tenantID string) (*Membership, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.entries[tenantID+":"+userID]
	return m, ok
}

func (c *mapCache) Set(_ context.Context, userID, tenantID string, m *Membership) {
	c.mu.Lock()
	c.entries[tenantID+":"+userID] = m
	c.mu.Unlock()
}

func (c *mapCache) Invalidate(_ context.Context, userID, tenantID string) {
	c.mu.Lock()
	delete(c.entries, tenantID+":"+userID)
	c.mu.Unlock()
}

func (c *mapCache) InvalidateAll(_ context.Context) {
	c.mu.Lock()
	c.entries = make(map[string]*Membership)
	c.mu.Unlock()
}

func seedOrgData(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()
	past := time.Now().Add(-time.Hour)
	expired := time.Now().Add(-time.Minute)
	future := time.Now().Add(time.Hour)

	teamID := id.NewTeamID()
	if err := s.AddTeamMember(ctx, &org.TeamMembership{
		ID: id.NewTeamMembershipID(), TenantID: "t1",
		TeamID: teamID, UserID: "u1", StartedAt: past,
	}); err != nil {
		t.Fatal(err)
	}

	// Direct and matrix reports, one user through both links.
	_ = s.AddReportLink(ctx, &org.ReportLink{
		ID: id.NewReportLinkID(), TenantID: "t1",
		ManagerID: "u1", ReportID: "r1", Kind: org.ReportDirect, StartedAt: past,
	})
	_ = s.AddReportLink(ctx, &org.ReportLink{
		ID: id.NewReportLinkID(), TenantID: "t1",
		ManagerID: "u1", ReportID: "r1", Kind: org.ReportMatrix, StartedAt: past,
	})
	_ = s.AddReportLink(ctx, &org.ReportLink{
		ID: id.NewReportLinkID(), TenantID: "t1",
		ManagerID: "u1", ReportID: "r2", Kind: org.ReportMatrix, StartedAt: past,
	})

	// One live delegation, one expired, one still valid with a future end.
	_ = s.CreateDelegation(ctx, &delegation.Delegation{
		ID: id.NewDelegationID(), TenantID: "t1",
		DelegatorID: "boss", DelegateID: "u1",
		Status: delegation.StatusActive, StartsAt: past,
	})
	_ = s.CreateDelegation(ctx, &delegation.Delegation{
		ID: id.NewDelegationID(), TenantID: "t1",
		DelegatorID: "ex-boss", DelegateID: "u1",
		Status: delegation.StatusActive, StartsAt: past, EndsAt: &expired,
	})
	_ = s.CreateDelegation(ctx, &delegation.Delegation{
		ID: id.NewDelegationID(), TenantID: "t1",
		DelegatorID: "org-boss", DelegateID: "u1",
		Status: delegation.StatusActive, StartsAt: past, EndsAt: &future,
	})
}

func TestResolveMembership(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	seedOrgData(t, s)

	r := NewMembershipResolver(s, nil, nil)
	snap, err := r.Resolve(ctx, "u1", "t1")
	if err != nil {
		t.Fatal(err)
	}

	if len(snap.TeamIDs) != 1 {
		t.Fatalf("expected 1 team, got %v", snap.TeamIDs)
	}
	// r1 appears once despite direct + matrix links.
	if len(snap.ReportIDs) != 2 {
		t.Fatalf("expected 2 deduplicated reports, got %v", snap.ReportIDs)
	}
	// The expired delegation is excluded, the open and future-ended ones
	// are included.
	if len(snap.DelegatedFromIDs) != 2 {
		t.Fatalf("expected 2 delegators, got %v", snap.DelegatedFromIDs)
	}
	for _, d := range snap.DelegatedFromIDs {
		if d == "ex-boss" {
			t.Fatal("expired delegation leaked into the snapshot")
		}
	}
}

func TestResolveUsesCache(t *testing.T) {
	ctx := context.Background()
	cs := &countingStore{Store: memory.New()}
	seedOrgData(t, cs.Store)

	r := NewMembershipResolver(cs, newMapCache(), nil)

	if _, err := r.Resolve(ctx, "u1", "t1"); err != nil {
		t.Fatal(err)
	}
	first := cs.count()
	if first == 0 {
		t.Fatal("expected store lookups on cold cache")
	}

	// Second resolve within the cache lifetime issues no lookups.
	if _, err := r.Resolve(ctx, "u1", "t1"); err != nil {
		t.Fatal(err)
	}
	if cs.count() != first {
		t.Fatalf("cache hit still queried the store: %d -> %d", first, cs.count())
	}
}

func TestClearCacheForcesRefetch(t *testing.T) {
	ctx := context.Background()
	cs := &countingStore{Store: memory.New()}
	seedOrgData(t, cs.Store)

	r := NewMembershipResolver(cs, newMapCache(), nil)

	if _, err := r.Resolve(ctx, "u1", "t1"); err != nil {
		t.Fatal(err)
	}
	before := cs.count()

	r.ClearCache(ctx, "u1", "t1")
	if _, err := r.Resolve(ctx, "u1", "t1"); err != nil {
		t.Fatal(err)
	}
	if cs.count() <= before {
		t.Fatal("explicit clear did not force a fresh data-access round trip")
	}
}

func TestClearCacheAll(t *testing.T) {
	ctx := context.Background()
	cs := &countingStore{Store: memory.New()}
	seedOrgData(t, cs.Store)

	cache := newMapCache()
	r := NewMembershipResolver(cs, cache, nil)

	_, _ = r.Resolve(ctx, "u1", "t1")
	cache.Set(ctx, "u2", "t1", &Membership{})

	// Both IDs empty flushes everything.
	r.ClearCache(ctx, "", "")
	if _, ok := cache.Get(ctx, "u1", "t1"); ok {
		t.Fatal("full clear left u1 entry")
	}
	if _, ok := cache.Get(ctx, "u2", "t1"); ok {
		t.Fatal("full clear left u2 entry")
	}
}

// failingStore fails one of the three lookups; the whole resolution must
// fail rather than return a partial snapshot.
type failingStore struct {
	store.Store
}

var errLookup = errors.New("lookup failed")

func (f *failingStore) ListDirectReportIDs(context.Context, string, string) ([]string, error) {
	return nil, errLookup
}

func TestResolvePropagatesFailure(t *testing.T) {
	ctx := context.Background()
	fs := &failingStore{Store: memory.New()}
	cache := newMapCache()
	r := NewMembershipResolver(fs, cache, nil)

	_, err := r.Resolve(ctx, "u1", "t1")
	if !errors.Is(err, errLookup) {
		t.Fatalf("expected lookup failure to propagate, got %v", err)
	}
	// No partial snapshot may be cached.
	if _, ok := cache.Get(ctx, "u1", "t1"); ok {
		t.Fatal("failed resolution wrote a cache entry")
	}
}
