package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/elevatehq/palisade"
)

func TestMemoryGetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	if _, ok := c.Get(ctx, "user-1", "tenant-1"); ok {
		t.Fatal("expected miss on empty cache")
	}

	snap := &palisade.Membership{TeamIDs: []string{"team-1"}}
	c.Set(ctx, "user-1", "tenant-1", snap)

	got, ok := c.Get(ctx, "user-1", "tenant-1")
	if !ok {
		t.Fatal("expected hit")
	}
	if len(got.TeamIDs) != 1 || got.TeamIDs[0] != "team-1" {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
}

func TestMemoryTenantScopedKeys(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	c.Set(ctx, "user-1", "tenant-1", &palisade.Membership{TeamIDs: []string{"a"}})
	c.Set(ctx, "user-1", "tenant-2", &palisade.Membership{TeamIDs: []string{"b"}})

	got, ok := c.Get(ctx, "user-1", "tenant-2")
	if !ok || got.TeamIDs[0] != "b" {
		t.Fatalf("expected tenant-2 snapshot, got %+v (hit=%v)", got, ok)
	}
}

func TestMemoryExpiration(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	clock := func() time.Time { return now }
	c := NewMemory(WithTTL(time.Minute), WithClock(clock))

	c.Set(ctx, "user-1", "tenant-1", &palisade.Membership{})
	if _, ok := c.Get(ctx, "user-1", "tenant-1"); !ok {
		t.Fatal("expected hit before expiry")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get(ctx, "user-1", "tenant-1"); ok {
		t.Fatal("expected miss after expiry")
	}
	if c.Len() != 0 {
		t.Fatalf("expected expired entry to be removed, len=%d", c.Len())
	}
}

func TestMemoryInvalidate(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	c.Set(ctx, "user-1", "tenant-1", &palisade.Membership{})
	c.Set(ctx, "user-2", "tenant-1", &palisade.Membership{})

	c.Invalidate(ctx, "user-1", "tenant-1")
	if _, ok := c.Get(ctx, "user-1", "tenant-1"); ok {
		t.Fatal("expected miss after invalidate")
	}
	if _, ok := c.Get(ctx, "user-2", "tenant-1"); !ok {
		t.Fatal("invalidate removed unrelated entry")
	}

	c.InvalidateAll(ctx)
	if _, ok := c.Get(ctx, "user-2", "tenant-1"); ok {
		t.Fatal("expected miss after InvalidateAll")
	}
}

func TestMemoryMaxSize(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(WithMaxSize(3))

	for i := 0; i < 5; i++ {
		c.Set(ctx, fmt.Sprintf("user-%d", i), "tenant-1", &palisade.Membership{})
	}
	if c.Len() > 3 {
		t.Fatalf("cache exceeded max size: %d", c.Len())
	}
}

func TestMemoryConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(n int) {
			defer func() { done <- struct{}{} }()
			user := fmt.Sprintf("user-%d", n)
			for j := 0; j < 100; j++ {
				c.Set(ctx, user, "tenant-1", &palisade.Membership{})
				c.Get(ctx, user, "tenant-1")
				c.Invalidate(ctx, user, "tenant-1")
			}
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
