// Package cache provides caching implementations for Palisade membership
// snapshots.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/elevatehq/palisade"
)

// Compile-time interface check.
var _ palisade.MembershipCache = (*Memory)(nil)

// Memory is an in-memory membership snapshot cache with TTL-based
// expiration.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]*entry
	ttl     time.Duration
	maxSize int
	now     func() time.Time
}

type entry struct {
	snapshot  *palisade.Membership
	expiresAt time.Time
}

// MemoryOption configures the memory cache.
type MemoryOption func(*Memory)

// WithTTL sets the cache entry time-to-live.
func WithTTL(ttl time.Duration) MemoryOption {
	return func(m *Memory) { m.ttl = ttl }
}

// WithMaxSize sets the maximum number of cache entries.
func WithMaxSize(n int) MemoryOption {
	return func(m *Memory) { m.maxSize = n }
}

// WithClock sets the time source. Tests use this to step past the TTL
// without sleeping.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) { m.now = now }
}

// NewMemory creates a new in-memory membership cache. The default TTL is the
// 60-second staleness window the resolver tolerates.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		entries: make(map[string]*entry),
		ttl:     60 * time.Second,
		maxSize: 10000,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns a cached membership snapshot.
func (m *Memory) Get(_ context.Context, userID, tenantID string) (*palisade.Membership, bool) {
	key := cacheKey(userID, tenantID)
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if m.now().After(e.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, false
	}
	return e.snapshot, true
}

// Set stores a membership snapshot.
func (m *Memory) Set(_ context.Context, userID, tenantID string, snap *palisade.Membership) {
	key := cacheKey(userID, tenantID)
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.entries) >= m.maxSize {
		m.evictExpired()
		if len(m.entries) >= m.maxSize {
			m.evictOne()
		}
	}

	m.entries[key] = &entry{
		snapshot:  snap,
		expiresAt: m.now().Add(m.ttl),
	}
}

// Invalidate removes the entry for one (userID, tenantID) pair.
func (m *Memory) Invalidate(_ context.Context, userID, tenantID string) {
	m.mu.Lock()
	delete(m.entries, cacheKey(userID, tenantID))
	m.mu.Unlock()
}

// InvalidateAll removes every entry.
func (m *Memory) InvalidateAll(_ context.Context) {
	m.mu.Lock()
	m.entries = make(map[string]*entry)
	m.mu.Unlock()
}

// Len returns the number of live entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func cacheKey(userID, tenantID string) string {
	return tenantID + ":" + userID
}

// evictExpired removes all expired entries. Must hold write lock.
func (m *Memory) evictExpired() {
	now := m.now()
	for k, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, k)
		}
	}
}

// evictOne removes one arbitrary entry. Must hold write lock.
func (m *Memory) evictOne() {
	for k := range m.entries {
		delete(m.entries, k)
		return
	}
}
