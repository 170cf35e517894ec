/*
Package cache provides the response cache for computed schedules.

PURPOSE:
  Schedule computation is deterministic, so identical requests can be
  served from cache. The cache is strictly ephemeral: entries expire and
  may be dropped at any time, and a miss simply means recompute. Nothing
  here is durable storage.

IMPLEMENTATIONS:
  Memory: in-process map with TTL, the default and the test double
  Redis:  shared cache for multi-instance deployments (redis.go)

USAGE:
  c := cache.NewMemory()
  if body, ok := c.Get(ctx, key); ok { ... }
  c.Set(ctx, key, body, 10*time.Minute)
*/
package cache

import (
	"context"
	"sync"
	"time"
)

// Cache is the response-cache boundary. A miss is a compute signal, never
// an error.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// =============================================================================
// IN-MEMORY IMPLEMENTATION
// =============================================================================

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// Memory is a thread-safe in-process cache with per-entry TTL.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return "", false
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return "", false
	}
	return e.value, true
}

func (m *Memory) Set(_ context.Context, key, value string, ttl time.Duration) error {
	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	m.mu.Lock()
	m.entries[key] = e
	m.mu.Unlock()
	return nil
}
