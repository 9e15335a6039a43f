/*
Package cache provides result caching for scenario runs.

PURPOSE:
  Scenario runs over 30-year loans touch hundreds of schedule rows per
  scenario; identical requests are common (a UI polling the same loan).
  The API layer caches serialized responses keyed by a request digest and
  serves repeats without re-running the engine.

SEE ALSO:
  - cache/redis.go: the Redis-backed implementation used in production
  - api/handlers.go: the cache-aside consumers
*/
package cache

import (
	"context"
	"sync"
	"time"
)

// ResultCache stores serialized computation results. A miss is reported
// through the bool, never through an error; Set failures are advisory
// (callers log and move on, the computation already succeeded).
type ResultCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// =============================================================================
// IN-MEMORY CACHE
// =============================================================================

// Memory is a process-local ResultCache for tests and single-node runs.
// Expired entries are dropped lazily on Get.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return "", false
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return "", false
	}
	return entry.value, true
}

func (m *Memory) Set(_ context.Context, key, value string, ttl time.Duration) error {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()
	return nil
}
