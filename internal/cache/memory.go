package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value    []byte
	expires  time.Time
	inserted time.Time
}

// MemoryCache is an in-process Backend. Expired entries are dropped lazily on
// read and when the cache is full. When full, the oldest entry is evicted.
type MemoryCache struct {
	entries    map[string]memoryEntry
	maxEntries int
	now        func() time.Time
	mu         sync.RWMutex
}

// NewMemoryCache creates a memory backend holding at most maxEntries entries.
// A non-positive maxEntries means unbounded.
func NewMemoryCache(maxEntries int) *MemoryCache {
	return &MemoryCache{
		entries:    make(map[string]memoryEntry),
		maxEntries: maxEntries,
		now:        time.Now,
		mu:         sync.RWMutex{},
	}
}

// Get implements Backend.
func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}

	if !m.now().Before(entry.expires) {
		m.mu.Lock()
		// re-check under the write lock, a concurrent Set may have refreshed it
		if current, ok := m.entries[key]; ok && !m.now().Before(current.expires) {
			delete(m.entries, key)
		}
		m.mu.Unlock()

		return nil, false, nil
	}

	return append([]byte(nil), entry.value...), true, nil
}

// Set implements Backend.
func (m *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[key]; !exists && m.maxEntries > 0 && len(m.entries) >= m.maxEntries {
		m.evictLocked(now)
	}

	m.entries[key] = memoryEntry{
		value:    append([]byte(nil), value...),
		expires:  now.Add(ttl),
		inserted: now,
	}

	return nil
}

// evictLocked drops expired entries, or the oldest one if none has expired.
func (m *MemoryCache) evictLocked(now time.Time) {
	var (
		oldestKey string
		oldest    time.Time
		expired   bool
	)

	for key, entry := range m.entries {
		if !now.Before(entry.expires) {
			delete(m.entries, key)

			expired = true

			continue
		}

		if oldestKey == "" || entry.inserted.Before(oldest) {
			oldestKey = key
			oldest = entry.inserted
		}
	}

	if !expired && oldestKey != "" {
		delete(m.entries, oldestKey)
	}
}

// Delete implements Backend.
func (m *MemoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)

	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}

// Close implements Backend.
func (m *MemoryCache) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = make(map[string]memoryEntry)

	return nil
}
