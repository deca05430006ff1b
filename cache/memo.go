// Package cache provides a small generic memoization cache with hit/miss
// statistics.
//
// Unlike an LRU, a Memo never evicts: entries live for the process
// lifetime, which is exactly the contract of compiled-pipeline caching —
// identical keys must keep yielding the identical value until shutdown.
package cache

import (
	"sync"
	"sync/atomic"
)

// Memo is a grow-only memoization cache.
//
// Memo is safe for concurrent use. It uses double-check locking so that
// concurrent lookups of a present key never serialize on the write lock.
type Memo[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]V

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewMemo creates an empty memoization cache.
func NewMemo[K comparable, V any]() *Memo[K, V] {
	return &Memo[K, V]{
		entries: make(map[K]V),
	}
}

// Get returns the cached value for key, if present.
func (m *Memo[K, V]) Get(key K) (V, bool) {
	m.mu.RLock()
	v, ok := m.entries[key]
	m.mu.RUnlock()
	if ok {
		m.hits.Add(1)
	} else {
		m.misses.Add(1)
	}
	return v, ok
}

// GetOrCreate returns the cached value for key, computing and storing it
// with create on first use. create runs at most once per key; a create
// that reports ok=false is not stored, so the next lookup retries.
func (m *Memo[K, V]) GetOrCreate(key K, create func() (V, bool)) (V, bool) {
	// Fast path: read lock.
	m.mu.RLock()
	if v, ok := m.entries[key]; ok {
		m.mu.RUnlock()
		m.hits.Add(1)
		return v, true
	}
	m.mu.RUnlock()

	// Slow path: write lock with double-check.
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.entries[key]; ok {
		m.hits.Add(1)
		return v, true
	}

	m.misses.Add(1)
	v, ok := create()
	if !ok {
		var zero V
		return zero, false
	}
	m.entries[key] = v
	return v, true
}

// Len returns the number of cached entries.
func (m *Memo[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Stats contains cache access counters.
type Stats struct {
	// Hits is the number of lookups answered from the cache.
	Hits uint64

	// Misses is the number of lookups that required (or failed) creation.
	Misses uint64
}

// Stats returns a snapshot of the access counters.
func (m *Memo[K, V]) Stats() Stats {
	return Stats{
		Hits:   m.hits.Load(),
		Misses: m.misses.Load(),
	}
}
