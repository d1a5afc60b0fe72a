package cache

import "sync"

// Synced serializes access to an IndexedLRUCache with a single mutex.
// Get reorders the recency list, so reads take the same lock as writes.
// Release callbacks run while the lock is held and must not call back
// into the same Synced.
type Synced[V any] struct {
	mu    sync.Mutex
	cache *IndexedLRUCache[V]
}

// NewSynced creates a goroutine-safe cache holding at most capacity entries
func NewSynced[V any](capacity int, opts ...Option[V]) (*Synced[V], error) {
	c, err := NewIndexedLRUCache(capacity, opts...)
	if err != nil {
		return nil, err
	}
	return &Synced[V]{cache: c}, nil
}

func (s *Synced[V]) Put(key string, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Put(key, value)
}

func (s *Synced[V]) Get(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Get(key)
}

func (s *Synced[V]) Invalidate(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Invalidate(key)
}

func (s *Synced[V]) InvalidateByPrefix(prefix string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.InvalidateByPrefix(prefix)
}

func (s *Synced[V]) InvalidateAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.InvalidateAll()
}

func (s *Synced[V]) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Keys()
}

func (s *Synced[V]) LRUValues() []V {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.LRUValues()
}

func (s *Synced[V]) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Size()
}

// Capacity is fixed at construction and needs no lock
func (s *Synced[V]) Capacity() int {
	return s.cache.Capacity()
}
