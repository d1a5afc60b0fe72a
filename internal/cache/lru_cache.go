package cache

import (
	"strings"
	"time"

	"code.cloudfoundry.org/clock"

	"lrucache/pkg/errors"
)

// ReleaseFunc is notified with the value of every entry that leaves the
// cache, whether by eviction, overwrite or invalidation.
type ReleaseFunc[V any] func(value V)

// Option configures an IndexedLRUCache at construction
type Option[V any] func(*IndexedLRUCache[V])

// WithRelease sets the callback invoked for each removed value
func WithRelease[V any](fn func(value V)) Option[V] {
	return func(c *IndexedLRUCache[V]) {
		c.release = fn
	}
}

// WithClock sets the time source used for entry access timestamps
func WithClock[V any](clk clock.Clock) Option[V] {
	return func(c *IndexedLRUCache[V]) {
		c.clock = clk
	}
}

// IndexedLRUCache is a fixed-capacity cache keyed by string. A map indexes
// the entries and an intrusive doubly linked list orders them from most
// recently used (head) to least recently used (tail).
//
// IndexedLRUCache is not safe for concurrent use. Callers that share a cache
// between goroutines must serialize access themselves, see Synced.
//
// The release callback runs synchronously on the calling goroutine after the
// entry has been unlinked and unindexed. A panic in the callback propagates
// to the caller with the cache in a consistent state; when that happens during
// Put, the new entry is not inserted.
type IndexedLRUCache[V any] struct {
	capacity int
	index    map[string]*entry[V]
	head     *entry[V]
	tail     *entry[V]

	release ReleaseFunc[V]
	clock   clock.Clock
}

// NewIndexedLRUCache creates a cache holding at most capacity entries
func NewIndexedLRUCache[V any](capacity int, opts ...Option[V]) (*IndexedLRUCache[V], error) {
	if capacity < 1 {
		return nil, errors.ErrInvalidCapacity
	}
	c := &IndexedLRUCache[V]{
		capacity: capacity,
		index:    make(map[string]*entry[V]),
		clock:    clock.NewClock(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Size returns the number of cached entries
func (c *IndexedLRUCache[V]) Size() int {
	return len(c.index)
}

// Capacity returns the maximum number of entries
func (c *IndexedLRUCache[V]) Capacity() int {
	return c.capacity
}

// Put stores value under key as the most recently used entry.
//
// An existing entry for key is removed and released first. Only then is the
// capacity checked, so overwriting a key never evicts a different one.
func (c *IndexedLRUCache[V]) Put(key string, value V) {
	if old, ok := c.index[key]; ok {
		c.remove(old)
	}
	if len(c.index) >= c.capacity {
		c.remove(c.tail)
	}
	e := newEntry(key, value, c.clock.Now())
	c.index[key] = e
	c.linkAtHead(e)
}

// Get returns the value for key and marks it most recently used
func (c *IndexedLRUCache[V]) Get(key string) (V, bool) {
	e, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.unlink(e)
	c.linkAtHead(e)
	return e.touch(c.clock.Now()), true
}

// Contains reports whether key is cached without changing its recency
func (c *IndexedLRUCache[V]) Contains(key string) bool {
	_, ok := c.index[key]
	return ok
}

// LastAccess returns when key was last stored or read, without touching it
func (c *IndexedLRUCache[V]) LastAccess(key string) (time.Time, bool) {
	e, ok := c.index[key]
	if !ok {
		return time.Time{}, false
	}
	return e.lastAccess, true
}

// Keys returns a snapshot of the cached keys in no particular order
func (c *IndexedLRUCache[V]) Keys() []string {
	keys := make([]string, 0, len(c.index))
	for k := range c.index {
		keys = append(keys, k)
	}
	return keys
}

// LRUValues returns a snapshot of the values from most to least recently used
func (c *IndexedLRUCache[V]) LRUValues() []V {
	values := make([]V, 0, len(c.index))
	for e := c.head; e != nil; e = e.next {
		values = append(values, e.value)
	}
	return values
}

// Invalidate removes key and returns 1, or 0 if it was not cached
func (c *IndexedLRUCache[V]) Invalidate(key string) int {
	e, ok := c.index[key]
	if !ok {
		return 0
	}
	c.remove(e)
	return 1
}

// InvalidateByPrefix removes every key starting with prefix and returns
// how many were removed. The match is a plain case-sensitive byte prefix.
func (c *IndexedLRUCache[V]) InvalidateByPrefix(prefix string) int {
	// Collect matches before removing any; callbacks run between removals.
	var matched []string
	for k := range c.index {
		if strings.HasPrefix(k, prefix) {
			matched = append(matched, k)
		}
	}
	removed := 0
	for _, k := range matched {
		removed += c.Invalidate(k)
	}
	return removed
}

// InvalidateAll empties the cache, releasing entries from least to most
// recently used, and returns how many were removed.
func (c *IndexedLRUCache[V]) InvalidateAll() int {
	removed := 0
	for c.tail != nil {
		c.remove(c.tail)
		removed++
	}
	return removed
}

// remove unindexes and unlinks e, then hands its value to the release callback
func (c *IndexedLRUCache[V]) remove(e *entry[V]) {
	delete(c.index, e.key)
	c.unlink(e)
	value := e.value
	e.release()
	if c.release != nil {
		c.release(value)
	}
}

// unlink detaches e from the list, repairing head and tail
func (c *IndexedLRUCache[V]) unlink(e *entry[V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
	e.prev = nil
	e.next = nil
}

// linkAtHead makes e the most recently used entry
func (c *IndexedLRUCache[V]) linkAtHead(e *entry[V]) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	} else {
		c.tail = e
	}
	c.head = e
}
