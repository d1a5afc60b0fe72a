package cache

import "time"

// entry is a node of the recency list. prev points toward the head (more
// recently used), next toward the tail. The owning cache keeps the links
// consistent; entry itself never validates them.
type entry[V any] struct {
	key        string
	value      V
	lastAccess time.Time

	prev *entry[V]
	next *entry[V]
}

func newEntry[V any](key string, value V, now time.Time) *entry[V] {
	return &entry[V]{
		key:        key,
		value:      value,
		lastAccess: now,
	}
}

// touch stamps the access time and returns the value
func (e *entry[V]) touch(now time.Time) V {
	e.lastAccess = now
	return e.value
}

// release drops the value so the entry no longer retains it.
// The entry must not be used afterwards.
func (e *entry[V]) release() {
	var zero V
	e.value = zero
	e.prev = nil
	e.next = nil
}
