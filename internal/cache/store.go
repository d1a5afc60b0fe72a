package cache

// Store is the put/get/invalidate surface shared by the cache and its
// wrappers. Collaborators such as the admin server depend on it rather than
// on a concrete cache.
type Store[V any] interface {
	Put(key string, value V)
	Get(key string) (V, bool)
	Invalidate(key string) int
	InvalidateByPrefix(prefix string) int
	InvalidateAll() int
	Keys() []string
	LRUValues() []V
	Size() int
	Capacity() int
}

var (
	_ Store[any] = (*IndexedLRUCache[any])(nil)
	_ Store[any] = (*Synced[any])(nil)
	_ Store[any] = (*Sharded[any])(nil)
)
