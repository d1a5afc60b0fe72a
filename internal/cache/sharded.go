package cache

import (
	"github.com/twmb/murmur3"

	"lrucache/pkg/errors"
)

// Sharded spreads keys over several Synced caches by murmur3 hash so that
// goroutines touching different keys rarely contend on the same lock.
//
// Recency is tracked per shard: eviction picks the least recently used
// entry of the shard receiving the new key, not of the whole cache.
type Sharded[V any] struct {
	shards   []*Synced[V]
	capacity int
}

// NewSharded creates a cache of the given total capacity split across
// shardCount shards. Shard capacities sum to capacity exactly; if there are
// more shards than capacity the shard count is reduced to capacity.
func NewSharded[V any](capacity, shardCount int, opts ...Option[V]) (*Sharded[V], error) {
	if capacity < 1 {
		return nil, errors.ErrInvalidCapacity
	}
	if shardCount < 1 {
		return nil, errors.ErrInvalidShardCount
	}
	if shardCount > capacity {
		shardCount = capacity
	}

	s := &Sharded[V]{
		shards:   make([]*Synced[V], shardCount),
		capacity: capacity,
	}
	base, extra := capacity/shardCount, capacity%shardCount
	for i := range s.shards {
		shardCap := base
		if i < extra {
			shardCap++
		}
		shard, err := NewSynced(shardCap, opts...)
		if err != nil {
			return nil, err
		}
		s.shards[i] = shard
	}
	return s, nil
}

// ShardCount returns the number of shards actually in use
func (s *Sharded[V]) ShardCount() int {
	return len(s.shards)
}

func (s *Sharded[V]) shardFor(key string) *Synced[V] {
	return s.shards[murmur3.StringSum32(key)%uint32(len(s.shards))]
}

func (s *Sharded[V]) Put(key string, value V) {
	s.shardFor(key).Put(key, value)
}

func (s *Sharded[V]) Get(key string) (V, bool) {
	return s.shardFor(key).Get(key)
}

func (s *Sharded[V]) Invalidate(key string) int {
	return s.shardFor(key).Invalidate(key)
}

func (s *Sharded[V]) InvalidateByPrefix(prefix string) int {
	removed := 0
	for _, shard := range s.shards {
		removed += shard.InvalidateByPrefix(prefix)
	}
	return removed
}

func (s *Sharded[V]) InvalidateAll() int {
	removed := 0
	for _, shard := range s.shards {
		removed += shard.InvalidateAll()
	}
	return removed
}

func (s *Sharded[V]) Keys() []string {
	keys := make([]string, 0)
	for _, shard := range s.shards {
		keys = append(keys, shard.Keys()...)
	}
	return keys
}

// LRUValues concatenates each shard's most-to-least recently used values
// in shard order. There is no ordering between values of different shards.
func (s *Sharded[V]) LRUValues() []V {
	values := make([]V, 0)
	for _, shard := range s.shards {
		values = append(values, shard.LRUValues()...)
	}
	return values
}

// Size sums the shard sizes. Shards are locked one at a time, so the total
// is not an atomic snapshot under concurrent writes.
func (s *Sharded[V]) Size() int {
	size := 0
	for _, shard := range s.shards {
		size += shard.Size()
	}
	return size
}

func (s *Sharded[V]) Capacity() int {
	return s.capacity
}
