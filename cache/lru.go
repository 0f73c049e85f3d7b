package cache

import (
	"fmt"

	"github.com/IvanBrykalov/lrucache/internal/recency"
)

// mapPrealloc bounds the index size reserved at construction.
const mapPrealloc = 1 << 16

// Entry is a key/value pair as reported by Entries.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// EvictCallback is invoked for every entry the cache drops on its own
// (capacity overflow or Purge). It runs synchronously inside the mutating call.
type EvictCallback[K comparable, V any] func(k K, v V, reason EvictReason)

// LRU is a fixed-capacity least-recently-used cache: a map from key to a
// handle into a recency list (head = MRU, tail = LRU).
//
// Get and Put on an existing key promote the entry to MRU. Put of a new key
// into a full cache evicts exactly one entry, the current LRU.
// Contains and Peek never change the recency order.
//
// LRU is not safe for concurrent use; see Cache for the locked, sharded variant.
type LRU[K comparable, V any] struct {
	index   map[K]recency.Handle
	list    *recency.List[K, V]
	cap     int
	onEvict EvictCallback[K, V]
}

// NewLRU returns an empty cache holding at most capacity entries.
// A capacity outside [1, recency.MaxLen] yields ErrInvalidCapacity.
func NewLRU[K comparable, V any](capacity int) (*LRU[K, V], error) {
	return NewLRUWithEvict[K, V](capacity, nil)
}

// NewLRUWithEvict is like NewLRU and registers onEvict (may be nil).
func NewLRUWithEvict[K comparable, V any](capacity int, onEvict EvictCallback[K, V]) (*LRU[K, V], error) {
	if capacity <= 0 || capacity > recency.MaxLen {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	return &LRU[K, V]{
		index:   make(map[K]recency.Handle, min(capacity, mapPrealloc)),
		list:    recency.New[K, V](capacity),
		cap:     capacity,
		onEvict: onEvict,
	}, nil
}

// Get returns the value for k and promotes it to MRU.
// A miss returns the zero value and false and changes nothing.
func (c *LRU[K, V]) Get(k K) (V, bool) {
	h, ok := c.index[k]
	if !ok {
		var zero V
		return zero, false
	}
	c.list.MoveToFront(h)
	return c.list.Value(h), true
}

// Put inserts or updates k. Either way k becomes MRU.
func (c *LRU[K, V]) Put(k K, v V) {
	if h, ok := c.index[k]; ok {
		c.list.SetValue(h, v)
		c.list.MoveToFront(h)
		return
	}
	c.index[k] = c.list.PushFront(k, v)
	if c.list.Len() > c.cap {
		c.evictOldest(EvictCapacity)
	}
}

// Contains reports whether k is resident without touching recency.
func (c *LRU[K, V]) Contains(k K) bool {
	_, ok := c.index[k]
	return ok
}

// Peek returns the value for k without touching recency.
func (c *LRU[K, V]) Peek(k K) (V, bool) {
	h, ok := c.index[k]
	if !ok {
		var zero V
		return zero, false
	}
	return c.list.Value(h), true
}

// Remove deletes k and reports whether it was present.
// Removal is not an eviction; the evict callback is not called.
func (c *LRU[K, V]) Remove(k K) bool {
	h, ok := c.index[k]
	if !ok {
		return false
	}
	c.list.Remove(h)
	delete(c.index, k)
	return true
}

// Oldest returns the LRU entry without touching recency.
func (c *LRU[K, V]) Oldest() (k K, v V, ok bool) {
	h := c.list.Back()
	if h == recency.Nil {
		return k, v, false
	}
	return c.list.Key(h), c.list.Value(h), true
}

// Len returns the number of resident entries.
func (c *LRU[K, V]) Len() int { return c.list.Len() }

// Cap returns the fixed capacity.
func (c *LRU[K, V]) Cap() int { return c.cap }

// Walk calls fn for every entry from MRU to LRU until fn returns false.
// fn must not mutate the cache.
func (c *LRU[K, V]) Walk(fn func(k K, v V) bool) {
	for h := c.list.Front(); h != recency.Nil; h = c.list.Next(h) {
		if !fn(c.list.Key(h), c.list.Value(h)) {
			return
		}
	}
}

// Entries returns a snapshot of the resident entries ordered MRU -> LRU.
func (c *LRU[K, V]) Entries() []Entry[K, V] {
	out := make([]Entry[K, V], 0, c.list.Len())
	c.Walk(func(k K, v V) bool {
		out = append(out, Entry[K, V]{Key: k, Value: v})
		return true
	})
	return out
}

// Keys returns the resident keys ordered MRU -> LRU.
func (c *LRU[K, V]) Keys() []K {
	out := make([]K, 0, c.list.Len())
	c.Walk(func(k K, _ V) bool {
		out = append(out, k)
		return true
	})
	return out
}

// Purge drops every entry, reporting each to the evict callback with
// EvictPurge (LRU first).
func (c *LRU[K, V]) Purge() {
	if c.onEvict != nil {
		for c.list.Len() > 0 {
			c.evictOldest(EvictPurge)
		}
		return
	}
	c.list.Reset()
	clear(c.index)
}

// evictOldest drops the tail entry and its index slot.
func (c *LRU[K, V]) evictOldest(reason EvictReason) {
	k, v, ok := c.list.RemoveTail()
	if !ok {
		return
	}
	delete(c.index, k)
	if c.onEvict != nil {
		c.onEvict(k, v, reason)
	}
}
