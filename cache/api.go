package cache

import "context"

// Cache is a sharded, in-memory LRU key/value cache interface.
// All methods are safe for concurrent use by multiple goroutines.
//
// Every operation is O(1): a map lookup plus constant-time list
// adjustments under a shard lock.
type Cache[K comparable, V any] interface {
	// Get returns the value for k and a boolean flag indicating presence.
	// On hit, the entry becomes the most recently used of its shard.
	Get(k K) (V, bool)

	// Put inserts or updates k→v and promotes the entry. Inserting a new key
	// into a full shard evicts that shard's least recently used entry.
	Put(k K, v V)

	// Contains reports whether k is resident. It never changes recency.
	Contains(k K) bool

	// Peek returns the value for k without changing recency.
	Peek(k K) (V, bool)

	// Remove deletes k if present and returns true on success.
	Remove(k K) bool

	// Len returns the total number of resident entries across all shards.
	Len() int

	// Cap returns the configured total capacity.
	Cap() int

	// Entries returns a read-only snapshot ordered MRU→LRU within each shard,
	// shards concatenated in index order. With one shard this is the exact
	// global recency order.
	Entries() []Entry[K, V]

	// Purge drops every entry (reported to OnEvict with EvictPurge).
	Purge()

	// Stats returns hit/miss/eviction counters and the current size.
	Stats() Stats

	// GetOrLoad returns the value for k, loading it via Options.Loader on miss.
	// Concurrent loads for the same key are coalesced (singleflight).
	// If no Loader was configured, returns ErrNoLoader.
	GetOrLoad(ctx context.Context, k K) (V, error)

	// Close marks the cache closed: later calls become no-ops or misses and
	// GetOrLoad returns ErrClosed. It always returns nil.
	Close() error
}
