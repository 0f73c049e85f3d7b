package cache

import (
	"context"
	"log/slog"
)

// EvictReason explains why the cache dropped an entry on its own.
type EvictReason int

const (
	// EvictCapacity: the entry was the LRU when a new key overflowed capacity.
	EvictCapacity EvictReason = iota
	// EvictPurge: the entry was dropped by Purge.
	EvictPurge
)

// String returns a stable lower-case label.
func (r EvictReason) String() string {
	switch r {
	case EvictCapacity:
		return "capacity"
	case EvictPurge:
		return "purge"
	default:
		return "unknown"
	}
}

// Metrics exposes cache-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
type Metrics interface {
	Hit()
	Miss()
	Evict(reason EvictReason)
	Size(entries int)
}

// Options configures New. Zero values are safe except Capacity;
// defaults are applied in New():
//   - Shards <= 0  => auto (rounded up to power of two)
//   - nil Metrics  => NoopMetrics
//   - nil Logger   => discard
type Options[K comparable, V any] struct {
	// Capacity is the total entry limit. Must be > 0.
	Capacity int

	// Shards is the number of independently locked partitions. It is rounded
	// up to a power of two and then lowered until every shard can hold at least
	// one entry. Use 1 for strict global LRU order.
	Shards int

	// Loader fetches a value on cache miss. Used by GetOrLoad.
	Loader func(ctx context.Context, k K) (V, error)

	// OnEvict is called under the shard lock; keep callbacks lightweight and
	// do not call back into the cache.
	OnEvict func(k K, v V, reason EvictReason)
	Metrics Metrics

	// Logger receives debug records (construction, evictions).
	Logger *slog.Logger
}
