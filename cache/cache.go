package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/IvanBrykalov/lrucache/internal/singleflight"
	"github.com/IvanBrykalov/lrucache/internal/util"
)

// cache is a sharded in-memory LRU store.
// All methods are safe for concurrent use by multiple goroutines.
type cache[K comparable, V any] struct {
	shards []*shard[K, V]
	hash   func(K) uint64
	cap    int
	closed atomic.Bool

	opt *Options[K, V]

	// singleflight group for coalescing concurrent loads in GetOrLoad.
	sf singleflight.Group[K, V]
}

// New constructs a cache with the provided Options.
// Defaults:
//   - nil Metrics  -> NoopMetrics
//   - nil Logger   -> discard
//   - Shards <= 0  -> auto, rounded up to the next power of two
//
// Capacity <= 0 yields ErrInvalidCapacity.
func New[K comparable, V any](opt Options[K, V]) (Cache[K, V], error) {
	if opt.Capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, opt.Capacity)
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	if opt.Logger == nil {
		opt.Logger = slog.New(slog.DiscardHandler)
	}

	sh := shardCount(opt.Shards, opt.Capacity)
	caps := splitCapacity(opt.Capacity, sh)

	c := &cache[K, V]{
		shards: make([]*shard[K, V], sh),
		hash:   util.Hash[K],
		cap:    opt.Capacity,
		opt:    &opt,
	}
	for i := range c.shards {
		s, err := newShard[K, V](caps[i], c.opt)
		if err != nil {
			return nil, err
		}
		c.shards[i] = s
	}
	opt.Logger.Debug("cache: created", "capacity", opt.Capacity, "shards", sh)
	return c, nil
}

// shardCount rounds the requested count up to a power of two, then halves it
// until every shard can hold at least one entry.
func shardCount(requested, capacity int) int {
	sh := requested
	if sh <= 0 {
		sh = util.ReasonableShardCount()
	} else {
		sh = int(util.NextPow2(uint64(sh)))
	}
	for sh > 1 && sh > capacity {
		sh >>= 1
	}
	return sh
}

// splitCapacity divides capacity over n shards so the parts sum to capacity
// exactly; the first capacity%n shards take one extra entry.
func splitCapacity(capacity, n int) []int {
	caps := make([]int, n)
	base, rem := capacity/n, capacity%n
	for i := range caps {
		caps[i] = base
		if i < rem {
			caps[i]++
		}
	}
	return caps
}

// ---- Cache[K,V] implementation ----

func (c *cache[K, V]) Get(k K) (V, bool) {
	if c.closed.Load() {
		var zero V
		return zero, false
	}
	return c.getShard(k).Get(k)
}

func (c *cache[K, V]) Put(k K, v V) {
	if c.closed.Load() {
		return
	}
	c.getShard(k).Put(k, v)
}

func (c *cache[K, V]) Contains(k K) bool {
	if c.closed.Load() {
		return false
	}
	return c.getShard(k).Contains(k)
}

func (c *cache[K, V]) Peek(k K) (V, bool) {
	if c.closed.Load() {
		var zero V
		return zero, false
	}
	return c.getShard(k).Peek(k)
}

func (c *cache[K, V]) Remove(k K) bool {
	if c.closed.Load() {
		return false
	}
	return c.getShard(k).Remove(k)
}

func (c *cache[K, V]) Len() int {
	total := 0
	for _, s := range c.shards {
		total += s.Len()
	}
	return total
}

func (c *cache[K, V]) Cap() int { return c.cap }

func (c *cache[K, V]) Entries() []Entry[K, V] {
	out := make([]Entry[K, V], 0, c.Len())
	for _, s := range c.shards {
		out = s.appendEntries(out)
	}
	return out
}

func (c *cache[K, V]) Purge() {
	for _, s := range c.shards {
		s.Purge()
	}
}

func (c *cache[K, V]) Stats() Stats {
	st := Stats{Cap: c.cap}
	for _, s := range c.shards {
		st.Hits += s.hits.Load()
		st.Misses += s.misses.Load()
		st.Evictions += s.evicts.Load()
		st.Len += s.Len()
	}
	return st
}

// Close marks the cache as closed. Future operations are ignored.
func (c *cache[K, V]) Close() error {
	if !c.closed.Swap(true) {
		c.opt.Logger.Debug("cache: closed", "len", c.Len())
	}
	return nil
}

// GetOrLoad returns the value for k; on miss it loads via Options.Loader,
// coalescing concurrent loads for the same key (singleflight).
func (c *cache[K, V]) GetOrLoad(ctx context.Context, k K) (V, error) {
	var zero V
	if c.closed.Load() {
		return zero, ErrClosed
	}
	// fast path
	if v, ok := c.Get(k); ok {
		return v, nil
	}
	if c.opt.Loader == nil {
		return zero, ErrNoLoader
	}

	v, err, _ := c.sf.Do(ctx, k, func() (V, error) {
		// double-check after flight join; Peek so the lookup is not counted twice
		if v, ok := c.Peek(k); ok {
			return v, nil
		}
		v, err := c.opt.Loader(ctx, k)
		if err == nil {
			c.Put(k, v)
		}
		return v, err
	})
	return v, err
}

// getShard picks a shard by hashing the key. A single shard needs no hash.
func (c *cache[K, V]) getShard(k K) *shard[K, V] {
	if len(c.shards) == 1 {
		return c.shards[0]
	}
	return c.shards[util.ShardIndex(c.hash(k), len(c.shards))]
}
