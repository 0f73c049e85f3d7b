// Package cache provides a fixed-capacity key/value cache with classic
// Least-Recently-Used eviction.
//
// Design
//
//   - Core: LRU keeps a map from key to a handle into an arena-backed doubly
//     linked list (internal/recency), head = MRU, tail = LRU. The list owns
//     every entry; the map only stores handles. Get, Put, Contains, Peek,
//     Remove and eviction are all O(1), and after warm-up Put and Get do not
//     allocate list nodes.
//
//   - Recency: Get and Put on an existing key move the entry to the head.
//     Contains and Peek never do. Put of a new key into a full cache evicts
//     exactly one entry, the tail.
//
//   - Concurrency: LRU is not safe for concurrent use. Cache (built with New)
//     splits capacity over shards, each one LRU behind one RWMutex, so the map
//     and the list always change together. Shards: 1 keeps strict global LRU
//     order; more shards trade global order for less contention.
//
//   - Configuration errors: a non-positive capacity yields ErrInvalidCapacity.
//     A miss is the false flag of Get, never a sentinel value, so zero and nil
//     values can be stored.
//
//   - GetOrLoad: coalesces concurrent loads for the same key using singleflight.
//     If Loader is nil, GetOrLoad returns ErrNoLoader.
//
//   - Metrics: Options.Metrics receives Hit/Miss/Evict/Size signals.
//     By default NoopMetrics is used; plug metrics/prom to export them.
//
// Basic usage
//
//	c, err := cache.NewLRU[int, string](2)
//	if err != nil {
//	    return err
//	}
//	c.Put(1, "a")
//	c.Put(2, "b")
//	c.Get(1)      // 1 is now MRU
//	c.Put(3, "c") // evicts 2
//
// Concurrent usage
//
//	c, err := cache.New[string, []byte](cache.Options[string, []byte]{Capacity: 10_000})
//	c.Put("a", []byte("1"))
//	if v, ok := c.Get("a"); ok {
//	    _ = v // use value
//	}
//
// With GetOrLoad (singleflight)
//
//	c, _ := cache.New[string, string](cache.Options[string, string]{
//	    Capacity: 1024,
//	    Loader: func(ctx context.Context, k string) (string, error) {
//	        // e.g. fetch from DB
//	        return "v:" + k, nil
//	    },
//	})
//	v, err := c.GetOrLoad(context.Background(), "key")
package cache
