package cache

import (
	"context"
	"log/slog"
	"sync"

	"github.com/IvanBrykalov/lrucache/internal/util"
)

// shard is an independent partition of the cache: one LRU guarded by one lock.
// The map and the recency list inside the LRU always change together under mu.
//
// Get promotes entries, so it needs the write lock. Only operations that leave
// the recency order alone (Contains, Peek, Len, Entries) use the read lock.
type shard[K comparable, V any] struct {
	mu  sync.RWMutex
	lru *LRU[K, V] // guarded by mu

	opt *Options[K, V]

	// ---- hot counters (separate cache lines to avoid false sharing) ----
	_      util.CacheLinePad
	hits   util.PaddedAtomicUint64
	misses util.PaddedAtomicUint64
	evicts util.PaddedAtomicUint64
}

// newShard builds a shard holding at most capacity entries.
func newShard[K comparable, V any](capacity int, opt *Options[K, V]) (*shard[K, V], error) {
	s := &shard[K, V]{opt: opt}
	lru, err := NewLRUWithEvict[K, V](capacity, s.onEvict)
	if err != nil {
		return nil, err
	}
	s.lru = lru
	return s, nil
}

func (s *shard[K, V]) Get(k K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.lru.Get(k)
	if !ok {
		s.misses.Add(1)
		s.opt.Metrics.Miss()
		return v, false
	}
	s.hits.Add(1)
	s.opt.Metrics.Hit()
	return v, true
}

func (s *shard[K, V]) Put(k K, v V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lru.Put(k, v)
	s.opt.Metrics.Size(s.lru.Len())
}

func (s *shard[K, V]) Remove(k K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Explicit Remove is not counted as an eviction.
	ok := s.lru.Remove(k)
	if ok {
		s.opt.Metrics.Size(s.lru.Len())
	}
	return ok
}

func (s *shard[K, V]) Purge() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lru.Purge()
	s.opt.Metrics.Size(0)
}

func (s *shard[K, V]) Contains(k K) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lru.Contains(k)
}

func (s *shard[K, V]) Peek(k K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lru.Peek(k)
}

func (s *shard[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lru.Len()
}

// appendEntries appends this shard's entries, MRU first, to dst.
func (s *shard[K, V]) appendEntries(dst []Entry[K, V]) []Entry[K, V] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.lru.Walk(func(k K, v V) bool {
		dst = append(dst, Entry[K, V]{Key: k, Value: v})
		return true
	})
	return dst
}

// onEvict runs inside LRU.Put/Purge with mu held.
func (s *shard[K, V]) onEvict(k K, v V, reason EvictReason) {
	s.evicts.Add(1)
	s.opt.Metrics.Evict(reason)
	if s.opt.Logger.Enabled(context.Background(), slog.LevelDebug) {
		s.opt.Logger.Debug("cache: evicted", slog.Any("key", k), slog.String("reason", reason.String()))
	}
	if cb := s.opt.OnEvict; cb != nil {
		cb(k, v, reason)
	}
}
