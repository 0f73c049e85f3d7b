// Package singleflight coalesces concurrent loads of the same cache key.
package singleflight

import (
	"context"
	"fmt"
	"sync"
)

// Group runs at most one fn per key at a time. Callers arriving while a load
// is in flight wait for its result instead of starting their own.
//
// The first caller for a key is the leader and runs fn on its own goroutine,
// synchronously inside Do.
// Followers wait on flight.done; val/err are written before done is closed.
// A follower whose ctx ends returns ctx.Err() and leaves the leader running.
type Group[K comparable, V any] struct {
	mu      sync.Mutex
	flights map[K]*flight[V]
}

type flight[V any] struct {
	done chan struct{}
	val  V
	err  error
	dups int
}

// Do runs fn once for key. shared reports whether the result was handed to
// more than one caller. A panic in fn is turned into an error for every
// waiting caller.
func (g *Group[K, V]) Do(ctx context.Context, key K, fn func() (V, error)) (v V, err error, shared bool) {
	g.mu.Lock()
	if g.flights == nil {
		g.flights = make(map[K]*flight[V])
	}
	if f, ok := g.flights[key]; ok {
		f.dups++
		g.mu.Unlock()

		select {
		case <-f.done:
			return f.val, f.err, true
		case <-ctx.Done():
			var zero V
			return zero, ctx.Err(), false
		}
	}

	f := &flight[V]{done: make(chan struct{})}
	g.flights[key] = f
	g.mu.Unlock()

	g.run(key, f, fn)
	return f.val, f.err, f.dups > 0
}

// InFlight reports how many keys are currently being loaded.
func (g *Group[K, V]) InFlight() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.flights)
}

func (g *Group[K, V]) run(key K, f *flight[V], fn func() (V, error)) {
	defer func() {
		if r := recover(); r != nil {
			f.err = fmt.Errorf("singleflight: load panicked: %v", r)
		}
		g.mu.Lock()
		delete(g.flights, key)
		g.mu.Unlock()
		close(f.done)
	}()
	f.val, f.err = fn()
}
