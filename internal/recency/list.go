// Package recency implements an arena-backed doubly linked list that orders
// entries from most-recently-used (front) to least-recently-used (back).
//
// Entries are addressed by Handle, a stable index into the arena, instead of
// pointers. The list owns every entry; callers (the cache index) only keep
// handles. Slots of unlinked entries are recycled through a free list, so once
// the arena has grown to the working set size no operation allocates.
//
// A List is not safe for concurrent use.
package recency

import (
	"fmt"
	"math"
)

// Handle addresses an entry in a List. Handles stay valid until the entry is
// unlinked (Remove/RemoveTail/Reset); after that the slot may be reused.
type Handle int32

// Nil is the "no entry" handle (end of list, empty list).
const Nil Handle = -1

// MaxLen is the largest number of entries a List can address.
const MaxLen = math.MaxInt32

// maxPrealloc bounds the arena reserved up front; beyond it the arena grows
// on demand.
const maxPrealloc = 1 << 16

type entry[K comparable, V any] struct {
	key K
	val V

	prev, next Handle
	linked     bool
}

// List is the recency list. Use New to create one.
type List[K comparable, V any] struct {
	arena []entry[K, V]
	free  []Handle

	head Handle // MRU
	tail Handle // LRU
	len  int
}

// New returns an empty list with room for sizeHint entries, up to maxPrealloc.
func New[K comparable, V any](sizeHint int) *List[K, V] {
	sizeHint = min(max(sizeHint, 0), maxPrealloc)
	return &List[K, V]{
		arena: make([]entry[K, V], 0, sizeHint),
		head:  Nil,
		tail:  Nil,
	}
}

// Len returns the number of linked entries.
func (l *List[K, V]) Len() int { return l.len }

// Front returns the MRU handle or Nil.
func (l *List[K, V]) Front() Handle {
	if l.len == 0 {
		return Nil
	}
	return l.head
}

// Back returns the LRU handle or Nil.
func (l *List[K, V]) Back() Handle {
	if l.len == 0 {
		return Nil
	}
	return l.tail
}

// Next returns the handle following h towards the LRU end, or Nil.
func (l *List[K, V]) Next(h Handle) Handle { return l.at(h).next }

// Key returns the key stored at h.
func (l *List[K, V]) Key(h Handle) K { return l.at(h).key }

// Value returns the value stored at h.
func (l *List[K, V]) Value(h Handle) V { return l.at(h).val }

// SetValue replaces the value stored at h in place. Links are not touched.
func (l *List[K, V]) SetValue(h Handle, v V) { l.at(h).val = v }

// PushFront stores k/v in a fresh slot and links it as the new head.
func (l *List[K, V]) PushFront(k K, v V) Handle {
	h := l.alloc()
	e := &l.arena[h]
	e.key, e.val = k, v
	e.linked = true
	l.linkFront(h)
	l.len++
	return h
}

// MoveToFront relinks an already linked entry at the head.
func (l *List[K, V]) MoveToFront(h Handle) {
	l.at(h)
	if h == l.head {
		return
	}
	l.unlink(h)
	l.linkFront(h)
}

// RemoveTail unlinks the LRU entry and returns its key and value.
// ok is false if the list is empty.
func (l *List[K, V]) RemoveTail() (k K, v V, ok bool) {
	if l.len == 0 {
		return k, v, false
	}
	k, v = l.Remove(l.tail)
	return k, v, true
}

// Remove unlinks the entry at h and returns its key and value.
// The slot is released for reuse.
func (l *List[K, V]) Remove(h Handle) (K, V) {
	e := l.at(h)
	k, v := e.key, e.val
	l.unlink(h)
	l.release(h)
	l.len--
	return k, v
}

// Reset drops every entry. The arena capacity is retained.
func (l *List[K, V]) Reset() {
	clear(l.arena)
	l.arena = l.arena[:0]
	l.free = l.free[:0]
	l.head, l.tail = Nil, Nil
	l.len = 0
}

// ---- internals ----

// at resolves h to its slot; a handle that is not linked is a caller bug.
func (l *List[K, V]) at(h Handle) *entry[K, V] {
	if h < 0 || int(h) >= len(l.arena) || !l.arena[h].linked {
		panic(fmt.Sprintf("recency: handle %d is not linked", h))
	}
	return &l.arena[h]
}

func (l *List[K, V]) alloc() Handle {
	if n := len(l.free); n > 0 {
		h := l.free[n-1]
		l.free = l.free[:n-1]
		return h
	}
	if len(l.arena) >= MaxLen {
		panic("recency: list is full")
	}
	l.arena = append(l.arena, entry[K, V]{})
	return Handle(len(l.arena) - 1)
}

// release zeroes the slot so evicted keys/values are not retained.
func (l *List[K, V]) release(h Handle) {
	l.arena[h] = entry[K, V]{prev: Nil, next: Nil}
	l.free = append(l.free, h)
}

func (l *List[K, V]) linkFront(h Handle) {
	e := &l.arena[h]
	e.prev = Nil
	e.next = l.head
	if l.head != Nil {
		l.arena[l.head].prev = h
	}
	l.head = h
	if l.tail == Nil {
		l.tail = h
	}
}

func (l *List[K, V]) unlink(h Handle) {
	e := &l.arena[h]
	if e.prev != Nil {
		l.arena[e.prev].next = e.next
	} else {
		l.head = e.next
	}
	if e.next != Nil {
		l.arena[e.next].prev = e.prev
	} else {
		l.tail = e.prev
	}
	e.prev, e.next = Nil, Nil
}
