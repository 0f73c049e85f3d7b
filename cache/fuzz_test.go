package cache

import (
	"strings"
	"testing"
)

// Fuzz basic Put/Get/Contains/Remove semantics under arbitrary string inputs.
// Guards against panics and ensures core invariants hold.
func FuzzCache_PutGetRemove(f *testing.F) {
	// Seed corpus: empty, ASCII, Unicode, long strings.
	f.Add("", "", "x")
	f.Add("a", "1", "b")
	f.Add("αβγ", "δ", "αβγ")
	f.Add("emoji🙂", "🙂🙂", "")
	f.Add("long", strings.Repeat("x", 1024), "other")

	f.Fuzz(func(t *testing.T, k, v, k2 string) {
		// Cap lengths to keep memory bounded during fuzzing.
		const limit = 1 << 12
		if len(k) > limit {
			k = k[:limit]
		}
		if len(v) > limit {
			v = v[:limit]
		}

		c, err := New[string, string](Options[string, string]{Capacity: 1, Shards: 1})
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { _ = c.Close() })

		// Put -> Get must return the same value.
		c.Put(k, v)
		got, ok := c.Get(k)
		if !ok || got != v {
			t.Fatalf("after Put/Get: want %q, got %q ok=%v", v, got, ok)
		}

		// With capacity 1 a second distinct key evicts the first.
		c.Put(k2, "other")
		if c.Len() != 1 {
			t.Fatalf("Len want 1, got %d", c.Len())
		}
		if k2 != k && c.Contains(k) {
			t.Fatalf("%q must be evicted by %q", k, k2)
		}

		// Remove must delete and return true once.
		if !c.Remove(k2) {
			t.Fatalf("Remove must return true")
		}
		if c.Contains(k2) || c.Len() != 0 {
			t.Fatalf("key must be absent after Remove")
		}
	})
}
