package recency

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// keys walks the list MRU -> LRU.
func keys[K comparable, V any](l *List[K, V]) []K {
	var out []K
	for h := l.Front(); h != Nil; h = l.Next(h) {
		out = append(out, l.Key(h))
	}
	return out
}

// backKeys walks the list LRU -> MRU via prev links.
func backKeys[K comparable, V any](l *List[K, V]) []K {
	var out []K
	for h := l.Back(); h != Nil; h = l.arena[h].prev {
		out = append(out, l.Key(h))
	}
	return out
}

func TestList_Empty(t *testing.T) {
	t.Parallel()

	l := New[int, string](0)
	require.Equal(t, 0, l.Len())
	require.Equal(t, Nil, l.Front())
	require.Equal(t, Nil, l.Back())

	_, _, ok := l.RemoveTail()
	require.False(t, ok, "RemoveTail on empty list")
}

func TestList_PushFrontOrder(t *testing.T) {
	t.Parallel()

	l := New[int, string](4)
	h1 := l.PushFront(1, "a")
	l.PushFront(2, "b")
	h3 := l.PushFront(3, "c")

	require.Equal(t, 3, l.Len())
	require.Equal(t, []int{3, 2, 1}, keys(l))
	require.Equal(t, []int{1, 2, 3}, backKeys(l))
	require.Equal(t, h3, l.Front())
	require.Equal(t, h1, l.Back())
	require.Equal(t, "b", l.Value(l.Next(h3)))
}

func TestList_MoveToFront(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		move int // index into handles
		want []int
	}{
		{"tail", 0, []int{1, 3, 2}},
		{"middle", 1, []int{2, 3, 1}},
		{"head", 2, []int{3, 2, 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := New[int, int](3)
			hs := []Handle{l.PushFront(1, 1), l.PushFront(2, 2), l.PushFront(3, 3)}

			l.MoveToFront(hs[tc.move])

			require.Equal(t, tc.want, keys(l))
			require.Equal(t, reverse(tc.want), backKeys(l))
			require.Equal(t, 3, l.Len())
		})
	}
}

func TestList_RemoveTail(t *testing.T) {
	t.Parallel()

	l := New[string, int](2)
	l.PushFront("a", 1)
	l.PushFront("b", 2)

	k, v, ok := l.RemoveTail()
	require.True(t, ok)
	require.Equal(t, "a", k)
	require.Equal(t, 1, v)
	require.Equal(t, []string{"b"}, keys(l))

	k, _, ok = l.RemoveTail()
	require.True(t, ok)
	require.Equal(t, "b", k)
	require.Equal(t, 0, l.Len())
	require.Equal(t, Nil, l.Front())
	require.Equal(t, Nil, l.Back())
}

func TestList_RemoveInterior(t *testing.T) {
	t.Parallel()

	l := New[int, int](3)
	l.PushFront(1, 10)
	h2 := l.PushFront(2, 20)
	l.PushFront(3, 30)

	k, v := l.Remove(h2)
	require.Equal(t, 2, k)
	require.Equal(t, 20, v)
	require.Equal(t, []int{3, 1}, keys(l))
	require.Equal(t, []int{1, 3}, backKeys(l))
}

// Released slots are reused, so the arena does not grow past the peak size.
func TestList_SlotReuse(t *testing.T) {
	t.Parallel()

	l := New[int, int](2)
	l.PushFront(1, 1)
	l.PushFront(2, 2)
	for i := 3; i < 100; i++ {
		l.RemoveTail()
		l.PushFront(i, i)
	}
	require.Len(t, l.arena, 2)
	require.Equal(t, []int{99, 98}, keys(l))
}

func TestList_SetValue(t *testing.T) {
	t.Parallel()

	l := New[string, string](1)
	h := l.PushFront("k", "old")
	l.SetValue(h, "new")
	require.Equal(t, "new", l.Value(h))
	require.Equal(t, h, l.Front())
}

func TestList_Reset(t *testing.T) {
	t.Parallel()

	l := New[int, *int](2)
	x := 1
	l.PushFront(1, &x)
	l.PushFront(2, &x)
	l.Reset()

	require.Equal(t, 0, l.Len())
	require.Empty(t, keys(l))
	l.PushFront(3, nil)
	require.Equal(t, []int{3}, keys(l))
}

func TestList_StaleHandlePanics(t *testing.T) {
	t.Parallel()

	l := New[int, int](1)
	h := l.PushFront(1, 1)
	l.Remove(h)

	require.Panics(t, func() { l.MoveToFront(h) })
	require.Panics(t, func() { l.Remove(h) })
	require.Panics(t, func() { l.Value(Handle(42)) })
	require.Panics(t, func() { l.Key(Nil) })
}

// A huge size hint reserves a bounded arena that still grows on demand.
func TestList_SizeHintBounded(t *testing.T) {
	t.Parallel()

	l := New[int, int](MaxLen)
	require.Equal(t, maxPrealloc, cap(l.arena))

	small := New[int, int](-3)
	require.Equal(t, 0, cap(small.arena))
	for i := 0; i < 3; i++ {
		small.PushFront(i, i)
	}
	require.Equal(t, []int{2, 1, 0}, keys(small))
}

func reverse(in []int) []int {
	out := make([]int, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}
