package dump

import (
	"testing"

	"github.com/IvanBrykalov/lrucache/cache"
	"github.com/stretchr/testify/require"
)

func TestSprint_Empty(t *testing.T) {
	t.Parallel()

	c, err := cache.NewLRU[int, string](2)
	require.NoError(t, err)
	require.Equal(t, "Cache is empty\n", Sprint(c.Cap(), c.Entries()))
}

// The scenario from the LRU contract: 2 is evicted, 1 was promoted by Get.
func TestSprint_AfterPromotion(t *testing.T) {
	t.Parallel()

	c, err := cache.NewLRU[int, string](2)
	require.NoError(t, err)
	c.Put(1, "a")
	c.Put(2, "b")
	c.Get(1)
	c.Put(3, "c")

	want := "Cache state (capacity: 2, size: 2):\n" +
		"Most Recent -> Least Recent:\n" +
		"(3:c) -> (1:a)\n"
	require.Equal(t, want, Sprint(c.Cap(), c.Entries()))
}

// Dumping must not promote anything.
func TestSprint_DoesNotMutate(t *testing.T) {
	t.Parallel()

	c, err := cache.NewLRU[string, int](2)
	require.NoError(t, err)
	c.Put("x", 1)
	c.Put("y", 2)

	before := c.Keys()
	for i := 0; i < 3; i++ {
		_ = Sprint(c.Cap(), c.Entries())
	}
	require.Equal(t, before, c.Keys())

	c.Put("z", 3)
	require.False(t, c.Contains("x"), "x must still be the LRU victim")
}
