package prom

import (
	"strings"
	"testing"

	"github.com/IvanBrykalov/lrucache/cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestAdapter_WiredIntoCache(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	m := New(reg, "lru", "test", prometheus.Labels{"app": "t"})

	c, err := cache.New[int, string](cache.Options[int, string]{
		Capacity: 2,
		Shards:   1,
		Metrics:  m,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	c.Put(1, "a")
	c.Put(2, "b")
	c.Get(1)      // hit
	c.Get(42)     // miss
	c.Put(3, "c") // evicts 2
	c.Purge()     // evicts 1 and 3

	require.Equal(t, 1.0, testutil.ToFloat64(m.hits))
	require.Equal(t, 1.0, testutil.ToFloat64(m.misses))
	require.Equal(t, 1.0, testutil.ToFloat64(m.evicts.WithLabelValues("capacity")))
	require.Equal(t, 2.0, testutil.ToFloat64(m.evicts.WithLabelValues("purge")))
	require.Equal(t, 0.0, testutil.ToFloat64(m.sizeEnt))
}

func TestCollector(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()

	c, err := cache.New[int, int](cache.Options[int, int]{Capacity: 64, Shards: 4})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	for i := 0; i < 5; i++ {
		c.Put(i, i)
	}

	reg.MustRegister(NewCollector(c, "lru", "test", nil))

	want := `
# HELP lru_test_capacity_entries Configured capacity
# TYPE lru_test_capacity_entries gauge
lru_test_capacity_entries 64
# HELP lru_test_size_entries Number of resident entries
# TYPE lru_test_size_entries gauge
lru_test_size_entries 5
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(want)))
}
