// Package dump renders a cache snapshot for debugging.
//
//	c.Put(1, "a")
//	c.Put(3, "c")
//	dump.Fprint(os.Stdout, c.Cap(), c.Entries())
//
// prints
//
//	Cache state (capacity: 2, size: 2):
//	Most Recent -> Least Recent:
//	(3:c) -> (1:a)
//
// Only the snapshot returned by Entries is read, so dumping never changes
// recency order.
package dump

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/IvanBrykalov/lrucache/cache"
)

// Fprint writes the snapshot to w, MRU first.
func Fprint[K comparable, V any](w io.Writer, capacity int, entries []cache.Entry[K, V]) error {
	bw := bufio.NewWriter(w)
	if len(entries) == 0 {
		fmt.Fprintln(bw, "Cache is empty")
		return bw.Flush()
	}
	fmt.Fprintf(bw, "Cache state (capacity: %d, size: %d):\n", capacity, len(entries))
	fmt.Fprintln(bw, "Most Recent -> Least Recent:")
	for i, e := range entries {
		if i > 0 {
			bw.WriteString(" -> ")
		}
		fmt.Fprintf(bw, "(%v:%v)", e.Key, e.Value)
	}
	bw.WriteString("\n")
	return bw.Flush()
}

// Sprint returns what Fprint would write.
func Sprint[K comparable, V any](capacity int, entries []cache.Entry[K, V]) string {
	var sb strings.Builder
	_ = Fprint(&sb, capacity, entries)
	return sb.String()
}
