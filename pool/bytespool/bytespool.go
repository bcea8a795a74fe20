// Package bytespool pools []byte buffers in power-of-two size
// classes to keep transient I/O staging off the garbage collector.
package bytespool

import (
	"math/bits"
	"sync"
)

const (
	minBits = 6  // 64 B
	maxBits = 20 // 1 MiB
)

var classes [maxBits - minBits + 1]sync.Pool

func init() {
	for i := range classes {
		size := 1 << (minBits + i)
		classes[i].New = func() any {
			return make([]byte, size)
		}
	}
}

func classFor(size int) int {
	b := bits.Len(uint(size - 1))
	if b < minBits {
		b = minBits
	}
	return b - minBits
}

// Get returns a buffer of length size. Sizes beyond the largest class
// fall through to a plain allocation; Put discards those.
func Get(size int) []byte {
	if size <= 0 {
		return nil
	}
	if size > 1<<maxBits {
		return make([]byte, size)
	}
	return classes[classFor(size)].Get().([]byte)[:size]
}

// Put returns a buffer obtained from Get. Only buffers with pooled
// capacities round-trip; everything else is left to the collector.
func Put(b []byte) {
	c := cap(b)
	if c < 1<<minBits || c > 1<<maxBits || c&(c-1) != 0 {
		return
	}
	classes[classFor(c)].Put(b[:c])
}
