package bytespool_test

import (
	"testing"

	"github.com/okanya/commonlib/pool/bytespool"
)

func TestGetLength(t *testing.T) {
	for _, size := range []int{1, 63, 64, 65, 1000, 4096, 65536, 1 << 20} {
		b := bytespool.Get(size)
		if len(b) != size {
			t.Fatalf("Get(%d) len = %d", size, len(b))
		}
		if cap(b) < size {
			t.Fatalf("Get(%d) cap = %d", size, cap(b))
		}
		bytespool.Put(b)
	}
}

func TestGetZero(t *testing.T) {
	if b := bytespool.Get(0); b != nil {
		t.Fatalf("Get(0) = %v, want nil", b)
	}
	if b := bytespool.Get(-1); b != nil {
		t.Fatalf("Get(-1) = %v, want nil", b)
	}
}

func TestOversize(t *testing.T) {
	size := (1 << 20) + 1
	b := bytespool.Get(size)
	if len(b) != size {
		t.Fatalf("oversize Get len = %d, want %d", len(b), size)
	}
	bytespool.Put(b) // discarded, must not panic
}

func TestPutForeignBuffer(t *testing.T) {
	bytespool.Put(make([]byte, 100)) // non-class capacity, must not panic
	bytespool.Put(nil)
}

func TestReuseKeepsCapacity(t *testing.T) {
	b := bytespool.Get(100)
	c := cap(b)
	bytespool.Put(b)
	b2 := bytespool.Get(c)
	if cap(b2) < c {
		t.Fatalf("reused cap = %d, want >= %d", cap(b2), c)
	}
}
