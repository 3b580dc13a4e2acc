package fieldordering

import (
	"encoding/binary"
	"testing"

	"github.com/nixberg/classic-mceliece-go/gf4096"
)

func TestNewProducesADistinctPermutation(t *testing.T) {
	var seed [SeedBytes]byte
	for i := 0; i < Q; i++ {
		// Each 4-byte key is simply its own index: trivially distinct.
		binary.LittleEndian.PutUint32(seed[i*4:i*4+4], uint32(i))
	}

	ordering, ok := New(&seed)
	if !ok {
		t.Fatal("New rejected a seed with no duplicate keys")
	}

	seen := make(map[gf4096.Elem]bool, Q)
	for _, e := range ordering {
		if seen[e] {
			t.Fatalf("duplicate element %#x in ordering", e)
		}
		seen[e] = true
	}
	if len(seen) != Q {
		t.Fatalf("got %d distinct elements, want %d", len(seen), Q)
	}
}

func TestNewRejectsDuplicateKeys(t *testing.T) {
	var seed [SeedBytes]byte // all-zero: every 4-byte key is 0, all duplicates
	if _, ok := New(&seed); ok {
		t.Fatal("New accepted a seed with every key equal")
	}
}

func TestGenerateSupportIsOrderingPrefix(t *testing.T) {
	var seed [SeedBytes]byte
	for i := 0; i < Q; i++ {
		binary.LittleEndian.PutUint32(seed[i*4:i*4+4], uint32(i)*2654435761)
	}

	ordering, ok := New(&seed)
	if !ok {
		t.Fatal("New rejected seed")
	}

	support := ordering.GenerateSupport()
	if len(support) != N {
		t.Fatalf("len(support) = %d, want %d", len(support), N)
	}
	for i, e := range support {
		if e != ordering[i] {
			t.Fatalf("support[%d] = %#x, want %#x", i, e, ordering[i])
		}
	}
}
