// Package fieldordering builds the permutation of GF(2^12) ("field
// ordering" alpha) used to pick a Goppa code's support, from a random
// seed, together with its Beneš control-bits reconstruction support.
package fieldordering

import (
	"encoding/binary"
	"sort"

	"github.com/nixberg/classic-mceliece-go/gf4096"
)

// Q is the size of the permuted set, 2^gf4096.Bits.
const Q = 1 << gf4096.Bits

// N is the number of leading elements exposed as a code's support.
const N = 3488

// SeedBytes is the width of the seed consumed by New: Q 32-bit keys.
const SeedBytes = 4 * Q

// Ordering is a permutation of {0, ..., Q-1}, represented as Q distinct
// field elements.
type Ordering [Q]gf4096.Elem

type keyedIndex struct {
	key uint32
	idx int
}

// New builds a field ordering from seed, a Q-element array of
// little-endian uint32 sort keys. Keys are attached to their original
// index, stably sorted ascending, then checked for strict
// monotonicity; a duplicate key fails construction (returns false),
// signaling the caller to retry with a fresh seed.
func New(seed *[SeedBytes]byte) (Ordering, bool) {
	pairs := make([]keyedIndex, Q)
	for i := range pairs {
		pairs[i] = keyedIndex{
			key: binary.LittleEndian.Uint32(seed[i*4 : i*4+4]),
			idx: i,
		}
	}

	sort.SliceStable(pairs, func(a, b int) bool {
		return pairs[a].key < pairs[b].key
	})

	for i := 1; i < Q; i++ {
		if pairs[i-1].key == pairs[i].key {
			return Ordering{}, false
		}
	}

	var ordering Ordering
	for i, p := range pairs {
		ordering[i] = gf4096.ReverseBits(gf4096.Elem(p.idx))
	}

	return ordering, true
}

// GenerateSupport returns the first N field elements of the ordering,
// the distinct locators that form a Goppa code's support.
func (o *Ordering) GenerateSupport() []gf4096.Elem {
	support := make([]gf4096.Elem, N)
	copy(support, o[:N])
	return support
}
