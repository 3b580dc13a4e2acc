package gf4096poly

import (
	"encoding/hex"
	"testing"

	"github.com/nixberg/classic-mceliece-go/gf4096"
	"github.com/nixberg/classic-mceliece-go/internal/xof"
)

// TestIrreducibleKAT reproduces the literal known-answer vector for
// Irreducible: expanding a fixed seed under the keypair-expansion
// domain, skipping past the s and alpha_seed payloads, and feeding the
// next 128 bytes as a polynomial seed must reproduce an exact
// coefficient vector.
func TestIrreducibleKAT(t *testing.T) {
	seedHex := "5b815c890117893d8bb8e886f63a78ce2d5f58342d703348cb95539e14b9a719"
	seedBytes, err := hex.DecodeString(seedHex)
	if err != nil {
		t.Fatalf("decode seed: %v", err)
	}
	var seed [xof.SeedBytes]byte
	copy(seed[:], seedBytes)

	gen := xof.New(64, &seed)
	gen.Skip(436 + 4*4096)

	var polySeed [Bytes]byte
	gen.Squeeze(polySeed[:])

	g, ok := Irreducible(&polySeed)
	if !ok {
		t.Fatal("Irreducible rejected the known-answer seed")
	}

	want := [T]gf4096.Elem{
		0x6f7, 0xe6e, 0x351, 0xe16, 0x076, 0xefe, 0x003, 0xfc0,
		0xa67, 0x31a, 0x29a, 0xb7b, 0x733, 0x24d, 0x981, 0xc4f,
		0xbdd, 0xdd4, 0x09a, 0x190, 0x929, 0x4ad, 0x338, 0x0b0,
		0x094, 0xfc3, 0x1db, 0x4f4, 0x568, 0x99f, 0x87e, 0xfa2,
		0x68f, 0xdb0, 0x8d4, 0x7f8, 0x061, 0x86c, 0x538, 0xf8a,
		0x05b, 0xf94, 0xa3a, 0x581, 0x2c5, 0xde4, 0xddf, 0x068,
		0xd8e, 0xdba, 0x855, 0x69c, 0x9e5, 0x849, 0x5e1, 0x7b6,
		0x92c, 0x499, 0x1e7, 0xf98, 0xa6c, 0xda5, 0x690, 0xd51,
	}

	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("coefficient %d = %#x, want %#x", i, g[i], want[i])
		}
	}
}
