// Package xof wraps SHAKE-256 as a domain-separated extendable-output
// generator: every stream begins with a single domain byte followed by
// a 32-byte seed, so the same seed squeezed under different domains
// never collides.
package xof

import "golang.org/x/crypto/sha3"

// SeedBytes is the width of the seed a Generator is keyed with.
const SeedBytes = 32

// Generator is a SHAKE-256 XOF keyed by domain||seed.
type Generator struct {
	reader sha3.ShakeHash
}

// New keys a fresh Generator from domain and seed.
func New(domain byte, seed *[SeedBytes]byte) *Generator {
	h := sha3.NewShake256()
	h.Write([]byte{domain})
	h.Write(seed[:])
	return &Generator{reader: h}
}

// Squeeze fills out with the next len(out) bytes of the XOF stream.
func (g *Generator) Squeeze(out []byte) {
	g.reader.Read(out)
}

// Skip discards the next n bytes of the XOF stream.
func (g *Generator) Skip(n int) {
	var buf [64]byte
	for n > 0 {
		chunk := len(buf)
		if n < chunk {
			chunk = n
		}
		g.reader.Read(buf[:chunk])
		n -= chunk
	}
}
