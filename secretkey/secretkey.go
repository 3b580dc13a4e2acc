// Package secretkey implements the mceliece348864 secret key: its
// binary encoding and the syndrome decoding pipeline (Berlekamp-Massey
// plus root-finding) that recovers an error vector from a ciphertext,
// with implicit rejection on decode failure.
package secretkey

import (
	"errors"

	"github.com/nixberg/classic-mceliece-go/controlbits"
	"github.com/nixberg/classic-mceliece-go/fieldordering"
	"github.com/nixberg/classic-mceliece-go/gf4096"
	"github.com/nixberg/classic-mceliece-go/gf4096poly"
	"github.com/nixberg/classic-mceliece-go/internal/xhash"
	"github.com/nixberg/classic-mceliece-go/publickey"
)

const (
	// SeedBytes is the width of the seed this key was derived from.
	SeedBytes = 32
	// SBytes is the width of the implicit-rejection filler s.
	SBytes = publickey.NBytes

	reservedMagicLen = 8

	// Bytes is the serialized secret key size: seed, 8 reserved bytes,
	// the Goppa polynomial, the control bits, and the filler s.
	Bytes = SeedBytes + reservedMagicLen + gf4096poly.Bytes + controlbits.Bytes + SBytes
)

// reservedMagic is a fixed 8-byte field every secret key encoding
// carries between the seed and the Goppa polynomial. Its value is not
// load-bearing; it is preserved verbatim from the source this type was
// ported from, where it validates a key was not truncated or produced
// by an incompatible parameter set.
var reservedMagic = [reservedMagicLen]byte{0xff, 0xff, 0xff, 0xff, 0x00, 0x00, 0x00, 0x00}

// ErrMalformedSecretKey is returned by UnmarshalBinary when the input
// is the wrong length, carries the wrong reserved magic bytes, or
// encodes an invalid Goppa polynomial.
var ErrMalformedSecretKey = errors.New("secretkey: malformed secret key encoding")

// SecretKey holds everything needed to decapsulate a ciphertext: the
// original derivation seed (exposed for callers that re-derive keys),
// the Goppa polynomial, the field ordering's control-bit encoding, and
// the implicit-rejection filler s.
type SecretKey struct {
	Seed        [SeedBytes]byte
	G           gf4096poly.Poly
	ControlBits controlbits.Bits
	S           [SBytes]byte
}

// New assembles a SecretKey from its generation seed, Goppa polynomial,
// field ordering, and implicit-rejection filler.
func New(seed *[SeedBytes]byte, g *gf4096poly.Poly, alpha *fieldordering.Ordering, s *[SBytes]byte) SecretKey {
	return SecretKey{
		Seed:        *seed,
		G:           *g,
		ControlBits: controlbits.FromPermutation((*[controlbits.N]gf4096.Elem)(alpha)),
		S:           *s,
	}
}

// Zeroize overwrites every secret-derived field of sk. Callers that own
// a SecretKey only transiently should call this once it is no longer
// needed; sk is not safe to use afterward.
func (sk *SecretKey) Zeroize() {
	for i := range sk.Seed {
		sk.Seed[i] = 0
	}
	for i := range sk.G {
		sk.G[i] = 0
	}
	for i := range sk.ControlBits {
		sk.ControlBits[i] = 0
	}
	for i := range sk.S {
		sk.S[i] = 0
	}
}

// MarshalBinary serializes the secret key to its fixed-width encoding:
// seed || reserved magic || g || control bits || s.
func (sk *SecretKey) MarshalBinary() ([]byte, error) {
	out := make([]byte, 0, Bytes)
	out = append(out, sk.Seed[:]...)
	out = append(out, reservedMagic[:]...)
	gBytes := sk.G.Bytes()
	out = append(out, gBytes[:]...)
	out = append(out, sk.ControlBits[:]...)
	out = append(out, sk.S[:]...)
	return out, nil
}

// UnmarshalBinary parses a secret key from its fixed-width encoding.
func UnmarshalBinary(b []byte) (*SecretKey, error) {
	if len(b) != Bytes {
		return nil, ErrMalformedSecretKey
	}

	var sk SecretKey
	copy(sk.Seed[:], b[:SeedBytes])
	b = b[SeedBytes:]

	for i := 0; i < reservedMagicLen; i++ {
		if b[i] != reservedMagic[i] {
			return nil, ErrMalformedSecretKey
		}
	}
	b = b[reservedMagicLen:]

	var gBytes [gf4096poly.Bytes]byte
	copy(gBytes[:], b[:gf4096poly.Bytes])
	g, ok := gf4096poly.FromBytes(&gBytes)
	if !ok {
		return nil, ErrMalformedSecretKey
	}
	sk.G = g
	b = b[gf4096poly.Bytes:]

	copy(sk.ControlBits[:], b[:controlbits.Bytes])
	b = b[controlbits.Bytes:]

	copy(sk.S[:], b[:SBytes])

	return &sk, nil
}

// Decapsulate recovers the session key carried by ciphertext. If
// decoding fails -- the ciphertext does not encode a valid weight-t
// error vector under this key's Goppa code, or its confirmation tag
// does not match -- the session key is instead derived from the
// implicit-rejection filler S, so a caller cannot distinguish
// decapsulation failure from success by the returned key alone.
func (sk *SecretKey) Decapsulate(ciphertext *[publickey.CiphertextBytes]byte) [publickey.SessionKeyBytes]byte {
	var c0 [publickey.C0Bytes]byte
	copy(c0[:], ciphertext[:publickey.C0Bytes])
	c1 := ciphertext[publickey.C0Bytes:]

	errorVec, success := sk.decode(&c0)
	notSuccess := 1 - success

	for i := range errorVec {
		errorVec[i] = condByte(errorVec[i], sk.S[i], notSuccess)
	}

	c1Prime := xhash.Hash2(errorVec[:])
	tagMatches := ctEqBytes(c1Prime[:], c1)
	success &= tagMatches
	notSuccess = 1 - success

	for i := range errorVec {
		errorVec[i] = condByte(errorVec[i], sk.S[i], notSuccess)
	}

	return xhash.HashX(success, errorVec[:], ciphertext[:])
}

// decode runs the syndrome decoder: Berlekamp-Massey recovers the
// error locator polynomial from the syndrome, its roots over the
// support identify error positions, and the reconstructed error vector
// is accepted only if it has weight T and reproduces the same
// syndrome.
func (sk *SecretKey) decode(c0 *[publickey.C0Bytes]byte) ([publickey.NBytes]byte, uint8) {
	var v [publickey.NBytes]byte
	copy(v[:], c0[:])

	support := sk.ControlBits.GenerateSupport(fieldordering.N)

	syndrome := synd(&sk.G, support, &v)
	locator := berlekampMassey(&syndrome)
	images := locator.Root(support)

	var errorVec [publickey.NBytes]byte
	weight := 0
	for i := range errorVec {
		var e byte
		for bit := 0; bit < 8; bit++ {
			idx := i*8 + bit
			if idx >= len(images) {
				break
			}
			b := gf4096.IsZeroMask(images[idx]) & 1
			e |= byte(b) << uint(bit)
			weight += int(b)
		}
		errorVec[i] = e
	}

	otherSyndrome := synd(&sk.G, support, &errorVec)

	weightOk := boolToChoice(weight == gf4096poly.T)
	syndromeOk := boolToChoice(syndrome == otherSyndrome)
	return errorVec, weightOk & syndromeOk
}

// synd computes the 2T syndrome values of receivedWord against Goppa
// polynomial f over support.
func synd(f *gf4096poly.Poly, support []gf4096.Elem, receivedWord *[publickey.NBytes]byte) [2 * gf4096poly.T]gf4096.Elem {
	var syndrome [2 * gf4096poly.T]gf4096.Elem

	for i, a := range support {
		c := (receivedWord[i/8] >> uint(i%8)) & 1

		e := f.EvaluateAt(a)
		eInv := gf4096.Inv(gf4096.Square(e))

		cElem := gf4096.Elem(c)
		for j := range syndrome {
			syndrome[j] = gf4096.Add(syndrome[j], gf4096.Mul(eInv, cElem))
			eInv = gf4096.Mul(eInv, a)
		}
	}

	return syndrome
}

// berlekampMassey recovers the minimal-degree linear recurrence (error
// locator polynomial) generating syndrome, via the standard
// constant-time formulation: a fixed 2T iterations regardless of the
// true locator degree, with every conditional step implemented as a
// masked select rather than a branch.
func berlekampMassey(syndrome *[2 * gf4096poly.T]gf4096.Elem) gf4096poly.Poly {
	lastDiscrepancy := gf4096.One
	length := uint16(0)

	var bee, connection [gf4096poly.T + 1]gf4096.Elem
	bee[1] = gf4096.One
	connection[0] = gf4096.One

	for n := 0; n < 2*gf4096poly.T; n++ {
		discrepancy := gf4096.Zero
		for i, c := range connection {
			si := n - i
			if si < 0 {
				continue
			}
			discrepancy = gf4096.Add(discrepancy, gf4096.Mul(c, syndrome[si]))
		}

		discrepancyIsZero := gf4096.CtEq(discrepancy, gf4096.Zero)
		lengthTooLarge := boolToChoice(2*length > uint16(n))
		doStep5 := (1 - discrepancyIsZero) & (1 - lengthTooLarge)

		connectionCopy := connection

		// lastDiscrepancy is always non-zero: it starts at One and is
		// only ever reassigned (below) to a discrepancy for which
		// doStep5 held, which requires discrepancy != 0.
		adjustmentFactor := gf4096.Div(discrepancy, lastDiscrepancy)

		for i := range connection {
			adjustment := gf4096.ConditionalSelect(gf4096.Mul(adjustmentFactor, bee[i]), gf4096.Zero, discrepancyIsZero)
			connection[i] = gf4096.Add(connection[i], adjustment)
		}

		length = condUint16(length, uint16(n)+1-length, doStep5)
		for i := range bee {
			gf4096.ConditionalAssign(&bee[i], connectionCopy[i], doStep5)
		}
		lastDiscrepancy = gf4096.ConditionalSelect(lastDiscrepancy, discrepancy, doStep5)

		copy(bee[1:], bee[:gf4096poly.T])
		bee[0] = gf4096.Zero
	}

	return gf4096poly.ReversingExplicitlyMonic(&connection)
}

// boolToChoice converts a plain bool comparison into a 0/1 mask usable
// with ConditionalSelect/ConditionalAssign.
func boolToChoice(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func condUint16(a, b uint16, choice uint8) uint16 {
	mask := uint16(0) - uint16(choice&1)
	return a ^ (mask & (a ^ b))
}

// condByte returns b if choice == 1, a if choice == 0, without
// branching on choice.
func condByte(a, b byte, choice uint8) byte {
	mask := byte(0) - (choice & 1)
	return a ^ (mask & (a ^ b))
}

// ctEqBytes returns 1 if a and b are equal, 0 otherwise, without
// short-circuiting on the first difference.
func ctEqBytes(a, b []byte) uint8 {
	var diff byte
	for i := range a {
		diff |= a[i] ^ b[i]
	}
	return boolToChoice(diff == 0)
}
