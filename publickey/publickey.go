// Package publickey implements the mceliece348864 public key: a
// systematic-form parity-check matrix [I | T], its construction from a
// Goppa polynomial and field ordering, and the encoding (syndrome) and
// encapsulation operations built on it.
package publickey

import (
	"errors"

	"github.com/nixberg/classic-mceliece-go/fieldordering"
	"github.com/nixberg/classic-mceliece-go/gf4096"
	"github.com/nixberg/classic-mceliece-go/gf4096poly"
	"github.com/nixberg/classic-mceliece-go/internal/xhash"
	"github.com/nixberg/classic-mceliece-go/internal/xof"
)

// ErrMalformedPublicKey is returned by UnmarshalBinary when its input
// is not exactly Bytes long.
var ErrMalformedPublicKey = errors.New("publickey: malformed public key encoding")

const (
	m = gf4096.Bits
	t = gf4096poly.T
	n = fieldordering.N

	// Rows is the parity-check matrix row count, m*t.
	Rows = m * t
	// NBytes is the bit-packed width of a full-length codeword.
	NBytes = n / 8
	// RowBytes is the bit-packed width of a public key row: the T
	// columns left after the systematic identity block.
	RowBytes = NBytes - Rows/8

	// Bytes is the serialized public key size, Rows*RowBytes.
	Bytes = Rows * RowBytes

	// C0Bytes is the syndrome (first ciphertext component) width.
	C0Bytes = Rows / 8
	// C1Bytes is the confirmation-tag (second ciphertext component) width.
	C1Bytes = xhash.Size
	// CiphertextBytes is C0Bytes+C1Bytes.
	CiphertextBytes = C0Bytes + C1Bytes

	// SessionKeyBytes is the derived session key width.
	SessionKeyBytes = xhash.Size

	// SeedBytes is the width of the seed consumed by the fixed-weight
	// error sampler.
	SeedBytes = 32

	fixedWeightDomain = 65
)

// PublicKey is the systematic-form T half of the parity-check matrix
// [I | T], row-major, Rows rows of RowBytes bytes each.
type PublicKey [Bytes]byte

// Generate builds the public key for Goppa polynomial g over field
// ordering alpha, by inverting g at alpha's support and Gauss-reducing
// the resulting parity-check matrix to systematic form. It fails
// (returns false) when the left Rows x Rows block of that matrix is not
// invertible, so no systematic form [I | T] exists. Key
// generation only; not constant-time.
func Generate(g *gf4096poly.Poly, alpha *fieldordering.Ordering) (PublicKey, bool) {
	support := alpha.GenerateSupport()

	inv := g.Root(support)
	for i, v := range inv {
		inv[i] = gf4096.Inv(v)
	}

	matrix := make([][NBytes]byte, Rows)

	columns := n / 8
	for pass := 0; pass < t; pass++ {
		for col := 0; col < columns; col++ {
			chunk := inv[col*8 : col*8+8]
			for k := 0; k < m; k++ {
				var b byte
				for i := 7; i >= 0; i-- {
					b = (b << 1) | gf4096.GetBit(chunk[i], uint(k))
				}
				matrix[pass*m+k][col] = b
			}
		}

		for i := range inv {
			inv[i] = gf4096.Mul(inv[i], support[i])
		}
	}

	for i := 0; i < Rows/8; i++ {
		for j := 0; j < 8; j++ {
			row := i*8 + j
			if row >= Rows {
				break
			}

			for k := row + 1; k < Rows; k++ {
				mask := matrix[row][i] ^ matrix[k][i]
				mask >>= uint(j)
				mask &= 1
				mask = -mask

				for c := 0; c < NBytes; c++ {
					matrix[row][c] ^= matrix[k][c] & mask
				}
			}

			if (matrix[row][i]>>uint(j))&1 == 0 {
				return PublicKey{}, false
			}

			for k := 0; k < Rows; k++ {
				if k == row {
					continue
				}
				mask := matrix[k][i] >> uint(j)
				mask &= 1
				mask = -mask

				for c := 0; c < NBytes; c++ {
					matrix[k][c] ^= matrix[row][c] & mask
				}
			}
		}
	}

	var pk PublicKey
	for row := 0; row < Rows; row++ {
		copy(pk[row*RowBytes:(row+1)*RowBytes], matrix[row][Rows/8:])
	}
	return pk, true
}

// MarshalBinary returns pk's serialized bytes.
func (pk *PublicKey) MarshalBinary() ([]byte, error) {
	out := make([]byte, Bytes)
	copy(out, pk[:])
	return out, nil
}

// UnmarshalBinary parses a public key from its fixed-width encoding.
func UnmarshalBinary(b []byte) (*PublicKey, error) {
	if len(b) != Bytes {
		return nil, ErrMalformedPublicKey
	}
	var pk PublicKey
	copy(pk[:], b)
	return &pk, nil
}

// Encode computes the syndrome of errorVec (an N_BYTES-wide error
// vector) under this public key's parity-check matrix.
func (pk *PublicKey) Encode(errorVec *[NBytes]byte) [C0Bytes]byte {
	var syndrome [C0Bytes]byte

	lhs := errorVec[:NBytes-RowBytes]
	rhs := errorVec[NBytes-RowBytes:]

	for groupIdx := 0; groupIdx < C0Bytes; groupIdx++ {
		lhsByte := lhs[groupIdx]
		for selectedBit := 0; selectedBit < 8; selectedBit++ {
			row := groupIdx*8 + selectedBit
			b := (1 << uint(selectedBit)) & lhsByte

			rowBytes := pk[row*RowBytes : (row+1)*RowBytes]
			for i, rb := range rowBytes {
				b ^= rb & rhs[i]
			}

			syndrome[groupIdx] |= parityBit(b) << uint(selectedBit)
		}
	}

	return syndrome
}

func parityBit(b byte) byte {
	b ^= b >> 4
	b ^= b >> 2
	b ^= b >> 1
	return b & 1
}

// EncapsulateDeterministic encodes errorVec under pk and derives the
// ciphertext and session key from it.
func (pk *PublicKey) EncapsulateDeterministic(errorVec *[NBytes]byte) (ciphertext [CiphertextBytes]byte, sessionKey [SessionKeyBytes]byte) {
	c0 := pk.Encode(errorVec)
	copy(ciphertext[:C0Bytes], c0[:])

	c1 := xhash.Hash2(errorVec[:])
	copy(ciphertext[C0Bytes:], c1[:])

	sessionKey = xhash.HashX(1, errorVec[:], ciphertext[:])
	return ciphertext, sessionKey
}

// Encapsulate deterministically samples a weight-t error vector from
// randSeed and encapsulates it, returning the ciphertext and the
// session key it carries.
func (pk *PublicKey) Encapsulate(randSeed *[SeedBytes]byte) (ciphertext [CiphertextBytes]byte, sessionKey [SessionKeyBytes]byte) {
	errorVec := seededFixedWeight(randSeed)
	return pk.EncapsulateDeterministic(&errorVec)
}

// seededFixedWeight deterministically samples a weight-t error vector
// over N bits from seed, via rejection sampling against fresh XOF
// output; on rejection it reseeds from the same stream and retries.
// Key generation / encapsulation only; not constant-time in its
// control flow, though the final error vector is built without
// branching on the sampled indices.
func seededFixedWeight(seed *[SeedBytes]byte) [NBytes]byte {
	s := *seed
	var ind [t]uint16

	for {
		var raw [2 * 2 * t]byte
		gen := xof.New(fixedWeightDomain, &s)
		gen.Squeeze(raw[:])
		gen.Squeeze(s[:])

		var nums [2 * t]uint16
		for i := range nums {
			nums[i] = (uint16(raw[2*i]) | uint16(raw[2*i+1])<<8) & gf4096.Mask
		}

		count := 0
		for _, num := range nums {
			if count >= t {
				break
			}
			if int(num) < n {
				ind[count] = num
				count++
			}
		}
		if count < t {
			continue
		}

		noRepeats := true
		for i := 1; i < t; i++ {
			for j := 0; j < i; j++ {
				if ind[i] == ind[j] {
					noRepeats = false
				}
			}
		}
		if noRepeats {
			break
		}
	}

	var vals [t]byte
	for i, idx := range ind {
		vals[i] = 1 << (idx & 7)
	}

	var errorVec [NBytes]byte
	for i := range errorVec {
		var e byte
		for k, idx := range ind {
			e |= vals[k] & eqMask(uint32(i), uint32(idx)>>3)
		}
		errorVec[i] = e
	}
	return errorVec
}

func eqMask(x, y uint32) byte {
	mask := x ^ y
	mask--
	mask >>= 31
	return byte(-mask)
}
