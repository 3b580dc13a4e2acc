// Package gf4096poly implements the ring of monic degree-T polynomials
// over GF(2^12) used as Goppa-code generator polynomials, where T=64 is
// the mceliece348864 error-correction bound.
package gf4096poly

import "github.com/nixberg/classic-mceliece-go/gf4096"

// T is the polynomial degree (the number of stored coefficients; the
// implicit leading coefficient is always 1).
const T = 64

// BytesPerCoeff is the little-endian width of one serialized
// coefficient.
const BytesPerCoeff = 2

// Bytes is the serialized length of a Poly.
const Bytes = T * BytesPerCoeff

// Poly holds the T coefficients a_0..a_{T-1} of
// x^T + a_{T-1}x^{T-1} + ... + a_0. The leading 1 is never stored.
type Poly [T]gf4096.Elem

func fromBytesUnchecked(b *[Bytes]byte) Poly {
	var p Poly
	for i := range p {
		var limb [2]byte
		copy(limb[:], b[i*BytesPerCoeff:(i+1)*BytesPerCoeff])
		p[i] = gf4096.FromLEBytes(&limb)
	}
	return p
}

// FromBytes interprets b as T little-endian 16-bit coefficients. It
// fails (returns false) if any coefficient has bits set outside the
// field's width.
func FromBytes(b *[Bytes]byte) (Poly, bool) {
	for i := 0; i < T; i++ {
		limb := gf4096.Elem(uint16(b[i*BytesPerCoeff]) | uint16(b[i*BytesPerCoeff+1])<<8)
		if !limb.IsValid() {
			return Poly{}, false
		}
	}
	return fromBytesUnchecked(b), true
}

// Bytes serializes p as T little-endian 16-bit coefficients.
func (p Poly) Bytes() [Bytes]byte {
	var out [Bytes]byte
	for i, limb := range p {
		out[i*BytesPerCoeff] = byte(limb)
		out[i*BytesPerCoeff+1] = byte(limb >> 8)
	}
	return out
}

// EvaluateAt evaluates the implicit monic polynomial at x via Horner's
// method.
func (p Poly) EvaluateAt(x gf4096.Elem) gf4096.Elem {
	r := gf4096.Add(x, p[T-1])
	for i := T - 2; i >= 0; i-- {
		r = gf4096.Add(gf4096.Mul(r, x), p[i])
	}
	return r
}

// Root evaluates p at every element of support, returning the image
// vector.
func (p Poly) Root(support []gf4096.Elem) []gf4096.Elem {
	out := make([]gf4096.Elem, len(support))
	for i, a := range support {
		out[i] = p.EvaluateAt(a)
	}
	return out
}

// mul computes the schoolbook product of lhs and rhs into a 2T-1
// buffer, then folds the upper T-1 coefficients back into the lower T
// using the reduction x^T = x^3 + x + 2 (2 being the field element
// gf4096.Two).
func mul(lhs, rhs *Poly, buf *[2*T - 1]gf4096.Elem) {
	for i := range buf {
		buf[i] = gf4096.Zero
	}

	for i, l := range lhs {
		for j, r := range rhs {
			buf[i+j] = gf4096.Add(buf[i+j], gf4096.Mul(l, r))
		}
	}

	for i := len(buf) - 1; i >= T; i-- {
		limb := buf[i]
		buf[i-T+3] = gf4096.Add(buf[i-T+3], limb)
		buf[i-T+1] = gf4096.Add(buf[i-T+1], limb)
		buf[i-T] = gf4096.Add(buf[i-T], gf4096.Mul(limb, gf4096.Two))
	}
}

// Irreducible builds the minimal polynomial of the polynomial encoded by
// seed (T little-endian coefficients) over the ring modulo
// x^T + x^3 + x + 2, by
// row-reducing the matrix whose rows are p^0, p^1, ..., p^T. It fails
// (returns false) if the seed does not yield an irreducible polynomial.
// Key generation only; not constant-time.
func Irreducible(seed *[Bytes]byte) (Poly, bool) {
	p := fromBytesUnchecked(seed)

	var mat [T + 1]Poly
	mat[0][0] = gf4096.One
	mat[1] = p

	for i := 1; i < T; i++ {
		var buf [2*T - 1]gf4096.Elem
		mul(&mat[i], &p, &buf)
		copy(mat[i+1][:], buf[:T])
	}

	for j := 0; j < T; j++ {
		for k := j + 1; k < T; k++ {
			if mat[j][j] == gf4096.Zero {
				for row := j; row <= T; row++ {
					mat[row][j] = gf4096.Add(mat[row][j], mat[row][k])
				}
			}
		}

		// nolint:staticcheck // variable-time: public key-generation-only quantity.
		if mat[j][j] == gf4096.Zero {
			return Poly{}, false
		}

		inv := gf4096.Inv(mat[j][j])
		for row := j; row <= T; row++ {
			mat[row][j] = gf4096.Mul(mat[row][j], inv)
		}

		for k := 0; k < T; k++ {
			if k == j {
				continue
			}
			t := mat[j][k]
			for row := j; row <= T; row++ {
				mat[row][k] = gf4096.Add(mat[row][k], gf4096.Mul(mat[row][j], t))
			}
		}
		// Rows above j are left untouched in columns >= j: they already hold
		// their final values from earlier pivots and are never read again.
	}

	return mat[T], true
}

// ReversingExplicitlyMonic reverses an explicit T+1 coefficient vector
// whose constant coefficient poly[0] is 1, then drops that coefficient,
// which becomes the implicit leading 1: reversed[i] = poly[T-i].
// Used to convert a Berlekamp-Massey connection polynomial into a Poly.
func ReversingExplicitlyMonic(poly *[T + 1]gf4096.Elem) Poly {
	var reversed Poly
	for i := range reversed {
		reversed[i] = poly[T-i]
	}
	return reversed
}
