// Package xhash implements the two fixed-length domain hashes the KEM
// uses to bind session keys and ciphertext confirmation tags to an
// error vector: both are single-squeeze SHAKE-256 calls distinguished
// only by their leading domain byte and by whether a ciphertext is
// folded in.
package xhash

import "golang.org/x/crypto/sha3"

// Size is the output width of both hashes, in bytes.
const Size = 32

func hash(domain byte, errorVec []byte, ciphertext []byte, out *[Size]byte) {
	h := sha3.NewShake256()
	h.Write([]byte{domain})
	h.Write(errorVec)
	if ciphertext != nil {
		h.Write(ciphertext)
	}
	h.Read(out[:])
}

// HashX derives a session key from an error vector and the ciphertext
// it produced. domain must be 1 (encapsulation / successful
// decapsulation) or 0 (implicit-rejection decapsulation).
func HashX(domain byte, errorVec []byte, ciphertext []byte) [Size]byte {
	var out [Size]byte
	hash(domain, errorVec, ciphertext, &out)
	return out
}

// Hash2 derives a ciphertext confirmation tag from an error vector
// alone.
func Hash2(errorVec []byte) [Size]byte {
	var out [Size]byte
	hash(2, errorVec, nil, &out)
	return out
}
