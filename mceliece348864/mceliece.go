// Package mceliece348864 implements the mceliece348864 parameter set
// of the Classic McEliece key encapsulation mechanism: key generation,
// encapsulation, and decapsulation, built on the field, polynomial,
// permutation, and control-bits packages beneath it.
package mceliece348864

import (
	"crypto/rand"

	"github.com/nixberg/classic-mceliece-go/fieldordering"
	"github.com/nixberg/classic-mceliece-go/gf4096poly"
	"github.com/nixberg/classic-mceliece-go/internal/xof"
	"github.com/nixberg/classic-mceliece-go/publickey"
	"github.com/nixberg/classic-mceliece-go/secretkey"
)

const (
	// SeedBytes is the width of a key generation seed.
	SeedBytes = 32

	sigmaOneBytes = 2
	sigmaTwoBytes = 4

	keypairDomain = 64
)

// PublicKey and SecretKey are this package's key types, re-exported
// from the packages that implement them so callers need only import
// this one package for ordinary use.
type (
	PublicKey = publickey.PublicKey
	SecretKey = secretkey.SecretKey
)

// Ciphertext is an encapsulated session key: the syndrome (C0) and
// confirmation tag (C1) concatenated.
type Ciphertext = [publickey.CiphertextBytes]byte

// SessionKey is the shared secret derived by a successful
// encapsulation/decapsulation pair.
type SessionKey = [publickey.SessionKeyBytes]byte

// GenerateKeyPair draws a fresh 32-byte seed from the system entropy
// source and derives a key pair from it.
func GenerateKeyPair() (*SecretKey, *PublicKey, error) {
	var seed [SeedBytes]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return nil, nil, err
	}
	sk, pk := GenerateKeyPairSeeded(&seed)
	return sk, pk, nil
}

// GenerateKeyPairSeeded deterministically derives a key pair from
// seed. Internally it retries with a reseeded generator whenever the
// sampled field ordering, Goppa polynomial, or resulting parity-check
// matrix is unusable; this loop always terminates in practice and
// never surfaces an error to the caller.
func GenerateKeyPairSeeded(seed *[SeedBytes]byte) (*SecretKey, *PublicKey) {
	s := *seed

	for {
		var (
			sBytes    [secretkey.SBytes]byte
			alphaSeed [sigmaTwoBytes * fieldordering.Q]byte
			gSeed     [sigmaOneBytes * gf4096poly.T]byte
		)

		gen := xof.New(keypairDomain, &s)
		gen.Squeeze(sBytes[:])
		gen.Squeeze(alphaSeed[:])
		gen.Squeeze(gSeed[:])

		alpha, ok := fieldordering.New(&alphaSeed)
		if !ok {
			gen.Squeeze(s[:])
			continue
		}

		g, ok := gf4096poly.Irreducible(&gSeed)
		if !ok {
			gen.Squeeze(s[:])
			continue
		}

		pk, ok := publickey.Generate(&g, &alpha)
		if !ok {
			gen.Squeeze(s[:])
			continue
		}

		sk := secretkey.New(&s, &g, &alpha, &sBytes)
		return &sk, &pk
	}
}

// Encapsulate samples a fresh random error vector and encapsulates it
// under pk, returning the ciphertext and the session key it carries.
func Encapsulate(pk *PublicKey) (Ciphertext, SessionKey, error) {
	var seed [publickey.SeedBytes]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return Ciphertext{}, SessionKey{}, err
	}
	ct, ss := pk.Encapsulate(&seed)
	return ct, ss, nil
}

// EncapsulateSeeded deterministically samples an error vector from
// seed and encapsulates it under pk.
func EncapsulateSeeded(pk *PublicKey, seed *[publickey.SeedBytes]byte) (Ciphertext, SessionKey) {
	return pk.Encapsulate(seed)
}

// EncapsulateDeterministic encapsulates the given error vector under
// pk. Exposed for known-answer tests; ordinary callers should use
// Encapsulate.
func EncapsulateDeterministic(pk *PublicKey, errorVec *[publickey.NBytes]byte) (Ciphertext, SessionKey) {
	return pk.EncapsulateDeterministic(errorVec)
}

// Decapsulate recovers the session key ct carries under sk. On a
// malformed or forged ciphertext this returns a session key derived
// from sk's implicit-rejection filler rather than an error, so the
// return value alone never reveals whether decapsulation succeeded.
func Decapsulate(sk *SecretKey, ct *Ciphertext) SessionKey {
	return sk.Decapsulate(ct)
}
