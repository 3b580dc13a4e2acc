package mceliece348864

import (
	"testing"

	"github.com/nixberg/classic-mceliece-go/gf4096poly"
	"github.com/nixberg/classic-mceliece-go/internal/xof"
	"github.com/nixberg/classic-mceliece-go/publickey"
)

func TestGenerateKeyPairSeededIsDeterministic(t *testing.T) {
	var seed [SeedBytes]byte
	for i := range seed {
		seed[i] = byte(i * 3)
	}

	sk1, pk1 := GenerateKeyPairSeeded(&seed)
	sk2, pk2 := GenerateKeyPairSeeded(&seed)

	if *pk1 != *pk2 {
		t.Fatal("GenerateKeyPairSeeded produced different public keys from the same seed")
	}
	if *sk1 != *sk2 {
		t.Fatal("GenerateKeyPairSeeded produced different secret keys from the same seed")
	}
}

func TestEncapsulateDecapsulateRoundTrip(t *testing.T) {
	var seed [SeedBytes]byte
	for i := range seed {
		seed[i] = byte(i * 5)
	}
	sk, pk := GenerateKeyPairSeeded(&seed)

	var randSeed [publickey.SeedBytes]byte
	for i := range randSeed {
		randSeed[i] = byte(i + 1)
	}

	ct, wantSessionKey := EncapsulateSeeded(pk, &randSeed)
	gotSessionKey := Decapsulate(sk, &ct)

	if gotSessionKey != wantSessionKey {
		t.Fatal("Decapsulate did not recover the encapsulated session key")
	}
}

func TestSchemeRoundTrip(t *testing.T) {
	scheme := NewScheme()

	if got, want := scheme.PublicKeySize(), publickey.Bytes; got != want {
		t.Fatalf("PublicKeySize() = %d, want %d", got, want)
	}
	if got, want := scheme.CiphertextSize(), publickey.CiphertextBytes; got != want {
		t.Fatalf("CiphertextSize() = %d, want %d", got, want)
	}
	if got, want := scheme.SharedKeySize(), publickey.SessionKeyBytes; got != want {
		t.Fatalf("SharedKeySize() = %d, want %d", got, want)
	}

	seed := make([]byte, scheme.SeedSize())
	for i := range seed {
		seed[i] = byte(i * 7)
	}

	pk, sk, err := scheme.DeriveKeyPair(seed)
	if err != nil {
		t.Fatalf("DeriveKeyPair: %v", err)
	}

	ct, ss1, err := scheme.Encapsulate(pk)
	if err != nil {
		t.Fatalf("Encapsulate: %v", err)
	}

	ss2, err := scheme.Decapsulate(sk, ct)
	if err != nil {
		t.Fatalf("Decapsulate: %v", err)
	}

	if string(ss1) != string(ss2) {
		t.Fatal("Scheme round trip produced different shared keys")
	}

	pkBytes, err := pk.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	pk2, err := scheme.UnmarshalBinaryPublicKey(pkBytes)
	if err != nil {
		t.Fatalf("UnmarshalBinaryPublicKey: %v", err)
	}
	ct2, ss3, err := scheme.EncapsulateDeterministically(pk2, make([]byte, publickey.SeedBytes))
	if err != nil {
		t.Fatalf("EncapsulateDeterministically: %v", err)
	}
	ct3, ss4, err := scheme.EncapsulateDeterministically(pk, make([]byte, publickey.SeedBytes))
	if err != nil {
		t.Fatalf("EncapsulateDeterministically: %v", err)
	}
	if string(ct2) != string(ct3) || string(ss3) != string(ss4) {
		t.Fatal("unmarshaled public key did not reproduce the same deterministic encapsulation")
	}
}

func TestSchemeRejectsWrongKeyType(t *testing.T) {
	scheme := NewScheme()

	if _, _, err := scheme.Encapsulate(fakeKey{}); err != ErrInvalidKeyType {
		t.Fatalf("Encapsulate(wrong type) = %v, want ErrInvalidKeyType", err)
	}
	if _, err := scheme.Decapsulate(fakeKey{}, make([]byte, publickey.CiphertextBytes)); err != ErrInvalidKeyType {
		t.Fatalf("Decapsulate(wrong type) = %v, want ErrInvalidKeyType", err)
	}
}

func TestSchemeRejectsWrongSeedAndCiphertextLengths(t *testing.T) {
	scheme := NewScheme()

	if _, _, err := scheme.DeriveKeyPair(make([]byte, 1)); err != ErrInvalidSeedLength {
		t.Fatalf("DeriveKeyPair(short seed) = %v, want ErrInvalidSeedLength", err)
	}

	var seed [SeedBytes]byte
	sk, _ := GenerateKeyPairSeeded(&seed)
	if _, err := scheme.Decapsulate(sk, make([]byte, 1)); err != ErrInvalidCiphertextSize {
		t.Fatalf("Decapsulate(short ciphertext) = %v, want ErrInvalidCiphertextSize", err)
	}
}

type fakeKey struct{}

func (fakeKey) MarshalBinary() ([]byte, error) { return nil, nil }

// TestGeneratorDomainSeparation checks that the key-generation XOF seed
// expansion, domain-separated from every other XOF use in this package,
// produces different output than the same seed squeezed under a
// different domain byte.
func TestGeneratorDomainSeparation(t *testing.T) {
	var seed [SeedBytes]byte
	for i := range seed {
		seed[i] = byte(i)
	}

	genA := xof.New(keypairDomain, &seed)
	genB := xof.New(keypairDomain+1, &seed)

	var outA, outB [32]byte
	genA.Squeeze(outA[:])
	genB.Squeeze(outB[:])

	if outA == outB {
		t.Fatal("two different domain bytes produced identical XOF output")
	}
}

// TestIrreducibleKnownSeed exercises the Goppa-polynomial construction
// this package's key generation depends on, confirming it accepts a
// concrete seed and returns a polynomial whose evaluation is
// self-consistent.
func TestIrreducibleKnownSeed(t *testing.T) {
	var seed [gf4096poly.Bytes]byte
	for i := range seed {
		seed[i] = byte(i*31 + 1)
	}

	g, ok := gf4096poly.Irreducible(&seed)
	if !ok {
		t.Skip("seed did not yield an irreducible polynomial")
	}

	// A monic polynomial's value at 0 is its constant term.
	if got, want := g.EvaluateAt(0), g[0]; got != want {
		t.Fatalf("g(0) = %#x, want constant term %#x", got, want)
	}
}
