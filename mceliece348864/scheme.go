package mceliece348864

import (
	"github.com/nixberg/classic-mceliece-go/publickey"
	"github.com/nixberg/classic-mceliece-go/secretkey"
)

// KEMPublicKey and KEMPrivateKey are the minimal key shapes Scheme's
// methods exchange, satisfied by *PublicKey and *SecretKey.
type KEMPublicKey interface {
	MarshalBinary() ([]byte, error)
}

// KEMPrivateKey is the minimal key shape Scheme's decapsulation and
// key-derivation methods exchange.
type KEMPrivateKey interface {
	MarshalBinary() ([]byte, error)
}

// Scheme mirrors the method set of circl's kem.Scheme interface, so
// code written against that interface shape can be pointed at this
// implementation without depending on circl itself.
type Scheme interface {
	Name() string
	PublicKeySize() int
	PrivateKeySize() int
	SeedSize() int
	CiphertextSize() int
	SharedKeySize() int

	GenerateKeyPair() (KEMPublicKey, KEMPrivateKey, error)
	DeriveKeyPair(seed []byte) (KEMPublicKey, KEMPrivateKey, error)

	Encapsulate(pk KEMPublicKey) (ct, ss []byte, err error)
	EncapsulateDeterministically(pk KEMPublicKey, seed []byte) (ct, ss []byte, err error)
	Decapsulate(sk KEMPrivateKey, ct []byte) ([]byte, error)

	UnmarshalBinaryPublicKey(buf []byte) (KEMPublicKey, error)
	UnmarshalBinaryPrivateKey(buf []byte) (KEMPrivateKey, error)
}

type scheme struct{}

// NewScheme returns the mceliece348864 Scheme implementation.
func NewScheme() Scheme { return scheme{} }

func (scheme) Name() string           { return "Classic-McEliece-348864" }
func (scheme) PublicKeySize() int     { return publickey.Bytes }
func (scheme) PrivateKeySize() int    { return secretkey.Bytes }
func (scheme) SeedSize() int          { return SeedBytes }
func (scheme) CiphertextSize() int    { return publickey.CiphertextBytes }
func (scheme) SharedKeySize() int     { return publickey.SessionKeyBytes }

func (scheme) GenerateKeyPair() (KEMPublicKey, KEMPrivateKey, error) {
	sk, pk, err := GenerateKeyPair()
	if err != nil {
		return nil, nil, err
	}
	return pk, sk, nil
}

func (scheme) DeriveKeyPair(seed []byte) (KEMPublicKey, KEMPrivateKey, error) {
	if len(seed) != SeedBytes {
		return nil, nil, ErrInvalidSeedLength
	}
	var s [SeedBytes]byte
	copy(s[:], seed)
	sk, pk := GenerateKeyPairSeeded(&s)
	return pk, sk, nil
}

func (scheme) Encapsulate(pk KEMPublicKey) (ct, ss []byte, err error) {
	p, ok := pk.(*PublicKey)
	if !ok {
		return nil, nil, ErrInvalidKeyType
	}
	c, s, err := Encapsulate(p)
	if err != nil {
		return nil, nil, err
	}
	return c[:], s[:], nil
}

func (scheme) EncapsulateDeterministically(pk KEMPublicKey, seed []byte) (ct, ss []byte, err error) {
	p, ok := pk.(*PublicKey)
	if !ok {
		return nil, nil, ErrInvalidKeyType
	}
	if len(seed) != publickey.SeedBytes {
		return nil, nil, ErrInvalidSeedLength
	}
	var s [publickey.SeedBytes]byte
	copy(s[:], seed)
	c, ss32 := EncapsulateSeeded(p, &s)
	return c[:], ss32[:], nil
}

func (scheme) Decapsulate(sk KEMPrivateKey, ct []byte) ([]byte, error) {
	s, ok := sk.(*SecretKey)
	if !ok {
		return nil, ErrInvalidKeyType
	}
	if len(ct) != publickey.CiphertextBytes {
		return nil, ErrInvalidCiphertextSize
	}
	var c Ciphertext
	copy(c[:], ct)
	ss := Decapsulate(s, &c)
	return ss[:], nil
}

func (scheme) UnmarshalBinaryPublicKey(buf []byte) (KEMPublicKey, error) {
	return publickey.UnmarshalBinary(buf)
}

func (scheme) UnmarshalBinaryPrivateKey(buf []byte) (KEMPrivateKey, error) {
	return secretkey.UnmarshalBinary(buf)
}
