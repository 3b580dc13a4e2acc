package mceliece348864

import (
	"errors"

	"github.com/nixberg/classic-mceliece-go/publickey"
	"github.com/nixberg/classic-mceliece-go/secretkey"
)

// ErrMalformedSecretKey is returned by UnmarshalSecretKey when its
// input is not a validly-encoded secret key.
var ErrMalformedSecretKey = secretkey.ErrMalformedSecretKey

// ErrInvalidSeedLength is returned by DeriveKeyPair when its seed
// argument is not exactly SeedBytes long.
var ErrInvalidSeedLength = errors.New("mceliece348864: seed must be 32 bytes")

// ErrInvalidKeyType is returned by Scheme's methods when given a key
// that did not originate from this package.
var ErrInvalidKeyType = errors.New("mceliece348864: key is not a mceliece348864 key")

// ErrInvalidCiphertextSize is returned by Scheme.Decapsulate when its
// ciphertext argument is not exactly CiphertextSize bytes long.
var ErrInvalidCiphertextSize = errors.New("mceliece348864: ciphertext has the wrong size")

// UnmarshalSecretKey parses a secret key from its 6492-byte encoding.
func UnmarshalSecretKey(b []byte) (*SecretKey, error) {
	return secretkey.UnmarshalBinary(b)
}

// UnmarshalPublicKey parses a public key from its 261120-byte encoding.
func UnmarshalPublicKey(b []byte) (*PublicKey, error) {
	return publickey.UnmarshalBinary(b)
}
