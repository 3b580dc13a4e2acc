// Command mceliece-demo exercises the mceliece348864 key encapsulation
// mechanism end to end: it generates key pairs, encapsulates against a
// public key, and decapsulates a ciphertext, moving keys and ciphertexts
// as hex over stdin/stdout. It has no cryptographic logic of its own.
package main

import (
	"bufio"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/nixberg/classic-mceliece-go/mceliece348864"
)

func main() {
	generate := flag.Bool("generate", false, "generate a key pair and print secret key then public key, as hex")
	encapsulate := flag.Bool("encapsulate", false, "read a public key as hex from stdin, print ciphertext then session key, as hex")
	decapsulate := flag.Bool("decapsulate", false, "read a secret key then a ciphertext, each as a hex line from stdin, print the session key as hex")

	flag.Parse()

	var err error
	switch {
	case *generate:
		err = runGenerate(os.Stdout)
	case *encapsulate:
		err = runEncapsulate(os.Stdin, os.Stdout)
	case *decapsulate:
		err = runDecapsulate(os.Stdin, os.Stdout)
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "mceliece-demo:", err)
		os.Exit(1)
	}
}

func runGenerate(out io.Writer) error {
	sk, pk, err := mceliece348864.GenerateKeyPair()
	if err != nil {
		return fmt.Errorf("generate key pair: %w", err)
	}
	defer sk.Zeroize()

	skBytes, err := sk.MarshalBinary()
	if err != nil {
		return err
	}
	pkBytes, err := pk.MarshalBinary()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, hex.EncodeToString(skBytes))
	fmt.Fprintln(out, hex.EncodeToString(pkBytes))
	return nil
}

func runEncapsulate(in io.Reader, out io.Writer) error {
	line, err := readHexLine(in)
	if err != nil {
		return fmt.Errorf("read public key: %w", err)
	}
	pk, err := publicKeyFromBytes(line)
	if err != nil {
		return err
	}

	ct, ss, err := mceliece348864.Encapsulate(pk)
	if err != nil {
		return fmt.Errorf("encapsulate: %w", err)
	}

	fmt.Fprintln(out, hex.EncodeToString(ct[:]))
	fmt.Fprintln(out, hex.EncodeToString(ss[:]))
	return nil
}

func runDecapsulate(in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	skLine, err := readHexLineFrom(reader)
	if err != nil {
		return fmt.Errorf("read secret key: %w", err)
	}
	sk, err := mceliece348864.UnmarshalSecretKey(skLine)
	if err != nil {
		return fmt.Errorf("parse secret key: %w", err)
	}
	defer sk.Zeroize()

	ctLine, err := readHexLineFrom(reader)
	if err != nil {
		return fmt.Errorf("read ciphertext: %w", err)
	}
	ct, err := ciphertextFromBytes(ctLine)
	if err != nil {
		return err
	}

	ss := mceliece348864.Decapsulate(sk, &ct)
	fmt.Fprintln(out, hex.EncodeToString(ss[:]))
	return nil
}

func publicKeyFromBytes(b []byte) (*mceliece348864.PublicKey, error) {
	pk, err := mceliece348864.UnmarshalPublicKey(b)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	return pk, nil
}

func ciphertextFromBytes(b []byte) (mceliece348864.Ciphertext, error) {
	var ct mceliece348864.Ciphertext
	if len(b) != len(ct) {
		return ct, mceliece348864.ErrInvalidCiphertextSize
	}
	copy(ct[:], b)
	return ct, nil
}

func readHexLine(in io.Reader) ([]byte, error) {
	return readHexLineFrom(bufio.NewReader(in))
}

func readHexLineFrom(r *bufio.Reader) ([]byte, error) {
	line, err := r.ReadString('\n')
	if err != nil && len(line) == 0 {
		return nil, err
	}
	return hex.DecodeString(trimNewline(line))
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
