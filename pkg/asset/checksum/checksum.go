// Package checksum provides prefixed checksums of asset payloads and
// generated files.
//
// Format: "algorithm:hexvalue" (e.g., "sha256:c0ffee123...", "adler32:babe1337")
package checksum

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"hash/adler32"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Algorithm represents supported checksum algorithms
type Algorithm int

const (
	SHA256 Algorithm = iota
	SHA512
	Adler32
	Blake2b
)

func (a Algorithm) String() string {
	switch a {
	case SHA256:
		return "sha256"
	case SHA512:
		return "sha512"
	case Adler32:
		return "adler32"
	case Blake2b:
		return "blake2b"
	default:
		return "unknown"
	}
}

// ParseAlgorithm resolves an algorithm name.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(name) {
	case "sha256", "":
		return SHA256, nil
	case "sha512":
		return SHA512, nil
	case "adler32":
		return Adler32, nil
	case "blake2b":
		return Blake2b, nil
	default:
		return SHA256, fmt.Errorf("unknown checksum algorithm: %s", name)
	}
}

// Parse splits a checksum string into algorithm and hex value. Strings
// without a prefix are classified by length.
func Parse(checksum string) (Algorithm, string, error) {
	if prefix, value, ok := strings.Cut(checksum, ":"); ok {
		algo, err := ParseAlgorithm(prefix)
		if err != nil {
			return SHA256, "", err
		}
		if value == "" {
			return SHA256, "", fmt.Errorf("invalid checksum format: %s", checksum)
		}
		return algo, value, nil
	}

	switch len(checksum) {
	case 128:
		return SHA512, checksum, nil
	case 8:
		return Adler32, checksum, nil
	default:
		return SHA256, checksum, nil
	}
}

func newHash(algorithm Algorithm) hash.Hash {
	switch algorithm {
	case SHA512:
		return sha512.New()
	case Adler32:
		return adler32.New()
	case Blake2b:
		h, _ := blake2b.New256(nil) // only fails for oversized keys
		return h
	default:
		return sha256.New()
	}
}

// Calculate returns the prefixed checksum of data.
func Calculate(data []byte, algorithm Algorithm) string {
	h := newHash(algorithm)
	h.Write(data)
	return algorithm.String() + ":" + hex.EncodeToString(h.Sum(nil))
}

// Verify reports whether data matches checksum.
func Verify(data []byte, checksum string) (bool, error) {
	algo, expected, err := Parse(checksum)
	if err != nil {
		return false, err
	}

	_, actual, _ := strings.Cut(Calculate(data, algo), ":")
	return strings.EqualFold(actual, expected), nil
}
