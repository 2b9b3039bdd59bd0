package utils

import (
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/blake2b"
)

// Process-wide hashing secret, loaded from .env at startup
var HashingSecret = []byte("thisIsASecret")

// Hash returns the hex digest of a blake2b-256 keyed hash of s. The digest
// is deterministic for a given secret, so login can recompute and compare.
// Empty input is rejected.
func Hash(s string) (string, error) {
	if s == "" {
		return "", errors.New("cannot hash an empty string")
	}

	h, err := blake2b.New256(HashingSecret)
	if err != nil {
		return "", err
	}
	h.Write([]byte(s))
	return hex.EncodeToString(h.Sum(nil)), nil
}
