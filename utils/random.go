package utils

import (
	"crypto/rand"
)

const idLength = 20

const randomCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

// RandomString returns a random string of lowercase alphanumeric
// characters of the given length.
func RandomString(length int) string {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		panic(err) // crypto/rand never fails on supported platforms
	}
	for i, b := range buf {
		buf[i] = randomCharset[int(b)%len(randomCharset)]
	}
	return string(buf)
}

// NewID returns a fresh 20-character record id, the fixed length used for
// tokens, menu items, and cart items alike.
func NewID() string {
	return RandomString(idLength)
}
