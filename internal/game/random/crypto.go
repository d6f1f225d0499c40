package random

import (
	"crypto/rand"
	"math/big"
)

// cryptoSource implements Source using crypto/rand.
//
// Invariant: values are uniformly distributed in [0, n) for any n > 0 and are
// not reproducible across runs.
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
func NewCryptoSource() Source {
	return &cryptoSource{}
}

// Uint64N returns a cryptographically secure random value in [0, n).
//
// Precondition: n > 0. Panics with "random: Uint64N called with n == 0" otherwise.
// Panics with "random: crypto/rand failure: <err>" if crypto/rand fails.
func (c *cryptoSource) Uint64N(n uint64) uint64 {
	if n == 0 {
		panic("random: Uint64N called with n == 0")
	}
	val, err := rand.Int(rand.Reader, new(big.Int).SetUint64(n))
	if err != nil {
		panic("random: crypto/rand failure: " + err.Error())
	}
	return val.Uint64()
}
