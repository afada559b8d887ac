// Package random provides an injectable source of random numbers.
package random

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	mathrand "math/rand"
	"sync"
)

// Rand is a source of random integers.
type Rand interface {
	Intn(n int) int
}

// CryptoRand is a Rand seeded from crypto/rand. Safe for concurrent use.
type CryptoRand struct {
	mu sync.Mutex
	r  *mathrand.Rand
}

// NewCryptoRand creates a CryptoRand with a cryptographically random seed.
func NewCryptoRand() *CryptoRand {
	seedBytes := make([]byte, 8)

	if _, err := cryptoRand.Read(seedBytes); err != nil {
		return &CryptoRand{r: mathrand.New(mathrand.NewSource(1))}
	}

	//nolint:gosec // seed only, overflow is harmless
	seed := int64(binary.LittleEndian.Uint64(seedBytes))
	return &CryptoRand{r: mathrand.New(mathrand.NewSource(seed))}
}

// Intn returns a random number in [0, n).
func (c *CryptoRand) Intn(n int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.r.Intn(n)
}

// Sequence replays fixed values in order, wrapping around. Values are
// reduced into [0, n), so negative values wrap from the top. Intended for tests.
type Sequence struct {
	mu     sync.Mutex
	values []int
	next   int
}

// NewSequence returns a Sequence over values.
func NewSequence(values ...int) *Sequence {
	return &Sequence{values: values}
}

// Intn returns the next value reduced into [0, n).
func (s *Sequence) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return ((v % n) + n) % n
}
