// Package random provides the production randomness source for outcome
// generation. The generator is seeded from crypto/rand once at startup and
// serialized with a mutex so concurrent settlements can share it.
package random

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sync"

	coreport "github.com/crownplay/casino-engine/internal/domain/port/core"
)

// Source implements the uniform randomness port
type Source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSource creates a crypto-seeded generator
func NewSource() *Source {
	var seed int64
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err == nil {
		seed = int64(binary.LittleEndian.Uint64(buf[:]))
	} else {
		// Falling back to the global source keeps the process alive when the
		// system entropy pool is unreadable
		seed = rand.Int63()
	}
	return NewSeededSource(seed)
}

// NewSeededSource creates a generator with a fixed seed for reproducible runs
func NewSeededSource(seed int64) *Source {
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

// Float64 returns a uniform value in [0.0, 1.0)
func (s *Source) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// Intn returns a uniform value in [0, n)
func (s *Source) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// Shuffle randomizes the order of n elements using the swap function
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(n, swap)
}

var _ coreport.Rand = (*Source)(nil)
