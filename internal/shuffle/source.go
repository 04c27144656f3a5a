// Package shuffle produces unbiased random permutations from an injectable
// source of randomness.
package shuffle

import (
	"math/rand/v2"
	"sync"
)

// Source yields uniformly distributed integers.
//
// IntN returns a value in [0, n). n is always > 0.
type Source interface {
	IntN(n int) int
}

// SourceFunc adapts a plain function to the Source interface.
type SourceFunc func(n int) int

// IntN calls f(n).
func (f SourceFunc) IntN(n int) int {
	return f(n)
}

// Identity is a Source that always picks the highest index, so Shuffle
// performs no swaps and returns the input order unchanged.
//
// Used by tests and by scenarios that pin the group assignment.
var Identity Source = SourceFunc(func(n int) int { return n - 1 })

// NewSeeded returns a reproducible Source. Two sources created with the
// same seed produce the same sequence.
func NewSeeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewRandom returns a Source seeded from the runtime's random generator,
// so sources created in the same instant still differ. This is the default
// for real draws.
func NewRandom() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Locked wraps a Source with a mutex, for callers that share one Source
// between several engines or goroutines. An Engine already serializes its
// own draws, so a Source used by a single engine needs no wrapping.
//
// *rand.Rand is not safe for concurrent use.
type Locked struct {
	mu  sync.Mutex
	src Source
}

// NewLocked wraps src.
func NewLocked(src Source) *Locked {
	return &Locked{src: src}
}

// IntN implements Source.
func (l *Locked) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.IntN(n)
}
