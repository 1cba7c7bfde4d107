package engine

import (
	"math/rand/v2"
	"sync"
)

// Randomizer selects an index in [0, n). Implementations must be safe for
// concurrent use.
type Randomizer interface {
	IntN(n int) int
}

// GlobalRand draws from the runtime-seeded top-level generator, which is
// goroutine-safe and keeps no per-caller iterator state.
type GlobalRand struct{}

// IntN implements Randomizer.
func (GlobalRand) IntN(n int) int {
	return rand.IntN(n)
}

// SeededRand is a reproducible Randomizer for tests and demos.
type SeededRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededRand returns a PCG-backed generator seeded with seed.
func NewSeededRand(seed uint64) *SeededRand {
	return &SeededRand{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// IntN implements Randomizer.
func (s *SeededRand) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// pick returns a uniformly chosen element of list, or false when list is empty.
func pick(rnd Randomizer, list []string) (string, bool) {
	if len(list) == 0 {
		return "", false
	}
	return list[rnd.IntN(len(list))], true
}
