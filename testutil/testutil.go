package testutil

import (
	"math/rand"
	"sort"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float32 returns, as a float32, a pseudo-random number in [0.0,1.0).
func (r *RNG) Float32() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float32()
}

// Chance returns true with probability p.
func (r *RNG) Chance(p float32) bool {
	return r.Float32() < p
}

// Index returns a pseudo-random dense index in [0, universe).
func (r *RNG) Index(universe int) uint32 {
	return uint32(r.Intn(universe))
}

// Indices returns up to n distinct dense indices in [0, universe), sorted
// ascending. The count itself is random in [0, n].
func (r *RNG) Indices(n, universe int) []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := r.rand.Intn(n + 1)
	seen := make(map[uint32]struct{}, count)
	out := make([]uint32, 0, count)
	for range count {
		i := uint32(r.rand.Intn(universe))
		if _, ok := seen[i]; ok {
			continue
		}
		seen[i] = struct{}{}
		out = append(out, i)
	}
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })
	return out
}
