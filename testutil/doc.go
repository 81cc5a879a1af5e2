// Package testutil provides testing utilities for access.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe random source for generating
// randomized access patterns.
//
// # Random Index Generation
//
//	rng := testutil.NewRNG(seed)
//	idx := rng.Indices(4, 16)   // up to 4 distinct indices in [0, 16)
//	if rng.Chance(0.1) {        // true with probability 0.1
//	    // ...
//	}
package testutil
