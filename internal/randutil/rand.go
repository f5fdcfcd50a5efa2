// Package randutil centralises how deterministic RNGs are constructed so that
// every component that takes a seed produces reproducible sequences.
package randutil

import rand "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from the provided int64.
// rand/v2's PCG wants two 64-bit seeds; both are derived from the one input
// via a splitmix-style finalizer so that nearby seeds diverge.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// GameSeed derives the seed for the nth game of a run from the run seed.
// Keeping the derivation in one place lets a single game be replayed from
// the run seed and its index alone.
func GameSeed(runSeed int64, n int) int64 {
	return runSeed + int64(n)
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
