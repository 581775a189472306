// Package randutil constructs the random sources used for deck shuffling.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from the provided int64.
// rand/v2's PCG wants two 64-bit seeds; deriving both here keeps every call
// site reproducible for a given input.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// FromClock returns a *rand.Rand seeded from the current time, for production
// shuffles where reproducibility is not wanted.
func FromClock() *rand.Rand {
	return New(time.Now().UnixNano())
}

// mix is splitmix64's finalizer; it spreads low-entropy seeds (small
// integers, adjacent timestamps) across the full 64-bit range.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
