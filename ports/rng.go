package ports

import (
	"math/rand/v2"
)

// RNGPort provides seeded random number generation for trials
type RNGPort interface {
	// Stream returns the generator owned by a single trial. Streams for
	// different trial indices are independent; the same (seed, trial) pair
	// always yields the same sequence.
	Stream(baseSeed uint64, trial int) *rand.Rand
}
