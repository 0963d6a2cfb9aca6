package rng

import (
	"math/rand/v2"
)

// PCGAdapter implements ports.RNGPort with one PCG generator per trial
type PCGAdapter struct{}

// NewPCGAdapter creates a new PCG stream source
func NewPCGAdapter() *PCGAdapter {
	return &PCGAdapter{}
}

// Stream derives a trial's generator from the run seed and the trial index.
// The index is scrambled so neighbouring trials start far apart in state space.
func (a *PCGAdapter) Stream(baseSeed uint64, trial int) *rand.Rand {
	return rand.New(rand.NewPCG(mix64(baseSeed), mix64(uint64(trial)^0x9e3779b97f4a7c15)))
}

// mix64 is the splitmix64 finalizer
func mix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
