package simulation

import (
	"math/rand/v2"

	"mealtoys/internal/errors"
)

// Sample buys meals until every one of n toys has been found at least once
// and returns how many meals it took. Each meal holds a toy drawn uniformly
// from [0, n) with replacement.
//
// A trial that has not completed after limit draws fails with
// CodeIterationLimitExceeded: the limit is too small for n and the caller
// must raise it, so the failure is terminal rather than a partial count.
func Sample(n, limit int, rng *rand.Rand) (int, error) {
	if n < 1 {
		return 0, errors.InvalidInputf("toy count must be at least 1, got %d", n)
	}
	if limit < 1 {
		return 0, errors.InvalidInputf("iteration limit must be at least 1, got %d", limit)
	}

	owned := make([]bool, n)
	found := 0
	for i := 0; i < limit; i++ {
		toy := rng.IntN(n)
		if !owned[toy] {
			owned[toy] = true
			found++
		}
		if found == n {
			return i + 1, nil
		}
	}

	return 0, errors.IterationLimitExceeded(limit, n)
}

// Sampler returns a TrialFunc that runs Sample with fixed parameters
func Sampler(n, limit int) TrialFunc {
	return func(rng *rand.Rand) (int, error) {
		return Sample(n, limit, rng)
	}
}
