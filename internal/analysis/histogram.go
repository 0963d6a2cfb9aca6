package analysis

import (
	"math"

	"mealtoys/domain/collection"
	"mealtoys/internal/errors"

	"gonum.org/v1/gonum/floats"
)

// Bin splits [min, max] of values into buckets equal-width buckets and counts
// how many values fall in each. A value's bucket is floor((v-min)/width).
//
// The observed maximum computes to index == buckets. Under EdgeDrop it is
// left out of every bucket and counted in Dropped; under EdgeClamp it is
// counted in the last bucket. When every value is equal the width is zero
// and all values go to bucket 0.
func Bin(values []float64, buckets int, policy collection.EdgePolicy) (*collection.Histogram, error) {
	if len(values) == 0 {
		return nil, errors.InvalidInput("cannot bin an empty observation set")
	}
	if buckets < 1 {
		return nil, errors.InvalidInputf("bucket count must be at least 1, got %d", buckets)
	}
	if policy == "" {
		policy = collection.EdgeDrop
	}
	if policy != collection.EdgeDrop && policy != collection.EdgeClamp {
		return nil, errors.InvalidInputf("unknown histogram edge policy %q", policy)
	}

	h := &collection.Histogram{
		Min:    floats.Min(values),
		Max:    floats.Max(values),
		Counts: make([]int, buckets),
		Policy: policy,
	}

	if h.Max == h.Min {
		h.Counts[0] = len(values)
		return h, nil
	}

	width := (h.Max - h.Min) / float64(buckets)
	for _, v := range values {
		idx := int(math.Floor((v - h.Min) / width))
		if idx >= buckets {
			if policy == collection.EdgeClamp {
				idx = buckets - 1
			} else {
				h.Dropped++
				continue
			}
		}
		h.Counts[idx]++
	}

	return h, nil
}
