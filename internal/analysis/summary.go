package analysis

import (
	"mealtoys/domain/collection"
	"mealtoys/internal/errors"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summarize computes the mean and decile table of a set of observations.
//
// Deciles use the nearest-rank rule: the quantile at cut point p is the
// observation at 1-based rank ceil(p*N) of the sorted data, with rank 0
// mapped to the minimum and p = 1.0 mapped to the maximum. No interpolation
// between ranks is done, so every decile is an observed value.
//
// The input slice is not modified.
func Summarize(observations []float64) (*collection.Summary, error) {
	if len(observations) == 0 {
		return nil, errors.InvalidInput("cannot summarize an empty observation set")
	}

	mean, err := stats.Mean(observations)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute mean")
	}

	deciles, err := Deciles(observations)
	if err != nil {
		return nil, err
	}

	stdDev := 0.0
	if len(observations) > 1 {
		stdDev = stat.StdDev(observations, nil)
	}

	return &collection.Summary{
		Count:   len(observations),
		Mean:    mean,
		StdDev:  stdDev,
		Min:     floats.Min(observations),
		Max:     floats.Max(observations),
		Deciles: deciles,
	}, nil
}

// Deciles returns the nearest-rank quantiles at 0.1, 0.2, ..., 1.0
func Deciles(observations []float64) (collection.DecileTable, error) {
	var table collection.DecileTable
	if len(observations) == 0 {
		return table, errors.InvalidInput("cannot compute deciles of an empty observation set")
	}

	for i := range table {
		q, err := stats.PercentileNearestRank(observations, float64((i+1)*10))
		if err != nil {
			return table, errors.Wrapf(err, "failed to compute decile %d", i+1)
		}
		table[i] = q
	}
	return table, nil
}
