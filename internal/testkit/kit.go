package testkit

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"mealtoys/domain/collection"
	"mealtoys/internal/errors"
	"mealtoys/ports"
)

// Rand returns a fixed-seed generator for reproducible tests
func Rand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x5851f42d4c957f2d))
}

// FixedRNGAdapter implements ports.RNGPort by handing every trial the same
// seed, which makes every trial draw an identical sequence
type FixedRNGAdapter struct {
	Seed uint64
}

// Stream ignores the trial index
func (f *FixedRNGAdapter) Stream(baseSeed uint64, trial int) *rand.Rand {
	return Rand(f.Seed)
}

// CountingTrial returns a trial function that ignores its generator and
// returns 1, 2, 3, ... in invocation order. The sum over n invocations is
// n(n+1)/2 no matter how they are scheduled.
func CountingTrial() func(*rand.Rand) (int, error) {
	var calls atomic.Int64
	return func(*rand.Rand) (int, error) {
		return int(calls.Add(1)), nil
	}
}

// ConstantTrial returns a trial function that always yields v
func ConstantTrial(v int) func(*rand.Rand) (int, error) {
	return func(*rand.Rand) (int, error) {
		return v, nil
	}
}

// FailingTrial returns a trial function whose k-th invocation (1-based)
// fails with the iteration limit error; every other invocation yields 1
func FailingTrial(k int) func(*rand.Rand) (int, error) {
	var calls atomic.Int64
	return func(*rand.Rand) (int, error) {
		if int(calls.Add(1)) == k {
			return 0, errors.IterationLimitExceeded(10, 50)
		}
		return 1, nil
	}
}

// RecordingProgress implements ports.ProgressPort and counts notifications
type RecordingProgress struct {
	total      atomic.Int64
	increments atomic.Int64
	finished   atomic.Bool
}

func (p *RecordingProgress) Start(total int) { p.total.Store(int64(total)) }
func (p *RecordingProgress) Increment()      { p.increments.Add(1) }
func (p *RecordingProgress) Finish()         { p.finished.Store(true) }

func (p *RecordingProgress) Total() int      { return int(p.total.Load()) }
func (p *RecordingProgress) Increments() int { return int(p.increments.Load()) }
func (p *RecordingProgress) Finished() bool  { return p.finished.Load() }

// RecordingChart implements ports.ChartPort, keeps the histograms it was
// given and optionally fails
type RecordingChart struct {
	mu       sync.Mutex
	Rendered []*collection.Histogram
	Err      error
}

func (c *RecordingChart) RenderHistogram(ctx context.Context, h *collection.Histogram) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Rendered = append(c.Rendered, h)
	if c.Err != nil {
		return errors.RenderFailed("chart", c.Err)
	}
	return nil
}

// RecordingReport implements ports.ReportPort
type RecordingReport struct {
	mu      sync.Mutex
	Reports []*ports.Report
}

func (r *RecordingReport) WriteReport(ctx context.Context, report *ports.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Reports = append(r.Reports, report)
	return nil
}

// Sequence returns 1..n as float64 values
func Sequence(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i + 1)
	}
	return out
}

// Describe formats a histogram for assertion messages
func Describe(h *collection.Histogram) string {
	return fmt.Sprintf("min=%v max=%v counts=%v dropped=%d", h.Min, h.Max, h.Counts, h.Dropped)
}
