package simulation

import (
	"context"
	"math/rand/v2"
	"runtime"
	"sync/atomic"
	"time"

	"mealtoys/internal/errors"
	"mealtoys/ports"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// TrialFunc runs one independent trial using the generator it is handed
type TrialFunc func(rng *rand.Rand) (int, error)

// Mode selects how trials are scheduled
type Mode int

const (
	ModeParallel Mode = iota
	ModeSequential
)

func (m Mode) String() string {
	if m == ModeSequential {
		return "sequential"
	}
	return "parallel"
}

// Options configures a Driver
type Options struct {
	Mode    Mode
	Workers int    // parallel mode only; <= 0 means runtime.NumCPU()
	Seed    uint64 // base seed every trial stream is derived from
}

// Driver runs many independent trials and collects their outcomes
type Driver struct {
	rngPort  ports.RNGPort
	progress ports.ProgressPort
	opts     Options
	logger   *log.Logger
}

// NewDriver creates a new trial driver. progress may be nil.
func NewDriver(rngPort ports.RNGPort, progress ports.ProgressPort, opts Options, logger *log.Logger) *Driver {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if progress == nil {
		progress = noProgress{}
	}
	return &Driver{
		rngPort:  rngPort,
		progress: progress,
		opts:     opts,
		logger:   logger.With("component", "driver"),
	}
}

// Run executes fn trialCount times and returns one outcome per trial, indexed
// by trial number. The first failing trial aborts the run and no outcomes are
// returned.
func (d *Driver) Run(ctx context.Context, trialCount int, fn TrialFunc) ([]int, error) {
	if trialCount < 1 {
		return nil, errors.InvalidInputf("trial count must be at least 1, got %d", trialCount)
	}

	d.logger.Debug("starting trials", "trials", trialCount, "mode", d.opts.Mode, "workers", d.opts.Workers, "seed", d.opts.Seed)
	start := time.Now()

	d.progress.Start(trialCount)
	defer d.progress.Finish()

	var (
		outcomes []int
		err      error
	)
	if d.opts.Mode == ModeSequential {
		outcomes, err = d.runSequential(ctx, trialCount, fn)
	} else {
		outcomes, err = d.runParallel(ctx, trialCount, fn)
	}
	if err != nil {
		return nil, err
	}

	d.logger.Debug("trials finished", "trials", trialCount, "elapsed", time.Since(start))
	return outcomes, nil
}

func (d *Driver) runSequential(ctx context.Context, trialCount int, fn TrialFunc) ([]int, error) {
	outcomes := make([]int, trialCount)
	for i := range outcomes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v, err := fn(d.rngPort.Stream(d.opts.Seed, i))
		if err != nil {
			return nil, errors.Wrapf(err, "trial %d failed", i)
		}
		outcomes[i] = v
		d.progress.Increment()
	}
	return outcomes, nil
}

func (d *Driver) runParallel(ctx context.Context, trialCount int, fn TrialFunc) ([]int, error) {
	outcomes := make([]int, trialCount)
	workers := min(d.opts.Workers, trialCount)

	// Workers claim trial indices from a shared cursor and write only their
	// own slots, so outcomes needs no lock.
	var next atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for {
				i := int(next.Add(1) - 1)
				if i >= trialCount {
					return nil
				}
				if err := gctx.Err(); err != nil {
					return err
				}
				v, err := fn(d.rngPort.Stream(d.opts.Seed, i))
				if err != nil {
					return errors.Wrapf(err, "trial %d failed", i)
				}
				outcomes[i] = v
				d.progress.Increment()
			}
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

type noProgress struct{}

func (noProgress) Start(int)  {}
func (noProgress) Increment() {}
func (noProgress) Finish()    {}
