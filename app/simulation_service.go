package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"mealtoys/domain/collection"
	"mealtoys/internal/analysis"
	"mealtoys/internal/errors"
	"mealtoys/internal/simulation"
	"mealtoys/ports"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// SimulationRequest describes one estimation run
type SimulationRequest struct {
	Toys           int
	Trials         int
	IterationLimit int
	Bins           int
	Edge           collection.EdgePolicy
	Seed           uint64
}

// SimulationResult is everything a run produced
type SimulationResult struct {
	RunID     string
	Seed      uint64
	Expected  float64
	Outcomes  collection.ObservationSet
	Summary   *collection.Summary
	Histogram *collection.Histogram
	Elapsed   time.Duration
}

// SimulationService runs the trials, analyses the outcomes and hands them to
// the presentation adapters
type SimulationService struct {
	driver *simulation.Driver
	chart  ports.ChartPort  // nil disables the chart
	report ports.ReportPort // nil disables the report
	out    io.Writer
	logger *log.Logger
}

// NewSimulationService creates a new simulation service
func NewSimulationService(driver *simulation.Driver, chart ports.ChartPort, report ports.ReportPort, out io.Writer, logger *log.Logger) *SimulationService {
	return &SimulationService{
		driver: driver,
		chart:  chart,
		report: report,
		out:    out,
		logger: logger.With("component", "simulation"),
	}
}

// Validate rejects requests that cannot run, before any trial starts
func (r SimulationRequest) Validate() error {
	if r.Toys < 1 {
		return errors.InvalidInputf("toy count must be at least 1, got %d", r.Toys)
	}
	if r.Trials < 1 {
		return errors.InvalidInputf("trial count must be at least 1, got %d", r.Trials)
	}
	if r.IterationLimit < 1 {
		return errors.InvalidInputf("iteration limit must be at least 1, got %d", r.IterationLimit)
	}
	if r.Bins < 1 {
		return errors.InvalidInputf("histogram bins must be at least 1, got %d", r.Bins)
	}
	return nil
}

// Run executes the request. The summary is printed before the chart and the
// report are written, so an output failure leaves the printed results intact
// and is returned alongside the result.
func (s *SimulationService) Run(ctx context.Context, req SimulationRequest) (*SimulationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result := &SimulationResult{
		RunID:    uuid.NewString(),
		Seed:     req.Seed,
		Expected: analysis.ExpectedDraws(req.Toys),
	}
	logger := s.logger.With("run_id", result.RunID)
	logger.Info("starting simulation", "toys", req.Toys, "trials", req.Trials, "iteration_limit", req.IterationLimit, "seed", req.Seed)

	start := time.Now()
	outcomes, err := s.driver.Run(ctx, req.Trials, simulation.Sampler(req.Toys, req.IterationLimit))
	if err != nil {
		return nil, errors.Wrap(err, "simulation aborted")
	}
	result.Outcomes = outcomes
	result.Elapsed = time.Since(start)

	if err := s.analyse(ctx, result, req); err != nil {
		return nil, err
	}

	logger.Info("simulation finished",
		"elapsed", result.Elapsed,
		"mean", result.Summary.Mean,
		"expected", result.Expected,
		"relative_error", analysis.RelativeError(result.Summary.Mean, result.Expected),
		"std_dev", result.Summary.StdDev,
		"dropped", result.Histogram.Dropped,
	)

	if err := s.print(result); err != nil {
		return result, errors.Wrap(err, "failed to print summary")
	}

	if s.chart != nil {
		if err := s.chart.RenderHistogram(ctx, result.Histogram); err != nil {
			logger.Error("chart rendering failed", "err", err)
			return result, errors.WithCode(errors.CodeRenderFailed, err)
		}
	}

	if s.report != nil {
		if err := s.report.WriteReport(ctx, s.toReport(result, req)); err != nil {
			logger.Error("report export failed", "err", err)
			return result, errors.WithCode(errors.CodeRenderFailed, err)
		}
	}

	return result, nil
}

// analyse computes the summary and the histogram concurrently; both only
// read the observation snapshot
func (s *SimulationService) analyse(ctx context.Context, result *SimulationResult, req SimulationRequest) error {
	values := result.Outcomes.Floats()

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary, err := analysis.Summarize(values)
		if err != nil {
			return errors.Wrap(err, "failed to summarize outcomes")
		}
		result.Summary = summary
		return nil
	})
	g.Go(func() error {
		hist, err := analysis.Bin(values, req.Bins, req.Edge)
		if err != nil {
			return errors.Wrap(err, "failed to bin outcomes")
		}
		result.Histogram = hist
		return nil
	})
	return g.Wait()
}

func (s *SimulationService) print(result *SimulationResult) error {
	if _, err := fmt.Fprintf(s.out, "mean: %v\n", result.Summary.Mean); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.out, "deciles: %v\n", result.Summary.Deciles); err != nil {
		return err
	}
	_, err := fmt.Fprintf(s.out, "histogram: %v\n", result.Histogram.Counts)
	return err
}

func (s *SimulationService) toReport(result *SimulationResult, req SimulationRequest) *ports.Report {
	return &ports.Report{
		RunID:          result.RunID,
		CollectionSize: req.Toys,
		Trials:         req.Trials,
		Seed:           result.Seed,
		Expected:       result.Expected,
		Summary:        result.Summary,
		Histogram:      result.Histogram,
	}
}
