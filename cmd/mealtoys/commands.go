package main

import (
	"io"
	"time"

	"mealtoys/adapters/chart"
	"mealtoys/adapters/excel"
	"mealtoys/adapters/progress"
	"mealtoys/adapters/rng"
	"mealtoys/app"
	"mealtoys/domain/collection"
	"mealtoys/internal/analysis"
	"mealtoys/internal/config"
	"mealtoys/internal/errors"
	"mealtoys/internal/logging"
	"mealtoys/internal/simulation"
	"mealtoys/ports"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type runOptions struct {
	nbToys         int
	iterations     int
	withPB         bool
	seed           uint64
	bins           int
	iterationLimit int
	workers        int
	sequential     bool
	noChart        bool
	chartFile      string
	clampTop       bool
	reportFile     string
	logLevel       string
}

func newRootCmd(cfg *config.Config, stdout, stderr io.Writer) *cobra.Command {
	opts := runOptions{
		nbToys:         1,
		iterations:     1,
		seed:           cfg.Simulation.Seed,
		bins:           cfg.Histogram.Bins,
		iterationLimit: cfg.Simulation.IterationLimit,
		workers:        cfg.Simulation.Workers,
		noChart:        !cfg.Output.ChartEnabled,
		chartFile:      cfg.Output.ChartFile,
		clampTop:       cfg.Histogram.Edge == config.EdgeClamp,
		reportFile:     cfg.Output.ReportFile,
		logLevel:       cfg.Logging.Level,
	}

	rootCmd := &cobra.Command{
		Use:   "mealtoys",
		Short: "Estimate how many meals it takes to collect every toy",
		Long: `Run a Monte Carlo simulation of the coupon collector problem: buy meals,
each holding one of --nb-toys toys chosen uniformly at random, until every toy
has been found. Repeat for --iterations trials and print the mean, the deciles
and a histogram of the number of meals bought.

Example: mealtoys -n 50 -i 100000 --with-pb --seed 42`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(cmd, cfg, opts, stdout, stderr)
		},
	}

	flags := rootCmd.Flags()
	flags.IntVarP(&opts.nbToys, "nb-toys", "n", opts.nbToys, "Number of toys to find")
	flags.IntVarP(&opts.iterations, "iterations", "i", opts.iterations, "Number of iterations the simulation will run")
	flags.BoolVar(&opts.withPB, "with-pb", false, "Show a progress bar while trials run")
	flags.Uint64Var(&opts.seed, "seed", opts.seed, "Base random seed (0 picks one from the clock)")
	flags.IntVar(&opts.bins, "bins", opts.bins, "Number of histogram buckets")
	flags.IntVar(&opts.iterationLimit, "iteration-limit", opts.iterationLimit, "Maximum meals bought in a single trial before the run aborts")
	flags.IntVar(&opts.workers, "workers", opts.workers, "Parallel workers")
	flags.BoolVar(&opts.sequential, "sequential", false, "Run trials one after another on a single goroutine")
	flags.BoolVar(&opts.noChart, "no-chart", opts.noChart, "Do not write the histogram image")
	flags.StringVar(&opts.chartFile, "chart-file", opts.chartFile, "Histogram image path")
	flags.BoolVar(&opts.clampTop, "clamp-top", opts.clampTop, "Count the maximum in the last bucket instead of dropping it")
	flags.StringVar(&opts.reportFile, "report", opts.reportFile, "Write an .xlsx report to this path")
	flags.StringVar(&opts.logLevel, "log-level", opts.logLevel, "Log level: debug|info|warn|error")

	rootCmd.AddCommand(newExpectCmd(stdout, stderr, cfg.Logging.Level))

	return rootCmd
}

func runSimulation(cmd *cobra.Command, cfg *config.Config, opts runOptions, stdout, stderr io.Writer) error {
	logger := logging.NewWithWriter(stderr, opts.logLevel)

	effective := *cfg
	effective.Simulation.IterationLimit = opts.iterationLimit
	effective.Simulation.Workers = opts.workers
	effective.Histogram.Bins = opts.bins
	effective.Output.ChartEnabled = !opts.noChart
	effective.Output.ChartFile = opts.chartFile
	effective.Histogram.Edge = config.EdgeDrop
	if opts.clampTop {
		effective.Histogram.Edge = config.EdgeClamp
	}
	if err := config.Validate(&effective); err != nil {
		logger.Error("invalid configuration", "code", errors.GetCode(err), "err", err)
		return err
	}

	seed := opts.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	mode := simulation.ModeParallel
	if opts.sequential {
		mode = simulation.ModeSequential
	}

	var progressPort ports.ProgressPort = progress.Silent{}
	if opts.withPB {
		progressPort = progress.NewBarReporter(stderr)
	}

	driver := simulation.NewDriver(rng.NewPCGAdapter(), progressPort, simulation.Options{
		Mode:    mode,
		Workers: effective.Simulation.Workers,
		Seed:    seed,
	}, logger)

	var chartPort ports.ChartPort
	if effective.Output.ChartEnabled {
		chartPort = chart.NewPNGRenderer(effective.Output.ChartFile, logger)
	}
	var reportPort ports.ReportPort
	if opts.reportFile != "" {
		reportPort = excel.NewReportWriter(opts.reportFile, logger)
	}

	service := app.NewSimulationService(driver, chartPort, reportPort, stdout, logger)
	_, err := service.Run(cmd.Context(), app.SimulationRequest{
		Toys:           opts.nbToys,
		Trials:         opts.iterations,
		IterationLimit: effective.Simulation.IterationLimit,
		Bins:           effective.Histogram.Bins,
		Edge:           collection.EdgePolicy(effective.Histogram.Edge),
		Seed:           seed,
	})
	if err != nil {
		logger.Error("run failed", "code", errors.GetCode(err), "err", err)
		return err
	}
	return nil
}

func newExpectCmd(stdout, stderr io.Writer, logLevel string) *cobra.Command {
	var nbToys int
	var upTo bool

	cmd := &cobra.Command{
		Use:   "expect",
		Short: "Print the closed-form expected number of meals n*H(n)",
		Long: `Print the exact expected number of meals needed to collect n toys,
n * (1 + 1/2 + ... + 1/n), without running any trial.

Example: mealtoys expect -n 100 --up-to`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if nbToys < 1 {
				err := errors.InvalidInputf("toy count must be at least 1, got %d", nbToys)
				logging.NewWithWriter(stderr, logLevel).Error("invalid input", "code", errors.GetCode(err), "err", err)
				return err
			}
			p := message.NewPrinter(language.English)
			from := nbToys
			if upTo {
				from = 1
			}
			for n := from; n <= nbToys; n++ {
				if _, err := p.Fprintf(stdout, "%d toys: %.4f meals\n", n, analysis.ExpectedDraws(n)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&nbToys, "nb-toys", "n", 1, "Number of toys to find")
	cmd.Flags().BoolVar(&upTo, "up-to", false, "Print every collection size from 1 to n")
	return cmd
}
