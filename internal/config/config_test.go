package config

import (
	"runtime"
	"testing"

	"mealtoys/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"MEALTOYS_ITERATION_LIMIT", "MEALTOYS_WORKERS", "MEALTOYS_SEED", "MEALTOYS_BINS",
		"MEALTOYS_HISTOGRAM_EDGE", "MEALTOYS_CHART_FILE", "MEALTOYS_CHART_ENABLED",
		"MEALTOYS_REPORT_FILE", "MEALTOYS_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultIterationLimit, cfg.Simulation.IterationLimit)
	assert.Equal(t, runtime.NumCPU(), cfg.Simulation.Workers)
	assert.Equal(t, uint64(0), cfg.Simulation.Seed)
	assert.Equal(t, DefaultBins, cfg.Histogram.Bins)
	assert.Equal(t, EdgeDrop, cfg.Histogram.Edge)
	assert.Equal(t, DefaultChartFile, cfg.Output.ChartFile)
	assert.True(t, cfg.Output.ChartEnabled)
	assert.Empty(t, cfg.Output.ReportFile)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("MEALTOYS_ITERATION_LIMIT", "5000")
	t.Setenv("MEALTOYS_WORKERS", "3")
	t.Setenv("MEALTOYS_SEED", "42")
	t.Setenv("MEALTOYS_BINS", "12")
	t.Setenv("MEALTOYS_HISTOGRAM_EDGE", "CLAMP")
	t.Setenv("MEALTOYS_CHART_ENABLED", "false")
	t.Setenv("MEALTOYS_REPORT_FILE", "out.xlsx")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Simulation.IterationLimit)
	assert.Equal(t, 3, cfg.Simulation.Workers)
	assert.Equal(t, uint64(42), cfg.Simulation.Seed)
	assert.Equal(t, 12, cfg.Histogram.Bins)
	assert.Equal(t, EdgeClamp, cfg.Histogram.Edge)
	assert.False(t, cfg.Output.ChartEnabled)
	assert.Equal(t, "out.xlsx", cfg.Output.ReportFile)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Simulation: SimulationConfig{IterationLimit: 10, Workers: 1},
			Histogram:  HistogramConfig{Bins: 1, Edge: EdgeDrop},
			Output:     OutputConfig{ChartFile: "h.png", ChartEnabled: true},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero iteration limit", func(c *Config) { c.Simulation.IterationLimit = 0 }},
		{"zero workers", func(c *Config) { c.Simulation.Workers = 0 }},
		{"zero bins", func(c *Config) { c.Histogram.Bins = 0 }},
		{"unknown edge", func(c *Config) { c.Histogram.Edge = "wrap" }},
		{"chart without file", func(c *Config) { c.Output.ChartFile = "" }},
	}

	require.NoError(t, Validate(valid()))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := Validate(cfg)
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}
