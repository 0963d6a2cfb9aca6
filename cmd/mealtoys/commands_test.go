package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"mealtoys/internal/config"
	"mealtoys/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Simulation: config.SimulationConfig{IterationLimit: config.DefaultIterationLimit, Workers: 2},
		Histogram:  config.HistogramConfig{Bins: config.DefaultBins, Edge: config.EdgeDrop},
		Output:     config.OutputConfig{ChartFile: filepath.Join(t.TempDir(), "histogram.png"), ChartEnabled: true},
		Logging:    config.LoggingConfig{Level: "error"},
	}
}

func execute(t *testing.T, cfg *config.Config, args ...string) (string, string, error) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := newRootCmd(cfg, stdout, stderr)
	cmd.SetArgs(args)
	cmd.SetOut(stderr)
	cmd.SetErr(stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootDefaultsRunOneTrialOfOneToy(t *testing.T) {
	cfg := testConfig(t)
	out, _, err := execute(t, cfg, "--bins", "2")
	require.NoError(t, err)

	assert.Equal(t, "mean: 1\ndeciles: [1 1 1 1 1 1 1 1 1 1]\nhistogram: [1 0]\n", out)
	assert.FileExists(t, cfg.Output.ChartFile)
}

func TestRootShortFlagsAndProgressBar(t *testing.T) {
	cfg := testConfig(t)
	out, stderr, err := execute(t, cfg, "-n", "6", "-i", "300", "--with-pb", "--seed", "42", "--no-chart")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "mean: "))
	assert.Contains(t, stderr, "300")
	assert.NoFileExists(t, cfg.Output.ChartFile)
}

func TestRootSeedIsReproducibleAcrossModes(t *testing.T) {
	cfg := testConfig(t)
	parallel, _, err := execute(t, cfg, "-n", "9", "-i", "500", "--seed", "5", "--no-chart")
	require.NoError(t, err)
	sequential, _, err := execute(t, cfg, "-n", "9", "-i", "500", "--seed", "5", "--no-chart", "--sequential")
	require.NoError(t, err)

	assert.Equal(t, parallel, sequential)
}

func TestRootReport(t *testing.T) {
	cfg := testConfig(t)
	report := filepath.Join(t.TempDir(), "run.xlsx")
	_, _, err := execute(t, cfg, "-n", "3", "-i", "50", "--no-chart", "--report", report)
	require.NoError(t, err)
	assert.FileExists(t, report)
}

func TestRootRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code string
	}{
		{"zero toys", []string{"-n", "0", "--no-chart"}, errors.CodeInvalidInput},
		{"zero iterations", []string{"-i", "0", "--no-chart"}, errors.CodeInvalidInput},
		{"zero bins", []string{"--bins", "0", "--no-chart"}, errors.CodeConfigInvalid},
		{"limit too small", []string{"-n", "50", "-i", "10", "--iteration-limit", "10", "--no-chart"}, errors.CodeIterationLimitExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, testConfig(t), tt.args...)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, tt.code), "got %v", err)
			assert.Empty(t, out)
		})
	}
}

func TestRootChartFailureAfterSummary(t *testing.T) {
	cfg := testConfig(t)
	out, _, err := execute(t, cfg, "-n", "3", "-i", "20", "--chart-file", filepath.Join(t.TempDir(), "no", "such", "h.png"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeRenderFailed, errors.GetCode(err))
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 3)
}

func TestExpect(t *testing.T) {
	out, _, err := execute(t, testConfig(t), "expect", "-n", "3", "--up-to")
	require.NoError(t, err)
	assert.Equal(t, "1 toys: 1.0000 meals\n2 toys: 3.0000 meals\n3 toys: 5.5000 meals\n", out)

	out, _, err = execute(t, testConfig(t), "expect", "-n", "1000")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "1,000 toys: "), out)
	assert.Contains(t, out, "485.4709 meals")

}

func TestExpectRejectsZeroToysWithDiagnostic(t *testing.T) {
	out, stderr, err := execute(t, testConfig(t), "expect", "-n", "0")
	require.Error(t, err)

	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
	assert.Empty(t, out)
	assert.Contains(t, stderr, errors.CodeInvalidInput)
	assert.Contains(t, stderr, "toy count must be at least 1, got 0")
}
