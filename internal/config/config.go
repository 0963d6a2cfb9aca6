package config

import (
	"os"
	"runtime"
	"strconv"
	"strings"

	"mealtoys/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Simulation SimulationConfig
	Histogram  HistogramConfig
	Output     OutputConfig
	Logging    LoggingConfig
}

// SimulationConfig holds trial execution settings
type SimulationConfig struct {
	IterationLimit int
	Workers        int
	Seed           uint64
}

// HistogramConfig holds binning settings
type HistogramConfig struct {
	Bins int
	Edge string // "drop" or "clamp"
}

// OutputConfig holds chart and report destinations
type OutputConfig struct {
	ChartFile    string
	ChartEnabled bool
	ReportFile   string
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level string
}

const (
	EdgeDrop  = "drop"
	EdgeClamp = "clamp"

	DefaultIterationLimit = 100_000
	DefaultBins           = 30
	DefaultChartFile      = "histogram.png"
)

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Simulation: *loadSimulationConfig(),
		Histogram:  *loadHistogramConfig(),
		Output:     *loadOutputConfig(),
		Logging: LoggingConfig{
			Level: getEnvOrDefault("MEALTOYS_LOG_LEVEL", "info"),
		},
	}

	if err := Validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadSimulationConfig() *SimulationConfig {
	return &SimulationConfig{
		IterationLimit: getEnvIntOrDefault("MEALTOYS_ITERATION_LIMIT", DefaultIterationLimit),
		Workers:        getEnvIntOrDefault("MEALTOYS_WORKERS", runtime.NumCPU()),
		Seed:           getEnvUintOrDefault("MEALTOYS_SEED", 0),
	}
}

func loadHistogramConfig() *HistogramConfig {
	return &HistogramConfig{
		Bins: getEnvIntOrDefault("MEALTOYS_BINS", DefaultBins),
		Edge: strings.ToLower(getEnvOrDefault("MEALTOYS_HISTOGRAM_EDGE", EdgeDrop)),
	}
}

func loadOutputConfig() *OutputConfig {
	return &OutputConfig{
		ChartFile:    getEnvOrDefault("MEALTOYS_CHART_FILE", DefaultChartFile),
		ChartEnabled: getEnvBoolOrDefault("MEALTOYS_CHART_ENABLED", true),
		ReportFile:   getEnvOrDefault("MEALTOYS_REPORT_FILE", ""),
	}
}

// Validate checks a config after flags have been applied on top of it
func Validate(config *Config) error {
	if config.Simulation.IterationLimit < 1 {
		return errors.ConfigInvalid("iteration limit must be at least 1")
	}
	if config.Simulation.Workers < 1 {
		return errors.ConfigInvalid("worker count must be at least 1")
	}
	if config.Histogram.Bins < 1 {
		return errors.ConfigInvalid("histogram bins must be at least 1")
	}
	if config.Histogram.Edge != EdgeDrop && config.Histogram.Edge != EdgeClamp {
		return errors.ConfigInvalid("histogram edge must be \"drop\" or \"clamp\", got " + strconv.Quote(config.Histogram.Edge))
	}
	if config.Output.ChartEnabled && config.Output.ChartFile == "" {
		return errors.ConfigInvalid("chart file is required when charting is enabled")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvUintOrDefault(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if uintValue, err := strconv.ParseUint(value, 10, 64); err == nil {
			return uintValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
