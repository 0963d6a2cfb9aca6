package ports

import (
	"context"

	"mealtoys/domain/collection"
)

// ChartPort renders a histogram to an image. Implementations must not modify it.
type ChartPort interface {
	RenderHistogram(ctx context.Context, h *collection.Histogram) error
}

// Report bundles everything a report writer needs about a finished run
type Report struct {
	RunID          string
	CollectionSize int
	Trials         int
	Seed           uint64
	Expected       float64
	Summary        *collection.Summary
	Histogram      *collection.Histogram
}

// ReportPort exports a finished run
type ReportPort interface {
	WriteReport(ctx context.Context, report *Report) error
}
