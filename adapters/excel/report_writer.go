package excel

import (
	"context"
	"fmt"

	"mealtoys/internal/errors"
	"mealtoys/ports"

	"github.com/charmbracelet/log"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet   = "Summary"
	histogramSheet = "Histogram"
)

// ReportWriter implements ports.ReportPort as an .xlsx workbook with a
// Summary sheet and a Histogram sheet
type ReportWriter struct {
	filePath string
	logger   *log.Logger
}

// NewReportWriter creates a new report writer for filePath
func NewReportWriter(filePath string, logger *log.Logger) *ReportWriter {
	return &ReportWriter{
		filePath: filePath,
		logger:   logger.With("component", "report"),
	}
}

// WriteReport saves the run to the workbook, replacing any existing file
func (w *ReportWriter) WriteReport(ctx context.Context, report *ports.Report) error {
	if report == nil || report.Summary == nil || report.Histogram == nil {
		return errors.InvalidInput("report requires a summary and a histogram")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return errors.RenderFailed(w.filePath, err)
	}
	if err := writeSummary(f, report); err != nil {
		return errors.RenderFailed(w.filePath, err)
	}

	if _, err := f.NewSheet(histogramSheet); err != nil {
		return errors.RenderFailed(w.filePath, err)
	}
	if err := writeHistogram(f, report); err != nil {
		return errors.RenderFailed(w.filePath, err)
	}

	if err := f.SaveAs(w.filePath); err != nil {
		return errors.RenderFailed(w.filePath, err)
	}

	w.logger.Info("report saved", "path", w.filePath, "run_id", report.RunID)
	return nil
}

func writeSummary(f *excelize.File, report *ports.Report) error {
	s := report.Summary
	rows := [][]interface{}{
		{"run_id", report.RunID},
		{"toys", report.CollectionSize},
		{"trials", report.Trials},
		{"seed", fmt.Sprintf("%d", report.Seed)},
		{"mean", s.Mean},
		{"expected", report.Expected},
		{"std_dev", s.StdDev},
		{"min", s.Min},
		{"max", s.Max},
	}
	for i, q := range s.Deciles {
		rows = append(rows, []interface{}{fmt.Sprintf("decile_%d", (i+1)*10), q})
	}

	return writeRows(f, summarySheet, rows)
}

func writeHistogram(f *excelize.File, report *ports.Report) error {
	h := report.Histogram
	width := h.Width()

	rows := [][]interface{}{{"bucket", "lower", "upper", "count"}}
	for i, c := range h.Counts {
		lower := h.Min + float64(i)*width
		rows = append(rows, []interface{}{i, lower, lower + width, c})
	}
	rows = append(rows, []interface{}{"dropped", nil, nil, h.Dropped})

	return writeRows(f, histogramSheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
