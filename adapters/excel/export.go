package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"framelens/domain/stats"
	"framelens/internal/errors"
)

// Exporter writes comparison reports as .xlsx workbooks
type Exporter struct{}

// NewExporter creates a report exporter
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export writes the report to path with a summary sheet and a test sheet
func (e *Exporter) Export(report *stats.ComparisonReport, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	summary := "Summary"
	f.SetSheetName("Sheet1", summary)

	headers := []string{"Dataset", "Frames", "Avg", "Min", "Max", "StdDev", "P1", "P0.1", "P0.01", "1% Low", "0.1% Low", "0.01% Low", "Consistency", "Bad Transitions"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(summary, cell, h)
	}
	e.writeSummaryRow(f, summary, 2, report.A)
	e.writeSummaryRow(f, summary, 3, report.B)

	testsSheet := "Tests"
	f.NewSheet(testsSheet)
	testHeaders := []string{"Test", "Statistic", "P-Value", "Effect Size", "Effect", "Summary"}
	for i, h := range testHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(testsSheet, cell, h)
	}
	for row, t := range report.Tests {
		values := []any{t.TestName, t.Statistic.F(), t.PValue.F(), t.EffectSize.F(), string(t.Effect), t.Summary}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(testsSheet, cell, v)
		}
	}

	verdictSheet := "Verdict"
	f.NewSheet(verdictSheet)
	f.SetCellValue(verdictSheet, "A1", report.Verdict)

	if err := f.SaveAs(path); err != nil {
		return errors.Wrap(err, fmt.Sprintf("failed to write report workbook %s", path))
	}
	return nil
}

func (e *Exporter) writeSummaryRow(f *excelize.File, sheet string, row int, summary stats.DatasetSummary) {
	values := []any{
		string(summary.Name),
		summary.FrameCount,
		summary.Stats.Avg.F(),
		summary.Stats.Min.F(),
		summary.Stats.Max.F(),
		summary.Stats.StdDev.F(),
		summary.Stats.P1.F(),
		summary.Stats.P01.F(),
		summary.Stats.P001.F(),
		summary.Stats.Low1.F(),
		summary.Stats.Low01.F(),
		summary.Stats.Low001.F(),
		summary.Pacing.Consistency,
		len(summary.Pacing.BadTransitions),
	}
	for col, v := range values {
		cell, _ := excelize.CoordinatesToCellName(col+1, row)
		f.SetCellValue(sheet, cell, v)
	}
}
