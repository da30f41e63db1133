package excel

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"framelens/domain/core"
	"framelens/domain/stats"
)

func sampleReport() *stats.ComparisonReport {
	return &stats.ComparisonReport{
		ID:     "r1",
		Metric: core.MetricFrameTime,
		A: stats.DatasetSummary{
			Name:       "before",
			FrameCount: 100,
			Stats:      stats.StatisticsResult{Avg: 16.7, Min: 15.0, Max: 40.0},
			Pacing:     stats.PacingResult{Consistency: 92.5, BadTransitions: []stats.Transition{{Index: 6, Value: 20}}},
		},
		B: stats.DatasetSummary{
			Name:       "after",
			FrameCount: 100,
			Stats:      stats.StatisticsResult{Avg: 15.1, Min: 14.2, Max: 22.0},
			Pacing:     stats.PacingResult{Consistency: 98.0},
		},
		Tests: []stats.TestResult{
			{TestName: "paired_ttest", Statistic: -4.2, PValue: 0.001, EffectSize: -0.6, Effect: stats.EffectMedium, Summary: "B is faster"},
			{TestName: "variance_f", Statistic: stats.Scalar(math.NaN()), Effect: stats.EffectIndeterminate, Summary: "degenerate"},
		},
		Verdict: "## before vs after",
	}
}

// TestExporter_WritesWorkbook verifies the workbook structure and a few cells
func TestExporter_WritesWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := NewExporter().Export(sampleReport(), path); err != nil {
		t.Fatalf("Expected export to succeed, got %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Expected workbook to reopen, got %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{"Summary", "Tests", "Verdict"} {
		if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
			t.Errorf("Expected sheet %s to exist", sheet)
		}
	}

	if name, _ := f.GetCellValue("Summary", "A2"); name != "before" {
		t.Errorf("Expected dataset A name in Summary!A2, got %q", name)
	}
	if name, _ := f.GetCellValue("Summary", "A3"); name != "after" {
		t.Errorf("Expected dataset B name in Summary!A3, got %q", name)
	}
	if test, _ := f.GetCellValue("Tests", "A2"); test != "paired_ttest" {
		t.Errorf("Expected first test name in Tests!A2, got %q", test)
	}
	if verdict, _ := f.GetCellValue("Verdict", "A1"); verdict != "## before vs after" {
		t.Errorf("Expected verdict text in Verdict!A1, got %q", verdict)
	}
}
