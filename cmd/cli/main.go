package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"framelens/adapters/capture"
	"framelens/adapters/excel"
	"framelens/adapters/memory"
	"framelens/analysis"
	"framelens/app"
	"framelens/domain/core"
	"framelens/domain/stats"
	"framelens/internal/rng"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "framelens-cli",
		Short: "FrameLens CLI for frame-timing capture analysis",
	}

	rootCmd.AddCommand(
		newStatsCmd(),
		newPacingCmd(),
		newCompareCmd(),
		newExportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newStatsCmd() *cobra.Command {
	var metric string

	cmd := &cobra.Command{
		Use:   "stats [capture-file]",
		Short: "Descriptive statistics for one capture",
		Long: `Compute the descriptive summary of one capture file: average, spread,
tail percentiles and X% Low aggregates for the chosen metric.

Example: framelens-cli stats run1.csv --metric FPS`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataset, err := capture.NewDataReader(args[0]).Read("")
			if err != nil {
				return err
			}
			key := core.MetricKey(metric)
			result := analysis.Describe(dataset.MetricValues(key), key.String())
			return printJSON(result)
		},
	}

	cmd.Flags().StringVar(&metric, "metric", string(core.MetricFrameTime), "Metric to summarize (FrameTime or FPS)")
	return cmd
}

func newPacingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pacing [capture-file]",
		Short: "Frame pacing analysis for one capture",
		Long: `Analyze frame-to-frame pacing of one capture file: consistency score,
median and MAD of frametimes and transitions, and flagged bad transitions.

Example: framelens-cli pacing run1.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataset, err := capture.NewDataReader(args[0]).Read("")
			if err != nil {
				return err
			}
			result := analysis.AnalyzePacing(dataset.MetricValues(core.MetricFrameTime))
			return printJSON(result)
		},
	}
	return cmd
}

func newCompareCmd() *cobra.Command {
	var metric string
	var seed int64
	var iterations int
	var confidence float64

	cmd := &cobra.Command{
		Use:   "compare [capture-a] [capture-b]",
		Short: "Run the full A/B comparison of two captures",
		Long: `Compare two capture files on one metric: descriptive statistics, pacing,
the hypothesis-test battery, bootstrap confidence intervals and a verdict.

Example: framelens-cli compare before.csv after.csv --metric FrameTime --seed 42`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := runComparison(cmd.Context(), args[0], args[1], metric, seed, iterations, confidence)
			if err != nil {
				return err
			}
			return printJSON(report)
		},
	}

	cmd.Flags().StringVar(&metric, "metric", string(core.MetricFrameTime), "Metric to compare (FrameTime or FPS)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed for reproducible bootstrap intervals (0 = time-seeded)")
	cmd.Flags().IntVar(&iterations, "iterations", analysis.DefaultBootstrapIterations, "Bootstrap iterations")
	cmd.Flags().Float64Var(&confidence, "confidence", analysis.DefaultConfidenceLevel, "Bootstrap confidence level")
	return cmd
}

func newExportCmd() *cobra.Command {
	var metric string
	var seed int64
	var output string

	cmd := &cobra.Command{
		Use:   "export [capture-a] [capture-b]",
		Short: "Compare two captures and write the report as a workbook",
		Long: `Run the full comparison and write the report to an .xlsx workbook with
summary, test and verdict sheets.

Example: framelens-cli export before.csv after.csv --output report.xlsx`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := runComparison(cmd.Context(), args[0], args[1], metric, seed, 0, 0)
			if err != nil {
				return err
			}
			if err := excel.NewExporter().Export(report, output); err != nil {
				return err
			}
			fmt.Printf("report written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&metric, "metric", string(core.MetricFrameTime), "Metric to compare (FrameTime or FPS)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed for reproducible bootstrap intervals (0 = time-seeded)")
	cmd.Flags().StringVar(&output, "output", "report.xlsx", "Output workbook path")
	return cmd
}

func runComparison(ctx context.Context, pathA, pathB, metric string, seed int64, iterations int, confidence float64) (*stats.ComparisonReport, error) {
	datasetA, err := capture.NewDataReader(pathA).Read("")
	if err != nil {
		return nil, err
	}
	datasetB, err := capture.NewDataReader(pathB).Read("")
	if err != nil {
		return nil, err
	}

	service := app.NewComparisonService(rng.New(seed), memory.NewReportRepository(), iterations, confidence)
	return service.Compare(ctx, app.ComparisonRequest{
		A:      datasetA,
		B:      datasetB,
		Metric: core.MetricKey(metric),
	})
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
