package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"framelens/analysis"
	"framelens/analysis/tests"
	"framelens/domain/capture"
	"framelens/domain/core"
	"framelens/domain/stats"
	"framelens/internal/errors"
	"framelens/ports"
)

// ComparisonService runs a full A/B analysis of two captures on one metric:
// descriptive statistics, pacing, the hypothesis-test battery, bootstrap
// confidence intervals and the combined verdict.
type ComparisonService struct {
	engine  *tests.Engine
	rng     ports.RNG
	reports ports.ReportRepository

	bootstrapIterations int
	confidenceLevel     float64
}

// ComparisonRequest names the two datasets and the metric to compare them on
type ComparisonRequest struct {
	A      *capture.Dataset
	B      *capture.Dataset
	Metric core.MetricKey
}

// NewComparisonService creates a comparison service. The repository may be
// nil when persistence is not wanted.
func NewComparisonService(rng ports.RNG, reports ports.ReportRepository, bootstrapIterations int, confidenceLevel float64) *ComparisonService {
	if bootstrapIterations <= 0 {
		bootstrapIterations = analysis.DefaultBootstrapIterations
	}
	if confidenceLevel <= 0 || confidenceLevel >= 1 {
		confidenceLevel = analysis.DefaultConfidenceLevel
	}
	return &ComparisonService{
		engine:              tests.NewEngine(),
		rng:                 rng,
		reports:             reports,
		bootstrapIterations: bootstrapIterations,
		confidenceLevel:     confidenceLevel,
	}
}

// Compare executes the analysis and persists the resulting report when a
// repository is configured.
func (s *ComparisonService) Compare(ctx context.Context, req ComparisonRequest) (*stats.ComparisonReport, error) {
	if req.A == nil || req.B == nil {
		return nil, errors.InvalidInput("both datasets are required")
	}
	metric := req.Metric
	if metric == "" {
		metric = core.MetricFrameTime
	}

	samplesA := req.A.MetricValues(metric)
	samplesB := req.B.MetricValues(metric)
	if len(samplesA) == 0 || len(samplesB) == 0 {
		return nil, errors.InsufficientData("no numeric values for metric " + metric.String())
	}

	// Pacing always runs on frame times regardless of the compared metric
	frametimesA := req.A.MetricValues(core.MetricFrameTime)
	frametimesB := req.B.MetricValues(core.MetricFrameTime)

	report := &stats.ComparisonReport{
		ID:        core.ReportID(core.NewID()),
		Metric:    metric,
		Kind:      stats.KindForMetric(metric.String()),
		CreatedAt: core.Now(),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		report.A = s.summarize(req.A.Name, samplesA, frametimesA, metric)
		return nil
	})
	g.Go(func() error {
		report.B = s.summarize(req.B.Name, samplesB, frametimesB, metric)
		return nil
	})
	g.Go(func() error {
		results, truncated := s.engine.RunAll(gctx, samplesA, samplesB)
		report.Tests = results
		report.Truncated = truncated
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.Verdict = stats.BuildVerdict(report)

	if s.reports != nil {
		if err := s.reports.Save(ctx, report); err != nil {
			return nil, errors.Wrap(err, "failed to persist comparison report")
		}
	}
	return report, nil
}

// Describe exposes the descriptive summary of a single dataset
func (s *ComparisonService) Describe(d *capture.Dataset, metric core.MetricKey) stats.StatisticsResult {
	return analysis.Describe(d.MetricValues(metric), metric.String())
}

// Pacing exposes the pacing analysis of a single dataset
func (s *ComparisonService) Pacing(d *capture.Dataset) stats.PacingResult {
	return analysis.AnalyzePacing(d.MetricValues(core.MetricFrameTime))
}

func (s *ComparisonService) summarize(name core.DatasetName, sample, frametimes []float64, metric core.MetricKey) stats.DatasetSummary {
	estimator := analysis.NewBootstrapEstimator(s.rng.Stream("bootstrap/" + string(name)))
	return stats.DatasetSummary{
		Name:       name,
		FrameCount: len(sample),
		Stats:      analysis.Describe(sample, metric.String()),
		Pacing:     analysis.AnalyzePacing(frametimes),
		MeanCI:     estimator.Estimate(sample, analysis.MeanStat, s.bootstrapIterations, s.confidenceLevel),
	}
}
