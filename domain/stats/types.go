package stats

import (
	"math"
	"strconv"
	"strings"

	"framelens/domain/core"
)

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// Scalar is a float64 that marshals non-finite values as JSON null.
// Several results are defined as NaN on degenerate input (empty samples,
// zero variance) and those records must survive serialization.
type Scalar float64

// F returns the underlying float64
func (s Scalar) F() float64 {
	return float64(s)
}

// MarshalJSON renders NaN and ±Inf as null
func (s Scalar) MarshalJSON() ([]byte, error) {
	f := float64(s)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return []byte(formatFloat(f)), nil
}

// UnmarshalJSON parses null back to NaN
func (s *Scalar) UnmarshalJSON(data []byte) error {
	str := string(data)
	if str == "null" {
		*s = Scalar(math.NaN())
		return nil
	}
	f, err := parseFloat(str)
	if err != nil {
		return err
	}
	*s = Scalar(f)
	return nil
}

// MetricKind distinguishes FPS-like metrics (higher is better, outliers on
// the low tail) from time-like metrics (lower is better, outliers on the
// high tail).
type MetricKind int

const (
	KindTime MetricKind = iota
	KindFPS
)

// KindForMetric classifies a metric by name. The empty name means the caller
// could not tell; use DetectKind with sample values instead.
func KindForMetric(name string) MetricKind {
	if strings.Contains(strings.ToLower(name), "fps") {
		return KindFPS
	}
	return KindTime
}

// DetectKind classifies a metric, falling back to a value-range heuristic
// when the name is empty: avg > 30 and min > 20 reads as a framerate.
// The heuristic can misclassify unusual metrics; it is a fallback, not
// authoritative.
func DetectKind(name string, avg, min float64) MetricKind {
	if name != "" {
		return KindForMetric(name)
	}
	if avg > 30 && min > 20 {
		return KindFPS
	}
	return KindTime
}

// LowerIsBetter reports the improvement direction for the metric kind
func (k MetricKind) LowerIsBetter() bool {
	return k == KindTime
}

// StatisticsResult is the descriptive summary of one sample for one metric.
// All fields are NaN when undefined. Computed on demand, never mutated.
type StatisticsResult struct {
	Max    Scalar `json:"max"`
	Min    Scalar `json:"min"`
	Avg    Scalar `json:"avg"`
	StdDev Scalar `json:"stdev"`

	// Percentiles at the severity tail for the metric kind: 1/0.1/0.01 for
	// FPS-like metrics, 99/99.9/99.99 for time-like metrics.
	P1   Scalar `json:"p1"`
	P01  Scalar `json:"p01"`
	P001 Scalar `json:"p001"`

	// X% Low aggregates: mean of the worst ceil(n*p) frames, minimum 1.
	Low1   Scalar `json:"low1"`
	Low01  Scalar `json:"low01"`
	Low001 Scalar `json:"low001"`
}

// Transition flags one anomalous frame-to-frame step. Index is 1-based and
// refers to the later frame of the pair.
type Transition struct {
	Index int     `json:"index"`
	Value float64 `json:"value"`
	Ratio Scalar  `json:"ratio"` // Inf when the baseline transition is zero
}

// PacingResult is the frame-pacing consistency summary of one frametime
// sequence.
type PacingResult struct {
	Consistency      float64      `json:"consistency"` // 0..100
	MedianFrameTime  float64      `json:"median_frametime"`
	MADFrameTime     float64      `json:"mad_frametime"`
	MedianTransition float64      `json:"median_transition"`
	MADTransition    float64      `json:"mad_transition"`
	BadTransitions   []Transition `json:"bad_transitions"`
}

// EffectBand is the categorical judgement of an effect size
type EffectBand string

const (
	EffectNegligible    EffectBand = "negligible"
	EffectSmall         EffectBand = "small"
	EffectMedium        EffectBand = "medium"
	EffectLarge         EffectBand = "large"
	EffectIndeterminate EffectBand = "indeterminate" // non-finite effect size
)

// TestResult is the outcome of one hypothesis test. Statistic, PValue and
// EffectSize are always present; test-specific values (medians, IQRs,
// degrees of freedom, ...) live in Metadata. Results are created fresh per
// invocation and never cached.
type TestResult struct {
	TestName   string         `json:"test_name"`
	Statistic  Scalar         `json:"statistic"`
	PValue     Scalar         `json:"p_value"`
	EffectSize Scalar         `json:"effect_size"`
	Effect     EffectBand     `json:"effect"`
	Summary    string         `json:"summary"`
	Caveats    []string       `json:"caveats,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// ConfidenceInterval is a resampling-based interval estimate. Mean is the
// statistic computed on the original sample, not a resample average.
type ConfidenceInterval struct {
	Lower Scalar `json:"lower"`
	Upper Scalar `json:"upper"`
	Mean  Scalar `json:"mean"`
}

// IsValid reports whether the interval was computable
func (ci ConfidenceInterval) IsValid() bool {
	return !math.IsNaN(float64(ci.Lower)) && !math.IsNaN(float64(ci.Upper))
}

// DatasetSummary pairs a dataset with its per-metric summaries inside a
// comparison report.
type DatasetSummary struct {
	Name       core.DatasetName   `json:"name"`
	FrameCount int                `json:"frame_count"`
	Stats      StatisticsResult   `json:"stats"`
	Pacing     PacingResult       `json:"pacing"`
	MeanCI     ConfidenceInterval `json:"mean_ci"`
}

// ComparisonReport is the full outcome of comparing two datasets on one
// metric.
type ComparisonReport struct {
	ID        core.ReportID  `json:"id"`
	Metric    core.MetricKey `json:"metric"`
	Kind      MetricKind     `json:"metric_kind"`
	A         DatasetSummary `json:"a"`
	B         DatasetSummary `json:"b"`
	Tests     []TestResult   `json:"tests"`
	Truncated bool           `json:"truncated,omitempty"` // paired samples were cut to equal length
	Verdict   string         `json:"verdict"`             // markdown summary
	CreatedAt core.Timestamp `json:"created_at"`
}
