package tests

import (
	"fmt"
	"math"

	"framelens/analysis"
	"framelens/domain/stats"
	"framelens/internal/errors"
)

// PairedTTest compares per-frame paired differences between two captures of
// equal length.
type PairedTTest struct {
	dist *analysis.Distributions
}

// NewPairedTTest creates the paired t-test
func NewPairedTTest() *PairedTTest {
	return &PairedTTest{dist: analysis.NewDistributions()}
}

// Name returns the test name
func (t *PairedTTest) Name() string {
	return "paired_ttest"
}

// Description returns a human-readable description
func (t *PairedTTest) Description() string {
	return "Tests whether the mean per-frame difference between two equal-length captures is zero"
}

// RequiresEqualLength is true: pairs are positional
func (t *PairedTTest) RequiresEqualLength() bool {
	return true
}

// Compare runs the paired t-test on per-pair differences (B minus A).
// Unequal lengths are a caller contract violation and return an error.
func (t *PairedTTest) Compare(a, b []float64) (stats.TestResult, error) {
	if len(a) != len(b) {
		return stats.TestResult{}, errors.LengthMismatch(
			fmt.Sprintf("paired t-test requires equal lengths, got %d and %d", len(a), len(b)))
	}

	n := len(a)
	if n < 2 {
		return sentinelResult(t.Name(), "insufficient data for paired t-test (need at least 2 pairs)"), nil
	}

	diffs := make([]float64, n)
	for i := range a {
		diffs[i] = b[i] - a[i]
	}

	meanDiff := mean(diffs)
	sdDiff := sampleStdDev(diffs)
	se := sdDiff / math.Sqrt(float64(n))
	dof := float64(n - 1)

	// Zero-variance differences produce 0/0 here; NaN flows through to an
	// indeterminate effect instead of a crash.
	tStat := meanDiff / se
	pValue := t.dist.TTestPValue(tStat, dof)
	cohenD := meanDiff / sdDiff

	tCrit := t.dist.TCritical(dof, 0.95)
	ciLower := meanDiff - tCrit*se
	ciUpper := meanDiff + tCrit*se

	effect := stats.BandCohenD(cohenD)

	var caveats []string
	normality := analysis.ShapiroWilk(diffs)
	if !normality.LooksNormal {
		caveats = append(caveats, "paired differences do not look normally distributed; prefer the rank-based tests")
	}

	return stats.TestResult{
		TestName:   t.Name(),
		Statistic:  stats.Scalar(tStat),
		PValue:     stats.Scalar(pValue),
		EffectSize: stats.Scalar(cohenD),
		Effect:     effect,
		Summary:    t.summarize(tStat, pValue, cohenD, meanDiff, n),
		Caveats:    caveats,
		Metadata: map[string]any{
			"mean_diff":  stats.Scalar(meanDiff),
			"sd_diff":    stats.Scalar(sdDiff),
			"std_error":  stats.Scalar(se),
			"dof":        stats.Scalar(dof),
			"cohen_d":    stats.Scalar(cohenD),
			"ci_lower":   stats.Scalar(ciLower),
			"ci_upper":   stats.Scalar(ciUpper),
			"mean_a":     stats.Scalar(mean(a)),
			"mean_b":     stats.Scalar(mean(b)),
			"n_pairs":    n,
			"shapiro_w":  stats.Scalar(normality.W),
			"difference": "B-A",
		},
	}, nil
}

func (t *PairedTTest) summarize(tStat, pValue, cohenD, meanDiff float64, n int) string {
	if math.IsNaN(tStat) {
		return fmt.Sprintf("No measurable paired difference (identical samples, n=%d)", n)
	}
	if !stats.Significant(pValue) {
		return fmt.Sprintf("No significant paired difference (t=%.3f, p=%.3g, d=%.3f, n=%d)", tStat, pValue, cohenD, n)
	}
	direction := "higher"
	if meanDiff < 0 {
		direction = "lower"
	}
	return fmt.Sprintf("Significant paired difference: B is %.3f %s per frame on average (t=%.3f, p=%.3g, d=%.3f, n=%d)",
		math.Abs(meanDiff), direction, tStat, pValue, cohenD, n)
}
