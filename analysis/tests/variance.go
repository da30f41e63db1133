package tests

import (
	"fmt"
	"math"

	"framelens/analysis"
	"framelens/domain/stats"
)

// VarianceTest is the F-test of equal variances: two captures can share a
// mean frame time while one of them is far less stable.
type VarianceTest struct {
	dist *analysis.Distributions
}

// NewVarianceTest creates the variance ratio test
func NewVarianceTest() *VarianceTest {
	return &VarianceTest{dist: analysis.NewDistributions()}
}

// Name returns the test name
func (t *VarianceTest) Name() string {
	return "variance_f"
}

// Description returns a human-readable description
func (t *VarianceTest) Description() string {
	return "F-test comparing frame-time variability between two captures"
}

// RequiresEqualLength is false
func (t *VarianceTest) RequiresEqualLength() bool {
	return false
}

// Compare computes F as the larger variance over the smaller, with degrees
// of freedom assigned accordingly, and ln(F) as the effect size.
func (t *VarianceTest) Compare(a, b []float64) (stats.TestResult, error) {
	n1, n2 := len(a), len(b)
	if n1 < 2 || n2 < 2 {
		return sentinelResult(t.Name(), "insufficient data for variance test (need at least 2 points per group)"), nil
	}

	varA := sampleVariance(a)
	varB := sampleVariance(b)
	meanA := mean(a)
	meanB := mean(b)

	// Coefficients of variation; Inf when a mean is zero, passed through
	cvA := math.Sqrt(varA) / meanA
	cvB := math.Sqrt(varB) / meanB

	var f, df1, df2 float64
	largerGroup := "A"
	if varA >= varB {
		f = varA / varB
		df1, df2 = float64(n1-1), float64(n2-1)
	} else {
		f = varB / varA
		df1, df2 = float64(n2-1), float64(n1-1)
		largerGroup = "B"
	}

	// Zero variance on one side makes F infinite, on both sides NaN; either
	// way the effect band comes back indeterminate rather than crashing.
	pValue := t.dist.FTestPValue(f, df1, df2)
	lnF := math.Log(f)
	effect := stats.BandLogF(lnF)

	return stats.TestResult{
		TestName:   t.Name(),
		Statistic:  stats.Scalar(f),
		PValue:     stats.Scalar(pValue),
		EffectSize: stats.Scalar(lnF),
		Effect:     effect,
		Summary:    t.summarize(f, pValue, lnF, largerGroup, varA, varB),
		Metadata: map[string]any{
			"variance_a":   stats.Scalar(varA),
			"variance_b":   stats.Scalar(varB),
			"cv_a":         stats.Scalar(cvA),
			"cv_b":         stats.Scalar(cvB),
			"df1":          stats.Scalar(df1),
			"df2":          stats.Scalar(df2),
			"larger_group": largerGroup,
			"n_a":          n1,
			"n_b":          n2,
		},
	}, nil
}

func (t *VarianceTest) summarize(f, pValue, lnF float64, largerGroup string, varA, varB float64) string {
	if math.IsNaN(f) {
		return "Both captures have zero variance; variability cannot be compared"
	}
	if math.IsInf(f, 1) {
		return fmt.Sprintf("Group %s varies while the other capture is perfectly constant", largerGroup)
	}
	if !stats.Significant(pValue) {
		return fmt.Sprintf("No significant variability difference (F=%.3f, p=%.3g, ln F=%.3f)", f, pValue, lnF)
	}
	return fmt.Sprintf("Group %s is significantly more variable (F=%.3f, p=%.3g, ln F=%.3f, variances %.4f vs %.4f)",
		largerGroup, f, pValue, lnF, varA, varB)
}
