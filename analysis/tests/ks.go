package tests

import (
	"fmt"
	"math"
	"sort"

	"framelens/analysis"
	"framelens/domain/stats"
)

const (
	// ksSubsampleThreshold is the per-sample size above which the KS test
	// stride-samples its inputs.
	ksSubsampleThreshold = 10000

	// ksSubsampleTarget is the maximum per-sample size after stride
	// sampling. Systematic strides preserve distributional shape better
	// than random draws.
	ksSubsampleTarget = 5000
)

// KolmogorovSmirnovTest compares whole distributions, not just location:
// it catches differences in spread and tail shape that a mean test misses.
type KolmogorovSmirnovTest struct {
	dist *analysis.Distributions
}

// NewKolmogorovSmirnovTest creates the two-sample KS test
func NewKolmogorovSmirnovTest() *KolmogorovSmirnovTest {
	return &KolmogorovSmirnovTest{dist: analysis.NewDistributions()}
}

// Name returns the test name
func (t *KolmogorovSmirnovTest) Name() string {
	return "kolmogorov_smirnov"
}

// Description returns a human-readable description
func (t *KolmogorovSmirnovTest) Description() string {
	return "Compares the full frame-time distributions of two captures via their ECDFs"
}

// RequiresEqualLength is false
func (t *KolmogorovSmirnovTest) RequiresEqualLength() bool {
	return false
}

// Compare runs the two-sample KS test. The ECDF difference is evaluated at
// every unique value present in either sample, which guarantees the true
// supremum is found (a fixed grid can miss it between grid points).
func (t *KolmogorovSmirnovTest) Compare(a, b []float64) (stats.TestResult, error) {
	if len(a) < 1 || len(b) < 1 {
		return sentinelResult(t.Name(), "insufficient data for Kolmogorov-Smirnov test (need at least 1 point per group)"), nil
	}

	sampledA, subA := strideSample(a)
	sampledB, subB := strideSample(b)
	subsampled := subA || subB

	sortedA := make([]float64, len(sampledA))
	copy(sortedA, sampledA)
	sort.Float64s(sortedA)
	sortedB := make([]float64, len(sampledB))
	copy(sortedB, sampledB)
	sort.Float64s(sortedB)

	n1, n2 := float64(len(sortedA)), float64(len(sortedB))

	// Evaluation points: union of unique values of both samples
	points := make([]float64, 0, len(sortedA)+len(sortedB))
	points = append(points, sortedA...)
	points = append(points, sortedB...)
	sort.Float64s(points)

	var d, location float64
	prev := math.NaN()
	for _, v := range points {
		if v == prev {
			continue
		}
		prev = v
		diff := math.Abs(ecdf(sortedA, v) - ecdf(sortedB, v))
		if diff > d {
			d = diff
			location = v
		}
	}

	z := d * math.Sqrt(n1*n2/(n1+n2))
	pValue := t.dist.KolmogorovPValue(z)
	effect := stats.BandKS(d)

	var caveats []string
	if len(a) < minReliableGroupSize || len(b) < minReliableGroupSize {
		caveats = append(caveats, fmt.Sprintf("group sizes %d/%d are below %d; the asymptotic p-value is unreliable", len(a), len(b), minReliableGroupSize))
	}
	if subsampled {
		caveats = append(caveats, fmt.Sprintf("samples were stride-subsampled to at most %d points", ksSubsampleTarget))
	}

	return stats.TestResult{
		TestName:   t.Name(),
		Statistic:  stats.Scalar(d),
		PValue:     stats.Scalar(pValue),
		EffectSize: stats.Scalar(d),
		Effect:     effect,
		Summary:    t.summarize(d, z, pValue, location),
		Caveats:    caveats,
		Metadata: map[string]any{
			"d":            stats.Scalar(d),
			"z":            stats.Scalar(z),
			"d_location":   stats.Scalar(location),
			"skewness_a":   stats.Scalar(skewness(sampledA)),
			"skewness_b":   stats.Scalar(skewness(sampledB)),
			"subsampled":   subsampled,
			"n_a_used":     len(sampledA),
			"n_b_used":     len(sampledB),
			"n_a_original": len(a),
			"n_b_original": len(b),
		},
	}, nil
}

func (t *KolmogorovSmirnovTest) summarize(d, z, pValue, location float64) string {
	if !stats.Significant(pValue) {
		return fmt.Sprintf("Distributions are compatible (D=%.4f, z=%.3f, p=%.3g)", d, z, pValue)
	}
	return fmt.Sprintf("Distributions differ: maximum ECDF gap %.4f at %.3f (z=%.3f, p=%.3g)", d, location, z, pValue)
}

// ecdf returns the proportion of the sorted sample <= v via binary search
func ecdf(sorted []float64, v float64) float64 {
	// First index with sorted[i] > v
	idx := sort.Search(len(sorted), func(i int) bool { return sorted[i] > v })
	return float64(idx) / float64(len(sorted))
}

// strideSample systematically thins a sample above the KS threshold
func strideSample(sample []float64) ([]float64, bool) {
	if len(sample) <= ksSubsampleThreshold {
		return sample, false
	}
	stride := int(math.Ceil(float64(len(sample)) / float64(ksSubsampleTarget)))
	out := make([]float64, 0, ksSubsampleTarget)
	for i := 0; i < len(sample); i += stride {
		out = append(out, sample[i])
	}
	return out, true
}
