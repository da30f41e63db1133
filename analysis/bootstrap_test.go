package analysis

import (
	"math"
	"math/rand"
	"testing"
)

// TestBootstrap_TooSmallSample verifies the hard minimum of 10 points
func TestBootstrap_TooSmallSample(t *testing.T) {
	estimator := NewBootstrapEstimator(rand.New(rand.NewSource(1)))
	sample := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}

	ci := estimator.Estimate(sample, MeanStat, 100, 0.95)
	if !math.IsNaN(ci.Lower.F()) || !math.IsNaN(ci.Upper.F()) || !math.IsNaN(ci.Mean.F()) {
		t.Errorf("Expected all-NaN interval below 10 points, got %+v", ci)
	}
	if ci.IsValid() {
		t.Error("Expected interval to report invalid")
	}
}

// TestBootstrap_MeanCarriesOriginalStatistic verifies Mean is computed on the
// original sample, not on resamples
func TestBootstrap_MeanCarriesOriginalStatistic(t *testing.T) {
	estimator := NewBootstrapEstimator(rand.New(rand.NewSource(42)))
	sample := []float64{10, 12, 14, 16, 18, 20, 22, 24, 26, 28}

	ci := estimator.Estimate(sample, MeanStat, 500, 0.95)
	if ci.Mean.F() != 19.0 {
		t.Errorf("Expected Mean = original sample mean 19, got %f", ci.Mean.F())
	}
	if ci.Lower.F() > ci.Upper.F() {
		t.Errorf("Expected ordered bounds, got [%f, %f]", ci.Lower.F(), ci.Upper.F())
	}
}

// TestBootstrap_Deterministic verifies identical seeds reproduce identical
// intervals
func TestBootstrap_Deterministic(t *testing.T) {
	sample := []float64{16.1, 16.3, 17.2, 15.9, 16.8, 16.0, 17.5, 16.2, 16.4, 16.9, 18.1, 15.7}

	first := NewBootstrapEstimator(rand.New(rand.NewSource(7))).Estimate(sample, MeanStat, 1000, 0.95)
	second := NewBootstrapEstimator(rand.New(rand.NewSource(7))).Estimate(sample, MeanStat, 1000, 0.95)

	if first.Lower != second.Lower || first.Upper != second.Upper {
		t.Errorf("Expected identical intervals for identical seeds: %+v vs %+v", first, second)
	}
}

// TestBootstrap_IntervalBracketsMean verifies the 95% interval of a tight
// sample brackets the true mean
func TestBootstrap_IntervalBracketsMean(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	sample := make([]float64, 200)
	for i := range sample {
		sample[i] = 16.7 + rng.NormFloat64()*0.5
	}

	ci := NewBootstrapEstimator(rand.New(rand.NewSource(3))).Estimate(sample, MeanStat, 1000, 0.95)
	sampleMean := MeanStat(sample)
	if ci.Lower.F() > sampleMean || ci.Upper.F() < sampleMean {
		t.Errorf("Expected interval to bracket the sample mean %f, got [%f, %f]", sampleMean, ci.Lower.F(), ci.Upper.F())
	}
	if width := ci.Upper.F() - ci.Lower.F(); width <= 0 || width > 1 {
		t.Errorf("Expected narrow positive width for n=200, sd=0.5, got %f", width)
	}
}

// TestBootstrap_DefaultsApplied verifies zero iterations and out-of-range
// confidence fall back to the defaults instead of failing
func TestBootstrap_DefaultsApplied(t *testing.T) {
	sample := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	ci := NewBootstrapEstimator(rand.New(rand.NewSource(5))).Estimate(sample, MeanStat, 0, 0)
	if !ci.IsValid() {
		t.Errorf("Expected valid interval under defaulted parameters, got %+v", ci)
	}
}

// TestBootstrap_CustomStatistic verifies statistics other than the mean work
func TestBootstrap_CustomStatistic(t *testing.T) {
	sample := []float64{5, 5, 5, 5, 5, 5, 5, 5, 5, 5}
	maxStat := func(s []float64) float64 {
		m := s[0]
		for _, v := range s {
			if v > m {
				m = v
			}
		}
		return m
	}
	ci := NewBootstrapEstimator(rand.New(rand.NewSource(11))).Estimate(sample, maxStat, 200, 0.9)
	if ci.Lower.F() != 5 || ci.Upper.F() != 5 || ci.Mean.F() != 5 {
		t.Errorf("Expected degenerate interval [5, 5] for constant sample, got %+v", ci)
	}
}
