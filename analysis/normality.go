package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// NormalityResult is an advisory screen, not a decision procedure. It
// annotates test results whose assumptions lean on normality.
type NormalityResult struct {
	W           float64 `json:"w"`
	LooksNormal bool    `json:"looks_normal"`
}

// ShapiroWilk computes an approximate Shapiro-Wilk W statistic.
//
// The coefficients use the Blom normal-quantile approximation
// m_i = Phi^-1((i - 0.375) / (n + 0.25)) normalized to unit length, not the
// canonical Royston coefficients. This reproduces the simplified formula the
// capture-analysis tooling has always shipped; treat W as a rough screen.
func ShapiroWilk(sample []float64) NormalityResult {
	n := len(sample)
	if n < 3 {
		return NormalityResult{W: math.NaN(), LooksNormal: true}
	}

	sorted := make([]float64, n)
	copy(sorted, sample)
	sort.Float64s(sorted)

	m := make([]float64, n)
	var mNorm float64
	for i := 0; i < n; i++ {
		m[i] = distuv.UnitNormal.Quantile((float64(i+1) - 0.375) / (float64(n) + 0.25))
		mNorm += m[i] * m[i]
	}
	mNorm = math.Sqrt(mNorm)

	mean := MeanStat(sorted)
	var numerator, ss float64
	for i := 0; i < n; i++ {
		numerator += (m[i] / mNorm) * sorted[i]
		dev := sorted[i] - mean
		ss += dev * dev
	}

	if ss == 0 {
		// Zero variance: every ordering is "normal enough" for the screen
		return NormalityResult{W: math.NaN(), LooksNormal: true}
	}

	w := numerator * numerator / ss
	return NormalityResult{W: w, LooksNormal: w > 0.9}
}
