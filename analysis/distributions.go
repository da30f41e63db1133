package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// pValueFloor keeps deep-tail p-values away from floating-point underflow.
// A reported 0 would read as "impossible" rather than "astronomically
// unlikely".
const pValueFloor = 1e-15

// Distributions provides unified access to the distribution functions the
// test battery needs. This replaces fragmented CDF approximations with exact
// gonum implementations.
type Distributions struct{}

// NewDistributions creates a new distributions utility
func NewDistributions() *Distributions {
	return &Distributions{}
}

// TTestPValue computes the two-tailed p-value for a t-statistic using
// Student's t-distribution.
func (d *Distributions) TTestPValue(tStatistic float64, degreesOfFreedom float64) float64 {
	if degreesOfFreedom <= 0 || math.IsNaN(tStatistic) {
		return math.NaN()
	}
	if math.IsInf(tStatistic, 0) {
		return pValueFloor
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: degreesOfFreedom}
	p := 2 * (1 - tDist.CDF(math.Abs(tStatistic)))
	return clampPValue(p)
}

// TCritical returns the critical t value for a two-sided confidence level at
// the given degrees of freedom (e.g. 0.95 -> quantile at 0.975).
func (d *Distributions) TCritical(degreesOfFreedom, confidenceLevel float64) float64 {
	if degreesOfFreedom <= 0 {
		return math.NaN()
	}
	alpha := 1 - confidenceLevel
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: degreesOfFreedom}
	return tDist.Quantile(1 - alpha/2)
}

// FTestPValue computes the two-tailed p-value for an F-ratio with the
// reflection-around-1 correction: doubling the upper tail can exceed 1 when
// F sits below the distribution's center, so p > 1 reflects to 2-p.
func (d *Distributions) FTestPValue(fStatistic, df1, df2 float64) float64 {
	if df1 <= 0 || df2 <= 0 || math.IsNaN(fStatistic) {
		return math.NaN()
	}
	if math.IsInf(fStatistic, 1) {
		return pValueFloor
	}

	fDist := distuv.F{D1: df1, D2: df2}
	p := 2 * (1 - fDist.CDF(fStatistic))
	if p > 1 {
		p = 2 - p
	}
	return clampPValue(p)
}

// NormalCDF computes the standard normal cumulative distribution function
func (d *Distributions) NormalCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// NormalQuantile computes the standard normal quantile (inverse CDF)
func (d *Distributions) NormalQuantile(p float64) float64 {
	return distuv.UnitNormal.Quantile(p)
}

// ZTestPValue computes the two-tailed p-value for a z-score. Beyond |z| = 6
// the normal CDF loses precision, so the Mills-ratio tail approximation
// phi(z)/z takes over instead of reporting 0.
func (d *Distributions) ZTestPValue(z float64) float64 {
	if math.IsNaN(z) {
		return math.NaN()
	}
	abs := math.Abs(z)
	if abs > 6 {
		tail := math.Exp(-abs*abs/2) / (abs * math.Sqrt(2*math.Pi))
		return clampPValue(2 * tail)
	}
	return clampPValue(2 * (1 - distuv.UnitNormal.CDF(abs)))
}

// KolmogorovPValue computes the asymptotic p-value of the scaled KS
// statistic z = D*sqrt(n1*n2/(n1+n2)). The full Kolmogorov series is used
// below z = 1.18 where the two-term tail formula is inaccurate; above it the
// classic 2*exp(-2z^2) tail applies.
func (d *Distributions) KolmogorovPValue(z float64) float64 {
	if math.IsNaN(z) {
		return math.NaN()
	}
	if z <= 0 {
		return 1.0
	}

	if z < 1.18 {
		t := math.Exp(-math.Pi * math.Pi / (8 * z * z))
		cdf := math.Sqrt(2*math.Pi) / z * (t + math.Pow(t, 9) + math.Pow(t, 25))
		return clampPValue(1 - cdf)
	}
	return clampPValue(2 * math.Exp(-2*z*z))
}

func clampPValue(p float64) float64 {
	if math.IsNaN(p) {
		return math.NaN()
	}
	if p < pValueFloor {
		return pValueFloor
	}
	if p > 1 {
		return 1
	}
	return p
}
