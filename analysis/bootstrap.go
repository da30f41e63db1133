package analysis

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"framelens/domain/stats"
)

const (
	// DefaultBootstrapIterations is the resampling round count used when the
	// caller passes 0.
	DefaultBootstrapIterations = 1000

	// DefaultConfidenceLevel is used when the caller passes a level outside
	// (0, 1).
	DefaultConfidenceLevel = 0.95

	minBootstrapSample = 10
)

// StatFn reduces a sample to a scalar statistic
type StatFn func(sample []float64) float64

// BootstrapEstimator produces percentile-bootstrap confidence intervals for
// arbitrary scalar statistics. The RNG is injectable so tests can be
// reproducible; a nil RNG falls back to a time-seeded source, matching the
// default (non-deterministic) behavior.
type BootstrapEstimator struct {
	rng *rand.Rand
}

// NewBootstrapEstimator creates an estimator with the given RNG (nil for
// time-seeded).
func NewBootstrapEstimator(rng *rand.Rand) *BootstrapEstimator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &BootstrapEstimator{rng: rng}
}

// Estimate computes the confidence interval of statFn over the sample by
// resampling with replacement. Mean carries the statistic of the original
// sample; Lower/Upper are the empirical quantiles of the resampled
// distribution at floor(iterations*alpha/2) and floor(iterations*(1-alpha/2)).
// Samples below 10 points return an all-NaN interval.
func (e *BootstrapEstimator) Estimate(sample []float64, statFn StatFn, iterations int, confidenceLevel float64) stats.ConfidenceInterval {
	n := len(sample)
	if n < minBootstrapSample {
		nan := stats.Scalar(math.NaN())
		return stats.ConfidenceInterval{Lower: nan, Upper: nan, Mean: nan}
	}
	if iterations <= 0 {
		iterations = DefaultBootstrapIterations
	}
	if confidenceLevel <= 0 || confidenceLevel >= 1 {
		confidenceLevel = DefaultConfidenceLevel
	}

	original := statFn(sample)

	collected := make([]float64, iterations)
	resample := make([]float64, n)
	for it := 0; it < iterations; it++ {
		for i := range resample {
			resample[i] = sample[e.rng.Intn(n)]
		}
		collected[it] = statFn(resample)
	}
	sort.Float64s(collected)

	alpha := 1 - confidenceLevel
	lowerIdx := int(math.Floor(float64(iterations) * alpha / 2))
	upperIdx := int(math.Floor(float64(iterations) * (1 - alpha/2)))
	if upperIdx >= iterations {
		upperIdx = iterations - 1
	}

	return stats.ConfidenceInterval{
		Lower: stats.Scalar(collected[lowerIdx]),
		Upper: stats.Scalar(collected[upperIdx]),
		Mean:  stats.Scalar(original),
	}
}

// MeanStat is the statistic most callers bootstrap
func MeanStat(sample []float64) float64 {
	if len(sample) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range sample {
		sum += v
	}
	return sum / float64(len(sample))
}
