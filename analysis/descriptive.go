package analysis

import (
	"math"
	"sort"

	mstats "github.com/montanaflynn/stats"

	"framelens/domain/stats"
)

// Describe computes the descriptive summary of one sample.
//
// The metric name drives two frame-timing conventions. FPS-like metrics are
// averaged with the harmonic mean so the result stays consistent with
// time-domain averaging of the underlying frame times, and their outlier
// tail is the low end; time-like metrics average arithmetically and their
// outlier tail is the high end. An empty sample yields an all-NaN record.
func Describe(sample []float64, metricName string) stats.StatisticsResult {
	n := len(sample)
	if n == 0 {
		return nanStatistics()
	}

	sorted := make([]float64, n)
	copy(sorted, sample)
	sort.Float64s(sorted)

	min := sorted[0]
	max := sorted[n-1]

	arithmetic, err := mstats.Mean(sample)
	if err != nil {
		return nanStatistics()
	}

	avg := arithmetic
	if stats.KindForMetric(metricName) == stats.KindFPS {
		avg = harmonicMean(sample)
	}

	stdev := math.NaN()
	if n > 1 {
		if sd, err := mstats.StandardDeviationSample(sample); err == nil {
			stdev = sd
		}
	}

	// Direction detection: explicit from the name, heuristic from the value
	// range only when the name is empty.
	kind := stats.DetectKind(metricName, arithmetic, min)

	var p1, p01, p001 float64
	if kind == stats.KindFPS {
		p1 = nearestRank(sorted, 1)
		p01 = nearestRank(sorted, 0.1)
		p001 = nearestRank(sorted, 0.01)
	} else {
		p1 = nearestRank(sorted, 99)
		p01 = nearestRank(sorted, 99.9)
		p001 = nearestRank(sorted, 99.99)
	}

	return stats.StatisticsResult{
		Max:    stats.Scalar(max),
		Min:    stats.Scalar(min),
		Avg:    stats.Scalar(avg),
		StdDev: stats.Scalar(stdev),
		P1:     stats.Scalar(p1),
		P01:    stats.Scalar(p01),
		P001:   stats.Scalar(p001),
		Low1:   stats.Scalar(lowAggregate(sorted, 0.01, kind)),
		Low01:  stats.Scalar(lowAggregate(sorted, 0.001, kind)),
		Low001: stats.Scalar(lowAggregate(sorted, 0.0001, kind)),
	}
}

// nearestRank returns the nearest-rank percentile of an ascending sample:
// the value at 1-based rank ceil(p/100 * n), clamped to the sample.
func nearestRank(sorted []float64, percentile float64) float64 {
	n := len(sorted)
	rank := int(math.Ceil(percentile / 100.0 * float64(n)))
	if rank < 1 {
		rank = 1
	}
	if rank > n {
		rank = n
	}
	return sorted[rank-1]
}

// lowAggregate computes the "X% Low" metric: the mean of the worst
// ceil(n*fraction) frames, never fewer than one. Worst means the lowest
// values for FPS-like metrics and the highest values for time-like metrics.
func lowAggregate(sorted []float64, fraction float64, kind stats.MetricKind) float64 {
	n := len(sorted)
	count := int(math.Ceil(float64(n) * fraction))
	if count < 1 {
		count = 1
	}
	if count > n {
		count = n
	}

	var worst []float64
	if kind == stats.KindFPS {
		worst = sorted[:count]
	} else {
		worst = sorted[n-count:]
	}

	sum := 0.0
	for _, v := range worst {
		sum += v
	}
	return sum / float64(count)
}

// harmonicMean implements n / sum(1/v). A zero value drives the reciprocal
// sum to infinity and the mean to zero, which is the correct time-domain
// limit for an FPS sample containing a stalled frame.
func harmonicMean(sample []float64) float64 {
	recip := 0.0
	for _, v := range sample {
		recip += 1.0 / v
	}
	return float64(len(sample)) / recip
}

func nanStatistics() stats.StatisticsResult {
	nan := stats.Scalar(math.NaN())
	return stats.StatisticsResult{
		Max: nan, Min: nan, Avg: nan, StdDev: nan,
		P1: nan, P01: nan, P001: nan,
		Low1: nan, Low01: nan, Low001: nan,
	}
}
