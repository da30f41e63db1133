package tests

import (
	"context"
	"math"

	"framelens/domain/stats"
)

// minReliableGroupSize is the group size below which the rank-based tests
// still compute but carry a reliability caveat.
const minReliableGroupSize = 5

// ComparativeTest is one two-sample test of the battery
type ComparativeTest interface {
	Name() string
	Description() string

	// RequiresEqualLength marks tests whose callers must truncate both
	// samples to the shorter length before invoking.
	RequiresEqualLength() bool

	// Compare runs the test. It never mutates its inputs and is
	// deterministic. Hard-minimum violations come back as a sentinel result
	// (NaN fields plus a caveat), not an error; errors are reserved for
	// contract violations such as unequal paired samples.
	Compare(a, b []float64) (stats.TestResult, error)
}

// Engine fans the full battery out concurrently and collects results in a
// stable order.
type Engine struct {
	tests []ComparativeTest
}

// NewEngine creates the five-test battery
func NewEngine() *Engine {
	return &Engine{
		tests: []ComparativeTest{
			NewPairedTTest(),
			NewMannWhitneyTest(),
			NewKolmogorovSmirnovTest(),
			NewVarianceTest(),
			NewPacingDifferentialTest(),
		},
	}
}

// Tests returns the battery in execution order
func (e *Engine) Tests() []ComparativeTest {
	return e.tests
}

// RunAll executes every test concurrently. Tests that require equal lengths
// receive samples truncated to the shorter length; truncated reports whether
// any test actually lost frames that way. Cancelling the context abandons
// collection and fills the outstanding slots with sentinel results.
func (e *Engine) RunAll(ctx context.Context, a, b []float64) (results []stats.TestResult, truncated bool) {
	m := len(a)
	if len(b) < m {
		m = len(b)
	}
	needsTruncation := len(a) != len(b)
	for _, test := range e.tests {
		if test.RequiresEqualLength() && needsTruncation {
			truncated = true
		}
	}

	type indexed struct {
		result stats.TestResult
		index  int
	}
	resultChan := make(chan indexed, len(e.tests))

	for i, test := range e.tests {
		go func(test ComparativeTest, idx int) {
			sa, sb := a, b
			if test.RequiresEqualLength() && needsTruncation {
				sa, sb = a[:m], b[:m]
			}
			result, err := test.Compare(sa, sb)
			if err != nil {
				result = sentinelResult(test.Name(), err.Error())
			}
			resultChan <- indexed{result: result, index: idx}
		}(test, i)
	}

	results = make([]stats.TestResult, len(e.tests))
	collected := make([]bool, len(e.tests))
	for pending := len(e.tests); pending > 0; {
		select {
		case r := <-resultChan:
			results[r.index] = r.result
			collected[r.index] = true
			pending--
		case <-ctx.Done():
			for i, test := range e.tests {
				if !collected[i] {
					results[i] = sentinelResult(test.Name(), ctx.Err().Error())
				}
			}
			return results, truncated
		}
	}
	return results, truncated
}

// sentinelResult is the "no result" record for a test that could not run
func sentinelResult(name, reason string) stats.TestResult {
	nan := stats.Scalar(math.NaN())
	return stats.TestResult{
		TestName:   name,
		Statistic:  nan,
		PValue:     nan,
		EffectSize: nan,
		Effect:     stats.EffectIndeterminate,
		Summary:    reason,
		Caveats:    []string{reason},
	}
}

// Shared numeric helpers

func mean(sample []float64) float64 {
	if len(sample) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range sample {
		sum += v
	}
	return sum / float64(len(sample))
}

func sampleVariance(sample []float64) float64 {
	n := len(sample)
	if n < 2 {
		return math.NaN()
	}
	m := mean(sample)
	ss := 0.0
	for _, v := range sample {
		dev := v - m
		ss += dev * dev
	}
	return ss / float64(n-1)
}

func sampleStdDev(sample []float64) float64 {
	return math.Sqrt(sampleVariance(sample))
}

// skewness is the third standardized moment, used to explain why two
// distributions differ in shape.
func skewness(sample []float64) float64 {
	n := len(sample)
	if n < 3 {
		return math.NaN()
	}
	m := mean(sample)
	var m2, m3 float64
	for _, v := range sample {
		dev := v - m
		m2 += dev * dev
		m3 += dev * dev * dev
	}
	m2 /= float64(n)
	m3 /= float64(n)
	if m2 == 0 {
		return math.NaN()
	}
	return m3 / math.Pow(m2, 1.5)
}
