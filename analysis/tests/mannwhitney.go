package tests

import (
	"fmt"
	"math"
	"sort"

	mstats "github.com/montanaflynn/stats"

	"framelens/analysis"
	"framelens/domain/stats"
)

// MannWhitneyTest is the rank-sum test: distribution-free, robust to the
// heavy right tails frame-time samples usually have.
type MannWhitneyTest struct {
	dist *analysis.Distributions
}

// NewMannWhitneyTest creates the Mann-Whitney U test
func NewMannWhitneyTest() *MannWhitneyTest {
	return &MannWhitneyTest{dist: analysis.NewDistributions()}
}

// Name returns the test name
func (t *MannWhitneyTest) Name() string {
	return "mann_whitney_u"
}

// Description returns a human-readable description
func (t *MannWhitneyTest) Description() string {
	return "Rank-sum test for a location shift between two captures, robust to outliers"
}

// RequiresEqualLength is false: ranks do not pair frames
func (t *MannWhitneyTest) RequiresEqualLength() bool {
	return false
}

// Compare runs the tie-corrected Mann-Whitney U test with continuity
// correction.
func (t *MannWhitneyTest) Compare(a, b []float64) (stats.TestResult, error) {
	n1, n2 := len(a), len(b)
	if n1 < 1 || n2 < 1 {
		return sentinelResult(t.Name(), "insufficient data for Mann-Whitney U test (need at least 1 point per group)"), nil
	}

	rankSumA, rankSumB, tieSum := rankSums(a, b)
	fn1, fn2 := float64(n1), float64(n2)
	total := fn1 + fn2

	u1 := rankSumA - fn1*(fn1+1)/2
	u2 := fn1*fn2 - u1
	u := math.Min(u1, u2)

	meanU := fn1 * fn2 / 2

	// Tie-corrected variance: base n1*n2*(N+1)/12 reduced by the tie term
	variance := fn1*fn2*(total+1)/12 - (tieSum/12)*fn1*fn2/(total*(total-1))

	z := math.NaN()
	if variance > 0 {
		num := u1 - meanU
		// Continuity correction shrinks the statistic toward the null
		if num > 0 {
			num -= 0.5
		} else if num < 0 {
			num += 0.5
		}
		z = num / math.Sqrt(variance)
	} else if u1 == meanU {
		z = 0
	}

	pValue := t.dist.ZTestPValue(z)
	r := z / math.Sqrt(total)
	effect := stats.BandRankBiserial(r)

	// Common-language effect size: how often a random A frame outranks a
	// random B frame, in percent.
	commonLanguage := u1 / (fn1 * fn2) * 100

	higherGroup := "none"
	if rankSumA/fn1 > rankSumB/fn2 {
		higherGroup = "A"
	} else if rankSumB/fn2 > rankSumA/fn1 {
		higherGroup = "B"
	}

	medianA, _ := mstats.Median(a)
	medianB, _ := mstats.Median(b)
	iqrA, _ := mstats.InterQuartileRange(a)
	iqrB, _ := mstats.InterQuartileRange(b)

	var caveats []string
	if n1 < minReliableGroupSize || n2 < minReliableGroupSize {
		caveats = append(caveats, fmt.Sprintf("group sizes %d/%d are below %d; the normal approximation is unreliable", n1, n2, minReliableGroupSize))
	}

	return stats.TestResult{
		TestName:   t.Name(),
		Statistic:  stats.Scalar(u),
		PValue:     stats.Scalar(pValue),
		EffectSize: stats.Scalar(r),
		Effect:     effect,
		Summary:    t.summarize(u, z, pValue, r, medianA, medianB, higherGroup),
		Caveats:    caveats,
		Metadata: map[string]any{
			"u1":              stats.Scalar(u1),
			"u2":              stats.Scalar(u2),
			"z":               stats.Scalar(z),
			"rank_sum_a":      stats.Scalar(rankSumA),
			"rank_sum_b":      stats.Scalar(rankSumB),
			"tie_correction":  stats.Scalar(tieSum / 12),
			"common_language": stats.Scalar(commonLanguage),
			"median_a":        stats.Scalar(medianA),
			"median_b":        stats.Scalar(medianB),
			"iqr_a":           stats.Scalar(iqrA),
			"iqr_b":           stats.Scalar(iqrB),
			"higher_group":    higherGroup,
			"n_a":             n1,
			"n_b":             n2,
		},
	}, nil
}

func (t *MannWhitneyTest) summarize(u, z, pValue, r, medianA, medianB float64, higherGroup string) string {
	if math.IsNaN(z) {
		return "Rank distribution is degenerate (all values tied); no rank-based difference measurable"
	}
	if !stats.Significant(pValue) {
		return fmt.Sprintf("No significant rank difference (U=%.1f, z=%.3f, p=%.3g, r=%.3f)", u, z, pValue, r)
	}
	return fmt.Sprintf("Significant rank difference: group %s ranks higher (U=%.1f, z=%.3f, p=%.3g, r=%.3f, medians %.3f vs %.3f)",
		higherGroup, u, z, pValue, r, medianA, medianB)
}

// rankSums assigns tie-averaged ranks across the merged samples and returns
// the per-group rank sums plus the tie-correction accumulator sum(t^3 - t).
func rankSums(a, b []float64) (rankSumA, rankSumB, tieSum float64) {
	type tagged struct {
		value float64
		fromA bool
	}

	merged := make([]tagged, 0, len(a)+len(b))
	for _, v := range a {
		merged = append(merged, tagged{value: v, fromA: true})
	}
	for _, v := range b {
		merged = append(merged, tagged{value: v})
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].value < merged[j].value
	})

	n := len(merged)
	i := 0
	for i < n {
		j := i + 1
		for j < n && merged[j].value == merged[i].value {
			j++
		}

		groupSize := j - i
		avgRank := float64(i+1) + float64(groupSize-1)/2.0
		for k := i; k < j; k++ {
			if merged[k].fromA {
				rankSumA += avgRank
			} else {
				rankSumB += avgRank
			}
		}

		if groupSize > 1 {
			g := float64(groupSize)
			tieSum += g*g*g - g
		}
		i = j
	}
	return rankSumA, rankSumB, tieSum
}
