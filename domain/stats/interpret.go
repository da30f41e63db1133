package stats

import (
	"fmt"
	"math"
	"strings"
)

// banded maps |effect| onto the four bands using per-test thresholds.
// Non-finite effects (zero-variance inputs produce Inf/NaN ratios) cannot be
// judged and come back indeterminate rather than crashing the caller.
func banded(effect, small, medium, large float64) EffectBand {
	if math.IsNaN(effect) || math.IsInf(effect, 0) {
		return EffectIndeterminate
	}
	abs := math.Abs(effect)
	switch {
	case abs < small:
		return EffectNegligible
	case abs < medium:
		return EffectSmall
	case abs < large:
		return EffectMedium
	default:
		return EffectLarge
	}
}

// BandCohenD interprets Cohen's d: 0.2 / 0.5 / 0.8
func BandCohenD(d float64) EffectBand {
	return banded(d, 0.2, 0.5, 0.8)
}

// BandRankBiserial interprets r = z/sqrt(N): 0.1 / 0.3 / 0.5
func BandRankBiserial(r float64) EffectBand {
	return banded(r, 0.1, 0.3, 0.5)
}

// BandKS interprets the KS statistic D: 0.15 / 0.3 / 0.5
func BandKS(d float64) EffectBand {
	return banded(d, 0.15, 0.3, 0.5)
}

// BandLogF interprets |ln F|: 0.5 / 1.0 / 1.5
func BandLogF(lnF float64) EffectBand {
	return banded(lnF, 0.5, 1.0, 1.5)
}

// BandConsistencyDelta interprets a pacing consistency differential in
// percentage points: 2 / 5 / 10
func BandConsistencyDelta(delta float64) EffectBand {
	return banded(delta, 2, 5, 10)
}

// Significant applies the conventional alpha=0.05 cut; NaN p-values read as
// not significant.
func Significant(pValue float64) bool {
	return !math.IsNaN(pValue) && pValue < 0.05
}

// bandRank orders bands for picking the dominant effect across tests
func bandRank(b EffectBand) int {
	switch b {
	case EffectLarge:
		return 4
	case EffectMedium:
		return 3
	case EffectSmall:
		return 2
	case EffectNegligible:
		return 1
	default:
		return 0
	}
}

// DominantEffect returns the strongest determinate band among the results
func DominantEffect(results []TestResult) EffectBand {
	best := EffectIndeterminate
	for _, r := range results {
		if bandRank(r.Effect) > bandRank(best) {
			best = r.Effect
		}
	}
	return best
}

// BuildVerdict renders the comparative verdict for a report as markdown.
// Direction comes from the mean comparison under the metric's improvement
// direction; magnitude from the strongest effect band across the battery.
func BuildVerdict(r *ComparisonReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s vs %s — %s\n\n", r.A.Name, r.B.Name, r.Metric)

	avgA := r.A.Stats.Avg.F()
	avgB := r.B.Stats.Avg.F()
	effect := DominantEffect(r.Tests)

	switch {
	case math.IsNaN(avgA) || math.IsNaN(avgB):
		b.WriteString("Not enough data to compare the datasets.\n")
	case effect == EffectIndeterminate:
		b.WriteString("Effect size could not be determined (degenerate input).\n")
	case effect == EffectNegligible:
		fmt.Fprintf(&b, "**%s** and **%s** perform equivalently on %s (negligible effect).\n",
			r.A.Name, r.B.Name, r.Metric)
	default:
		better, worse := r.A.Name, r.B.Name
		betterAvg, worseAvg := avgA, avgB
		bBetter := avgB < avgA
		if !r.Kind.LowerIsBetter() {
			bBetter = avgB > avgA
		}
		if bBetter {
			better, worse = r.B.Name, r.A.Name
			betterAvg, worseAvg = avgB, avgA
		}
		fmt.Fprintf(&b, "**%s** performs better than **%s** on %s (%s effect, %.2f vs %.2f average).\n",
			better, worse, r.Metric, effect, betterAvg, worseAvg)
	}

	if r.Truncated {
		b.WriteString("\n*Samples were truncated to equal length for the paired test.*\n")
	}

	b.WriteString("\n### Test battery\n\n")
	for _, t := range r.Tests {
		fmt.Fprintf(&b, "- **%s**: %s\n", t.TestName, t.Summary)
		for _, c := range t.Caveats {
			fmt.Fprintf(&b, "  - caveat: %s\n", c)
		}
	}

	pacingDelta := r.B.Pacing.Consistency - r.A.Pacing.Consistency
	fmt.Fprintf(&b, "\n### Frame pacing\n\n- %s: %.1f%% consistent, %d bad transitions\n- %s: %.1f%% consistent, %d bad transitions\n",
		r.A.Name, r.A.Pacing.Consistency, len(r.A.Pacing.BadTransitions),
		r.B.Name, r.B.Pacing.Consistency, len(r.B.Pacing.BadTransitions))
	if band := BandConsistencyDelta(pacingDelta); band != EffectNegligible && band != EffectIndeterminate {
		word := "improvement"
		if pacingDelta < 0 {
			word = "degradation"
		}
		fmt.Fprintf(&b, "- %s pacing %s of %.1f points from %s to %s\n", band, word, math.Abs(pacingDelta), r.A.Name, r.B.Name)
	}

	return b.String()
}
