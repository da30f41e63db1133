package tests

import (
	"fmt"
	"math"

	"framelens/analysis"
	"framelens/domain/stats"
)

// PacingDifferentialTest compares the frame-pacing consistency of two
// captures. It carries no p-value: the assessment is by fixed bands on the
// consistency differential.
type PacingDifferentialTest struct{}

// NewPacingDifferentialTest creates the pacing differential
func NewPacingDifferentialTest() *PacingDifferentialTest {
	return &PacingDifferentialTest{}
}

// Name returns the test name
func (t *PacingDifferentialTest) Name() string {
	return "pacing_differential"
}

// Description returns a human-readable description
func (t *PacingDifferentialTest) Description() string {
	return "Compares frame-pacing consistency and stutter counts between two captures"
}

// RequiresEqualLength is true: the differential compares like-for-like
// capture windows.
func (t *PacingDifferentialTest) RequiresEqualLength() bool {
	return true
}

// Compare reports B-minus-A differentials of consistency, median transition
// and bad-transition count.
func (t *PacingDifferentialTest) Compare(a, b []float64) (stats.TestResult, error) {
	if len(a) < 3 || len(b) < 3 {
		return sentinelResult(t.Name(), "insufficient data for pacing analysis (need at least 3 frames per capture)"), nil
	}

	pacingA := analysis.AnalyzePacing(a)
	pacingB := analysis.AnalyzePacing(b)

	deltaConsistency := pacingB.Consistency - pacingA.Consistency
	deltaTransition := pacingB.MedianTransition - pacingA.MedianTransition
	deltaBad := len(pacingB.BadTransitions) - len(pacingA.BadTransitions)

	effect := stats.BandConsistencyDelta(deltaConsistency)

	return stats.TestResult{
		TestName:   t.Name(),
		Statistic:  stats.Scalar(deltaConsistency),
		PValue:     stats.Scalar(math.NaN()), // no sampling distribution: band-based assessment
		EffectSize: stats.Scalar(deltaConsistency),
		Effect:     effect,
		Summary:    t.summarize(deltaConsistency, deltaBad, effect, pacingA, pacingB),
		Metadata: map[string]any{
			"consistency_a":           stats.Scalar(pacingA.Consistency),
			"consistency_b":           stats.Scalar(pacingB.Consistency),
			"delta_consistency":       stats.Scalar(deltaConsistency),
			"median_transition_a":     stats.Scalar(pacingA.MedianTransition),
			"median_transition_b":     stats.Scalar(pacingB.MedianTransition),
			"delta_median_transition": stats.Scalar(deltaTransition),
			"bad_transitions_a":       len(pacingA.BadTransitions),
			"bad_transitions_b":       len(pacingB.BadTransitions),
			"delta_bad_transitions":   deltaBad,
		},
	}, nil
}

func (t *PacingDifferentialTest) summarize(deltaConsistency float64, deltaBad int, effect stats.EffectBand, pacingA, pacingB stats.PacingResult) string {
	if effect == stats.EffectNegligible {
		return fmt.Sprintf("Pacing is equivalent (%.1f%% vs %.1f%% consistency)", pacingA.Consistency, pacingB.Consistency)
	}
	direction := "improvement"
	if deltaConsistency < 0 {
		direction = "degradation"
	}
	return fmt.Sprintf("%s pacing %s: %.1f%% -> %.1f%% consistency, bad transitions %d -> %d",
		effect, direction, pacingA.Consistency, pacingB.Consistency,
		len(pacingA.BadTransitions), len(pacingB.BadTransitions))
}
