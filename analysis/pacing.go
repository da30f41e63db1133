package analysis

import (
	"math"

	mstats "github.com/montanaflynn/stats"

	"framelens/domain/stats"
)

const (
	// pacingSensitivity scales the median relative deviation into the
	// consistency score. Tuned against captures at 60-240 FPS, not derived
	// from theory.
	pacingSensitivity = 3.0

	// badTransitionFactor flags a frame-to-frame step as anomalous when it
	// exceeds this multiple of the median step.
	badTransitionFactor = 2.5

	minPacingFrames = 3
)

// AnalyzePacing computes the frame-pacing consistency of a frametime
// sequence. Medians and MAD stand in for mean and stdev so that occasional
// large stutters do not dominate the score, and the relative-deviation
// formula keeps the score independent of target framerate. Input order is
// the capture order and is preserved exactly.
func AnalyzePacing(frametimes []float64) stats.PacingResult {
	if len(frametimes) < minPacingFrames {
		return neutralPacing()
	}

	medianFT, err := mstats.Median(frametimes)
	if err != nil || medianFT <= 0 {
		return neutralPacing()
	}

	relDev := make([]float64, len(frametimes))
	for i, t := range frametimes {
		relDev[i] = math.Abs(t-medianFT) / medianFT
	}
	medianRelDev, err := mstats.Median(relDev)
	if err != nil {
		return neutralPacing()
	}

	madFT, _ := mstats.MedianAbsoluteDeviation(frametimes)

	diffs := make([]float64, len(frametimes)-1)
	for i := 1; i < len(frametimes); i++ {
		diffs[i-1] = math.Abs(frametimes[i] - frametimes[i-1])
	}
	medianDiff, _ := mstats.Median(diffs)
	madDiff, _ := mstats.MedianAbsoluteDeviation(diffs)

	consistency := 100 * (1 - math.Min(1, pacingSensitivity*medianRelDev))
	consistency = math.Max(0, math.Min(100, consistency))

	bad := make([]stats.Transition, 0)
	for i := 1; i < len(frametimes); i++ {
		diff := diffs[i-1]
		if diff > badTransitionFactor*medianDiff {
			ratio := math.Inf(1)
			if medianDiff > 0 {
				ratio = diff / medianDiff
			}
			bad = append(bad, stats.Transition{
				Index: i + 1, // 1-based, the later frame of the transition
				Value: diff,
				Ratio: stats.Scalar(ratio),
			})
		}
	}

	return stats.PacingResult{
		Consistency:      consistency,
		MedianFrameTime:  medianFT,
		MADFrameTime:     madFT,
		MedianTransition: medianDiff,
		MADTransition:    madDiff,
		BadTransitions:   bad,
	}
}

func neutralPacing() stats.PacingResult {
	return stats.PacingResult{BadTransitions: []stats.Transition{}}
}
