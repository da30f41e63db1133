package analysis

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// sequence returns [1, 2, ..., n] as floats
func sequence(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i + 1)
	}
	return out
}

// TestDescribe_EmptySample verifies the all-NaN record for empty input
func TestDescribe_EmptySample(t *testing.T) {
	result := Describe(nil, "FrameTime")
	if !math.IsNaN(result.Avg.F()) || !math.IsNaN(result.Min.F()) || !math.IsNaN(result.Low1.F()) {
		t.Errorf("Expected all-NaN statistics for empty sample, got %+v", result)
	}
}

// TestDescribe_HarmonicMeanForFPS verifies FPS averages harmonically:
// [30, 60, 90] has harmonic mean 3/(1/30+1/60+1/90) = 49.0909...
func TestDescribe_HarmonicMeanForFPS(t *testing.T) {
	sample := []float64{30, 60, 90}

	fps := Describe(sample, "FPS")
	if !almostEqual(fps.Avg.F(), 49.090909, 1e-4) {
		t.Errorf("Expected harmonic mean 49.0909 for FPS, got %f", fps.Avg.F())
	}

	ft := Describe(sample, "FrameTime")
	if !almostEqual(ft.Avg.F(), 60.0, 1e-9) {
		t.Errorf("Expected arithmetic mean 60 for FrameTime, got %f", ft.Avg.F())
	}
}

// TestDescribe_PercentileDirection verifies the tail percentiles flip with
// the metric direction. For [1..100]:
//   - FPS (worst is low): p1 = 1st percentile = 1
//   - FrameTime (worst is high): p1 slot holds the 99th percentile = 99
func TestDescribe_PercentileDirection(t *testing.T) {
	sample := sequence(100)

	fps := Describe(sample, "FPS")
	if fps.P1.F() != 1 {
		t.Errorf("Expected FPS p1 = 1, got %f", fps.P1.F())
	}
	if fps.P01.F() != 1 {
		t.Errorf("Expected FPS p0.1 = 1 (rank clamps to first), got %f", fps.P01.F())
	}

	ft := Describe(sample, "FrameTime")
	if ft.P1.F() != 99 {
		t.Errorf("Expected FrameTime p1 slot = 99th percentile = 99, got %f", ft.P1.F())
	}
	if ft.P01.F() != 100 {
		t.Errorf("Expected FrameTime p0.1 slot = 99.9th percentile = 100, got %f", ft.P01.F())
	}
}

// TestDescribe_LowAggregates verifies X% Low takes the mean of the worst
// ceil(n*p) frames with a floor of one frame
func TestDescribe_LowAggregates(t *testing.T) {
	sample := sequence(100)

	// FrameTime: worst frame is the highest value
	ft := Describe(sample, "FrameTime")
	if ft.Low1.F() != 100 {
		t.Errorf("Expected FrameTime 1%% low = mean of worst 1 frame = 100, got %f", ft.Low1.F())
	}
	if ft.Low001.F() != 100 {
		t.Errorf("Expected FrameTime 0.01%% low to clamp to 1 frame, got %f", ft.Low001.F())
	}

	// FPS: worst frame is the lowest value
	fps := Describe(sample, "FPS")
	if fps.Low1.F() != 1 {
		t.Errorf("Expected FPS 1%% low = 1, got %f", fps.Low1.F())
	}

	// 200 frames makes ceil(200*0.01) = 2 worst frames
	big := sequence(200)
	ft200 := Describe(big, "FrameTime")
	if ft200.Low1.F() != 199.5 {
		t.Errorf("Expected mean of worst 2 of 200 = 199.5, got %f", ft200.Low1.F())
	}
}

// TestDescribe_HeuristicKindDetection verifies the value-range fallback only
// applies when the metric name is empty
func TestDescribe_HeuristicKindDetection(t *testing.T) {
	// Looks like a framerate: avg > 30, min > 20. Worst tail should be low.
	fpsLike := []float64{58, 59, 60, 61, 62}
	result := Describe(fpsLike, "")
	if result.Low1.F() != 58 {
		t.Errorf("Expected heuristic FPS direction (low tail), got low1=%f", result.Low1.F())
	}
	// The heuristic never switches the averaging method
	if !almostEqual(result.Avg.F(), 60.0, 1e-9) {
		t.Errorf("Expected arithmetic mean under heuristic detection, got %f", result.Avg.F())
	}

	// Frame-time range: direction stays high-tail
	ftLike := []float64{8, 9, 10, 11, 40}
	result = Describe(ftLike, "")
	if result.Low1.F() != 40 {
		t.Errorf("Expected heuristic time direction (high tail), got low1=%f", result.Low1.F())
	}
}

// TestDescribe_SingleValue verifies the degenerate single-frame sample
func TestDescribe_SingleValue(t *testing.T) {
	result := Describe([]float64{16.7}, "FrameTime")
	if result.Min.F() != 16.7 || result.Max.F() != 16.7 || result.Avg.F() != 16.7 {
		t.Errorf("Expected all positional stats = 16.7, got %+v", result)
	}
	if !math.IsNaN(result.StdDev.F()) {
		t.Errorf("Expected NaN stdev for single value, got %f", result.StdDev.F())
	}
	if result.Low1.F() != 16.7 {
		t.Errorf("Expected low aggregate to clamp to the one frame, got %f", result.Low1.F())
	}
}

// TestHarmonicMean_ZeroValue verifies the stalled-frame limit
func TestHarmonicMean_ZeroValue(t *testing.T) {
	if h := harmonicMean([]float64{0, 60, 60}); h != 0 {
		t.Errorf("Expected harmonic mean 0 with a zero value, got %f", h)
	}
}
