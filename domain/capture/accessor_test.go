package capture

import (
	"math"
	"testing"

	"framelens/domain/core"
)

// TestResolve_FrameTimeDirect verifies the canonical field wins
func TestResolve_FrameTimeDirect(t *testing.T) {
	row := Row{"FrameTime": 16.7, "msbetweenpresents": 99.0}
	v, ok := Resolve(row, core.MetricFrameTime)
	if !ok {
		t.Fatal("Expected FrameTime to resolve")
	}
	if v != 16.7 {
		t.Errorf("Expected canonical FrameTime 16.7, got %f", v)
	}
}

// TestResolve_FrameTimeFallback verifies the msbetweenpresents fallback is
// case-insensitive and unscaled
func TestResolve_FrameTimeFallback(t *testing.T) {
	row := Row{"MsBetweenPresents": 8.33}
	v, ok := Resolve(row, core.MetricFrameTime)
	if !ok {
		t.Fatal("Expected fallback to resolve")
	}
	if v != 8.33 {
		t.Errorf("Expected unscaled fallback value 8.33, got %f", v)
	}
}

// TestResolve_FPSReciprocity verifies FPS = 1000/FrameTime
func TestResolve_FPSReciprocity(t *testing.T) {
	row := Row{"FrameTime": 16.667}
	v, ok := Resolve(row, core.MetricFPS)
	if !ok {
		t.Fatal("Expected FPS to resolve from FrameTime")
	}
	if math.Abs(v-60.0) > 0.01 {
		t.Errorf("Expected FPS near 60 from 16.667ms, got %f", v)
	}
}

// TestResolve_FPSRejectsNonPositiveFrameTime verifies zero and negative frame
// times never produce an FPS value
func TestResolve_FPSRejectsNonPositiveFrameTime(t *testing.T) {
	for _, ft := range []float64{0, -5} {
		row := Row{"FrameTime": ft}
		if _, ok := Resolve(row, core.MetricFPS); ok {
			t.Errorf("Expected FPS resolution to fail for FrameTime=%f", ft)
		}
	}
}

// TestResolve_ArbitraryMetricCaseInsensitive verifies the exact-then-folded
// lookup order for vendor columns
func TestResolve_ArbitraryMetricCaseInsensitive(t *testing.T) {
	row := Row{"GPUBusy": 4.2}

	if v, ok := Resolve(row, core.MetricKey("GPUBusy")); !ok || v != 4.2 {
		t.Errorf("Expected exact match 4.2, got %f (ok=%t)", v, ok)
	}
	if v, ok := Resolve(row, core.MetricKey("gpubusy")); !ok || v != 4.2 {
		t.Errorf("Expected case-insensitive match 4.2, got %f (ok=%t)", v, ok)
	}
	if _, ok := Resolve(row, core.MetricKey("missing")); ok {
		t.Error("Expected missing column to not resolve")
	}
}

// TestResolve_NonNumericValues verifies strings and nils yield ok=false
func TestResolve_NonNumericValues(t *testing.T) {
	row := Row{"FrameTime": "not a number", "GPUBusy": nil}
	if _, ok := Resolve(row, core.MetricFrameTime); ok {
		t.Error("Expected string value to not resolve")
	}
	if _, ok := Resolve(row, core.MetricKey("GPUBusy")); ok {
		t.Error("Expected nil value to not resolve")
	}
}

// TestNormalize_AliasScaling verifies unit conversion on recognized aliases
func TestNormalize_AliasScaling(t *testing.T) {
	row := Normalize(Row{"FrameTime (us)": 16700.0})
	v, ok := row.Number(string(core.MetricFrameTime))
	if !ok {
		t.Fatal("Expected microsecond alias to fill FrameTime")
	}
	if math.Abs(v-16.7) > 1e-9 {
		t.Errorf("Expected 16.7ms from 16700us, got %f", v)
	}

	fps, ok := row.Number(string(core.MetricFPS))
	if !ok {
		t.Fatal("Expected FPS to be derived during normalization")
	}
	if math.Abs(fps-1000.0/16.7) > 1e-9 {
		t.Errorf("Expected derived FPS %f, got %f", 1000.0/16.7, fps)
	}
}

// TestNormalize_LiteralFPSWins verifies a literal fps column is preferred over
// the derived value
func TestNormalize_LiteralFPSWins(t *testing.T) {
	row := Normalize(Row{"FrameTime": 20.0, "Fps": 49.5})
	fps, ok := row.Number(string(core.MetricFPS))
	if !ok || fps != 49.5 {
		t.Errorf("Expected literal fps column 49.5, got %f (ok=%t)", fps, ok)
	}
}

// TestMetricValues_FiltersNonFinite verifies the dataset filtering contract
func TestMetricValues_FiltersNonFinite(t *testing.T) {
	d := &Dataset{
		Name: "run",
		Rows: []Row{
			{"FrameTime": 16.0},
			{"FrameTime": math.NaN()},
			{"FrameTime": math.Inf(1)},
			{"FrameTime": "bad"},
			{"FrameTime": 17.0},
		},
	}
	values := d.MetricValues(core.MetricFrameTime)
	if len(values) != 2 {
		t.Fatalf("Expected 2 finite values, got %d: %v", len(values), values)
	}
	if values[0] != 16.0 || values[1] != 17.0 {
		t.Errorf("Expected capture order [16 17], got %v", values)
	}
}

// TestFromValues_RoundTrip verifies the raw-series constructor feeds back the
// same values
func TestFromValues_RoundTrip(t *testing.T) {
	in := []float64{16.0, 17.0, 16.5}
	d := FromValues("run", core.MetricFrameTime, in)
	out := d.MetricValues(core.MetricFrameTime)
	if len(out) != len(in) {
		t.Fatalf("Expected %d values, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("Value %d: expected %f, got %f", i, in[i], out[i])
		}
	}

	// FPS must be derivable from the same dataset
	fps := d.MetricValues(core.MetricFPS)
	if len(fps) != len(in) {
		t.Fatalf("Expected %d derived FPS values, got %d", len(in), len(fps))
	}
	if math.Abs(fps[0]-62.5) > 1e-9 {
		t.Errorf("Expected 62.5 FPS from 16ms, got %f", fps[0])
	}
}
