package capture

import (
	"strings"

	"framelens/domain/core"
)

// msBetweenPresents is the PresentMon column holding the frame duration in
// milliseconds. It is the last-resort fallback when a row was not normalized.
const msBetweenPresents = "msbetweenpresents"

// Resolve returns the numeric value of metricKey for a row.
//
// FrameTime resolves to the canonical FrameTime field, falling back to a
// case-insensitive msbetweenpresents lookup (already milliseconds, unscaled).
// FPS resolves to 1000/FrameTime when FrameTime is positive, with the same
// fallback. Any other key is matched exactly first, then case-insensitively.
//
// Resolve never panics; missing or non-numeric data yields ok=false, and the
// caller filters those frames out before any statistical computation.
func Resolve(row Row, metricKey core.MetricKey) (float64, bool) {
	switch metricKey {
	case core.MetricFrameTime:
		if v, ok := row.Number(string(core.MetricFrameTime)); ok {
			return v, true
		}
		return numberFold(row, msBetweenPresents)

	case core.MetricFPS:
		if ft, ok := row.Number(string(core.MetricFrameTime)); ok && ft > 0 {
			return 1000.0 / ft, true
		}
		if ft, ok := numberFold(row, msBetweenPresents); ok && ft > 0 {
			return 1000.0 / ft, true
		}
		return 0, false

	default:
		if v, ok := row.Number(string(metricKey)); ok {
			return v, true
		}
		return numberFold(row, string(metricKey))
	}
}

// numberFold is the case-insensitive numeric lookup used when the exact key
// is absent.
func numberFold(row Row, key string) (float64, bool) {
	for k, v := range row {
		if !strings.EqualFold(k, key) {
			continue
		}
		if f, ok := v.(float64); ok {
			return f, true
		}
	}
	return 0, false
}
