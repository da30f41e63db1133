package capture

import (
	"math"

	"framelens/domain/core"
)

// Row maps a column name to a captured value for a single frame.
// Values are float64, string, or nil once parsing has coerced them.
// Rows are immutable after ingestion.
type Row map[string]any

// Number returns the value under key if it is numeric.
func (r Row) Number(key string) (float64, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

// Dataset is a named, ordered sequence of captured frames.
// Identity is the name; row order is the capture order and is significant
// for pacing analysis.
type Dataset struct {
	Name    core.DatasetName `json:"name"`
	Rows    []Row            `json:"rows"`
	Source  string           `json:"source,omitempty"` // file path or label the rows came from
	Format  string           `json:"format,omitempty"` // "presentmon", "frameview", "capframex"
	Columns []string         `json:"columns,omitempty"`
}

// FromValues builds a single-metric dataset from raw values, for callers
// that already hold a numeric series instead of a capture file.
func FromValues(name core.DatasetName, metric core.MetricKey, values []float64) *Dataset {
	rows := make([]Row, len(values))
	for i, v := range values {
		rows[i] = Normalize(Row{string(metric): v})
	}
	return &Dataset{
		Name:    name,
		Rows:    rows,
		Columns: []string{string(metric)},
	}
}

// FrameCount returns the number of captured frames
func (d *Dataset) FrameCount() int {
	return len(d.Rows)
}

// MetricValues resolves metricKey for every row and returns the finite
// numeric values in capture order. Rows where the metric is absent or
// non-numeric are skipped, which is the filtering contract the statistical
// engine expects from its callers.
func (d *Dataset) MetricValues(metricKey core.MetricKey) []float64 {
	values := make([]float64, 0, len(d.Rows))
	for _, row := range d.Rows {
		if v, ok := Resolve(row, metricKey); ok && !math.IsNaN(v) && !math.IsInf(v, 0) {
			values = append(values, v)
		}
	}
	return values
}
