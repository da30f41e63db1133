package capture

import (
	"strings"

	"framelens/domain/core"
)

// frameTimeAlias maps a recognized per-frame-duration column (lower-cased,
// spaces stripped) to the factor converting its unit to milliseconds.
var frameTimeAlias = map[string]float64{
	"frametime":          1.0,
	"frametime(ms)":      1.0,
	"frametime(us)":      0.001,
	"msbetweenpresents":  1.0,
	"framedeltatime(ms)": 1.0,
}

// canonicalAliasKey folds a column name for alias matching: lower case,
// spaces removed.
func canonicalAliasKey(column string) string {
	return strings.ReplaceAll(strings.ToLower(column), " ", "")
}

// Normalize cross-fills the canonical FrameTime and FPS fields on a row.
//
// This is the ingestion-side contract the statistical engine depends on:
// after Normalize, if any recognized frame-duration alias was present, the
// row carries FrameTime in milliseconds; FPS comes from a literal fps column
// when present, otherwise it is derived as 1000/FrameTime.
func Normalize(row Row) Row {
	if _, ok := row.Number(string(core.MetricFrameTime)); !ok {
		for column, value := range row {
			f, isNum := value.(float64)
			if !isNum {
				continue
			}
			if scale, known := frameTimeAlias[canonicalAliasKey(column)]; known {
				row[string(core.MetricFrameTime)] = f * scale
				break
			}
		}
	}

	if _, ok := row.Number(string(core.MetricFPS)); !ok {
		if v, found := numberFold(row, "fps"); found {
			row[string(core.MetricFPS)] = v
		} else if ft, found := row.Number(string(core.MetricFrameTime)); found && ft > 0 {
			row[string(core.MetricFPS)] = 1000.0 / ft
		}
	}

	return row
}

// NormalizeDataset applies Normalize to every row in place and returns the
// dataset for chaining.
func NormalizeDataset(d *Dataset) *Dataset {
	for i := range d.Rows {
		d.Rows[i] = Normalize(d.Rows[i])
	}
	return d
}
