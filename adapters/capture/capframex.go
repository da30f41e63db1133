package capture

import (
	"os"

	"github.com/goccy/go-json"

	"framelens/domain/capture"
	"framelens/domain/core"
	"framelens/internal/errors"
)

// capFrameXFile mirrors the CapFrameX export layout: runs carrying parallel
// per-frame arrays keyed by measure name.
type capFrameXFile struct {
	Runs []struct {
		CaptureData map[string]json.RawMessage `json:"CaptureData"`
	} `json:"Runs"`
}

// readCapFrameX parses a CapFrameX JSON capture. Frames of all runs are
// concatenated in run order; every numeric array in CaptureData becomes a
// column.
func readCapFrameX(path string) (*capture.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ParseError("failed to read capture file", err)
	}

	var file capFrameXFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.ParseError("failed to parse CapFrameX JSON", err)
	}
	if len(file.Runs) == 0 {
		return nil, errors.ParseError("CapFrameX capture has no runs", nil)
	}

	var rows []capture.Row
	columns := map[string]bool{}

	for _, run := range file.Runs {
		series := make(map[string][]float64, len(run.CaptureData))
		frameCount := 0
		for name, raw := range run.CaptureData {
			var values []float64
			if err := json.Unmarshal(raw, &values); err != nil {
				continue // non-numeric measure (process names etc.)
			}
			series[name] = values
			columns[name] = true
			if len(values) > frameCount {
				frameCount = len(values)
			}
		}

		for i := 0; i < frameCount; i++ {
			row := make(capture.Row, len(series))
			for name, values := range series {
				if i < len(values) {
					row[name] = values[i]
				}
			}
			rows = append(rows, row)
		}
	}

	columnList := make([]string, 0, len(columns))
	for name := range columns {
		columnList = append(columnList, name)
	}

	return &capture.Dataset{
		Name:    core.DatasetName(datasetName(path)),
		Rows:    rows,
		Source:  path,
		Format:  "capframex",
		Columns: columnList,
	}, nil
}
