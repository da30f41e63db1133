package capture

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"framelens/domain/capture"
	"framelens/domain/core"
	"framelens/internal/errors"
)

// readPresentMonCSV parses a PresentMon or FrameView CSV capture. The first
// row is the header; every later row becomes one frame. Numeric cells are
// coerced to float64, everything else stays a string, empty cells stay nil.
func readPresentMonCSV(path string) (*capture.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.ParseError("failed to open capture file", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // FrameView appends ragged summary rows
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.ParseError("failed to parse capture CSV", err)
	}
	if len(records) < 2 {
		return nil, errors.ParseError("capture CSV needs a header row and at least one frame", nil)
	}

	header := make([]string, len(records[0]))
	for i, col := range records[0] {
		header[i] = strings.TrimSpace(col)
	}

	rows := make([]capture.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) == 0 {
			continue
		}
		row := make(capture.Row, len(header))
		for i, cell := range record {
			if i >= len(header) {
				break
			}
			row[header[i]] = coerceCell(cell)
		}
		rows = append(rows, row)
	}

	return &capture.Dataset{
		Name:    core.DatasetName(datasetName(path)),
		Rows:    rows,
		Source:  path,
		Format:  "presentmon",
		Columns: header,
	}, nil
}

// coerceCell turns a CSV cell into float64, string or nil
func coerceCell(cell string) any {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" || strings.EqualFold(trimmed, "na") {
		return nil
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return f
	}
	return trimmed
}
