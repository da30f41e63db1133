package capture

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"framelens/domain/capture"
	"framelens/internal"
	"framelens/internal/errors"
	"framelens/ports"
)

var _ ports.CaptureReader = (*DataReader)(nil)

// DataReader loads a frame-timing capture file. CSV files are read as
// PresentMon/FrameView captures, JSON files as CapFrameX captures.
type DataReader struct {
	filePath string
	format   string // "presentmon" or "capframex"
	logger   *internal.Logger
}

// NewDataReader creates a reader for the given capture file
func NewDataReader(filePath string) *DataReader {
	format := "presentmon"
	if strings.ToLower(filepath.Ext(filePath)) == ".json" {
		format = "capframex"
	}
	return &DataReader{
		filePath: filePath,
		format:   format,
		logger:   internal.DefaultLogger,
	}
}

// Read loads and normalizes the capture into a dataset named after the file
func (r *DataReader) Read(path string) (*capture.Dataset, error) {
	if path == "" {
		path = r.filePath
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.NotFound("capture file " + path)
	}

	start := time.Now()
	var (
		dataset *capture.Dataset
		err     error
	)
	switch r.format {
	case "capframex":
		dataset, err = readCapFrameX(path)
	default:
		dataset, err = readPresentMonCSV(path)
	}
	if err != nil {
		return nil, err
	}

	capture.NormalizeDataset(dataset)
	r.logger.Info("read %s capture %s: %d frames in %.2fms",
		r.format, path, dataset.FrameCount(), float64(time.Since(start).Nanoseconds())/1e6)
	return dataset, nil
}

// datasetName derives the dataset identity from the file name
func datasetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
