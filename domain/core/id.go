package core

import (
	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Falls back to v4 if v7 is not available
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	// ReportID identifies a stored comparison report
	ReportID ID

	// DatasetName identifies a dataset; identity is its name, not a UUID
	DatasetName string

	// MetricKey names a per-frame metric column (FrameTime, FPS, or a vendor column)
	MetricKey string
)

// Canonical metric keys. FrameTime and FPS are reciprocally derivable
// (FPS = 1000/FrameTime) whenever either is present and positive.
const (
	MetricFrameTime MetricKey = "FrameTime"
	MetricFPS       MetricKey = "FPS"
)

// String returns the string representation
func (id ReportID) String() string {
	return ID(id).String()
}

// IsEmpty checks if the report ID is empty
func (id ReportID) IsEmpty() bool {
	return ID(id).IsEmpty()
}

func (k MetricKey) String() string {
	return string(k)
}

func (n DatasetName) String() string {
	return string(n)
}
