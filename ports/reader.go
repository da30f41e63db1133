package ports

import (
	"framelens/domain/capture"
)

// CaptureReader loads a frame-timing capture file into a normalized dataset.
// Implementations exist per capture format (PresentMon/FrameView CSV,
// CapFrameX JSON).
type CaptureReader interface {
	Read(path string) (*capture.Dataset, error)
}
