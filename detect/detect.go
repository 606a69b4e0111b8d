package detect

import (
	"github.com/swdee/go-objtrack/postprocess"
	"gocv.io/x/gocv"
)

// Detector finds candidate object bounding boxes in a frame
type Detector interface {
	// Detect returns the objects found in frame in source frame coordinates
	Detect(frame gocv.Mat) ([]postprocess.DetectResult, error)
	// Close frees the resources held by the detector
	Close() error
}
