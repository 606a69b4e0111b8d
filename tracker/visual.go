package tracker

import (
	"fmt"
	"image"
	"strings"

	"gocv.io/x/gocv"
	"gocv.io/x/gocv/contrib"
)

// Frame is the image buffer passed to visual trackers.  The tracker never
// writes to it.
type Frame = gocv.Mat

// VisualTracker is a single object tracker that estimates a bounding box
// from one frame to the next.  Any gocv.Tracker satisfies this interface.
type VisualTracker interface {
	// Init initializes the tracker with the region of interest in frame
	Init(frame gocv.Mat, box image.Rectangle) bool
	// Update returns the estimated region for the object in frame
	Update(frame gocv.Mat) (image.Rectangle, bool)
	// Close releases the tracker resources
	Close() error
}

// VisualTrackerFactory creates a new VisualTracker instance, one is created
// per tracked object
type VisualTrackerFactory func() VisualTracker

// VisualKind names an OpenCV single object tracking algorithm
type VisualKind string

const (
	VisualNone VisualKind = "none"
	VisualKCF  VisualKind = "kcf"
	VisualCSRT VisualKind = "csrt"
	VisualMIL  VisualKind = "mil"
)

// NewVisualTrackerFactory returns a factory for the given OpenCV tracker
// kind.  VisualNone returns a nil factory which disables visual tracking.
func NewVisualTrackerFactory(kind VisualKind) (VisualTrackerFactory, error) {

	switch VisualKind(strings.ToLower(string(kind))) {
	case VisualNone, "":
		return nil, nil
	case VisualKCF:
		return func() VisualTracker { return contrib.NewTrackerKCF() }, nil
	case VisualCSRT:
		return func() VisualTracker { return contrib.NewTrackerCSRT() }, nil
	case VisualMIL:
		return func() VisualTracker { return gocv.NewTrackerMIL() }, nil
	}

	return nil, fmt.Errorf("unknown visual tracker kind %q", kind)
}
