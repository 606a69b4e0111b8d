package postprocess

import "image"

type DetectionResult interface {
	GetDetectResults() []DetectResult
}

// BoxRect are the dimensions of the bounding box of a detect object
type BoxRect struct {
	Left   int
	Right  int
	Top    int
	Bottom int
}

// Width returns the width of the box
func (b BoxRect) Width() int {
	return b.Right - b.Left
}

// Height returns the height of the box
func (b BoxRect) Height() int {
	return b.Bottom - b.Top
}

// Rect returns the box as an image.Rectangle
func (b BoxRect) Rect() image.Rectangle {
	return image.Rect(b.Left, b.Top, b.Right, b.Bottom)
}

// BoxFromRect creates a BoxRect from an image.Rectangle
func BoxFromRect(r image.Rectangle) BoxRect {
	return BoxRect{
		Left:   r.Min.X,
		Right:  r.Max.X,
		Top:    r.Min.Y,
		Bottom: r.Max.Y,
	}
}

// DetectResult defines the attributes of a single object detected
type DetectResult struct {
	// Class is the line number in the labels file the Model was trained on
	// defining the Class of the detected object.  Motion detection results
	// have no class and use -1.
	Class int
	// Box are the bounding box dimensions of the object location
	Box BoxRect
	// Probability is the confidence score of the object detected
	Probability float32
	// ID is a unique ID assigned to the detection result
	ID int64
}

// ClassFilter returns the set of class IDs whose label is one of keep, for use
// as SSDParams.Classes.  A nil set is returned when keep is empty so all
// classes pass.
func ClassFilter(labels []string, keep []string) map[int]bool {

	if len(keep) == 0 {
		return nil
	}

	want := make(map[string]bool, len(keep))

	for _, k := range keep {
		want[k] = true
	}

	ids := make(map[int]bool)

	for i, label := range labels {
		if want[label] {
			ids[i] = true
		}
	}

	return ids
}
