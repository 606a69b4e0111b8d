package tracker

import (
	"image"
)

// Tlwh (top, left, width, height) represents a 1x4 matrix
type Tlwh []float32

// Rect represents a bounding box with Tlwh (top, left, width, height) format
type Rect struct {
	Tlwh Tlwh
}

// NewRect creates a new Rect with given coordinates
func NewRect(x, y, width, height float32) Rect {
	return Rect{
		Tlwh: Tlwh{x, y, width, height},
	}
}

// RectFromImage creates a Rect from an image.Rectangle as returned by the
// gocv visual trackers
func RectFromImage(r image.Rectangle) Rect {
	return NewRect(float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()),
		float32(r.Dy()))
}

// X returns the x coordinate of the rectangle
func (r Rect) X() float32 {
	return r.Tlwh[0]
}

// Y returns the y coordinate of the rectangle
func (r Rect) Y() float32 {
	return r.Tlwh[1]
}

// Width returns the width of the rectangle
func (r Rect) Width() float32 {
	return r.Tlwh[2]
}

// Height returns the height of the rectangle
func (r Rect) Height() float32 {
	return r.Tlwh[3]
}

// BRX returns the bottom-right x coordinate of the rectangle
func (r Rect) BRX() float32 {
	return r.Tlwh[0] + r.Tlwh[2]
}

// BRY returns the bottom-right y coordinate of the rectangle
func (r Rect) BRY() float32 {
	return r.Tlwh[1] + r.Tlwh[3]
}

// Centroid returns the center point of the rectangle.  Coordinates are
// truncated to integers before the width and height are halved, so a box
// at x=10 with width 5 has its center at x=12.
func (r Rect) Centroid() Point {
	return Point{
		X: int(r.Tlwh[0]) + int(r.Tlwh[2])/2,
		Y: int(r.Tlwh[1]) + int(r.Tlwh[3])/2,
	}
}

// ImageRect converts the rectangle to an image.Rectangle for use with gocv
func (r Rect) ImageRect() image.Rectangle {
	return image.Rect(int(r.Tlwh[0]), int(r.Tlwh[1]), int(r.BRX()), int(r.BRY()))
}

// Empty reports whether the rectangle has no area
func (r Rect) Empty() bool {
	return len(r.Tlwh) != 4 || r.Tlwh[2] <= 0 || r.Tlwh[3] <= 0
}
