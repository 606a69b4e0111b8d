package render

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Alignment of a label relative to its bounding box
type Alignment int

const (
	Left   Alignment = 1
	Center Alignment = 2
	Right  Alignment = 3
)

// Font defines the parameters for rendering text on an image using GoCV
type Font struct {
	Face      gocv.HersheyFont
	Scale     float64
	Color     color.RGBA
	Thickness int
	LineType  gocv.LineType
	// Padding to place around text
	LeftPad   int
	RightPad  int
	TopPad    int
	BottomPad int
	// Alignment of the text label to the bounding box
	Alignment Alignment
}

// DefaultFont returns the font used for object ID and detection labels
func DefaultFont() Font {
	return Font{
		Face:      gocv.FontHersheySimplex,
		Scale:     0.5,
		Color:     White,
		Thickness: 1,
		LineType:  gocv.LineAA,
		LeftPad:   4,
		RightPad:  4,
		TopPad:    4,
		BottomPad: 6,
		Alignment: Left,
	}
}

// InfoFont returns the font used for the frame statistics overlay, drawn
// straight onto video without a label box behind it
func InfoFont() Font {
	return Font{
		Face:      gocv.FontHersheyPlain,
		Scale:     1.2,
		Color:     Yellow,
		Thickness: 1,
		LineType:  gocv.LineAA,
		LeftPad:   6,
		TopPad:    4,
		BottomPad: 4,
		Alignment: Left,
	}
}

// TextSize returns the rendered width and height of text
func (f Font) TextSize(text string) image.Point {
	return gocv.GetTextSize(text, f.Face, f.Scale, f.Thickness)
}

// LineHeight is the vertical space taken by one padded line of text
func (f Font) LineHeight(text string) int {
	return f.TextSize(text).Y + f.TopPad + f.BottomPad
}

// PutText draws text with its baseline starting at pt
func (f Font) PutText(img *gocv.Mat, text string, pt image.Point) {
	gocv.PutTextWithParams(img, text, pt, f.Face, f.Scale, f.Color,
		f.Thickness, f.LineType, false)
}
