package render

import (
	"image"
	"image/color"

	"github.com/swdee/go-objtrack/tracker"
	"gocv.io/x/gocv"
)

// TrailStyle defines the parameters used for rendering the trail style
type TrailStyle struct {
	// LineSame defines if the color of the trail line should be the
	// same color as that of the bounding box.  If set to false then use
	// the color specified at LineColor
	LineSame      bool
	LineColor     color.RGBA
	LineThickness int
	// CircleSame defines if the color of the centroid circle should be the
	// same color as that of the bounding box.  If set to false then use
	// the color specified at CircleColor
	CircleSame   bool
	CircleColor  color.RGBA
	CircleRadius int
}

// DefaultTrailStyle returns default trail style settings
func DefaultTrailStyle() TrailStyle {
	return TrailStyle{
		LineSame:      true,
		LineColor:     Yellow,
		LineThickness: 2,
		CircleSame:    false,
		CircleColor:   Pink,
		CircleRadius:  4,
	}
}

// Trail draws the centroid history of every tracked object and a circle on
// its current centroid
func Trail(img *gocv.Mat, objects []tracker.TrackedObject,
	trail *tracker.Trail, style TrailStyle) {

	for _, obj := range objects {

		objClr := ObjectColor(obj.ID)

		lineClr := objClr
		circleClr := objClr

		if !style.LineSame {
			lineClr = style.LineColor
		}

		if !style.CircleSame {
			circleClr = style.CircleColor
		}

		points := trail.GetPoints(obj.ID)

		for i := 1; i < len(points); i++ {
			gocv.Line(img,
				image.Pt(points[i-1].X, points[i-1].Y),
				image.Pt(points[i].X, points[i].Y),
				lineClr, style.LineThickness,
			)
		}

		gocv.Circle(img, image.Pt(obj.Centroid.X, obj.Centroid.Y),
			style.CircleRadius, circleClr, -1)
	}
}
