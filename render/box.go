package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/swdee/go-objtrack/postprocess"
	"github.com/swdee/go-objtrack/tracker"
	"gocv.io/x/gocv"
)

// boxLabel holds a precalculated label drawn after all boxes
type boxLabel struct {
	rect    image.Rectangle
	clr     color.RGBA
	text    string
	textPos image.Point
}

// ObjectColor returns the color used for drawing the object with the given ID
func ObjectColor(id int) color.RGBA {
	return objectColors[id%len(objectColors)]
}

// DetectionLabel returns the label text for a detection result.  Results
// without a known class, such as motion regions, are labelled by their
// detection ID.
func DetectionLabel(det postprocess.DetectResult, classNames []string) string {

	if det.Class >= 0 && det.Class < len(classNames) {
		return fmt.Sprintf("%s %.2f", classNames[det.Class], det.Probability)
	}

	return fmt.Sprintf("det %d", det.ID)
}

// DetectionBoxes renders the bounding boxes around the objects detected
func DetectionBoxes(img *gocv.Mat, detectResults []postprocess.DetectResult,
	classNames []string, font Font, lineThickness int) {

	boxLabels := make([]boxLabel, 0, len(detectResults))

	for i, detResult := range detectResults {

		useClr := ObjectColor(i)

		if detResult.Class < 0 {
			useClr = motionColor
		}

		gocv.Rectangle(img, detResult.Box.Rect(), useClr, lineThickness)

		boxLabels = append(boxLabels, makeLabel(DetectionLabel(detResult, classNames),
			detResult.Box.Rect(), useClr, font, lineThickness))
	}

	drawLabels(img, boxLabels, font)
}

// TrackerBoxes renders the last matched bounding box and ID of every tracked
// object.  Objects not matched in the current frame are drawn with a thin
// line.
func TrackerBoxes(img *gocv.Mat, objects []tracker.TrackedObject, font Font,
	lineThickness int) {

	boxLabels := make([]boxLabel, 0, len(objects))

	for _, obj := range objects {

		if obj.Box.Empty() {
			continue
		}

		useClr := ObjectColor(obj.ID)
		rect := obj.Box.ImageRect()

		thickness := lineThickness

		if obj.Disappeared > 0 {
			thickness = 1
		}

		gocv.Rectangle(img, rect, useClr, thickness)

		text := fmt.Sprintf("ID %d", obj.ID)

		if obj.Flag {
			text += " *"
		}

		boxLabels = append(boxLabels, makeLabel(text, rect, useClr, font, lineThickness))
	}

	drawLabels(img, boxLabels, font)
}

// makeLabel calculates the label box placed on top of rect
func makeLabel(text string, rect image.Rectangle, clr color.RGBA, font Font,
	lineThickness int) boxLabel {

	textSize := font.TextSize(text)

	// calculate the alignment of text label
	var centerX int

	switch font.Alignment {
	case Center:
		centerX = (rect.Min.X + rect.Max.X) / 2

	case Right:
		centerX = rect.Max.X - (textSize.X / 2) - font.RightPad + (lineThickness / 2)

	case Left:
		fallthrough
	default:
		centerX = rect.Min.X + (textSize.X / 2) + font.LeftPad - (lineThickness / 2)
	}

	return boxLabel{
		rect: image.Rect(centerX-textSize.X/2-font.LeftPad,
			rect.Min.Y-textSize.Y-font.TopPad-font.BottomPad,
			centerX+textSize.X/2+font.RightPad, rect.Min.Y),
		clr:     clr,
		text:    text,
		textPos: image.Pt(centerX-textSize.X/2, rect.Min.Y-font.BottomPad),
	}
}

// drawLabels draws all precalculated box labels so they are the top most
// layer on the image
func drawLabels(img *gocv.Mat, boxLabels []boxLabel, font Font) {
	for _, box := range boxLabels {
		// draw box text gets written on
		gocv.Rectangle(img, box.rect, box.clr, -1)

		font.PutText(img, box.text, box.textPos)
	}
}

// Info draws the tracker counts in the top left corner of the image
func Info(img *gocv.Mat, stats tracker.Stats, font Font) {

	lines := []string{
		fmt.Sprintf("Objects: %d", stats.Objects),
		fmt.Sprintf("Trackers: %d", stats.VisualTrackers),
	}

	y := 0

	for _, line := range lines {
		y += font.LineHeight(line)
		font.PutText(img, line, image.Pt(font.LeftPad, y))
	}
}
