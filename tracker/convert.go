package tracker

import "github.com/swdee/go-objtrack/postprocess"

// DetectionsToRects takes object detection results and converts them into
// tracker boxes in the same order
func DetectionsToRects(dets []postprocess.DetectResult) []Rect {

	rects := make([]Rect, 0, len(dets))

	for _, det := range dets {
		rects = append(rects, NewRect(
			float32(det.Box.Left),
			float32(det.Box.Top),
			float32(det.Box.Width()),
			float32(det.Box.Height()),
		))
	}

	return rects
}
